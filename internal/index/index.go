// Package index builds and queries the persisted lemma index over the
// tabular secondary corpus. The index maps (lemma, wordclass) to the shard
// file holding that lemma's inflection table; it is built once as an
// explicit pipeline stage and read-only during reconciliation.
package index

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/wordforge/morphmerge/internal/sources/tabular"
	"github.com/wordforge/morphmerge/pkg/errors"
	"github.com/wordforge/morphmerge/pkg/grammar"
	"github.com/wordforge/morphmerge/pkg/logging"
	"github.com/wordforge/morphmerge/pkg/morph"
)

// Key identifies one lemma's table within the corpus.
type Key struct {
	Lemma     string
	Wordclass grammar.Wordclass
}

// Location names where a lemma's table lives: the orthographic variant tag
// ("max"/"min" for bracketed lemmas, "-" otherwise), the shard subdirectory,
// and the file name within it.
type Location struct {
	Variant  string
	Shard    string
	Filename string
}

// Index is the loaded lemma index plus the corpus root it refers to.
type Index struct {
	root    string
	entries map[Key]Location
	layouts map[string]tabular.Layout
}

// noVariant tags lemmas without bracketed optional material.
const noVariant = "-"

// Build walks every subdirectory of the tabular corpus root and records one
// row per lemma variant. Each shard file holds one lemma's table; the lemma
// is the file name without extension. A bracketed lemma like "ab[zu]fahren"
// yields two rows, the "min" variant (bracket content removed) and the
// "max" variant (markers stripped, content kept), both pointing at the same
// file. Duplicate (lemma, wordclass) keys are tolerated: the last row wins.
func Build(root string) (*Index, error) {
	subdirs, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.WrapIO("walk", root, err)
	}

	idx := &Index{
		root:    root,
		entries: make(map[Key]Location),
		layouts: make(map[string]tabular.Layout),
	}

	for _, sd := range subdirs {
		if !sd.IsDir() {
			continue
		}
		dir := filepath.Join(root, sd.Name())
		layout, err := tabular.LoadLayout(dir)
		if err != nil {
			logging.Warn().Err(err).Str("shard", sd.Name()).Msg("skipping corpus subdirectory without layout")
			continue
		}
		idx.layouts[sd.Name()] = layout

		files, err := os.ReadDir(dir)
		if err != nil {
			logging.Warn().Err(err).Str("shard", sd.Name()).Msg("skipping unreadable corpus subdirectory")
			continue
		}
		for _, f := range files {
			if f.IsDir() || f.Name() == tabular.LayoutFile {
				continue
			}
			lemma := strings.TrimSuffix(f.Name(), filepath.Ext(f.Name()))
			for variant, name := range lemmaVariants(lemma) {
				idx.entries[Key{Lemma: name, Wordclass: layout.Wordclass}] = Location{
					Variant:  variant,
					Shard:    sd.Name(),
					Filename: f.Name(),
				}
			}
		}
	}
	return idx, nil
}

// lemmaVariants expands a possibly bracketed lemma into its variant map.
func lemmaVariants(lemma string) map[string]string {
	min, max, ok := morph.SplitBrackets(lemma)
	if !ok {
		return map[string]string{noVariant: lemma}
	}
	return map[string]string{"min": min, "max": max}
}

// Len returns the number of indexed lemma variants.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Save persists the index as flat tab-delimited text, one row per
// (lemma, wordclass, variant, shard, filename) tuple. Rows are ordered by
// German collation of the lemma so rebuilds are byte-reproducible.
func (idx *Index) Save(path string) error {
	type row struct {
		key Key
		loc Location
	}
	rows := make([]row, 0, len(idx.entries))
	for k, l := range idx.entries {
		rows = append(rows, row{k, l})
	}

	coll := collate.New(language.German)
	sort.Slice(rows, func(i, j int) bool {
		if c := coll.CompareString(rows[i].key.Lemma, rows[j].key.Lemma); c != 0 {
			return c < 0
		}
		return rows[i].key.Wordclass < rows[j].key.Wordclass
	})

	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.key.Lemma, r.key.Wordclass, r.loc.Variant, r.loc.Shard, r.loc.Filename)
	}
	if err := w.Flush(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// Load reads a persisted index. The corpus root must be the same root the
// index was built from. A missing index file is ErrIndexMissing: it is a
// necessary input for reconciliation and its absence aborts the run.
func Load(path, root string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapResource("load", "index", path, errors.ErrIndexMissing)
		}
		return nil, errors.WrapIO("read", path, err)
	}
	defer f.Close()

	idx := &Index{
		root:    root,
		entries: make(map[Key]Location),
		layouts: make(map[string]tabular.Layout),
	}

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r\n")
		if text == "" {
			continue
		}
		cols := strings.Split(text, "\t")
		if len(cols) != 5 {
			logging.Debug().Int("line", line).Msg("dropping malformed index row")
			continue
		}
		wc := grammar.Wordclass(cols[1])
		if !wc.Valid() {
			logging.Debug().Int("line", line).Msg("dropping index row with unknown wordclass")
			continue
		}
		idx.entries[Key{Lemma: cols[0], Wordclass: wc}] = Location{
			Variant:  cols[2],
			Shard:    cols[3],
			Filename: cols[4],
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapParse("index", path, err)
	}

	// Resolve every referenced shard layout up front so lookups never
	// mutate the index. The loaded index is shared read-only across
	// pipeline workers.
	for _, loc := range idx.entries {
		if _, ok := idx.layouts[loc.Shard]; ok {
			continue
		}
		layout, err := tabular.LoadLayout(filepath.Join(root, loc.Shard))
		if err != nil {
			logging.Warn().Err(err).Str("shard", loc.Shard).Msg("indexed shard has no usable layout")
			continue
		}
		idx.layouts[loc.Shard] = layout
	}
	return idx, nil
}

// Locate returns the raw location of a lemma's table.
func (idx *Index) Locate(lemma string, wc grammar.Wordclass) (Location, bool) {
	loc, ok := idx.entries[Key{Lemma: lemma, Wordclass: wc}]
	return loc, ok
}

// Lookup resolves (lemma, wordclass) to the lemma's parsed candidate
// record set. Unknown keys and indexed files that have since disappeared
// both return ok=false: reconciliation treats either as "no candidates",
// not as an error.
func (idx *Index) Lookup(lemma string, wc grammar.Wordclass) ([]morph.Record, bool) {
	loc, ok := idx.entries[Key{Lemma: lemma, Wordclass: wc}]
	if !ok {
		return nil, false
	}

	layout, ok := idx.layouts[loc.Shard]
	if !ok {
		return nil, false
	}

	path := filepath.Join(idx.root, loc.Shard, loc.Filename)
	recs, _, err := tabular.ParseFile(path, layout)
	if err != nil {
		return nil, false
	}
	return recs, true
}
