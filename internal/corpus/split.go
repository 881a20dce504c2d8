package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/wordforge/morphmerge/pkg/errors"
	"github.com/wordforge/morphmerge/pkg/morph"
)

// ShardPattern names split output files; the counter keeps lexical and
// numeric order aligned.
const ShardPattern = "lexicon-%04d.xml"

// Split divides one lexicon document into shards of at most perShard
// entries each, written to outDir. Entry order is preserved; splitting is
// pure repartitioning.
func Split(in, outDir string, perShard int) (int, error) {
	if perShard < 1 {
		return 0, errors.WrapResource("split", "corpus", in, errors.New("shard size must be positive"))
	}
	entries, err := ReadShard(in)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, errors.WrapIO("create", outDir, err)
	}

	shards := 0
	for start := 0; start < len(entries); start += perShard {
		end := start + perShard
		if end > len(entries) {
			end = len(entries)
		}
		name := filepath.Join(outDir, fmt.Sprintf(ShardPattern, shards))
		if err := WriteShard(name, entries[start:end]); err != nil {
			return shards, err
		}
		shards++
	}
	return shards, nil
}

// ListShards returns the shard files of dir in name order.
func ListShards(dir string) ([]string, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapIO("walk", dir, err)
	}
	var out []string
	for _, de := range des {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".xml") {
			continue
		}
		out = append(out, filepath.Join(dir, de.Name()))
	}
	sort.Strings(out)
	return out, nil
}

// Concat merges every shard in inDir into one document at out. Entries are
// ordered by German collation of the lemma, wordclass breaking ties, so
// the concatenated artifact is reproducible regardless of sharding.
// An unreadable shard is skipped and reported; the remaining shards still
// concatenate.
func Concat(inDir, out string) (int, []error) {
	shards, err := ListShards(inDir)
	if err != nil {
		return 0, []error{err}
	}

	var (
		entries []morph.Entry
		errs    []error
	)
	for _, shard := range shards {
		es, err := ReadShard(shard)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entries = append(entries, es...)
	}

	coll := collate.New(language.German)
	sort.SliceStable(entries, func(i, j int) bool {
		if c := coll.CompareString(entries[i].Lemma, entries[j].Lemma); c != 0 {
			return c < 0
		}
		return entries[i].Wordclass < entries[j].Wordclass
	})

	if err := WriteShard(out, entries); err != nil {
		errs = append(errs, err)
	}
	return len(entries), errs
}
