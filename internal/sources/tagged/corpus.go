package tagged

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/wordforge/morphmerge/pkg/errors"
	"github.com/wordforge/morphmerge/pkg/logging"
	"github.com/wordforge/morphmerge/pkg/morph"
)

// Corpus is the legacy reference dictionary loaded into memory: a
// read-through structure built once at startup and immutable afterwards.
// Reconciliation looks legacy entries up by their id (the primary
// dataset's source back-reference).
type Corpus struct {
	byID map[string]Entry
}

// LoadCorpus reads every .xml shard under dir. An unreadable or malformed
// shard is skipped with a warning; only a completely unreadable directory
// is an error.
func LoadCorpus(dir string) (*Corpus, error) {
	names, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapIO("read", dir, err)
	}

	c := &Corpus{byID: make(map[string]Entry)}
	for _, de := range names {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".xml") {
			continue
		}
		path := filepath.Join(dir, de.Name())
		dict, err := ParseShard(path)
		if err != nil {
			logging.Warn().Err(err).Str("shard", de.Name()).Msg("skipping unreadable legacy shard")
			continue
		}
		for _, e := range dict.Entries {
			c.byID[e.ID] = e
		}
	}
	return c, nil
}

// EntryByID returns the legacy entry with the given id.
func (c *Corpus) EntryByID(id string) (Entry, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// Declensions returns the decomposed canonical records of the legacy entry
// with the given id, or nil when the id is unknown.
func (c *Corpus) Declensions(id string) []morph.Record {
	e, ok := c.byID[id]
	if !ok {
		return nil
	}
	return e.Records()
}

// Len returns the number of loaded legacy entries.
func (c *Corpus) Len() int {
	return len(c.byID)
}
