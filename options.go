package morphmerge

import "github.com/wordforge/morphmerge/pkg/errors"

// config holds the pipeline configuration assembled by options.
type config struct {
	input       string
	workDir     string
	output      string
	basicOutput string

	tabularRoot string
	legacyDir   string
	indexPath   string

	perShard int
	workers  int
}

func defaultConfig() config {
	return config{
		perShard: 1000,
		workers:  1,
	}
}

// Option is a function that configures a Pipeline.
type Option func(*config) error

// WithInput sets the primary lexicon document the split stage partitions.
func WithInput(path string) Option {
	return func(c *config) error {
		c.input = path
		return nil
	}
}

// WithWorkDir sets the directory holding the intermediate stage outputs
// and the lemma index. Required.
func WithWorkDir(dir string) Option {
	return func(c *config) error {
		c.workDir = dir
		return nil
	}
}

// WithOutput sets the final concatenated artifact path.
func WithOutput(path string) Option {
	return func(c *config) error {
		c.output = path
		return nil
	}
}

// WithBasicOutput sets the path of the reduced basic artifact. Leaving it
// empty skips the basic concatenation.
func WithBasicOutput(path string) Option {
	return func(c *config) error {
		c.basicOutput = path
		return nil
	}
}

// WithTabularCorpus sets the root of the tabular secondary corpus.
func WithTabularCorpus(root string) Option {
	return func(c *config) error {
		c.tabularRoot = root
		return nil
	}
}

// WithLegacyCorpus sets the directory of the legacy reference dictionary
// shards.
func WithLegacyCorpus(dir string) Option {
	return func(c *config) error {
		c.legacyDir = dir
		return nil
	}
}

// WithIndexPath overrides the default lemma index location inside the
// work directory.
func WithIndexPath(path string) Option {
	return func(c *config) error {
		c.indexPath = path
		return nil
	}
}

// WithShardSize sets how many entries each split shard holds.
func WithShardSize(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return errors.New("shard size must be positive")
		}
		c.perShard = n
		return nil
	}
}

// WithWorkers sets the number of shards processed concurrently within a
// stage. The default is 1 (serial).
func WithWorkers(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return errors.New("worker count must be positive")
		}
		c.workers = n
		return nil
	}
}
