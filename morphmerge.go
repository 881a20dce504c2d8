// Package morphmerge reconciles three independently authored German
// morphological datasets into one corrected, deduplicated, canonically
// ordered dataset.
//
// The pipeline runs six strictly ordered stages over a sharded primary
// lexicon; each stage's output directory is the next stage's input:
//
//	split           partition the primary lexicon into shards
//	index           build the lemma index over the tabular corpus
//	fix-plurals     backfill missing plurals from the legacy dictionary
//	insert-missing  fill missing forms from the tabular corpus
//	reduce          derive the basic published variant
//	concat          merge shards into the final artifacts
//
// The package is usable as a library through Pipeline; the morphmerge
// command wraps it in a CLI.
package morphmerge

import (
	"context"
	"path/filepath"

	"github.com/wordforge/morphmerge/internal/pipeline"
	"github.com/wordforge/morphmerge/pkg/errors"
	"github.com/wordforge/morphmerge/pkg/reconcile"
)

// Stage identifies one pipeline stage.
type Stage string

// The pipeline stages in their mandatory order.
const (
	StageSplit         Stage = "split"
	StageIndex         Stage = "index"
	StageFixPlurals    Stage = "fix-plurals"
	StageInsertMissing Stage = "insert-missing"
	StageReduce        Stage = "reduce"
	StageConcat        Stage = "concat"
)

// Stages lists every stage in execution order.
func Stages() []Stage {
	return []Stage{StageSplit, StageIndex, StageFixPlurals, StageInsertMissing, StageReduce, StageConcat}
}

// Work-directory layout of a full pipeline run. The numeric prefixes keep
// directory listings in stage order.
const (
	splitDir    = "00-shards"
	fixedDir    = "10-fixed"
	insertedDir = "20-inserted"
	basicDir    = "30-basic"
	indexFile   = "lemma.idx"
)

// Pipeline is a configured reconciliation pipeline.
type Pipeline struct {
	cfg config
}

// New creates a Pipeline with the given options.
func New(opts ...Option) (*Pipeline, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.workDir == "" {
		return nil, errors.WrapResource("create", "pipeline", "", errors.New("work directory is required"))
	}
	return &Pipeline{cfg: cfg}, nil
}

// IndexPath returns the location of the pipeline's lemma index file.
func (p *Pipeline) IndexPath() string {
	if p.cfg.indexPath != "" {
		return p.cfg.indexPath
	}
	return filepath.Join(p.cfg.workDir, indexFile)
}

// Split partitions the primary lexicon into shards under the work
// directory.
func (p *Pipeline) Split(ctx context.Context) (int, error) {
	if p.cfg.input == "" {
		return 0, errors.WrapResource("split", "corpus", "", errors.New("no input lexicon configured"))
	}
	return pipeline.Split(ctx, p.cfg.input, filepath.Join(p.cfg.workDir, splitDir), p.cfg.perShard)
}

// BuildIndex builds and persists the lemma index over the tabular corpus.
func (p *Pipeline) BuildIndex(ctx context.Context) (int, error) {
	if p.cfg.tabularRoot == "" {
		return 0, errors.WrapResource("build", "index", "", errors.New("no tabular corpus configured"))
	}
	return pipeline.BuildIndex(ctx, p.cfg.tabularRoot, p.IndexPath())
}

// FixPlurals runs the plural-backfill correction stage.
func (p *Pipeline) FixPlurals(ctx context.Context) (*reconcile.Result, error) {
	if p.cfg.legacyDir == "" {
		return nil, errors.WrapResource("load", "corpus", "", errors.New("no legacy corpus configured"))
	}
	return pipeline.FixPlurals(ctx,
		filepath.Join(p.cfg.workDir, splitDir),
		filepath.Join(p.cfg.workDir, fixedDir),
		p.cfg.legacyDir, p.cfg.workers)
}

// InsertMissing runs the missing-form insertion stage.
func (p *Pipeline) InsertMissing(ctx context.Context) (*reconcile.Result, error) {
	return pipeline.InsertMissing(ctx,
		filepath.Join(p.cfg.workDir, fixedDir),
		filepath.Join(p.cfg.workDir, insertedDir),
		p.IndexPath(), p.cfg.tabularRoot, p.cfg.workers)
}

// Reduce derives the basic published variant from the reconciled shards.
func (p *Pipeline) Reduce(ctx context.Context) (*reconcile.Result, error) {
	return pipeline.Reduce(ctx,
		filepath.Join(p.cfg.workDir, insertedDir),
		filepath.Join(p.cfg.workDir, basicDir),
		p.cfg.workers)
}

// Concat merges the reconciled shards into the final full artifact and,
// when a basic output is configured, the reduced shards into the basic
// artifact.
func (p *Pipeline) Concat(ctx context.Context) (*reconcile.Result, error) {
	if p.cfg.output == "" {
		return nil, errors.WrapResource("concat", "corpus", "", errors.New("no output path configured"))
	}
	res, err := pipeline.Concat(ctx, filepath.Join(p.cfg.workDir, insertedDir), p.cfg.output)
	if err != nil {
		return res, err
	}
	if p.cfg.basicOutput != "" {
		basic, err := pipeline.Concat(ctx, filepath.Join(p.cfg.workDir, basicDir), p.cfg.basicOutput)
		if basic != nil {
			res.Merge(basic)
		}
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

// Run executes the given stages in pipeline order, regardless of the
// order they are listed in. An empty stage list runs everything.
func (p *Pipeline) Run(ctx context.Context, stages ...Stage) error {
	want := make(map[Stage]bool, len(stages))
	for _, s := range stages {
		want[s] = true
	}
	all := len(stages) == 0

	for _, s := range Stages() {
		if !all && !want[s] {
			continue
		}
		var err error
		switch s {
		case StageSplit:
			_, err = p.Split(ctx)
		case StageIndex:
			_, err = p.BuildIndex(ctx)
		case StageFixPlurals:
			_, err = p.FixPlurals(ctx)
		case StageInsertMissing:
			_, err = p.InsertMissing(ctx)
		case StageReduce:
			_, err = p.Reduce(ctx)
		case StageConcat:
			_, err = p.Concat(ctx)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ParseStage resolves a stage name.
func ParseStage(name string) (Stage, bool) {
	for _, s := range Stages() {
		if string(s) == name {
			return s, true
		}
	}
	return "", false
}
