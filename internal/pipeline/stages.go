package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/wordforge/morphmerge/internal/corpus"
	"github.com/wordforge/morphmerge/internal/index"
	"github.com/wordforge/morphmerge/internal/sources/tagged"
	"github.com/wordforge/morphmerge/pkg/errors"
	"github.com/wordforge/morphmerge/pkg/logging"
	"github.com/wordforge/morphmerge/pkg/morph"
	"github.com/wordforge/morphmerge/pkg/reconcile"
)

// Audit log file names, one per reconciling stage.
const (
	FixPluralsLog    = "fix-plurals.log"
	InsertMissingLog = "insert-missing.log"
)

// FixPlurals runs the plural-backfill correction over every shard of
// inDir, writing corrected shards to outDir and the audit log alongside
// them.
func FixPlurals(ctx context.Context, inDir, outDir, legacyDir string, workers int) (*reconcile.Result, error) {
	ctx = logging.WithStage(ctx, "fix-plurals")

	legacy, err := tagged.LoadCorpus(legacyDir)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info().Int("entries", legacy.Len()).Msg("legacy corpus loaded")

	res, err := runEntryStage(ctx, inDir, outDir, workers, func(e *morph.Entry, r *reconcile.Result) {
		reconcile.FixPlurals(e, legacy, r)
	})
	if err != nil {
		return nil, err
	}
	if err := WriteAuditLog(filepath.Join(outDir, FixPluralsLog), res.Changes); err != nil {
		return res, err
	}
	return res, nil
}

// InsertMissing runs the insertion policy over every shard of inDir. The
// lemma index at indexPath resolves each entry's candidate set from the
// tabular corpus under tabularRoot. A missing index file is fatal: it is
// the stage's one necessary input.
func InsertMissing(ctx context.Context, inDir, outDir, indexPath, tabularRoot string, workers int) (*reconcile.Result, error) {
	ctx = logging.WithStage(ctx, "insert-missing")

	idx, err := index.Load(indexPath, tabularRoot)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info().Int("lemmas", idx.Len()).Msg("lemma index loaded")

	res, err := runEntryStage(ctx, inDir, outDir, workers, func(e *morph.Entry, r *reconcile.Result) {
		candidates, ok := idx.Lookup(e.Lemma, e.Wordclass)
		if !ok {
			// No candidates is a no-op, not an error.
			r.EntriesSeen++
			return
		}
		reconcile.InsertMissing(e, candidates, r)
	})
	if err != nil {
		return nil, err
	}
	if err := WriteAuditLog(filepath.Join(outDir, InsertMissingLog), res.Changes); err != nil {
		return res, err
	}
	return res, nil
}

// Reduce produces the basic published variant of every shard in inDir.
func Reduce(ctx context.Context, inDir, outDir string, workers int) (*reconcile.Result, error) {
	ctx = logging.WithStage(ctx, "reduce")
	return runEntryStage(ctx, inDir, outDir, workers, func(e *morph.Entry, r *reconcile.Result) {
		reconcile.Reduce(e, r)
	})
}

// BuildIndex builds the lemma index over the tabular corpus and persists
// it to indexPath.
func BuildIndex(ctx context.Context, tabularRoot, indexPath string) (int, error) {
	ctx = logging.WithStage(ctx, "index")

	idx, err := index.Build(tabularRoot)
	if err != nil {
		return 0, err
	}
	if err := idx.Save(indexPath); err != nil {
		return 0, err
	}
	logging.FromContext(ctx).Info().Int("lemmas", idx.Len()).Str("path", indexPath).Msg("lemma index built")
	return idx.Len(), nil
}

// Split divides one lexicon document into shards.
func Split(ctx context.Context, in, outDir string, perShard int) (int, error) {
	ctx = logging.WithStage(ctx, "split")
	n, err := corpus.Split(in, outDir, perShard)
	if err != nil {
		return n, err
	}
	logging.FromContext(ctx).Info().Int("shards", n).Msg("corpus split")
	return n, nil
}

// Concat merges the shards of inDir back into one document.
func Concat(ctx context.Context, inDir, out string) (*reconcile.Result, error) {
	ctx = logging.WithStage(ctx, "concat")

	res := &reconcile.Result{}
	count, errs := corpus.Concat(inDir, out)
	res.EntriesSeen = count
	for _, err := range errs {
		res.AddError(err)
		logging.FromContext(ctx).Error().Err(err).Msg("shard failed")
	}
	logging.FromContext(ctx).Info().Int("entries", count).Str("path", out).Msg("corpus concatenated")
	return res, nil
}

// entryPolicy mutates one entry and accounts for it in the result.
type entryPolicy func(*morph.Entry, *reconcile.Result)

// runEntryStage applies policy to every entry of every shard in inDir and
// writes the processed shards to outDir under the same names. A failed
// shard is recorded and skipped; the batch continues.
func runEntryStage(ctx context.Context, inDir, outDir string, workers int, policy entryPolicy) (*reconcile.Result, error) {
	shards, err := corpus.ListShards(inDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, errors.WrapIO("create", outDir, err)
	}

	log := logging.FromContext(ctx)
	total := Run(ctx, shards, workers, func(_ context.Context, shard string) *reconcile.Result {
		res := &reconcile.Result{}
		entries, err := corpus.ReadShard(shard)
		if err != nil {
			res.AddError(err)
			log.Error().Err(err).Str("shard", filepath.Base(shard)).Msg("shard failed")
			return res
		}

		before := len(res.Changes)
		for i := range entries {
			policy(&entries[i], res)
		}

		out := filepath.Join(outDir, filepath.Base(shard))
		if err := corpus.WriteShard(out, entries); err != nil {
			res.AddError(err)
			log.Error().Err(err).Str("shard", filepath.Base(shard)).Msg("shard write failed")
			return res
		}

		log.Debug().
			Str("shard", filepath.Base(shard)).
			Int("entries", len(entries)).
			Int("changed", len(res.Changes)-before).
			Msg("shard processed")
		return res
	})

	log.Info().Msg(total.Summary())
	return total, nil
}
