// Package pipeline sequences the reconciliation stages over a sharded
// primary corpus. Each stage is a one-shot pass: every shard is processed
// to completion (parse, reconcile, sort, serialize) independently, so
// file-level work parallelizes cleanly behind a worker pool. Workers fill
// per-shard results that are merged after the pool drains; the audit log
// is written once from the merged result.
package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/wordforge/morphmerge/pkg/reconcile"
)

// Task processes one shard and returns its result. A task failure is a
// per-file event: it is captured in the result, never propagated as an
// abort of the whole batch.
type Task func(ctx context.Context, shard string) *reconcile.Result

// Run executes task over every shard with at most workers tasks in
// flight, then merges the per-shard results in shard order. workers < 1
// means serial execution.
func Run(ctx context.Context, shards []string, workers int, task Task) *reconcile.Result {
	if workers < 1 {
		workers = 1
	}

	results := make([]*reconcile.Result, len(shards))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, shard := range shards {
		i, shard := i, shard
		g.Go(func() error {
			results[i] = task(ctx, shard)
			return nil
		})
	}
	// Tasks never return errors; Wait only synchronizes the pool.
	_ = g.Wait()

	total := &reconcile.Result{}
	for _, r := range results {
		if r != nil {
			total.Merge(r)
		}
	}
	return total
}
