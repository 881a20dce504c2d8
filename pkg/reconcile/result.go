package reconcile

import (
	"fmt"

	"github.com/wordforge/morphmerge/pkg/grammar"
	"github.com/wordforge/morphmerge/pkg/morph"
)

// Change is one audit-log row: the entry a policy modified.
type Change struct {
	Lemma     string
	Wordclass grammar.Wordclass
	EntryID   string
}

// Result accumulates the outcome of one reconciliation pass: per-batch
// counters, the audit trail, and the per-file errors that did not abort
// the batch. Workers fill private Results that are merged at the end of a
// stage.
type Result struct {
	// EntriesSeen counts entries considered, changed or not.
	EntriesSeen int
	// EntriesChanged counts entries a policy modified.
	EntriesChanged int
	// AlreadyPlural counts entries skipped by the plural backfill because
	// a plural was already present.
	AlreadyPlural int
	// RecordsAdded counts inflections appended by the insertion policy.
	RecordsAdded int
	// RecordsReplaced counts inflections discarded by the plural
	// backfill's wholesale replacement.
	RecordsReplaced int
	// FilesFailed counts shards aborted by I/O or parse failures.
	FilesFailed int

	// Changes is the audit trail, one row per changed entry.
	Changes []Change

	// Errors holds the per-file failures of the batch.
	Errors []error
}

// AddChange appends an audit row for e.
func (r *Result) AddChange(e *morph.Entry) {
	r.Changes = append(r.Changes, Change{
		Lemma:     e.Lemma,
		Wordclass: e.Wordclass,
		EntryID:   e.ID,
	})
}

// AddError records a per-file failure.
func (r *Result) AddError(err error) {
	r.Errors = append(r.Errors, err)
	r.FilesFailed++
}

// Merge folds other into r. Used to combine per-worker results after a
// parallel stage.
func (r *Result) Merge(other *Result) {
	r.EntriesSeen += other.EntriesSeen
	r.EntriesChanged += other.EntriesChanged
	r.AlreadyPlural += other.AlreadyPlural
	r.RecordsAdded += other.RecordsAdded
	r.RecordsReplaced += other.RecordsReplaced
	r.FilesFailed += other.FilesFailed
	r.Changes = append(r.Changes, other.Changes...)
	r.Errors = append(r.Errors, other.Errors...)
}

// HasErrors reports whether any per-file failures were recorded.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Summary returns a one-line human-readable account of the pass.
func (r *Result) Summary() string {
	s := fmt.Sprintf("%d entries seen, %d changed", r.EntriesSeen, r.EntriesChanged)
	if r.RecordsAdded > 0 {
		s += fmt.Sprintf(", %d records added", r.RecordsAdded)
	}
	if r.RecordsReplaced > 0 {
		s += fmt.Sprintf(", %d records replaced", r.RecordsReplaced)
	}
	if r.AlreadyPlural > 0 {
		s += fmt.Sprintf(", %d already plural", r.AlreadyPlural)
	}
	if r.FilesFailed > 0 {
		s += fmt.Sprintf(", %d files failed", r.FilesFailed)
	}
	return s
}
