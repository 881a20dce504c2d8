package morph

import "github.com/wordforge/morphmerge/pkg/grammar"

// Entry is one primary-dataset lexical entry: a lemma with its owned,
// ordered set of inflection records. Entries are parsed from a primary
// shard, mutated in place by the reconciliation policies, and written back
// to the same logical slot. Inflection order matters only for output,
// never for identity.
type Entry struct {
	Lemma     string
	Wordclass grammar.Wordclass

	// ID identifies the entry within the primary dataset.
	ID string
	// SourceID back-references the corresponding entry in the legacy
	// reference dictionary; empty when the entry has no legacy ancestor.
	SourceID string

	Inflections []Record
}

// SignatureSet returns the signatures of the entry's current inflections.
func (e *Entry) SignatureSet() SignatureSet {
	return NewSignatureSet(e.Inflections)
}

// HasPlural reports whether any inflection is marked number=plural.
func (e *Entry) HasPlural() bool {
	for _, r := range e.Inflections {
		if r.Features.Get(grammar.Number) == grammar.Plural {
			return true
		}
	}
	return false
}

// SortDedupe deduplicates and canonically orders the entry's inflections
// in place.
func (e *Entry) SortDedupe() {
	e.Inflections = SortDedupe(e.Inflections)
}
