// Package reconcile implements the policies that merge candidate records
// from the secondary sources into primary entries: filling missing forms,
// backfilling plurals from the legacy reference dictionary, and reducing
// reconciled entries to the basic published variant.
//
// Every policy mutates one entry at a time, records its decision in a
// Result, and leaves untouched entries unlogged. Policies are idempotent:
// a second pass over their own output changes nothing.
package reconcile

import (
	"github.com/wordforge/morphmerge/pkg/grammar"
	"github.com/wordforge/morphmerge/pkg/morph"
)

// CandidateSource supplies candidate records for a lemma. The lemma index
// over the tabular corpus implements it.
type CandidateSource interface {
	Lookup(lemma string, wc grammar.Wordclass) ([]morph.Record, bool)
}

// LegacySource resolves a primary entry's source back-reference to the
// legacy entry's decomposed declensions. The tagged corpus implements it.
type LegacySource interface {
	Declensions(id string) []morph.Record
}

// InsertMissing applies the insertion policy: candidates whose signature
// is not already present on the entry are appended, the entry is re-sorted
// and deduplicated, and the change is recorded. When the entry currently
// holds fewer than two inflections, that lone record is a degenerate
// placeholder and is discarded before the additions land. An entry with no
// additions is left untouched and unlogged.
func InsertMissing(e *morph.Entry, candidates []morph.Record, res *Result) bool {
	res.EntriesSeen++

	existing := e.SignatureSet()
	var additions []morph.Record
	for _, c := range candidates {
		if !c.Viable() {
			continue
		}
		sig := morph.Signature(c)
		if existing.Has(sig) {
			continue
		}
		existing.Add(sig)
		additions = append(additions, c)
	}
	if len(additions) == 0 {
		return false
	}

	if len(e.Inflections) < 2 {
		e.Inflections = nil
	}
	e.Inflections = append(e.Inflections, additions...)
	e.SortDedupe()

	res.EntriesChanged++
	res.RecordsAdded += len(additions)
	res.AddChange(e)
	return true
}

// FixPlurals applies the plural-backfill correction: when an entry has
// more than one inflection yet no plural-marked record, and its legacy
// ancestor carries at least one plural declension, the entry's inflections
// are replaced wholesale by the legacy declension set. The legacy source
// is authoritative once a plural exists there and the primary lacks one;
// this is a destructive replace, not a merge.
func FixPlurals(e *morph.Entry, legacy LegacySource, res *Result) bool {
	res.EntriesSeen++

	if len(e.Inflections) <= 1 {
		return false
	}
	if e.HasPlural() {
		res.AlreadyPlural++
		return false
	}
	if e.SourceID == "" {
		return false
	}

	decls := legacy.Declensions(e.SourceID)
	if !anyPlural(decls) {
		return false
	}

	replaced := morph.SortDedupe(decls)
	res.RecordsReplaced += len(e.Inflections)
	e.Inflections = replaced

	res.EntriesChanged++
	res.AddChange(e)
	return true
}

func anyPlural(recs []morph.Record) bool {
	for _, r := range recs {
		if r.Features.Get(grammar.Number) == grammar.Plural {
			return true
		}
	}
	return false
}

// basicFeatures is the per-wordclass feature subset retained in the basic
// published artifact.
var basicFeatures = map[grammar.Wordclass][]grammar.Feature{
	grammar.Noun:      {grammar.Number, grammar.Case},
	grammar.Adjective: {grammar.Degree, grammar.Number, grammar.Gender, grammar.Case},
	grammar.Verb:      {grammar.NonFinType, grammar.Mood, grammar.Tense, grammar.Number, grammar.Person},
}

// Reduce strips generation provenance and narrows every inflection to the
// basic feature subset for the entry's wordclass, then re-sorts and
// deduplicates: narrowing can collapse previously distinct records.
func Reduce(e *morph.Entry, res *Result) {
	res.EntriesSeen++

	keep := basicFeatures[e.Wordclass]
	for i := range e.Inflections {
		r := &e.Inflections[i]
		r.Features = r.Features.Narrow(keep...)
		r.GenType = ""
		r.GenSource = ""
		r.GenConfirmed = ""
	}
	e.SortDedupe()
}
