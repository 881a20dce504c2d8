package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordforge/morphmerge/pkg/grammar"
	"github.com/wordforge/morphmerge/pkg/morph"
	"github.com/wordforge/morphmerge/pkg/reconcile"
)

func noun(form string, number, kase grammar.Value) morph.Record {
	return morph.Record{
		Wordform:  form,
		Wordclass: grammar.Noun,
		Features: morph.NewFeatureSet(grammar.Noun, map[grammar.Feature]grammar.Value{
			grammar.Number: number,
			grammar.Case:   kase,
		}),
	}
}

func tischEntry(inflections ...morph.Record) *morph.Entry {
	return &morph.Entry{
		Lemma:       "Tisch",
		Wordclass:   grammar.Noun,
		ID:          "e100",
		SourceID:    "n100",
		Inflections: inflections,
	}
}

// fakeLegacy maps source ids to declension sets.
type fakeLegacy map[string][]morph.Record

func (f fakeLegacy) Declensions(id string) []morph.Record {
	return f[id]
}

func TestInsertMissingAddsNewForms(t *testing.T) {
	e := tischEntry(
		noun("Tisch", grammar.Singular, grammar.Nominative),
		noun("Tisches", grammar.Singular, grammar.Genitive),
	)
	candidates := []morph.Record{
		noun("Tisch", grammar.Singular, grammar.Nominative), // duplicate
		noun("Tischen", grammar.Plural, grammar.Dative),     // new
	}

	var res reconcile.Result
	changed := reconcile.InsertMissing(e, candidates, &res)

	assert.True(t, changed)
	require.Len(t, e.Inflections, 3)
	assert.Equal(t, 1, res.RecordsAdded)
	require.Len(t, res.Changes, 1)
	assert.Equal(t, reconcile.Change{Lemma: "Tisch", Wordclass: grammar.Noun, EntryID: "e100"}, res.Changes[0])

	// Canonical order: singular block before plural block.
	assert.Equal(t, "Tisch", e.Inflections[0].Wordform)
	assert.Equal(t, "Tischen", e.Inflections[2].Wordform)
}

func TestInsertMissingNoOp(t *testing.T) {
	e := tischEntry(
		noun("Tisch", grammar.Singular, grammar.Nominative),
		noun("Tische", grammar.Plural, grammar.Nominative),
	)
	candidates := []morph.Record{
		noun("Tisch", grammar.Singular, grammar.Nominative),
		noun("Tische", grammar.Plural, grammar.Nominative),
	}

	var res reconcile.Result
	changed := reconcile.InsertMissing(e, candidates, &res)

	assert.False(t, changed)
	assert.Len(t, e.Inflections, 2)
	assert.Empty(t, res.Changes)
	assert.Equal(t, 1, res.EntriesSeen)
}

func TestInsertMissingIdempotent(t *testing.T) {
	e := tischEntry(
		noun("Tisch", grammar.Singular, grammar.Nominative),
		noun("Tisches", grammar.Singular, grammar.Genitive),
	)
	candidates := []morph.Record{
		noun("Tische", grammar.Plural, grammar.Nominative),
		noun("Tischen", grammar.Plural, grammar.Dative),
	}

	var res reconcile.Result
	require.True(t, reconcile.InsertMissing(e, candidates, &res))
	after := append([]morph.Record(nil), e.Inflections...)

	assert.False(t, reconcile.InsertMissing(e, candidates, &res))
	assert.Equal(t, after, e.Inflections)
	assert.Len(t, res.Changes, 1)
}

func TestInsertMissingDiscardsPlaceholder(t *testing.T) {
	// A single degenerate record carries no real information and is
	// dropped before the additions land.
	e := tischEntry(noun("Tisch", grammar.Unset, grammar.Unset))
	candidates := []morph.Record{
		noun("Tisch", grammar.Singular, grammar.Nominative),
		noun("Tische", grammar.Plural, grammar.Nominative),
	}

	var res reconcile.Result
	require.True(t, reconcile.InsertMissing(e, candidates, &res))
	require.Len(t, e.Inflections, 2)
	for _, r := range e.Inflections {
		assert.True(t, r.Features.Get(grammar.Number).IsSet())
	}
}

func TestInsertMissingSkipsNonViable(t *testing.T) {
	e := tischEntry(
		noun("Tisch", grammar.Singular, grammar.Nominative),
		noun("Tisches", grammar.Singular, grammar.Genitive),
	)
	candidates := []morph.Record{
		noun("der Tisch", grammar.Singular, grammar.Nominative),
		noun("", grammar.Plural, grammar.Nominative),
	}

	var res reconcile.Result
	assert.False(t, reconcile.InsertMissing(e, candidates, &res))
	assert.Len(t, e.Inflections, 2)
}

func TestFixPluralsReplacesWholesale(t *testing.T) {
	e := tischEntry(
		noun("Tisch", grammar.Singular, grammar.Nominative),
		noun("Tisches", grammar.Singular, grammar.Genitive),
		noun("Tische", grammar.Singular, grammar.Dative),
	)
	legacy := fakeLegacy{"n100": {
		noun("Tische", grammar.Plural, grammar.Nominative),
		noun("Tischen", grammar.Plural, grammar.Dative),
	}}

	var res reconcile.Result
	changed := reconcile.FixPlurals(e, legacy, &res)

	assert.True(t, changed)
	require.Len(t, e.Inflections, 2)
	assert.Equal(t, "Tische", e.Inflections[0].Wordform)
	assert.Equal(t, "Tischen", e.Inflections[1].Wordform)
	assert.Equal(t, 3, res.RecordsReplaced)
	assert.Len(t, res.Changes, 1)
}

func TestFixPluralsSkipsWhenPluralPresent(t *testing.T) {
	e := tischEntry(
		noun("Tisch", grammar.Singular, grammar.Nominative),
		noun("Tische", grammar.Plural, grammar.Nominative),
	)
	legacy := fakeLegacy{"n100": {
		noun("Tischen", grammar.Plural, grammar.Dative),
	}}

	var res reconcile.Result
	assert.False(t, reconcile.FixPlurals(e, legacy, &res))
	assert.Equal(t, 1, res.AlreadyPlural)
	assert.Len(t, e.Inflections, 2)
	assert.Empty(t, res.Changes)
}

func TestFixPluralsSkipsWithoutLegacyPlural(t *testing.T) {
	e := tischEntry(
		noun("Tisch", grammar.Singular, grammar.Nominative),
		noun("Tisches", grammar.Singular, grammar.Genitive),
	)
	legacy := fakeLegacy{"n100": {
		noun("Tisch", grammar.Singular, grammar.Nominative),
	}}

	var res reconcile.Result
	assert.False(t, reconcile.FixPlurals(e, legacy, &res))
	assert.Len(t, e.Inflections, 2)
}

func TestFixPluralsSkipsSingleInflection(t *testing.T) {
	e := tischEntry(noun("Tisch", grammar.Singular, grammar.Nominative))
	legacy := fakeLegacy{"n100": {
		noun("Tische", grammar.Plural, grammar.Nominative),
	}}

	var res reconcile.Result
	assert.False(t, reconcile.FixPlurals(e, legacy, &res))
}

func TestFixPluralsUnknownSourceID(t *testing.T) {
	e := tischEntry(
		noun("Tisch", grammar.Singular, grammar.Nominative),
		noun("Tisches", grammar.Singular, grammar.Genitive),
	)
	e.SourceID = "missing"

	var res reconcile.Result
	assert.False(t, reconcile.FixPlurals(e, fakeLegacy{}, &res))
	assert.Empty(t, res.Errors)
}

func TestReduceNarrowsAndStripsProvenance(t *testing.T) {
	r := morph.Record{
		Wordform:  "schnellen",
		Wordclass: grammar.Adjective,
		Features: morph.NewFeatureSet(grammar.Adjective, map[grammar.Feature]grammar.Value{
			grammar.Degree:         grammar.Positive,
			grammar.InflectionType: grammar.Weak,
			grammar.Number:         grammar.Plural,
			grammar.Gender:         grammar.Masculine,
			grammar.Case:           grammar.Dative,
		}),
		GenType:      "auto",
		GenSource:    "tables",
		GenConfirmed: "no",
	}
	e := &morph.Entry{Lemma: "schnell", Wordclass: grammar.Adjective, Inflections: []morph.Record{r}}

	var res reconcile.Result
	reconcile.Reduce(e, &res)

	require.Len(t, e.Inflections, 1)
	out := e.Inflections[0]
	assert.False(t, out.Features.Get(grammar.InflectionType).IsSet())
	assert.Equal(t, grammar.Positive, out.Features.Get(grammar.Degree))
	assert.Empty(t, out.GenType)
	assert.Empty(t, out.GenSource)
	assert.Empty(t, out.GenConfirmed)
}

func TestReduceCollapsesNarrowedDuplicates(t *testing.T) {
	mk := func(infl grammar.Value) morph.Record {
		return morph.Record{
			Wordform:  "schnellen",
			Wordclass: grammar.Adjective,
			Features: morph.NewFeatureSet(grammar.Adjective, map[grammar.Feature]grammar.Value{
				grammar.Degree:         grammar.Positive,
				grammar.InflectionType: infl,
				grammar.Number:         grammar.Plural,
				grammar.Gender:         grammar.Masculine,
				grammar.Case:           grammar.Dative,
			}),
		}
	}
	e := &morph.Entry{Lemma: "schnell", Wordclass: grammar.Adjective,
		Inflections: []morph.Record{mk(grammar.Weak), mk(grammar.Strong)}}

	var res reconcile.Result
	reconcile.Reduce(e, &res)
	assert.Len(t, e.Inflections, 1)
}

func TestResultMergeAndSummary(t *testing.T) {
	a := &reconcile.Result{EntriesSeen: 2, EntriesChanged: 1, RecordsAdded: 3}
	b := &reconcile.Result{EntriesSeen: 1, AlreadyPlural: 1}
	b.AddError(assertErr{})

	a.Merge(b)
	assert.Equal(t, 3, a.EntriesSeen)
	assert.Equal(t, 1, a.FilesFailed)
	assert.True(t, a.HasErrors())
	assert.Contains(t, a.Summary(), "3 entries seen")
	assert.Contains(t, a.Summary(), "1 files failed")
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
