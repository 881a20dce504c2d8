package morph

import (
	"sort"

	"github.com/wordforge/morphmerge/pkg/grammar"
)

// unrankedWeight is the rank contributed by an absent or unrecognized
// feature value, chosen above every real rank so such forms sort last
// within their bucket.
const unrankedWeight = 9

// valueRanks assigns each canonical value its preference rank within its
// feature. Lower sorts earlier.
var valueRanks = map[grammar.Feature]map[grammar.Value]int{
	grammar.Number: {
		grammar.Singular: 1,
		grammar.Plural:   2,
	},
	grammar.Case: {
		grammar.Nominative: 1,
		grammar.Accusative: 2,
		grammar.Genitive:   3,
		grammar.Dative:     4,
	},
	grammar.Gender: {
		grammar.Masculine:   1,
		grammar.Feminine:    2,
		grammar.Neuter:      3,
		grammar.Unspecified: 4,
	},
	grammar.Degree: {
		grammar.Positive:    1,
		grammar.Comparative: 2,
		grammar.Superlative: 3,
	},
	grammar.InflectionType: {
		grammar.Strong: 1,
		grammar.Weak:   2,
		grammar.Mixed:  3,
	},
	grammar.Mood: {
		grammar.Indicative:  1,
		grammar.Subjunctive: 2,
		grammar.Imperative:  3,
	},
	grammar.Tense: {
		grammar.Present: 1,
		grammar.Past:    2,
	},
	grammar.Person: {
		grammar.First:  1,
		grammar.Second: 2,
		grammar.Third:  3,
	},
	grammar.NonFinType: {
		grammar.Infinitive: 1,
		grammar.Participle: 2,
	},
}

// classWeights lists the per-wordclass feature order used to build the
// positional sort key. The first feature varies slowest (highest power of
// ten), the last varies fastest.
var classWeights = map[grammar.Wordclass][]struct {
	feature grammar.Feature
	weight  int
}{
	grammar.Noun: {
		{grammar.Number, 100},
		{grammar.Case, 1},
	},
	grammar.Adjective: {
		{grammar.Degree, 10000},
		{grammar.InflectionType, 1000},
		{grammar.Number, 100},
		{grammar.Gender, 10},
		{grammar.Case, 1},
	},
	grammar.Verb: {
		{grammar.NonFinType, 10000},
		{grammar.Mood, 1000},
		{grammar.Tense, 100},
		{grammar.Number, 10},
		{grammar.Person, 1},
	},
}

// SortKey computes the canonical numeric ordering key for r. The key is a
// total order within a wordclass: the most significant grammatical feature
// varies slowest, and absent or unrecognized values rank last at their
// position.
func SortKey(r Record) int {
	key := 0
	for _, cw := range classWeights[r.Wordclass] {
		rank := unrankedWeight
		if v := r.Features.Get(cw.feature); v.IsSet() {
			if rk, ok := valueRanks[cw.feature][v]; ok {
				rank = rk
			}
		}
		key += rank * cw.weight
	}
	return key
}

// SortRecords orders recs canonically in place: primarily by SortKey,
// ties broken by signature so the order is fully deterministic.
func SortRecords(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		ki, kj := SortKey(recs[i]), SortKey(recs[j])
		if ki != kj {
			return ki < kj
		}
		return Signature(recs[i]) < Signature(recs[j])
	})
}

// SortDedupe removes duplicate signatures and canonically orders the
// result. Dedupe runs first so ties in the sort never depend on insertion
// order.
func SortDedupe(recs []Record) []Record {
	out := Dedupe(recs)
	SortRecords(out)
	return out
}
