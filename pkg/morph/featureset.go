// Package morph defines the canonical inflection record model: feature
// sets, inflection records, entries, the signature identity key, and the
// canonical sort order. All three source corpora are parsed into these
// types before any reconciliation decision is made.
package morph

import (
	"github.com/wordforge/morphmerge/pkg/grammar"
)

// FeatureSet is an immutable mapping from the fixed feature inventory to
// canonical values. Absent features hold grammar.Unset. A FeatureSet is
// always consistent with its record's wordclass: features that do not apply
// to the wordclass are never set, and the verb-specific derived rules
// (infinitives and imperatives) are enforced at construction time.
type FeatureSet struct {
	number     grammar.Value
	caseVal    grammar.Value
	gender     grammar.Value
	degree     grammar.Value
	inflType   grammar.Value
	mood       grammar.Value
	tense      grammar.Value
	person     grammar.Value
	nonFinType grammar.Value
}

// FeaturePair is one asserted feature of a FeatureSet.
type FeaturePair struct {
	Feature grammar.Feature
	Value   grammar.Value
}

// NewFeatureSet builds a FeatureSet for wordclass wc from the given raw
// canonical values. Values for features that do not apply to wc are
// discarded, then the verb derived rules are applied:
//
//   - nonFinType=infinitive forces every other verb feature to Unset
//     (infinitives carry no number, person, tense, or mood by definition);
//   - mood=imperative forces tense to Unset.
func NewFeatureSet(wc grammar.Wordclass, values map[grammar.Feature]grammar.Value) FeatureSet {
	var fs FeatureSet
	for f, v := range values {
		if !grammar.Applies(wc, f) {
			continue
		}
		fs.set(f, v)
	}
	fs.applyVerbRules(wc)
	return fs
}

// Get returns the value for feature f, or grammar.Unset.
func (fs FeatureSet) Get(f grammar.Feature) grammar.Value {
	switch f {
	case grammar.Number:
		return fs.number
	case grammar.Case:
		return fs.caseVal
	case grammar.Gender:
		return fs.gender
	case grammar.Degree:
		return fs.degree
	case grammar.InflectionType:
		return fs.inflType
	case grammar.Mood:
		return fs.mood
	case grammar.Tense:
		return fs.tense
	case grammar.Person:
		return fs.person
	case grammar.NonFinType:
		return fs.nonFinType
	}
	return grammar.Unset
}

// With returns a copy of fs with feature f set to v and the wordclass
// rules re-applied. fs itself is unchanged.
func (fs FeatureSet) With(wc grammar.Wordclass, f grammar.Feature, v grammar.Value) FeatureSet {
	out := fs
	if grammar.Applies(wc, f) {
		out.set(f, v)
	}
	out.applyVerbRules(wc)
	return out
}

// Narrow returns a copy of fs with every feature not listed in keep
// cleared. Used by the reduction policy to narrow a record to the basic
// feature subset.
func (fs FeatureSet) Narrow(keep ...grammar.Feature) FeatureSet {
	kept := make(map[grammar.Feature]bool, len(keep))
	for _, f := range keep {
		kept[f] = true
	}
	var out FeatureSet
	for _, f := range allFeatures {
		if kept[f] {
			out.set(f, fs.Get(f))
		}
	}
	return out
}

// Pairs returns the asserted features of fs sorted by feature name. The
// alphabetic order makes every derived artifact (signatures, serialized
// attributes) deterministic.
func (fs FeatureSet) Pairs() []FeaturePair {
	var pairs []FeaturePair
	for _, f := range allFeatures {
		if v := fs.Get(f); v.IsSet() {
			pairs = append(pairs, FeaturePair{Feature: f, Value: v})
		}
	}
	return pairs
}

// allFeatures is the full feature inventory in alphabetic order of the
// feature name. Pairs and Signature depend on this ordering.
var allFeatures = []grammar.Feature{
	grammar.Case,
	grammar.Degree,
	grammar.Gender,
	grammar.InflectionType,
	grammar.Mood,
	grammar.NonFinType,
	grammar.Number,
	grammar.Person,
	grammar.Tense,
}

func (fs *FeatureSet) set(f grammar.Feature, v grammar.Value) {
	switch f {
	case grammar.Number:
		fs.number = v
	case grammar.Case:
		fs.caseVal = v
	case grammar.Gender:
		fs.gender = v
	case grammar.Degree:
		fs.degree = v
	case grammar.InflectionType:
		fs.inflType = v
	case grammar.Mood:
		fs.mood = v
	case grammar.Tense:
		fs.tense = v
	case grammar.Person:
		fs.person = v
	case grammar.NonFinType:
		fs.nonFinType = v
	}
}

func (fs *FeatureSet) applyVerbRules(wc grammar.Wordclass) {
	if wc != grammar.Verb {
		return
	}
	if fs.nonFinType == grammar.Infinitive || fs.mood == grammar.Infinitive {
		*fs = FeatureSet{nonFinType: grammar.Infinitive}
		return
	}
	// Non-finite markers arriving through the mood column relocate to
	// nonFinType.
	if fs.mood == grammar.Participle {
		fs.nonFinType = grammar.Participle
		fs.mood = grammar.Unset
	}
	if fs.mood == grammar.Imperative {
		fs.tense = grammar.Unset
	}
}
