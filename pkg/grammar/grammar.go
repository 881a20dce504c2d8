// Package grammar defines the canonical morphological vocabulary shared by
// every component of the morphmerge system: wordclasses, feature kinds, and
// the closed set of canonical feature values. It also provides the feature
// normalizer that maps raw source-specific abbreviations onto that
// vocabulary.
//
// The three input corpora each use their own encoding for the same grammar
// ("sg", "Sg", "singular"; "akk", "Acc", ...). Everything downstream of the
// record parsers operates exclusively on the canonical values defined here.
package grammar

import "strings"

// Wordclass is the part of speech of a lexical entry. Only the three
// inflecting German wordclasses handled by the pipeline are represented.
type Wordclass string

// Supported wordclasses.
const (
	Noun      Wordclass = "noun"
	Verb      Wordclass = "verb"
	Adjective Wordclass = "adjective"
)

// String returns the wordclass name.
func (wc Wordclass) String() string {
	return string(wc)
}

// Valid reports whether wc is one of the supported wordclasses.
func (wc Wordclass) Valid() bool {
	switch wc {
	case Noun, Verb, Adjective:
		return true
	}
	return false
}

// wordclassAliases maps source-specific wordclass spellings to the canonical
// wordclass. The tagged legacy corpus uses the short pos codes n/v/adj.
var wordclassAliases = map[string]Wordclass{
	"n":         Noun,
	"noun":      Noun,
	"v":         Verb,
	"verb":      Verb,
	"adj":       Adjective,
	"adjective": Adjective,
}

// ParseWordclass resolves a raw wordclass spelling to its canonical value.
// The second return is false for unrecognized spellings.
func ParseWordclass(raw string) (Wordclass, bool) {
	wc, ok := wordclassAliases[strings.ToLower(strings.TrimSpace(raw))]
	return wc, ok
}

// Feature identifies one grammatical dimension of an inflected form.
type Feature string

// The fixed feature inventory. Which features apply depends on the
// wordclass; see FeaturesFor.
const (
	Number         Feature = "number"
	Case           Feature = "case"
	Gender         Feature = "gender"
	Degree         Feature = "degree"
	InflectionType Feature = "inflectionType"
	Mood           Feature = "mood"
	Tense          Feature = "tense"
	Person         Feature = "person"
	NonFinType     Feature = "nonFinType"
)

// String returns the feature name.
func (f Feature) String() string {
	return string(f)
}

// Value is a canonical feature value. The zero value "" means the feature
// is not asserted for a form.
type Value string

// Unset is the explicit not-asserted value.
const Unset Value = ""

// Canonical feature values.
const (
	Singular Value = "singular"
	Plural   Value = "plural"

	Nominative Value = "nominative"
	Accusative Value = "accusative"
	Genitive   Value = "genitive"
	Dative     Value = "dative"

	Masculine   Value = "masculine"
	Feminine    Value = "feminine"
	Neuter      Value = "neuter"
	Unspecified Value = "unspecified"

	Positive    Value = "positive"
	Comparative Value = "comparative"
	Superlative Value = "superlative"

	Strong Value = "strong"
	Weak   Value = "weak"
	Mixed  Value = "mixed"

	Indicative  Value = "indicative"
	Subjunctive Value = "subjunctive"
	Imperative  Value = "imperative"

	Present Value = "present"
	Past    Value = "past"

	First  Value = "first"
	Second Value = "second"
	Third  Value = "third"

	Infinitive Value = "infinitive"
	Participle Value = "participle"
)

// IsSet reports whether v carries an asserted value.
func (v Value) IsSet() bool {
	return v != Unset
}

// String returns the canonical value name.
func (v Value) String() string {
	return string(v)
}

// featuresByClass lists, per wordclass, the features that may legally be
// set on a form of that class, in the canonical per-class order used by the
// sort engine.
var featuresByClass = map[Wordclass][]Feature{
	Noun:      {Number, Case, Gender},
	Adjective: {Degree, InflectionType, Number, Gender, Case},
	Verb:      {NonFinType, Mood, Tense, Number, Person},
}

// FeaturesFor returns the applicable features for wc in canonical order.
// The returned slice must not be modified.
func FeaturesFor(wc Wordclass) []Feature {
	return featuresByClass[wc]
}

// Applies reports whether feature f is applicable to wordclass wc.
func Applies(wc Wordclass, f Feature) bool {
	for _, g := range featuresByClass[wc] {
		if g == f {
			return true
		}
	}
	return false
}
