// Package tagged parses the legacy reference dictionary (source B): XML
// entries whose declensions carry compact "+"-joined morphological tags
// such as Pl+Dat+Masc+Adj. Tags decompose combinatorially: one fragment
// can assert several cases, moods, or persons at once, producing one
// record per combination.
package tagged

import (
	"strings"

	"github.com/wordforge/morphmerge/pkg/grammar"
)

// wordclassMarkers are the tag fragments that name the wordclass. The
// fragment scan walks the tag in reverse until one of these is hit;
// everything after the marker is a derivation or compounding marker and
// carries no grammar.
var wordclassMarkers = map[string]grammar.Wordclass{
	"Noun": grammar.Noun,
	"Verb": grammar.Verb,
	"Adj":  grammar.Adjective,
}

// simpleFragments maps single-valued tag fragments to the features they
// assert. PPres and PPast assert two features at once.
var simpleFragments = map[string][]struct {
	feature grammar.Feature
	value   grammar.Value
}{
	"Sg":    {{grammar.Number, grammar.Singular}},
	"Pl":    {{grammar.Number, grammar.Plural}},
	"Masc":  {{grammar.Gender, grammar.Masculine}},
	"Fem":   {{grammar.Gender, grammar.Feminine}},
	"Neut":  {{grammar.Gender, grammar.Neuter}},
	"Pos":   {{grammar.Degree, grammar.Positive}},
	"Comp":  {{grammar.Degree, grammar.Comparative}},
	"Sup":   {{grammar.Degree, grammar.Superlative}},
	"St":    {{grammar.InflectionType, grammar.Strong}},
	"Wk":    {{grammar.InflectionType, grammar.Weak}},
	"Mixed": {{grammar.InflectionType, grammar.Mixed}},
	"Pres":  {{grammar.Tense, grammar.Present}},
	"Past":  {{grammar.Tense, grammar.Past}},
	"Inf":   {{grammar.NonFinType, grammar.Infinitive}},
	"PPres": {{grammar.NonFinType, grammar.Participle}, {grammar.Tense, grammar.Present}},
	"PPast": {{grammar.NonFinType, grammar.Participle}, {grammar.Tense, grammar.Past}},
}

// caseCodes are the three-letter case codes; a case fragment is a
// concatenation of one or more of them (NomAccDat asserts three cases).
var caseCodes = map[string]grammar.Value{
	"Nom": grammar.Nominative,
	"Acc": grammar.Accusative,
	"Gen": grammar.Genitive,
	"Dat": grammar.Dative,
}

// moodCodes are the mood codes; a mood fragment may concatenate them
// (IndcSubj asserts both moods).
var moodCodes = map[string]grammar.Value{
	"Indc": grammar.Indicative,
	"Ind":  grammar.Indicative,
	"Subj": grammar.Subjunctive,
	"Imp":  grammar.Imperative,
}

// personCodes map digit runes; a person fragment is a digit run ("13"
// asserts first and third person).
var personCodes = map[rune]grammar.Value{
	'1': grammar.First,
	'2': grammar.Second,
	'3': grammar.Third,
}

// tagFeatures is the decomposed content of one tag: the single-valued
// features plus the multi-valued case, mood, and person alternatives that
// expand into a Cartesian product of records.
type tagFeatures struct {
	single  map[grammar.Feature]grammar.Value
	cases   []grammar.Value
	moods   []grammar.Value
	persons []grammar.Value
}

// DecomposeTag splits a "+"-joined tag into its wordclass and grammar
// fragments. It returns false when no wordclass marker is present.
func DecomposeTag(tag string) (grammar.Wordclass, []string, bool) {
	fragments := strings.Split(tag, "+")
	for i := len(fragments) - 1; i >= 0; i-- {
		if wc, ok := wordclassMarkers[fragments[i]]; ok {
			return wc, fragments[:i], true
		}
	}
	return "", nil, false
}

// decomposeFragments resolves each grammar fragment against the fragment
// tables. Unrecognized fragments assert nothing.
func decomposeFragments(fragments []string) tagFeatures {
	tf := tagFeatures{single: make(map[grammar.Feature]grammar.Value)}
	for _, frag := range fragments {
		if effects, ok := simpleFragments[frag]; ok {
			for _, e := range effects {
				tf.single[e.feature] = e.value
			}
			continue
		}
		if cases, ok := splitRun(frag, 3, caseCodes); ok {
			tf.cases = append(tf.cases, cases...)
			continue
		}
		if moods, ok := splitMoods(frag); ok {
			tf.moods = append(tf.moods, moods...)
			continue
		}
		if persons, ok := splitPersons(frag); ok {
			tf.persons = append(tf.persons, persons...)
		}
	}
	return tf
}

// splitRun decomposes frag into fixed-width code chunks; every chunk must
// resolve or the fragment is rejected as a whole.
func splitRun(frag string, width int, codes map[string]grammar.Value) ([]grammar.Value, bool) {
	if frag == "" || len(frag)%width != 0 {
		return nil, false
	}
	var out []grammar.Value
	for i := 0; i < len(frag); i += width {
		v, ok := codes[frag[i:i+width]]
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

// splitMoods decomposes a mood fragment greedily, longest code first, so
// IndcSubj yields indicative and subjunctive.
func splitMoods(frag string) ([]grammar.Value, bool) {
	if frag == "" {
		return nil, false
	}
	var out []grammar.Value
	rest := frag
	for rest != "" {
		matched := false
		for _, code := range []string{"Indc", "Subj", "Ind", "Imp"} {
			if strings.HasPrefix(rest, code) {
				out = append(out, moodCodes[code])
				rest = rest[len(code):]
				matched = true
				break
			}
		}
		if !matched {
			return nil, false
		}
	}
	return out, true
}

// splitPersons decomposes a digit-run person fragment.
func splitPersons(frag string) ([]grammar.Value, bool) {
	if frag == "" {
		return nil, false
	}
	var out []grammar.Value
	for _, r := range frag {
		v, ok := personCodes[r]
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

// expand builds the Cartesian product of the multi-valued alternatives.
// Empty alternative lists contribute a single unset slot.
func (tf tagFeatures) expand() []map[grammar.Feature]grammar.Value {
	cases := orUnset(tf.cases)
	moods := orUnset(tf.moods)
	persons := orUnset(tf.persons)

	var out []map[grammar.Feature]grammar.Value
	for _, c := range cases {
		for _, m := range moods {
			for _, p := range persons {
				values := make(map[grammar.Feature]grammar.Value, len(tf.single)+3)
				for f, v := range tf.single {
					values[f] = v
				}
				values[grammar.Case] = c
				values[grammar.Mood] = m
				values[grammar.Person] = p
				out = append(out, values)
			}
		}
	}
	return out
}

func orUnset(vals []grammar.Value) []grammar.Value {
	if len(vals) == 0 {
		return []grammar.Value{grammar.Unset}
	}
	return vals
}
