package morph

import (
	"strings"

	"github.com/wordforge/morphmerge/pkg/grammar"
)

// Record is one inflected surface wordform with its canonical grammar
// features. Records are immutable once built; the expansion helpers return
// copies.
type Record struct {
	Wordform  string
	Wordclass grammar.Wordclass
	Features  FeatureSet

	// Generation provenance, mandated by the primary dataset schema.
	// Empty on records parsed from the secondary corpora.
	GenType      string
	GenSource    string
	GenConfirmed string
}

// Viable reports whether the record's wordform is usable as an inflection:
// non-empty and without internal whitespace. Multi-word forms are not true
// inflections for this pipeline and are rejected.
func (r Record) Viable() bool {
	if r.Wordform == "" {
		return false
	}
	return !strings.ContainsAny(r.Wordform, " \t")
}

// WithFeature returns a copy of r with one feature changed.
func (r Record) WithFeature(f grammar.Feature, v grammar.Value) Record {
	out := r
	out.Features = r.Features.With(r.Wordclass, f, v)
	return out
}

// ExpandBrackets unpacks bracketed optional material in the wordform.
// "ab[zu]fahren" yields two records: "abfahren" (content removed) and
// "abzufahren" (markers stripped, content retained), identical otherwise.
// A wordform without a well-formed bracket pair yields the record as-is.
// The result always holds one or two records, never more.
func (r Record) ExpandBrackets() []Record {
	min, max, ok := SplitBrackets(r.Wordform)
	if !ok {
		return []Record{r}
	}
	without := r
	without.Wordform = min
	with := r
	with.Wordform = max
	return []Record{without, with}
}

// SplitBrackets resolves one bracketed optional segment in s. It returns
// the minimal variant (content removed), the maximal variant (markers
// stripped, content retained), and whether a well-formed pair was found.
// Lemmas in the secondary corpus use the same convention, so the lemma
// index shares this helper.
func SplitBrackets(s string) (min, max string, ok bool) {
	open := strings.Index(s, "[")
	if open < 0 {
		return "", "", false
	}
	end := strings.Index(s[open:], "]")
	if end < 0 {
		return "", "", false
	}
	end += open
	min = s[:open] + s[end+1:]
	max = s[:open] + s[open+1:end] + s[end+1:]
	return min, max, true
}
