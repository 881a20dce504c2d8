package morph

import "strings"

// Signature computes the canonical identity key of a record: the wordform
// followed by every asserted "feature:value" pair, joined with "_", pairs
// sorted alphabetically by feature name. Two records are the same form iff
// their signatures are equal; wordform equality alone is insufficient
// because homographs across feature combinations must stay distinct.
func Signature(r Record) string {
	var sb strings.Builder
	sb.WriteString(r.Wordform)
	for _, p := range r.Features.Pairs() {
		sb.WriteByte('_')
		sb.WriteString(p.Feature.String())
		sb.WriteByte(':')
		sb.WriteString(p.Value.String())
	}
	return sb.String()
}

// SignatureSet is a set of record signatures.
type SignatureSet map[string]struct{}

// NewSignatureSet collects the signatures of recs.
func NewSignatureSet(recs []Record) SignatureSet {
	set := make(SignatureSet, len(recs))
	for _, r := range recs {
		set.Add(Signature(r))
	}
	return set
}

// Add inserts sig into the set.
func (s SignatureSet) Add(sig string) {
	s[sig] = struct{}{}
}

// Has reports whether sig is in the set.
func (s SignatureSet) Has(sig string) bool {
	_, ok := s[sig]
	return ok
}

// Dedupe returns recs with duplicate signatures removed, keeping the first
// occurrence and preserving order.
func Dedupe(recs []Record) []Record {
	seen := make(SignatureSet, len(recs))
	out := recs[:0:0]
	for _, r := range recs {
		sig := Signature(r)
		if seen.Has(sig) {
			continue
		}
		seen.Add(sig)
		out = append(out, r)
	}
	return out
}
