package tagged

import (
	"encoding/xml"
	"io"
	"os"

	"github.com/wordforge/morphmerge/pkg/errors"
	"github.com/wordforge/morphmerge/pkg/grammar"
	"github.com/wordforge/morphmerge/pkg/morph"
)

// Dictionary is the XML document root of a legacy corpus shard.
type Dictionary struct {
	XMLName xml.Name `xml:"dictionary"`
	Entries []Entry  `xml:"entry"`
}

// Entry is one legacy dictionary entry.
type Entry struct {
	ID    string `xml:"id,attr"`
	POS   string `xml:"pos,attr"`
	Lemma string `xml:"lemma"`
	Decls []Decl `xml:"decl"`
}

// Decl is one tagged declension: the wordform with its compact tag.
type Decl struct {
	Tag  string `xml:"tag,attr"`
	Form string `xml:",chardata"`
}

// ParseShard reads one legacy corpus shard.
func ParseShard(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	defer f.Close()

	var dict Dictionary
	if err := xml.NewDecoder(f).Decode(&dict); err != nil {
		return nil, errors.WrapParse("tagged", path, err)
	}
	return &dict, nil
}

// ParseReader decodes a legacy dictionary document from r.
func ParseReader(r io.Reader) (*Dictionary, error) {
	var dict Dictionary
	if err := xml.NewDecoder(r).Decode(&dict); err != nil {
		return nil, errors.WrapParse("tagged", "", err)
	}
	return &dict, nil
}

// Records decomposes every declension of e into canonical records. The
// entry's pos attribute decides the wordclass; a declension tag may name a
// different wordclass marker, in which case the tag's own marker wins.
// Declensions without a wordclass marker, and non-viable wordforms, are
// dropped.
func (e Entry) Records() []morph.Record {
	var out []morph.Record
	for _, d := range e.Decls {
		out = append(out, d.records()...)
	}
	return out
}

// records expands one tagged declension into the Cartesian product of its
// case, mood, and person alternatives.
func (d Decl) records() []morph.Record {
	wc, fragments, ok := DecomposeTag(d.Tag)
	if !ok {
		return nil
	}

	tf := decomposeFragments(fragments)
	var out []morph.Record
	for _, values := range tf.expand() {
		rec := morph.Record{
			Wordform:  d.Form,
			Wordclass: wc,
			Features:  morph.NewFeatureSet(wc, values),
		}
		if rec.Viable() {
			out = append(out, rec)
		}
	}
	return out
}

// Wordclass resolves the entry's pos attribute.
func (e Entry) Wordclass() (grammar.Wordclass, bool) {
	return grammar.ParseWordclass(e.POS)
}
