// Package corpus reads and writes the primary dataset: sharded XML
// lexicon documents. It converts between the wire schema and the canonical
// morph entry model, and carries the split and concatenate pipeline
// stages.
package corpus

import (
	"encoding/xml"
	"io"
	"os"

	"github.com/wordforge/morphmerge/pkg/errors"
	"github.com/wordforge/morphmerge/pkg/grammar"
	"github.com/wordforge/morphmerge/pkg/morph"
)

// lexiconXML is the shard document root.
type lexiconXML struct {
	XMLName xml.Name   `xml:"lexicon"`
	Entries []entryXML `xml:"entry"`
}

// entryXML is one primary entry on the wire. The inflection units live
// under a class-specific wrapper element.
type entryXML struct {
	Lemma     string    `xml:"lemma,attr"`
	Wordclass string    `xml:"wordclass,attr"`
	ID        string    `xml:"id,attr"`
	Source    string    `xml:"source,attr,omitempty"`
	Noun      *classXML `xml:"noun"`
	Verb      *classXML `xml:"verb"`
	Adjective *classXML `xml:"adjective"`
}

type classXML struct {
	Inflections []inflXML `xml:"infl"`
}

// inflXML is one inflection unit: the wordform, the grammar attributes,
// and the mandated generation-provenance attributes.
type inflXML struct {
	Form           string `xml:"form,attr"`
	Number         string `xml:"number,attr,omitempty"`
	Case           string `xml:"case,attr,omitempty"`
	Gender         string `xml:"gender,attr,omitempty"`
	Degree         string `xml:"degree,attr,omitempty"`
	InflectionType string `xml:"inflectionType,attr,omitempty"`
	Mood           string `xml:"mood,attr,omitempty"`
	Tense          string `xml:"tense,attr,omitempty"`
	Person         string `xml:"person,attr,omitempty"`
	NonFinType     string `xml:"nonFinType,attr,omitempty"`
	GenType        string `xml:"genType,attr,omitempty"`
	GenSource      string `xml:"genSource,attr,omitempty"`
	GenConfirmed   string `xml:"genConfirmed,attr,omitempty"`
}

// ReadShard parses one primary shard into canonical entries. Entries with
// an unknown wordclass are dropped, not fatal.
func ReadShard(path string) ([]morph.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	defer f.Close()

	entries, err := readEntries(f)
	if err != nil {
		return nil, errors.WrapParse("lexicon", path, err)
	}
	return entries, nil
}

func readEntries(r io.Reader) ([]morph.Entry, error) {
	var doc lexiconXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}

	entries := make([]morph.Entry, 0, len(doc.Entries))
	for _, xe := range doc.Entries {
		wc, ok := grammar.ParseWordclass(xe.Wordclass)
		if !ok {
			continue
		}
		e := morph.Entry{
			Lemma:     xe.Lemma,
			Wordclass: wc,
			ID:        xe.ID,
			SourceID:  xe.Source,
		}
		for _, xi := range xe.inflections() {
			e.Inflections = append(e.Inflections, xi.record(wc))
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (xe entryXML) inflections() []inflXML {
	switch {
	case xe.Noun != nil:
		return xe.Noun.Inflections
	case xe.Verb != nil:
		return xe.Verb.Inflections
	case xe.Adjective != nil:
		return xe.Adjective.Inflections
	}
	return nil
}

func (xi inflXML) record(wc grammar.Wordclass) morph.Record {
	values := map[grammar.Feature]grammar.Value{
		grammar.Number:         grammar.Normalize(grammar.Number, xi.Number),
		grammar.Case:           grammar.Normalize(grammar.Case, xi.Case),
		grammar.Gender:         grammar.Normalize(grammar.Gender, xi.Gender),
		grammar.Degree:         grammar.Normalize(grammar.Degree, xi.Degree),
		grammar.InflectionType: grammar.Normalize(grammar.InflectionType, xi.InflectionType),
		grammar.Mood:           grammar.Normalize(grammar.Mood, xi.Mood),
		grammar.Tense:          grammar.Normalize(grammar.Tense, xi.Tense),
		grammar.Person:         grammar.Normalize(grammar.Person, xi.Person),
		grammar.NonFinType:     grammar.Normalize(grammar.NonFinType, xi.NonFinType),
	}
	return morph.Record{
		Wordform:     xi.Form,
		Wordclass:    wc,
		Features:     morph.NewFeatureSet(wc, values),
		GenType:      xi.GenType,
		GenSource:    xi.GenSource,
		GenConfirmed: xi.GenConfirmed,
	}
}

// WriteShard serializes entries back to a shard document.
func WriteShard(path string, entries []morph.Entry) error {
	doc := lexiconXML{Entries: make([]entryXML, 0, len(entries))}
	for i := range entries {
		doc.Entries = append(doc.Entries, toXML(&entries[i]))
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.WrapResource("write", "corpus", path, err)
	}
	data = append([]byte(xml.Header), data...)
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

func toXML(e *morph.Entry) entryXML {
	xe := entryXML{
		Lemma:     e.Lemma,
		Wordclass: e.Wordclass.String(),
		ID:        e.ID,
		Source:    e.SourceID,
	}
	cls := &classXML{Inflections: make([]inflXML, 0, len(e.Inflections))}
	for _, r := range e.Inflections {
		cls.Inflections = append(cls.Inflections, toInflXML(r))
	}
	switch e.Wordclass {
	case grammar.Noun:
		xe.Noun = cls
	case grammar.Verb:
		xe.Verb = cls
	case grammar.Adjective:
		xe.Adjective = cls
	}
	return xe
}

func toInflXML(r morph.Record) inflXML {
	get := func(f grammar.Feature) string {
		return r.Features.Get(f).String()
	}
	return inflXML{
		Form:           r.Wordform,
		Number:         get(grammar.Number),
		Case:           get(grammar.Case),
		Gender:         get(grammar.Gender),
		Degree:         get(grammar.Degree),
		InflectionType: get(grammar.InflectionType),
		Mood:           get(grammar.Mood),
		Tense:          get(grammar.Tense),
		Person:         get(grammar.Person),
		NonFinType:     get(grammar.NonFinType),
		GenType:        r.GenType,
		GenSource:      r.GenSource,
		GenConfirmed:   r.GenConfirmed,
	}
}
