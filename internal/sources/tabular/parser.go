package tabular

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/wordforge/morphmerge/pkg/errors"
	"github.com/wordforge/morphmerge/pkg/grammar"
	"github.com/wordforge/morphmerge/pkg/morph"
)

// Stats counts what a parse saw and what it dropped. Dropped rows are not
// errors: malformed input degrades the candidate set, never the file.
type Stats struct {
	Lines   int
	Records int
	Dropped int
}

// ParseFile parses one inflection table into canonical records using the
// given layout.
func ParseFile(path string, layout Layout) ([]morph.Record, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, errors.WrapIO("read", path, err)
	}
	defer f.Close()
	return Parse(f, layout)
}

// Parse parses tab-delimited table lines from r. Per line: wrong column
// count drops the line; the combined person_number column splits on "_";
// bracketed wordforms unpack into two variant records; the joint genders
// mf and fm unpack into one record per gender. Records failing the
// viability rule (empty wordform or internal whitespace) are dropped.
func Parse(r io.Reader, layout Layout) ([]morph.Record, Stats, error) {
	var (
		records []morph.Record
		stats   Stats
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		stats.Lines++

		recs, ok := parseLine(line, layout)
		if !ok {
			stats.Dropped++
			continue
		}
		records = append(records, recs...)
	}
	if err := scanner.Err(); err != nil {
		return records, stats, errors.WrapParse("tabular", "", err)
	}

	stats.Records = len(records)
	return records, stats, nil
}

// parseLine turns one table row into its expanded viable records. The
// second return is false when the row contributes nothing.
func parseLine(line string, layout Layout) ([]morph.Record, bool) {
	cols := strings.Split(line, "\t")
	if len(cols) != len(layout.Columns) {
		return nil, false
	}

	wordform := ""
	raw := make(map[grammar.Feature]string)
	rawGender := ""

	for i, name := range layout.Columns {
		val := strings.TrimSpace(cols[i])
		switch name {
		case ColIgnore, ColPronoun:
			// skipped
		case ColWordform:
			wordform = val
		case ColPersonNumber:
			person, number := splitPersonNumber(val)
			raw[grammar.Person] = person
			raw[grammar.Number] = number
		case ColGender:
			rawGender = val
			raw[grammar.Gender] = val
		default:
			raw[grammar.Feature(name)] = val
		}
	}

	for feature, val := range layout.Defaults {
		f := grammar.Feature(feature)
		if _, present := raw[f]; !present {
			raw[f] = val
		}
	}

	values := make(map[grammar.Feature]grammar.Value, len(raw))
	for f, v := range raw {
		values[f] = grammar.Normalize(f, v)
	}

	base := morph.Record{
		Wordform:  wordform,
		Wordclass: layout.Wordclass,
		Features:  morph.NewFeatureSet(layout.Wordclass, values),
	}

	var out []morph.Record
	for _, rec := range base.ExpandBrackets() {
		for _, g := range expandGender(rec, rawGender) {
			if g.Viable() {
				out = append(out, g)
			}
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

// splitPersonNumber splits a combined "3_sg" value into raw person and
// number. An absent or malformed value yields both empty: the row then
// simply asserts neither feature.
func splitPersonNumber(val string) (person, number string) {
	parts := strings.Split(val, "_")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", ""
	}
	return parts[0], parts[1]
}

// expandGender unpacks the genuinely ambiguous joint genders mf and fm
// into two records, one per gender. The joint values mn and fn fold to a
// single gender in normalization instead; that asymmetry is inherited from
// the source corpus.
func expandGender(rec morph.Record, rawGender string) []morph.Record {
	if !grammar.AmbiguousGender(rawGender) {
		return []morph.Record{rec}
	}
	return []morph.Record{
		rec.WithFeature(grammar.Gender, grammar.Masculine),
		rec.WithFeature(grammar.Gender, grammar.Feminine),
	}
}
