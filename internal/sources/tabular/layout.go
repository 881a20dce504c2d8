// Package tabular parses the tab-delimited secondary inflection tables
// (source A) into canonical morph records. Column positions are
// wordclass-dependent and configured per source subdirectory through a
// layout.yaml file, with built-in defaults per wordclass.
package tabular

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/wordforge/morphmerge/pkg/errors"
	"github.com/wordforge/morphmerge/pkg/grammar"
)

// Column names with a meaning beyond a plain feature name.
const (
	// ColWordform marks the surface form column.
	ColWordform = "wordform"
	// ColPersonNumber marks the combined person_number column of verb
	// tables ("3_sg" splits into person and number).
	ColPersonNumber = "person_number"
	// ColGender marks the gender column, which besides the feature value
	// carries packed pairs like "mf" that unpack into two records.
	ColGender = "gender"
	// ColIgnore marks a column the parser skips (pronouns, notes).
	ColIgnore = "-"
	// ColPronoun is skipped like ColIgnore but kept as a named constant
	// because every verb layout carries it.
	ColPronoun = "pronoun"
)

// Layout describes the column structure of one source subdirectory.
type Layout struct {
	// Wordclass of every table in the subdirectory.
	Wordclass grammar.Wordclass `yaml:"wordclass"`
	// Columns names each tab-delimited column in order: a feature name,
	// ColWordform, ColPersonNumber, ColPronoun, or ColIgnore.
	Columns []string `yaml:"columns"`
	// Defaults supplies raw feature values for features without a column,
	// e.g. degree: pos for the six-column adjective variant.
	Defaults map[string]string `yaml:"defaults"`
}

// LayoutFile is the per-subdirectory layout configuration file name.
const LayoutFile = "layout.yaml"

// defaultLayouts are used when a subdirectory carries no layout.yaml.
// They mirror the corpus conventions: verb tables have seven columns,
// noun tables five, adjective tables six (degree defaulted) or seven.
var defaultLayouts = map[grammar.Wordclass]Layout{
	grammar.Verb: {
		Wordclass: grammar.Verb,
		Columns:   []string{"mood", "tense", ColPersonNumber, ColPronoun, ColWordform, ColIgnore, ColIgnore},
	},
	grammar.Noun: {
		Wordclass: grammar.Noun,
		Columns:   []string{ColGender, "number", "case", ColWordform, ColIgnore},
	},
	grammar.Adjective: {
		Wordclass: grammar.Adjective,
		Columns:   []string{"inflectionType", "number", ColGender, "case", ColWordform, ColIgnore},
		Defaults:  map[string]string{"degree": "pos"},
	},
}

// DefaultLayout returns the built-in layout for wc.
func DefaultLayout(wc grammar.Wordclass) (Layout, bool) {
	l, ok := defaultLayouts[wc]
	return l, ok
}

// LoadLayout reads the layout for a source subdirectory. A missing
// layout.yaml falls back to the built-in layout for the wordclass named by
// the directory (nouns/, verbs/, adjectives/); a present but malformed file
// is an error.
func LoadLayout(dir string) (Layout, error) {
	path := filepath.Join(dir, LayoutFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return layoutFromDirName(dir)
		}
		return Layout{}, errors.WrapIO("read", path, err)
	}

	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.WrapParse("layout", path, err)
	}
	if err := l.validate(); err != nil {
		return Layout{}, errors.WrapParse("layout", path, err)
	}
	return l, nil
}

func layoutFromDirName(dir string) (Layout, error) {
	base := filepath.Base(filepath.Clean(dir))
	for raw, wc := range map[string]grammar.Wordclass{
		"nouns":      grammar.Noun,
		"verbs":      grammar.Verb,
		"adjectives": grammar.Adjective,
	} {
		if base == raw {
			return defaultLayouts[wc], nil
		}
	}
	return Layout{}, errors.WrapParse("layout", dir, errors.New("no layout.yaml and directory name names no wordclass"))
}

func (l Layout) validate() error {
	if !l.Wordclass.Valid() {
		return errors.New("unknown wordclass")
	}
	hasForm := false
	for _, c := range l.Columns {
		if c == ColWordform {
			hasForm = true
		}
	}
	if !hasForm {
		return errors.New("no wordform column")
	}
	return nil
}
