package tabular

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordforge/morphmerge/pkg/grammar"
	"github.com/wordforge/morphmerge/pkg/morph"
)

func nounLayout() Layout {
	l, _ := DefaultLayout(grammar.Noun)
	return l
}

func verbLayout() Layout {
	l, _ := DefaultLayout(grammar.Verb)
	return l
}

func TestParseNounRow(t *testing.T) {
	recs, stats, err := Parse(strings.NewReader("m\tpl\tdat\tTischen\t-\n"), nounLayout())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 1, stats.Lines)
	assert.Equal(t, 0, stats.Dropped)

	r := recs[0]
	assert.Equal(t, "Tischen", r.Wordform)
	assert.Equal(t, grammar.Masculine, r.Features.Get(grammar.Gender))
	assert.Equal(t, grammar.Plural, r.Features.Get(grammar.Number))
	assert.Equal(t, grammar.Dative, r.Features.Get(grammar.Case))
}

func TestParseDropsWrongColumnCount(t *testing.T) {
	recs, stats, err := Parse(strings.NewReader("m\tpl\tTischen\n"), nounLayout())
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Equal(t, 1, stats.Dropped)
}

func TestParseDropsMultiWordForms(t *testing.T) {
	recs, stats, err := Parse(strings.NewReader("m\tsg\tnom\tder Tisch\t-\n"), nounLayout())
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Equal(t, 1, stats.Dropped)
}

func TestParseVerbPersonNumber(t *testing.T) {
	recs, _, err := Parse(strings.NewReader("ind\tpres\t3_sg\ter\tfährt\t-\t-\n"), verbLayout())
	require.NoError(t, err)
	require.Len(t, recs, 1)

	r := recs[0]
	assert.Equal(t, "fährt", r.Wordform)
	assert.Equal(t, grammar.Indicative, r.Features.Get(grammar.Mood))
	assert.Equal(t, grammar.Present, r.Features.Get(grammar.Tense))
	assert.Equal(t, grammar.Third, r.Features.Get(grammar.Person))
	assert.Equal(t, grammar.Singular, r.Features.Get(grammar.Number))
}

func TestParseVerbMalformedPersonNumber(t *testing.T) {
	recs, _, err := Parse(strings.NewReader("ind\tpres\t3sg\ter\tfährt\t-\t-\n"), verbLayout())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.False(t, recs[0].Features.Get(grammar.Person).IsSet())
	assert.False(t, recs[0].Features.Get(grammar.Number).IsSet())
}

func TestParseInfinitiveNulling(t *testing.T) {
	recs, _, err := Parse(strings.NewReader("inf\tpres\t3_sg\t-\tfahren\t-\t-\n"), verbLayout())
	require.NoError(t, err)
	require.Len(t, recs, 1)

	r := recs[0]
	assert.Equal(t, grammar.Infinitive, r.Features.Get(grammar.NonFinType))
	for _, f := range []grammar.Feature{grammar.Mood, grammar.Tense, grammar.Number, grammar.Person} {
		assert.False(t, r.Features.Get(f).IsSet(), "feature %s on infinitive", f)
	}
}

func TestParseBracketUnpacking(t *testing.T) {
	recs, _, err := Parse(strings.NewReader("inf\t-\t-\t-\tab[zu]fahren\t-\t-\n"), verbLayout())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "abfahren", recs[0].Wordform)
	assert.Equal(t, "abzufahren", recs[1].Wordform)
	assert.Equal(t, recs[0].Features, recs[1].Features)
}

func TestParseGenderUnpacking(t *testing.T) {
	recs, _, err := Parse(strings.NewReader("mf\tsg\tnom\tHalfter\t-\n"), nounLayout())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, grammar.Masculine, recs[0].Features.Get(grammar.Gender))
	assert.Equal(t, grammar.Feminine, recs[1].Features.Get(grammar.Gender))
	assert.Equal(t, recs[0].Wordform, recs[1].Wordform)

	// mn folds to masculine without unpacking.
	recs, _, err = Parse(strings.NewReader("mn\tsg\tnom\tHalfter\t-\n"), nounLayout())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, grammar.Masculine, recs[0].Features.Get(grammar.Gender))
}

func TestParseAdjectiveDegreeDefault(t *testing.T) {
	l, ok := DefaultLayout(grammar.Adjective)
	require.True(t, ok)
	recs, _, err := Parse(strings.NewReader("st\tsg\tm\tnom\tschneller\t-\n"), l)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, grammar.Positive, recs[0].Features.Get(grammar.Degree))
	assert.Equal(t, grammar.Strong, recs[0].Features.Get(grammar.InflectionType))
}

func TestLoadLayoutFromYAML(t *testing.T) {
	dir := t.TempDir()
	content := "wordclass: adjective\ncolumns:\n- degree\n- inflectionType\n- number\n- gender\n- case\n- wordform\n- '-'\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, LayoutFile), []byte(content), 0o644))

	l, err := LoadLayout(dir)
	require.NoError(t, err)
	assert.Equal(t, grammar.Adjective, l.Wordclass)
	require.Len(t, l.Columns, 7)

	recs, _, err := Parse(strings.NewReader("comp\twk\tsg\tf\tgen\tschnelleren\t-\n"), l)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, grammar.Comparative, recs[0].Features.Get(grammar.Degree))
	assert.Equal(t, grammar.Weak, recs[0].Features.Get(grammar.InflectionType))
}

func TestLoadLayoutFallsBackToDirName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nouns")
	require.NoError(t, os.Mkdir(dir, 0o755))

	l, err := LoadLayout(dir)
	require.NoError(t, err)
	assert.Equal(t, grammar.Noun, l.Wordclass)
}

func TestLoadLayoutUnknownDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "particles")
	require.NoError(t, os.Mkdir(dir, 0o755))

	_, err := LoadLayout(dir)
	assert.Error(t, err)
}

func TestParseSignatureScenario(t *testing.T) {
	// Raw (gender absent, case dat, number pl) on Tisch must produce the
	// canonical dative-plural signature.
	recs, _, err := Parse(strings.NewReader("\tpl\tdat\tTisch\t-\n"), nounLayout())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Tisch_case:dative_number:plural", morph.Signature(recs[0]))
}
