package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordforge/morphmerge/internal/corpus"
	"github.com/wordforge/morphmerge/pkg/grammar"
	"github.com/wordforge/morphmerge/pkg/reconcile"
)

const primaryShard = `<?xml version="1.0" encoding="UTF-8"?>
<lexicon>
  <entry lemma="Tisch" wordclass="noun" id="e100" source="n100">
    <noun>
      <infl form="Tisch" number="singular" case="nominative"/>
      <infl form="Tisches" number="singular" case="genitive"/>
      <infl form="Tische" number="singular" case="dative"/>
    </noun>
  </entry>
  <entry lemma="Stuhl" wordclass="noun" id="e101" source="n101">
    <noun>
      <infl form="Stuhl" number="singular" case="nominative" gender="masculine"/>
      <infl form="Stühle" number="plural" case="nominative" gender="masculine"/>
    </noun>
  </entry>
</lexicon>
`

const legacyShard = `<?xml version="1.0" encoding="UTF-8"?>
<dictionary>
  <entry id="n100" pos="n">
    <lemma>Tisch</lemma>
    <decl tag="Pl+NomAccGen+Noun">Tische</decl>
    <decl tag="Pl+Dat+Noun">Tischen</decl>
  </entry>
</dictionary>
`

func writePrimary(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lexicon-0000.xml"), []byte(primaryShard), 0o644))
	return dir
}

func writeLegacy(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shard-001.xml"), []byte(legacyShard), 0o644))
	return dir
}

func writeTabular(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	nouns := filepath.Join(root, "nouns")
	require.NoError(t, os.Mkdir(nouns, 0o755))
	table := "m\tsg\tnom\tStuhl\t-\n" +
		"m\tsg\tgen\tStuhls\t-\n" +
		"m\tpl\tnom\tStühle\t-\n" +
		"m\tpl\tdat\tStühlen\t-\n"
	require.NoError(t, os.WriteFile(filepath.Join(nouns, "Stuhl.tsv"), []byte(table), 0o644))
	return root
}

func TestFixPluralsStage(t *testing.T) {
	inDir := writePrimary(t)
	outDir := filepath.Join(t.TempDir(), "out")
	legacyDir := writeLegacy(t)

	res, err := FixPlurals(context.Background(), inDir, outDir, legacyDir, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, res.EntriesSeen)
	assert.Equal(t, 1, res.EntriesChanged)
	assert.Equal(t, 1, res.AlreadyPlural)
	assert.Equal(t, 3, res.RecordsReplaced)

	entries, err := corpus.ReadShard(filepath.Join(outDir, "lexicon-0000.xml"))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	tisch := entries[0]
	require.Len(t, tisch.Inflections, 4) // Pl Nom/Acc/Gen + Pl Dat
	assert.True(t, tisch.HasPlural())

	// Audit log has exactly the replaced entry.
	data, err := os.ReadFile(filepath.Join(outDir, FixPluralsLog))
	require.NoError(t, err)
	assert.Equal(t, "Tisch\tnoun\te100\n", string(data))
}

func TestInsertMissingStage(t *testing.T) {
	inDir := writePrimary(t)
	outDir := filepath.Join(t.TempDir(), "out")
	tabularRoot := writeTabular(t)
	indexPath := filepath.Join(t.TempDir(), "lemma.idx")

	n, err := BuildIndex(context.Background(), tabularRoot, indexPath)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	res, err := InsertMissing(context.Background(), inDir, outDir, indexPath, tabularRoot, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, res.EntriesSeen)
	assert.Equal(t, 1, res.EntriesChanged)
	assert.Equal(t, 2, res.RecordsAdded) // Stuhls and Stühlen are new

	entries, err := corpus.ReadShard(filepath.Join(outDir, "lexicon-0000.xml"))
	require.NoError(t, err)
	stuhl := entries[1]
	assert.Equal(t, "Stuhl", stuhl.Lemma)
	assert.Len(t, stuhl.Inflections, 4)

	data, err := os.ReadFile(filepath.Join(outDir, InsertMissingLog))
	require.NoError(t, err)
	assert.Equal(t, "Stuhl\tnoun\te101\n", string(data))
}

func TestInsertMissingStageRequiresIndex(t *testing.T) {
	inDir := writePrimary(t)
	_, err := InsertMissing(context.Background(), inDir, t.TempDir(),
		filepath.Join(t.TempDir(), "absent.idx"), t.TempDir(), 1)
	require.Error(t, err)
}

func TestReduceStage(t *testing.T) {
	inDir := writePrimary(t)
	outDir := filepath.Join(t.TempDir(), "out")

	res, err := Reduce(context.Background(), inDir, outDir, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, res.EntriesSeen)

	entries, err := corpus.ReadShard(filepath.Join(outDir, "lexicon-0000.xml"))
	require.NoError(t, err)
	for _, e := range entries {
		for _, r := range e.Inflections {
			assert.Empty(t, r.GenType)
			assert.False(t, r.Features.Get(grammar.Gender).IsSet())
		}
	}
}

func TestRunSkipsFailedShard(t *testing.T) {
	inDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "good.xml"), []byte(primaryShard), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "bad.xml"), []byte("<lexicon><entry"), 0o644))
	outDir := filepath.Join(t.TempDir(), "out")

	res, err := Reduce(context.Background(), inDir, outDir, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, res.FilesFailed)
	assert.True(t, res.HasErrors())
	assert.Equal(t, 2, res.EntriesSeen)

	// The good shard was still written.
	_, err = os.Stat(filepath.Join(outDir, "good.xml"))
	assert.NoError(t, err)
}

func TestWriteAuditLogEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	require.NoError(t, WriteAuditLog(path, nil))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteAuditLogRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	changes := []reconcile.Change{
		{Lemma: "Tisch", Wordclass: grammar.Noun, EntryID: "e100"},
		{Lemma: "fahren", Wordclass: grammar.Verb, EntryID: "e200"},
	}
	require.NoError(t, WriteAuditLog(path, changes))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Tisch\tnoun\te100", lines[0])
}
