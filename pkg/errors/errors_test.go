package errors_test

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/wordforge/morphmerge/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestParseError(t *testing.T) {
	t.Run("with file", func(t *testing.T) {
		err := pkgerrors.WrapParse("tabular", "verbs/fahren.tsv", errors.New("7 columns expected"))
		assert.Equal(t, "parsing tabular file verbs/fahren.tsv: 7 columns expected", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without file", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "tagged", Message: "no wordclass marker"}
		assert.Equal(t, "parsing tagged: no wordclass marker", err.Error())
	})

	t.Run("unwrap", func(t *testing.T) {
		base := errors.New("bad row")
		err := pkgerrors.WrapParse("index", "lemma.idx", base)
		assert.True(t, errors.Is(err, base))
	})
}

func TestIOError(t *testing.T) {
	base := os.ErrNotExist
	err := pkgerrors.WrapIO("read", "shards/lexicon-0001.xml", base)
	assert.Equal(t, "failed to read shards/lexicon-0001.xml: file does not exist", err.Error())
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestResourceError(t *testing.T) {
	t.Run("with id", func(t *testing.T) {
		err := pkgerrors.WrapResource("load", "entry", "n1234", errors.New("truncated"))
		assert.Equal(t, "failed to load entry n1234: truncated", err.Error())
	})

	t.Run("without id", func(t *testing.T) {
		err := pkgerrors.WrapResource("build", "index", "", errors.New("no shards"))
		assert.Equal(t, "failed to build index: no shards", err.Error())
	})
}
