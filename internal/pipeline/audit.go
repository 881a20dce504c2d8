package pipeline

import (
	"bufio"
	"fmt"
	"os"

	"github.com/wordforge/morphmerge/pkg/errors"
	"github.com/wordforge/morphmerge/pkg/reconcile"
)

// WriteAuditLog persists the audit trail as flat tab-delimited text, one
// row per changed entry: lemma, wordclass, entry id. A pass that changed
// nothing writes no log file at all.
func WriteAuditLog(path string, changes []reconcile.Change) error {
	if len(changes) == 0 {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, c := range changes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Lemma, c.Wordclass, c.EntryID)
	}
	if err := w.Flush(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
