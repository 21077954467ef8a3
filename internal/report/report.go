// Package report handles the fetched PDF report: page-count derivation and
// saving the blob to a local file.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Document is the fetched report blob plus its derived page count. The blob
// itself stays opaque; it is replaced wholesale when a new identifier is
// fetched, never patched.
type Document struct {
	Data  []byte
	Pages int
}

// New wraps fetched PDF bytes, deriving the page count. A blob the parser
// cannot read still displays and downloads; Pages stays 0.
func New(data []byte) Document {
	return Document{Data: data, Pages: pageCount(data)}
}

// pageCount parses the blob as a PDF. The parser panics on some malformed
// inputs, so those are treated the same as a parse error.
func pageCount(data []byte) (n int) {
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0
	}
	return r.NumPage()
}

// Filename derives the local download name from the originally uploaded
// file's name, replacing its extension with .pdf. Without an upload name
// (deep links) it falls back to <id>.pdf.
func Filename(uploadName, id string) string {
	if uploadName == "" {
		return id + ".pdf"
	}
	return strings.TrimSuffix(uploadName, filepath.Ext(uploadName)) + ".pdf"
}

// Save writes the document to path through a temporary file in the target
// directory. The temporary file is removed after the attempt whether or not
// the save succeeds.
func Save(doc Document, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".revu-report-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name()) // no-op once renamed into place
	}()

	if _, err := tmp.Write(doc.Data); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}
