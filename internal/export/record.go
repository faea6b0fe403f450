package export

import (
	"fmt"
	"io"
	"strings"
)

// SeparatorWidth is the number of '=' characters in a header separator line.
const SeparatorWidth = 60

var separator = strings.Repeat("=", SeparatorWidth)

// Record is one exported file: its path relative to the root and its decoded
// content. Records are written as soon as they are read and never kept.
type Record struct {
	Path    string
	Content string
}

// Header returns the header block written before a file's content.
func Header(path string) string {
	return "\n" + separator + "\n" + "CAMINHO: " + path + "\n" + separator + "\n"
}

// WriteRecord writes the header block, the content and a trailing newline.
func WriteRecord(w io.Writer, rec Record) error {
	if _, err := io.WriteString(w, Header(rec.Path)); err != nil {
		return fmt.Errorf("writing header for %s: %w", rec.Path, err)
	}
	if _, err := io.WriteString(w, rec.Content+"\n"); err != nil {
		return fmt.Errorf("writing content of %s: %w", rec.Path, err)
	}
	return nil
}
