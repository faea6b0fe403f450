package export

import (
	"io"
	"io/fs"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// readText reads a whole file as UTF-8 text. Ill-formed sequences are
// replaced with U+FFFD; only open and read failures are returned.
func readText(fsys fs.FS, name string) (string, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return "", err
	}
	defer file.Close() //nolint:errcheck // read-only

	data, err := io.ReadAll(transform.NewReader(file, unicode.UTF8.NewDecoder()))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
