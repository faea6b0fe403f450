// Package export concatenates the text files of a directory tree into a
// single output file.
//
// # Selection
//
// The tree is walked depth-first in lexical order. Directories whose name is
// in the ignore set are pruned before descent, so nothing beneath them is
// ever listed or opened. A file is selected when its name ends with one of
// the configured extensions or equals one of the literal names. The output
// file name and the program's own file name are never selected, at any
// depth:
//
//	sel := export.NewSelector(rules.Default(), "treedump")
//	paths, err := export.List(os.DirFS("."), sel, logger)
//
// # Records
//
// Each exported file becomes one record: a header block followed by the
// decoded content and a newline.
//
//	============================================================
//	CAMINHO: src/Main.java
//	============================================================
//	<content>
//
// The header starts with an empty line and uses 60 '=' characters per
// separator. Content is decoded as UTF-8; ill-formed byte sequences are
// replaced with U+FFFD instead of failing the file.
//
// # Failures
//
// A file that cannot be opened or read is reported through the Reporter and
// skipped; the run continues. Only failures on the root directory or on the
// output file stop a run.
package export
