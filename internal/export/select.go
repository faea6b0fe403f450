package export

import (
	"fmt"
	"io"
	"io/fs"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/gorewood/treedump/internal/rules"
)

// Selector decides which entries of a tree are exported.
type Selector struct {
	Rules rules.Rules
	// SkipNames are file names never exported, matched by base name at any depth.
	SkipNames []string
}

// NewSelector returns a selector that always skips the rules' output file
// and the given self names.
func NewSelector(r rules.Rules, selfNames ...string) Selector {
	skip := make([]string, 0, len(selfNames)+1)
	if r.Output != "" {
		skip = append(skip, r.Output)
	}
	for _, name := range selfNames {
		if name != "" && !slices.Contains(skip, name) {
			skip = append(skip, name)
		}
	}
	return Selector{Rules: r, SkipNames: skip}
}

// Selects reports whether a file with the given base name is exported.
func (s Selector) Selects(name string) bool {
	if slices.Contains(s.SkipNames, name) {
		return false
	}
	return s.Rules.Includes(name)
}

// Prunes reports whether a directory with the given base name is skipped.
func (s Selector) Prunes(name string) bool {
	return s.Rules.Ignores(name)
}

// Walk visits every selected file of fsys in traversal order, calling fn with
// its slash-separated path. Ignored directories are pruned before descent.
//
// A subdirectory that cannot be listed is logged and skipped. An error on the
// root, or any error returned by fn, stops the walk.
func Walk(fsys fs.FS, sel Selector, logger *log.Logger, fn func(path string) error) error {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return walk(fsys, sel, logger, func(path string, err error) {
		logger.Warn("skipping unreadable directory", "path", path, "err", err)
	}, fn)
}

// walk is Walk with the unreadable-subdirectory event handed to skipDir.
func walk(fsys fs.FS, sel Selector, logger *log.Logger, skipDir func(path string, err error), fn func(path string) error) error {
	return fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == "." {
				return fmt.Errorf("reading root directory: %w", err)
			}
			skipDir(path, err)
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if path != "." && sel.Prunes(entry.Name()) {
				logger.Debug("pruned", "dir", path)
				return fs.SkipDir
			}
			return nil
		}

		name := entry.Name()
		if !sel.Selects(name) {
			if slices.Contains(sel.SkipNames, name) {
				logger.Debug("excluded by name", "path", path)
			}
			return nil
		}
		if isDirLink(fsys, path, entry) {
			logger.Debug("not following directory link", "path", path)
			return nil
		}
		return fn(path)
	})
}

// List returns the slash-separated paths Walk would select, in order.
func List(fsys fs.FS, sel Selector, logger *log.Logger) ([]string, error) {
	paths := []string{}
	err := Walk(fsys, sel, logger, func(path string) error {
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// isDirLink reports whether entry is a symlink that resolves to a directory.
// Such links are neither descended into nor read.
func isDirLink(fsys fs.FS, path string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := fs.Stat(fsys, path)
	return err == nil && info.IsDir()
}
