package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/gorewood/treedump/internal/rules"
)

// Reporter receives one event per selected file.
type Reporter interface {
	// Exported is called after a file's record has been written.
	Exported(path string)
	// Failed is called when a selected file could not be read.
	Failed(path string, err error)
	// Warn is called for a subdirectory that could not be listed.
	Warn(format string, args ...any)
}

// Options configures a run.
type Options struct {
	// Root is the directory to export. Required.
	Root string
	// OutputPath is the file to create. Defaults to Rules.Output inside Root.
	OutputPath string
	Rules      rules.Rules
	// SelfNames are extra file names never exported, such as the executable.
	SelfNames []string
	Reporter  Reporter
	Logger    *log.Logger
	// FS overrides the filesystem walked and read. Defaults to os.DirFS(Root).
	FS fs.FS
}

// Skip is a selected file that could not be read.
type Skip struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Summary describes a finished run.
type Summary struct {
	Root    string   `json:"root"`
	Output  string   `json:"output"`
	Count   int      `json:"count"`
	Files   []string `json:"files"`
	Skipped []Skip   `json:"skipped,omitempty"`
}

// Run walks opts.Root and writes every selected file to the output file,
// truncating it first. Unreadable files are reported and skipped; only
// failures on the root or the output file are returned as errors.
func Run(opts Options) (summary *Summary, err error) {
	if opts.Root == "" {
		return nil, errors.New("export: root directory is required")
	}
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %s: %w", opts.Root, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	outPath := opts.OutputPath
	if outPath == "" {
		outPath = filepath.Join(root, opts.Rules.Output)
	}
	if outPath, err = filepath.Abs(outPath); err != nil {
		return nil, fmt.Errorf("resolving output path: %w", err)
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = os.DirFS(root)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}

	outFile, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil && err == nil {
			summary = nil
			err = fmt.Errorf("closing output file: %w", closeErr)
		}
	}()

	sel := NewSelector(opts.Rules, append([]string{filepath.Base(outPath)}, opts.SelfNames...)...)
	logger.Debug("exporting", "root", root, "output", outPath)

	buf := bufio.NewWriter(outFile)
	summary = &Summary{Root: root, Output: outPath, Files: []string{}}

	skipDir := func(path string, err error) {
		logger.Debug("skipping unreadable directory", "path", path, "err", err)
		reporter.Warn("skipping unreadable directory %s: %v", filepath.FromSlash(path), err)
	}

	walkErr := walk(fsys, sel, logger, skipDir, func(path string) error {
		display := filepath.FromSlash(path)

		content, readErr := readText(fsys, path)
		if readErr != nil {
			summary.Skipped = append(summary.Skipped, Skip{Path: display, Reason: readErr.Error()})
			reporter.Failed(display, readErr)
			return nil
		}

		if err := WriteRecord(buf, Record{Path: display, Content: content}); err != nil {
			return err
		}
		summary.Count++
		summary.Files = append(summary.Files, display)
		reporter.Exported(display)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	if err := buf.Flush(); err != nil {
		return nil, fmt.Errorf("writing output file: %w", err)
	}
	return summary, nil
}

type nopReporter struct{}

func (nopReporter) Exported(string)      {}
func (nopReporter) Failed(string, error) {}
func (nopReporter) Warn(string, ...any) {}
