package export

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/google/go-cmp/cmp"

	"github.com/gorewood/treedump/internal/rules"
)

// writeTree creates files under dir from a path -> content map.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating dir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
}

// scenarioTree is the canonical mixed tree: one source file, one generated
// file under an ignored directory, one doc and one binary.
func scenarioTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/Main.java":         "class Main {}\n",
		"target/Generated.java": "class Generated {}\n",
		"README.md":             "# Demo\n",
		"notes.bin":             "\x00\x01\x02",
	})
	return dir
}

func readOutput(t *testing.T, summary *Summary) string {
	t.Helper()
	data, err := os.ReadFile(summary.Output)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	return string(data)
}

type recordingReporter struct {
	exported []string
	failed   []string
	warnings []string
}

func (r *recordingReporter) Exported(path string) { r.exported = append(r.exported, path) }

func (r *recordingReporter) Failed(path string, _ error) { r.failed = append(r.failed, path) }

func (r *recordingReporter) Warn(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func TestRun_Scenario(t *testing.T) {
	root := scenarioTree(t)
	reporter := &recordingReporter{}

	summary, err := Run(Options{Root: root, Rules: rules.Default(), Reporter: reporter})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Count != 2 {
		t.Errorf("Count = %d, want 2", summary.Count)
	}
	wantFiles := []string{"README.md", filepath.FromSlash("src/Main.java")}
	if diff := cmp.Diff(wantFiles, summary.Files); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantFiles, reporter.exported); diff != "" {
		t.Errorf("reported files mismatch (-want +got):\n%s", diff)
	}
	if summary.Output != filepath.Join(root, "projeto_completo.txt") {
		t.Errorf("Output = %q, want file in root", summary.Output)
	}

	out := readOutput(t, summary)
	for _, absent := range []string{"Generated", "notes.bin", "\x00"} {
		if strings.Contains(out, absent) {
			t.Errorf("output should not contain %q", absent)
		}
	}
	readme := strings.Index(out, "CAMINHO: README.md")
	mainJava := strings.Index(out, "CAMINHO: "+filepath.FromSlash("src/Main.java"))
	if readme < 0 || mainJava < 0 || readme > mainJava {
		t.Errorf("expected README.md header before src/Main.java header:\n%s", out)
	}
}

func TestRun_ExactFormat(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "hello"})

	summary, err := Run(Options{Root: root, Rules: rules.Default()})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	sep := strings.Repeat("=", 60)
	want := "\n" + sep + "\nCAMINHO: a.txt\n" + sep + "\nhello\n"
	if got := readOutput(t, summary); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRun_OutputSnapshot(t *testing.T) {
	root := scenarioTree(t)

	summary, err := Run(Options{Root: root, Rules: rules.Default()})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := strings.ReplaceAll(readOutput(t, summary), `\`, "/")
	snaps.MatchSnapshot(t, strings.TrimSpace(out))
}

func TestRun_EmptyRoot(t *testing.T) {
	root := t.TempDir()

	summary, err := Run(Options{Root: root, Rules: rules.Default()})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Count != 0 {
		t.Errorf("Count = %d, want 0", summary.Count)
	}
	if out := readOutput(t, summary); out != "" {
		t.Errorf("output = %q, want empty", out)
	}
}

func TestRun_Idempotent(t *testing.T) {
	root := scenarioTree(t)
	writeTree(t, root, map[string]string{"docs/guide.txt": "guide\n"})

	first, err := Run(Options{Root: root, Rules: rules.Default()})
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	firstOut := readOutput(t, first)

	second, err := Run(Options{Root: root, Rules: rules.Default()})
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	secondOut := readOutput(t, second)

	if first.Count != second.Count {
		t.Errorf("Count changed between runs: %d then %d", first.Count, second.Count)
	}
	if firstOut != secondOut {
		t.Errorf("output changed between runs:\nfirst:\n%s\nsecond:\n%s", firstOut, secondOut)
	}
	if strings.Contains(secondOut, "CAMINHO: projeto_completo.txt") {
		t.Error("output file was exported as input")
	}
}

func TestRun_TruncatesPreviousOutput(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"projeto_completo.txt": strings.Repeat("stale\n", 100),
		"a.md":                 "a\n",
	})

	summary, err := Run(Options{Root: root, Rules: rules.Default()})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out := readOutput(t, summary); strings.Contains(out, "stale") {
		t.Errorf("previous output not truncated:\n%s", out)
	}
}

func TestRun_ExcludesSelfAndOutputAtAnyDepth(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"keep.md":                   "keep\n",
		"docs/projeto_completo.txt": "nested\n",
		"tools/export.md":           "self\n",
		"export.md":                 "self\n",
	})

	summary, err := Run(Options{Root: root, Rules: rules.Default(), SelfNames: []string{"export.md"}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if diff := cmp.Diff([]string{"keep.md"}, summary.Files); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_CustomOutputPath(t *testing.T) {
	root := scenarioTree(t)
	outPath := filepath.Join(t.TempDir(), "bundle.txt")

	summary, err := Run(Options{Root: root, OutputPath: outPath, Rules: rules.Default()})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Output != outPath {
		t.Errorf("Output = %q, want %q", summary.Output, outPath)
	}
	if _, err := os.Stat(filepath.Join(root, "projeto_completo.txt")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("default output should not be created when OutputPath is set, stat err = %v", err)
	}
}

// failingFS fails Open for the listed paths.
type failingFS struct {
	fs.FS
	fail map[string]error
}

func (f failingFS) Open(name string) (fs.File, error) {
	if err, ok := f.fail[name]; ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return f.FS.Open(name)
}

func TestRun_UnreadableFileIsSkipped(t *testing.T) {
	root := t.TempDir()
	tree := failingFS{
		FS: fstest.MapFS{
			"a.md":      {Data: []byte("a\n")},
			"secret.md": {Data: []byte("secret\n")},
			"z.md":      {Data: []byte("z\n")},
		},
		fail: map[string]error{"secret.md": fs.ErrPermission},
	}
	reporter := &recordingReporter{}

	summary, err := Run(Options{Root: root, Rules: rules.Default(), Reporter: reporter, FS: tree})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Count != 2 {
		t.Errorf("Count = %d, want 2", summary.Count)
	}
	if diff := cmp.Diff([]string{"secret.md"}, reporter.failed); diff != "" {
		t.Errorf("failed files mismatch (-want +got):\n%s", diff)
	}
	if len(summary.Skipped) != 1 || !strings.Contains(summary.Skipped[0].Reason, "permission denied") {
		t.Errorf("Skipped = %+v, want one permission failure", summary.Skipped)
	}
	if out := readOutput(t, summary); strings.Contains(out, "secret") {
		t.Errorf("unreadable file leaked into output:\n%s", out)
	}
}

func TestRun_UnreadableDirectoryIsSkipped(t *testing.T) {
	root := t.TempDir()
	tree := failingFS{
		FS: fstest.MapFS{
			"a.md":        {Data: []byte("a\n")},
			"locked/b.md": {Data: []byte("b\n")},
		},
		fail: map[string]error{"locked": fs.ErrPermission},
	}
	reporter := &recordingReporter{}

	summary, err := Run(Options{Root: root, Rules: rules.Default(), Reporter: reporter, FS: tree})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if diff := cmp.Diff([]string{"a.md"}, summary.Files); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}
	if len(reporter.warnings) != 1 || !strings.Contains(reporter.warnings[0], "locked") ||
		!strings.Contains(reporter.warnings[0], "permission denied") {
		t.Errorf("warnings = %q, want one for locked", reporter.warnings)
	}
	if len(reporter.failed) != 0 {
		t.Errorf("failed = %v, want none", reporter.failed)
	}
}

func TestRun_InvalidUTF8IsReplaced(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"latin.txt": "caf\xe9 ok"})

	summary, err := Run(Options{Root: root, Rules: rules.Default()})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Count != 1 {
		t.Fatalf("Count = %d, want 1", summary.Count)
	}
	if out := readOutput(t, summary); !strings.Contains(out, "caf\uFFFD ok") {
		t.Errorf("output = %q, want replacement character", out)
	}
}

func TestRun_MissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")

	_, err := Run(Options{Root: root, Rules: rules.Default()})
	if err == nil {
		t.Fatal("Run() expected error for missing root")
	}
	if _, statErr := os.Stat(filepath.Join(root, "projeto_completo.txt")); !errors.Is(statErr, fs.ErrNotExist) {
		t.Error("no output should be produced for a missing root")
	}
}

func TestRun_RootIsFile(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"file.md": "x"})

	_, err := Run(Options{Root: filepath.Join(dir, "file.md"), Rules: rules.Default()})
	if err == nil || !strings.Contains(err.Error(), "not a directory") {
		t.Errorf("Run() error = %v, want not a directory", err)
	}
}

func TestRun_RequiresRoot(t *testing.T) {
	if _, err := Run(Options{Rules: rules.Default()}); err == nil {
		t.Error("Run() expected error without root")
	}
}

func TestWriteRecord(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRecord(&buf, Record{Path: "x/y.md", Content: "body"}); err != nil {
		t.Fatalf("WriteRecord() error = %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	want := []string{"", strings.Repeat("=", SeparatorWidth), "CAMINHO: x/y.md", strings.Repeat("=", SeparatorWidth), "body", ""}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("record lines mismatch (-want +got):\n%s", diff)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteRecord_Error(t *testing.T) {
	err := WriteRecord(failingWriter{}, Record{Path: "a.md", Content: "a"})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("WriteRecord() error = %v, want disk full", err)
	}
}
