// Package main provides the entry point for the treedump CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gorewood/treedump/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	return persistentFlag(cmd, "json") == "true"
}

// useColor resolves --color against TTY detection of the command's stdout.
func useColor(cmd *cobra.Command) bool {
	return output.ResolveColorMode(persistentFlag(cmd, "color"), output.IsTTY(cmd.OutOrStdout()))
}

// persistentFlag returns a flag value, walking up to root for persistent flags.
func persistentFlag(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// newPrinter creates a printer for the command's stdout, with errors on stderr.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())
}

// newLogger creates the diagnostic logger: warnings by default, debug with --verbose.
func newLogger(cmd *cobra.Command) *log.Logger {
	level := log.WarnLevel
	if persistentFlag(cmd, "verbose") == "true" {
		level = log.DebugLevel
	}
	return log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Level:  level,
		Prefix: "treedump",
	})
}

// noArgs rejects positional arguments as a user error.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return output.NewUserError(err.Error())
	}
	return nil
}

// selfNames returns the file names of the running program, which are never
// exported even when they match a rule.
func selfNames() []string {
	exe, err := os.Executable()
	if err != nil {
		return nil
	}
	return []string{filepath.Base(exe)}
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the treedump CLI.
// Run without a subcommand, it exports the working directory.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "treedump",
		Short: "Concatenate a project's text files into one file",
		Long: `treedump - Concatenate a project's source and text files into one file.

Run in a project directory, treedump walks the tree, skips build output and
tool directories (target, build, node_modules, .git, ...), and writes every
selected file to projeto_completo.txt, each under a header with its path.

Files that cannot be read are reported and skipped; the run still succeeds.`,
		Version:       buildVersion(),
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runExport,
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", output.ColorAuto, "Color output: auto, always or never")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log pruned directories and excluded files to stderr")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return output.NewUserError(err.Error())
	})

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}
