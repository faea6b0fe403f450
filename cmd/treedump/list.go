package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gorewood/treedump/internal/export"
	"github.com/gorewood/treedump/internal/output"
	"github.com/gorewood/treedump/internal/rules"
)

// listResult is the JSON form of the list command.
type listResult struct {
	Root  string   `json:"root"`
	Count int      `json:"count"`
	Files []string `json:"files"`
}

// newListCmd creates the list command.
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the files an export would include",
		Long: `List the files an export would include, in export order, without
reading them or writing the output file.

Examples:
  treedump list           # One path per line
  treedump list --json    # {"root": ..., "count": N, "files": [...]}`,
		Args: noArgs,
		RunE: runList,
	}
}

// runList executes the list command.
func runList(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	root, err := os.Getwd()
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("resolving working directory", err)
		printer.Error(sysErr)
		return sysErr
	}

	sel := export.NewSelector(rules.Default(), selfNames()...)
	files, err := export.List(os.DirFS(root), sel, newLogger(cmd))
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("listing files", err)
		printer.Error(sysErr)
		return sysErr
	}

	if printer.IsJSON() {
		return printer.WriteJSON(listResult{Root: root, Count: len(files), Files: files})
	}
	for _, file := range files {
		printer.Println(filepath.FromSlash(file))
	}
	return nil
}
