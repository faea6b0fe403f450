package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/treedump/internal/export"
)

// --- List tool ---

// ListInput is the input for the list tool (no parameters needed).
type ListInput struct{}

// ListOutput is the output for the list tool.
type ListOutput struct {
	Root  string   `json:"root"  jsonschema:"absolute path of the exported directory"`
	Count int      `json:"count" jsonschema:"number of files that would be exported"`
	Files []string `json:"files" jsonschema:"slash-separated paths relative to the root, in export order"`
}

func handleList(cfg Config) mcp.ToolHandlerFor[ListInput, ListOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ListInput) (*mcp.CallToolResult, ListOutput, error) {
		sel := export.NewSelector(cfg.Rules, cfg.SelfNames...)
		files, err := export.List(os.DirFS(cfg.Root), sel, cfg.Logger)
		if err != nil {
			return nil, ListOutput{}, fmt.Errorf("listing files: %w", err)
		}
		return nil, ListOutput{Root: cfg.Root, Count: len(files), Files: files}, nil
	}
}

// --- Export tool ---

// ExportInput is the input for the export tool (no parameters needed).
type ExportInput struct{}

// SkippedFile is a selected file that could not be read.
type SkippedFile struct {
	Path   string `json:"path"   jsonschema:"slash-separated path relative to the root"`
	Reason string `json:"reason" jsonschema:"why the file could not be read"`
}

// ExportOutput is the output for the export tool.
type ExportOutput struct {
	Output  string        `json:"output"            jsonschema:"absolute path of the generated file"`
	Count   int           `json:"count"             jsonschema:"number of files exported"`
	Files   []string      `json:"files"             jsonschema:"slash-separated exported paths relative to the root, in output order"`
	Skipped []SkippedFile `json:"skipped,omitempty" jsonschema:"files that matched but could not be read"`
}

func handleExport(cfg Config) mcp.ToolHandlerFor[ExportInput, ExportOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ExportInput) (*mcp.CallToolResult, ExportOutput, error) {
		summary, err := export.Run(export.Options{
			Root:      cfg.Root,
			Rules:     cfg.Rules,
			SelfNames: cfg.SelfNames,
			Logger:    cfg.Logger,
		})
		if err != nil {
			return nil, ExportOutput{}, fmt.Errorf("exporting: %w", err)
		}
		return nil, toExportOutput(summary), nil
	}
}

// toExportOutput converts a run summary to tool output. Paths use forward
// slashes, as in the list tool.
func toExportOutput(summary *export.Summary) ExportOutput {
	out := ExportOutput{
		Output: summary.Output,
		Count:  summary.Count,
		Files:  make([]string, 0, len(summary.Files)),
	}
	for _, file := range summary.Files {
		out.Files = append(out.Files, filepath.ToSlash(file))
	}
	for _, skip := range summary.Skipped {
		out.Skipped = append(out.Skipped, SkippedFile{Path: filepath.ToSlash(skip.Path), Reason: skip.Reason})
	}
	return out
}
