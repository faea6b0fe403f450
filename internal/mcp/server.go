// Package mcp provides a Model Context Protocol server for treedump.
// It exposes the export and its dry-run listing as MCP tools, so an agent can
// bundle the project it is working in without shelling out.
package mcp

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/treedump/internal/rules"
)

// Config describes the tree the tools operate on.
type Config struct {
	// Root is the directory exported by every tool call.
	Root string
	// Rules are the selection rules; zero value means rules.Default().
	Rules rules.Rules
	// SelfNames are extra file names never exported.
	SelfNames []string
	Logger    *log.Logger
}

func (c Config) withDefaults() Config {
	if c.Rules.Output == "" {
		c.Rules = rules.Default()
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
	return c
}

// NewServer creates an MCP server with all treedump tools registered.
func NewServer(version string, cfg Config) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "treedump",
		Version: version,
	}, nil)
	registerTools(server, cfg.withDefaults())
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for the export tool: it overwrites
// its own output file and nothing else, with the same result on repeat.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all treedump tools to the server.
func registerTools(server *mcp.Server, cfg Config) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list",
		Description: "List the files that would be exported, in export order, without reading or writing anything.",
		Annotations: readOnlyAnnotations(),
	}, handleList(cfg))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export",
		Description: "Concatenate every selected text file of the project into " + cfg.Rules.Output + " and report what was exported and skipped.",
		Annotations: writeAnnotations(),
	}, handleExport(cfg))
}
