package main

import (
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	treedumpmcp "github.com/gorewood/treedump/internal/mcp"
	"github.com/gorewood/treedump/internal/output"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run treedump as a Model Context Protocol (MCP) server over stdio.

Tools operate on the directory the server is started in.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "treedump": {
        "command": "treedump",
        "args": ["serve"]
      }
    }
  }

Available tools: list, export`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := os.Getwd()
			if err != nil {
				return output.NewSystemErrorWithCause("resolving working directory", err)
			}
			server := treedumpmcp.NewServer(buildVersion(), treedumpmcp.Config{
				Root:      root,
				SelfNames: selfNames(),
				Logger:    newLogger(cmd),
			})
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
