package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/arke-mcp/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --http to start a streamable HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP
  - Prometheus metrics on /metrics

Examples:
  # Stdio mode (default, for Claude Desktop)
  arke-mcp mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  arke-mcp mcp serve --http :8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "arke": {
        "command": "/path/to/arke-mcp",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().String("http", "", "HTTP listen address, e.g. :8080 (empty = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("http")
	if err != nil {
		return fmt.Errorf("getting http flag: %w", err)
	}

	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	ports := &mcp.Ports{
		Search: searchService,
		Entity: entityService,
		OCR:    ocrService,
	}

	server, err := mcp.NewServer(ports, toolConfig)
	if err != nil {
		return err
	}

	if addr != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(cmd.ErrOrStderr(),
			"Waiting for an MCP client on stdin. Run this from an MCP client, or use --http to serve over HTTP.")
	}
	return server.Run(cmd.Context())
}
