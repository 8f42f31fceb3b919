package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docqa-cli/internal/adapters/driving/mcp"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Watch the document directory and serve questions over MCP",
	Long: `Runs the full engine: an initial scan of the document directory, a
live watch that keeps the corpus in sync, and a Model Context Protocol
server answering questions.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Examples:
  # Stdio mode (default, for Claude Desktop)
  docqa serve

  # HTTP mode (for MCP Inspector, remote access)
  docqa serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "docqa": {
        "command": "/path/to/docqa",
        "args": ["serve", "--dir", "/path/to/documents"]
      }
    }
  }`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP port (0 = use stdio)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ingestService.Bootstrap(ctx)
	go ingestService.Run(ctx)

	ports := &mcp.Ports{
		Answer:    answerService,
		Documents: documentService,
		Ingest:    ingestService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if servePort > 0 {
		addr := fmt.Sprintf(":%d", servePort)
		logger.Info("MCP server listening on http://localhost%s", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
