package main

import (
	"context"
	"fmt"

	"github.com/aretw0/picker"
	"github.com/aretw0/picker/internal/cli"
	"github.com/aretw0/picker/pkg/adapters/mcp"
	"github.com/aretw0/picker/pkg/session"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the selection machines and in-memory sessions as MCP tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, bindings, err := setup(cmd)
		if err != nil {
			return err
		}
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		mgr := session.NewManager(
			session.WithLogger(logger),
			session.WithPickerOptions(picker.WithMatcher(bindings)),
		)
		srv := mcp.NewServer(mgr, mcp.WithMatcher(bindings), mcp.WithLogger(logger))

		switch transport {
		case "stdio":
			// Logs go to Stderr so they never corrupt JSON-RPC on Stdout.
			logger.Info("Starting picker MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			ctx := cli.NewSignalContext(context.Background())
			defer ctx.Cancel()
			return srv.ServeSSE(ctx, port)
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
