package cmd

import (
	"context"
	"fmt"
	"log/slog"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// runStdioServer serves MCP over stdin/stdout. Stdout carries the protocol
// framing, so all diagnostics go through slog, which writes to stderr.
func runStdioServer(mcpSrv *mcpserver.MCPServer, ctx context.Context) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	// ServeStdio returns when stdin closes; a shutdown signal ends the
	// process without waiting for that.
	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received, stopping stdio server")
		return nil
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("stdio server stopped with error: %w", err)
		}
	}
	return nil
}
