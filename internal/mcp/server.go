// Package mcp exposes the analysis engine to MCP clients over stdio.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/asears/grand-ai-hotel/internal/analyzer"
)

// Server manages the MCP server lifecycle.
type Server struct {
	engine *analyzer.Engine
	mcp    *server.MCPServer
}

// NewServer creates an MCP server wrapping one analysis engine.
func NewServer(version string) *Server {
	engine := analyzer.New()

	mcpServer := server.NewMCPServer(
		"pyaudit-mcp",
		version,
		server.WithToolCapabilities(true),
	)

	AddAnalyzeTool(mcpServer, engine)
	AddSecurityScanTool(mcpServer, engine)

	return &Server{engine: engine, mcp: mcpServer}
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting MCP server on stdio")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		slog.Info("received shutdown signal, stopping")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}
