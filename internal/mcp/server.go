package mcp

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"
)

// Server exposes the check tool over MCP stdio.
type Server struct {
	mcp    *server.MCPServer
	logger *log.Logger
}

// NewServer creates an MCP server with the reqext_check tool registered.
func NewServer(checker Checker, version string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	s := server.NewMCPServer(
		"reqext",
		version,
		server.WithToolCapabilities(true),
	)
	AddCheckTool(s, checker)

	return &Server{mcp: s, logger: logger}
}

// Serve serves MCP on stdin/stdout until ctx is cancelled, a shutdown signal
// arrives or stdin is closed.
func (s *Server) Serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return s.Listen(ctx, os.Stdin, os.Stdout)
}

// Listen serves MCP over the given streams.
func (s *Server) Listen(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("starting MCP server on stdio")

	err := server.NewStdioServer(s.mcp).Listen(ctx, in, out)
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	s.logger.Info("MCP server stopped")
	return nil
}
