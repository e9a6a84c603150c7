package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/reqext/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the reqext_check tool over MCP stdio",
	Long: `Start a Model Context Protocol server on stdin/stdout exposing the
reqext_check tool, which checks (and optionally fixes) files under the
working directory.

Logs go to stderr; stdout carries the protocol.`,
	RunE: runMCP,
}

var mcpWorkers int

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().IntVarP(&mcpWorkers, "workers", "j", 0, "Files checked concurrently (0 = from config)")
}

func runMCP(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	env, err := loadEnvironment(wd, cfgFile, verbose, os.Stderr)
	if err != nil {
		return err
	}

	linter, err := env.newLinter()
	if err != nil {
		return err
	}
	fd, err := env.newDiscovery()
	if err != nil {
		return err
	}

	workers := env.cfg.Run.Workers
	if mcpWorkers > 0 {
		workers = mcpWorkers
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	server := mcp.NewServer(mcp.NewProjectChecker(fd, linter, workers, env.logger), Version, env.logger)
	return server.Serve(ctx)
}
