package mcp

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/reqext/internal/discovery"
	"github.com/mvp-joe/reqext/internal/lint"
	"github.com/mvp-joe/reqext/internal/report"
)

// CheckToolName is the name clients call.
const CheckToolName = "reqext_check"

// CheckRequest holds the reqext_check arguments.
type CheckRequest struct {
	Paths []string `json:"paths"`
	Fix   bool     `json:"fix"`
}

// Checker runs a check over paths relative to the project root.
type Checker interface {
	Check(ctx context.Context, paths []string, fix bool) (*lint.Result, error)
	RootDir() string
}

// ProjectChecker checks files inside one project root.
type ProjectChecker struct {
	discovery *discovery.FileDiscovery
	linter    *lint.Linter
	workers   int
	logger    *log.Logger
}

// NewProjectChecker creates a checker that discovers files with fd and lints
// them with linter. A nil logger means log.Default().
func NewProjectChecker(fd *discovery.FileDiscovery, linter *lint.Linter, workers int, logger *log.Logger) *ProjectChecker {
	if logger == nil {
		logger = log.Default()
	}
	return &ProjectChecker{discovery: fd, linter: linter, workers: workers, logger: logger}
}

func (c *ProjectChecker) RootDir() string {
	return c.discovery.RootDir()
}

// Check lints the given paths. Relative paths are resolved against the root
// and paths outside the root are rejected.
func (c *ProjectChecker) Check(ctx context.Context, paths []string, fix bool) (*lint.Result, error) {
	root := c.discovery.RootDir()
	targets := make([]string, 0, len(paths))
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		rel, err := filepath.Rel(root, p)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil, fmt.Errorf("path %s is outside the project root", p)
		}
		targets = append(targets, p)
	}

	files, err := c.discovery.Discover(targets...)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("mcp check", "files", len(files), "fix", fix)
	runner := lint.NewRunner(c.linter, lint.RunnerOptions{
		Workers: c.workers,
		Fix:     fix,
		Logger:  c.logger,
	})
	return runner.Run(ctx, files)
}

// AddCheckTool registers the reqext_check tool with an MCP server.
func AddCheckTool(s *server.MCPServer, checker Checker) {
	tool := mcp.NewTool(
		CheckToolName,
		mcp.WithDescription("Check that relative import and export specifiers in JavaScript and TypeScript files end with .js, and that directory specifiers end with /index.js. Returns a JSON report of violations, optionally applying fixes."),
		mcp.WithArray("paths",
			mcp.Required(),
			mcp.WithStringItems(),
			mcp.Description("Files or directories to check, relative to the project root (e.g. ['src'], ['src/index.ts'])")),
		mcp.WithBoolean("fix",
			mcp.Description("Rewrite offending specifiers in place (default: false)")),
	)

	s.AddTool(tool, createCheckHandler(checker))
}

func createCheckHandler(checker Checker) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args CheckRequest
		if err := bindArguments(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if len(args.Paths) == 0 {
			return mcp.NewToolResultError("paths parameter is required"), nil
		}

		res, err := checker.Check(ctx, args.Paths, args.Fix)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var buf bytes.Buffer
		if err := (&report.JSON{BaseDir: checker.RootDir()}).Format(&buf, res); err != nil {
			return nil, fmt.Errorf("failed to encode report: %w", err)
		}

		return mcp.NewToolResultText(buf.String()), nil
	}
}
