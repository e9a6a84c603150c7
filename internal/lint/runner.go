package lint

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/mvp-joe/reqext/internal/rules"
)

// Progress receives per-file progress notifications from a Runner.
// Implementations must be safe for concurrent use of OnFileDone.
type Progress interface {
	OnStart(totalFiles int)
	OnFileDone(path string)
	OnFinish()
}

// FileResult is the outcome for a single file.
type FileResult struct {
	Path        string
	Diagnostics []Diagnostic
	// Fixed is true when fixes were applied to the file's content.
	Fixed bool
	// Output holds the fixed content when Fixed is true.
	Output []byte
	// Err is set when the file could not be read, parsed or written.
	Err error
}

// Result aggregates a run over many files.
type Result struct {
	Files []FileResult
}

// Count tallies diagnostics in a Result.
type Count struct {
	Errors          int
	Warnings        int
	FixableErrors   int
	FixableWarnings int
	FailedFiles     int
	FixedFiles      int
}

// Counts tallies every file in the result.
func (r *Result) Counts() Count {
	var c Count
	for _, f := range r.Files {
		if f.Err != nil {
			c.FailedFiles++
		}
		if f.Fixed {
			c.FixedFiles++
		}
		for _, d := range f.Diagnostics {
			switch d.Severity {
			case rules.SeverityError:
				c.Errors++
				if d.Fixable() {
					c.FixableErrors++
				}
			case rules.SeverityWarn:
				c.Warnings++
				if d.Fixable() {
					c.FixableWarnings++
				}
			}
		}
	}
	return c
}

// Failed reports whether the run should exit non-zero.
func (r *Result) Failed() bool {
	c := r.Counts()
	return c.Errors > 0 || c.FailedFiles > 0
}

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	// Workers bounds concurrent files; zero means runtime.NumCPU().
	Workers int
	// Fix applies fixes.
	Fix bool
	// DryRun computes fixes without writing them to disk.
	DryRun   bool
	Progress Progress
	Logger   *log.Logger
}

// Runner lints many files concurrently. Each file is handled start to finish
// by a single goroutine.
type Runner struct {
	linter   *Linter
	workers  int
	fix      bool
	dryRun   bool
	progress Progress
	logger   *log.Logger
}

// NewRunner creates a Runner around linter.
func NewRunner(linter *Linter, opts RunnerOptions) *Runner {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		linter:   linter,
		workers:  workers,
		fix:      opts.Fix,
		dryRun:   opts.DryRun,
		progress: opts.Progress,
		logger:   logger,
	}
}

// Run lints files and returns results in the same order as files.
// Per-file failures are recorded on the FileResult; only cancellation
// aborts the run.
func (r *Runner) Run(ctx context.Context, files []string) (*Result, error) {
	results := make([]FileResult, len(files))

	if r.progress != nil {
		r.progress.OnStart(len(files))
		defer r.progress.OnFinish()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.lintFile(gctx, path)
			if r.progress != nil {
				r.progress.OnFileDone(path)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{Files: results}, nil
}

// LintText lints in-memory content as if it were filename. Fixes are never
// written to disk.
func (r *Runner) LintText(ctx context.Context, filename string, source []byte) FileResult {
	return r.lintSource(ctx, filename, source)
}

func (r *Runner) lintFile(ctx context.Context, path string) FileResult {
	source, err := os.ReadFile(path)
	if err != nil {
		r.logger.Warn("failed to read file", "file", path, "err", err)
		return FileResult{Path: path, Err: fmt.Errorf("failed to read %s: %w", path, err)}
	}

	result := r.lintSource(ctx, path, source)
	if result.Err != nil || !result.Fixed || r.dryRun {
		return result
	}

	if err := writePreservingMode(path, result.Output); err != nil {
		r.logger.Warn("failed to write fixes", "file", path, "err", err)
		result.Err = fmt.Errorf("failed to write %s: %w", path, err)
	}
	return result
}

func (r *Runner) lintSource(ctx context.Context, path string, source []byte) FileResult {
	result := FileResult{Path: path}

	if !r.fix {
		diags, err := r.linter.Lint(ctx, path, source)
		if err != nil {
			r.logger.Warn("failed to lint file", "file", path, "err", err)
			result.Err = err
			return result
		}
		result.Diagnostics = diags
		return result
	}

	fixed, err := r.linter.Fix(ctx, path, source)
	if err != nil {
		r.logger.Warn("failed to fix file", "file", path, "err", err)
		result.Err = err
		return result
	}
	result.Diagnostics = fixed.Diagnostics
	result.Fixed = fixed.Fixed
	if fixed.Fixed {
		result.Output = fixed.Output
	}
	return result
}

func writePreservingMode(path string, data []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, data, mode)
}
