package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/reqext/internal/discovery"
	"github.com/mvp-joe/reqext/internal/lint"
	"github.com/mvp-joe/reqext/internal/report"
	"github.com/mvp-joe/reqext/internal/rules"
	"github.com/mvp-joe/reqext/internal/watcher"
)

// ErrLintFailed is returned when error-severity problems remain, a file
// could not be checked or --max-warnings was exceeded.
var ErrLintFailed = errors.New("lint failed")

// checkOptions holds everything a check run needs.
type checkOptions struct {
	RootDir       string
	ConfigFile    string
	Verbose       bool
	Targets       []string
	Fix           bool
	FixDryRun     bool
	Format        string // overrides output.format when set
	Workers       int    // negative keeps run.workers
	Quiet         bool   // report errors only
	MaxWarnings   int    // negative disables the limit
	Watch         bool
	Stdin         bool
	StdinFilename string
	Progress      bool
}

type ioStreams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

var checkFlags checkOptions

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check relative import and export specifiers",
	Long: `Check walks the given files and directories (default: the working directory)
and reports relative specifiers that lack a .js extension or name a directory
without /index.js.

Examples:
  # Check the whole project
  reqext check

  # Rewrite offending specifiers in place
  reqext check --fix src

  # Show what --fix would change without writing
  reqext check --fix-dry-run --format json

  # Check editor buffer contents
  reqext check --stdin --stdin-filename src/index.ts < src/index.ts

  # Re-check on every change
  reqext check --watch
`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	f := checkCmd.Flags()
	f.BoolVar(&checkFlags.Fix, "fix", false, "Rewrite offending specifiers in place")
	f.BoolVar(&checkFlags.FixDryRun, "fix-dry-run", false, "Compute fixes without writing them")
	f.StringVarP(&checkFlags.Format, "format", "f", "", "Report format: stylish, compact or json (default from config)")
	f.IntVarP(&checkFlags.Workers, "workers", "j", 0, "Files checked concurrently (0 = one per CPU)")
	f.BoolVarP(&checkFlags.Quiet, "quiet", "q", false, "Report errors only")
	f.IntVar(&checkFlags.MaxWarnings, "max-warnings", -1, "Fail when more than this many warnings are reported")
	f.BoolVarP(&checkFlags.Watch, "watch", "w", false, "Re-check when files change")
	f.BoolVar(&checkFlags.Stdin, "stdin", false, "Check source text read from stdin")
	f.StringVar(&checkFlags.StdinFilename, "stdin-filename", "", "Path used to resolve specifiers in stdin text")
	f.BoolVar(&checkFlags.Progress, "progress", false, "Show a progress bar on stderr")
}

func runCheck(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	opts := checkFlags
	opts.RootDir = wd
	opts.ConfigFile = cfgFile
	opts.Verbose = verbose
	opts.Targets = args
	if !cmd.Flags().Changed("workers") {
		opts.Workers = -1
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return executeCheck(ctx, opts, ioStreams{In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()})
}

func executeCheck(ctx context.Context, opts checkOptions, s ioStreams) error {
	if opts.Stdin && opts.Watch {
		return errors.New("--stdin cannot be combined with --watch")
	}
	if opts.Stdin && len(opts.Targets) > 0 {
		return errors.New("--stdin cannot be combined with paths")
	}

	env, err := loadEnvironment(opts.RootDir, opts.ConfigFile, opts.Verbose, s.Err)
	if err != nil {
		return err
	}

	format := opts.Format
	if format == "" {
		format = env.cfg.Output.Format
	}
	formatter, err := report.NewFormatter(format, env.rootDir)
	if err != nil {
		return err
	}

	linter, err := env.newLinter()
	if err != nil {
		return err
	}

	workers := env.cfg.Run.Workers
	if opts.Workers >= 0 {
		workers = opts.Workers
	}

	runnerOpts := lint.RunnerOptions{
		Workers: workers,
		Fix:     opts.Fix || opts.FixDryRun,
		DryRun:  opts.FixDryRun,
		Logger:  env.logger,
	}

	if opts.Stdin {
		return checkStdin(ctx, opts, s, env, lint.NewRunner(linter, runnerOpts), formatter)
	}

	fd, err := env.newDiscovery()
	if err != nil {
		return err
	}

	targets := make([]string, 0, len(opts.Targets))
	for _, t := range opts.Targets {
		if !filepath.IsAbs(t) {
			t = filepath.Join(env.rootDir, t)
		}
		targets = append(targets, t)
	}

	run := func(ctx context.Context) (*lint.Result, error) {
		files, err := fd.Discover(targets...)
		if err != nil {
			return nil, err
		}
		env.logger.Debug("discovered files", "count", len(files))

		ro := runnerOpts
		if opts.Progress {
			ro.Progress = newProgressReporter(s.Err)
		}
		res, err := lint.NewRunner(linter, ro).Run(ctx, files)
		if err != nil {
			return nil, err
		}
		if opts.Quiet {
			res = errorsOnly(res)
		}
		if err := formatter.Format(s.Out, res); err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}
		return res, nil
	}

	if opts.Watch {
		return watchCheck(ctx, env, fd, opts.Fix && !opts.FixDryRun, run)
	}

	res, err := run(ctx)
	if err != nil {
		return err
	}
	return checkOutcome(res, opts.MaxWarnings, s.Err)
}

// checkStdin lints text from stdin. With --fix the fixed text goes to stdout
// and the report to stderr.
func checkStdin(ctx context.Context, opts checkOptions, s ioStreams, env *environment, runner *lint.Runner, formatter report.Formatter) error {
	if opts.StdinFilename == "" {
		return errors.New("--stdin-filename is required with --stdin")
	}
	filename := opts.StdinFilename
	if !filepath.IsAbs(filename) {
		filename = filepath.Join(env.rootDir, filename)
	}

	source, err := io.ReadAll(s.In)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	fr := runner.LintText(ctx, filename, source)
	res := &lint.Result{Files: []lint.FileResult{fr}}
	if opts.Quiet {
		res = errorsOnly(res)
	}

	// With --fix stdout always carries the whole buffer, unchanged when the
	// text could not be linted.
	reportOut := s.Out
	if opts.Fix && !opts.FixDryRun {
		output := source
		if fr.Err == nil && fr.Fixed {
			output = fr.Output
		}
		if _, err := s.Out.Write(output); err != nil {
			return fmt.Errorf("failed to write fixed output: %w", err)
		}
		reportOut = s.Err
	}

	if err := formatter.Format(reportOut, res); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return checkOutcome(res, opts.MaxWarnings, s.Err)
}

// watchCheck runs once, then again after every debounced batch of changes
// until ctx is cancelled or an interrupt arrives. While fixing, the watcher
// is paused so the run's own writes are batched together.
func watchCheck(ctx context.Context, env *environment, fd *discovery.FileDiscovery, writesFiles bool, run func(context.Context) (*lint.Result, error)) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watcher.NewFileWatcher([]string{env.rootDir},
		watcher.WithMatcher(fd.Matches),
		watcher.WithSkipDir(fd.Ignored),
		watcher.WithLogger(env.logger),
	)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Stop()

	changes := make(chan []string, 1)
	if err := w.Start(ctx, func(files []string) {
		select {
		case changes <- files:
		default:
			// A run is already queued and will see these changes.
		}
	}); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	runOnce := func() error {
		if writesFiles {
			w.Pause()
			defer w.Resume()
		}
		_, err := run(ctx)
		if err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	}

	if err := runOnce(); err != nil {
		return err
	}
	env.logger.Info("watching for changes", "root", env.rootDir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case files := <-changes:
			env.logger.Debug("files changed", "files", files)
			if err := runOnce(); err != nil {
				return err
			}
		}
	}
}

// checkOutcome maps a result to the command's exit status.
func checkOutcome(res *lint.Result, maxWarnings int, stderr io.Writer) error {
	if res.Failed() {
		return ErrLintFailed
	}
	if c := res.Counts(); maxWarnings >= 0 && c.Warnings > maxWarnings {
		fmt.Fprintf(stderr, "reqext found too many warnings (maximum: %d).\n", maxWarnings)
		return ErrLintFailed
	}
	return nil
}

// errorsOnly drops warning diagnostics.
func errorsOnly(res *lint.Result) *lint.Result {
	out := &lint.Result{Files: make([]lint.FileResult, len(res.Files))}
	for i, f := range res.Files {
		kept := make([]lint.Diagnostic, 0, len(f.Diagnostics))
		for _, d := range f.Diagnostics {
			if d.Severity == rules.SeverityError {
				kept = append(kept, d)
			}
		}
		f.Diagnostics = kept
		out.Files[i] = f
	}
	return out
}
