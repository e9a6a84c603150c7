package lint

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/mvp-joe/reqext/internal/parsers"
	"github.com/mvp-joe/reqext/internal/rules"
)

// StatementParser extracts import/export statements from a source file.
type StatementParser interface {
	Parse(ctx context.Context, filename string, source []byte) ([]rules.Statement, error)
}

// Diagnostic is a reported violation, positioned at the offending specifier.
type Diagnostic struct {
	File     string
	Rule     string
	Severity rules.Severity
	Message  string
	Line     int
	Column   int
	Form     rules.Form
	Fix      *rules.Fix
}

// Fixable reports whether the diagnostic carries an automatic fix.
func (d Diagnostic) Fixable() bool {
	return d.Fix != nil
}

type enabledRule struct {
	rule     rules.Rule
	severity rules.Severity
}

// Linter runs the enabled rules over one file at a time.
type Linter struct {
	parser       StatementParser
	probe        rules.Probe
	rules        []enabledRule
	maxFixPasses int
	logger       *log.Logger
}

// Option configures a Linter.
type Option func(*Linter) error

// WithParser replaces the tree-sitter statement parser.
func WithParser(p StatementParser) Option {
	return func(l *Linter) error {
		l.parser = p
		return nil
	}
}

// WithProbe replaces the filesystem probe.
func WithProbe(p rules.Probe) Option {
	return func(l *Linter) error {
		l.probe = p
		return nil
	}
}

// WithSeverities enables rules by name. Rules at SeverityOff or missing from
// the map are disabled.
func WithSeverities(severities map[string]rules.Severity) Option {
	return func(l *Linter) error {
		l.rules = nil
		for _, r := range rules.All() {
			sev := severities[r.Name()]
			if sev == rules.SeverityOff {
				continue
			}
			l.rules = append(l.rules, enabledRule{rule: r, severity: sev})
		}
		for name := range severities {
			if _, ok := rules.Lookup(name); !ok {
				return fmt.Errorf("unknown rule %q", name)
			}
		}
		return nil
	}
}

// WithMaxFixPasses bounds how many fix-and-relint passes Fix performs.
func WithMaxFixPasses(n int) Option {
	return func(l *Linter) error {
		if n <= 0 {
			return fmt.Errorf("max fix passes must be positive, got %d", n)
		}
		l.maxFixPasses = n
		return nil
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(l *Linter) error {
		if logger != nil {
			l.logger = logger
		}
		return nil
	}
}

// New creates a Linter with the recommended rules, the tree-sitter parser and
// the OS filesystem probe unless overridden.
func New(opts ...Option) (*Linter, error) {
	l := &Linter{
		parser:       parsers.NewStatementParser(),
		probe:        rules.OSProbe{},
		maxFixPasses: 10,
		logger:       log.Default(),
	}
	for _, r := range rules.All() {
		l.rules = append(l.rules, enabledRule{rule: r, severity: rules.SeverityError})
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Rules returns the enabled rules with their severities, in rule order.
func (l *Linter) Rules() map[string]rules.Severity {
	out := make(map[string]rules.Severity, len(l.rules))
	for _, er := range l.rules {
		out[er.rule.Name()] = er.severity
	}
	return out
}

// Lint checks source, which is the content of filename, and returns the
// diagnostics sorted by position.
func (l *Linter) Lint(ctx context.Context, filename string, source []byte) ([]Diagnostic, error) {
	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", filename, err)
	}

	statements, err := l.parser.Parse(ctx, absPath, source)
	if err != nil {
		return nil, err
	}

	ruleCtx := rules.Context{Filename: absPath, Probe: l.probe}

	var diags []Diagnostic
	for _, stmt := range statements {
		for _, er := range l.rules {
			v := rules.Evaluate(er.rule, ruleCtx, stmt)
			if v == nil {
				continue
			}
			diags = append(diags, Diagnostic{
				File:     filename,
				Rule:     v.Rule,
				Severity: er.severity,
				Message:  v.Message,
				Line:     v.Statement.Source.Pos.Line,
				Column:   v.Statement.Source.Pos.Column,
				Form:     v.Statement.Form,
				Fix:      v.Fix,
			})
		}
	}

	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		return diags[i].Column < diags[j].Column
	})

	l.logger.Debug("linted file", "file", filename, "statements", len(statements), "diagnostics", len(diags))
	return diags, nil
}

// FixResult is the outcome of Fix.
type FixResult struct {
	// Output is the source after all applied fixes.
	Output []byte
	// Fixed is true when at least one fix was applied.
	Fixed bool
	// Passes is the number of passes that applied fixes.
	Passes int
	// Diagnostics are the problems remaining in Output.
	Diagnostics []Diagnostic
}

// Fix applies fixes and re-lints until nothing fixable remains or the pass
// limit is reached.
func (l *Linter) Fix(ctx context.Context, filename string, source []byte) (*FixResult, error) {
	result := &FixResult{Output: source}

	for {
		diags, err := l.Lint(ctx, filename, result.Output)
		if err != nil {
			return nil, err
		}
		result.Diagnostics = diags

		if result.Passes >= l.maxFixPasses {
			break
		}

		out, applied := ApplyFixes(result.Output, diags)
		if applied == 0 {
			break
		}

		l.logger.Debug("applied fixes", "file", filename, "pass", result.Passes+1, "fixes", applied)
		result.Output = out
		result.Fixed = true
		result.Passes++
	}

	return result, nil
}
