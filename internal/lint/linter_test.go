package lint

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/reqext/internal/rules"
)

// Test Plan for Linter:
// - require-extensions valid/invalid cases against the example tree
// - require-index valid/invalid cases against the example tree
// - Diagnostics are positioned at the specifier and sorted by position
// - Specifiers with a query report without a fix
// - Double quotes are preserved by fixes
// - Fix rewrites every fixable specifier and is idempotent
// - Fix stops at the pass limit
// - A query on a directory specifier stacks /index.js until the pass limit
// - Severity off disables a rule; unknown rule names are rejected
// - Parser errors propagate
// - ApplyFixes skips overlapping and out-of-range fixes

type ruleCase struct {
	name     string
	code     string
	output   string
	filename string
}

func only(rule string) Option {
	return WithSeverities(map[string]rules.Severity{rule: rules.SeverityError})
}

func runCases(t *testing.T, rule, message string, valid, invalid []ruleCase) {
	t.Helper()

	example := NewExampleTree(t)
	linter, err := New(only(rule))
	require.NoError(t, err)

	filename := func(c ruleCase) string {
		if c.filename != "" {
			return filepath.Join(example, c.filename)
		}
		return filepath.Join(example, "index.js")
	}

	for _, c := range valid {
		diags, err := linter.Lint(context.Background(), filename(c), []byte(c.code))
		require.NoError(t, err, c.name)
		assert.Empty(t, diags, c.name)
	}

	for _, c := range invalid {
		diags, err := linter.Lint(context.Background(), filename(c), []byte(c.code))
		require.NoError(t, err, c.name)
		require.Len(t, diags, 1, c.name)
		assert.Equal(t, message, diags[0].Message, c.name)
		assert.Equal(t, rule, diags[0].Rule, c.name)

		fixed, err := linter.Fix(context.Background(), filename(c), []byte(c.code))
		require.NoError(t, err, c.name)
		assert.Equal(t, c.output, string(fixed.Output), c.name)
		assert.Empty(t, fixed.Diagnostics, c.name)
	}
}

func TestLinter_RequireExtensions(t *testing.T) {
	t.Parallel()

	valid := []ruleCase{
		{name: "import with extension", code: "import test from './dir/index.js'"},
		{name: "package import", code: "import batcave from '@wayne/foundation'"},
		{name: "import jsx", code: "import test from './joker.jsx'"},
		{name: "import cjs", code: "import test from './joker.cjs'"},
		{name: "import mjs", code: "import test from './joker.mjs'"},
		{name: "export without from", code: "export const answer = 42"},
	}
	invalid := []ruleCase{
		{
			name:   "import without extension",
			code:   "import test from './dir/index'",
			output: "import test from './dir/index.js'",
		},
		{
			name:   "file with sibling folder of same name",
			code:   "import arkham from './arkham'",
			output: "import arkham from './arkham.js'",
		},
		{
			name:     "typescript file with sibling folder of same name",
			code:     "import batcave from './batcave'",
			output:   "import batcave from './batcave.js'",
			filename: "index.ts",
		},
	}

	runCases(t, rules.RequireExtensionsName, rules.RequireExtensionsMessage, valid, invalid)
}

func TestLinter_RequireIndex(t *testing.T) {
	t.Parallel()

	valid := []ruleCase{
		{name: "import from index.js", code: "import test from './dir/index.js'"},
		{name: "package import", code: "import batcave from '@wayne/foundation'"},
		{name: "bail on import from file with sibling folder of same name", code: "import arkham from './arkham'"},
	}
	invalid := []ruleCase{
		{name: "import without index", code: "import './dir'", output: "import './dir/index.js'"},
		{name: "export * without index", code: "export * from './dir'", output: "export * from './dir/index.js'"},
		{name: "export named without index", code: "export { joker } from './dir'", output: "export { joker } from './dir/index.js'"},
		{name: "import from '../'", code: "import plugin from '../'", output: "import plugin from '../index.js'"},
		{name: "import from '..'", code: "import plugin from '..'", output: "import plugin from '../index.js'"},
		{name: "import from './'", code: "import index from './'", output: "import index from './index.js'", filename: "other.js"},
		{name: "import from '.'", code: "import index from '.'", output: "import index from './index.js'", filename: "other.js"},
		{name: "named import without index", code: "import { batmobile } from './dir'", output: "import { batmobile } from './dir/index.js'"},
		{name: "default import without index", code: "import batmobile from './dir'", output: "import batmobile from './dir/index.js'"},
	}

	runCases(t, rules.RequireIndexName, rules.RequireIndexMessage, valid, invalid)
}

func TestLinter_DiagnosticPositions(t *testing.T) {
	t.Parallel()

	example := NewExampleTree(t)
	linter, err := New()
	require.NoError(t, err)

	src := "import a from './dir'\nimport b from './missing'\n"
	diags, err := linter.Lint(context.Background(), filepath.Join(example, "index.js"), []byte(src))
	require.NoError(t, err)
	require.Len(t, diags, 2)

	assert.Equal(t, rules.RequireIndexName, diags[0].Rule)
	assert.Equal(t, 1, diags[0].Line)
	assert.Equal(t, 15, diags[0].Column)
	assert.Equal(t, rules.FormImport, diags[0].Form)
	assert.Equal(t, rules.SeverityError, diags[0].Severity)

	assert.Equal(t, rules.RequireExtensionsName, diags[1].Rule)
	assert.Equal(t, 2, diags[1].Line)
}

func TestLinter_QueryHasNoFix(t *testing.T) {
	t.Parallel()

	example := NewExampleTree(t)
	linter, err := New()
	require.NoError(t, err)

	src := "import raw from './x?raw'\n"
	filename := filepath.Join(example, "index.js")

	diags, err := linter.Lint(context.Background(), filename, []byte(src))
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.False(t, diags[0].Fixable())

	fixed, err := linter.Fix(context.Background(), filename, []byte(src))
	require.NoError(t, err)
	assert.False(t, fixed.Fixed)
	assert.Equal(t, src, string(fixed.Output))
	assert.Len(t, fixed.Diagnostics, 1)
}

func TestLinter_FixPreservesQuotesAndIsIdempotent(t *testing.T) {
	t.Parallel()

	example := NewExampleTree(t)
	linter, err := New()
	require.NoError(t, err)

	filename := filepath.Join(example, "index.ts")
	src := `import a from "./dir"
import type { B } from './missing'
export * from "./batcave"
export { c } from '../'
import pkg from 'react'
`
	want := `import a from "./dir/index.js"
import type { B } from './missing.js'
export * from "./batcave.js"
export { c } from '../index.js'
import pkg from 'react'
`

	fixed, err := linter.Fix(context.Background(), filename, []byte(src))
	require.NoError(t, err)
	assert.True(t, fixed.Fixed)
	assert.Equal(t, 1, fixed.Passes)
	assert.Equal(t, want, string(fixed.Output))
	assert.Empty(t, fixed.Diagnostics)

	again, err := linter.Fix(context.Background(), filename, fixed.Output)
	require.NoError(t, err)
	assert.False(t, again.Fixed)
	assert.Equal(t, want, string(again.Output))
}

func TestLinter_FixPassLimit(t *testing.T) {
	t.Parallel()

	// Every pass sees a fresh violation, so only the limit stops the loop.
	linter, err := New(WithParser(&scriptedParser{}), WithProbe(rules.OSProbe{}), WithMaxFixPasses(1))
	require.NoError(t, err)

	fixed, err := linter.Fix(context.Background(), "/tmp/reqext/index.js", []byte("'./a'"))
	require.NoError(t, err)
	assert.Equal(t, 1, fixed.Passes)
	assert.NotEmpty(t, fixed.Diagnostics)
}

func TestLinter_QueryDirectoryFixStacksIndex(t *testing.T) {
	t.Parallel()

	example := NewExampleTree(t)
	linter, err := New(WithMaxFixPasses(3))
	require.NoError(t, err)

	// The query-free path keeps naming the directory, so every pass appends
	// another /index.js after the query.
	fixed, err := linter.Fix(context.Background(), filepath.Join(example, "index.js"), []byte("import q from './dir?raw'\n"))
	require.NoError(t, err)
	assert.True(t, fixed.Fixed)
	assert.Equal(t, 3, fixed.Passes)
	assert.Equal(t, "import q from './dir?raw/index.js/index.js/index.js'\n", string(fixed.Output))
	require.Len(t, fixed.Diagnostics, 1)
	assert.Equal(t, rules.RequireIndexName, fixed.Diagnostics[0].Rule)

	defaults, err := New()
	require.NoError(t, err)
	fixed, err = defaults.Fix(context.Background(), filepath.Join(example, "index.js"), []byte("import q from './dir?raw'\n"))
	require.NoError(t, err)
	assert.Equal(t, 10, fixed.Passes)
	assert.Equal(t, "import q from './dir?raw"+strings.Repeat("/index.js", 10)+"'\n", string(fixed.Output))
}

func TestLinter_SeverityOff(t *testing.T) {
	t.Parallel()

	example := NewExampleTree(t)
	linter, err := New(WithSeverities(map[string]rules.Severity{
		rules.RequireExtensionsName: rules.SeverityWarn,
		rules.RequireIndexName:      rules.SeverityOff,
	}))
	require.NoError(t, err)

	assert.Equal(t, map[string]rules.Severity{rules.RequireExtensionsName: rules.SeverityWarn}, linter.Rules())

	diags, err := linter.Lint(context.Background(), filepath.Join(example, "index.js"), []byte("import './dir'\nimport './nope'\n"))
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, rules.SeverityWarn, diags[0].Severity)
}

func TestNew_RejectsBadOptions(t *testing.T) {
	t.Parallel()

	_, err := New(WithSeverities(map[string]rules.Severity{"no-such-rule": rules.SeverityError}))
	assert.Error(t, err)

	_, err = New(WithMaxFixPasses(0))
	assert.Error(t, err)
}

func TestLinter_ParserErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	linter, err := New(WithParser(&scriptedParser{err: boom}))
	require.NoError(t, err)

	_, err = linter.Lint(context.Background(), "index.js", nil)
	assert.ErrorIs(t, err, boom)

	_, err = linter.Fix(context.Background(), "index.js", nil)
	assert.ErrorIs(t, err, boom)
}

func TestApplyFixes(t *testing.T) {
	t.Parallel()

	src := []byte("0123456789")
	diags := []Diagnostic{
		{Fix: &rules.Fix{Start: 6, End: 8, Text: "xx"}},
		{Fix: &rules.Fix{Start: 0, End: 2, Text: "A"}},
		{Fix: &rules.Fix{Start: 1, End: 3, Text: "overlap"}},
		{Fix: &rules.Fix{Start: 9, End: 20, Text: "out of range"}},
		{},
	}

	out, applied := ApplyFixes(src, diags)
	assert.Equal(t, 2, applied)
	assert.Equal(t, "A2345xx89", string(out))

	out, applied = ApplyFixes(src, nil)
	assert.Equal(t, 0, applied)
	assert.Equal(t, "0123456789", string(out))
}

// scriptedParser returns a single './a' path clause covering the whole
// source, or an error.
type scriptedParser struct {
	err error
}

func (p *scriptedParser) Parse(ctx context.Context, filename string, source []byte) ([]rules.Statement, error) {
	if p.err != nil {
		return nil, p.err
	}
	return []rules.Statement{rules.PathClause{
		Form: rules.FormImport,
		Source: rules.SourceToken{
			Value: "./a",
			Quote: '\'',
			Start: 0,
			End:   len(source),
			Pos:   rules.Position{Line: 1, Column: 1},
		},
	}}, nil
}
