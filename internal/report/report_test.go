package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/reqext/internal/lint"
	"github.com/mvp-joe/reqext/internal/rules"
)

// Test Plan for report:
// - NewFormatter resolves stylish, compact, json and rejects unknown names
// - Stylish groups by file, prints positions, severities, rule ids and a summary
// - Stylish mentions --fix when fixable problems exist and reports fixed files
// - Stylish prints nothing for a clean run
// - Compact prints one line per diagnostic with relative paths
// - JSON includes run id, counts, severities as numbers, fix ranges and output
// - File errors are shown by every formatter
// - Rules table lists every rule with its severity

var base = filepath.FromSlash("/work/project")

func sampleResult() *lint.Result {
	return &lint.Result{Files: []lint.FileResult{
		{
			Path: filepath.Join(base, "src", "index.js"),
			Diagnostics: []lint.Diagnostic{
				{
					Rule:     rules.RequireIndexName,
					Severity: rules.SeverityError,
					Message:  rules.RequireIndexMessage,
					Line:     1,
					Column:   15,
					Form:     rules.FormImport,
					Fix:      &rules.Fix{Start: 14, End: 21, Text: "'./dir/index.js'"},
				},
				{
					Rule:     rules.RequireExtensionsName,
					Severity: rules.SeverityWarn,
					Message:  rules.RequireExtensionsMessage,
					Line:     2,
					Column:   17,
					Form:     rules.FormExportAll,
				},
			},
		},
		{Path: filepath.Join(base, "src", "clean.js")},
		{Path: filepath.Join(base, "src", "broken.js"), Err: errors.New("failed to read")},
	}}
}

func TestNewFormatter(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "stylish", "compact", "json", "JSON"} {
		f, err := NewFormatter(name, base)
		require.NoError(t, err, name)
		assert.NotNil(t, f)
	}

	_, err := NewFormatter("xml", base)
	assert.Error(t, err)
}

func TestStylish(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, (&Stylish{BaseDir: base}).Format(&buf, sampleResult()))
	out := buf.String()

	assert.Contains(t, out, filepath.Join("src", "index.js"))
	assert.Contains(t, out, "1:15")
	assert.Contains(t, out, "error")
	assert.Contains(t, out, "warning")
	assert.Contains(t, out, rules.RequireIndexMessage)
	assert.Contains(t, out, rules.RequireIndexName)
	assert.Contains(t, out, "failed to read")
	assert.NotContains(t, out, "clean.js")
	assert.Contains(t, out, "3 problems (2 errors, 1 warning)")
	assert.Contains(t, out, "1 error and 0 warnings potentially fixable with the `--fix` option.")
}

func TestStylish_CleanRun(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	res := &lint.Result{Files: []lint.FileResult{{Path: "a.js"}}}
	require.NoError(t, (&Stylish{}).Format(&buf, res))
	assert.Empty(t, buf.String())
}

func TestStylish_FixedFiles(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	res := &lint.Result{Files: []lint.FileResult{{Path: "a.js", Fixed: true}}}
	require.NoError(t, (&Stylish{}).Format(&buf, res))
	assert.Contains(t, buf.String(), "fixed 1 file")
}

func TestCompact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, (&Compact{BaseDir: base}).Format(&buf, sampleResult()))
	out := buf.String()

	index := filepath.Join("src", "index.js")
	assert.Contains(t, out, index+":1:15: Directory paths must end with index.js [Error/require-index]\n")
	assert.Contains(t, out, index+":2:17: Relative imports and exports must end with .js [Warning/require-extensions]\n")
	assert.Contains(t, out, filepath.Join("src", "broken.js")+": failed to read [Error]\n")
	assert.Contains(t, out, "3 problems")
}

func TestJSON(t *testing.T) {
	t.Parallel()

	res := sampleResult()
	res.Files[1].Fixed = true
	res.Files[1].Output = []byte("import './dir/index.js'\n")

	var buf bytes.Buffer
	require.NoError(t, (&JSON{BaseDir: base, RunID: "run-1"}).Format(&buf, res))

	var report JSONReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, 1, report.ErrorCount)
	assert.Equal(t, 1, report.WarningCount)
	assert.Equal(t, 1, report.FixableErrorCount)
	assert.Equal(t, 1, report.FixedFileCount)
	assert.Equal(t, 1, report.FailedFileCount)
	require.Len(t, report.Results, 3)

	first := report.Results[0]
	assert.Equal(t, filepath.Join("src", "index.js"), first.FilePath)
	require.Len(t, first.Messages, 2)
	assert.Equal(t, 2, first.Messages[0].Severity)
	assert.Equal(t, "ImportDeclaration", first.Messages[0].NodeType)
	require.NotNil(t, first.Messages[0].Fix)
	assert.Equal(t, [2]int{14, 21}, first.Messages[0].Fix.Range)
	assert.Equal(t, 1, first.Messages[1].Severity)
	assert.Nil(t, first.Messages[1].Fix)

	require.NotNil(t, report.Results[1].Output)
	assert.Equal(t, "import './dir/index.js'\n", *report.Results[1].Output)
	assert.Equal(t, "failed to read", report.Results[2].Error)
}

func TestJSON_GeneratesRunID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, (&JSON{}).Format(&buf, &lint.Result{}))

	var report JSONReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Len(t, report.RunID, 36)
	assert.NotNil(t, report.Results)
}

func TestRulesTable(t *testing.T) {
	t.Parallel()

	entries := RuleEntries(map[string]rules.Severity{rules.RequireIndexName: rules.SeverityWarn})
	require.Len(t, entries, 2)
	assert.Equal(t, rules.SeverityOff, entries[0].Severity)
	assert.Equal(t, rules.SeverityWarn, entries[1].Severity)

	var buf bytes.Buffer
	WriteRulesTable(&buf, entries)
	out := buf.String()
	assert.Contains(t, out, rules.RequireExtensionsName)
	assert.Contains(t, out, rules.RequireIndexName)
	assert.Contains(t, out, "warn")
	assert.Contains(t, out, "off")
}
