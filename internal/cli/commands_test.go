package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/reqext/internal/config"
	"github.com/mvp-joe/reqext/internal/lint"
)

// Test Plan for supporting commands:
// - newLogger honours level, verbose and format, and rejects bad values
// - progressReporter tolerates OnFinish without OnStart
// - rules lists each rule with its configured severity
// - version prints version, commit and build date
// - commands are registered on the root command

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := newLogger(&buf, config.LogConfig{Level: "warning", Format: "text"}, false)
	require.NoError(t, err)
	assert.Equal(t, log.WarnLevel, logger.GetLevel())

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	logger, err = newLogger(&buf, config.LogConfig{Level: "error", Format: "json"}, true)
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, logger.GetLevel())

	_, err = newLogger(&buf, config.LogConfig{Level: "loud"}, false)
	assert.True(t, errors.Is(err, config.ErrInvalidLogLevel))

	_, err = newLogger(&buf, config.LogConfig{Level: "info", Format: "xml"}, false)
	assert.True(t, errors.Is(err, config.ErrInvalidFormat))
}

func TestProgressReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := newProgressReporter(&buf)

	require.NotPanics(t, func() {
		p.OnFinish()
		p.OnStart(2)
		p.OnFileDone("a.js")
		p.OnFileDone("b.js")
		p.OnFinish()
	})
}

func TestRulesCommand(t *testing.T) {
	t.Parallel()

	root := lint.NewExampleTree(t)
	lint.WriteFile(t, filepath.Join(root, ".reqext", "config.yml"), "rules:\n  require-index: warn\n")

	var out, errOut bytes.Buffer
	require.NoError(t, executeRules(root, "", &out, &errOut))
	assert.Contains(t, out.String(), "require-extensions")
	assert.Contains(t, out.String(), "require-index")
	assert.Contains(t, out.String(), "warn")
	assert.Contains(t, out.String(), "error")
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)
	assert.Contains(t, buf.String(), "reqext "+Version)
	assert.Contains(t, buf.String(), "Git commit: "+GitCommit)
	assert.Contains(t, buf.String(), "Build date: "+BuildDate)
}

func TestRootCommands(t *testing.T) {
	t.Parallel()

	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"check", "rules", "mcp", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}
