package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mvp-joe/reqext/internal/config"
)

// newLogger builds the diagnostic logger. verbose forces debug level.
func newLogger(w io.Writer, cfg config.LogConfig, verbose bool) (*log.Logger, error) {
	levelName := strings.ToLower(cfg.Level)
	if levelName == "warning" {
		levelName = "warn"
	}
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", config.ErrInvalidLogLevel, cfg.Level)
	}
	if verbose {
		level = log.DebugLevel
	}

	var formatter log.Formatter
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		formatter = log.TextFormatter
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("%w: log format %s", config.ErrInvalidFormat, cfg.Format)
	}

	return log.NewWithOptions(w, log.Options{
		Prefix:    "reqext",
		Level:     level,
		Formatter: formatter,
	}), nil
}
