package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/reqext/internal/lint"
)

// Formatter renders a lint result.
type Formatter interface {
	Format(w io.Writer, res *lint.Result) error
}

// NewFormatter returns the formatter registered under name. File paths are
// printed relative to baseDir when baseDir is non-empty.
func NewFormatter(name, baseDir string) (Formatter, error) {
	switch strings.ToLower(name) {
	case "", "stylish":
		return &Stylish{BaseDir: baseDir}, nil
	case "compact":
		return &Compact{BaseDir: baseDir}, nil
	case "json":
		return &JSON{BaseDir: baseDir}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (valid: stylish, compact, json)", name)
	}
}

func displayPath(baseDir, path string) string {
	if baseDir == "" {
		return path
	}
	rel, err := filepath.Rel(baseDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
