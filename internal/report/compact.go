package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mvp-joe/reqext/internal/lint"
	"github.com/mvp-joe/reqext/internal/rules"
)

// Compact prints one line per diagnostic, e.g.
//
//	src/index.js:1:15: Directory paths must end with index.js [Error/require-index]
type Compact struct {
	BaseDir string
}

func (c *Compact) Format(w io.Writer, res *lint.Result) error {
	var b strings.Builder

	for _, f := range res.Files {
		path := displayPath(c.BaseDir, f.Path)
		if f.Err != nil {
			fmt.Fprintf(&b, "%s: %s [Error]\n", path, f.Err)
		}
		for _, d := range f.Diagnostics {
			level := "Error"
			if d.Severity == rules.SeverityWarn {
				level = "Warning"
			}
			fmt.Fprintf(&b, "%s:%d:%d: %s [%s/%s]\n", path, d.Line, d.Column, d.Message, level, d.Rule)
		}
	}

	counts := res.Counts()
	if n := counts.Errors + counts.Warnings + counts.FailedFiles; n > 0 {
		fmt.Fprintf(&b, "\n%s\n", plural(n, "problem"))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
