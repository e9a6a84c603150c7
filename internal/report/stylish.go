package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mvp-joe/reqext/internal/lint"
	"github.com/mvp-joe/reqext/internal/rules"
)

// Stylish groups diagnostics under their file name and ends with a summary.
type Stylish struct {
	BaseDir string
}

type stylishStyles struct {
	file    lipgloss.Style
	pos     lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	rule    lipgloss.Style
	summary lipgloss.Style
}

func newStylishStyles(w io.Writer) stylishStyles {
	// Colors only when w is a terminal.
	r := lipgloss.NewRenderer(w)
	return stylishStyles{
		file:    r.NewStyle().Underline(true),
		pos:     r.NewStyle().Faint(true),
		err:     r.NewStyle().Foreground(lipgloss.Color("9")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("11")),
		rule:    r.NewStyle().Faint(true),
		summary: r.NewStyle().Bold(true),
	}
}

func (s *Stylish) Format(w io.Writer, res *lint.Result) error {
	st := newStylishStyles(w)
	var b strings.Builder

	for _, f := range res.Files {
		if len(f.Diagnostics) == 0 && f.Err == nil {
			continue
		}

		b.WriteString("\n")
		b.WriteString(st.file.Render(displayPath(s.BaseDir, f.Path)))
		b.WriteString("\n")

		if f.Err != nil {
			fmt.Fprintf(&b, "  %s  %s\n", st.err.Render("error"), f.Err)
		}

		for _, d := range f.Diagnostics {
			level := st.err.Render("error")
			if d.Severity == rules.SeverityWarn {
				level = st.warn.Render("warning")
			}
			pos := fmt.Sprintf("%d:%d", d.Line, d.Column)
			fmt.Fprintf(&b, "  %s  %s  %s  %s\n",
				st.pos.Render(fmt.Sprintf("%-7s", pos)), level, d.Message, st.rule.Render(d.Rule))
		}
	}

	c := res.Counts()
	problems := c.Errors + c.Warnings + c.FailedFiles
	if problems > 0 {
		mark := st.err
		if c.Errors == 0 && c.FailedFiles == 0 {
			mark = st.warn
		}
		b.WriteString("\n")
		b.WriteString(mark.Render(st.summary.Render(fmt.Sprintf("✖ %s (%s, %s)",
			plural(problems, "problem"), plural(c.Errors+c.FailedFiles, "error"), plural(c.Warnings, "warning")))))
		b.WriteString("\n")

		if c.FixableErrors+c.FixableWarnings > 0 {
			fmt.Fprintf(&b, "  %s and %s potentially fixable with the `--fix` option.\n",
				plural(c.FixableErrors, "error"), plural(c.FixableWarnings, "warning"))
		}
	}

	if c.FixedFiles > 0 {
		fmt.Fprintf(&b, "\n✓ fixed %s\n", plural(c.FixedFiles, "file"))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
