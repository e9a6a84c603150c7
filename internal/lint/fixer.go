package lint

import (
	"bytes"
	"sort"

	"github.com/mvp-joe/reqext/internal/rules"
)

// ApplyFixes applies the fixes carried by diags to source and returns the new
// content and the number of fixes applied. Fixes overlapping an earlier one
// are skipped; they are picked up by the next pass once re-linted.
func ApplyFixes(source []byte, diags []Diagnostic) ([]byte, int) {
	fixes := make([]rules.Fix, 0, len(diags))
	for _, d := range diags {
		if d.Fix != nil {
			fixes = append(fixes, *d.Fix)
		}
	}
	if len(fixes) == 0 {
		return source, 0
	}

	sort.SliceStable(fixes, func(i, j int) bool {
		return fixes[i].Start < fixes[j].Start
	})

	var buf bytes.Buffer
	buf.Grow(len(source))

	applied := 0
	last := 0
	for _, f := range fixes {
		if f.Start < last || f.Start > f.End || f.End > len(source) {
			continue
		}
		buf.Write(source[last:f.Start])
		buf.WriteString(f.Text)
		last = f.End
		applied++
	}
	buf.Write(source[last:])

	return buf.Bytes(), applied
}
