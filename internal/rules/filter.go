package rules

import (
	"path/filepath"
	"strings"
)

// ValidExtensions are the module-file extensions a relative specifier may end with.
var ValidExtensions = []string{".js", ".jsx", ".cjs", ".mjs"}

// Filter decides whether a statement needs checking and, if so, builds its
// PathCandidate. filename is the absolute path of the file being linted.
//
// Statements without a specifier, bare package specifiers and specifiers that
// already end in a valid extension are skipped.
func Filter(stmt Statement, filename string) (PathCandidate, bool) {
	clause, ok := stmt.(PathClause)
	if !ok {
		return PathCandidate{}, false
	}

	raw := clause.Source.Value
	value := StripQuery(raw)
	if value == "" || !strings.HasPrefix(value, ".") || HasValidExtension(value) {
		return PathCandidate{}, false
	}

	return PathCandidate{
		Raw:       raw,
		QueryFree: value,
		Resolved:  filepath.Join(filepath.Dir(filename), filepath.FromSlash(value)),
	}, true
}

// StripQuery removes a trailing `?...` suffix.
func StripQuery(specifier string) string {
	if i := strings.IndexByte(specifier, '?'); i >= 0 {
		return specifier[:i]
	}
	return specifier
}

// HasValidExtension reports whether specifier ends with one of ValidExtensions.
func HasValidExtension(specifier string) bool {
	for _, ext := range ValidExtensions {
		if strings.HasSuffix(specifier, ext) {
			return true
		}
	}
	return false
}
