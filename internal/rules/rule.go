package rules

import "path/filepath"

const (
	RequireExtensionsName = "require-extensions"
	RequireIndexName      = "require-index"
)

// Context is the per-file state shared by every rule invocation.
type Context struct {
	// Filename is the absolute path of the file being linted.
	Filename string
	Probe    Probe
}

// FileExt returns the extension of the file being linted, e.g. ".ts".
func (c Context) FileExt() string {
	return filepath.Ext(c.Filename)
}

func (c Context) probe() Probe {
	if c.Probe == nil {
		return OSProbe{}
	}
	return c.Probe
}

// Rule checks one filtered candidate.
type Rule interface {
	Name() string
	Description() string
	Check(ctx Context, stmt PathClause, candidate PathCandidate) *Violation
}

// Evaluate runs the shared statement filter and then rule against stmt.
// It returns nil when the statement is out of scope or passes.
func Evaluate(rule Rule, ctx Context, stmt Statement) *Violation {
	candidate, ok := Filter(stmt, ctx.Filename)
	if !ok {
		return nil
	}
	return rule.Check(ctx, stmt.(PathClause), candidate)
}

// All returns every available rule in a stable order.
func All() []Rule {
	return []Rule{RequireExtensions{}, RequireIndex{}}
}

// Lookup finds a rule by name.
func Lookup(name string) (Rule, bool) {
	for _, r := range All() {
		if r.Name() == name {
			return r, true
		}
	}
	return nil, false
}

// Recommended is the preset that turns both rules on as errors.
func Recommended() map[string]string {
	return map[string]string{
		RequireExtensionsName: "error",
		RequireIndexName:      "error",
	}
}
