package rules

import "strings"

// RequireExtensionsMessage is reported for relative specifiers without a module extension.
const RequireExtensionsMessage = "Relative imports and exports must end with .js"

// RequireExtensions flags relative specifiers that lack a module-file extension.
type RequireExtensions struct{}

func (RequireExtensions) Name() string { return RequireExtensionsName }

func (RequireExtensions) Description() string {
	return "Relative imports and exports must end with a module file extension"
}

// Check fires when the bare path does not exist, or when a sibling file with
// the linted file's own extension exists and makes the specifier ambiguous.
// The fix always appends ".js", whatever the linted file's extension.
func (RequireExtensions) Check(ctx Context, stmt PathClause, candidate PathCandidate) *Violation {
	probe := ctx.probe()
	if probe.Exists(candidate.Resolved) && !probe.Exists(candidate.Resolved+ctx.FileExt()) {
		return nil
	}

	v := &Violation{
		Kind:      ExtensionViolation,
		Rule:      RequireExtensionsName,
		Message:   RequireExtensionsMessage,
		Statement: stmt,
	}
	// A query suffix would end up after ".js"; leave those to a human.
	if !strings.Contains(candidate.Raw, "?") {
		v.Fix = &Fix{
			Start: stmt.Source.Start,
			End:   stmt.Source.End,
			Text:  stmt.Source.Literal(AppendExtension(candidate.Raw)),
		}
	}
	return v
}
