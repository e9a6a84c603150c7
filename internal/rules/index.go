package rules

import "path/filepath"

// RequireIndexMessage is reported for relative specifiers that point at a directory.
const RequireIndexMessage = "Directory paths must end with index.js"

// RequireIndex flags relative specifiers that resolve to a directory.
type RequireIndex struct{}

func (RequireIndex) Name() string { return RequireIndexName }

func (RequireIndex) Description() string {
	return "Directory imports and exports must name their index.js entry file"
}

// Check stands down when a file named like the directory plus the linted
// file's extension sits next to it; RequireExtensions covers that case.
func (RequireIndex) Check(ctx Context, stmt PathClause, candidate PathCandidate) *Violation {
	probe := ctx.probe()
	path := candidate.Resolved
	conflicting := filepath.Join(filepath.Dir(path), filepath.Base(path)+ctx.FileExt())

	if !probe.Exists(path) || !probe.IsDirectory(path) || probe.Exists(conflicting) {
		return nil
	}

	return &Violation{
		Kind:      IndexViolation,
		Rule:      RequireIndexName,
		Message:   RequireIndexMessage,
		Statement: stmt,
		Fix: &Fix{
			Start: stmt.Source.Start,
			End:   stmt.Source.End,
			Text:  stmt.Source.Literal(AppendIndex(candidate.Raw)),
		},
	}
}
