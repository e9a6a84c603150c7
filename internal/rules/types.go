package rules

// Form identifies which kind of declaration a statement came from.
type Form int

const (
	FormImport Form = iota
	FormExportNamed
	FormExportAll
	FormDeclareExportNamed
	FormDeclareExportAll
)

// String returns the declaration name used in diagnostics and debug logs.
func (f Form) String() string {
	switch f {
	case FormImport:
		return "ImportDeclaration"
	case FormExportNamed:
		return "ExportNamedDeclaration"
	case FormExportAll:
		return "ExportAllDeclaration"
	case FormDeclareExportNamed:
		return "DeclareExportDeclaration"
	case FormDeclareExportAll:
		return "DeclareExportAllDeclaration"
	default:
		return "UnknownDeclaration"
	}
}

// Position is a 1-based line/column location in a source file.
type Position struct {
	Line   int
	Column int
}

// Statement is an import or export declaration handed to the rules by the
// traversal. It is either a PathClause or a NoPathClause.
type Statement interface {
	statement()
	StatementForm() Form
}

// PathClause is a statement that carries a module specifier, e.g.
// `import x from './x'` or `export * from './y'`.
type PathClause struct {
	Form   Form
	Source SourceToken
}

// NoPathClause is a statement without a `from` clause, e.g. `export const x = 1`.
type NoPathClause struct {
	Form Form
	Pos  Position
}

func (PathClause) statement()   {}
func (NoPathClause) statement() {}

func (s PathClause) StatementForm() Form   { return s.Form }
func (s NoPathClause) StatementForm() Form { return s.Form }

// SourceToken is the string literal holding a module specifier.
// Start and End are byte offsets of the whole literal, quotes included.
type SourceToken struct {
	Value string
	Quote byte
	Start int
	End   int
	Pos   Position
}

// Literal renders value as a string literal using the token's quote character.
func (t SourceToken) Literal(value string) string {
	q := t.Quote
	if q == 0 {
		q = '\''
	}
	return string(q) + value + string(q)
}

// PathCandidate is a relative specifier that survived filtering.
type PathCandidate struct {
	// Raw is the specifier exactly as written.
	Raw string
	// QueryFree is Raw with any `?...` suffix removed.
	QueryFree string
	// Resolved is QueryFree resolved against the linted file's directory.
	Resolved string
}

// Kind distinguishes the two violation types.
type Kind int

const (
	ExtensionViolation Kind = iota
	IndexViolation
)

func (k Kind) String() string {
	switch k {
	case ExtensionViolation:
		return "extension"
	case IndexViolation:
		return "index"
	default:
		return "unknown"
	}
}

// Fix replaces the bytes [Start, End) of the source with Text.
type Fix struct {
	Start int
	End   int
	Text  string
}

// Violation is a single rule failure for one statement.
// Fix is nil when the violation must be corrected by hand.
type Violation struct {
	Kind      Kind
	Rule      string
	Message   string
	Statement PathClause
	Fix       *Fix
}
