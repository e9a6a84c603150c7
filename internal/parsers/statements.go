package parsers

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/mvp-joe/reqext/internal/rules"
)

// ErrParse indicates tree-sitter could not produce a tree for a file.
var ErrParse = errors.New("parse failed")

// ErrUnsupported indicates the file extension has no grammar.
var ErrUnsupported = errors.New("unsupported file type")

// Grammar names the tree-sitter grammar used for a file.
type Grammar string

const (
	GrammarTypeScript Grammar = "typescript"
	GrammarTSX        Grammar = "tsx"
)

// GrammarFor picks the grammar for filename. Plain JavaScript goes through the
// TSX grammar so JSX in .js files parses.
func GrammarFor(filename string) (Grammar, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ts", ".mts", ".cts":
		return GrammarTypeScript, true
	case ".tsx", ".js", ".jsx", ".mjs", ".cjs":
		return GrammarTSX, true
	default:
		return "", false
	}
}

// SupportedExtensions lists every extension GrammarFor accepts.
func SupportedExtensions() []string {
	return []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts"}
}

// StatementParser extracts import and export statements from JS/TS sources.
// It is safe for concurrent use; each Parse call creates its own tree-sitter parser.
type StatementParser struct {
	languages map[Grammar]*sitter.Language
}

// NewStatementParser creates a parser with the TypeScript and TSX grammars loaded.
func NewStatementParser() *StatementParser {
	return &StatementParser{
		languages: map[Grammar]*sitter.Language{
			GrammarTypeScript: sitter.NewLanguage(typescript.LanguageTypescript()),
			GrammarTSX:        sitter.NewLanguage(typescript.LanguageTSX()),
		},
	}
}

// Parse returns the import/export statements of source in document order.
// Statements inside syntax errors are still returned when tree-sitter
// recovers them.
func (p *StatementParser) Parse(ctx context.Context, filename string, source []byte) ([]rules.Statement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	grammar, ok := GrammarFor(filename)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filename)
	}

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(p.languages[grammar]); err != nil {
		return nil, fmt.Errorf("failed to set %s language: %w", grammar, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, filename)
	}
	defer tree.Close()

	var statements []rules.Statement
	walkTree(tree.RootNode(), func(n *sitter.Node) bool {
		switch n.Kind() {
		case "import_statement":
			statements = append(statements, importStatement(n, source))
			return false
		case "export_statement":
			stmt := exportStatement(n, source)
			statements = append(statements, stmt)
			// Exports without a source may wrap namespaces holding more exports.
			_, hasPath := stmt.(rules.PathClause)
			return !hasPath
		}
		return true
	})

	return statements, nil
}

func importStatement(n *sitter.Node, source []byte) rules.Statement {
	// import x = require('./y') has no source field on the statement itself.
	if token, ok := sourceToken(n.ChildByFieldName("source"), source); ok {
		return rules.PathClause{Form: rules.FormImport, Source: token}
	}
	return rules.NoPathClause{Form: rules.FormImport, Pos: position(n)}
}

func exportStatement(n *sitter.Node, source []byte) rules.Statement {
	// `export * as ns from` nests the star inside namespace_export.
	exportAll := findChildByType(n, "*") != nil || findChildByType(n, "namespace_export") != nil
	declared := hasAncestor(n, "ambient_declaration")

	var form rules.Form
	switch {
	case exportAll && declared:
		form = rules.FormDeclareExportAll
	case exportAll:
		form = rules.FormExportAll
	case declared:
		form = rules.FormDeclareExportNamed
	default:
		form = rules.FormExportNamed
	}

	if token, ok := sourceToken(n.ChildByFieldName("source"), source); ok {
		return rules.PathClause{Form: form, Source: token}
	}
	return rules.NoPathClause{Form: form, Pos: position(n)}
}

// sourceToken reads a quoted string node. Escape sequences are kept as written.
func sourceToken(node *sitter.Node, source []byte) (rules.SourceToken, bool) {
	text := extractNodeText(node, source)
	if len(text) < 2 {
		return rules.SourceToken{}, false
	}
	quote := text[0]
	if (quote != '\'' && quote != '"') || text[len(text)-1] != quote {
		return rules.SourceToken{}, false
	}

	return rules.SourceToken{
		Value: text[1 : len(text)-1],
		Quote: quote,
		Start: int(node.StartByte()),
		End:   int(node.EndByte()),
		Pos:   position(node),
	}, true
}

func position(n *sitter.Node) rules.Position {
	p := n.StartPosition()
	return rules.Position{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}
