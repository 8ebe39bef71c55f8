package adapter

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"strings"

	m "gooze.dev/pkg/faultline/internal/model"
)

// GoFileAdapter encapsulates Go-specific parsing and printing so the domain
// layer can focus on mutation rules while delegating compilation details to
// an infrastructure component.
type GoFileAdapter interface {
	// Parse builds an AST using the provided file set and source bytes.
	// Object resolution stays enabled; the mutation operators rely on it.
	Parse(fileSet *token.FileSet, filename string, src []byte) (*ast.File, error)

	// Print renders a (possibly mutated) AST back to source.
	Print(fileSet *token.FileSet, file *ast.File) ([]byte, error)

	// TestFunctions returns the names of the top-level Test functions.
	TestFunctions(file *ast.File) []string

	// Statements returns the spans of the statements the cover tool counts.
	Statements(fileSet *token.FileSet, file *ast.File) []m.Span

	// Functions returns the spans of function declarations and literals.
	Functions(fileSet *token.FileSet, file *ast.File) []m.Span
}

// LocalGoFileAdapter provides a concrete GoFileAdapter backed by go/parser.
type LocalGoFileAdapter struct {
	mode parser.Mode
}

// NewLocalGoFileAdapter constructs a LocalGoFileAdapter. Comments are kept
// when comments is true so printed mutants stay close to the original.
func NewLocalGoFileAdapter(comments bool) *LocalGoFileAdapter {
	mode := parser.Mode(0)
	if comments {
		mode = parser.ParseComments
	}

	return &LocalGoFileAdapter{mode: mode}
}

// Parse builds an AST for the provided filename/source pair.
func (a *LocalGoFileAdapter) Parse(fileSet *token.FileSet, filename string, src []byte) (*ast.File, error) {
	return parser.ParseFile(fileSet, filename, src, a.mode)
}

// Print formats file with the gofmt printer configuration.
func (a *LocalGoFileAdapter) Print(fileSet *token.FileSet, file *ast.File) ([]byte, error) {
	var buf bytes.Buffer

	cfg := printer.Config{Mode: printer.UseSpaces | printer.TabIndent, Tabwidth: 8}
	if err := cfg.Fprint(&buf, fileSet, file); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// TestFunctions lists func TestXxx(t *testing.T) declarations.
func (a *LocalGoFileAdapter) TestFunctions(file *ast.File) []string {
	var names []string

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil || !isTestName(fn.Name.Name) {
			continue
		}

		if fn.Type.Params == nil || len(fn.Type.Params.List) != 1 {
			continue
		}

		names = append(names, fn.Name.Name)
	}

	return names
}

// Statements walks file and returns every statement span except blocks,
// case clauses and empty statements, which the cover tool never counts.
func (a *LocalGoFileAdapter) Statements(fileSet *token.FileSet, file *ast.File) []m.Span {
	var spans []m.Span

	ast.Inspect(file, func(n ast.Node) bool {
		stmt, ok := n.(ast.Stmt)
		if !ok {
			return true
		}

		switch stmt.(type) {
		case *ast.BlockStmt, *ast.CaseClause, *ast.CommClause, *ast.EmptyStmt:
			return true
		}

		spans = append(spans, spanOf(fileSet, stmt))

		return true
	})

	return spans
}

// Functions implements GoFileAdapter.
func (a *LocalGoFileAdapter) Functions(fileSet *token.FileSet, file *ast.File) []m.Span {
	var spans []m.Span

	ast.Inspect(file, func(n ast.Node) bool {
		switch fn := n.(type) {
		case *ast.FuncDecl:
			if fn.Body != nil {
				spans = append(spans, spanOf(fileSet, fn))
			}
		case *ast.FuncLit:
			spans = append(spans, spanOf(fileSet, fn))
		}

		return true
	})

	return spans
}

func spanOf(fileSet *token.FileSet, n ast.Node) m.Span {
	start := fileSet.Position(n.Pos())
	end := fileSet.Position(n.End())

	return m.Span{
		Start: m.Position{Line: start.Line, Column: start.Column},
		End:   m.Position{Line: end.Line, Column: end.Column},
	}
}

func isTestName(name string) bool {
	rest, ok := strings.CutPrefix(name, "Test")
	if !ok {
		return false
	}

	if rest == "" {
		return true
	}

	first := rest[0]

	return first < 'a' || first > 'z'
}
