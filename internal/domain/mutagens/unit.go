package mutagens

import (
	"go/ast"
	"go/token"

	"gooze.dev/pkg/faultline/internal/astpath"
	m "gooze.dev/pkg/faultline/internal/model"
)

// Unit is a parsed source file together with the side tables the operators
// compute during setup.
type Unit struct {
	Path  m.Path
	Fset  *token.FileSet
	File  *ast.File
	Nodes map[ast.Node]astpath.Path

	paths map[string]ast.Node
	side  map[Type]map[string]any
}

// NewUnit indexes file for operator setup and instruction generation.
func NewUnit(path m.Path, fset *token.FileSet, file *ast.File) *Unit {
	u := &Unit{
		Path:  path,
		Fset:  fset,
		File:  file,
		Nodes: astpath.IndexNodes(file),
		paths: make(map[string]ast.Node),
		side:  make(map[Type]map[string]any),
	}

	for n, p := range u.Nodes {
		u.paths[p.String()] = n
	}

	return u
}

// NodeAt returns the node addressed by path, or nil.
func (u *Unit) NodeAt(path astpath.Path) ast.Node {
	return u.paths[path.String()]
}

// Parent returns the nearest ancestor node of path and its address.
func (u *Unit) Parent(path astpath.Path) (ast.Node, astpath.Path) {
	if len(path) == 0 {
		return nil, nil
	}

	for _, candidate := range path.Parent().Ancestors() {
		if n := u.NodeAt(candidate); n != nil {
			return n, candidate
		}
	}

	return nil, nil
}

// Store records precomputed data for a node in the operator's side table.
func (u *Unit) Store(t Type, path astpath.Path, value any) {
	table, ok := u.side[t]
	if !ok {
		table = make(map[string]any)
		u.side[t] = table
	}

	table[path.String()] = value
}

// Lookup reads precomputed data stored by Store.
func (u *Unit) Lookup(t Type, path astpath.Path) (any, bool) {
	value, ok := u.side[t][path.String()]
	return value, ok
}

// Span returns the source span of n.
func (u *Unit) Span(n ast.Node) m.Span {
	start := u.Fset.Position(n.Pos())
	end := u.Fset.Position(n.End())

	return m.Span{
		Start: m.Position{Line: start.Line, Column: start.Column},
		End:   m.Position{Line: end.Line, Column: end.Column},
	}
}
