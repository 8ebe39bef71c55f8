package domain

import (
	"go/ast"
	"sort"

	"gooze.dev/pkg/faultline/internal/astpath"
	"gooze.dev/pkg/faultline/internal/domain/mutagens"
)

// Dependencies answers which locations of a file may be affected by writes
// to other locations.
type Dependencies struct {
	unit *mutagens.Unit
	// uses lists the identifier sites of every resolved object.
	uses map[*ast.Object][]astpath.Path
	// owner maps every node to its innermost enclosing function, nil at
	// package level.
	owner map[ast.Node]ast.Node
}

// NewDependencies indexes object uses and function ownership of unit.
func NewDependencies(unit *mutagens.Unit) *Dependencies {
	d := &Dependencies{
		unit:  unit,
		uses:  make(map[*ast.Object][]astpath.Path),
		owner: make(map[ast.Node]ast.Node),
	}

	var functions []ast.Node

	astpath.Traverse(unit.File, func(n ast.Node, path astpath.Path) bool {
		if len(functions) > 0 {
			d.owner[n] = functions[len(functions)-1]
		}

		if ident, ok := n.(*ast.Ident); ok && ident.Obj != nil {
			d.uses[ident.Obj] = append(d.uses[ident.Obj], path)
		}

		if isFunc(n) {
			functions = append(functions, n)
		}

		return true
	}, func(n ast.Node, _ astpath.Path) {
		if isFunc(n) {
			functions = functions[:len(functions)-1]
		}
	})

	return d
}

// DependencyPaths returns the locations plausibly affected by writes: every
// node under the statement enclosing each write, plus the declaration and
// other uses of the identifiers found there. Function literals are not
// entered and identifiers are only followed inside the enclosing function.
func (d *Dependencies) DependencyPaths(writes []astpath.Path) []astpath.Path {
	found := make(map[string]astpath.Path)
	add := func(p astpath.Path) {
		found[p.String()] = p
	}

	for _, w := range writes {
		rootPath, root := d.root(w)
		if root == nil {
			continue
		}

		fn := d.owner[root]

		astpath.Walk(root, func(n ast.Node, rel astpath.Path) bool {
			if isFunc(n) && n != root {
				return false
			}

			add(rootPath.Join(rel))

			if ident, ok := n.(*ast.Ident); ok && ident.Obj != nil {
				d.follow(ident.Obj, fn, add)
			}

			return true
		})
	}

	out := make([]astpath.Path, 0, len(found))
	for _, p := range found {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })

	return out
}

func (d *Dependencies) follow(obj *ast.Object, fn ast.Node, add func(astpath.Path)) {
	if decl, ok := obj.Decl.(ast.Node); ok {
		if p, known := d.unit.Nodes[decl]; known && d.owner[decl] == fn {
			add(p)
		}
	}

	for _, use := range d.uses[obj] {
		if n := d.unit.NodeAt(use); n != nil && d.owner[n] == fn {
			add(use)
		}
	}
}

// root finds the statement, spec or signature enclosing w.
func (d *Dependencies) root(w astpath.Path) (astpath.Path, ast.Node) {
	for _, p := range w.Ancestors() {
		switch n := d.unit.NodeAt(p).(type) {
		case *ast.BlockStmt:
		case ast.Stmt, ast.Spec, *ast.FuncType:
			return p, n
		}
	}

	if n := d.unit.NodeAt(w); n != nil {
		return w, n
	}

	return nil, nil
}

func isFunc(n ast.Node) bool {
	switch n.(type) {
	case *ast.FuncDecl, *ast.FuncLit:
		return true
	default:
		return false
	}
}
