package mutagens

import (
	"go/ast"

	"gooze.dev/pkg/faultline/internal/astpath"
)

// literalScopes tracks the literals seen so far in each enclosing function.
// The file itself is the outermost scope.
type literalScopes struct {
	stack [][]*ast.BasicLit
}

func newLiteralScopes() *literalScopes {
	return &literalScopes{stack: [][]*ast.BasicLit{nil}}
}

func (s *literalScopes) enter(n ast.Node) {
	if isFunction(n) {
		s.stack = append(s.stack, nil)
	}
}

func (s *literalScopes) exit(n ast.Node) {
	if isFunction(n) && len(s.stack) > 1 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

// seen returns a copy of the literals recorded in the current scope.
func (s *literalScopes) seen() []*ast.BasicLit {
	top := s.stack[len(s.stack)-1]
	out := make([]*ast.BasicLit, len(top))
	copy(out, top)

	return out
}

func (s *literalScopes) add(lit *ast.BasicLit) {
	s.stack[len(s.stack)-1] = append(s.stack[len(s.stack)-1], lit)
}

// scopedLiterals returns a setup that stores, for every literal accepted by
// keep, the literals accepted by keep seen before it in the same scope.
func scopedLiterals(t Type, keep func(lit *ast.BasicLit, path astpath.Path) bool) func(u *Unit) Visitor {
	return func(u *Unit) Visitor {
		scopes := newLiteralScopes()

		return Visitor{
			Enter: func(n ast.Node, path astpath.Path) {
				scopes.enter(n)

				lit, ok := n.(*ast.BasicLit)
				if !ok || !keep(lit, path) {
					return
				}

				u.Store(t, path, scopes.seen())
				scopes.add(lit)
			},
			Exit: func(n ast.Node, _ astpath.Path) {
				scopes.exit(n)
			},
		}
	}
}

func isFunction(n ast.Node) bool {
	switch n.(type) {
	case *ast.FuncDecl, *ast.FuncLit:
		return true
	default:
		return false
	}
}
