package mutagens

import (
	"go/ast"

	"gooze.dev/pkg/faultline/internal/astpath"
)

func forceConsequent() Operator {
	return forceBranch(ForceConsequent, "true")
}

func forceAlternate() Operator {
	return forceBranch(ForceAlternate, "false")
}

// forceBranch replaces an if condition with a constant.
func forceBranch(t Type, constant string) Operator {
	return Operator{
		Type: t,
		Condition: func(_ *Unit, n ast.Node, _ astpath.Path) bool {
			stmt, ok := n.(*ast.IfStmt)
			if !ok {
				return false
			}

			return !isConstant(stmt.Cond, constant)
		},
		Sequence: NewSequence(
			SetField(astpath.Path{astpath.Field("Cond")}, func(_, _ any) any {
				return ast.NewIdent(constant)
			}),
		),
	}
}

func isConstant(e ast.Expr, name string) bool {
	for {
		paren, ok := e.(*ast.ParenExpr)
		if !ok {
			break
		}

		e = paren.X
	}

	ident, ok := e.(*ast.Ident)

	return ok && ident.Name == name && ident.Obj == nil
}
