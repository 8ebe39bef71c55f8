package mutagens

import (
	"go/ast"
	"go/token"

	"gooze.dev/pkg/faultline/internal/astpath"
)

func deleteStatement() Operator {
	return Operator{
		Type:      DeleteStatement,
		Condition: deletable,
		Sequence:  NewSequence(RemoveNode(astpath.Path{})),
	}
}

// deletable accepts statements without control flow that sit directly in a
// block or case body.
func deletable(u *Unit, n ast.Node, path astpath.Path) bool {
	switch stmt := n.(type) {
	case *ast.ExprStmt, *ast.IncDecStmt, *ast.SendStmt, *ast.GoStmt, *ast.DeferStmt:
	case *ast.AssignStmt:
		if stmt.Tok == token.DEFINE {
			return false
		}
	default:
		return false
	}

	if len(path) < 2 || !path[len(path)-1].IsIndex() {
		return false
	}

	holder := path[len(path)-2]

	switch u.NodeAt(path[:len(path)-2]).(type) {
	case *ast.BlockStmt:
		return holder.Field == "List"
	case *ast.CaseClause, *ast.CommClause:
		return holder.Field == "Body"
	default:
		return false
	}
}
