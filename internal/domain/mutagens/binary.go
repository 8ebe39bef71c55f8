package mutagens

import (
	"go/ast"
	"go/token"

	"gooze.dev/pkg/faultline/internal/astpath"
)

var (
	opPath  = astpath.Path{astpath.Field("Op")}
	tokPath = astpath.Path{astpath.Field("Tok")}
	xPath   = astpath.Path{astpath.Field("X")}
	yPath   = astpath.Path{astpath.Field("Y")}
)

// BinaryGraphs returns the category graphs for binary operators, searched in
// order.
func BinaryGraphs() []Graph {
	return []Graph{
		Group{
			Group{Leaves(">", "<="), Leaves("<", ">=")},
			Leaves("==", "!="),
		},
		Group{
			Group{Leaves("+", "-"), Leaves("*", "/")},
			Leaf("%"),
		},
		Group{
			Group{Leaves("&", "|"), Leaves("^", "&^")},
			Leaves("<<", ">>"),
		},
		Leaves("&&", "||"),
	}
}

// AssignmentGraphs returns the category graph for assignment operators.
func AssignmentGraphs() []Graph {
	return []Graph{
		Group{
			Group{Leaves("+=", "-="), Leaves("*=", "/=")},
			Leaf("%="),
			Group{Leaves("&=", "|="), Leaves("^=", "&^=")},
			Leaves("<<=", ">>="),
			Leaf("="),
		},
	}
}

// operatorTokens maps operator spellings back to tokens.
func operatorTokens() map[string]token.Token {
	out := make(map[string]token.Token)

	for tok := token.ILLEGAL; tok <= token.TILDE; tok++ {
		if tok.IsOperator() {
			out[tok.String()] = tok
		}
	}

	return out
}

// replacements flattens the first graph containing tok into tokens.
func replacements(graphs []Graph, tokens map[string]token.Token, tok token.Token) []any {
	for _, g := range graphs {
		if !Contains(g, tok.String()) {
			continue
		}

		var out []any

		for _, s := range Flatten(g, tok.String()) {
			if t, ok := tokens[s]; ok {
				out = append(out, t)
			}
		}

		return out
	}

	return nil
}

func changeBinaryOperator() Operator {
	graphs := BinaryGraphs()
	tokens := operatorTokens()

	return Operator{
		Type: ChangeBinaryOperator,
		Condition: func(_ *Unit, n ast.Node, _ astpath.Path) bool {
			_, ok := n.(*ast.BinaryExpr)
			return ok
		},
		Sequence: NewSequence(
			SetField(opPath, func(_, variant any) any {
				return variant.(token.Token)
			}),
		),
		Variants: func(_ *Unit, n ast.Node, _ astpath.Path) []any {
			return replacements(graphs, tokens, n.(*ast.BinaryExpr).Op)
		},
	}
}

func changeAssignmentOperator() Operator {
	graphs := AssignmentGraphs()
	tokens := operatorTokens()

	return Operator{
		Type: ChangeAssignmentOperator,
		Condition: func(_ *Unit, n ast.Node, _ astpath.Path) bool {
			stmt, ok := n.(*ast.AssignStmt)
			if !ok || stmt.Tok == token.DEFINE || len(stmt.Lhs) != 1 || len(stmt.Rhs) != 1 {
				return false
			}

			if ident, ok := stmt.Lhs[0].(*ast.Ident); ok && ident.Name == "_" {
				return false
			}

			return true
		},
		Sequence: NewSequence(
			SetField(tokPath, func(_, variant any) any {
				return variant.(token.Token)
			}),
		),
		Variants: func(_ *Unit, n ast.Node, _ astpath.Path) []any {
			return replacements(graphs, tokens, n.(*ast.AssignStmt).Tok)
		},
	}
}

// nullifiable operators keep their operand type, so either side can stand in
// for the whole expression.
func nullifiable(n ast.Node) bool {
	expr, ok := n.(*ast.BinaryExpr)
	if !ok {
		return false
	}

	switch expr.Op {
	case token.ADD, token.SUB, token.MUL, token.QUO, token.REM,
		token.AND, token.OR, token.XOR, token.AND_NOT,
		token.LAND, token.LOR:
		return true
	default:
		return false
	}
}

func nullifyLeft() Operator {
	return nullify(NullifyLeft, yPath)
}

func nullifyRight() Operator {
	return nullify(NullifyRight, xPath)
}

// nullify replaces a binary expression with the operand at keep.
func nullify(t Type, keep astpath.Path) Operator {
	return Operator{
		Type: t,
		Condition: func(_ *Unit, n ast.Node, _ astpath.Path) bool {
			return nullifiable(n)
		},
		Sequence: NewSequence(
			SetDerivedField(astpath.Path{}, keep, func(source, _ any) any {
				return source
			}),
		),
	}
}
