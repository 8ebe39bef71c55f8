package mutagens

import (
	"go/ast"
	"go/token"
	"math"
	"sort"
	"strconv"
	"strings"

	"gooze.dev/pkg/faultline/internal/astpath"
)

var valuePath = astpath.Path{astpath.Field("Value")}

func changeNumber() Operator {
	return Operator{
		Type: ChangeNumber,
		Condition: func(u *Unit, n ast.Node, path astpath.Path) bool {
			lit, ok := n.(*ast.BasicLit)
			if !ok || !isNumber(lit) {
				return false
			}

			_, prepared := u.Lookup(ChangeNumber, path)

			return prepared
		},
		Sequence: NewSequence(
			SetField(valuePath, func(_, variant any) any {
				return variant.(string)
			}),
		),
		Variants: numberVariants,
		Setup: scopedLiterals(ChangeNumber, func(lit *ast.BasicLit, _ astpath.Path) bool {
			return isNumber(lit)
		}),
	}
}

func isNumber(lit *ast.BasicLit) bool {
	return lit.Kind == token.INT || lit.Kind == token.FLOAT
}

// numberVariants proposes the values one step away and the same-kind
// literals seen earlier in scope, nearest first. The original value and
// values that make the surrounding operation an identity are skipped.
func numberVariants(u *Unit, n ast.Node, path astpath.Path) []any {
	lit := n.(*ast.BasicLit)

	value, ok := parseNumber(lit)
	if !ok {
		return nil
	}

	candidates := []float64{value - 1, value + 1}

	if stored, ok := u.Lookup(ChangeNumber, path); ok {
		for _, prev := range stored.([]*ast.BasicLit) {
			if prev.Kind != lit.Kind {
				continue
			}

			if v, ok := parseNumber(prev); ok {
				candidates = append(candidates, v)
			}
		}
	}

	neutral := neutralValues(u, path)
	seen := map[float64]bool{value: true}
	kept := make([]float64, 0, len(candidates))

	for _, c := range candidates {
		if seen[c] || neutral[c] || math.IsInf(c, 0) || math.IsNaN(c) {
			continue
		}

		seen[c] = true
		kept = append(kept, c)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		di, dj := math.Abs(kept[i]-value), math.Abs(kept[j]-value)
		if di != dj {
			return di < dj
		}

		return kept[i] < kept[j]
	})

	out := make([]any, 0, len(kept))
	for _, k := range kept {
		out = append(out, formatNumber(k, lit.Kind))
	}

	return out
}

func parseNumber(lit *ast.BasicLit) (float64, bool) {
	if lit.Kind == token.INT {
		v, err := strconv.ParseInt(lit.Value, 0, 64)
		if err != nil {
			return 0, false
		}

		return float64(v), true
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(lit.Value, "_", ""), 64)
	if err != nil {
		return 0, false
	}

	return v, true
}

func formatNumber(v float64, kind token.Token) string {
	if kind == token.INT {
		return strconv.FormatInt(int64(v), 10)
	}

	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}

	return s
}

// neutralValues returns the operand values that make the operation holding
// the literal at path an identity, or invalid.
func neutralValues(u *Unit, path astpath.Path) map[float64]bool {
	last, ok := path.Last()
	if !ok {
		return nil
	}

	parent, _ := u.Parent(path)

	var (
		op    token.Token
		right bool
	)

	switch p := parent.(type) {
	case *ast.BinaryExpr:
		op = p.Op
		right = last.Field == "Y"
	case *ast.AssignStmt:
		op = compoundOperator(p.Tok)
		right = true
	default:
		return nil
	}

	switch op {
	case token.ADD, token.OR, token.XOR:
		return map[float64]bool{0: true}
	case token.SUB, token.SHL, token.SHR, token.AND_NOT:
		if right {
			return map[float64]bool{0: true}
		}
	case token.MUL:
		return map[float64]bool{1: true}
	case token.QUO, token.REM:
		if right {
			return map[float64]bool{0: true, 1: true}
		}
	}

	return nil
}

func compoundOperator(tok token.Token) token.Token {
	switch tok {
	case token.ADD_ASSIGN:
		return token.ADD
	case token.SUB_ASSIGN:
		return token.SUB
	case token.MUL_ASSIGN:
		return token.MUL
	case token.QUO_ASSIGN:
		return token.QUO
	case token.REM_ASSIGN:
		return token.REM
	case token.AND_ASSIGN:
		return token.AND
	case token.OR_ASSIGN:
		return token.OR
	case token.XOR_ASSIGN:
		return token.XOR
	case token.SHL_ASSIGN:
		return token.SHL
	case token.SHR_ASSIGN:
		return token.SHR
	case token.AND_NOT_ASSIGN:
		return token.AND_NOT
	default:
		return token.ILLEGAL
	}
}
