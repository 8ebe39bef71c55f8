package mutagens

import (
	"go/ast"

	"gooze.dev/pkg/faultline/internal/astpath"
)

var (
	argsPath   = astpath.Path{astpath.Field("Args")}
	paramsPath = astpath.Path{astpath.Field("Params"), astpath.Field("List")}
)

func swapCallArgs() Operator {
	return Operator{
		Type: SwapCallArgs,
		Condition: func(_ *Unit, n ast.Node, _ astpath.Path) bool {
			call, ok := n.(*ast.CallExpr)
			return ok && len(call.Args) >= 2
		},
		Sequence: NewSequence(
			SetDerivedField(argsPath, argsPath, func(source, variant any) any {
				return swapAdjacent(source.([]ast.Expr), variant.(int))
			}),
		),
		Variants: func(_ *Unit, n ast.Node, _ astpath.Path) []any {
			call := n.(*ast.CallExpr)

			pairs := len(call.Args) - 1
			if call.Ellipsis.IsValid() {
				pairs--
			}

			return pairIndexes(pairs)
		},
	}
}

func swapParams() Operator {
	return Operator{
		Type: SwapParams,
		Condition: func(_ *Unit, n ast.Node, _ astpath.Path) bool {
			fn, ok := n.(*ast.FuncType)
			return ok && fn.Params != nil && len(fn.Params.List) >= 2
		},
		Sequence: NewSequence(
			SetDerivedField(paramsPath, paramsPath, func(source, variant any) any {
				return swapAdjacent(source.([]*ast.Field), variant.(int))
			}),
		),
		Variants: func(_ *Unit, n ast.Node, _ astpath.Path) []any {
			fields := n.(*ast.FuncType).Params.List

			pairs := len(fields) - 1
			if _, variadic := fields[len(fields)-1].Type.(*ast.Ellipsis); variadic {
				pairs--
			}

			return pairIndexes(pairs)
		},
	}
}

func pairIndexes(n int) []any {
	out := make([]any, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, i)
	}

	return out
}

// swapAdjacent returns a copy of items with positions i and i+1 exchanged.
func swapAdjacent[T any](items []T, i int) []T {
	out := make([]T, len(items))
	copy(out, items)
	out[i], out[i+1] = out[i+1], out[i]

	return out
}
