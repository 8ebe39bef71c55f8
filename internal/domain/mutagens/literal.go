package mutagens

import (
	"go/ast"
	"go/token"

	"gooze.dev/pkg/faultline/internal/astpath"
)

var namePath = astpath.Path{astpath.Field("Name")}

func changeBoolean() Operator {
	return Operator{
		Type: ChangeBoolean,
		Condition: func(_ *Unit, n ast.Node, _ astpath.Path) bool {
			ident, ok := n.(*ast.Ident)
			return ok && ident.Obj == nil && (ident.Name == "true" || ident.Name == "false")
		},
		Sequence: NewSequence(
			SetField(namePath, func(current, _ any) any {
				if current.(string) == "true" {
					return "false"
				}

				return "true"
			}),
		),
	}
}

func changeString() Operator {
	return Operator{
		Type: ChangeString,
		Condition: func(u *Unit, n ast.Node, path astpath.Path) bool {
			lit, ok := n.(*ast.BasicLit)
			if !ok || lit.Kind != token.STRING {
				return false
			}

			_, prepared := u.Lookup(ChangeString, path)

			return prepared
		},
		Sequence: NewSequence(
			SetField(valuePath, func(_, variant any) any {
				return variant.(string)
			}),
		),
		Variants: stringVariants,
		Setup: scopedLiterals(ChangeString, func(lit *ast.BasicLit, path astpath.Path) bool {
			return lit.Kind == token.STRING && !structuralString(path)
		}),
	}
}

// structuralString reports import paths and struct tags, which are not values.
func structuralString(path astpath.Path) bool {
	last, ok := path.Last()
	if !ok {
		return false
	}

	return last.Field == "Path" || last.Field == "Tag"
}

// stringVariants proposes the distinct string literals seen earlier in the
// same scope, most recent first.
func stringVariants(u *Unit, n ast.Node, path astpath.Path) []any {
	lit := n.(*ast.BasicLit)

	stored, ok := u.Lookup(ChangeString, path)
	if !ok {
		return nil
	}

	seen := stored.([]*ast.BasicLit)
	used := map[string]bool{lit.Value: true}

	var out []any

	for i := len(seen) - 1; i >= 0; i-- {
		value := seen[i].Value
		if used[value] {
			continue
		}

		used[value] = true
		out = append(out, value)
	}

	return out
}
