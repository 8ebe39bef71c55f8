package mutagens

import (
	"go/ast"
	"go/token"
	"go/types"
	"strconv"
	"strings"

	"gooze.dev/pkg/faultline/internal/astpath"
)

// reference is an identifier use recorded during setup.
type reference struct {
	ident *ast.Ident
	chain Chain
	slot  int
	// decl is the declaration statement enclosing the use, if any.
	decl  ast.Node
	scope *referenceScope
}

// referenceScope gathers the access chains of one function, or of the
// package level declarations of a file.
type referenceScope struct {
	chains []Chain
	tops   map[ast.Expr]bool
	refs   map[*ast.Ident]*reference
}

func newReferenceScope() *referenceScope {
	return &referenceScope{
		tops: make(map[ast.Expr]bool),
		refs: make(map[*ast.Ident]*reference),
	}
}

func changeIdentifier() Operator {
	return Operator{
		Type: ChangeIdentifier,
		Condition: func(u *Unit, n ast.Node, path astpath.Path) bool {
			if _, ok := n.(*ast.Ident); !ok {
				return false
			}

			_, prepared := u.Lookup(ChangeIdentifier, path)

			return prepared
		},
		Sequence: NewSequence(
			SetField(namePath, func(_, variant any) any {
				return variant.(string)
			}),
		),
		Variants: identifierVariants,
		Setup:    collectReferences,
	}
}

// collectReferences records the access chain of every identifier use.
func collectReferences(u *Unit) Visitor {
	imports := importNames(u.File)
	scopes := []*referenceScope{newReferenceScope()}

	var (
		ancestors []ast.Node
		keys      []astpath.Path
		typeDepth int
	)

	return Visitor{
		Enter: func(n ast.Node, path astpath.Path) {
			if isFunction(n) {
				scopes = append(scopes, newReferenceScope())
			}

			if opensTypeExpr(n, path) {
				typeDepth++
			}

			if ident, ok := n.(*ast.Ident); ok && typeDepth == 0 && len(ancestors) > 0 {
				parent := ancestors[len(ancestors)-1]
				if isReference(ident, parent, path, keys[len(keys)-1], imports) {
					scope := scopes[len(scopes)-1]
					top := outermostAccess(ident, ancestors)
					chain := BuildChain(top)

					if !scope.tops[top] {
						scope.tops[top] = true
						scope.chains = append(scope.chains, chain)
					}

					ref := &reference{
						ident: ident,
						chain: chain,
						slot:  chain.Slot(ident),
						decl:  enclosingDeclaration(ancestors),
						scope: scope,
					}
					scope.refs[ident] = ref
					u.Store(ChangeIdentifier, path, ref)
				}
			}

			ancestors = append(ancestors, n)
			keys = append(keys, path)
		},
		Exit: func(n ast.Node, path astpath.Path) {
			ancestors = ancestors[:len(ancestors)-1]
			keys = keys[:len(keys)-1]

			if opensTypeExpr(n, path) {
				typeDepth--
			}

			if isFunction(n) && len(scopes) > 1 {
				scopes = scopes[:len(scopes)-1]
			}
		},
	}
}

// identifierVariants proposes names taken from other chains of the same
// scope that diverge from this use only at its own slot.
func identifierVariants(u *Unit, n ast.Node, path astpath.Path) []any {
	stored, ok := u.Lookup(ChangeIdentifier, path)
	if !ok {
		return nil
	}

	ref := stored.(*reference)
	if ref.slot < 0 {
		return nil
	}

	used := map[string]bool{ref.ident.Name: true}

	var out []any

	for _, candidate := range ref.scope.chains {
		proposal, ok := MatchChains(ref.chain, candidate, ref.slot)
		if !ok || proposal.Ident == nil || used[proposal.Name] {
			continue
		}

		other, known := ref.scope.refs[proposal.Ident]
		if !known || !reachable(u, ref, other) {
			continue
		}

		used[proposal.Name] = true
		out = append(out, proposal.Name)
	}

	return out
}

// reachable reports whether other can stand in for ref without leaving the
// scope ref is in.
func reachable(u *Unit, ref, other *reference) bool {
	obj := other.ident.Obj
	if obj == nil {
		return true
	}

	decl, ok := obj.Decl.(ast.Node)
	if !ok {
		return true
	}

	if ref.decl != nil && (decl == ref.decl || declaredBy(ref.decl, decl)) {
		return false
	}

	if ref.slot > 0 {
		return true
	}

	declPath, ok := u.Nodes[decl]
	if !ok {
		return true
	}

	if len(declPath) < 2 {
		return true
	}

	if top := u.NodeAt(declPath[:2]); top == decl {
		return true
	} else if _, ok := top.(*ast.GenDecl); ok {
		return true
	}

	if decl.Pos() >= ref.ident.Pos() {
		return false
	}

	for _, ancestor := range declPath.Parent().Ancestors() {
		scope := u.NodeAt(ancestor)
		if !opensScope(scope) {
			continue
		}

		return scope.Pos() <= ref.ident.Pos() && ref.ident.End() <= scope.End()
	}

	return true
}

// declaredBy reports whether decl is part of the declaration statement stmt.
func declaredBy(stmt, decl ast.Node) bool {
	gen, ok := stmt.(*ast.GenDecl)
	if !ok {
		return false
	}

	for _, spec := range gen.Specs {
		if spec == decl {
			return true
		}
	}

	return false
}

func opensScope(n ast.Node) bool {
	switch n.(type) {
	case *ast.BlockStmt, *ast.FuncDecl, *ast.FuncLit, *ast.IfStmt, *ast.ForStmt, *ast.RangeStmt,
		*ast.SwitchStmt, *ast.TypeSwitchStmt, *ast.CaseClause, *ast.CommClause:
		return true
	default:
		return false
	}
}

func enclosingDeclaration(ancestors []ast.Node) ast.Node {
	for i := len(ancestors) - 1; i >= 0; i-- {
		switch n := ancestors[i].(type) {
		case *ast.AssignStmt:
			if n.Tok == token.DEFINE {
				return n
			}

			return nil
		case *ast.GenDecl, *ast.RangeStmt:
			return n
		case ast.Stmt, *ast.FuncDecl, *ast.FuncLit:
			return nil
		}
	}

	return nil
}

// opensTypeExpr reports nodes whose subtree is a type expression.
func opensTypeExpr(n ast.Node, path astpath.Path) bool {
	switch n.(type) {
	case *ast.ArrayType, *ast.MapType, *ast.ChanType, *ast.FuncType, *ast.StructType, *ast.InterfaceType:
		return true
	}

	last, ok := path.Last()

	return ok && last.Field == "Type"
}

// isReference accepts identifier uses that may be renamed: declarations,
// labels, field keys, package qualifiers, blanks and predeclared names are
// rejected.
func isReference(ident *ast.Ident, parent ast.Node, path, parentPath astpath.Path, imports map[string]bool) bool {
	switch ident.Name {
	case "_", "true", "false", "nil", "iota":
		return false
	}

	if ident.Obj == nil && types.Universe.Lookup(ident.Name) != nil {
		return false
	}

	if ident.Obj != nil && ident.Obj.Kind != ast.Var && ident.Obj.Kind != ast.Con && ident.Obj.Kind != ast.Fun {
		return false
	}

	field := slotField(path, parentPath)

	switch p := parent.(type) {
	case *ast.File, *ast.FuncDecl, *ast.TypeSpec, *ast.ImportSpec, *ast.LabeledStmt, *ast.BranchStmt:
		return false
	case *ast.Field, *ast.ValueSpec:
		return field != "Names"
	case *ast.KeyValueExpr:
		return field != "Key"
	case *ast.AssignStmt:
		return p.Tok != token.DEFINE || field != "Lhs"
	case *ast.RangeStmt:
		return p.Tok != token.DEFINE || (field != "Key" && field != "Value")
	case *ast.SelectorExpr:
		return field != "X" || ident.Obj != nil || !imports[ident.Name]
	}

	return true
}

// slotField returns the field of the parent at parentPath holding path.
func slotField(path, parentPath astpath.Path) string {
	if len(path) <= len(parentPath) {
		return ""
	}

	return path[len(parentPath)].Field
}

// importNames returns the names the file's imports are referred to by.
func importNames(f *ast.File) map[string]bool {
	out := make(map[string]bool)

	for _, spec := range f.Imports {
		if spec.Name != nil {
			out[spec.Name.Name] = true
			continue
		}

		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		parts := strings.Split(p, "/")
		name := parts[len(parts)-1]

		if isMajorVersion(name) && len(parts) > 1 {
			name = parts[len(parts)-2]
		}

		if i := strings.Index(name, "."); i > 0 {
			name = name[:i]
		}

		out[name] = true
		out[strings.ReplaceAll(strings.TrimPrefix(name, "go-"), "-", "_")] = true
	}

	return out
}

func isMajorVersion(s string) bool {
	return len(s) > 1 && s[0] == 'v' && strings.Trim(s[1:], "0123456789") == ""
}
