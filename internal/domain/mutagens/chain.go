package mutagens

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"
)

// AccessKind tags one step of an access chain.
type AccessKind int

// Access kinds.
const (
	AccessUnknown AccessKind = iota
	AccessName
	AccessMember
	AccessCall
	AccessConstructor
	AccessLiteral
)

func (k AccessKind) String() string {
	switch k {
	case AccessName:
		return "name"
	case AccessMember:
		return "member"
	case AccessCall:
		return "call"
	case AccessConstructor:
		return "constructor"
	case AccessLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// Access is one step of the chain of selectors, calls and index expressions
// an identifier takes part in.
type Access struct {
	Kind    AccessKind
	Name    string
	Arity   int
	Literal token.Token

	// Ident is the identifier that produced this step, when there is one.
	// It is not part of the comparison.
	Ident *ast.Ident
}

// Equal compares two steps ignoring their identifiers.
func (a Access) Equal(b Access) bool {
	return a.Kind == b.Kind && a.Name == b.Name && a.Arity == b.Arity && a.Literal == b.Literal
}

func (a Access) String() string {
	switch a.Kind {
	case AccessName:
		return a.Name
	case AccessMember:
		return "." + a.Name
	case AccessCall:
		return fmt.Sprintf("%s/%d()", a.Name, a.Arity)
	case AccessConstructor:
		return fmt.Sprintf("%s/%d{}", a.Name, a.Arity)
	case AccessLiteral:
		return "[" + a.Literal.String() + "]"
	default:
		return "?"
	}
}

// Chain is an access chain, innermost operand first.
type Chain []Access

func (c Chain) String() string {
	parts := make([]string, len(c))
	for i, a := range c {
		parts[i] = a.String()
	}

	return strings.Join(parts, " ")
}

// Slot returns the position in c produced by ident.
func (c Chain) Slot(ident *ast.Ident) int {
	for i, a := range c {
		if a.Ident == ident {
			return i
		}
	}

	return -1
}

// MatchChains decides whether candidate can lend a replacement for the step
// at index of original. The chains must differ in exactly one contiguous
// region which starts at index, covers a single step of candidate and at most
// one step of original; the replaced step must keep its kind and arity.
func MatchChains(original, candidate Chain, index int) (Access, bool) {
	prefix := 0
	for prefix < len(original) && prefix < len(candidate) && original[prefix].Equal(candidate[prefix]) {
		prefix++
	}

	if prefix != index || index >= len(original) {
		return Access{}, false
	}

	suffix := 0
	for suffix < len(original)-prefix && suffix < len(candidate)-prefix &&
		original[len(original)-1-suffix].Equal(candidate[len(candidate)-1-suffix]) {
		suffix++
	}

	candidateRegion := candidate[prefix : len(candidate)-suffix]
	originalRegion := original[prefix : len(original)-suffix]

	if len(candidateRegion) != 1 || len(originalRegion) > 1 {
		return Access{}, false
	}

	proposal := candidateRegion[0]
	if !sameShape(original[index], proposal) {
		return Access{}, false
	}

	return proposal, true
}

func sameShape(a, b Access) bool {
	return a.Kind == b.Kind && a.Arity == b.Arity
}

// outermostAccess climbs from ident through the selector, call and index
// expressions it is the operand of. ancestors lists the enclosing nodes,
// nearest last.
func outermostAccess(ident *ast.Ident, ancestors []ast.Node) ast.Expr {
	var cur ast.Expr = ident

	for i := len(ancestors) - 1; i >= 0; i-- {
		switch parent := ancestors[i].(type) {
		case *ast.SelectorExpr:
			if parent.X != cur && parent.Sel != cur {
				return cur
			}
		case *ast.CallExpr:
			if parent.Fun != cur {
				return cur
			}
		case *ast.IndexExpr:
			if parent.X != cur {
				return cur
			}
		default:
			return cur
		}

		cur = ancestors[i].(ast.Expr)
	}

	return cur
}

// BuildChain computes the access chain of an expression.
func BuildChain(e ast.Expr) Chain {
	switch x := e.(type) {
	case *ast.Ident:
		return Chain{{Kind: AccessName, Name: x.Name, Ident: x}}
	case *ast.SelectorExpr:
		return append(BuildChain(x.X), Access{Kind: AccessMember, Name: x.Sel.Name, Ident: x.Sel})
	case *ast.CallExpr:
		switch fun := x.Fun.(type) {
		case *ast.Ident:
			return Chain{{Kind: AccessCall, Name: fun.Name, Arity: len(x.Args), Ident: fun}}
		case *ast.SelectorExpr:
			return append(BuildChain(fun.X), Access{Kind: AccessCall, Name: fun.Sel.Name, Arity: len(x.Args), Ident: fun.Sel})
		default:
			return append(BuildChain(x.Fun), Access{Kind: AccessCall, Arity: len(x.Args)})
		}
	case *ast.CompositeLit:
		return Chain{{Kind: AccessConstructor, Name: typeName(x.Type), Arity: len(x.Elts)}}
	case *ast.IndexExpr:
		if lit, ok := x.Index.(*ast.BasicLit); ok {
			return append(BuildChain(x.X), Access{Kind: AccessLiteral, Literal: lit.Kind})
		}

		return append(BuildChain(x.X), Access{Kind: AccessUnknown})
	case *ast.ParenExpr:
		return BuildChain(x.X)
	default:
		return Chain{{Kind: AccessUnknown}}
	}
}

func typeName(e ast.Expr) string {
	switch t := e.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.StarExpr:
		return typeName(t.X)
	case *ast.IndexExpr:
		return typeName(t.X)
	default:
		return ""
	}
}
