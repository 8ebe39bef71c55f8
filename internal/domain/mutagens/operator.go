package mutagens

import (
	"go/ast"

	"gooze.dev/pkg/faultline/internal/astpath"
)

// Type identifies a mutation operator.
type Type string

// Mutation operator types.
const (
	NullifyRight             Type = "nullify-right"
	NullifyLeft              Type = "nullify-left"
	DeleteStatement          Type = "delete-statement"
	ForceConsequent          Type = "force-consequent"
	ChangeBinaryOperator     Type = "change-binary-operator"
	ChangeIdentifier         Type = "change-identifier"
	ChangeString             Type = "change-string"
	ForceAlternate           Type = "force-alternate"
	SwapCallArgs             Type = "swap-call-args"
	ChangeBoolean            Type = "change-boolean"
	ChangeNumber             Type = "change-number"
	ChangeAssignmentOperator Type = "change-assignment-operator"
	SwapParams               Type = "swap-params"
)

// importanceOrder lists operator types from most to least important.
var importanceOrder = []Type{
	NullifyRight,
	NullifyLeft,
	DeleteStatement,
	ForceConsequent,
	ChangeBinaryOperator,
	ChangeIdentifier,
	ChangeString,
	ForceAlternate,
	SwapCallArgs,
	ChangeBoolean,
	ChangeNumber,
	ChangeAssignmentOperator,
	SwapParams,
}

// Visitor holds the callbacks an operator runs over a file before candidates
// are generated. Either callback may be nil.
type Visitor struct {
	Enter func(n ast.Node, path astpath.Path)
	Exit  func(n ast.Node, path astpath.Path)
}

// Operator describes where a mutation applies and what it does.
//
// Condition decides applicability for a visited node. Variants, when set,
// returns the ordered substitution values for a location; an empty result
// means the operator has nothing to offer there. Operators without Variants
// apply once. Setup, when set, returns a visitor that fills the unit's side
// table for this operator.
type Operator struct {
	Type      Type
	Condition func(u *Unit, n ast.Node, path astpath.Path) bool
	Sequence  Sequence
	Variants  func(u *Unit, n ast.Node, path astpath.Path) []any
	Setup     func(u *Unit) Visitor
}

// Candidate is an operator matched to a concrete location.
type Candidate struct {
	Operator *Operator
	Path     astpath.Path
	Node     ast.Node
	Variants []any
}

// Catalog is the immutable set of operators used for a run.
type Catalog struct {
	operators  []Operator
	importance map[Type]int
}

// NewCatalog builds a catalog from operators. With no arguments it returns
// every built-in operator.
func NewCatalog(operators ...Operator) *Catalog {
	if len(operators) == 0 {
		operators = Builtin()
	}

	importance := make(map[Type]int, len(importanceOrder))
	for i, t := range importanceOrder {
		importance[t] = len(importanceOrder) - i
	}

	return &Catalog{
		operators:  operators,
		importance: importance,
	}
}

// Builtin returns the reference operators.
func Builtin() []Operator {
	return []Operator{
		forceConsequent(),
		forceAlternate(),
		deleteStatement(),
		swapCallArgs(),
		swapParams(),
		changeBinaryOperator(),
		nullifyLeft(),
		nullifyRight(),
		changeAssignmentOperator(),
		changeNumber(),
		changeBoolean(),
		changeString(),
		changeIdentifier(),
	}
}

// Operators returns the catalog's operators.
func (c *Catalog) Operators() []Operator {
	return c.operators
}

// Operator looks up an operator by type.
func (c *Catalog) Operator(t Type) (*Operator, bool) {
	for i := range c.operators {
		if c.operators[i].Type == t {
			return &c.operators[i], true
		}
	}

	return nil, false
}

// Importance ranks operator types for tie-breaks; higher wins. Unknown types
// rank below every known type.
func (c *Catalog) Importance(t Type) int {
	return c.importance[t]
}

// Prepare runs every operator's setup visitor over the unit in one traversal.
func (c *Catalog) Prepare(u *Unit) {
	var visitors []Visitor

	for _, op := range c.operators {
		if op.Setup != nil {
			visitors = append(visitors, op.Setup(u))
		}
	}

	if len(visitors) == 0 {
		return
	}

	astpath.Traverse(u.File, func(n ast.Node, path astpath.Path) bool {
		for _, v := range visitors {
			if v.Enter != nil {
				v.Enter(n, path)
			}
		}

		return true
	}, func(n ast.Node, path astpath.Path) {
		for i := len(visitors) - 1; i >= 0; i-- {
			if visitors[i].Exit != nil {
				visitors[i].Exit(n, path)
			}
		}
	})
}

// Candidates lists every operator application in the unit, in source order.
// Prepare must have run first.
func (c *Catalog) Candidates(u *Unit) []Candidate {
	var out []Candidate

	astpath.Walk(u.File, func(n ast.Node, path astpath.Path) bool {
		for i := range c.operators {
			op := &c.operators[i]
			if !op.Condition(u, n, path) {
				continue
			}

			var variants []any
			if op.Variants != nil {
				variants = op.Variants(u, n, path)
				if len(variants) == 0 {
					continue
				}
			}

			out = append(out, Candidate{
				Operator: op,
				Path:     path,
				Node:     n,
				Variants: variants,
			})
		}

		return true
	})

	return out
}
