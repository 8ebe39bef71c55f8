package domain

import (
	"fmt"
	"go/ast"
	"go/token"
	"sort"
	"strings"

	"gooze.dev/pkg/faultline/internal/astpath"
	"gooze.dev/pkg/faultline/internal/domain/mutagens"
	m "gooze.dev/pkg/faultline/internal/model"
)

// NodeKey identifies a tree location across re-parses as file#path.
type NodeKey string

// KeyOf builds the key of path in file.
func KeyOf(file m.Path, path astpath.Path) NodeKey {
	return NodeKey(string(file) + "#" + path.String())
}

// Split returns the file and path of the key.
func (k NodeKey) Split() (m.Path, astpath.Path, error) {
	file, raw, ok := strings.Cut(string(k), "#")
	if !ok {
		return "", nil, fmt.Errorf("%w: malformed node key %q", astpath.ErrInvalidPath, k)
	}

	path, err := astpath.Parse(raw)
	if err != nil {
		return "", nil, err
	}

	return m.Path(file), path, nil
}

// DependencyInfo lists the locations of one file an instruction reads and
// writes.
type DependencyInfo struct {
	Reads  []astpath.Path
	Writes []astpath.Path
}

// Instruction is a schedulable mutation: an operator bound to a location,
// trying its variants one at a time.
type Instruction struct {
	ID       int
	Type     mutagens.Type
	File     m.Path
	Path     astpath.Path
	Sequence mutagens.Sequence
	Deps     map[m.Path]DependencyInfo

	Variants     []any
	VariantIndex int

	ConflictWriteKeys []NodeKey
	TypedWriteKeys    []NodeKey
	IndirectWriteKeys []NodeKey

	InitialScore float64
	Evaluations  *Queue[*MutationEvaluation]
	Coverage     []*CoveragePathObj
	Attempts     int
}

// NewInstruction binds a candidate found in unit to a schedulable
// instruction and computes its dependency keys.
func NewInstruction(id int, unit *mutagens.Unit, deps *Dependencies, c mutagens.Candidate) (*Instruction, error) {
	reads, writes := c.Operator.Sequence.Bind(c.Path)

	in := &Instruction{
		ID:       id,
		Type:     c.Operator.Type,
		File:     unit.Path,
		Path:     c.Path,
		Sequence: c.Operator.Sequence,
		Deps: map[m.Path]DependencyInfo{
			unit.Path: {Reads: reads, Writes: writes},
		},
		Variants:    c.Variants,
		Evaluations: NewQueue(CompareEvaluations),
	}

	typed := make([]astpath.Path, 0, len(writes))
	seen := make(map[string]bool)

	for _, w := range writes {
		in.ConflictWriteKeys = append(in.ConflictWriteKeys, KeyOf(unit.Path, w))

		t, err := astpath.Typed(unit.File, w)
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", id, err)
		}

		if !seen[t.String()] {
			seen[t.String()] = true
			typed = append(typed, t)
			in.TypedWriteKeys = append(in.TypedWriteKeys, KeyOf(unit.Path, t))
		}
	}

	in.IndirectWriteKeys = append(in.IndirectWriteKeys, in.TypedWriteKeys...)

	for _, p := range deps.DependencyPaths(typed) {
		if !seen[p.String()] {
			seen[p.String()] = true
			in.IndirectWriteKeys = append(in.IndirectWriteKeys, KeyOf(unit.Path, p))
		}
	}

	return in, nil
}

// Variant returns the substitution value currently tried, or nil.
func (in *Instruction) Variant() any {
	if in.VariantIndex < len(in.Variants) {
		return in.Variants[in.VariantIndex]
	}

	return nil
}

// Advance moves to the next variant. It reports false when none is left.
func (in *Instruction) Advance() bool {
	if in.VariantIndex+1 >= len(in.Variants) {
		in.VariantIndex = len(in.Variants)
		return false
	}

	in.VariantIndex++

	return true
}

// Best returns the best evaluation recorded so far, or nil.
func (in *Instruction) Best() *MutationEvaluation {
	best, _ := in.Evaluations.Peek()
	return best
}

// Record appends an evaluation to the instruction's history.
func (in *Instruction) Record(e *MutationEvaluation) {
	in.Evaluations.Push(e)
	in.Attempts++
}

// History returns every recorded evaluation.
func (in *Instruction) History() []*MutationEvaluation {
	return in.Evaluations.Items()
}

func (in *Instruction) String() string {
	s := fmt.Sprintf("#%d %s %s:%s", in.ID, in.Type, in.File, in.Path)

	if v := in.Variant(); v != nil {
		s += " -> " + formatVariant(v)
	}

	return s
}

func formatVariant(v any) string {
	switch x := v.(type) {
	case token.Token:
		return x.String()
	case int:
		return fmt.Sprintf("pair %d", x)
	default:
		return fmt.Sprint(x)
	}
}

// Apply edits trees with every instruction at its current variant. All edits
// are prepared before any is executed.
func Apply(trees map[m.Path]*ast.File, instructions []*Instruction) error {
	var applies []mutagens.Apply

	for _, in := range instructions {
		tree, ok := trees[in.File]
		if !ok {
			return fmt.Errorf("%w: no tree for %s", astpath.ErrInvalidPath, in.File)
		}

		prepared, err := in.Sequence.Setup(tree, in.Path, in.Variant())
		if err != nil {
			return fmt.Errorf("prepare %s: %w", in, err)
		}

		applies = append(applies, prepared...)
	}

	for _, apply := range applies {
		if err := apply(); err != nil {
			return fmt.Errorf("apply mutation: %w", err)
		}
	}

	return nil
}

// Files returns the distinct files touched by instructions, sorted.
func Files(instructions []*Instruction) []m.Path {
	seen := make(map[m.Path]bool)

	var out []m.Path

	for _, in := range instructions {
		for file := range in.Deps {
			if !seen[file] {
				seen[file] = true
				out = append(out, file)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// IDs returns the ids of instructions.
func IDs(instructions []*Instruction) []int {
	out := make([]int, len(instructions))
	for i, in := range instructions {
		out[i] = in.ID
	}

	return out
}
