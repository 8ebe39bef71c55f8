package mutagens

import (
	"fmt"
	"go/ast"
	"reflect"

	"gooze.dev/pkg/faultline/internal/astpath"
)

// Apply executes a prepared edit.
type Apply func() error

// Step is a primitive edit. Setup resolves its target against the tree being
// mutated and computes the new value; the returned Apply performs the write.
// All steps of a batch are set up before any of them is applied.
type Step interface {
	Setup(tree ast.Node, at astpath.Path, variant any) (Apply, error)
	Reads() []astpath.Path
	Writes() []astpath.Path
}

// Sequence is an ordered list of edits relative to an unbound location,
// together with the relative paths it reads and writes.
type Sequence struct {
	Steps  []Step
	Reads  []astpath.Path
	Writes []astpath.Path
}

// NewSequence captures the read/write sets of steps.
func NewSequence(steps ...Step) Sequence {
	seq := Sequence{Steps: steps}

	for _, step := range steps {
		seq.Reads = append(seq.Reads, step.Reads()...)
		seq.Writes = append(seq.Writes, step.Writes()...)
	}

	return seq
}

// Bind resolves the sequence's relative reads and writes against at.
func (s Sequence) Bind(at astpath.Path) (reads, writes []astpath.Path) {
	for _, r := range s.Reads {
		reads = append(reads, at.Join(r))
	}

	for _, w := range s.Writes {
		writes = append(writes, at.Join(w))
	}

	return reads, writes
}

// Setup prepares every step of the sequence against tree.
func (s Sequence) Setup(tree ast.Node, at astpath.Path, variant any) ([]Apply, error) {
	applies := make([]Apply, 0, len(s.Steps))

	for _, step := range s.Steps {
		apply, err := step.Setup(tree, at, variant)
		if err != nil {
			return nil, err
		}

		applies = append(applies, apply)
	}

	return applies, nil
}

type setField struct {
	rel   astpath.Path
	value func(current any, variant any) any
}

// SetField writes the value computed from the instruction's variant into the
// field addressed by rel.
func SetField(rel astpath.Path, value func(current any, variant any) any) Step {
	return setField{rel: rel, value: value}
}

func (s setField) Setup(tree ast.Node, at astpath.Path, variant any) (Apply, error) {
	target, err := astpath.Resolve(tree, at.Join(s.rel))
	if err != nil {
		return nil, err
	}

	value := s.value(target.Interface(), variant)
	if err := checkAssignable(target, value); err != nil {
		return nil, fmt.Errorf("set %s: %w", at.Join(s.rel), err)
	}

	return func() error {
		return astpath.Assign(target, value)
	}, nil
}

func (s setField) Reads() []astpath.Path  { return nil }
func (s setField) Writes() []astpath.Path { return []astpath.Path{s.rel} }

type setDerivedField struct {
	rel    astpath.Path
	from   astpath.Path
	derive func(source any, variant any) any
}

// SetDerivedField writes a value derived from another location of the tree.
// The source is read during setup, before any edit of the batch runs.
func SetDerivedField(rel, from astpath.Path, derive func(source any, variant any) any) Step {
	return setDerivedField{rel: rel, from: from, derive: derive}
}

func (s setDerivedField) Setup(tree ast.Node, at astpath.Path, variant any) (Apply, error) {
	source, err := astpath.Resolve(tree, at.Join(s.from))
	if err != nil {
		return nil, err
	}

	target, err := astpath.Resolve(tree, at.Join(s.rel))
	if err != nil {
		return nil, err
	}

	value := s.derive(source.Interface(), variant)
	if err := checkAssignable(target, value); err != nil {
		return nil, fmt.Errorf("derive %s from %s: %w", at.Join(s.rel), at.Join(s.from), err)
	}

	return func() error {
		return astpath.Assign(target, value)
	}, nil
}

func (s setDerivedField) Reads() []astpath.Path  { return []astpath.Path{s.from} }
func (s setDerivedField) Writes() []astpath.Path { return []astpath.Path{s.rel} }

type replaceNode struct {
	rel   astpath.Path
	build func(target ast.Node, variant any) ast.Node
}

// ReplaceNode swaps the node at rel for a freshly built one.
func ReplaceNode(rel astpath.Path, build func(target ast.Node, variant any) ast.Node) Step {
	return replaceNode{rel: rel, build: build}
}

func (s replaceNode) Setup(tree ast.Node, at astpath.Path, variant any) (Apply, error) {
	path := at.Join(s.rel)

	current, err := astpath.Node(tree, path)
	if err != nil {
		return nil, err
	}

	target, err := astpath.Resolve(tree, path)
	if err != nil {
		return nil, err
	}

	replacement := s.build(current, variant)
	if err := checkAssignable(target, replacement); err != nil {
		return nil, fmt.Errorf("replace %s: %w", path, err)
	}

	return func() error {
		return astpath.Assign(target, replacement)
	}, nil
}

func (s replaceNode) Reads() []astpath.Path  { return []astpath.Path{s.rel} }
func (s replaceNode) Writes() []astpath.Path { return []astpath.Path{s.rel} }

type replaceWithMany struct {
	rel   astpath.Path
	build func(target ast.Node, variant any) []ast.Node
}

// ReplaceWithMany splices several nodes in place of a slice element.
func ReplaceWithMany(rel astpath.Path, build func(target ast.Node, variant any) []ast.Node) Step {
	return replaceWithMany{rel: rel, build: build}
}

func (s replaceWithMany) Setup(tree ast.Node, at astpath.Path, variant any) (Apply, error) {
	element, err := resolveElement(tree, at.Join(s.rel))
	if err != nil {
		return nil, err
	}

	replacements := s.build(element.node, variant)
	for _, r := range replacements {
		if !reflect.TypeOf(r).AssignableTo(element.holder.Type().Elem()) {
			return nil, fmt.Errorf("%w: cannot splice %T into %s", astpath.ErrInvalidPath, r, element.holder.Type())
		}
	}

	return func() error {
		return element.splice(replacements)
	}, nil
}

func (s replaceWithMany) Reads() []astpath.Path  { return []astpath.Path{s.rel} }
func (s replaceWithMany) Writes() []astpath.Path { return []astpath.Path{s.rel.Parent()} }

type removeNode struct {
	rel astpath.Path
}

// RemoveNode deletes a slice element, locating it by identity when applied.
func RemoveNode(rel astpath.Path) Step {
	return removeNode{rel: rel}
}

func (s removeNode) Setup(tree ast.Node, at astpath.Path, _ any) (Apply, error) {
	element, err := resolveElement(tree, at.Join(s.rel))
	if err != nil {
		return nil, err
	}

	return func() error {
		return element.splice(nil)
	}, nil
}

func (s removeNode) Reads() []astpath.Path  { return nil }
func (s removeNode) Writes() []astpath.Path { return []astpath.Path{s.rel} }

// sliceElement remembers a node and the slice holding it. Edits find the
// node again at apply time so sibling edits in the same batch may shift it.
type sliceElement struct {
	holder reflect.Value
	node   ast.Node
}

func resolveElement(tree ast.Node, path astpath.Path) (sliceElement, error) {
	key, ok := path.Last()
	if !ok || !key.IsIndex() {
		return sliceElement{}, fmt.Errorf("%w: %s is not a slice element", astpath.ErrInvalidPath, path)
	}

	holder, err := astpath.Resolve(tree, path.Parent())
	if err != nil {
		return sliceElement{}, err
	}

	node, err := astpath.Node(tree, path)
	if err != nil {
		return sliceElement{}, err
	}

	return sliceElement{holder: holder, node: node}, nil
}

func (e sliceElement) splice(replacements []ast.Node) error {
	index := -1

	for i := 0; i < e.holder.Len(); i++ {
		if n, ok := e.holder.Index(i).Interface().(ast.Node); ok && n == e.node {
			index = i
			break
		}
	}

	if index < 0 {
		return fmt.Errorf("%w: %T no longer present in %s", astpath.ErrInvalidPath, e.node, e.holder.Type())
	}

	out := reflect.MakeSlice(e.holder.Type(), 0, e.holder.Len()-1+len(replacements))
	out = reflect.AppendSlice(out, e.holder.Slice(0, index))

	for _, r := range replacements {
		out = reflect.Append(out, reflect.ValueOf(r))
	}

	out = reflect.AppendSlice(out, e.holder.Slice(index+1, e.holder.Len()))
	e.holder.Set(out)

	return nil
}

func checkAssignable(target reflect.Value, value any) error {
	if !target.CanSet() {
		return fmt.Errorf("%w: %s is not settable", astpath.ErrInvalidPath, target.Type())
	}

	if value == nil {
		return nil
	}

	t := reflect.TypeOf(value)
	if t.AssignableTo(target.Type()) || (t.ConvertibleTo(target.Type()) && t.Kind() != reflect.Ptr) {
		return nil
	}

	return fmt.Errorf("%w: cannot assign %s to %s", astpath.ErrInvalidPath, t, target.Type())
}
