package astpath

import (
	"fmt"
	"go/ast"
	"reflect"
)

var nodeType = reflect.TypeOf((*ast.Node)(nil)).Elem()

// Resolve follows path from root and returns the addressed value. The value
// is addressable whenever root is a pointer, so callers may Set it.
func Resolve(root ast.Node, path Path) (reflect.Value, error) {
	v := reflect.ValueOf(root)

	for i, key := range path {
		var err error

		v, err = indirect(v)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %s at %q: %v", ErrInvalidPath, path, path[:i].String(), err)
		}

		if key.IsIndex() {
			if v.Kind() != reflect.Slice {
				return reflect.Value{}, fmt.Errorf("%w: %s: index %d into %s", ErrInvalidPath, path, key.Index, v.Type())
			}

			if key.Index < 0 || key.Index >= v.Len() {
				return reflect.Value{}, fmt.Errorf("%w: %s: index %d out of range [0,%d)", ErrInvalidPath, path, key.Index, v.Len())
			}

			v = v.Index(key.Index)

			continue
		}

		if v.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("%w: %s: field %s of %s", ErrInvalidPath, path, key.Field, v.Type())
		}

		field := v.FieldByName(key.Field)
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("%w: %s: %s has no field %s", ErrInvalidPath, path, v.Type(), key.Field)
		}

		v = field
	}

	return v, nil
}

// Node resolves path and returns the node it addresses. A nil interface or
// pointer yields a nil node without error.
func Node(root ast.Node, path Path) (ast.Node, error) {
	v, err := Resolve(root, path)
	if err != nil {
		return nil, err
	}

	n, ok := asNode(v)
	if !ok {
		return nil, fmt.Errorf("%w: %s addresses %s, not a node", ErrInvalidPath, path, v.Type())
	}

	return n, nil
}

// Typed widens path to its nearest prefix addressing a concrete node. Paths
// to tokens, positions or slices are promoted to their owning node.
func Typed(root ast.Node, path Path) (Path, error) {
	for _, candidate := range path.Ancestors() {
		v, err := Resolve(root, candidate)
		if err != nil {
			return nil, err
		}

		if n, ok := asNode(v); ok && n != nil {
			return candidate, nil
		}
	}

	return Path{}, nil
}

// Set assigns value to the location addressed by path.
func Set(root ast.Node, path Path, value any) error {
	target, err := Resolve(root, path)
	if err != nil {
		return err
	}

	return Assign(target, value)
}

// Assign stores value into an addressable reflect.Value, converting nil to
// the zero value of the target type.
func Assign(target reflect.Value, value any) error {
	if !target.CanSet() {
		return fmt.Errorf("%w: %s is not settable", ErrInvalidPath, target.Type())
	}

	if value == nil {
		target.Set(reflect.Zero(target.Type()))
		return nil
	}

	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(target.Type()) {
		if v.Type().ConvertibleTo(target.Type()) && v.Kind() != reflect.Interface && v.Kind() != reflect.Ptr {
			target.Set(v.Convert(target.Type()))
			return nil
		}

		return fmt.Errorf("%w: cannot assign %s to %s", ErrInvalidPath, v.Type(), target.Type())
	}

	target.Set(v)

	return nil
}

func indirect(v reflect.Value) (reflect.Value, error) {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("nil %s", v.Type())
		}

		v = v.Elem()
	}

	return v, nil
}

func asNode(v reflect.Value) (ast.Node, bool) {
	if !v.IsValid() {
		return nil, false
	}

	if v.Kind() == reflect.Interface {
		if !v.Type().Implements(nodeType) {
			return nil, false
		}

		if v.IsNil() {
			return nil, true
		}

		v = v.Elem()
	}

	if v.Kind() != reflect.Ptr || !v.Type().Implements(nodeType) {
		return nil, false
	}

	if v.IsNil() {
		return nil, true
	}

	n, ok := v.Interface().(ast.Node)

	return n, ok
}
