package astpath

import (
	"go/ast"
	"go/token"
	"reflect"
)

var (
	commentGroupType = reflect.TypeOf((*ast.CommentGroup)(nil))
	commentType      = reflect.TypeOf((*ast.Comment)(nil))
	fileType         = reflect.TypeOf(ast.File{})
)

// fields of *ast.File that alias nodes already reachable through Decls, or
// hold comments and resolution tables.
var skippedFileFields = map[string]bool{
	"Doc":        true,
	"Scope":      true,
	"Imports":    true,
	"Unresolved": true,
	"Comments":   true,
}

// VisitFunc is called for each node with its address. Returning false from a
// pre-order visit skips the node's children.
type VisitFunc func(n ast.Node, path Path) bool

// Walk visits every node reachable from root in source order.
func Walk(root ast.Node, visit VisitFunc) {
	w := walker{pre: visit}
	w.walk(reflect.ValueOf(root), Path{})
}

// WalkPost visits every node in post-order (children before parents).
func WalkPost(root ast.Node, visit func(n ast.Node, path Path)) {
	w := walker{post: visit}
	w.walk(reflect.ValueOf(root), Path{})
}

// Traverse calls enter before and exit after a node's children. Exit is not
// called for nodes whose enter returned false.
func Traverse(root ast.Node, enter VisitFunc, exit func(n ast.Node, path Path)) {
	w := walker{pre: enter, post: exit}
	w.walk(reflect.ValueOf(root), Path{})
}

type walker struct {
	pre  VisitFunc
	post func(n ast.Node, path Path)
}

func (w walker) walk(v reflect.Value, path Path) {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return
		}

		w.walk(v.Elem(), path)
	case reflect.Ptr:
		if v.IsNil() || v.Type() == commentGroupType || v.Type() == commentType {
			return
		}

		n, ok := v.Interface().(ast.Node)
		if !ok {
			return
		}

		if w.pre != nil && !w.pre(n, path) {
			return
		}

		w.walkFields(v.Elem(), path)

		if w.post != nil {
			w.post(n, path)
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			w.walk(v.Index(i), path.Append(Index(i)))
		}
	}
}

func (w walker) walkFields(v reflect.Value, path Path) {
	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || !holdsNodes(field.Type) {
			continue
		}

		if t == fileType && skippedFileFields[field.Name] {
			continue
		}

		w.walk(v.Field(i), path.Append(Field(field.Name)))
	}
}

func holdsNodes(t reflect.Type) bool {
	if t.Kind() == reflect.Slice {
		t = t.Elem()
	}

	if t == commentGroupType || t == commentType {
		return false
	}

	return t.Implements(nodeType)
}

// IndexNodes builds the node-to-address side table for root.
func IndexNodes(root ast.Node) map[ast.Node]Path {
	index := make(map[ast.Node]Path)

	Walk(root, func(n ast.Node, path Path) bool {
		index[n] = path
		return true
	})

	return index
}

// PostOrder numbers every node by its position in a post-order traversal.
func PostOrder(root ast.Node) map[ast.Node]int {
	order := make(map[ast.Node]int)

	WalkPost(root, func(n ast.Node, _ Path) {
		order[n] = len(order)
	})

	return order
}

// NodeAt returns the outermost node starting at line (and column, when
// column is positive). It returns nil when nothing starts there.
func NodeAt(fset *token.FileSet, root ast.Node, line, column int) ast.Node {
	var found ast.Node

	Walk(root, func(n ast.Node, _ Path) bool {
		if found != nil {
			return false
		}

		pos := fset.Position(n.Pos())
		if pos.Line == line && (column <= 0 || pos.Column == column) {
			if _, isFile := n.(*ast.File); !isFile {
				found = n
				return false
			}
		}

		end := fset.Position(n.End())

		return pos.Line <= line && end.Line >= line
	})

	return found
}
