package astpath

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `package sample

func classify(a float64) string {
	if a > 0.5 {
		ok()
	} else {
		bad()
	}
	return "done"
}

func ok()  {}
func bad() {}
`

func parseFixture(t *testing.T) (*token.FileSet, *ast.File) {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "sample.go", fixture, parser.ParseComments)
	require.NoError(t, err)

	return fset, file
}

func TestParse(t *testing.T) {
	t.Run("round trips string form", func(t *testing.T) {
		p, err := Parse("Decls.0.Body.List.1")
		require.NoError(t, err)
		assert.Equal(t, Path{Field("Decls"), Index(0), Field("Body"), Field("List"), Index(1)}, p)
		assert.Equal(t, "Decls.0.Body.List.1", p.String())
	})

	t.Run("empty string is root", func(t *testing.T) {
		p, err := Parse("")
		require.NoError(t, err)
		assert.Empty(t, p)
	})

	t.Run("rejects empty keys", func(t *testing.T) {
		_, err := Parse("Decls..Body")
		require.ErrorIs(t, err, ErrInvalidPath)
	})
}

func TestPathHelpers(t *testing.T) {
	p := MustParse("Decls.0.Body")

	child := p.Append(Field("List"))
	assert.Equal(t, "Decls.0.Body", p.String(), "Append must not modify the receiver")
	assert.Equal(t, "Decls.0.Body.List", child.String())
	assert.True(t, child.HasPrefix(p))
	assert.False(t, p.HasPrefix(child))
	assert.True(t, child.Parent().Equal(p))

	ancestors := child.Ancestors()
	require.Len(t, ancestors, 5)
	assert.Equal(t, "Decls.0.Body.List", ancestors[0].String())
	assert.Equal(t, "", ancestors[4].String())
}

func TestResolveRoundTrip(t *testing.T) {
	_, file := parseFixture(t)

	count := 0

	Walk(file, func(n ast.Node, path Path) bool {
		count++

		reparsed, err := Parse(path.String())
		require.NoError(t, err)

		got, err := Node(file, reparsed)
		require.NoError(t, err)
		assert.Same(t, n, got, "path %s", path)

		return true
	})

	assert.Greater(t, count, 20)
}

func TestResolveErrors(t *testing.T) {
	_, file := parseFixture(t)

	tests := []struct {
		name string
		path string
	}{
		{name: "index out of range", path: "Decls.9"},
		{name: "unknown field", path: "Decls.0.Nope"},
		{name: "index into struct", path: "Decls.0.3"},
		{name: "field of slice", path: "Decls.Body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(file, MustParse(tt.path))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPath))
		})
	}
}

func TestTyped(t *testing.T) {
	_, file := parseFixture(t)

	t.Run("token field widens to owner", func(t *testing.T) {
		typed, err := Typed(file, MustParse("Decls.0.Body.List.0.Cond.Op"))
		require.NoError(t, err)
		assert.Equal(t, "Decls.0.Body.List.0.Cond", typed.String())

		n, err := Node(file, typed)
		require.NoError(t, err)
		assert.IsType(t, &ast.BinaryExpr{}, n)
	})

	t.Run("slice widens to owner", func(t *testing.T) {
		typed, err := Typed(file, MustParse("Decls.0.Body.List"))
		require.NoError(t, err)
		assert.Equal(t, "Decls.0.Body", typed.String())
	})

	t.Run("node is kept", func(t *testing.T) {
		typed, err := Typed(file, MustParse("Decls.0.Body.List.1"))
		require.NoError(t, err)
		assert.Equal(t, "Decls.0.Body.List.1", typed.String())
	})
}

func TestSet(t *testing.T) {
	_, file := parseFixture(t)

	err := Set(file, MustParse("Decls.0.Body.List.0.Cond"), ast.NewIdent("true"))
	require.NoError(t, err)

	n, err := Node(file, MustParse("Decls.0.Body.List.0.Cond"))
	require.NoError(t, err)
	assert.Equal(t, "true", n.(*ast.Ident).Name)

	err = Set(file, MustParse("Decls.0.Body.List.0.Cond"), "not a node")
	require.ErrorIs(t, err, ErrInvalidPath)
}

func TestWalkSkipsAliases(t *testing.T) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "imports.go", "// Package p doc.\npackage p\n\nimport \"fmt\"\n\nvar _ = fmt.Sprint\n", parser.ParseComments)
	require.NoError(t, err)

	seen := map[ast.Node]int{}

	Walk(file, func(n ast.Node, _ Path) bool {
		seen[n]++
		return true
	})

	for n, count := range seen {
		assert.Equal(t, 1, count, "%T visited more than once", n)
		_, isComment := n.(*ast.CommentGroup)
		assert.False(t, isComment)
	}
}

func TestIndexNodes(t *testing.T) {
	_, file := parseFixture(t)

	index := IndexNodes(file)
	require.NotEmpty(t, index)
	assert.Empty(t, index[file])

	for n, path := range index {
		got, err := Node(file, path)
		require.NoError(t, err, path.String())
		assert.Same(t, n, got, "%s", path)
	}

	fn := file.Decls[0].(*ast.FuncDecl)
	assert.Equal(t, Path{Field("Decls"), Index(0), Field("Body"), Field("List"), Index(0)}, index[fn.Body.List[0]])
}

func TestPostOrder(t *testing.T) {
	_, file := parseFixture(t)

	order := PostOrder(file)
	index := IndexNodes(file)

	for n, path := range index {
		parent, err := Node(file, path.Parent())
		if err != nil || parent == nil || parent == n {
			continue
		}

		assert.Less(t, order[n], order[parent], "child %s must precede its parent", path)
	}

	assert.Equal(t, len(order)-1, order[file])
}

func TestNodeAt(t *testing.T) {
	fset, file := parseFixture(t)

	n := NodeAt(fset, file, 5, 0)
	require.NotNil(t, n)
	assert.IsType(t, &ast.ExprStmt{}, n)

	n = NodeAt(fset, file, 4, 5)
	require.NotNil(t, n)
	assert.IsType(t, &ast.BinaryExpr{}, n)

	assert.Nil(t, NodeAt(fset, file, 99, 0))
}
