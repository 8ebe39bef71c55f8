package adapter

import (
	"go/token"
	"strings"
	"testing"

	m "gooze.dev/pkg/faultline/internal/model"
)

const calcSource = `package calc

// Sign reports the sign of x.
func Sign(x int) int {
	if x > 0 {
		return 1
	}
	var zero = 0
	return zero
}
`

func TestLocalGoFileAdapter_Parse(t *testing.T) {
	adapter := NewLocalGoFileAdapter(true)
	fset := token.NewFileSet()

	file, err := adapter.Parse(fset, "calc.go", []byte(calcSource))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if file.Name.Name != "calc" {
		t.Fatalf("Parse() package = %s, want calc", file.Name.Name)
	}

	if len(file.Comments) == 0 {
		t.Fatalf("Parse() dropped comments")
	}
}

func TestLocalGoFileAdapter_Parse_InvalidSource(t *testing.T) {
	adapter := NewLocalGoFileAdapter(false)
	fset := token.NewFileSet()

	if _, err := adapter.Parse(fset, "broken.go", []byte("package foo\n func")); err == nil {
		t.Fatalf("Parse() expected error for invalid source")
	}
}

func TestLocalGoFileAdapter_Print(t *testing.T) {
	adapter := NewLocalGoFileAdapter(true)
	fset := token.NewFileSet()

	file, err := adapter.Parse(fset, "calc.go", []byte(calcSource))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	out, err := adapter.Print(fset, file)
	if err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	if string(out) != calcSource {
		t.Fatalf("Print() = %q, want %q", string(out), calcSource)
	}
}

func TestLocalGoFileAdapter_TestFunctions(t *testing.T) {
	adapter := NewLocalGoFileAdapter(false)
	fset := token.NewFileSet()

	src := strings.Join([]string{
		"package calc",
		"import \"testing\"",
		"func TestSign(t *testing.T) {}",
		"func Test(t *testing.T) {}",
		"func Testify(t *testing.T) {}",
		"func TestHelper() {}",
		"func helper(t *testing.T) {}",
		"",
	}, "\n")

	file, err := adapter.Parse(fset, "calc_test.go", []byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got := adapter.TestFunctions(file)
	want := []string{"TestSign", "Test"}

	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("TestFunctions() = %v, want %v", got, want)
	}
}

func TestLocalGoFileAdapter_Statements(t *testing.T) {
	adapter := NewLocalGoFileAdapter(false)
	fset := token.NewFileSet()

	file, err := adapter.Parse(fset, "calc.go", []byte(calcSource))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got := adapter.Statements(fset, file)
	want := []m.Span{
		{Start: m.Position{Line: 5, Column: 2}, End: m.Position{Line: 7, Column: 3}},
		{Start: m.Position{Line: 6, Column: 3}, End: m.Position{Line: 6, Column: 11}},
		{Start: m.Position{Line: 8, Column: 2}, End: m.Position{Line: 8, Column: 14}},
		{Start: m.Position{Line: 9, Column: 2}, End: m.Position{Line: 9, Column: 13}},
	}

	if len(got) != len(want) {
		t.Fatalf("Statements() = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Statements()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
