package adapter

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	m "gooze.dev/pkg/faultline/internal/model"
)

const events = `{"Action":"start","Package":"example.com/calc"}
{"Action":"run","Package":"example.com/calc","Test":"TestSign"}
{"Action":"output","Package":"example.com/calc","Test":"TestSign","Output":"=== RUN   TestSign\n"}
{"Action":"output","Package":"example.com/calc","Test":"TestSign","Output":"    calc_test.go:12: Sign(1) = 0, want 1\n"}
{"Action":"fail","Package":"example.com/calc","Test":"TestSign","Elapsed":0.01}
{"Action":"run","Package":"example.com/calc","Test":"TestAbs"}
{"Action":"pass","Package":"example.com/calc","Test":"TestAbs","Elapsed":0}
{"Action":"run","Package":"example.com/calc","Test":"TestSkip"}
{"Action":"skip","Package":"example.com/calc","Test":"TestSkip"}
{"Action":"run","Package":"example.com/calc","Test":"TestPanic"}
{"Action":"output","Package":"example.com/calc","Test":"TestPanic","Output":"panic: boom\n\t/work/calc/calc.go:7 +0x1d\n"}
{"Action":"fail","Package":"example.com/calc","Elapsed":0.02}
`

func TestParseTestEvents(t *testing.T) {
	results, buildFailed, err := ParseTestEvents([]byte("go: downloading\n" + events))
	if err != nil {
		t.Fatalf("ParseTestEvents() error = %v", err)
	}

	if buildFailed {
		t.Fatalf("ParseTestEvents() reported a build failure")
	}

	if len(results) != 4 {
		t.Fatalf("ParseTestEvents() = %d results, want 4", len(results))
	}

	sign := results["example.com/calc/TestSign"]
	if sign.Passed || sign.Name != "TestSign" || sign.Package != "example.com/calc" {
		t.Fatalf("TestSign = %+v", sign)
	}

	if sign.Elapsed != 10*time.Millisecond {
		t.Fatalf("TestSign elapsed = %v", sign.Elapsed)
	}

	if len(sign.Stack) != 1 || sign.Stack[0] != (m.StackFrame{File: "calc_test.go", Line: 12}) {
		t.Fatalf("TestSign stack = %v", sign.Stack)
	}

	if !results["example.com/calc/TestAbs"].Passed {
		t.Fatalf("TestAbs should pass")
	}

	if skip := results["example.com/calc/TestSkip"]; !skip.Skipped || skip.Passed {
		t.Fatalf("TestSkip = %+v", skip)
	}

	panicked := results["example.com/calc/TestPanic"]
	if panicked.Passed {
		t.Fatalf("TestPanic without outcome should fail")
	}

	if len(panicked.Stack) != 1 || panicked.Stack[0].File != "/work/calc/calc.go" {
		t.Fatalf("TestPanic stack = %v", panicked.Stack)
	}

	failing := results.Failing()
	if len(failing) != 2 {
		t.Fatalf("Failing() = %v", failing)
	}
}

func TestParseTestEvents_BuildFailure(t *testing.T) {
	t.Run("build-fail action", func(t *testing.T) {
		_, buildFailed, err := ParseTestEvents([]byte(`{"ImportPath":"example.com/calc","Action":"build-fail"}`))
		if err != nil {
			t.Fatalf("ParseTestEvents() error = %v", err)
		}

		if !buildFailed {
			t.Fatalf("ParseTestEvents() missed build-fail")
		}
	})

	t.Run("package output", func(t *testing.T) {
		data := `{"Action":"output","Package":"example.com/calc","Output":"FAIL\texample.com/calc [build failed]\n"}`

		_, buildFailed, err := ParseTestEvents([]byte(data))
		if err != nil {
			t.Fatalf("ParseTestEvents() error = %v", err)
		}

		if !buildFailed {
			t.Fatalf("ParseTestEvents() missed [build failed]")
		}
	})

	t.Run("malformed event", func(t *testing.T) {
		if _, _, err := ParseTestEvents([]byte(`{"Action":`)); err == nil {
			t.Fatalf("ParseTestEvents() expected error")
		}
	})
}

func TestParseStack(t *testing.T) {
	output := "calc_test.go:12: mismatch\n\t/src/calc/calc.go:7:3 +0x1d\nno frame here\n"

	got := ParseStack(output)
	want := []m.StackFrame{
		{File: "calc_test.go", Line: 12},
		{File: "/src/calc/calc.go", Line: 7, Column: 3},
	}

	if len(got) != len(want) {
		t.Fatalf("ParseStack() = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ParseStack()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRunPattern(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{name: "single", names: []string{"TestSign"}, want: "^(TestSign)$"},
		{name: "several", names: []string{"TestSign", "TestAbs"}, want: "^(TestAbs|TestSign)$"},
		{name: "subtest", names: []string{"TestSign/zero"}, want: "^(TestSign)$/^(zero)$"},
		{name: "quoted", names: []string{"TestSign/a+b"}, want: `^(TestSign)$/^(a\+b)$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RunPattern(tt.names); got != tt.want {
				t.Fatalf("RunPattern() = %s, want %s", got, tt.want)
			}
		})
	}
}

// TestLocalTestRunnerAdapter_Run exercises the adapter against the example
// module in the repo instead of embedding Go source in strings.
func TestLocalTestRunnerAdapter_Run(t *testing.T) {
	if testing.Short() {
		t.Skip("runs go test")
	}

	adapter := NewLocalTestRunnerAdapter(2 * time.Minute)
	workDir := m.Path(filepath.Join("..", "..", "examples", "sign"))

	t.Run("failing test", func(t *testing.T) {
		run, err := adapter.Run(context.Background(), TestRequest{Dir: workDir})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		if run.Status != m.RunCompleted {
			t.Fatalf("Run() status = %s, output = %s", run.Status, run.Output)
		}

		if len(run.Results.Failing()) == 0 {
			t.Fatalf("Run() expected a failing test, output = %s", run.Output)
		}
	})

	t.Run("missing package", func(t *testing.T) {
		run, err := adapter.Run(context.Background(), TestRequest{Dir: workDir, Packages: []string{"./does_not_exist"}})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		if !run.Status.Abnormal() && !strings.Contains(run.Output, "does_not_exist") {
			t.Fatalf("Run() expected diagnostics for missing package, got %s", run.Output)
		}
	})
}
