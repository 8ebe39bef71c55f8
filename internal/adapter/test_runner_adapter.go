package adapter

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	m "gooze.dev/pkg/faultline/internal/model"
)

// TestRequest selects what a harness run executes.
type TestRequest struct {
	// Dir is the module root the go command runs in.
	Dir m.Path
	// Packages are import paths or patterns, ./... when empty.
	Packages []string
	// Run is passed as -run when not empty.
	Run string
	// CoverProfile enables statement coverage written to this file.
	CoverProfile m.Path
	// CoverPackages is passed as -coverpkg when not empty.
	CoverPackages string
	// Timeout overrides the adapter's per-run timeout when positive.
	Timeout time.Duration
}

// TestRunnerAdapter abstracts test execution.
type TestRunnerAdapter interface {
	// Run executes go test and reports the per-test outcome. Build failures,
	// timeouts and crashes of the test binary are reported through the run
	// status, not as errors.
	Run(ctx context.Context, req TestRequest) (m.Run, error)
}

// LocalTestRunnerAdapter provides a concrete implementation using os/exec.
type LocalTestRunnerAdapter struct {
	timeout time.Duration
}

// NewLocalTestRunnerAdapter constructs a LocalTestRunnerAdapter. A zero
// timeout defaults to 5 minutes per run.
func NewLocalTestRunnerAdapter(timeout time.Duration) *LocalTestRunnerAdapter {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	return &LocalTestRunnerAdapter{timeout: timeout}
}

// Run executes `go test -json` for the requested packages.
func (a *LocalTestRunnerAdapter) Run(ctx context.Context, req TestRequest) (m.Run, error) {
	timeout := a.timeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := []string{"test", "-json", "-count=1"}
	if req.Run != "" {
		args = append(args, "-run", req.Run)
	}

	if req.CoverProfile != "" {
		args = append(args, "-coverprofile="+string(req.CoverProfile))
		if req.CoverPackages != "" {
			args = append(args, "-coverpkg="+req.CoverPackages)
		}
	}

	packages := req.Packages
	if len(packages) == 0 {
		packages = []string{"./..."}
	}

	args = append(args, packages...)

	// #nosec G204 - arguments are package patterns and test names of the module under analysis
	cmd := exec.CommandContext(ctx, "go", args...)
	cmd.Dir = string(req.Dir)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	results, buildFailed, err := ParseTestEvents(stdout.Bytes())
	if err != nil {
		slog.Error("Failed to parse test events", "dir", req.Dir, "error", err)
		return m.Run{}, fmt.Errorf("failed to parse test events: %w", err)
	}

	run := m.Run{
		Status:  m.RunCompleted,
		Results: results,
		Output:  stdout.String() + stderr.String(),
	}

	var exitErr *exec.ExitError

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		run.Status = m.RunTimedOut
	case buildFailed || strings.Contains(stderr.String(), "[setup failed]"):
		run.Status = m.RunBuildFailed
	case runErr != nil && !errors.As(runErr, &exitErr):
		slog.Error("Failed to start go test", "dir", req.Dir, "error", runErr)
		return m.Run{}, fmt.Errorf("failed to run go test: %w", runErr)
	case runErr != nil && len(results) == 0:
		run.Status = m.RunAborted
	}

	slog.Debug("go test finished", "dir", req.Dir, "packages", packages, "run", req.Run,
		"status", run.Status, "tests", len(results))

	return run, nil
}

// testEvent is one line of test2json output.
type testEvent struct {
	Action     string
	Package    string
	ImportPath string
	Test       string
	Elapsed    float64
	Output     string
}

// ParseTestEvents folds go test -json output into per-test results. Tests
// that started but never reported an outcome are counted as failed, which
// is what a panicking or exiting test binary looks like.
func ParseTestEvents(data []byte) (m.TestResults, bool, error) {
	results := make(m.TestResults)
	outputs := make(map[m.TestKey]*strings.Builder)
	finished := make(map[m.TestKey]bool)
	buildFailed := false

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] != '{' {
			continue
		}

		var ev testEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			return nil, false, fmt.Errorf("decode event %q: %w", line, err)
		}

		switch {
		case ev.Action == "build-fail":
			buildFailed = true
			continue
		case ev.Test == "":
			if ev.Action == "output" && strings.Contains(ev.Output, "[build failed]") {
				buildFailed = true
			}

			continue
		}

		key := m.TestKey(ev.Package + "/" + ev.Test)

		result, ok := results[key]
		if !ok {
			result = m.TestResult{Key: key, Package: ev.Package, Name: ev.Test}
			outputs[key] = &strings.Builder{}
		}

		switch ev.Action {
		case "output":
			outputs[key].WriteString(ev.Output)
		case "pass":
			result.Passed = true
			finished[key] = true
		case "skip":
			result.Skipped = true
			finished[key] = true
		case "fail":
			result.Passed = false
			finished[key] = true
		}

		if ev.Elapsed > 0 {
			result.Elapsed = time.Duration(ev.Elapsed * float64(time.Second))
		}

		results[key] = result
	}

	if err := scanner.Err(); err != nil {
		return nil, false, err
	}

	for key, result := range results {
		result.Output = outputs[key].String()
		result.Stack = ParseStack(result.Output)

		if !finished[key] {
			result.Passed = false
		}

		results[key] = result
	}

	return results, buildFailed, nil
}

var frameRe = regexp.MustCompile(`([\w./-]+\.go):(\d+)(?::(\d+))?`)

// ParseStack extracts file:line[:column] references from test output in the
// order they appear.
func ParseStack(output string) []m.StackFrame {
	var frames []m.StackFrame

	for _, match := range frameRe.FindAllStringSubmatch(output, -1) {
		line, err := strconv.Atoi(match[2])
		if err != nil {
			continue
		}

		frame := m.StackFrame{File: m.Path(match[1]), Line: line}

		if match[3] != "" {
			if column, err := strconv.Atoi(match[3]); err == nil {
				frame.Column = column
			}
		}

		frames = append(frames, frame)
	}

	return frames
}

// RunPattern builds a -run expression selecting exactly the named tests.
// Subtest names are matched level by level.
func RunPattern(names []string) string {
	levels := make([]map[string]bool, 0)

	for _, name := range names {
		for i, part := range strings.Split(name, "/") {
			if len(levels) <= i {
				levels = append(levels, make(map[string]bool))
			}

			levels[i][part] = true
		}
	}

	parts := make([]string, 0, len(levels))

	for _, level := range levels {
		alts := make([]string, 0, len(level))
		for name := range level {
			alts = append(alts, regexp.QuoteMeta(name))
		}

		sort.Strings(alts)
		parts = append(parts, "^("+strings.Join(alts, "|")+")$")
	}

	return strings.Join(parts, "/")
}
