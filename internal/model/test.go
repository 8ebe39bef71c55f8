package model

import "time"

// TestKey uniquely identifies a test as <import path>/<TestName>[/subtest].
type TestKey string

// StackFrame is a file/line reference extracted from test output.
type StackFrame struct {
	File   Path
	Line   int
	Column int
}

// TestResult is the outcome of a single test in a single run.
type TestResult struct {
	Key     TestKey
	Package string
	Name    string
	// File is the _test.go file that declares the test, when known.
	File    Path
	Passed  bool
	Skipped bool
	Stack   []StackFrame
	Output  string
	Elapsed time.Duration
}

// TestResults maps test keys to their outcome for one run.
type TestResults map[TestKey]TestResult

// Failing returns the keys of the failed tests in the result set.
func (r TestResults) Failing() []TestKey {
	keys := make([]TestKey, 0)

	for key, result := range r {
		if !result.Passed && !result.Skipped {
			keys = append(keys, key)
		}
	}

	return keys
}

// RunStatus classifies how a harness run ended.
type RunStatus int

const (
	// RunCompleted indicates the test binary ran to completion.
	RunCompleted RunStatus = iota
	// RunBuildFailed indicates the package did not compile.
	RunBuildFailed
	// RunTimedOut indicates the run exceeded its deadline.
	RunTimedOut
	// RunAborted indicates the test process exited without reporting results.
	RunAborted
)

func (s RunStatus) String() string {
	switch s {
	case RunCompleted:
		return "completed"
	case RunBuildFailed:
		return "build failed"
	case RunTimedOut:
		return "timed out"
	case RunAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Abnormal reports whether the run should be treated as a crash.
func (s RunStatus) Abnormal() bool {
	return s != RunCompleted
}

// Run bundles the results of one harness invocation.
type Run struct {
	Status  RunStatus
	Results TestResults
	Output  string
}
