package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "gooze.dev/pkg/faultline/internal/model"
)

func testInfos(keys ...m.TestKey) map[m.TestKey]*TestInformation {
	out := make(map[m.TestKey]*TestInformation, len(keys))
	for _, key := range keys {
		out[key] = NewTestInformation(m.TestResult{Key: key})
	}

	return out
}

func TestObserve_CountsReactions(t *testing.T) {
	tests := testInfos("a", "b", "c", "d")

	Observe(tests, &MutationEvaluation{
		Improved:      []m.TestKey{"a"},
		Worsened:      []m.TestKey{"b"},
		ErrorsChanged: []m.TestKey{"c"},
		Unknown:       []m.TestKey{"d"},
	})

	assert.Equal(t, 1, tests["a"].Fixes)
	assert.Equal(t, 1, tests["b"].Breaks)
	assert.Equal(t, 1, tests["c"].ErrorChanges)

	for _, key := range []m.TestKey{"a", "b", "c"} {
		assert.Equal(t, 1, tests[key].Total, key)
		assert.Equal(t, 0, tests[key].Unchanged, key)
	}

	assert.Equal(t, 0, tests["d"].Total, "unknown outcomes are not counted")
}

func TestObserve_UnchangedAndCrashes(t *testing.T) {
	tests := testInfos("a")

	Observe(tests, &MutationEvaluation{})
	Observe(tests, NewCrashedEvaluation([]int{1}))

	assert.Equal(t, 1, tests["a"].Total)
	assert.Equal(t, 1, tests["a"].Unchanged)
}

func TestSuspiciousness_FirstFixCountsFully(t *testing.T) {
	tests := testInfos("a")
	e := &MutationEvaluation{Improved: []m.TestKey{"a"}}

	assert.InDelta(t, 1.0, Suspiciousness([]*MutationEvaluation{e}, tests), 1e-9)

	Observe(tests, e)

	assert.InDelta(t, 0.5, Suspiciousness([]*MutationEvaluation{e}, tests), 1e-9, "a test that was fixed before is damped")
}

func TestSuspiciousness_RegressionsSubtract(t *testing.T) {
	tests := testInfos("a", "b")
	Observe(tests, &MutationEvaluation{})

	e := &MutationEvaluation{Improved: []m.TestKey{"a"}, Worsened: []m.TestKey{"b"}}

	// a: 1/(0+1) = 1. b: (1 + 1 unchanged) / (1 total + 1) = 1.
	assert.InDelta(t, 0.0, Suspiciousness([]*MutationEvaluation{e}, tests), 1e-9)
}

func TestSuspiciousness_IgnoresCrashesAndUntried(t *testing.T) {
	tests := testInfos("a")
	evaluations := []*MutationEvaluation{nil, NewCrashedEvaluation(nil)}

	assert.Zero(t, Suspiciousness(evaluations, tests))
}

func TestSuspiciousness_StackAndErrorSignals(t *testing.T) {
	tests := testInfos("a", "b")
	e := &MutationEvaluation{
		Stack:         StackEvaluation{Improvement: []m.TestKey{"a"}},
		ErrorsChanged: []m.TestKey{"b"},
	}

	assert.InDelta(t, 2.0, Suspiciousness([]*MutationEvaluation{e}, tests), 1e-9)
}

func TestDStar(t *testing.T) {
	require.InDelta(t, 4.0/3.0, DStar(2, 1, 4), 1e-9)
	require.True(t, math.IsInf(DStar(3, 0, 3), 1))
	require.Zero(t, DStar(0, 0, 0))
	require.InDelta(t, 0.0, DStar(0, 5, 2), 1e-9)
}
