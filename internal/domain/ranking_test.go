package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gooze.dev/pkg/faultline/internal/domain/mutagens"
	m "gooze.dev/pkg/faultline/internal/model"
)

type rankedFixture struct {
	*signFixture
	idx    *CoverageIndex
	tests  map[m.TestKey]*TestInformation
	ranker *Ranker
}

func newRankedFixture(t *testing.T) *rankedFixture {
	t.Helper()

	f := newSignFixture(t)
	idx := f.index(nil)
	kept := AddInstructions(idx, f.instructions)

	return &rankedFixture{
		signFixture: f,
		idx:         idx,
		tests:       BuildTestInformation(f.original, idx),
		ranker:      NewRanker(f.catalog, BuildNodeInformation(kept)),
	}
}

func faultPaths(faults []m.Fault) []string {
	out := make([]string, len(faults))
	for i, fault := range faults {
		out[i] = fault.Detail.Node
	}

	return out
}

func TestRank_Untried(t *testing.T) {
	f := newRankedFixture(t)

	faults := Rank(f.ranker, f.idx.Objects(), f.tests, RankOptions{})
	require.Len(t, faults, 3)

	for i, fault := range faults {
		assert.Equal(t, i, fault.Score)
		assert.Equal(t, m.Path("sign.go"), fault.SourcePath)
		assert.Equal(t, []string{string(failingZero)}, fault.Detail.CoveringTests)
		assert.Positive(t, fault.Detail.Instructions)
		assert.Zero(t, fault.Detail.Attempts)
	}

	// The statement also run by a passing test starts least suspicious.
	assert.Equal(t, "IfStmt "+negativeIf, faults[2].Detail.Node)
}

func TestRank_ImprovingMutationFirst(t *testing.T) {
	f := newRankedFixture(t)

	fix := f.instruction(t, mutagens.ChangeBinaryOperator, positiveIf+".Cond")
	e := &MutationEvaluation{Instructions: []int{fix.ID}, Improved: []m.TestKey{failingZero}}
	fix.Record(e)
	Observe(f.tests, e)

	broken := f.instruction(t, mutagens.ChangeBinaryOperator, negativeIf+".Cond")
	bad := &MutationEvaluation{Instructions: []int{broken.ID}, Worsened: []m.TestKey{passingNegative}}
	broken.Record(bad)
	Observe(f.tests, bad)

	faults := Rank(f.ranker, f.idx.Objects(), f.tests, RankOptions{Solutions: map[int][]int{fix.ID: {4, 2}}})
	require.Len(t, faults, 3)

	top := faults[0]
	assert.Equal(t, "IfStmt "+positiveIf, top.Detail.Node)
	assert.Equal(t, f.span(t, positiveIf), top.Location)
	assert.Equal(t, []int{2, 4}, top.Detail.SolutionBatches)
	assert.Equal(t, []string{string(failingZero)}, top.Detail.ImprovedTests)
	assert.Empty(t, top.Detail.WorsenedTests)
	assert.Equal(t, 1, top.Detail.Attempts)
	assert.Contains(t, top.Detail.BestMutation, "change-binary-operator")
	assert.Equal(t, "+1 -0", top.Detail.BestEvaluation)

	for _, fault := range faults {
		assert.False(t, math.IsInf(fault.Detail.Suspiciousness, 0))
		assert.False(t, math.IsNaN(fault.Detail.Suspiciousness))
	}
}

func TestRank_CoverageCoordinates(t *testing.T) {
	f := newSignFixture(t)
	block := m.Span{Start: m.Position{Line: 3, Column: 22}, End: m.Position{Line: 4, Column: 11}}
	idx := f.index(m.BlockIndex{"sign.go": {f.span(t, negativeIf): block}})
	AddInstructions(idx, f.instructions)

	ranker := NewRanker(f.catalog, nil)
	tests := BuildTestInformation(f.original, idx)

	faults := Rank(ranker, idx.Objects(), tests, RankOptions{CoverageCoordinates: true})

	found := false

	for _, fault := range faults {
		if fault.Detail.Node == "IfStmt "+negativeIf {
			found = true

			assert.Equal(t, block, fault.Location)
		}
	}

	assert.True(t, found)
}

func TestRank_WithoutInstructionsLast(t *testing.T) {
	f := newSignFixture(t)
	idx := f.index(nil)
	tests := BuildTestInformation(f.original, idx)

	// Only the comparison of the second if is mutable.
	AddInstructions(idx, []*Instruction{f.instruction(t, mutagens.ChangeBinaryOperator, positiveIf+".Cond")})

	faults := Rank(NewRanker(f.catalog, nil), idx.Objects(), tests, RankOptions{})
	require.Len(t, faults, 3)
	assert.Equal(t, "IfStmt "+positiveIf, faults[0].Detail.Node)
	assert.Empty(t, faults[2].Detail.BestMutation)
}

func TestFinite(t *testing.T) {
	assert.InDelta(t, math.MaxFloat64, finite(math.Inf(1)), 0)
	assert.InDelta(t, -math.MaxFloat64, finite(math.Inf(-1)), 0)
	assert.Zero(t, finite(math.NaN()))
	assert.InDelta(t, 1.5, finite(1.5), 0)
}
