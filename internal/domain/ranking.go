package domain

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"sort"

	m "gooze.dev/pkg/faultline/internal/model"
)

// RankOptions controls how the fault list is produced.
type RankOptions struct {
	// CoverageCoordinates reports cover block spans instead of statement
	// spans.
	CoverageCoordinates bool
	// Solutions maps instruction ids to the solution batches they were in.
	Solutions map[int][]int
}

// CompareCoverage orders coverage objects from least to most suspicious.
// Objects with a promising instruction outrank those without, and objects
// without instructions rank last. Between objects with instructions the
// best instruction decides, then the number of nodes per mutation attempt
// (an untried statement counts as infinitely many), then suspiciousness.
func (r *Ranker) CompareCoverage(a, b *CoveragePathObj, tests map[m.TestKey]*TestInformation) int {
	if c := compareInt(level(a), level(b)); c != 0 {
		return c
	}

	if len(a.Instructions) > 0 && len(b.Instructions) > 0 {
		if c := r.CompareInstructions(r.best(a), r.best(b)); c != 0 {
			return c
		}

		// More nodes per attempt (less explored) ranks more suspicious.
		if c := compareFloat(nodesPerAttempt(a), nodesPerAttempt(b)); c != 0 {
			return c
		}
	}

	if c := compareFloat(Suspiciousness(evaluationsOf(a), tests), Suspiciousness(evaluationsOf(b), tests)); c != 0 {
		return c
	}

	if c := compareFloat(a.InitialScore, b.InitialScore); c != 0 {
		return c
	}

	switch {
	case a.Key() < b.Key():
		return 1
	case a.Key() > b.Key():
		return -1
	default:
		return 0
	}
}

func level(o *CoveragePathObj) int {
	if len(o.Instructions) == 0 {
		return 0
	}

	for _, in := range o.Instructions {
		if Categorize(in.Best()) >= CategoryUntried {
			return 2
		}
	}

	return 1
}

func (r *Ranker) best(o *CoveragePathObj) *Instruction {
	best := o.Instructions[0]
	for _, in := range o.Instructions[1:] {
		if r.CompareInstructions(in, best) > 0 {
			best = in
		}
	}

	return best
}

func nodesPerAttempt(o *CoveragePathObj) float64 {
	attempts := 0
	for _, in := range o.Instructions {
		attempts += in.Attempts
	}

	if attempts == 0 {
		return math.Inf(1)
	}

	return float64(o.Nodes) / float64(attempts)
}

// evaluationsOf collects the distinct evaluations of the object's
// instructions.
func evaluationsOf(o *CoveragePathObj) []*MutationEvaluation {
	seen := make(map[*MutationEvaluation]bool)

	var out []*MutationEvaluation

	for _, in := range o.Instructions {
		for _, e := range in.History() {
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}

	return out
}

// Rank sorts coverage objects and returns the fault list, most suspicious
// first, each scored with its position.
func Rank(r *Ranker, objects []*CoveragePathObj, tests map[m.TestKey]*TestInformation, opts RankOptions) []m.Fault {
	sorted := slices.Clone(objects)
	sort.SliceStable(sorted, func(i, j int) bool {
		return r.CompareCoverage(sorted[i], sorted[j], tests) < 0
	})
	slices.Reverse(sorted)

	faults := make([]m.Fault, 0, len(sorted))

	for i, obj := range sorted {
		location := obj.Span
		if opts.CoverageCoordinates {
			location = obj.BlockSpan
		}

		faults = append(faults, m.Fault{
			Score:      i,
			SourcePath: obj.File,
			Location:   location,
			Detail:     r.detail(obj, tests, opts),
		})
	}

	return faults
}

func (r *Ranker) detail(obj *CoveragePathObj, tests map[m.TestKey]*TestInformation, opts RankOptions) m.FaultDetail {
	evaluations := evaluationsOf(obj)

	detail := m.FaultDetail{
		Node:           fmt.Sprintf("%s %s", obj.Kind, obj.Path),
		Suspiciousness: finite(Suspiciousness(evaluations, tests)),
		InitialScore:   finite(obj.InitialScore),
		Instructions:   len(obj.Instructions),
	}

	for _, key := range obj.TestKeys() {
		detail.CoveringTests = append(detail.CoveringTests, string(key))
	}

	improved := make(map[m.TestKey]bool)
	worsened := make(map[m.TestKey]bool)

	for _, e := range evaluations {
		for _, key := range e.Improved {
			improved[key] = true
		}

		for _, key := range e.Worsened {
			worsened[key] = true
		}
	}

	detail.ImprovedTests = sortedStrings(improved)
	detail.WorsenedTests = sortedStrings(worsened)

	batches := make(map[int]bool)

	for _, in := range obj.Instructions {
		detail.Attempts += in.Attempts

		for _, batch := range opts.Solutions[in.ID] {
			batches[batch] = true
		}
	}

	for batch := range batches {
		detail.SolutionBatches = append(detail.SolutionBatches, batch)
	}

	sort.Ints(detail.SolutionBatches)

	if len(obj.Instructions) > 0 {
		best := r.best(obj)
		detail.BestMutation = best.String()
		detail.BestEvaluation = best.Best().String()
	}

	return detail
}

func sortedStrings(set map[m.TestKey]bool) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, string(key))
	}

	sort.Strings(out)

	if len(out) == 0 {
		return nil
	}

	return out
}

// finite keeps reports encodable as JSON.
func finite(f float64) float64 {
	switch {
	case math.IsInf(f, 1):
		return math.MaxFloat64
	case math.IsInf(f, -1):
		return -math.MaxFloat64
	case math.IsNaN(f):
		return 0
	default:
		return f
	}
}

func kindOf(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t.Name()
}
