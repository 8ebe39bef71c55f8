package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	m "gooze.dev/pkg/faultline/internal/model"
)

// StackEvaluation lists the failing tests whose failure moved further into
// (Improvement) or back out of (Degradation) their test function.
type StackEvaluation struct {
	Improvement []m.TestKey
	Degradation []m.TestKey
}

// MutationEvaluation is the observed effect of one mutation batch. A crashed
// evaluation carries no test outcomes. Evaluations are not modified after
// they are created.
type MutationEvaluation struct {
	Crashed       bool
	Instructions  []int
	Improved      []m.TestKey
	Worsened      []m.TestKey
	Unknown       []m.TestKey
	ErrorsChanged []m.TestKey
	Stack         StackEvaluation
}

// NewCrashedEvaluation records an abnormal run of instructions.
func NewCrashedEvaluation(instructions []int) *MutationEvaluation {
	return &MutationEvaluation{Crashed: true, Instructions: instructions}
}

var neutralEvaluation = &MutationEvaluation{}

// CompareEvaluations orders evaluations from bad to good. A crash ranks above
// everything else; normal evaluations compare by net improved tests, net
// stack improvement, changed errors and finally by fewer regressions.
func CompareEvaluations(a, b *MutationEvaluation) int {
	if a.Crashed || b.Crashed {
		return compareBool(a.Crashed, b.Crashed)
	}

	keys := func(e *MutationEvaluation) [4]int {
		return [4]int{
			len(e.Improved) - len(e.Worsened),
			len(e.Stack.Improvement) - len(e.Stack.Degradation),
			len(e.ErrorsChanged),
			-(len(e.Worsened) + len(e.Stack.Degradation)),
		}
	}

	ka, kb := keys(a), keys(b)
	for i := range ka {
		if c := compareInt(ka[i], kb[i]); c != 0 {
			return c
		}
	}

	return 0
}

// Category buckets an evaluation history for scheduling.
type Category int

// Categories, from least to most promising.
const (
	CategoryBad Category = iota
	CategoryNeutral
	CategoryUntried
	CategoryGood
	CategoryCrash
)

func (c Category) String() string {
	switch c {
	case CategoryBad:
		return "bad"
	case CategoryNeutral:
		return "neutral"
	case CategoryUntried:
		return "untried"
	case CategoryGood:
		return "good"
	case CategoryCrash:
		return "crash"
	default:
		return "unknown"
	}
}

// Categorize classifies an evaluation; nil means no evaluation yet.
func Categorize(e *MutationEvaluation) Category {
	switch {
	case e == nil:
		return CategoryUntried
	case e.Crashed:
		return CategoryCrash
	}

	switch c := CompareEvaluations(e, neutralEvaluation); {
	case c > 0:
		return CategoryGood
	case c < 0:
		return CategoryBad
	default:
		return CategoryNeutral
	}
}

// Interesting reports whether the evaluation warrants a closer look: a crash
// or a net improvement.
func (e *MutationEvaluation) Interesting() bool {
	c := Categorize(e)
	return c == CategoryCrash || c == CategoryGood
}

// Fixes reports whether every key in failing passed after the mutation.
func (e *MutationEvaluation) Fixes(failing []m.TestKey, after m.TestResults) bool {
	if e.Crashed || len(failing) == 0 {
		return false
	}

	for _, key := range failing {
		result, ok := after[key]
		if !ok || !result.Passed {
			return false
		}
	}

	return true
}

func (e *MutationEvaluation) String() string {
	if e == nil {
		return "untried"
	}

	if e.Crashed {
		return "crashed"
	}

	parts := []string{
		fmt.Sprintf("+%d", len(e.Improved)),
		fmt.Sprintf("-%d", len(e.Worsened)),
	}

	if n := len(e.Stack.Improvement); n > 0 {
		parts = append(parts, fmt.Sprintf("stack+%d", n))
	}

	if n := len(e.Stack.Degradation); n > 0 {
		parts = append(parts, fmt.Sprintf("stack-%d", n))
	}

	if n := len(e.ErrorsChanged); n > 0 {
		parts = append(parts, fmt.Sprintf("errors~%d", n))
	}

	if n := len(e.Unknown); n > 0 {
		parts = append(parts, fmt.Sprintf("unknown %d", n))
	}

	return strings.Join(parts, " ")
}

// StackDistance measures how much further a failing test got after a
// mutation. The second result is false when no distance is available.
type StackDistance func(before, after m.TestResult) (int, bool)

// Evaluate compares the results of a run before and after a mutation.
func Evaluate(instructions []int, before, after m.TestResults, distance StackDistance) *MutationEvaluation {
	e := &MutationEvaluation{Instructions: instructions}

	for _, key := range sortedKeys(before) {
		prev := before[key]

		next, ok := after[key]
		if !ok {
			if failed(prev) {
				e.Worsened = append(e.Worsened, key)
			} else {
				e.Unknown = append(e.Unknown, key)
			}

			continue
		}

		if prev.Skipped || next.Skipped {
			continue
		}

		if prev.Passed != next.Passed {
			if next.Passed {
				e.Improved = append(e.Improved, key)
			} else {
				e.Worsened = append(e.Worsened, key)
			}

			continue
		}

		if prev.Passed {
			continue
		}

		d, known := 0, false
		if distance != nil {
			d, known = distance(prev, next)
		}

		switch {
		case known && d > 0:
			e.Stack.Improvement = append(e.Stack.Improvement, key)
		case known && d < 0:
			e.Stack.Degradation = append(e.Stack.Degradation, key)
		case failureText(prev.Output) != failureText(next.Output):
			e.ErrorsChanged = append(e.ErrorsChanged, key)
		}
	}

	for _, key := range sortedKeys(after) {
		if _, ok := before[key]; !ok {
			e.Unknown = append(e.Unknown, key)
		}
	}

	return e
}

var (
	testStatusRe = regexp.MustCompile(`^\s*(=== (RUN|PAUSE|CONT|NAME)|--- (FAIL|PASS|SKIP):)`)
	goroutineRe  = regexp.MustCompile(`goroutine \d+`)
	addressRe    = regexp.MustCompile(`0x[0-9a-fA-F]+`)
)

// failureText reduces test output to the failure itself. Harness status
// lines carry timings and are dropped; goroutine ids and addresses differ
// between runs and are blanked.
func failureText(output string) string {
	lines := strings.Split(output, "\n")
	kept := lines[:0]

	for _, line := range lines {
		if testStatusRe.MatchString(line) {
			continue
		}

		line = goroutineRe.ReplaceAllString(line, "goroutine _")
		kept = append(kept, addressRe.ReplaceAllString(line, "0x_"))
	}

	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func failed(r m.TestResult) bool {
	return !r.Passed && !r.Skipped
}

func sortedKeys(results m.TestResults) []m.TestKey {
	keys := make([]m.TestKey, 0, len(results))
	for key := range results {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}

func compareInt(a, b int) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}
