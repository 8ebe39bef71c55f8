package domain

import m "gooze.dev/pkg/faultline/internal/model"

// TestInformation accumulates how often a test reacted to mutations.
type TestInformation struct {
	Key           m.TestKey
	Fixes         int
	Breaks        int
	ErrorChanges  int
	StackImproved int
	StackDegraded int
	Unchanged     int
	Total         int
	Original      m.TestResult
	Coverage      map[*CoveragePathObj]bool
}

// NewTestInformation starts the history of a test from its original result.
func NewTestInformation(original m.TestResult) *TestInformation {
	return &TestInformation{
		Key:      original.Key,
		Original: original,
		Coverage: make(map[*CoveragePathObj]bool),
	}
}

// Observe folds an evaluation into the counters of every test in tests.
func Observe(tests map[m.TestKey]*TestInformation, e *MutationEvaluation) {
	if e.Crashed {
		return
	}

	changed := make(map[m.TestKey]bool)
	bump := func(keys []m.TestKey, counter func(info *TestInformation)) {
		for _, key := range keys {
			if info, ok := tests[key]; ok {
				counter(info)
				changed[key] = true
			}
		}
	}

	bump(e.Improved, func(info *TestInformation) { info.Fixes++ })
	bump(e.Worsened, func(info *TestInformation) { info.Breaks++ })
	bump(e.ErrorsChanged, func(info *TestInformation) { info.ErrorChanges++ })
	bump(e.Stack.Improvement, func(info *TestInformation) { info.StackImproved++ })
	bump(e.Stack.Degradation, func(info *TestInformation) { info.StackDegraded++ })

	unknown := make(map[m.TestKey]bool, len(e.Unknown))
	for _, key := range e.Unknown {
		unknown[key] = true
	}

	for key, info := range tests {
		if unknown[key] {
			continue
		}

		info.Total++

		if !changed[key] {
			info.Unchanged++
		}
	}
}

// Suspiciousness scores a set of evaluations. Each test's contribution is
// damped by how informative that test has already been, so a location that
// moves many tests outranks one that keeps moving the same test.
func Suspiciousness(evaluations []*MutationEvaluation, tests map[m.TestKey]*TestInformation) float64 {
	var score float64

	for _, e := range evaluations {
		if e == nil || e.Crashed {
			continue
		}

		for _, key := range e.Improved {
			score += weight(tests[key], func(i *TestInformation) float64 {
				return 1 / float64(i.Fixes+1)
			})
		}

		for _, key := range e.Stack.Improvement {
			score += weight(tests[key], func(i *TestInformation) float64 {
				return 1 / float64(i.Fixes+i.StackImproved+1)
			})
		}

		for _, key := range e.ErrorsChanged {
			score += weight(tests[key], func(i *TestInformation) float64 {
				return 1 / float64(i.Fixes+i.StackImproved+i.ErrorChanges+1)
			})
		}

		for _, key := range e.Stack.Degradation {
			score -= weight(tests[key], func(i *TestInformation) float64 {
				return float64(1+i.Unchanged+i.StackDegraded) / float64(i.Total+1)
			})
		}

		for _, key := range e.Worsened {
			score -= weight(tests[key], func(i *TestInformation) float64 {
				return float64(1+i.Unchanged+i.StackDegraded+i.Breaks) / float64(i.Total+1)
			})
		}
	}

	return score
}

func weight(info *TestInformation, f func(*TestInformation) float64) float64 {
	if info == nil {
		return 1
	}

	return f(info)
}
