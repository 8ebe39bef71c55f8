package model

import "time"

// Fault is a single ranked location in the fault report.
type Fault struct {
	Score      int         `json:"score" yaml:"score"`
	SourcePath Path        `json:"sourcePath" yaml:"sourcePath"`
	Location   Span        `json:"location" yaml:"location"`
	Detail     FaultDetail `json:"detail" yaml:"detail"`
}

// FaultDetail carries diagnostic data explaining a fault's rank.
type FaultDetail struct {
	Node            string   `json:"node" yaml:"node"`
	Suspiciousness  float64  `json:"suspiciousness" yaml:"suspiciousness"`
	InitialScore    float64  `json:"initialScore" yaml:"initialScore"`
	Instructions    int      `json:"instructions" yaml:"instructions"`
	Attempts        int      `json:"attempts" yaml:"attempts"`
	BestMutation    string   `json:"bestMutation,omitempty" yaml:"bestMutation,omitempty"`
	BestEvaluation  string   `json:"bestEvaluation,omitempty" yaml:"bestEvaluation,omitempty"`
	CoveringTests   []string `json:"coveringTests,omitempty" yaml:"coveringTests,omitempty"`
	ImprovedTests   []string `json:"improvedTests,omitempty" yaml:"improvedTests,omitempty"`
	WorsenedTests   []string `json:"worsenedTests,omitempty" yaml:"worsenedTests,omitempty"`
	SolutionBatches []int    `json:"solutionBatches,omitempty" yaml:"solutionBatches,omitempty"`
}

// Report is the persisted outcome of a fault localization run.
type Report struct {
	RunID     string        `json:"runId" yaml:"runId"`
	Module    Path          `json:"module" yaml:"module"`
	Started   time.Time     `json:"started" yaml:"started"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	Mutations int           `json:"mutations" yaml:"mutations"`
	Solutions int           `json:"solutions" yaml:"solutions"`
	Failing   []TestKey     `json:"failing" yaml:"failing"`
	Faults    []Fault       `json:"faults" yaml:"faults"`
}

// Trial records one mutation batch and its outcome for the run journal.
type Trial struct {
	Batch        int
	Instructions []string
	Files        []Path
	Crashed      bool
	Improved     []TestKey
	Worsened     []TestKey
	Evaluation   string
	Solution     bool
}

// RunInfo summarizes a localization run once its search space is known.
type RunInfo struct {
	RunID        string
	Module       string
	Failing      int
	Files        int
	Statements   int
	Instructions int
}

// SolutionFile is one file changed by a solution batch.
type SolutionFile struct {
	Path     Path
	Original []byte
	Mutated  []byte
}

// Solution is a mutation batch after which every originally failing test
// passed.
type Solution struct {
	Index        int
	Batch        int
	Instructions []string
	Files        []SolutionFile
}

// SolutionStat summarizes the patch of a saved solution.
type SolutionStat struct {
	Index   int
	Files   int
	Added   int
	Removed int
}
