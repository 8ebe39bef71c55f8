package model

// CoverageBlock is a single block of a Go cover profile.
type CoverageBlock struct {
	Span       Span
	Statements int
	Count      int
}

// StatementCoverage maps statement spans to hit counts for one file.
type StatementCoverage map[Span]int

// FileCoverage is the per-file statement coverage of a single test.
type FileCoverage map[Path]StatementCoverage

// TestCoverage is the statement coverage of every collected test.
type TestCoverage map[TestKey]FileCoverage

// BlockIndex remembers, per file, which cover block a statement span came from.
// It is used to remap reported locations into the instrumentation's coordinates.
type BlockIndex map[Path]map[Span]Span
