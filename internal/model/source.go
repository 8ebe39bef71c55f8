// Package model defines the data structures shared by the fault localization engine.
package model

import "fmt"

// Path represents a file system path.
type Path string

// Position is a 1-based line/column location in a source file.
type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// Before reports whether p sorts strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}

	return p.Column < other.Column
}

// Span is a half-open source range.
type Span struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end" yaml:"end"`
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return !other.Start.Before(s.Start) && !s.End.Before(other.End)
}

func (s Span) String() string {
	return fmt.Sprintf("%d.%d,%d.%d", s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// SpanKey identifies a span inside a specific file.
type SpanKey struct {
	File Path
	Span Span
}

func (k SpanKey) String() string {
	return fmt.Sprintf("%s:%s", k.File, k.Span)
}

// File represents a source code file.
type File struct {
	FullPath  Path
	ShortPath Path
	Hash      string
}
