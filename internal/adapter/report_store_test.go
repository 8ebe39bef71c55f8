package adapter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	m "gooze.dev/pkg/faultline/internal/model"
)

func sampleReport() m.Report {
	return m.Report{
		RunID:     "run-1",
		Module:    "example.com/calc",
		Started:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Duration:  3 * time.Second,
		Mutations: 4,
		Solutions: 1,
		Failing:   []m.TestKey{"example.com/calc/TestSign"},
		Faults: []m.Fault{{
			Score:      0,
			SourcePath: "calc.go",
			Location:   span(5, 2, 7, 3),
			Detail:     m.FaultDetail{Node: "*ast.IfStmt Decls[0].Body.List[0]", Suspiciousness: 1.5},
		}},
	}
}

func TestLocalReportStore_SaveAndLoadReport(t *testing.T) {
	store := NewLocalReportStore(NewLocalSourceFSAdapter())
	ctx := context.Background()

	for _, format := range []string{FormatJSON, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			dir := m.Path(filepath.Join(t.TempDir(), "out"))

			path, err := store.SaveReport(ctx, dir, sampleReport(), format)
			if err != nil {
				t.Fatalf("SaveReport() error = %v", err)
			}

			if !strings.HasSuffix(string(path), "."+format) {
				t.Fatalf("SaveReport() path = %s", path)
			}

			for _, from := range []m.Path{path, dir} {
				got, err := store.LoadReport(ctx, from)
				if err != nil {
					t.Fatalf("LoadReport(%s) error = %v", from, err)
				}

				want := sampleReport()
				if got.RunID != want.RunID || len(got.Faults) != 1 || got.Faults[0].Location != want.Faults[0].Location ||
					got.Faults[0].Detail.Node != want.Faults[0].Detail.Node {
					t.Fatalf("LoadReport(%s) = %+v", from, got)
				}

				if !got.Started.Equal(want.Started) || got.Duration != want.Duration {
					t.Fatalf("LoadReport(%s) times = %v %v", from, got.Started, got.Duration)
				}
			}
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		_, err := store.SaveReport(ctx, m.Path(t.TempDir()), sampleReport(), "xml")
		if !errors.Is(err, ErrUnknownFormat) {
			t.Fatalf("SaveReport() error = %v, want ErrUnknownFormat", err)
		}
	})

	t.Run("missing report", func(t *testing.T) {
		if _, err := store.LoadReport(ctx, m.Path(t.TempDir())); err == nil {
			t.Fatalf("LoadReport() expected error for empty dir")
		}
	})
}

func TestLocalReportStore_SaveMutationCount(t *testing.T) {
	store := NewLocalReportStore(NewLocalSourceFSAdapter())
	dir := t.TempDir()

	if err := store.SaveMutationCount(context.Background(), m.Path(dir), 12); err != nil {
		t.Fatalf("SaveMutationCount() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, MutationsFile))
	if err != nil {
		t.Fatalf("reading count: %v", err)
	}

	if string(data) != "12\n" {
		t.Fatalf("mutation count = %q", string(data))
	}
}

func TestLocalReportStore_Solutions(t *testing.T) {
	store := NewLocalReportStore(NewLocalSourceFSAdapter())
	ctx := context.Background()
	dir := m.Path(t.TempDir())

	solution := m.Solution{
		Index:        0,
		Batch:        3,
		Instructions: []string{"#2 force-consequent calc/calc.go:Decls[0].Body.List[0]"},
		Files: []m.SolutionFile{{
			Path:     m.Path(filepath.Join("calc", "calc.go")),
			Original: []byte("package calc\n\nfunc f(x int) bool {\n\treturn x > 0\n}\n"),
			Mutated:  []byte("package calc\n\nfunc f(x int) bool {\n\treturn x >= 0\n}\n"),
		}},
	}

	target, err := store.SaveSolution(ctx, dir, solution)
	if err != nil {
		t.Fatalf("SaveSolution() error = %v", err)
	}

	copied, err := os.ReadFile(filepath.Join(string(target), "calc", "calc.go"))
	if err != nil || string(copied) != string(solution.Files[0].Mutated) {
		t.Fatalf("solution copy = %q, err = %v", copied, err)
	}

	patch, err := os.ReadFile(filepath.Join(string(target), SolutionPatch))
	if err != nil {
		t.Fatalf("reading patch: %v", err)
	}

	if !strings.Contains(string(patch), "-\treturn x > 0") || !strings.Contains(string(patch), "+\treturn x >= 0") {
		t.Fatalf("patch = %s", patch)
	}

	stats, err := store.SolutionStats(ctx, dir)
	if err != nil {
		t.Fatalf("SolutionStats() error = %v", err)
	}

	want := m.SolutionStat{Index: 0, Files: 1, Added: 1, Removed: 1}
	if len(stats) != 1 || stats[0] != want {
		t.Fatalf("SolutionStats() = %+v, want %+v", stats, want)
	}

	if err := store.ClearSolutions(ctx, dir); err != nil {
		t.Fatalf("ClearSolutions() error = %v", err)
	}

	stats, err = store.SolutionStats(ctx, dir)
	if err != nil || len(stats) != 0 {
		t.Fatalf("SolutionStats() after clear = %v, %v", stats, err)
	}
}

func TestLocalReportStore_Journal(t *testing.T) {
	store := NewLocalReportStore(NewLocalSourceFSAdapter())
	ctx := context.Background()
	dir := m.Path(t.TempDir())

	journal, err := store.OpenJournal(ctx, dir)
	if err != nil {
		t.Fatalf("OpenJournal() error = %v", err)
	}

	trials := []m.Trial{
		{Batch: 0, Instructions: []string{"#1"}, Crashed: true},
		{Batch: 1, Instructions: []string{"#2"}, Improved: []m.TestKey{"example.com/calc/TestSign"}, Solution: true},
	}

	if err := journal.AppendBatch(trials); err != nil {
		t.Fatalf("AppendBatch() error = %v", err)
	}

	if err := journal.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	got, err := store.LoadTrials(ctx, dir)
	if err != nil {
		t.Fatalf("LoadTrials() error = %v", err)
	}

	if len(got) != 2 || !got[0].Crashed || !got[1].Solution || got[1].Improved[0] != trials[1].Improved[0] {
		t.Fatalf("LoadTrials() = %+v", got)
	}
}

func TestPatchStat(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		stat, err := PatchStat(nil)
		if err != nil || stat != (m.SolutionStat{}) {
			t.Fatalf("PatchStat(nil) = %+v, %v", stat, err)
		}
	})

	t.Run("unchanged file", func(t *testing.T) {
		text, err := UnifiedDiff("a.go", []byte("x\n"), []byte("x\n"))
		if err != nil || text != "" {
			t.Fatalf("UnifiedDiff() = %q, %v", text, err)
		}
	})
}
