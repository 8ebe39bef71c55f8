package controller

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	m "gooze.dev/pkg/faultline/internal/model"
)

func update(t *testing.T, model faultModel, msg tea.Msg) (faultModel, tea.Cmd) {
	t.Helper()

	next, cmd := model.Update(msg)

	fm, ok := next.(faultModel)
	if !ok {
		t.Fatalf("Update() returned %T, want faultModel", next)
	}

	return fm, cmd
}

func TestFaultModel_Progress(t *testing.T) {
	model := newFaultModel(ModeRun)
	model, _ = update(t, model, runInfoMsg{info: m.RunInfo{Module: "example.com/sign", Failing: 1, Statements: 3, Instructions: 12}})

	if view := model.View(); !strings.Contains(view, "collecting coverage") {
		t.Errorf("View() before the first batch should wait for coverage, got: %s", view)
	}

	for i := 0; i < recentTrials+2; i++ {
		model, _ = update(t, model, trialMsg{trial: m.Trial{
			Batch:        i,
			Evaluation:   "+0 -1",
			Crashed:      i == 0,
			Instructions: []string{"#1 delete-statement sign.go:Decls.0.Body.List.0", "#2 change-number sign.go:Decls.0"},
		}})
	}

	if len(model.trials) != recentTrials {
		t.Errorf("trials kept = %d, want %d", len(model.trials), recentTrials)
	}

	if model.batches != recentTrials+2 || model.crashes != 1 {
		t.Errorf("batches = %d crashes = %d", model.batches, model.crashes)
	}

	view := model.View()
	for _, want := range []string{"faultline", "example.com/sign", "(+1)", "q: quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q, got: %s", want, view)
		}
	}
}

func TestFaultModel_Faults(t *testing.T) {
	model := newFaultModel(ModeView)
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 120, Height: 40})

	report := sampleReport()
	report.Faults[0].Detail.SolutionBatches = []int{3}
	report.Faults[0].Detail.BestMutation = "#4 change-binary-operator sign.go:Decls.0.Body.List.1.Cond -> >"
	report.Faults[0].Detail.BestEvaluation = "+1 -0"
	report.Faults[0].Detail.CoveringTests = []string{"example.com/sign/TestSignZero"}

	model, _ = update(t, model, faultsMsg{report: report, faults: report.Faults})
	model, _ = update(t, model, solutionsMsg{stats: []m.SolutionStat{{Index: 0, Files: 1, Added: 1, Removed: 1}}})

	view := model.View()
	for _, want := range []string{"sign.go:9:2", "fix", "Solutions: #0 1 file(s) +1 -1", "enter: details"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q, got: %s", want, view)
		}
	}

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if !model.details {
		t.Fatal("enter should toggle details")
	}

	view = model.View()
	for _, want := range []string{"best #4 change-binary-operator", "covered by: example.com/sign/TestSignZero", "solution batches [3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("details missing %q, got: %s", want, view)
		}
	}
}

func TestFaultModel_NoFaults(t *testing.T) {
	model, _ := update(t, newFaultModel(ModeView), faultsMsg{report: m.Report{}})

	if view := model.View(); !strings.Contains(view, "No fault locations found.") {
		t.Errorf("View() should report an empty list, got: %s", view)
	}
}

func TestFaultModel_Quit(t *testing.T) {
	t.Run("interrupts a running search", func(t *testing.T) {
		model, cmd := update(t, newFaultModel(ModeRun), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

		if cmd == nil {
			t.Fatal("q should quit")
		}

		if !model.interrupted {
			t.Error("quitting before the search finished should interrupt it")
		}
	})

	t.Run("finished search", func(t *testing.T) {
		model, _ := update(t, newFaultModel(ModeRun), finishedMsg{})
		model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEsc})

		if model.interrupted {
			t.Error("quitting a finished search is not an interruption")
		}
	})
}

func TestTruncate(t *testing.T) {
	if got := truncate("sign.go:9:2", 40); got != "sign.go:9:2" {
		t.Errorf("truncate() = %q", got)
	}

	if got := truncate("internal/very/long/path/sign.go", 10); got != "…h/sign.go" {
		t.Errorf("truncate() = %q", got)
	}
}

func TestTUI_CloseBeforeStart(t *testing.T) {
	tui := NewTUI(nil)

	// Close and Wait without a program return immediately.
	tui.Close(context.Background())
	tui.Wait(context.Background())
}
