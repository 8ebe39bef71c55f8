package controller

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
	m "gooze.dev/pkg/faultline/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
	started bool
	cancel  context.CancelFunc
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := startConfig(options)
	t.cancel = cfg.cancel

	model := newFaultModel(cfg.mode)

	if f, ok := t.output.(*os.File); ok {
		if width, height, err := term.GetSize(int(f.Fd())); err == nil {
			model = model.resize(width, height)
		}
	}

	return t.startWithModel(model)
}

func (t *TUI) startWithModel(model tea.Model) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return nil
	}

	t.program = tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	t.done = make(chan struct{})
	t.started = true

	go func(program *tea.Program, done chan struct{}) {
		defer close(done)

		final, err := program.Run()
		if err != nil {
			slog.Error("TUI stopped", "error", err)
		}

		if fm, ok := final.(faultModel); ok && fm.interrupted && t.cancel != nil {
			t.cancel()
		}
	}(t.program, t.done)

	return nil
}

// ensureStarted starts a run mode program for Display calls made before Start.
func (t *TUI) ensureStarted() {
	t.mu.Lock()
	started := t.started
	t.mu.Unlock()

	if !started {
		_ = t.startWithModel(newFaultModel(ModeRun))
	}
}

func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program != nil {
		program.Send(msg)
	}
}

// Close stops the program and waits for it to restore the terminal.
func (t *TUI) Close(_ context.Context) {
	t.mu.Lock()
	program, done := t.program, t.done
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Quit()
	<-done
}

// Wait blocks until the user quits the program.
func (t *TUI) Wait(ctx context.Context) {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done == nil {
		return
	}

	t.send(finishedMsg{})

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// DisplayRunInfo shows the size of the search.
func (t *TUI) DisplayRunInfo(_ context.Context, info m.RunInfo) {
	t.ensureStarted()
	t.send(runInfoMsg{info: info})
}

// DisplayTrial records one evaluated batch.
func (t *TUI) DisplayTrial(_ context.Context, trial m.Trial) {
	t.ensureStarted()
	t.send(trialMsg{trial: trial})
}

// DisplaySolutions shows the patch sizes of the saved solutions.
func (t *TUI) DisplaySolutions(_ context.Context, stats []m.SolutionStat) {
	t.ensureStarted()
	t.send(solutionsMsg{stats: stats})
}

// DisplayFaults switches the program to the ranked fault list.
func (t *TUI) DisplayFaults(_ context.Context, report m.Report, limit int) {
	t.ensureStarted()

	faults := report.Faults
	if limit > 0 && len(faults) > limit {
		faults = faults[:limit]
	}

	t.send(faultsMsg{report: report, faults: faults})
}
