package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"gooze.dev/pkg/faultline/internal/adapter"
	"gooze.dev/pkg/faultline/internal/controller"
	"gooze.dev/pkg/faultline/internal/domain/mutagens"
	m "gooze.dev/pkg/faultline/internal/model"
)

// ErrAbortedByEngine is returned when the engine refuses to continue after
// an abnormal test run.
var ErrAbortedByEngine = errors.New("search aborted after abnormal test run")

// LocalizeArgs holds the arguments of a localization run.
type LocalizeArgs struct {
	// Root is any path inside the module under investigation.
	Root m.Path
	// Packages are the go test package patterns of the initial run.
	Packages []string
	Output   m.Path
	InPlace  bool
	Exclude  []string
	Parallel int
	// Timeout bounds every test run; zero keeps the runner's default.
	Timeout time.Duration

	BatchSize           int
	RetryTimeouts       bool
	Finish              FinishConfig
	ReportFormat        string
	CoverageCoordinates bool
	Catalog             *mutagens.Catalog
}

// ViewArgs holds the arguments for displaying a saved report.
type ViewArgs struct {
	Reports m.Path
	// Limit caps the number of faults shown; 0 shows all.
	Limit int
}

// Workflow drives the commands of the tool.
type Workflow interface {
	Localize(ctx context.Context, args LocalizeArgs) (m.Report, error)
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.ReportStore
	controller.UI
	Orchestrator

	fs       adapter.SourceFSAdapter
	files    adapter.GoFileAdapter
	coverage adapter.CoverageAdapter
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	goFileAdapter adapter.GoFileAdapter,
	coverageAdapter adapter.CoverageAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	orchestrator Orchestrator,
) Workflow {
	return &workflow{
		ReportStore:  reportStore,
		UI:           ui,
		Orchestrator: orchestrator,
		fs:           fsAdapter,
		files:        goFileAdapter,
		coverage:     coverageAdapter,
	}
}

// Localize runs the test suite, searches for fault locations by mutating the
// covered statements, and writes the ranked report to args.Output.
func (w *workflow) Localize(ctx context.Context, args LocalizeArgs) (m.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := w.Start(ctx, controller.WithRunMode(), controller.WithCancel(cancel)); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return m.Report{}, err
	}

	defer w.Close(ctx)

	ws, err := w.PrepareWorkspace(ctx, args.Root, WorkspaceOptions{InPlace: args.InPlace, Timeout: args.Timeout})
	if err != nil {
		return m.Report{}, err
	}

	defer w.Cleanup(context.WithoutCancel(ctx), ws)

	engine, err := NewEngine(EngineConfig{
		Root:                ws.Root,
		ModulePath:          ws.ModulePath,
		Output:              args.Output,
		Exclude:             args.Exclude,
		Parallel:            args.Parallel,
		BatchSize:           args.BatchSize,
		ReportFormat:        args.ReportFormat,
		CoverageCoordinates: args.CoverageCoordinates,
		RetryTimeouts:       args.RetryTimeouts,
		Catalog:             args.Catalog,
		Finish:              DefaultFinish(args.Finish),
		OnMutation: func(_ context.Context, files []m.Path) {
			slog.Debug("mutation written", "files", files)
		},
		OnTrial: w.DisplayTrial,
	}, w.fs, w.files, w.coverage, w.ReportStore)
	if err != nil {
		return m.Report{}, err
	}

	if err := engine.Start(ctx); err != nil {
		return m.Report{}, err
	}

	searchErr := w.search(ctx, engine, ws, args.Packages)

	report, completeErr := engine.OnComplete(context.WithoutCancel(ctx), nil)
	if err := errors.Join(searchErr, completeErr); err != nil {
		slog.Error("Localization failed", "error", err)
		return report, err
	}

	// An interrupted search still shows what it found.
	display := context.WithoutCancel(ctx)

	stats, err := w.SolutionStats(display, args.Output)
	if err != nil {
		slog.Warn("cannot read solution stats", "error", err)
	}

	w.DisplaySolutions(display, stats)
	w.DisplayFaults(display, report, 0)
	w.Wait(display)

	return report, nil
}

// search runs the harness loop: every finished run is handed to the engine,
// which answers with the tests to rerun on its next mutation.
func (w *workflow) search(ctx context.Context, engine Engine, ws Workspace, patterns []string) error {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	started := time.Now()

	run, err := w.RunTests(ctx, ws, patterns)
	if err != nil {
		return err
	}

	slog.Info("initial run finished", "status", run.Status, "tests", len(run.Results), "elapsed", time.Since(started))

	if run.Status.Abnormal() {
		_, err := engine.OnAbnormalExit(ctx, run)
		return err
	}

	packagesOf := packageIndex(run.Results)
	results := run.Results
	announced := false

	for {
		keys, err := engine.OnRunFinished(ctx, results)
		if err != nil {
			return err
		}

		if !announced {
			announced = true
			w.DisplayRunInfo(ctx, engine.Info())
		}

		if keys == nil {
			return nil
		}

		if err := ctx.Err(); err != nil {
			slog.Warn("localization interrupted", "error", err)
			return nil
		}

		results, err = w.rerun(ctx, engine, ws, packagesOf(keys))
		if ctx.Err() != nil {
			slog.Warn("localization interrupted", "error", ctx.Err())
			return nil
		}

		if err != nil {
			return err
		}
	}
}

// rerun runs packages until the engine accepts the outcome. A nil result
// means the run crashed and the engine already recorded it.
func (w *workflow) rerun(ctx context.Context, engine Engine, ws Workspace, packages []string) (m.TestResults, error) {
	for {
		run, err := w.RunTests(ctx, ws, packages)
		if err != nil || ctx.Err() != nil {
			return nil, err
		}

		if !run.Status.Abnormal() {
			return run.Results, nil
		}

		decision, err := engine.OnAbnormalExit(ctx, run)
		if err != nil {
			return nil, err
		}

		switch {
		case decision.Rerun:
			continue
		case decision.Allow:
			return nil, nil
		default:
			return nil, fmt.Errorf("%w: %s", ErrAbortedByEngine, run.Status)
		}
	}
}

// packageIndex maps test keys to the import paths of their packages.
func packageIndex(results m.TestResults) func(keys []m.TestKey) []string {
	byKey := make(map[m.TestKey]string, len(results))
	for key, result := range results {
		byKey[key] = result.Package
	}

	return func(keys []m.TestKey) []string {
		seen := make(map[string]bool)

		var packages []string

		for _, key := range keys {
			pkg, ok := byKey[key]
			if !ok || seen[pkg] {
				continue
			}

			seen[pkg] = true
			packages = append(packages, pkg)
		}

		sort.Strings(packages)

		return packages
	}
}

// View loads a saved report and displays it.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.LoadReport(ctx, args.Reports)
	if err != nil {
		slog.Error("Failed to load report", "path", args.Reports, "error", err)
		return fmt.Errorf("load report: %w", err)
	}

	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	w.DisplayRunInfo(ctx, m.RunInfo{
		RunID:   report.RunID,
		Module:  string(report.Module),
		Failing: len(report.Failing),
	})

	if info, err := w.fs.FileInfo(ctx, args.Reports); err == nil && info.IsDir() {
		stats, err := w.SolutionStats(ctx, args.Reports)
		if err != nil {
			slog.Warn("cannot read solution stats", "error", err)
		}

		w.DisplaySolutions(ctx, stats)
	}

	w.DisplayFaults(ctx, report, args.Limit)
	w.Wait(ctx)

	return nil
}
