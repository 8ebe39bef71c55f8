package domain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gooze.dev/pkg/faultline/internal/adapter"
	m "gooze.dev/pkg/faultline/internal/model"
)

// Workspace is the module a localization run mutates and tests.
type Workspace struct {
	// Source is the root of the module the user pointed at.
	Source m.Path
	// Root is where mutations are written and tests run. It equals Source
	// for in-place runs.
	Root       m.Path
	ModulePath string
	Scratch    bool
	// Timeout bounds every test run; zero keeps the runner's default.
	Timeout time.Duration
}

// WorkspaceOptions controls how a workspace is prepared.
type WorkspaceOptions struct {
	InPlace bool
	Timeout time.Duration
}

// Orchestrator prepares the workspace of a run and executes its tests.
type Orchestrator interface {
	PrepareWorkspace(ctx context.Context, start m.Path, opts WorkspaceOptions) (Workspace, error)
	RunTests(ctx context.Context, ws Workspace, packages []string) (m.Run, error)
	Cleanup(ctx context.Context, ws Workspace)
}

type orchestrator struct {
	fsAdapter   adapter.SourceFSAdapter
	testAdapter adapter.TestRunnerAdapter
}

// NewOrchestrator constructs an Orchestrator backed by the provided
// filesystem and test runner adapters.
func NewOrchestrator(fsAdapter adapter.SourceFSAdapter, testAdapter adapter.TestRunnerAdapter) Orchestrator {
	return &orchestrator{
		fsAdapter:   fsAdapter,
		testAdapter: testAdapter,
	}
}

// PrepareWorkspace resolves the module containing start and, unless inPlace
// is set, copies it to a scratch directory.
func (o *orchestrator) PrepareWorkspace(ctx context.Context, start m.Path, opts WorkspaceOptions) (Workspace, error) {
	projectRoot, err := o.fsAdapter.FindProjectRoot(ctx, start)
	if err != nil {
		slog.Error("Failed to find project root", "start", start, "error", err)
		return Workspace{}, fmt.Errorf("failed to find project root: %w", err)
	}

	modulePath, err := o.fsAdapter.ModulePath(ctx, projectRoot)
	if err != nil {
		slog.Error("Failed to read module path", "projectRoot", projectRoot, "error", err)
		return Workspace{}, fmt.Errorf("failed to read module path: %w", err)
	}

	ws := Workspace{Source: projectRoot, Root: projectRoot, ModulePath: modulePath, Timeout: opts.Timeout}
	if opts.InPlace {
		return ws, nil
	}

	tmpDir, err := o.fsAdapter.CreateTempDir(ctx, "faultline-workspace-*")
	if err != nil {
		slog.Error("Failed to create temp dir", "error", err)
		return Workspace{}, fmt.Errorf("failed to create temp dir: %w", err)
	}

	ws.Root, ws.Scratch = tmpDir, true

	if err := o.fsAdapter.CopyDir(ctx, projectRoot, tmpDir); err != nil {
		slog.Error("Failed to copy project to temp dir", "projectRoot", projectRoot, "tmpDir", tmpDir, "error", err)
		o.Cleanup(ctx, ws)

		return Workspace{}, fmt.Errorf("failed to copy project: %w", err)
	}

	slog.Debug("workspace prepared", "source", projectRoot, "root", tmpDir, "module", modulePath)

	return ws, nil
}

// RunTests runs the tests of packages inside the workspace.
func (o *orchestrator) RunTests(ctx context.Context, ws Workspace, packages []string) (m.Run, error) {
	run, err := o.testAdapter.Run(ctx, adapter.TestRequest{Dir: ws.Root, Packages: packages, Timeout: ws.Timeout})
	if err != nil {
		slog.Error("Failed to run tests", "root", ws.Root, "packages", packages, "error", err)
		return m.Run{}, fmt.Errorf("failed to run tests: %w", err)
	}

	return run, nil
}

// Cleanup removes a scratch workspace, logging errors if cleanup fails.
func (o *orchestrator) Cleanup(ctx context.Context, ws Workspace) {
	if !ws.Scratch || ws.Root == "" {
		return
	}

	if err := o.fsAdapter.RemoveAll(ctx, ws.Root); err != nil {
		slog.Error("Failed to cleanup temp dir", "tmpDir", ws.Root, "error", err)
	}
}
