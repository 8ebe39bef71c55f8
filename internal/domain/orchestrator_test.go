package domain_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gooze.dev/pkg/faultline/internal/adapter"
	adaptermocks "gooze.dev/pkg/faultline/internal/adapter/mocks"
	"gooze.dev/pkg/faultline/internal/domain"
	m "gooze.dev/pkg/faultline/internal/model"
)

func TestOrchestrator_PrepareWorkspace(t *testing.T) {
	ctx := context.Background()

	t.Run("in place", func(t *testing.T) {
		fs := adaptermocks.NewMockSourceFSAdapter(t)
		fs.EXPECT().FindProjectRoot(ctx, m.Path("./pkg")).Return(m.Path("/proj"), nil)
		fs.EXPECT().ModulePath(ctx, m.Path("/proj")).Return("example.com/proj", nil)

		o := domain.NewOrchestrator(fs, adaptermocks.NewMockTestRunnerAdapter(t))

		ws, err := o.PrepareWorkspace(ctx, "./pkg", domain.WorkspaceOptions{InPlace: true, Timeout: time.Minute})
		require.NoError(t, err)
		assert.Equal(t, domain.Workspace{
			Source:     "/proj",
			Root:       "/proj",
			ModulePath: "example.com/proj",
			Timeout:    time.Minute,
		}, ws)

		// Nothing to remove for an in-place workspace.
		o.Cleanup(ctx, ws)
	})

	t.Run("scratch copy", func(t *testing.T) {
		fs := adaptermocks.NewMockSourceFSAdapter(t)
		fs.EXPECT().FindProjectRoot(ctx, m.Path("/proj")).Return(m.Path("/proj"), nil)
		fs.EXPECT().ModulePath(ctx, m.Path("/proj")).Return("example.com/proj", nil)
		fs.EXPECT().CreateTempDir(ctx, "faultline-workspace-*").Return(m.Path("/tmp/ws"), nil)
		fs.EXPECT().CopyDir(ctx, m.Path("/proj"), m.Path("/tmp/ws")).Return(nil)
		fs.EXPECT().RemoveAll(ctx, m.Path("/tmp/ws")).Return(nil).Once()

		o := domain.NewOrchestrator(fs, adaptermocks.NewMockTestRunnerAdapter(t))

		ws, err := o.PrepareWorkspace(ctx, "/proj", domain.WorkspaceOptions{})
		require.NoError(t, err)
		assert.Equal(t, m.Path("/proj"), ws.Source)
		assert.Equal(t, m.Path("/tmp/ws"), ws.Root)
		assert.True(t, ws.Scratch)

		o.Cleanup(ctx, ws)
	})

	t.Run("copy failure removes the scratch dir", func(t *testing.T) {
		fs := adaptermocks.NewMockSourceFSAdapter(t)
		fs.EXPECT().FindProjectRoot(ctx, m.Path("/proj")).Return(m.Path("/proj"), nil)
		fs.EXPECT().ModulePath(ctx, m.Path("/proj")).Return("example.com/proj", nil)
		fs.EXPECT().CreateTempDir(ctx, mock.Anything).Return(m.Path("/tmp/ws"), nil)
		fs.EXPECT().CopyDir(ctx, m.Path("/proj"), m.Path("/tmp/ws")).Return(errors.New("disk full"))
		fs.EXPECT().RemoveAll(ctx, m.Path("/tmp/ws")).Return(nil)

		o := domain.NewOrchestrator(fs, adaptermocks.NewMockTestRunnerAdapter(t))

		_, err := o.PrepareWorkspace(ctx, "/proj", domain.WorkspaceOptions{})
		require.ErrorContains(t, err, "failed to copy project")
	})

	t.Run("no module", func(t *testing.T) {
		fs := adaptermocks.NewMockSourceFSAdapter(t)
		fs.EXPECT().FindProjectRoot(ctx, m.Path("/nowhere")).Return(m.Path(""), errors.New("go.mod not found"))

		o := domain.NewOrchestrator(fs, adaptermocks.NewMockTestRunnerAdapter(t))

		_, err := o.PrepareWorkspace(ctx, "/nowhere", domain.WorkspaceOptions{})
		require.ErrorContains(t, err, "failed to find project root")
	})

	t.Run("unreadable go.mod", func(t *testing.T) {
		fs := adaptermocks.NewMockSourceFSAdapter(t)
		fs.EXPECT().FindProjectRoot(ctx, m.Path("/proj")).Return(m.Path("/proj"), nil)
		fs.EXPECT().ModulePath(ctx, m.Path("/proj")).Return("", errors.New("no module directive"))

		o := domain.NewOrchestrator(fs, adaptermocks.NewMockTestRunnerAdapter(t))

		_, err := o.PrepareWorkspace(ctx, "/proj", domain.WorkspaceOptions{})
		require.ErrorContains(t, err, "failed to read module path")
	})
}

func TestOrchestrator_RunTests(t *testing.T) {
	ctx := context.Background()
	ws := domain.Workspace{Root: "/tmp/ws", Timeout: 30 * time.Second}

	t.Run("forwards the workspace", func(t *testing.T) {
		runner := adaptermocks.NewMockTestRunnerAdapter(t)
		runner.EXPECT().Run(ctx, adapter.TestRequest{
			Dir:      "/tmp/ws",
			Packages: []string{"./..."},
			Timeout:  30 * time.Second,
		}).Return(m.Run{Status: m.RunCompleted, Results: m.TestResults{"p/TestA": {Passed: true}}}, nil)

		o := domain.NewOrchestrator(adaptermocks.NewMockSourceFSAdapter(t), runner)

		run, err := o.RunTests(ctx, ws, []string{"./..."})
		require.NoError(t, err)
		assert.Len(t, run.Results, 1)
	})

	t.Run("runner error", func(t *testing.T) {
		runner := adaptermocks.NewMockTestRunnerAdapter(t)
		runner.EXPECT().Run(ctx, mock.Anything).Return(m.Run{}, errors.New("go not found"))

		o := domain.NewOrchestrator(adaptermocks.NewMockSourceFSAdapter(t), runner)

		_, err := o.RunTests(ctx, ws, []string{"./..."})
		require.ErrorContains(t, err, "failed to run tests")
	})
}
