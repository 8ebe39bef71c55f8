package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gooze.dev/pkg/faultline/internal/domain"
	domainmocks "gooze.dev/pkg/faultline/internal/domain/mocks"
	"gooze.dev/pkg/faultline/internal/domain/mutagens"
	m "gooze.dev/pkg/faultline/internal/model"
)

func newTestRunCmd(t *testing.T) (*cobra.Command, *domainmocks.MockWorkflow) {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newRunCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	t.Cleanup(func() { workflow = originalWorkflow })

	return cmd, mockWorkflow
}

func logFileArgs(t *testing.T) []string {
	return []string{"--log-file", filepath.Join(t.TempDir(), "faultline.log")}
}

func TestRunCmd_Defaults(t *testing.T) {
	cmd, mockWorkflow := newTestRunCmd(t)

	mockWorkflow.On("Localize", mock.Anything, mock.MatchedBy(func(args domain.LocalizeArgs) bool {
		return args.Root == m.Path(".") &&
			len(args.Packages) == 0 &&
			args.Output == m.Path(".faultline") &&
			args.Timeout == 5*time.Minute &&
			args.BatchSize == 1 &&
			args.RetryTimeouts &&
			!args.InPlace &&
			args.Finish.StopOnSolution &&
			args.Finish.StaleStreak == 3 &&
			args.ReportFormat == "json" &&
			args.Catalog != nil &&
			len(args.Catalog.Operators()) == len(mutagens.Builtin())
	})).Return(m.Report{}, nil)

	cmd.SetArgs(append([]string{"run"}, logFileArgs(t)...))
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestRunCmd_PackagesAndParallel(t *testing.T) {
	cmd, mockWorkflow := newTestRunCmd(t)

	mockWorkflow.On("Localize", mock.Anything, mock.MatchedBy(func(args domain.LocalizeArgs) bool {
		return args.Parallel == 2 &&
			len(args.Packages) == 3 &&
			args.Packages[0] == "./cmd" &&
			args.Packages[1] == "./pkg" &&
			args.Packages[2] == "./internal"
	})).Return(m.Report{}, nil)

	cmd.SetArgs(append([]string{"run", "--parallel", "2", "./cmd", "./pkg", "./internal"}, logFileArgs(t)...))
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestRunCmd_WithExcludePatterns(t *testing.T) {
	cmd, mockWorkflow := newTestRunCmd(t)

	mockWorkflow.On("Localize", mock.Anything, mock.MatchedBy(func(args domain.LocalizeArgs) bool {
		return len(args.Exclude) == 2 &&
			args.Exclude[0] == "^generated_" &&
			args.Exclude[1] == "_gen\\.go$"
	})).Return(m.Report{}, nil)

	cmd.SetArgs(append([]string{"run", "-x", "^generated_", "-x", "_gen\\.go$", "./..."}, logFileArgs(t)...))
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestRunCmd_SearchBudgets(t *testing.T) {
	cmd, mockWorkflow := newTestRunCmd(t)

	mockWorkflow.On("Localize", mock.Anything, mock.MatchedBy(func(args domain.LocalizeArgs) bool {
		return args.Timeout == 30*time.Second &&
			args.Finish.MaxDuration == 10*time.Minute &&
			args.Finish.MaxMutations == 50 &&
			!args.Finish.StopOnSolution &&
			args.BatchSize == 4 &&
			args.InPlace &&
			args.ReportFormat == "yaml" &&
			args.CoverageCoordinates
	})).Return(m.Report{}, nil)

	cmd.SetArgs(append([]string{
		"run",
		"--timeout", "30s",
		"--max-duration", "10m",
		"--max-mutations", "50",
		"--stop-on-solution=false",
		"--batch-size", "4",
		"--in-place",
		"--format", "yaml",
		"--coordinates",
	}, logFileArgs(t)...))
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestRunCmd_OperatorSelection(t *testing.T) {
	cmd, mockWorkflow := newTestRunCmd(t)

	mockWorkflow.On("Localize", mock.Anything, mock.MatchedBy(func(args domain.LocalizeArgs) bool {
		ops := args.Catalog.Operators()
		return len(ops) == 2 &&
			ops[0].Type == mutagens.ForceConsequent &&
			ops[1].Type == mutagens.DeleteStatement
	})).Return(m.Report{}, nil)

	cmd.SetArgs(append([]string{"run", "--operators", "force-consequent,delete-statement"}, logFileArgs(t)...))
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestRunCmd_UnknownOperator(t *testing.T) {
	cmd, _ := newTestRunCmd(t)

	cmd.SetArgs(append([]string{"run", "--operators", "flip-everything"}, logFileArgs(t)...))
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flip-everything")
}

func TestRunCmd_PropagatesWorkflowError(t *testing.T) {
	cmd, mockWorkflow := newTestRunCmd(t)

	mockWorkflow.On("Localize", mock.Anything, mock.Anything).Return(m.Report{}, errors.New("boom"))

	cmd.SetArgs(append([]string{"run"}, logFileArgs(t)...))
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestBuildCatalog(t *testing.T) {
	all, err := buildCatalog(nil)
	require.NoError(t, err)
	assert.Len(t, all.Operators(), len(mutagens.Builtin()))

	some, err := buildCatalog([]string{" change-number "})
	require.NoError(t, err)
	require.Len(t, some.Operators(), 1)
	assert.Equal(t, mutagens.ChangeNumber, some.Operators()[0].Type)
	assert.Positive(t, some.Importance(mutagens.ChangeNumber))

	_, err = buildCatalog([]string{"nope"})
	require.Error(t, err)
}
