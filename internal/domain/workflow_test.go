package domain_test

import (
	"context"
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gooze.dev/pkg/faultline/internal/adapter"
	adaptermocks "gooze.dev/pkg/faultline/internal/adapter/mocks"
	"gooze.dev/pkg/faultline/internal/controller"
	controllermocks "gooze.dev/pkg/faultline/internal/controller/mocks"
	"gooze.dev/pkg/faultline/internal/domain"
	domainmocks "gooze.dev/pkg/faultline/internal/domain/mocks"
	m "gooze.dev/pkg/faultline/internal/model"
)

const exampleModule = "example.com/sign"

func exampleResults(src []byte) m.TestResults {
	s := string(src)
	negative := strings.Contains(s, "if x < 0 {") && strings.Contains(s, "return -1")
	fixed := negative && strings.Contains(s, "if x > 0 {") && strings.Contains(s, "return 1\n") && strings.Contains(s, "return 0\n")

	result := func(name string, passed bool) m.TestResult {
		key := m.TestKey(exampleModule + "/" + name)
		return m.TestResult{Key: key, Package: exampleModule, Name: name, Passed: passed}
	}

	out := m.TestResults{}
	for _, r := range []m.TestResult{
		result("TestSignZero", fixed),
		result("TestSignPositive", true),
		result("TestSignNegative", negative),
	} {
		out[r.Key] = r
	}

	return out
}

// exampleCoverage maps each sign test to the statements of Sign it runs.
func exampleCoverage(t *testing.T, src []byte) m.TestCoverage {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "sign.go", src, 0)
	require.NoError(t, err)

	fn, ok := file.Decls[0].(*ast.FuncDecl)
	require.True(t, ok)

	span := func(n ast.Node) m.Span {
		start, end := fset.Position(n.Pos()), fset.Position(n.End())
		return m.Span{
			Start: m.Position{Line: start.Line, Column: start.Column},
			End:   m.Position{Line: end.Line, Column: end.Column},
		}
	}

	negativeIf := fn.Body.List[0].(*ast.IfStmt)
	positiveIf := fn.Body.List[1].(*ast.IfStmt)

	return m.TestCoverage{
		exampleModule + "/TestSignZero": {"sign.go": {
			span(negativeIf): 1, span(positiveIf): 1, span(positiveIf.Body.List[0]): 1,
		}},
		exampleModule + "/TestSignPositive": {"sign.go": {
			span(negativeIf): 1, span(positiveIf): 1, span(positiveIf.Body.List[0]): 1,
		}},
		exampleModule + "/TestSignNegative": {"sign.go": {
			span(negativeIf): 1, span(negativeIf.Body.List[0]): 1,
		}},
	}
}

type workflowFixture struct {
	ctx          context.Context
	ws           domain.Workspace
	output       m.Path
	fs           *adapter.LocalSourceFSAdapter
	store        *adapter.LocalReportStore
	coverage     *adaptermocks.MockCoverageAdapter
	ui           *controllermocks.MockUI
	orchestrator *domainmocks.MockOrchestrator
	workflow     domain.Workflow
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()

	ctx := context.Background()
	fs := adapter.NewLocalSourceFSAdapter()
	root := m.Path(t.TempDir())
	require.NoError(t, fs.CopyDir(ctx, "../../examples/sign", root))

	f := &workflowFixture{
		ctx:          ctx,
		ws:           domain.Workspace{Source: root, Root: root, ModulePath: exampleModule, Timeout: time.Minute},
		output:       m.Path(filepath.Join(t.TempDir(), "out")),
		fs:           fs,
		store:        adapter.NewLocalReportStore(fs),
		coverage:     adaptermocks.NewMockCoverageAdapter(t),
		ui:           controllermocks.NewMockUI(t),
		orchestrator: domainmocks.NewMockOrchestrator(t),
	}

	f.workflow = domain.NewWorkflow(fs, adapter.NewLocalGoFileAdapter(false), f.coverage, f.store, f.ui, f.orchestrator)

	return f
}

func (f *workflowFixture) args() domain.LocalizeArgs {
	return domain.LocalizeArgs{
		Root:         ".",
		Output:       f.output,
		InPlace:      true,
		Timeout:      time.Minute,
		ReportFormat: adapter.FormatJSON,
		Finish:       domain.FinishConfig{StopOnSolution: true, MaxMutations: 500, StaleStreak: 500},
	}
}

func (f *workflowFixture) source(t *testing.T) []byte {
	t.Helper()

	src, err := f.fs.ReadFile(f.ctx, f.fs.JoinPath(f.ctx, string(f.ws.Root), "sign.go"))
	require.NoError(t, err)

	return src
}

func (f *workflowFixture) expectWorkspace() {
	f.orchestrator.EXPECT().
		PrepareWorkspace(mock.Anything, m.Path("."), domain.WorkspaceOptions{InPlace: true, Timeout: time.Minute}).
		Return(f.ws, nil)
	f.orchestrator.EXPECT().Cleanup(mock.Anything, f.ws).Return()
}

func (f *workflowFixture) expectSession() {
	f.ui.EXPECT().Start(mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.ui.EXPECT().Close(mock.Anything).Return()
}

func TestWorkflow_Localize(t *testing.T) {
	f := newWorkflowFixture(t)
	original := f.source(t)

	f.expectSession()
	f.expectWorkspace()

	var packages [][]string

	f.orchestrator.EXPECT().RunTests(mock.Anything, f.ws, mock.Anything).
		RunAndReturn(func(_ context.Context, _ domain.Workspace, pkgs []string) (m.Run, error) {
			packages = append(packages, pkgs)
			return m.Run{Status: m.RunCompleted, Results: exampleResults(f.source(t))}, nil
		})

	f.coverage.EXPECT().Collect(mock.Anything, mock.Anything).Return(exampleCoverage(t, original), nil, nil).Once()

	f.ui.EXPECT().DisplayRunInfo(mock.Anything, mock.MatchedBy(func(info m.RunInfo) bool {
		return info.Failing == 1 && info.Statements == 3
	})).Return().Once()
	f.ui.EXPECT().DisplayTrial(mock.Anything, mock.Anything).Return().Maybe()
	f.ui.EXPECT().DisplaySolutions(mock.Anything, mock.MatchedBy(func(stats []m.SolutionStat) bool {
		return len(stats) == 1
	})).Return()
	f.ui.EXPECT().DisplayFaults(mock.Anything, mock.Anything, 0).Return()
	f.ui.EXPECT().Wait(mock.Anything).Return()

	report, err := f.workflow.Localize(f.ctx, f.args())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Solutions)
	require.NotEmpty(t, report.Faults)
	assert.Equal(t, "IfStmt Decls.0.Body.List.1", report.Faults[0].Detail.Node)
	assert.Equal(t, original, f.source(t))

	require.GreaterOrEqual(t, len(packages), 2)
	assert.Equal(t, []string{"./..."}, packages[0])
	assert.Equal(t, []string{exampleModule}, packages[1])
}

func TestWorkflow_Localize_NoFailingTests(t *testing.T) {
	f := newWorkflowFixture(t)

	f.expectSession()
	f.expectWorkspace()

	results := exampleResults(f.source(t))
	zero := results[exampleModule+"/TestSignZero"]
	zero.Passed = true
	results[zero.Key] = zero

	f.orchestrator.EXPECT().RunTests(mock.Anything, f.ws, []string{"./..."}).
		Return(m.Run{Status: m.RunCompleted, Results: results}, nil).Once()

	f.ui.EXPECT().DisplayRunInfo(mock.Anything, mock.Anything).Return()
	f.ui.EXPECT().DisplaySolutions(mock.Anything, mock.Anything).Return()
	f.ui.EXPECT().DisplayFaults(mock.Anything, mock.Anything, 0).Return()
	f.ui.EXPECT().Wait(mock.Anything).Return()

	report, err := f.workflow.Localize(f.ctx, f.args())
	require.NoError(t, err)
	assert.Empty(t, report.Faults)
	assert.Empty(t, report.Failing)
}

func TestWorkflow_Localize_InitialRunBroken(t *testing.T) {
	f := newWorkflowFixture(t)

	f.expectSession()
	f.expectWorkspace()

	f.orchestrator.EXPECT().RunTests(mock.Anything, f.ws, mock.Anything).
		Return(m.Run{Status: m.RunBuildFailed}, nil).Once()

	_, err := f.workflow.Localize(f.ctx, f.args())
	require.ErrorIs(t, err, domain.ErrInitialRunFailed)
}

func TestWorkflow_Localize_WorkspaceError(t *testing.T) {
	f := newWorkflowFixture(t)

	f.expectSession()
	f.orchestrator.EXPECT().PrepareWorkspace(mock.Anything, mock.Anything, mock.Anything).
		Return(domain.Workspace{}, errors.New("no go.mod"))

	_, err := f.workflow.Localize(f.ctx, f.args())
	require.ErrorContains(t, err, "no go.mod")
}

func TestWorkflow_Localize_UIError(t *testing.T) {
	f := newWorkflowFixture(t)

	f.ui.EXPECT().Start(mock.Anything, mock.Anything, mock.Anything).Return(errors.New("no terminal"))

	_, err := f.workflow.Localize(f.ctx, f.args())
	require.ErrorContains(t, err, "no terminal")
}

func TestWorkflow_Localize_InvalidExclude(t *testing.T) {
	f := newWorkflowFixture(t)

	f.expectSession()
	f.expectWorkspace()

	args := f.args()
	args.Exclude = []string{"("}

	_, err := f.workflow.Localize(f.ctx, args)
	require.ErrorContains(t, err, "invalid exclude pattern")
}

func TestWorkflow_View(t *testing.T) {
	f := newWorkflowFixture(t)

	saved := m.Report{
		RunID:   "run-1",
		Module:  exampleModule,
		Failing: []m.TestKey{exampleModule + "/TestSignZero"},
		Faults: []m.Fault{
			{Score: 0, SourcePath: "sign.go"},
			{Score: 1, SourcePath: "sign.go"},
		},
	}

	_, err := f.store.SaveReport(f.ctx, f.output, saved, adapter.FormatJSON)
	require.NoError(t, err)

	f.ui.EXPECT().Start(mock.Anything, mock.Anything).Return(nil)
	f.ui.EXPECT().Close(mock.Anything).Return()
	f.ui.EXPECT().DisplayRunInfo(mock.Anything, m.RunInfo{RunID: "run-1", Module: exampleModule, Failing: 1}).Return()
	f.ui.EXPECT().DisplaySolutions(mock.Anything, mock.Anything).Return()
	f.ui.EXPECT().DisplayFaults(mock.Anything, mock.MatchedBy(func(r m.Report) bool {
		return r.RunID == "run-1" && len(r.Faults) == 2
	}), 5).Return()
	f.ui.EXPECT().Wait(mock.Anything).Return()

	require.NoError(t, f.workflow.View(f.ctx, domain.ViewArgs{Reports: f.output, Limit: 5}))
}

func TestWorkflow_View_MissingReport(t *testing.T) {
	f := newWorkflowFixture(t)

	err := f.workflow.View(f.ctx, domain.ViewArgs{Reports: f.output})
	require.ErrorContains(t, err, "load report")
}

func TestWorkflow_StartOptions(t *testing.T) {
	f := newWorkflowFixture(t)

	f.ui.EXPECT().Start(mock.Anything, mock.Anything).
		Run(func(_ context.Context, options ...controller.StartOption) {
			assert.Len(t, options, 1)
		}).
		Return(errors.New("stop"))

	_, err := f.store.SaveReport(f.ctx, f.output, m.Report{RunID: "run-2"}, adapter.FormatJSON)
	require.NoError(t, err)

	require.Error(t, f.workflow.View(f.ctx, domain.ViewArgs{Reports: f.output}))
}
