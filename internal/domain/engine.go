package domain

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"log/slog"
	"regexp"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gooze.dev/pkg/faultline/internal/adapter"
	"gooze.dev/pkg/faultline/internal/domain/mutagens"
	m "gooze.dev/pkg/faultline/internal/model"
	"gooze.dev/pkg/faultline/pkg"
)

// Engine errors.
var (
	ErrMissingBackup    = errors.New("no backup for mutated file")
	ErrEmptyBatch       = errors.New("batch touches no files")
	ErrNotInitialized   = errors.New("engine not initialized")
	ErrInitialRunFailed = errors.New("initial test run ended abnormally")
)

// ExitDecision tells the harness how to continue after an abnormal run.
type ExitDecision struct {
	// Rerun asks for the same tests to run again on the same mutation.
	Rerun bool
	// Allow lets the search continue with the next batch.
	Allow bool
}

// EngineConfig configures a localization run.
type EngineConfig struct {
	// Root is the module directory the tests run in and the mutations are
	// written to.
	Root m.Path
	// ModulePath is the module path declared by Root/go.mod.
	ModulePath string
	// Output receives the report, the journal and the solutions.
	Output m.Path
	// Exclude holds regular expressions over module-relative file paths.
	Exclude []string
	// Parallel bounds coverage collection and parsing; 0 means unbounded.
	Parallel            int
	BatchSize           int
	ReportFormat        string
	CoverageCoordinates bool
	// RetryTimeouts reruns a timed out batch once before counting it as a
	// crash.
	RetryTimeouts bool
	Catalog       *mutagens.Catalog
	Finish        FinishFunc
	// OnMutation is called after a batch is written, before tests rerun.
	OnMutation func(ctx context.Context, files []m.Path)
	// OnTrial is called after every evaluated batch.
	OnTrial func(ctx context.Context, trial m.Trial)
}

// Engine drives the mutation search through the test harness callbacks.
// OnRunFinished returns the tests to rerun after the next mutation, or nil
// when the search is over.
type Engine interface {
	Start(ctx context.Context) error
	OnRunFinished(ctx context.Context, results m.TestResults) ([]m.TestKey, error)
	OnAbnormalExit(ctx context.Context, run m.Run) (ExitDecision, error)
	OnComplete(ctx context.Context, results m.TestResults) (m.Report, error)
	Info() m.RunInfo
}

type engine struct {
	cfg      EngineConfig
	exclude  []*regexp.Regexp
	fs       adapter.SourceFSAdapter
	files    adapter.GoFileAdapter
	coverage adapter.CoverageAdapter
	store    adapter.ReportStore

	runID   string
	started time.Time
	journal pkg.FileSpill[m.Trial]

	initialized bool
	original    m.TestResults
	scope       m.TestResults
	failing     []m.TestKey
	sources     map[m.Path][]byte
	units       map[m.Path]*mutagens.Unit

	index     *CoverageIndex
	nodes     map[NodeKey]*NodeInformation
	tests     map[m.TestKey]*TestInformation
	ranker    *Ranker
	scheduler *Scheduler
	locator   *StackLocator
	info      m.RunInfo

	backupDir m.Path
	backups   map[m.Path]bool
	written   map[m.Path][]byte

	inflight  *Block
	members   []*Instruction
	batch     int
	retried   bool
	mutations int
	solutions int
	solved    map[int][]int
}

// NewEngine creates an engine over the module at cfg.Root.
func NewEngine(
	cfg EngineConfig,
	fs adapter.SourceFSAdapter,
	files adapter.GoFileAdapter,
	coverage adapter.CoverageAdapter,
	store adapter.ReportStore,
) (Engine, error) {
	exclude := make([]*regexp.Regexp, 0, len(cfg.Exclude))

	for _, pattern := range cfg.Exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		exclude = append(exclude, re)
	}

	if cfg.Catalog == nil {
		cfg.Catalog = mutagens.NewCatalog()
	}

	if cfg.Finish == nil {
		cfg.Finish = DefaultFinish(FinishConfig{StopOnSolution: true, StaleStreak: 3})
	}

	return &engine{
		cfg:      cfg,
		exclude:  exclude,
		fs:       fs,
		files:    files,
		coverage: coverage,
		store:    store,
		sources:  make(map[m.Path][]byte),
		units:    make(map[m.Path]*mutagens.Unit),
		backups:  make(map[m.Path]bool),
		written:  make(map[m.Path][]byte),
		solved:   make(map[int][]int),
	}, nil
}

// Start prepares the output directory, the journal and the backup directory.
func (e *engine) Start(ctx context.Context) error {
	e.runID = uuid.NewString()
	e.started = time.Now()

	if err := e.fs.MkdirAll(ctx, e.cfg.Output); err != nil {
		slog.Error("Failed to create output dir", "output", e.cfg.Output, "error", err)
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	if err := e.store.ClearSolutions(ctx, e.cfg.Output); err != nil {
		return err
	}

	journal, err := e.store.OpenJournal(ctx, e.cfg.Output)
	if err != nil {
		slog.Error("Failed to open journal", "output", e.cfg.Output, "error", err)
		return fmt.Errorf("failed to open journal: %w", err)
	}

	e.journal = journal

	backupDir, err := e.fs.CreateTempDir(ctx, "faultline-backup-*")
	if err != nil {
		slog.Error("Failed to create backup dir", "error", err)
		return fmt.Errorf("failed to create backup dir: %w", err)
	}

	e.backupDir = backupDir
	e.info.RunID = e.runID
	e.info.Module = e.cfg.ModulePath

	slog.Info("localization started", "run", e.runID, "root", e.cfg.Root, "module", e.cfg.ModulePath)

	return nil
}

// OnRunFinished folds the results of the previous batch (or initializes the
// search from the first, unmutated run) and writes the next batch.
func (e *engine) OnRunFinished(ctx context.Context, results m.TestResults) ([]m.TestKey, error) {
	if e.backupDir == "" {
		return nil, ErrNotInitialized
	}

	if !e.initialized {
		return e.initialize(ctx, results)
	}

	if e.inflight != nil {
		if err := e.fold(ctx, results); err != nil {
			return nil, err
		}
	}

	return e.next(ctx)
}

// OnAbnormalExit records a crash for the batch under test. Abnormal exits of
// the unmutated run are fatal.
func (e *engine) OnAbnormalExit(ctx context.Context, run m.Run) (ExitDecision, error) {
	if !e.initialized {
		slog.Error("Initial test run ended abnormally", "status", run.Status)
		return ExitDecision{}, fmt.Errorf("%w: %s", ErrInitialRunFailed, run.Status)
	}

	if e.inflight == nil {
		return ExitDecision{Allow: true}, nil
	}

	if run.Status == m.RunTimedOut && e.cfg.RetryTimeouts && !e.retried {
		e.retried = true
		slog.Info("retrying timed out batch", "batch", e.batch)

		return ExitDecision{Rerun: true, Allow: true}, nil
	}

	slog.Debug("batch crashed", "batch", e.batch, "status", run.Status)

	block, members := e.inflight, e.members
	e.inflight, e.members = nil, nil

	ev := NewCrashedEvaluation(IDs(members))
	e.record(block, members, ev)
	e.journalTrial(ctx, members, ev, false)

	return ExitDecision{Allow: true}, nil
}

// OnComplete restores the module, ranks the covered statements and writes
// the report. Cleanup runs even when writing the report fails.
func (e *engine) OnComplete(ctx context.Context, results m.TestResults) (m.Report, error) {
	var errs []error

	if e.inflight != nil && results != nil {
		errs = append(errs, e.fold(ctx, results))
	}

	e.inflight, e.members = nil, nil

	errs = append(errs, e.restore(ctx))

	report := m.Report{
		RunID:     e.runID,
		Module:    m.Path(e.cfg.ModulePath),
		Started:   e.started,
		Duration:  time.Since(e.started),
		Mutations: e.mutations,
		Solutions: e.solutions,
		Failing:   e.failing,
	}

	if e.scheduler != nil {
		report.Faults = Rank(e.ranker, e.index.Objects(), e.tests, RankOptions{
			CoverageCoordinates: e.cfg.CoverageCoordinates,
			Solutions:           e.solved,
		})
	}

	if _, err := e.store.SaveReport(ctx, e.cfg.Output, report, e.cfg.ReportFormat); err != nil {
		errs = append(errs, err)
	}

	if err := e.store.SaveMutationCount(ctx, e.cfg.Output, e.mutations); err != nil {
		errs = append(errs, err)
	}

	if e.journal != nil {
		errs = append(errs, e.journal.Close())
	}

	if e.backupDir != "" {
		if err := e.fs.RemoveAll(ctx, e.backupDir); err != nil {
			slog.Error("Failed to remove backup dir", "dir", e.backupDir, "error", err)
			errs = append(errs, fmt.Errorf("failed to remove backup dir: %w", err))
		}
	}

	slog.Info("localization finished", "run", e.runID, "mutations", e.mutations,
		"solutions", e.solutions, "faults", len(report.Faults))

	return report, errors.Join(errs...)
}

// Info returns the size of the search.
func (e *engine) Info() m.RunInfo {
	return e.info
}

func (e *engine) initialize(ctx context.Context, results m.TestResults) ([]m.TestKey, error) {
	e.initialized = true
	e.original = make(m.TestResults, len(results))

	for key, result := range results {
		e.original[key] = result
	}

	e.failing = e.original.Failing()
	sort.Slice(e.failing, func(i, j int) bool { return e.failing[i] < e.failing[j] })
	e.info.Failing = len(e.failing)

	if len(e.failing) == 0 {
		slog.Warn("no failing tests, nothing to localize")
		return nil, nil
	}

	if err := e.locateTests(ctx); err != nil {
		return nil, err
	}

	e.scope = e.inFailingPackages(e.original)

	coverage, blocks, err := e.coverage.Collect(ctx, adapter.CoverageRequest{
		Dir:        e.cfg.Root,
		ModulePath: e.cfg.ModulePath,
		Tests:      e.coverageTests(),
		Parallel:   e.cfg.Parallel,
	})
	if err != nil {
		slog.Error("Failed to collect coverage", "error", err)
		return nil, fmt.Errorf("failed to collect coverage: %w", err)
	}

	if err := e.parse(ctx, e.coveredFiles(coverage)); err != nil {
		return nil, err
	}

	instructions := e.generate()

	e.index = BuildCoverageIndex(e.units, coverage, e.original, blocks)
	kept := AddInstructions(e.index, instructions)
	e.nodes = BuildNodeInformation(kept)
	e.tests = BuildTestInformation(e.scope, e.index)
	e.ranker = NewRanker(e.cfg.Catalog, e.nodes)
	e.scheduler = NewScheduler(e.ranker, kept, e.cfg.BatchSize)
	e.locator = NewStackLocator(e.loadTree)

	e.info.Files = len(e.units)
	e.info.Statements = len(e.index.Objects())
	e.info.Instructions = len(kept)

	slog.Info("search initialized", "failing", len(e.failing), "files", len(e.units),
		"statements", e.info.Statements, "instructions", len(kept), "dropped", len(instructions)-len(kept))

	return e.next(ctx)
}

// locateTests records, for every failing test, the _test.go file declaring
// its top-level function.
func (e *engine) locateTests(ctx context.Context) error {
	byPackage := make(map[string][]m.TestKey)
	for _, key := range e.failing {
		pkgPath := e.original[key].Package
		byPackage[pkgPath] = append(byPackage[pkgPath], key)
	}

	for pkgPath, keys := range byPackage {
		dir := e.packageDir(ctx, pkgPath)

		files, err := e.fs.TestFiles(ctx, dir)
		if err != nil {
			slog.Warn("cannot list test files", "package", pkgPath, "error", err)
			continue
		}

		for _, file := range files {
			src, err := e.fs.ReadFile(ctx, file)
			if err != nil {
				slog.Error("Failed to read test file", "file", file, "error", err)
				return fmt.Errorf("failed to read test file: %w", err)
			}

			tree, err := e.files.Parse(token.NewFileSet(), string(file), src)
			if err != nil {
				slog.Warn("cannot parse test file", "file", file, "error", err)
				continue
			}

			rel, err := e.fs.RelPath(ctx, e.cfg.Root, file)
			if err != nil {
				return fmt.Errorf("failed to relativize %s: %w", file, err)
			}

			names := e.files.TestFunctions(tree)

			for _, key := range keys {
				result := e.original[key]
				top, _, _ := strings.Cut(result.Name, "/")

				if result.File == "" && slices.Contains(names, top) {
					result.File = rel
					e.original[key] = result
				}
			}
		}
	}

	return nil
}

func (e *engine) packageDir(ctx context.Context, pkgPath string) m.Path {
	rel := strings.TrimPrefix(strings.TrimPrefix(pkgPath, e.cfg.ModulePath), "/")
	return e.fs.JoinPath(ctx, string(e.cfg.Root), rel)
}

func (e *engine) inFailingPackages(results m.TestResults) m.TestResults {
	packages := make(map[string]bool)
	for _, key := range e.failing {
		packages[e.original[key].Package] = true
	}

	out := make(m.TestResults)

	for key, result := range results {
		if packages[result.Package] {
			out[key] = result
		}
	}

	return out
}

// coverageTests returns the failing tests and the passing tests of the
// packages they belong to.
func (e *engine) coverageTests() []m.TestResult {
	out := make([]m.TestResult, 0, len(e.scope))

	for _, result := range e.scope {
		if !result.Skipped {
			out = append(out, result)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })

	return out
}

// coveredFiles returns the non-test files executed by a failing test, minus
// the excluded ones.
func (e *engine) coveredFiles(coverage m.TestCoverage) []m.Path {
	seen := make(map[m.Path]bool)

	var out []m.Path

	for _, key := range e.failing {
		for file, statements := range coverage[key] {
			if seen[file] || strings.HasSuffix(string(file), "_test.go") || e.excluded(file) {
				continue
			}

			for _, count := range statements {
				if count > 0 {
					seen[file] = true
					out = append(out, file)

					break
				}
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

func (e *engine) excluded(file m.Path) bool {
	for _, re := range e.exclude {
		if re.MatchString(string(file)) {
			return true
		}
	}

	return false
}

// parse reads and parses the covered files concurrently.
func (e *engine) parse(ctx context.Context, files []m.Path) error {
	var mu sync.Mutex

	group, gctx := errgroup.WithContext(ctx)
	if e.cfg.Parallel > 0 {
		group.SetLimit(e.cfg.Parallel)
	}

	for _, file := range files {
		group.Go(func() error {
			src, err := e.fs.ReadFile(gctx, e.fs.JoinPath(gctx, string(e.cfg.Root), string(file)))
			if err != nil {
				slog.Error("Failed to read source", "file", file, "error", err)
				return fmt.Errorf("failed to read source: %w", err)
			}

			fset := token.NewFileSet()

			tree, err := e.files.Parse(fset, string(file), src)
			if err != nil {
				slog.Error("Failed to parse source", "file", file, "error", err)
				return fmt.Errorf("failed to parse source: %w", err)
			}

			mu.Lock()
			defer mu.Unlock()

			e.sources[file] = src
			e.units[file] = mutagens.NewUnit(file, fset, tree)

			return nil
		})
	}

	return group.Wait()
}

func (e *engine) generate() []*Instruction {
	files := make([]m.Path, 0, len(e.units))
	for file := range e.units {
		files = append(files, file)
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	var out []*Instruction

	for _, file := range files {
		unit := e.units[file]
		e.cfg.Catalog.Prepare(unit)
		deps := NewDependencies(unit)

		for _, c := range e.cfg.Catalog.Candidates(unit) {
			in, err := NewInstruction(len(out), unit, deps, c)
			if err != nil {
				slog.Warn("skipping candidate", "file", file, "path", c.Path, "type", c.Operator.Type, "error", err)
				continue
			}

			out = append(out, in)
		}
	}

	return out
}

func (e *engine) loadTree(path m.Path) (*token.FileSet, *ast.File, error) {
	ctx := context.Background()

	src, err := e.fs.ReadFile(ctx, e.fs.JoinPath(ctx, string(e.cfg.Root), string(path)))
	if err != nil {
		return nil, nil, err
	}

	fset := token.NewFileSet()

	tree, err := e.files.Parse(fset, string(path), src)
	if err != nil {
		return nil, nil, err
	}

	return fset, tree, nil
}

func (e *engine) fold(ctx context.Context, results m.TestResults) error {
	block, members := e.inflight, e.members
	e.inflight, e.members = nil, nil

	after := e.inFailingPackages(results)
	ev := Evaluate(IDs(members), e.scope, after, e.locator.Distance)
	solution := ev.Fixes(e.failing, after)

	e.record(block, members, ev)

	if solution {
		if err := e.saveSolution(ctx, members); err != nil {
			return err
		}
	}

	e.journalTrial(ctx, members, ev, solution)

	return nil
}

func (e *engine) record(block *Block, members []*Instruction, ev *MutationEvaluation) {
	seen := make(map[NodeKey]bool)

	for _, in := range members {
		in.Record(ev)

		for _, key := range in.IndirectWriteKeys {
			if seen[key] {
				continue
			}

			seen[key] = true

			if node, ok := e.nodes[key]; ok {
				node.Evaluations.Push(ev)
			}
		}
	}

	Observe(e.tests, ev)
	e.scheduler.Record(block, ev)
}

func (e *engine) saveSolution(ctx context.Context, members []*Instruction) error {
	solution := m.Solution{Index: e.solutions, Batch: e.batch}

	for _, in := range members {
		solution.Instructions = append(solution.Instructions, in.String())
		e.solved[in.ID] = append(e.solved[in.ID], e.batch)
	}

	for _, file := range sortedPaths(e.written) {
		solution.Files = append(solution.Files, m.SolutionFile{
			Path:     file,
			Original: e.sources[file],
			Mutated:  e.written[file],
		})
	}

	dir, err := e.store.SaveSolution(ctx, e.cfg.Output, solution)
	if err != nil {
		slog.Error("Failed to save solution", "batch", e.batch, "error", err)
		return fmt.Errorf("failed to save solution: %w", err)
	}

	e.solutions++
	slog.Info("solution found", "batch", e.batch, "dir", dir)

	return nil
}

func (e *engine) journalTrial(ctx context.Context, members []*Instruction, ev *MutationEvaluation, solution bool) {
	trial := m.Trial{
		Batch:      e.batch,
		Files:      Files(members),
		Crashed:    ev.Crashed,
		Improved:   ev.Improved,
		Worsened:   ev.Worsened,
		Evaluation: ev.String(),
		Solution:   solution,
	}

	for _, in := range members {
		trial.Instructions = append(trial.Instructions, in.String())
	}

	if err := e.journal.Append(trial); err != nil {
		slog.Warn("cannot journal trial", "batch", e.batch, "error", err)
	}

	if e.cfg.OnTrial != nil {
		e.cfg.OnTrial(ctx, trial)
	}
}

// next restores the module, picks the most promising block and writes it.
func (e *engine) next(ctx context.Context) ([]m.TestKey, error) {
	if err := e.restore(ctx); err != nil {
		return nil, err
	}

	block, ok := e.scheduler.Next()
	if !ok {
		slog.Info("search space exhausted", "mutations", e.mutations)
		return nil, nil
	}

	members := block.Members()
	top, _ := block.Instructions.Peek()

	state := FinishState{
		Elapsed:   time.Since(e.started),
		Mutations: e.mutations,
		Solutions: e.solutions,
		Remaining: e.scheduler.Len() + 1,
		Promising: Categorize(top.Best()) >= CategoryUntried,
	}

	if e.cfg.Finish(state) {
		return nil, nil
	}

	files := Files(members)
	if len(files) == 0 {
		return nil, fmt.Errorf("block %d: %w", block.ID, ErrEmptyBatch)
	}

	trees := make(map[m.Path]*ast.File, len(files))
	fsets := make(map[m.Path]*token.FileSet, len(files))

	for _, file := range files {
		fset := token.NewFileSet()

		tree, err := e.files.Parse(fset, string(file), e.sources[file])
		if err != nil {
			slog.Error("Failed to re-parse source", "file", file, "error", err)
			return nil, fmt.Errorf("failed to re-parse source: %w", err)
		}

		trees[file], fsets[file] = tree, fset
	}

	if err := Apply(trees, members); err != nil {
		slog.Error("Failed to apply batch", "block", block.ID, "error", err)
		return nil, fmt.Errorf("failed to apply block %d: %w", block.ID, err)
	}

	for _, file := range files {
		content, err := e.files.Print(fsets[file], trees[file])
		if err != nil {
			slog.Error("Failed to print mutated source", "file", file, "error", err)
			return nil, fmt.Errorf("failed to print mutated source: %w", err)
		}

		if err := e.write(ctx, file, content); err != nil {
			return nil, err
		}
	}

	e.inflight, e.members = block, members
	e.batch = e.mutations
	e.retried = false
	e.mutations++

	slog.Debug("batch written", "batch", e.batch, "block", block.ID, "instructions", len(members), "files", files)

	if e.cfg.OnMutation != nil {
		e.cfg.OnMutation(ctx, files)
	}

	return e.rerunKeys(), nil
}

// write backs up file on its first mutation and overwrites it.
func (e *engine) write(ctx context.Context, file m.Path, content []byte) error {
	target := e.fs.JoinPath(ctx, string(e.cfg.Root), string(file))

	if !e.backups[file] {
		backup := e.fs.JoinPath(ctx, string(e.backupDir), string(file))
		if err := e.fs.CopyFile(ctx, target, backup); err != nil {
			slog.Error("Failed to back up source", "file", file, "error", err)
			return fmt.Errorf("failed to back up source: %w", err)
		}

		e.backups[file] = true
	}

	e.written[file] = content

	if err := e.fs.WriteFile(ctx, target, content, 0o600); err != nil {
		slog.Error("Failed to write mutated source", "file", file, "error", err)
		return fmt.Errorf("failed to write mutated source: %w", err)
	}

	return nil
}

// restore copies the backup of every mutated file back into the module.
func (e *engine) restore(ctx context.Context) error {
	for _, file := range sortedPaths(e.written) {
		if !e.backups[file] {
			return fmt.Errorf("%w: %s", ErrMissingBackup, file)
		}

		backup := e.fs.JoinPath(ctx, string(e.backupDir), string(file))
		target := e.fs.JoinPath(ctx, string(e.cfg.Root), string(file))

		if err := e.fs.CopyFile(ctx, backup, target); err != nil {
			slog.Error("Failed to restore source", "file", file, "error", err)
			return fmt.Errorf("failed to restore source: %w", err)
		}

		delete(e.written, file)
	}

	return nil
}

// rerunKeys returns the tests of the packages holding a failing test.
func (e *engine) rerunKeys() []m.TestKey {
	keys := make([]m.TestKey, 0, len(e.scope))
	for key := range e.scope {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}

func sortedPaths[V any](set map[m.Path]V) []m.Path {
	out := make([]m.Path, 0, len(set))
	for file := range set {
		out = append(out, file)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}
