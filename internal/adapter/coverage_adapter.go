package adapter

import (
	"context"
	"fmt"
	"go/token"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/cover"
	m "gooze.dev/pkg/faultline/internal/model"
)

// CoverageRequest selects the tests whose statement coverage is collected.
type CoverageRequest struct {
	// Dir is the module root.
	Dir m.Path
	// ModulePath is the module path declared in go.mod.
	ModulePath string
	// Tests are the tests to collect, one go test run each.
	Tests []m.TestResult
	// Parallel bounds the number of concurrent runs; 0 means unbounded.
	Parallel int
}

// CoverageAdapter collects per-test statement coverage.
type CoverageAdapter interface {
	// Collect runs every requested test on its own with coverage enabled and
	// returns, per test, the hit count of every statement of the module
	// (keyed by module-relative file) plus the cover block each statement
	// belongs to.
	Collect(ctx context.Context, req CoverageRequest) (m.TestCoverage, m.BlockIndex, error)
}

// LocalCoverageAdapter collects coverage with go test -coverprofile.
type LocalCoverageAdapter struct {
	runner TestRunnerAdapter
	fs     SourceFSAdapter
	files  GoFileAdapter
}

// NewLocalCoverageAdapter wires the adapter to the test runner and the
// filesystem it reads profiles and sources through.
func NewLocalCoverageAdapter(runner TestRunnerAdapter, fs SourceFSAdapter, files GoFileAdapter) *LocalCoverageAdapter {
	return &LocalCoverageAdapter{runner: runner, fs: fs, files: files}
}

type fileStatements struct {
	spans []m.Span
	// funcs holds the spans of function declarations and literals.
	funcs []m.Span
}

// Collect implements CoverageAdapter.
func (a *LocalCoverageAdapter) Collect(ctx context.Context, req CoverageRequest) (m.TestCoverage, m.BlockIndex, error) {
	tmpDir, err := a.fs.CreateTempDir(ctx, "faultline-cover-*")
	if err != nil {
		slog.Error("Failed to create coverage dir", "error", err)
		return nil, nil, fmt.Errorf("failed to create coverage dir: %w", err)
	}

	defer func() {
		if err := a.fs.RemoveAll(ctx, tmpDir); err != nil {
			slog.Error("Failed to cleanup coverage dir", "dir", tmpDir, "error", err)
		}
	}()

	var (
		mu       sync.Mutex
		coverage = make(m.TestCoverage, len(req.Tests))
		profiles = make(map[m.TestKey][]*cover.Profile, len(req.Tests))
		stacks   = make(map[m.TestKey][]m.StackFrame, len(req.Tests))
	)

	group, gctx := errgroup.WithContext(ctx)
	if req.Parallel > 0 {
		group.SetLimit(req.Parallel)
	}

	for i, test := range req.Tests {
		profile := a.fs.JoinPath(ctx, string(tmpDir), fmt.Sprintf("%d.out", i))

		group.Go(func() error {
			run, err := a.runner.Run(gctx, TestRequest{
				Dir:           req.Dir,
				Packages:      []string{test.Package},
				Run:           RunPattern([]string{test.Name}),
				CoverProfile:  profile,
				CoverPackages: req.ModulePath + "/...",
			})
			if err != nil {
				return fmt.Errorf("coverage of %s: %w", test.Key, err)
			}

			if run.Status.Abnormal() {
				slog.Warn("coverage run ended abnormally", "test", test.Key, "status", run.Status)
				return nil
			}

			parsed, err := cover.ParseProfiles(string(profile))
			if err != nil {
				slog.Error("Failed to parse cover profile", "test", test.Key, "profile", profile, "error", err)
				return fmt.Errorf("failed to parse cover profile: %w", err)
			}

			stack := test.Stack
			if result, ok := run.Results[test.Key]; ok && len(result.Stack) > 0 {
				stack = result.Stack
			}

			mu.Lock()
			profiles[test.Key] = parsed
			stacks[test.Key] = stack
			mu.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	c := &collection{
		statements: make(map[m.Path]*fileStatements),
		blocks:     make(m.BlockIndex),
	}

	for _, test := range req.Tests {
		parsed, ok := profiles[test.Key]
		if !ok {
			continue
		}

		files := make(m.FileCoverage)

		for _, profile := range parsed {
			rel, ok := a.relative(req.ModulePath, profile.FileName)
			if !ok || strings.HasSuffix(string(rel), "_test.go") {
				continue
			}

			st, err := a.load(ctx, req.Dir, rel, c)
			if err != nil {
				return nil, nil, err
			}

			files[rel] = expand(profile, st, c.blocks[rel])
		}

		// A panicking test binary exits before writing its counters.
		if hits(files) == 0 {
			seeded, err := a.stackCoverage(ctx, req, test, stacks[test.Key], c)
			if err != nil {
				return nil, nil, err
			}

			if hits(seeded) == 0 {
				slog.Warn("failing test covers no statements", "test", test.Key)
			} else {
				slog.Info("coverage seeded from stack", "test", test.Key, "files", len(seeded))

				for rel, statements := range seeded {
					files[rel] = statements
				}
			}
		}

		coverage[test.Key] = files
	}

	slog.Info("collected coverage", "tests", len(coverage), "files", len(c.statements))

	return coverage, c.blocks, nil
}

// collection caches parsed files across the tests of one Collect call.
type collection struct {
	statements map[m.Path]*fileStatements
	blocks     m.BlockIndex
}

func (a *LocalCoverageAdapter) load(ctx context.Context, root, rel m.Path, c *collection) (*fileStatements, error) {
	if st, ok := c.statements[rel]; ok {
		return st, nil
	}

	st, err := a.statements(ctx, root, rel)
	if err != nil {
		return nil, err
	}

	c.statements[rel] = st
	c.blocks[rel] = make(map[m.Span]m.Span)

	return st, nil
}

func hits(files m.FileCoverage) int {
	total := 0

	for _, statements := range files {
		for _, count := range statements {
			total += count
		}
	}

	return total
}

// stackCoverage marks the statements a failure stack shows were reached:
// for each frame in a module source file, the statements of the innermost
// enclosing function up to the frame line, minus those nested in
// statements that ended before it.
func (a *LocalCoverageAdapter) stackCoverage(
	ctx context.Context,
	req CoverageRequest,
	test m.TestResult,
	stack []m.StackFrame,
	c *collection,
) (m.FileCoverage, error) {
	files := make(m.FileCoverage)

	for _, frame := range stack {
		rel, ok := a.frameFile(ctx, req, test, frame)
		if !ok {
			continue
		}

		st, err := a.load(ctx, req.Dir, rel, c)
		if err != nil {
			return nil, err
		}

		fn, ok := innermost(st.funcs, frame.Line)
		if !ok {
			continue
		}

		statements := files[rel]
		if statements == nil {
			statements = make(m.StatementCoverage)
			files[rel] = statements
		}

		for _, stmt := range st.spans {
			if fn.Contains(stmt) && stmt.Start.Line <= frame.Line && reached(stmt, fn, st, frame.Line) {
				statements[stmt] = 1
			}
		}
	}

	return files, nil
}

// frameFile maps a frame to a module-relative non-test source file. Frames
// without a directory are relative to the test's package.
func (a *LocalCoverageAdapter) frameFile(ctx context.Context, req CoverageRequest, test m.TestResult, frame m.StackFrame) (m.Path, bool) {
	file := filepath.FromSlash(string(frame.File))
	if !filepath.IsAbs(file) {
		dir := strings.TrimPrefix(strings.TrimPrefix(test.Package, req.ModulePath), "/")
		file = filepath.Join(string(req.Dir), filepath.FromSlash(dir), file)
	}

	rel, err := a.fs.RelPath(ctx, req.Dir, m.Path(file))
	if err != nil || strings.HasPrefix(string(rel), "..") || strings.HasSuffix(string(rel), "_test.go") {
		return "", false
	}

	if _, err := a.fs.FileInfo(ctx, m.Path(file)); err != nil {
		return "", false
	}

	return rel, true
}

func spansLine(s m.Span, line int) bool {
	return s.Start.Line <= line && line <= s.End.Line
}

func innermost(funcs []m.Span, line int) (m.Span, bool) {
	var (
		best  m.Span
		found bool
	)

	for _, fn := range funcs {
		if spansLine(fn, line) && (!found || best.Contains(fn)) {
			best, found = fn, true
		}
	}

	return best, found
}

// reached reports whether stmt ran on the way to line: no statement or
// function literal enclosing it inside fn may have been left before line.
func reached(stmt, fn m.Span, st *fileStatements, line int) bool {
	for _, outer := range st.spans {
		if outer != stmt && fn.Contains(outer) && outer.Contains(stmt) && !spansLine(outer, line) {
			return false
		}
	}

	for _, lit := range st.funcs {
		if lit != fn && fn.Contains(lit) && lit.Contains(stmt) && !spansLine(lit, line) {
			return false
		}
	}

	return true
}

func (a *LocalCoverageAdapter) relative(modulePath, name string) (m.Path, bool) {
	rel, ok := strings.CutPrefix(name, modulePath+"/")
	if !ok {
		return "", false
	}

	return m.Path(filepath.FromSlash(rel)), true
}

func (a *LocalCoverageAdapter) statements(ctx context.Context, root m.Path, rel m.Path) (*fileStatements, error) {
	src, err := a.fs.ReadFile(ctx, a.fs.JoinPath(ctx, string(root), string(rel)))
	if err != nil {
		slog.Error("Failed to read covered file", "file", rel, "error", err)
		return nil, fmt.Errorf("failed to read covered file: %w", err)
	}

	fset := token.NewFileSet()

	file, err := a.files.Parse(fset, string(rel), src)
	if err != nil {
		slog.Error("Failed to parse covered file", "file", rel, "error", err)
		return nil, fmt.Errorf("failed to parse covered file: %w", err)
	}

	return &fileStatements{spans: a.files.Statements(fset, file), funcs: a.files.Functions(fset, file)}, nil
}

// expand spreads block counts over statements. A statement belongs to the
// innermost block that contains its start.
func expand(profile *cover.Profile, st *fileStatements, index map[m.Span]m.Span) m.StatementCoverage {
	out := make(m.StatementCoverage, len(st.spans))

	for _, stmt := range st.spans {
		var (
			best  m.Span
			count int
			found bool
		)

		for _, b := range profile.Blocks {
			span := m.Span{
				Start: m.Position{Line: b.StartLine, Column: b.StartCol},
				End:   m.Position{Line: b.EndLine, Column: b.EndCol},
			}

			if stmt.Start.Before(span.Start) || !stmt.Start.Before(span.End) {
				continue
			}

			if !found || best.Contains(span) {
				best, count, found = span, b.Count, true
			}
		}

		if !found {
			continue
		}

		out[stmt] += count
		index[stmt] = best
	}

	return out
}
