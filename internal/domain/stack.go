package domain

import (
	"go/ast"
	"go/token"
	"log/slog"
	"path/filepath"
	"sync"

	"gooze.dev/pkg/faultline/internal/astpath"
	m "gooze.dev/pkg/faultline/internal/model"
)

// TreeLoader parses a file for stack distance lookups.
type TreeLoader func(path m.Path) (*token.FileSet, *ast.File, error)

// StackLocator turns stack frames into execution distances, caching the
// post-order numbering of every file it parses.
type StackLocator struct {
	load TreeLoader

	mu    sync.Mutex
	trees map[m.Path]*orderedTree
}

type orderedTree struct {
	fset  *token.FileSet
	file  *ast.File
	order map[ast.Node]int
}

// NewStackLocator creates a locator reading files through load.
func NewStackLocator(load TreeLoader) *StackLocator {
	return &StackLocator{
		load:  load,
		trees: make(map[m.Path]*orderedTree),
	}
}

// Distance compares where a failing test stopped before and after a
// mutation, as the difference of the post-order positions of the nodes its
// first in-file stack frames point at.
func (l *StackLocator) Distance(before, after m.TestResult) (int, bool) {
	if before.File == "" {
		return 0, false
	}

	fb, ok := firstFrame(before.Stack, before.File)
	if !ok {
		return 0, false
	}

	fa, ok := firstFrame(after.Stack, before.File)
	if !ok {
		return 0, false
	}

	tree, err := l.tree(before.File)
	if err != nil {
		slog.Debug("stack distance unavailable", "file", before.File, "error", err)
		return 0, false
	}

	ob, ok := tree.ordinal(fb)
	if !ok {
		return 0, false
	}

	oa, ok := tree.ordinal(fa)
	if !ok {
		return 0, false
	}

	return oa - ob, true
}

func (l *StackLocator) tree(path m.Path) (*orderedTree, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t, ok := l.trees[path]; ok {
		return t, nil
	}

	fset, file, err := l.load(path)
	if err != nil {
		return nil, err
	}

	t := &orderedTree{fset: fset, file: file, order: astpath.PostOrder(file)}
	l.trees[path] = t

	return t, nil
}

func (t *orderedTree) ordinal(frame m.StackFrame) (int, bool) {
	n := astpath.NodeAt(t.fset, t.file, frame.Line, frame.Column)
	if n == nil {
		return 0, false
	}

	o, ok := t.order[n]

	return o, ok
}

// firstFrame returns the first frame in file. Frames from go test output
// often carry only the base name, so names are compared by base.
func firstFrame(stack []m.StackFrame, file m.Path) (m.StackFrame, bool) {
	base := filepath.Base(string(file))

	for _, frame := range stack {
		if filepath.Base(string(frame.File)) == base {
			return frame, true
		}
	}

	return m.StackFrame{}, false
}
