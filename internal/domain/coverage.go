package domain

import (
	"go/ast"
	"sort"

	"gooze.dev/pkg/faultline/internal/astpath"
	"gooze.dev/pkg/faultline/internal/domain/mutagens"
	m "gooze.dev/pkg/faultline/internal/model"
)

// CoveragePathObj is a statement executed by at least one failing test.
type CoveragePathObj struct {
	File         m.Path
	Path         astpath.Path
	Kind         string
	Span         m.Span
	BlockSpan    m.Span
	Instructions []*Instruction
	// Tests are the failing tests that executed the statement.
	Tests map[m.TestKey]bool
	// Passing counts the passing tests that executed the statement.
	Passing      int
	Nodes        int
	InitialScore float64
}

// Key returns the node key of the statement.
func (o *CoveragePathObj) Key() NodeKey {
	return KeyOf(o.File, o.Path)
}

// TestKeys returns the covering failing tests, sorted.
func (o *CoveragePathObj) TestKeys() []m.TestKey {
	out := make([]m.TestKey, 0, len(o.Tests))
	for key := range o.Tests {
		out = append(out, key)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

func (o *CoveragePathObj) attach(in *Instruction) {
	for _, existing := range o.Instructions {
		if existing == in {
			return
		}
	}

	o.Instructions = append(o.Instructions, in)
	in.Coverage = append(in.Coverage, o)

	in.InitialScore = max(in.InitialScore, o.InitialScore)
}

// NodeInformation is the evaluation history of one affected location.
type NodeInformation struct {
	Key          NodeKey
	File         m.Path
	Path         astpath.Path
	Evaluations  *Queue[*MutationEvaluation]
	Instructions []*Instruction
	Coverage     *CoveragePathObj
}

// Best returns the best evaluation recorded on the node, or nil.
func (n *NodeInformation) Best() *MutationEvaluation {
	best, _ := n.Evaluations.Peek()
	return best
}

// CoverageIndex holds the coverage objects of a run, by span and by path.
type CoverageIndex struct {
	objects []*CoveragePathObj
	bySpan  map[m.SpanKey]*CoveragePathObj
	byKey   map[NodeKey]*CoveragePathObj
	entries map[NodeKey]*CoveragePathObj
}

// statementSpans indexes the statements of a file by span. A declaration
// holding a single spec is also reachable through the spec's span.
func statementSpans(unit *mutagens.Unit) map[m.Span]astpath.Path {
	out := make(map[m.Span]astpath.Path)

	astpath.Walk(unit.File, func(n ast.Node, path astpath.Path) bool {
		stmt, ok := n.(ast.Stmt)
		if !ok || !IsCoverableStatement(stmt) {
			return true
		}

		out[unit.Span(n)] = path

		if decl, ok := stmt.(*ast.DeclStmt); ok {
			if gen, ok := decl.Decl.(*ast.GenDecl); ok && len(gen.Specs) == 1 {
				if _, taken := out[unit.Span(gen.Specs[0])]; !taken {
					out[unit.Span(gen.Specs[0])] = path
				}
			}
		}

		return true
	})

	return out
}

// IsCoverableStatement reports statements the cover tool counts.
func IsCoverableStatement(stmt ast.Stmt) bool {
	switch stmt.(type) {
	case *ast.BlockStmt, *ast.CaseClause, *ast.CommClause, *ast.EmptyStmt:
		return false
	default:
		return true
	}
}

// BuildCoverageIndex creates one coverage object per statement executed by a
// failing test. Passing coverage only feeds the initial scores.
func BuildCoverageIndex(units map[m.Path]*mutagens.Unit, coverage m.TestCoverage, original m.TestResults, blocks m.BlockIndex) *CoverageIndex {
	idx := &CoverageIndex{
		bySpan:  make(map[m.SpanKey]*CoveragePathObj),
		byKey:   make(map[NodeKey]*CoveragePathObj),
		entries: make(map[NodeKey]*CoveragePathObj),
	}

	spans := make(map[m.Path]map[m.Span]astpath.Path, len(units))
	for file, unit := range units {
		spans[file] = statementSpans(unit)
	}

	failing := original.Failing()
	sort.Slice(failing, func(i, j int) bool { return failing[i] < failing[j] })

	for _, test := range failing {
		for _, file := range sortedFiles(coverage[test]) {
			statements := coverage[test][file]

			for _, span := range sortedSpans(statements) {
				if statements[span] == 0 {
					continue
				}

				path, ok := spans[file][span]
				if !ok {
					continue
				}

				obj := idx.object(units[file], path, span, blocks)
				obj.Tests[test] = true
			}
		}
	}

	for test, files := range coverage {
		if result, ok := original[test]; !ok || !result.Passed {
			continue
		}

		counted := make(map[*CoveragePathObj]bool)

		for file, statements := range files {
			for span, count := range statements {
				if count == 0 {
					continue
				}

				path, ok := spans[file][span]
				if !ok {
					continue
				}

				if obj := idx.byKey[KeyOf(file, path)]; obj != nil && !counted[obj] {
					counted[obj] = true
					obj.Passing++
				}
			}
		}
	}

	for _, obj := range idx.objects {
		obj.InitialScore = DStar(len(obj.Tests), obj.Passing, len(failing))
	}

	return idx
}

func (idx *CoverageIndex) object(unit *mutagens.Unit, path astpath.Path, span m.Span, blocks m.BlockIndex) *CoveragePathObj {
	key := KeyOf(unit.Path, path)
	if obj, ok := idx.byKey[key]; ok {
		return obj
	}

	node := unit.NodeAt(path)
	actual := unit.Span(node)

	obj := &CoveragePathObj{
		File:      unit.Path,
		Path:      path,
		Kind:      kindOf(node),
		Span:      actual,
		BlockSpan: actual,
		Tests:     make(map[m.TestKey]bool),
		Nodes:     countNodes(node),
	}

	if block, ok := blocks[unit.Path][actual]; ok {
		obj.BlockSpan = block
	} else if block, ok := blocks[unit.Path][span]; ok {
		obj.BlockSpan = block
	}

	idx.objects = append(idx.objects, obj)
	idx.byKey[key] = obj
	idx.bySpan[m.SpanKey{File: unit.Path, Span: actual}] = obj

	idx.registerEntry(unit, path, obj)

	return obj
}

// registerEntry makes the first statement of a function body stand for the
// function's signature.
func (idx *CoverageIndex) registerEntry(unit *mutagens.Unit, path astpath.Path, obj *CoveragePathObj) {
	last, ok := path.Last()
	if !ok || !last.IsIndex() || last.Index != 0 || len(path) < 3 {
		return
	}

	if path[len(path)-2].Field != "List" {
		return
	}

	body := path[:len(path)-2]

	if _, ok := unit.NodeAt(body).(*ast.BlockStmt); !ok {
		return
	}

	if fn := unit.NodeAt(body.Parent()); isFunc(fn) {
		idx.entries[KeyOf(unit.Path, body.Parent())] = obj
	}
}

// Objects returns the coverage objects in creation order.
func (idx *CoverageIndex) Objects() []*CoveragePathObj {
	return idx.objects
}

// Lookup returns the object of an exact statement span.
func (idx *CoverageIndex) Lookup(file m.Path, span m.Span) (*CoveragePathObj, bool) {
	obj, ok := idx.bySpan[m.SpanKey{File: file, Span: span}]
	return obj, ok
}

// Files returns the files holding coverage objects.
func (idx *CoverageIndex) Files() []m.Path {
	seen := make(map[m.Path]bool)

	var out []m.Path

	for _, obj := range idx.objects {
		if !seen[obj.File] {
			seen[obj.File] = true
			out = append(out, obj.File)
		}
	}

	return out
}

// AddInstructions attaches each instruction to the covered statement its
// typed writes fall under, walking up from every write. Writes to a function
// signature attach to the function's first statement; writes inside an
// uncovered statement of the body do not. Instructions that
// reach no covered statement are dropped.
func AddInstructions(idx *CoverageIndex, instructions []*Instruction) []*Instruction {
	kept := make([]*Instruction, 0, len(instructions))

	for _, in := range instructions {
		for _, key := range in.TypedWriteKeys {
			file, path, err := key.Split()
			if err != nil {
				continue
			}

			if obj := idx.match(file, path); obj != nil {
				obj.attach(in)
			}
		}

		if len(in.Coverage) > 0 {
			kept = append(kept, in)
		}
	}

	return kept
}

func (idx *CoverageIndex) match(file m.Path, path astpath.Path) *CoveragePathObj {
	for _, p := range path.Ancestors() {
		key := KeyOf(file, p)

		if obj, ok := idx.byKey[key]; ok {
			return obj
		}

		if obj, ok := idx.entries[key]; ok && !inBody(path, p) {
			return obj
		}
	}

	return nil
}

// inBody reports whether path descends into the body of the function at fn.
func inBody(path, fn astpath.Path) bool {
	return len(path) > len(fn) && path[len(fn)].Field == "Body"
}

// BuildNodeInformation creates the evaluation history of every indirect
// write key of instructions.
func BuildNodeInformation(instructions []*Instruction) map[NodeKey]*NodeInformation {
	nodes := make(map[NodeKey]*NodeInformation)

	for _, in := range instructions {
		for _, key := range in.IndirectWriteKeys {
			info, ok := nodes[key]
			if !ok {
				file, path, err := key.Split()
				if err != nil {
					continue
				}

				info = &NodeInformation{
					Key:         key,
					File:        file,
					Path:        path,
					Evaluations: NewQueue(CompareEvaluations),
				}

				if len(in.Coverage) > 0 {
					info.Coverage = in.Coverage[0]
				}

				nodes[key] = info
			}

			info.Instructions = append(info.Instructions, in)
		}
	}

	return nodes
}

// BuildTestInformation creates the history of every test of the original
// run and links failing tests to the statements they cover.
func BuildTestInformation(original m.TestResults, idx *CoverageIndex) map[m.TestKey]*TestInformation {
	tests := make(map[m.TestKey]*TestInformation, len(original))

	for key, result := range original {
		tests[key] = NewTestInformation(result)
	}

	for _, obj := range idx.objects {
		for key := range obj.Tests {
			if info, ok := tests[key]; ok {
				info.Coverage[obj] = true
			}
		}
	}

	return tests
}

func countNodes(root ast.Node) int {
	if root == nil {
		return 0
	}

	count := 0

	astpath.Walk(root, func(ast.Node, astpath.Path) bool {
		count++
		return true
	})

	return count
}

func sortedFiles(files m.FileCoverage) []m.Path {
	out := make([]m.Path, 0, len(files))
	for file := range files {
		out = append(out, file)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

func sortedSpans(statements m.StatementCoverage) []m.Span {
	out := make([]m.Span, 0, len(statements))
	for span := range statements {
		out = append(out, span)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })

	return out
}
