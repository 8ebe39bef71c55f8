package domain

import (
	"log/slog"

	"gooze.dev/pkg/faultline/internal/domain/mutagens"
)

// Ranker orders instructions and blocks for the search.
type Ranker struct {
	catalog *mutagens.Catalog
	nodes   map[NodeKey]*NodeInformation
}

// NewRanker creates a ranker reading node histories from nodes.
func NewRanker(catalog *mutagens.Catalog, nodes map[NodeKey]*NodeInformation) *Ranker {
	return &Ranker{catalog: catalog, nodes: nodes}
}

// CompareInstructions orders instructions from least to most promising: by
// the category of their best evaluation, then by their best evaluation (for
// untried instructions, the best evaluation seen on the locations they
// affect), then by initial score, operator importance and finally id.
func (r *Ranker) CompareInstructions(a, b *Instruction) int {
	ba, bb := a.Best(), b.Best()

	if c := compareInt(int(Categorize(ba)), int(Categorize(bb))); c != 0 {
		return c
	}

	if ba == nil {
		ba, bb = r.nodeBest(a), r.nodeBest(b)
	}

	if c := CompareEvaluations(ba, bb); c != 0 {
		return c
	}

	if c := compareFloat(a.InitialScore, b.InitialScore); c != 0 {
		return c
	}

	if c := compareInt(r.catalog.Importance(a.Type), r.catalog.Importance(b.Type)); c != 0 {
		return c
	}

	return compareInt(b.ID, a.ID)
}

// nodeBest returns the best evaluation recorded on any location the
// instruction affects, neutral when there is none.
func (r *Ranker) nodeBest(in *Instruction) *MutationEvaluation {
	best := neutralEvaluation

	for _, key := range in.IndirectWriteKeys {
		info, ok := r.nodes[key]
		if !ok {
			continue
		}

		if e := info.Best(); e != nil && CompareEvaluations(e, best) > 0 {
			best = e
		}
	}

	return best
}

// CompareBlocks orders blocks by their best instruction, preferring larger
// blocks on ties.
func (r *Ranker) CompareBlocks(a, b *Block) int {
	ia, _ := a.Instructions.Peek()
	ib, _ := b.Instructions.Peek()

	switch {
	case ia == nil && ib == nil:
		return 0
	case ia == nil:
		return -1
	case ib == nil:
		return 1
	}

	if c := r.CompareInstructions(ia, ib); c != 0 {
		return c
	}

	return compareInt(a.Instructions.Len(), b.Instructions.Len())
}

// Block is a group of instructions applied together.
type Block struct {
	ID           int
	Instructions *Queue[*Instruction]
}

// Members returns the instructions of the block.
func (b *Block) Members() []*Instruction {
	return b.Instructions.Items()
}

// Scheduler runs the best-first search over blocks of instructions.
type Scheduler struct {
	ranker  *Ranker
	blocks  *Queue[*Block]
	nextID  int
	retired []*Instruction
}

// NewScheduler seeds the search with one block per instruction, or with
// conflict-free groups of up to batchSize instructions when batchSize > 1.
func NewScheduler(ranker *Ranker, instructions []*Instruction, batchSize int) *Scheduler {
	s := &Scheduler{
		ranker: ranker,
		blocks: NewQueue(ranker.CompareBlocks),
	}

	if batchSize <= 1 {
		for _, in := range instructions {
			s.push(in)
		}

		return s
	}

	for _, group := range GroupConflictFree(ranker, instructions, batchSize) {
		s.push(group...)
	}

	return s
}

func (s *Scheduler) push(instructions ...*Instruction) {
	if len(instructions) == 0 {
		return
	}

	block := &Block{ID: s.nextID, Instructions: NewQueue(s.ranker.CompareInstructions)}
	s.nextID++

	for _, in := range instructions {
		block.Instructions.Push(in)
	}

	s.blocks.Push(block)
}

// Next removes and returns the most promising block.
func (s *Scheduler) Next() (*Block, bool) {
	return s.blocks.Pop()
}

// Peek returns the most promising block without removing it.
func (s *Scheduler) Peek() (*Block, bool) {
	return s.blocks.Peek()
}

// Len returns the number of queued blocks.
func (s *Scheduler) Len() int {
	return s.blocks.Len()
}

// Retired returns the instructions whose variants are exhausted.
func (s *Scheduler) Retired() []*Instruction {
	return s.retired
}

// Promising reports whether the best queued block is untried, improved
// tests or crashed.
func (s *Scheduler) Promising() bool {
	block, ok := s.blocks.Peek()
	if !ok {
		return false
	}

	best, ok := block.Instructions.Peek()

	return ok && Categorize(best.Best()) >= CategoryUntried
}

// Record re-queues a block after its evaluation. An interesting block of
// several instructions is split in two; otherwise every instruction moves to
// its next variant as a block of its own, or retires when it has none left.
// Queued blocks sharing an affected location are re-ranked.
func (s *Scheduler) Record(block *Block, e *MutationEvaluation) {
	members := block.Members()

	affected := make(map[NodeKey]bool)
	for _, in := range members {
		for _, key := range in.IndirectWriteKeys {
			affected[key] = true
		}
	}

	if len(members) >= 2 && e.Interesting() {
		var left, right []*Instruction

		for i := 0; block.Instructions.Len() > 0; i++ {
			in, _ := block.Instructions.Pop()
			if i%2 == 0 {
				left = append(left, in)
			} else {
				right = append(right, in)
			}
		}

		slog.Debug("splitting block", "block", block.ID, "left", len(left), "right", len(right))
		s.push(left...)
		s.push(right...)
	} else {
		for _, in := range members {
			if in.Advance() {
				s.push(in)
				continue
			}

			slog.Debug("retiring instruction", "instruction", in.String())
			s.retired = append(s.retired, in)
		}
	}

	s.touch(affected)
}

func (s *Scheduler) touch(affected map[NodeKey]bool) {
	for _, block := range s.blocks.Items() {
		for _, in := range block.Members() {
			if touches(in, affected) {
				block.Instructions.Update()
				break
			}
		}
	}

	s.blocks.Update()
}

func touches(in *Instruction, keys map[NodeKey]bool) bool {
	for _, key := range in.IndirectWriteKeys {
		if keys[key] {
			return true
		}
	}

	return false
}
