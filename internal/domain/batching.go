package domain

import (
	"slices"

	m "gooze.dev/pkg/faultline/internal/model"
)

// GroupConflictFree packs instructions, best first, into groups of at most
// size whose write locations neither coincide nor nest.
func GroupConflictFree(ranker *Ranker, instructions []*Instruction, size int) [][]*Instruction {
	ordered := slices.Clone(instructions)
	slices.SortStableFunc(ordered, func(a, b *Instruction) int {
		return ranker.CompareInstructions(b, a)
	})

	var groups [][]*Instruction

	for _, in := range ordered {
		placed := false

		for i, group := range groups {
			if len(group) >= size || conflictsWithAny(in, group) {
				continue
			}

			groups[i] = append(group, in)
			placed = true

			break
		}

		if !placed {
			groups = append(groups, []*Instruction{in})
		}
	}

	return groups
}

func conflictsWithAny(in *Instruction, group []*Instruction) bool {
	for _, other := range group {
		if Conflicts(in, other) {
			return true
		}
	}

	return false
}

// Conflicts reports whether two instructions write overlapping locations.
func Conflicts(a, b *Instruction) bool {
	for _, ka := range a.ConflictWriteKeys {
		fa, pa, err := ka.Split()
		if err != nil {
			return true
		}

		for _, kb := range b.ConflictWriteKeys {
			fb, pb, err := kb.Split()
			if err != nil {
				return true
			}

			if fa == fb && (pa.HasPrefix(pb) || pb.HasPrefix(pa)) {
				return true
			}
		}
	}

	return sameStatement(a, b)
}

// sameStatement reports whether two instructions attach to a common covered
// statement.
func sameStatement(a, b *Instruction) bool {
	covered := make(map[m.SpanKey]bool, len(a.Coverage))
	for _, obj := range a.Coverage {
		covered[m.SpanKey{File: obj.File, Span: obj.Span}] = true
	}

	for _, obj := range b.Coverage {
		if covered[m.SpanKey{File: obj.File, Span: obj.Span}] {
			return true
		}
	}

	return false
}
