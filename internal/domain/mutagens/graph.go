package mutagens

// Graph is a category graph: nesting encodes closeness between values, the
// innermost group being the closest.
type Graph interface {
	graph()
}

// Leaf is a single value of a category graph.
type Leaf string

// Group is a list of leaves and nested groups.
type Group []Graph

func (Leaf) graph()  {}
func (Group) graph() {}

// Leaves builds a group of plain values.
func Leaves(values ...string) Group {
	g := make(Group, len(values))
	for i, v := range values {
		g[i] = Leaf(v)
	}

	return g
}

// Contains reports whether value appears anywhere in g.
func Contains(g Graph, value string) bool {
	for _, leaf := range leavesOf(g) {
		if leaf == value {
			return true
		}
	}

	return false
}

// Flatten orders the alternatives to value by closeness: the siblings in the
// innermost group holding value first, then each enclosing group outward.
// Every value is emitted once, at its closest occurrence. When value does not
// occur, all leaves are returned in order.
func Flatten(g Graph, value string) []string {
	trail, found := locate(g, value)
	if !found {
		return leavesOf(g)
	}

	seen := map[string]bool{value: true}
	out := make([]string, 0)

	for i := len(trail) - 1; i >= 0; i-- {
		for _, leaf := range leavesOf(trail[i]) {
			if seen[leaf] {
				continue
			}

			seen[leaf] = true
			out = append(out, leaf)
		}
	}

	return out
}

type frame struct {
	node  Graph
	trail []Group
}

// locate finds the first pre-order occurrence of value and returns the
// groups enclosing it, outermost first.
func locate(g Graph, value string) ([]Group, bool) {
	stack := []frame{{node: g}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch node := top.node.(type) {
		case Leaf:
			if string(node) == value {
				return top.trail, true
			}
		case Group:
			trail := make([]Group, len(top.trail), len(top.trail)+1)
			copy(trail, top.trail)
			trail = append(trail, node)

			for i := len(node) - 1; i >= 0; i-- {
				stack = append(stack, frame{node: node[i], trail: trail})
			}
		}
	}

	return nil, false
}

func leavesOf(g Graph) []string {
	out := make([]string, 0)
	stack := []Graph{g}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch node := top.(type) {
		case Leaf:
			out = append(out, string(node))
		case Group:
			for i := len(node) - 1; i >= 0; i-- {
				stack = append(stack, node[i])
			}
		}
	}

	return out
}
