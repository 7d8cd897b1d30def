// Package cfg implements the topological walkers shared by the high and low
// intermediate representations. Both tiers expose their basic-block graph
// through the small Graph interface below so the walking algorithm itself is
// written once.
package cfg

// Graph is the minimal view of a control-flow graph the walkers need. Block
// id 0 is the entry sentinel and id NumBlocks()-1 is the exit sentinel.
type Graph interface {
	// NumBlocks returns the number of basic blocks, including the entry and
	// exit sentinels.
	NumBlocks() int
	// Successors returns the successor block ids of block id.
	Successors(id int) []int
}

// Validate panics unless g satisfies the invariants every Cfg must hold: at
// least two blocks, no block lists the entry block as a successor, and the
// exit block has no successors. This mirrors the parser-level checks the
// macro/parser collaborator is expected to have already performed.
func Validate(g Graph) {
	n := g.NumBlocks()
	if n < 2 {
		panic("cfg: must contain at least two basic blocks")
	}
	for id := 0; id < n; id++ {
		for _, succ := range g.Successors(id) {
			if succ == 0 {
				panic("cfg: the entry block must have no predecessors")
			}
		}
	}
	if len(g.Successors(n-1)) != 0 {
		panic("cfg: the exit block must have no successors")
	}
}

// ComputePredecessors returns, for each block id, the ids of its predecessor
// blocks. The returned slice has length NumBlocks()+1: the extra, final
// slot stands for a virtual "past-exit" sink; no edge targets it, so it stays
// empty, and only ReverseWalk relies on its presence.
func ComputePredecessors(g Graph) [][]int {
	n := g.NumBlocks()
	predecessors := make([][]int, n+1)
	for id := 0; id < n; id++ {
		for _, succ := range g.Successors(id) {
			predecessors[succ] = append(predecessors[succ], id)
		}
	}
	return predecessors
}

// Walk returns the block ids in a Kahn-style topological order: a block is
// yielded only after every one of its predecessors has been yielded. The
// first id is always the entry block (0). Panics if the graph is cyclic or
// contains an unreachable block.
func Walk(g Graph) []int {
	n := g.NumBlocks()
	predecessorCounts := make([]int, n)
	for id := 0; id < n; id++ {
		for _, succ := range g.Successors(id) {
			predecessorCounts[succ]++
		}
	}
	for id, count := range predecessorCounts {
		if id == 0 {
			if count != 0 {
				panic("cfg: the entry block must have no predecessors")
			}
		} else if count == 0 {
			panic("cfg: unreachable block")
		}
	}

	order := make([]int, 0, n)
	queue := []int{0}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, succ := range g.Successors(id) {
			predecessorCounts[succ]--
			if predecessorCounts[succ] == 0 {
				queue = append(queue, succ)
			}
		}
		order = append(order, id)
	}
	if len(order) != n {
		panic("cfg: failed to visit all basic blocks")
	}
	return order
}

// ReverseWalk returns the block ids in reverse topological order: a block is
// yielded only after every one of its successors has been yielded. The first
// id is always the exit block (NumBlocks()-1). predecessors must be the
// result of ComputePredecessors(g).
func ReverseWalk(g Graph, predecessors [][]int) []int {
	n := g.NumBlocks()
	if len(predecessors) != n+1 {
		panic("cfg: predecessors has the wrong length")
	}
	successorCounts := make([]int, n)
	for id := 0; id < n; id++ {
		successorCounts[id] = len(g.Successors(id))
	}

	order := make([]int, 0, n)
	queue := []int{n - 1}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, pred := range predecessors[id] {
			successorCounts[pred]--
			if successorCounts[pred] == 0 {
				queue = append(queue, pred)
			}
		}
		order = append(order, id)
	}
	if len(order) != n {
		panic("cfg: failed to visit all basic blocks")
	}
	return order
}
