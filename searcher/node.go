package searcher

import "golang.org/x/exp/rand"

// selectThenExpand walks down from root by UCB1 and expands one child at the
// first node that still has untried moves. The walk also stops at a terminal
// node, or at maxDepth when it is positive. It returns the node to simulate
// from and its depth below root.
func selectThenExpand(root *decision, c float64, maxDepth int, rng *rand.Rand) (*decision, int) {
	node, depth := root, 0
	for {
		if maxDepth > 0 && depth >= maxDepth {
			return node, depth
		}
		if len(node.untriedMoves()) > 0 {
			return node.expand(rng), depth + 1
		}
		if len(node.children) == 0 {
			return node, depth
		}
		node = node.pickChild(c)
		depth++
	}
}

// backup records result at node and flips it at every step towards the root.
func backup(node *decision, result float64) {
	for node != nil {
		node.update(result)
		result = 1 - result
		node = node.parent
	}
}
