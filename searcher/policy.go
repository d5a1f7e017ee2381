package searcher

import "math"

// DefaultExploration is sqrt(2), the textbook UCB1 constant.
const DefaultExploration = math.Sqrt2

type uct struct {
	c    float64
	logN float64
}

func newUCT(c float64, N int) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{c: c, logN: math.Log(float64(N))}
}

// evaluate scores child for its parent. Unvisited children score +Inf.
func (u uct) evaluate(child *decision) float64 {
	if child.visits == 0 {
		return math.Inf(1)
	}
	// UCB1 = (1 - w/n) + c*sqrt(ln(N)/n)
	return valueForParent(child) + u.c*math.Sqrt(u.logN/float64(child.visits))
}

// valueForParent converts a child's statistics, which are kept for the player
// to move at the child, into the win rate of the parent's player. Every
// comparison between siblings goes through here.
func valueForParent(child *decision) float64 {
	if child.visits == 0 {
		return DRAW
	}
	return 1 - child.wins/float64(child.visits)
}
