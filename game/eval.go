package game

import "isolation/lattice"

// Mobility counts the legal actions (steps plus cuts) of playerID.
func Mobility(state *GameState, playerID string) int {
	idx := state.PlayerIndex(playerID)
	if idx < 0 {
		return 0
	}
	return countActions(state, idx)
}

// EvaluateMobility returns the player's share of all available actions:
// own / (own + opponent). A side with no actions left scores 0 against a
// mobile opponent, 1 against a stuck one, and 0.5 when both are stuck.
func EvaluateMobility(state *GameState, playerID string) float64 {
	idx := state.PlayerIndex(playerID)
	if idx < 0 {
		return 0.5
	}
	own := countActions(state, idx)
	opp := countActions(state, 1-idx)
	switch {
	case own == 0 && opp == 0:
		return 0.5
	case own == 0:
		return 0
	case opp == 0:
		return 1
	}
	return float64(own) / float64(own+opp)
}

// countActions is len(Moves)+len(Cuts) without building the lists.
func countActions(state *GameState, idx int) int {
	net := state.Network
	pos := state.Players[idx].Position
	other := state.Players[1-idx].Position

	count := 0
	var seen [64]lattice.EdgeKey // at most 6 neighbors * 6 edges
	n := 0
	for _, nb := range lattice.Neighbors(pos) {
		if !lattice.InRadius(nb, net.Radius) {
			continue
		}
		if nb != other && net.HasEdge(pos, nb) {
			count++
		}
	next:
		for _, m := range lattice.Neighbors(nb) {
			k := lattice.MakeEdgeKey(nb, m)
			for _, s := range seen[:n] {
				if s == k {
					continue next
				}
			}
			seen[n] = k
			n++
			if e, ok := net.Edges[k]; ok && !e.Removed {
				count++
			}
		}
	}
	return count
}
