package searcher

import (
	"isolation/game"
	"isolation/lattice"
	"isolation/meta"

	"golang.org/x/exp/rand"
)

// Biased playout weights. A step scores the exits left at its destination, a
// cut scores cutBase plus cutPressure when it touches the opponent's vertex.
// Every score gets up to biasJitter of uniform noise so playouts differ.
const (
	biasJitter  = 1.0
	cutBase     = 0.5
	cutPressure = 1.5
)

// rollout plays a simulation clone of state until the game ends or cutoff
// actions have been played, and scores the result for player. full reports
// whether the game actually ended.
func rollout(state *game.GameState, player string, policy meta.SimulationPolicy, cutoff int, evaluate game.Evaluate, rng *rand.Rand) (result float64, full bool) {
	sim := state.SimulationClone()
	for depth := 0; sim.Phase == game.Playing && depth < cutoff; depth++ {
		mover := sim.CurrentPlayer()
		moves := game.GetValidMoves(sim, mover.ID)
		if moves.Empty() {
			// Only reachable from a hand-built position; Advance catches it otherwise.
			sim.Phase = game.Finished
			sim.Winner = sim.Opponent().ID
			break
		}

		var move game.Move
		if policy == meta.BiasedPolicy {
			move = chooseBiased(sim, moves, rng)
		} else {
			move = chooseRandom(sim, moves, rng)
		}
		sim.Advance(move)
	}

	if sim.Phase == game.Finished {
		return resultFor(sim.Winner, player), true
	}
	return evaluate(sim, player), false
}

func chooseRandom(sim *game.GameState, moves game.ValidMoves, rng *rand.Rand) game.Move {
	return action(sim, moves, rng.Intn(moves.Len()))
}

func chooseBiased(sim *game.GameState, moves game.ValidMoves, rng *rand.Rand) game.Move {
	opponent := sim.Opponent().Position

	best, bestScore := 0, -1.0
	for i := 0; i < moves.Len(); i++ {
		var score float64
		if i < len(moves.Moves) {
			// The edge walked along disappears, hence the -1.
			score = float64(sim.Network.Degree(moves.Moves[i]) - 1)
		} else {
			e := moves.Cuts[i-len(moves.Moves)]
			score = cutBase
			if lattice.MakeEdgeKey(e[0], e[1]).Has(opponent) {
				score += cutPressure
			}
		}
		score += biasJitter * rng.Float64()
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return action(sim, moves, best)
}

// action builds the i-th entry of moves, steps first, for the player to move.
func action(sim *game.GameState, moves game.ValidMoves, i int) game.Move {
	mover := sim.CurrentPlayer()
	if i < len(moves.Moves) {
		return game.Move{Type: game.MoveAction, Player: mover.ID, From: mover.Position, To: moves.Moves[i]}
	}
	return game.Move{Type: game.CutAction, Player: mover.ID, Edge: moves.Cuts[i-len(moves.Moves)]}
}
