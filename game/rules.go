package game

import (
	"fmt"

	"isolation/lattice"
)

// ValidMoves lists every legal action of one player: destinations to step to
// and edges (as endpoint pairs) to cut.
type ValidMoves struct {
	Moves []lattice.Coord
	Cuts  [][2]lattice.Coord
}

func (v ValidMoves) Empty() bool {
	return len(v.Moves) == 0 && len(v.Cuts) == 0
}

func (v ValidMoves) Len() int {
	return len(v.Moves) + len(v.Cuts)
}

// Actions converts the listing into concrete moves for the player standing at
// from, steps first.
func (v ValidMoves) Actions(playerID string, from lattice.Coord) []Move {
	out := make([]Move, 0, v.Len())
	for _, to := range v.Moves {
		out = append(out, Move{Type: MoveAction, Player: playerID, From: from, To: to})
	}
	for _, e := range v.Cuts {
		out = append(out, Move{Type: CutAction, Player: playerID, Edge: e})
	}
	return out
}

// IsValidMove reports whether move is legal in state. It never panics on
// malformed input.
func IsValidMove(state *GameState, move Move) bool {
	if state == nil || state.Phase != Playing {
		return false
	}
	mover := state.CurrentPlayer()
	if move.Player != mover.ID {
		return false
	}

	net := state.Network
	switch move.Type {
	case MoveAction:
		if move.From != mover.Position {
			return false
		}
		if !lattice.InRadius(move.To, net.Radius) || !lattice.Adjacent(mover.Position, move.To) {
			return false
		}
		if move.To == state.Opponent().Position {
			return false
		}
		return net.HasEdge(mover.Position, move.To)
	case CutAction:
		a, b := move.Edge[0], move.Edge[1]
		if !lattice.InRadius(a, net.Radius) || !lattice.InRadius(b, net.Radius) {
			return false
		}
		if !lattice.Adjacent(a, b) {
			return false
		}
		if !lattice.Adjacent(mover.Position, a) && !lattice.Adjacent(mover.Position, b) {
			return false
		}
		return net.HasEdge(a, b)
	default:
		return false
	}
}

// ApplyMove returns the state after move. The input state is left untouched.
// The move must already be valid; applying to a finished game panics.
func ApplyMove(state *GameState, move Move) *GameState {
	if state.Phase != Playing {
		panic(fmt.Sprintf("apply %v to finished game %s", move, state.ID))
	}

	next := *state
	next.Network = state.Network.clone(false)
	next.History = make([]Move, len(state.History), len(state.History)+1)
	copy(next.History, state.History)
	next.History = append(next.History, move)

	next.Advance(move)
	return &next
}

// Advance applies move to gs in place: positions and edges change, the turn
// passes, and the game finishes if the new player to move is isolated.
// Callers must own gs, e.g. through SimulationClone. History is not touched.
func (gs *GameState) Advance(move Move) {
	switch move.Type {
	case MoveAction:
		from := gs.Players[gs.Current].Position
		gs.Network.Remove(from, move.To)
		gs.Players[gs.Current].Position = move.To
	case CutAction:
		gs.Network.Remove(move.Edge[0], move.Edge[1])
	}

	gs.Current = 1 - gs.Current
	if !gs.hasAction(gs.Current) {
		gs.Phase = Finished
		gs.Winner = gs.Players[1-gs.Current].ID
	}
}

// GetValidMoves enumerates the legal steps and cuts of playerID. Order is
// deterministic: steps follow lattice.Directions, cuts follow the neighbors
// they were found from. An unknown player gets an empty result.
func GetValidMoves(state *GameState, playerID string) ValidMoves {
	idx := state.PlayerIndex(playerID)
	if idx < 0 {
		return ValidMoves{}
	}
	return validMoves(state, idx)
}

func validMoves(state *GameState, idx int) ValidMoves {
	net := state.Network
	pos := state.Players[idx].Position
	other := state.Players[1-idx].Position

	var out ValidMoves
	seen := make(map[lattice.EdgeKey]struct{})
	for _, n := range lattice.Neighbors(pos) {
		if !lattice.InRadius(n, net.Radius) {
			continue
		}
		if n != other && net.HasEdge(pos, n) {
			out.Moves = append(out.Moves, n)
		}
		// Every edge touching a neighbor is within reach of a cut.
		for _, m := range lattice.Neighbors(n) {
			k := lattice.MakeEdgeKey(n, m)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			if e, ok := net.Edges[k]; ok && !e.Removed {
				out.Cuts = append(out.Cuts, [2]lattice.Coord{k.A, k.B})
			}
		}
	}
	return out
}

// hasAction is a cheap emptiness test equivalent to !validMoves(...).Empty().
func (gs *GameState) hasAction(idx int) bool {
	net := gs.Network
	pos := gs.Players[idx].Position
	for _, n := range lattice.Neighbors(pos) {
		if !lattice.InRadius(n, net.Radius) {
			continue
		}
		for _, m := range lattice.Neighbors(n) {
			if net.HasEdge(n, m) {
				return true
			}
		}
	}
	return false
}

// CheckGameEnd reports whether the player to move is isolated, and if so
// the id of the opponent who wins.
func CheckGameEnd(state *GameState) (winner string, over bool) {
	if state.Phase == Finished {
		return state.Winner, true
	}
	if state.hasAction(state.Current) {
		return "", false
	}
	return state.Opponent().ID, true
}
