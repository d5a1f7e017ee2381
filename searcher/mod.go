package searcher

import "errors"

// Results are in [0, 1] from the point of view of the player to move at the
// node where they are recorded.
const (
	WIN  = 1.0
	LOSS = 0.0
	DRAW = 0.5
)

// ErrNoCandidate means the search ended without a single expanded root child,
// either because the budget ran out first or because the position is terminal.
var ErrNoCandidate = errors.New("search produced no candidate move")

// ErrNotOnTurn means the search was asked to move for a player who is not to move.
var ErrNotOnTurn = errors.New("player is not on turn")

// resultFor scores a finished game for player.
func resultFor(winner, player string) float64 {
	switch winner {
	case "":
		return DRAW
	case player:
		return WIN
	default:
		return LOSS
	}
}
