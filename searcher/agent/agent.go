package agent

import (
	"fmt"
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/meta"
)

// Agent picks moves for one seat of a game.
type Agent interface {
	// GetBestMove returns a legal move for playerID, who must be on turn.
	GetBestMove(state *game.GameState, playerID string) game.Move
	Name() string
	Difficulty() meta.Difficulty
	SetDifficulty(difficulty meta.Difficulty)
}

// Reporter is implemented by agents that measure their last decision.
type Reporter interface {
	LastSearch() (metric metrics.SearchMetric, fallback bool)
}

// Fallback returns the first legal action of playerID. It panics when there
// is none: asking for a move in a finished position is a caller bug.
func Fallback(state *game.GameState, playerID string) game.Move {
	idx := state.PlayerIndex(playerID)
	if idx < 0 {
		panic(fmt.Sprintf("unknown player %q", playerID))
	}
	actions := game.GetValidMoves(state, playerID).Actions(playerID, state.Players[idx].Position)
	if len(actions) == 0 {
		panic(fmt.Sprintf("no legal action for %s in game %s", playerID, state.ID))
	}
	return actions[0]
}
