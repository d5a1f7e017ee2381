package engine

import (
	"errors"
	"fmt"
	"isolation/game"
	"sync"
)

var (
	ErrGameOver    = errors.New("game is over - no moves allowed")
	ErrIllegalMove = errors.New("illegal move")
)

// Update is published after every accepted move.
type Update struct {
	Move  game.Move
	State *game.GameState
	Hash  game.StateHash
}

// UpdateGetter returns the oldest unread update without blocking. ok is false
// when nothing is pending.
type UpdateGetter func() (u Update, ok bool)

// Host owns the authoritative state of one game and accepts only legal moves.
type Host struct {
	mu      sync.Mutex
	state   *game.GameState
	updates chan Update
	over    bool
}

// NewHost starts hosting state. The update buffer holds one entry per edge,
// which bounds the number of moves, so Play never blocks.
func NewHost(state *game.GameState) (*Host, UpdateGetter) {
	h := &Host{
		state:   state,
		updates: make(chan Update, state.Network.Remaining()+1),
		over:    state.IsOver(),
	}
	if h.over {
		close(h.updates)
	}

	return h, func() (Update, bool) {
		select {
		case u, ok := <-h.updates:
			return u, ok
		default:
			// No updates yet
			return Update{}, false
		}
	}
}

func (h *Host) State() *game.GameState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *Host) Over() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.over
}

// Play validates move against the current state and applies it. The update
// channel is closed after the move that finishes the game.
func (h *Host) Play(move game.Move) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.over {
		return ErrGameOver
	}
	if !game.IsValidMove(h.state, move) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, move)
	}

	h.state = game.ApplyMove(h.state, move)
	h.updates <- Update{Move: move, State: h.state, Hash: h.state.Hash()}

	if h.state.IsOver() {
		h.over = true
		close(h.updates)
	}
	return nil
}
