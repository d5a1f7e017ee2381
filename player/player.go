package player

import (
	"isolation/game"
	"isolation/meta"
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

// RandomDifficulty labels agents that do not search.
const RandomDifficulty meta.Difficulty = "random"

// Random plays a uniformly random legal action.
type Random struct {
	mu   sync.Mutex
	name string
	rng  *rand.Rand
}

func NewRandom(name string, seed uint64) *Random {
	return &Random{name: name, rng: rand.New(rand.NewSource(seed))}
}

func (p *Random) Name() string {
	return p.name
}

func (p *Random) Difficulty() meta.Difficulty {
	return RandomDifficulty
}

func (p *Random) SetDifficulty(meta.Difficulty) {}

// GetBestMove returns a random legal action, or the zero Move when the player
// has none.
func (p *Random) GetBestMove(state *game.GameState, playerID string) game.Move {
	idx := state.PlayerIndex(playerID)
	if idx < 0 {
		return game.Move{}
	}
	possible := game.GetValidMoves(state, playerID).Actions(playerID, state.Players[idx].Position)
	if len(possible) == 0 {
		return game.Move{}
	}

	p.mu.Lock()
	chosen := possible[p.rng.Intn(len(possible))]
	p.mu.Unlock()

	chosen.Timestamp = time.Now().UnixMilli()
	return chosen
}
