package game

// StateHash identifies a position independent of history: whose turn it is,
// where both players stand, the phase and which edges are gone.
type StateHash uint64

type Phase int

const (
	Playing Phase = iota
	Finished
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Evaluate scores a non-terminal state in [0, 1] from the point of view of
// the given player.
type Evaluate func(state *GameState, playerID string) float64
