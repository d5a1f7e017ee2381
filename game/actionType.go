package game

// ActionType tags the two kinds of action a player can take on their turn.
type ActionType int

const (
	MoveAction ActionType = iota // step along an edge, removing it
	CutAction                    // remove an edge next to the player without moving
)

func (a ActionType) String() string {
	switch a {
	case MoveAction:
		return "move"
	case CutAction:
		return "cut"
	default:
		return "unknown"
	}
}
