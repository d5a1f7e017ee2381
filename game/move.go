package game

import (
	"fmt"
	"time"

	"isolation/lattice"
)

// Move is either a step (From -> To) or a cut of Edge. Timestamp is unix
// milliseconds and is ignored when comparing actions.
type Move struct {
	Type      ActionType       `json:"type"`
	Player    string           `json:"player"`
	From      lattice.Coord    `json:"from"`
	To        lattice.Coord    `json:"to"`
	Edge      [2]lattice.Coord `json:"edge"`
	Timestamp int64            `json:"timestamp"`
}

func NewMove(player string, from, to lattice.Coord) Move {
	return Move{
		Type:      MoveAction,
		Player:    player,
		From:      from,
		To:        to,
		Timestamp: time.Now().UnixMilli(),
	}
}

func NewCut(player string, a, b lattice.Coord) Move {
	return Move{
		Type:      CutAction,
		Player:    player,
		Edge:      [2]lattice.Coord{a, b},
		Timestamp: time.Now().UnixMilli(),
	}
}

// SameAction reports whether two moves describe the same action by the same
// player. Cut endpoints are compared unordered.
func (m Move) SameAction(o Move) bool {
	if m.Type != o.Type || m.Player != o.Player {
		return false
	}
	if m.Type == CutAction {
		return lattice.MakeEdgeKey(m.Edge[0], m.Edge[1]) == lattice.MakeEdgeKey(o.Edge[0], o.Edge[1])
	}
	return m.From == o.From && m.To == o.To
}

// Key is a compact, timestamp-free label, e.g. "move 0,0>1,0" or "cut -1,0|0,0".
func (m Move) Key() string {
	if m.Type == CutAction {
		return "cut " + lattice.MakeEdgeKey(m.Edge[0], m.Edge[1]).String()
	}
	return "move " + m.From.Key() + ">" + m.To.Key()
}

func (m Move) String() string {
	return fmt.Sprintf("%s by %s", m.Key(), m.Player)
}
