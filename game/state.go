package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"isolation/lattice"
)

type Player struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Color    string        `json:"color"`
	Position lattice.Coord `json:"position"`
}

// Config describes a new game. When StartPositions is nil both players start
// at the center.
type Config struct {
	GridRadius     int
	StartPositions *[2]lattice.Coord
}

// GameState is the full position of a game. Values returned by NewGame and
// ApplyMove are never mutated afterwards; search code mutates only its own
// clones through Advance.
type GameState struct {
	ID      string
	Players [2]Player
	Current int // index into Players of the player to move
	Network *Network
	Phase   Phase
	Winner  string // set iff Phase == Finished
	History []Move
}

// NewGame places both players and builds the full board. It panics on a
// non-positive radius or a start position off the board.
func NewGame(id string, p1, p2 Player, config Config) *GameState {
	if config.GridRadius <= 0 {
		panic(fmt.Sprintf("grid radius must be positive, got %d", config.GridRadius))
	}

	starts := [2]lattice.Coord{lattice.Center, lattice.Center}
	if config.StartPositions != nil {
		starts = *config.StartPositions
	}
	for _, s := range starts {
		if !lattice.InRadius(s, config.GridRadius) {
			panic(fmt.Sprintf("start position %v outside radius %d", s, config.GridRadius))
		}
	}
	p1.Position = starts[0]
	p2.Position = starts[1]

	return &GameState{
		ID:      id,
		Players: [2]Player{p1, p2},
		Current: 0,
		Network: NewNetwork(config.GridRadius),
		Phase:   Playing,
		History: []Move{},
	}
}

// OpposedStarts returns two opposite corners of the board on the first axis.
func OpposedStarts(radius int) *[2]lattice.Coord {
	return &[2]lattice.Coord{{Q: -radius, R: 0}, {Q: radius, R: 0}}
}

func (gs *GameState) CurrentPlayer() Player {
	return gs.Players[gs.Current]
}

func (gs *GameState) Opponent() Player {
	return gs.Players[1-gs.Current]
}

// PlayerIndex returns the index of the player with the given id, or -1.
func (gs *GameState) PlayerIndex(id string) int {
	for i, p := range gs.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (gs *GameState) IsOver() bool {
	return gs.Phase == Finished
}

// Clone returns an independent deep copy: edges, vertices, players and history.
func (gs *GameState) Clone() *GameState {
	c := *gs
	c.Network = gs.Network.clone(true)
	c.History = make([]Move, len(gs.History))
	copy(c.History, gs.History)
	return &c
}

// SimulationClone copies only what play mutates: the edge map and the
// player positions. Radius and vertices stay shared and history is dropped.
func (gs *GameState) SimulationClone() *GameState {
	c := *gs
	c.Network = gs.Network.clone(false)
	c.History = nil
	return &c
}

// Hash is a 64-bit FNV-1a digest of the position.
func (gs *GameState) Hash() StateHash {
	h := fnv.New64a()
	buf := make([]byte, 8)
	write := func(v int) {
		binary.LittleEndian.PutUint64(buf, uint64(int64(v)))
		h.Write(buf)
	}

	write(gs.Current)
	write(int(gs.Phase))
	for _, p := range gs.Players {
		write(p.Position.Q)
		write(p.Position.R)
	}
	for i, k := range gs.Network.keys {
		if gs.Network.Edges[k].Removed {
			write(i)
		}
	}
	return StateHash(h.Sum64())
}
