package player

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"isolation/game"
	"isolation/lattice"
	"isolation/meta"
	"strings"
	"time"
)

// HumanDifficulty labels agents controlled from a terminal.
const HumanDifficulty meta.Difficulty = "human"

var ErrUnknownCommand = errors.New("unknown command")

// Console asks a human for moves on in and writes prompts to out.
type Console struct {
	name string
	in   *bufio.Scanner
	out  io.Writer
}

func NewConsole(name string, in io.Reader, out io.Writer) *Console {
	return &Console{name: name, in: bufio.NewScanner(in), out: out}
}

func (c *Console) Name() string {
	return c.name
}

func (c *Console) Difficulty() meta.Difficulty {
	return HumanDifficulty
}

func (c *Console) SetDifficulty(meta.Difficulty) {}

// GetBestMove prompts until a legal action is entered. When the input is
// exhausted the first legal action is played.
func (c *Console) GetBestMove(state *game.GameState, playerID string) game.Move {
	idx := state.PlayerIndex(playerID)
	if idx < 0 {
		return game.Move{}
	}
	from := state.Players[idx].Position
	actions := game.GetValidMoves(state, playerID).Actions(playerID, from)

	for {
		fmt.Fprintf(c.out, "%s> ", Describe(state))
		if !c.in.Scan() {
			fmt.Fprintln(c.out, "input closed, playing the first legal action")
			if len(actions) == 0 {
				return game.Move{}
			}
			return stamp(actions[0])
		}

		line := strings.TrimSpace(c.in.Text())
		switch line {
		case "":
			continue
		case "list", "ls":
			for _, a := range actions {
				fmt.Fprintln(c.out, " ", a.Key())
			}
			continue
		}

		move, err := ParseMove(line, playerID, from)
		if err != nil {
			fmt.Fprintln(c.out, err)
			continue
		}
		if !game.IsValidMove(state, move) {
			fmt.Fprintf(c.out, "illegal action %s, type list to see the legal ones\n", move.Key())
			continue
		}
		return stamp(move)
	}
}

// ParseMove reads "move q,r", "cut q,r q,r" or "cut q,r|q,r". A bare
// coordinate is a step.
func ParseMove(line, playerID string, from lattice.Coord) (game.Move, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return game.Move{}, fmt.Errorf("empty input: %w", ErrUnknownCommand)
	}

	switch strings.ToLower(fields[0]) {
	case "move", "m":
		if len(fields) != 2 {
			return game.Move{}, fmt.Errorf("move takes one coordinate, got %q", line)
		}
		to, err := lattice.ParseKey(fields[1])
		if err != nil {
			return game.Move{}, err
		}
		return game.Move{Type: game.MoveAction, Player: playerID, From: from, To: to}, nil
	case "cut", "c":
		var edge lattice.EdgeKey
		var err error
		switch len(fields) {
		case 2:
			edge, err = lattice.ParseEdgeKey(fields[1])
		case 3:
			edge, err = lattice.ParseEdgeKey(fields[1] + "|" + fields[2])
		default:
			return game.Move{}, fmt.Errorf("cut takes two coordinates, got %q", line)
		}
		if err != nil {
			return game.Move{}, err
		}
		return game.Move{Type: game.CutAction, Player: playerID, Edge: edge.Endpoints()}, nil
	}

	if len(fields) == 1 {
		if to, err := lattice.ParseKey(fields[0]); err == nil {
			return game.Move{Type: game.MoveAction, Player: playerID, From: from, To: to}, nil
		}
	}
	return game.Move{}, fmt.Errorf("%q: %w", fields[0], ErrUnknownCommand)
}

// Describe is a one-line summary of the position for prompts and logs.
func Describe(state *game.GameState) string {
	var b strings.Builder
	for i, p := range state.Players {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s at %s (%d actions)", p.Name, p.Position.Key(), game.Mobility(state, p.ID))
	}
	fmt.Fprintf(&b, ", %d edges left, %s to move", state.Network.Remaining(), state.CurrentPlayer().Name)
	return b.String()
}

func stamp(m game.Move) game.Move {
	m.Timestamp = time.Now().UnixMilli()
	return m
}
