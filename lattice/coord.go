package lattice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedKey is returned when a coordinate key cannot be parsed back into a Coord.
var ErrMalformedKey = errors.New("malformed coordinate key")

// Coord is a vertex of the triangular lattice in axial form. The third cube
// axis is implicit: S = -(Q+R).
type Coord struct {
	Q int `json:"q" yaml:"q"`
	R int `json:"r" yaml:"r"`
}

// Directions holds the six unit steps of the lattice
var Directions = [6]Coord{
	{1, 0}, {1, -1}, {0, -1},
	{-1, 0}, {-1, 1}, {0, 1},
}

// Center is the origin of every board.
var Center = Coord{}

func (c Coord) S() int {
	return -c.Q - c.R
}

func (c Coord) Add(d Coord) Coord {
	return Coord{Q: c.Q + d.Q, R: c.R + d.R}
}

// Key is the canonical string form "q,r".
func (c Coord) Key() string {
	return strconv.Itoa(c.Q) + "," + strconv.Itoa(c.R)
}

func (c Coord) String() string {
	return c.Key()
}

// Less orders coordinates by Q, then R.
func (c Coord) Less(o Coord) bool {
	if c.Q != o.Q {
		return c.Q < o.Q
	}
	return c.R < o.R
}

// ParseKey parses a key produced by Coord.Key.
func ParseKey(key string) (Coord, error) {
	q, r, ok := strings.Cut(key, ",")
	if !ok {
		return Coord{}, fmt.Errorf("parse %q: %w", key, ErrMalformedKey)
	}
	qi, err := strconv.Atoi(q)
	if err != nil {
		return Coord{}, fmt.Errorf("parse %q: %w", key, ErrMalformedKey)
	}
	ri, err := strconv.Atoi(r)
	if err != nil {
		return Coord{}, fmt.Errorf("parse %q: %w", key, ErrMalformedKey)
	}
	return Coord{Q: qi, R: ri}, nil
}

// Neighbors returns the six adjacent coordinates, in Directions order,
// regardless of any board boundary.
func Neighbors(c Coord) [6]Coord {
	var out [6]Coord
	for i, d := range Directions {
		out[i] = c.Add(d)
	}
	return out
}

// InRadius reports whether c lies on the hexagonal board of radius r.
func InRadius(c Coord, r int) bool {
	return abs(c.Q) <= r && abs(c.R) <= r && abs(c.S()) <= r
}

// Distance is the lattice metric: the max of the absolute cube-coordinate differences.
func Distance(a, b Coord) int {
	return max(abs(a.Q-b.Q), abs(a.R-b.R), abs(a.S()-b.S()))
}

func Adjacent(a, b Coord) bool {
	return Distance(a, b) == 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
