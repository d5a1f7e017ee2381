package lattice

import (
	"fmt"
	"strings"
)

// EdgeKey identifies an undirected edge. A is always the smaller endpoint, so
// MakeEdgeKey(a, b) == MakeEdgeKey(b, a).
type EdgeKey struct {
	A Coord
	B Coord
}

// MakeEdgeKey canonicalizes the endpoint pair.
func MakeEdgeKey(a, b Coord) EdgeKey {
	if b.Less(a) {
		a, b = b, a
	}
	return EdgeKey{A: a, B: b}
}

// String joins the endpoint keys smaller-first, e.g. "-1,0|0,0".
func (k EdgeKey) String() string {
	return k.A.Key() + "|" + k.B.Key()
}

// Endpoints returns the pair in canonical order.
func (k EdgeKey) Endpoints() [2]Coord {
	return [2]Coord{k.A, k.B}
}

// Has reports whether c is one of the endpoints.
func (k EdgeKey) Has(c Coord) bool {
	return k.A == c || k.B == c
}

// ParseEdgeKey is the inverse of EdgeKey.String.
func ParseEdgeKey(s string) (EdgeKey, error) {
	left, right, ok := strings.Cut(s, "|")
	if !ok {
		return EdgeKey{}, fmt.Errorf("parse edge %q: %w", s, ErrMalformedKey)
	}
	a, err := ParseKey(left)
	if err != nil {
		return EdgeKey{}, err
	}
	b, err := ParseKey(right)
	if err != nil {
		return EdgeKey{}, err
	}
	return MakeEdgeKey(a, b), nil
}

// Vertices enumerates every coordinate within radius r, ordered by Q then R.
func Vertices(r int) []Coord {
	out := make([]Coord, 0, 3*r*r+3*r+1)
	for q := -r; q <= r; q++ {
		for s := -r; s <= r; s++ {
			c := Coord{Q: q, R: s}
			if InRadius(c, r) {
				out = append(out, c)
			}
		}
	}
	return out
}

// Edges enumerates every adjacent pair within radius r exactly once.
func Edges(r int) []EdgeKey {
	out := make([]EdgeKey, 0, 9*r*r+3*r)
	for _, v := range Vertices(r) {
		// The first three directions are enough to visit each pair once.
		for _, d := range Directions[:3] {
			n := v.Add(d)
			if InRadius(n, r) {
				out = append(out, MakeEdgeKey(v, n))
			}
		}
	}
	return out
}
