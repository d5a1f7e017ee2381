package game

import "isolation/lattice"

// Edge is an undirected connection between adjacent vertices. Edges are only
// ever removed, never restored.
type Edge struct {
	A       lattice.Coord `json:"a"`
	B       lattice.Coord `json:"b"`
	Removed bool          `json:"removed"`
}

// Network is the board. Radius, Vertices and the key order never change after
// NewNetwork and are shared between clones; Edges is owned by each state.
type Network struct {
	Radius   int
	Vertices map[lattice.Coord]struct{}
	Edges    map[lattice.EdgeKey]Edge

	keys []lattice.EdgeKey // canonical edge order, shared
}

// NewNetwork builds the full hexagonal board of radius r with every edge present.
func NewNetwork(r int) *Network {
	vertices := lattice.Vertices(r)
	keys := lattice.Edges(r)

	n := &Network{
		Radius:   r,
		Vertices: make(map[lattice.Coord]struct{}, len(vertices)),
		Edges:    make(map[lattice.EdgeKey]Edge, len(keys)),
		keys:     keys,
	}
	for _, v := range vertices {
		n.Vertices[v] = struct{}{}
	}
	for _, k := range keys {
		n.Edges[k] = Edge{A: k.A, B: k.B}
	}
	return n
}

// HasEdge reports whether the edge between a and b exists and is not removed.
func (n *Network) HasEdge(a, b lattice.Coord) bool {
	e, ok := n.Edges[lattice.MakeEdgeKey(a, b)]
	return ok && !e.Removed
}

// Remove marks an edge removed. Missing edges are ignored.
func (n *Network) Remove(a, b lattice.Coord) {
	k := lattice.MakeEdgeKey(a, b)
	if e, ok := n.Edges[k]; ok {
		e.Removed = true
		n.Edges[k] = e
	}
}

// Degree counts the unremoved edges at c.
func (n *Network) Degree(c lattice.Coord) int {
	d := 0
	for _, nb := range lattice.Neighbors(c) {
		if n.HasEdge(c, nb) {
			d++
		}
	}
	return d
}

// Remaining counts unremoved edges.
func (n *Network) Remaining() int {
	count := 0
	for _, e := range n.Edges {
		if !e.Removed {
			count++
		}
	}
	return count
}

// Keys returns every edge key in canonical order.
func (n *Network) Keys() []lattice.EdgeKey {
	return n.keys
}

// clone copies the edge map. The vertex set is copied only when deep is set.
func (n *Network) clone(deep bool) *Network {
	c := &Network{
		Radius:   n.Radius,
		Vertices: n.Vertices,
		Edges:    make(map[lattice.EdgeKey]Edge, len(n.Edges)),
		keys:     n.keys,
	}
	for k, e := range n.Edges {
		c.Edges[k] = e
	}
	if deep {
		c.Vertices = make(map[lattice.Coord]struct{}, len(n.Vertices))
		for v := range n.Vertices {
			c.Vertices[v] = struct{}{}
		}
	}
	return c
}
