package lattice

import "math"

// Pixel conversions assume pointy-top layout centered on the origin. They are
// only used for drawing and carry no rule semantics.

var sqrt3 = math.Sqrt(3)

func ToPixel(c Coord, size float64) (x, y float64) {
	x = size * sqrt3 * (float64(c.Q) + float64(c.R)/2)
	y = size * 1.5 * float64(c.R)
	return x, y
}

func FromPixel(x, y, size float64) Coord {
	q := (sqrt3/3*x - y/3) / size
	r := (2.0 / 3 * y) / size
	return round(q, r)
}

// round snaps fractional axial coordinates to the nearest lattice vertex.
func round(q, r float64) Coord {
	s := -q - r
	rq, rr, rs := math.Round(q), math.Round(r), math.Round(s)
	dq, dr, ds := math.Abs(rq-q), math.Abs(rr-r), math.Abs(rs-s)
	switch {
	case dq > dr && dq > ds:
		rq = -rr - rs
	case dr > ds:
		rr = -rq - rs
	}
	return Coord{Q: int(rq), R: int(rr)}
}
