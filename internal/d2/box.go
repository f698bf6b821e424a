package d2

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// Box is a 2d bounding box.
type Box r2.Box

// EmptyBox returns a box that contains no points. Including
// a point in it returns the degenerate box at that point.
func EmptyBox() Box {
	return Box{
		Min: Elem(math.Inf(1)),
		Max: Elem(math.Inf(-1)),
	}
}

// Include enlarges a 2d box to include a point.
func (a Box) Include(v r2.Vec) Box {
	return Box{MinElem(a.Min, v), MaxElem(a.Max, v)}
}

// Size returns the size of a 2d box.
func (a Box) Size() r2.Vec {
	return r2.Sub(a.Max, a.Min)
}

// Center returns the center of a 2d box.
func (a Box) Center() r2.Vec {
	return r2.Add(a.Min, r2.Scale(0.5, a.Size()))
}

// Unit maps v into the unit square spanned by the box. Axes of zero
// size map to 0.5 so that a flat box does not produce NaNs.
func (a Box) Unit(v r2.Vec) r2.Vec {
	size := a.Size()
	u := r2.Vec{X: 0.5, Y: 0.5}
	if size.X > 0 {
		u.X = (v.X - a.Min.X) / size.X
	}
	if size.Y > 0 {
		u.Y = (v.Y - a.Min.Y) / size.Y
	}
	return u
}

// RandomSet returns a set of n random points from within a bounding box.
func (a Box) RandomSet(rng *rand.Rand, n int) Set {
	s := make([]r2.Vec, n)
	for i := range s {
		s[i] = r2.Vec{
			X: a.Min.X + (a.Max.X-a.Min.X)*rng.Float64(),
			Y: a.Min.Y + (a.Max.Y-a.Min.Y)*rng.Float64(),
		}
	}
	return s
}
