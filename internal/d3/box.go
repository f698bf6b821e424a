package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Box is a 3d bounding box.
type Box r3.Box

// NewBox creates a 3d box with a given center and size.
func NewBox(center, size r3.Vec) Box {
	half := r3.Scale(0.5, size)
	return Box{Min: r3.Sub(center, half), Max: r3.Add(center, half)}
}

// EmptyBox returns a box that contains no points. Including
// a point in it returns the degenerate box at that point.
func EmptyBox() Box {
	return Box{
		Min: Elem(math.Inf(1)),
		Max: Elem(math.Inf(-1)),
	}
}

// Include enlarges a 3d box to include a point.
func (a Box) Include(v r3.Vec) Box {
	return Box{
		Min: MinElem(a.Min, v),
		Max: MaxElem(a.Max, v),
	}
}

// Size returns the size of a 3d box.
func (a Box) Size() r3.Vec {
	return r3.Sub(a.Max, a.Min)
}

// Center returns the center of a 3d box.
func (a Box) Center() r3.Vec {
	return r3.Add(a.Min, r3.Scale(0.5, a.Size()))
}

// Widen returns the box with every zero sized axis grown to size
// (centered on the original value) so the box can be mapped onto another.
func (a Box) Widen(size float64) Box {
	half := size / 2
	if a.Min.X == a.Max.X {
		a.Min.X, a.Max.X = a.Min.X-half, a.Max.X+half
	}
	if a.Min.Y == a.Max.Y {
		a.Min.Y, a.Max.Y = a.Min.Y-half, a.Max.Y+half
	}
	if a.Min.Z == a.Max.Z {
		a.Min.Z, a.Max.Z = a.Min.Z-half, a.Max.Z+half
	}
	return a
}

// Vertices returns a slice of 3d box corner vertices.
// The i'th vertex takes the Max component on axis k when bit k of i is set.
func (a Box) Vertices() [8]r3.Vec {
	var v [8]r3.Vec
	for i := range v {
		v[i] = a.Min
		if i&1 != 0 {
			v[i].X = a.Max.X
		}
		if i&2 != 0 {
			v[i].Y = a.Max.Y
		}
		if i&4 != 0 {
			v[i].Z = a.Max.Z
		}
	}
	return v
}
