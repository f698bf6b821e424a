package d3

import "gonum.org/v1/gonum/spatial/r3"

// Transform is an axis aligned scaling followed by a translation:
//
//	T(v) = Scale⊙v + Offset
//
// The zero value maps every point to the origin.
type Transform struct {
	Scale, Offset r3.Vec
}

// BoxTransform returns the Transform that maps box from onto box to.
// Axes of zero size in from are mapped to the center of to on that axis.
func BoxTransform(from, to Box) Transform {
	fs, ts := from.Size(), to.Size()
	var t Transform
	t.Scale.X, t.Offset.X = axisMap(from.Min.X, fs.X, to.Min.X, ts.X)
	t.Scale.Y, t.Offset.Y = axisMap(from.Min.Y, fs.Y, to.Min.Y, ts.Y)
	t.Scale.Z, t.Offset.Z = axisMap(from.Min.Z, fs.Z, to.Min.Z, ts.Z)
	return t
}

func axisMap(fmin, fsize, tmin, tsize float64) (scale, offset float64) {
	if fsize == 0 {
		return 0, tmin + tsize/2
	}
	scale = tsize / fsize
	return scale, tmin - fmin*scale
}

// Transform applies the Transform to the argument vector
// and returns the result.
func (t Transform) Transform(v r3.Vec) r3.Vec {
	return r3.Add(MulElem(t.Scale, v), t.Offset)
}

// Inv returns the inverse of the transform. Axes with zero scale
// can not be inverted and map to the zero value on that axis.
func (t Transform) Inv() Transform {
	var m Transform
	m.Scale.X, m.Offset.X = invAxis(t.Scale.X, t.Offset.X)
	m.Scale.Y, m.Offset.Y = invAxis(t.Scale.Y, t.Offset.Y)
	m.Scale.Z, m.Offset.Z = invAxis(t.Scale.Z, t.Offset.Z)
	return m
}

func invAxis(scale, offset float64) (float64, float64) {
	if scale == 0 {
		return 0, 0
	}
	return 1 / scale, -offset / scale
}
