package viewer

import (
	"math"

	"github.com/soypat/trisurf/plot3"
)

// Zoom limits.
const (
	minZoom = 0.25
	maxZoom = 8
)

// orbit rotates v after the mouse moved dx, dy pixels. Moving right turns
// the plot counter-clockwise seen from above, moving down raises the camera.
// Elevation is limited to the poles.
func orbit(v plot3.View, dx, dy, sensitivity float64) plot3.View {
	v.Azim = wrapDegrees(v.Azim - dx*sensitivity)
	v.Elev = math.Max(-90, math.Min(90, v.Elev+dy*sensitivity))
	return v
}

// zoom scales v by 10% per wheel step, positive steps zoom in.
func zoom(v plot3.View, steps float64) plot3.View {
	z := v.Zoom
	if z <= 0 {
		z = 1
	}
	z *= math.Pow(1.1, steps)
	v.Zoom = math.Max(minZoom, math.Min(maxZoom, z))
	return v
}

// wrapDegrees returns a in the range (-180, 180].
func wrapDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	switch {
	case a > 180:
		a -= 360
	case a <= -180:
		a += 360
	}
	return a
}
