// Package plot3 draws triangulated surface plots of scattered 3D data.
//
// A Plot is rasterized in software with fauxgl and composed into a figure
// with title and color bar using gonum/plot. Rendering is deterministic.
package plot3

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/trisurf/delaunay"
	"github.com/soypat/trisurf/internal/d3"
	"github.com/soypat/trisurf/render"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/palette"
)

var (
	// ErrLengthMismatch is returned when the x, y and z series differ in length.
	ErrLengthMismatch = errors.New("plot3: series length mismatch")
	// ErrNonFinite is returned when a series contains NaN or Inf or when
	// the range of a series does not fit in a float64.
	ErrNonFinite = errors.New("plot3: non-finite value")
)

// View sets the camera position around the plot.
type View struct {
	// Elev is the camera elevation above the xy plane in degrees.
	Elev float64
	// Azim is the camera azimuth in degrees, measured counter-clockwise from the x axis.
	Azim float64
	// Zoom scales the plot on screen. Zero means 1.
	Zoom float64
}

// DefaultView returns the view new plots start with.
func DefaultView() View {
	return View{Elev: 30, Azim: -60, Zoom: 1}
}

func (v View) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

// Plot is a triangulated surface z = f(x,y) fit over scattered points.
type Plot struct {
	Title  string
	XLabel string
	YLabel string
	ZLabel string
	View   View

	x, y, z []float64
	tri     *delaunay.Triangulation
	mesh    []r3.Triangle
	bounds  d3.Box
	cmap    palette.ColorMap
}

// NewTrisurf triangulates the (x,y) points with a Delaunay triangulation and
// returns a surface plot with heights z. The three series must have the same
// length and hold only finite values. The slices are retained by the plot.
func NewTrisurf(x, y, z []float64) (*Plot, error) {
	if len(x) != len(y) || len(x) != len(z) {
		return nil, fmt.Errorf("%w: len(x)=%d len(y)=%d len(z)=%d", ErrLengthMismatch, len(x), len(y), len(z))
	}
	for _, s := range [3][]float64{x, y, z} {
		for i, v := range s {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w at index %d: %v", ErrNonFinite, i, v)
			}
		}
	}
	bb := d3.EmptyBox()
	for i := range z {
		bb = bb.Include(r3.Vec{X: x[i], Y: y[i], Z: z[i]})
	}
	if len(z) > 0 && !d3.IsFinite(bb.Size()) {
		return nil, fmt.Errorf("%w: data range %v overflows", ErrNonFinite, bb.Size())
	}
	pts := make([]r2.Vec, len(x))
	for i := range pts {
		pts[i] = r2.Vec{X: x[i], Y: y[i]}
	}
	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		return nil, err
	}
	sr, err := render.NewSurfaceRenderer(tri, z)
	if err != nil {
		return nil, err
	}
	mesh, err := render.RenderAll(sr)
	if err != nil {
		return nil, err
	}
	cmap, err := Viridis()
	if err != nil {
		return nil, err
	}
	zmin, zmax := floats.Min(z), floats.Max(z)
	if zmin == zmax {
		zmin, zmax = zmin-0.5, zmax+0.5
	}
	cmap.SetMin(zmin)
	cmap.SetMax(zmax)
	return &Plot{
		View:   DefaultView(),
		x:      x,
		y:      y,
		z:      z,
		tri:    tri,
		mesh:   mesh,
		bounds: bb,
		cmap:   cmap,
	}, nil
}

// Len returns the number of data points.
func (p *Plot) Len() int { return len(p.z) }

// Point returns the i'th data point.
func (p *Plot) Point(i int) r3.Vec {
	return r3.Vec{X: p.x[i], Y: p.y[i], Z: p.z[i]}
}

// Triangles returns the surface triangles in data coordinates.
func (p *Plot) Triangles() []r3.Triangle { return p.mesh }

// Bounds returns the box containing all data points.
func (p *Plot) Bounds() r3.Box { return r3.Box(p.bounds) }

// ColorMap returns the colormap used for the surface. Its range is the
// range of z, widened when z is constant.
func (p *Plot) ColorMap() palette.ColorMap { return p.cmap }
