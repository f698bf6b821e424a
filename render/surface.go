package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/soypat/trisurf/delaunay"
	"github.com/soypat/trisurf/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// SurfaceRenderer lifts a 2D triangulation into 3D using a height per point.
// Point (x,y) of the triangulation becomes vertex (x,y,h).
type SurfaceRenderer struct {
	tri     *delaunay.Triangulation
	heights []float64
	next    int
}

// NewSurfaceRenderer returns a renderer yielding one 3D triangle per triangle
// of tri, in the same order and with the same vertex winding.
func NewSurfaceRenderer(tri *delaunay.Triangulation, heights []float64) (*SurfaceRenderer, error) {
	if tri == nil {
		return nil, errors.New("nil triangulation")
	}
	if len(heights) != len(tri.Points) {
		return nil, fmt.Errorf("got %d heights for %d points", len(heights), len(tri.Points))
	}
	return &SurfaceRenderer{tri: tri, heights: heights}, nil
}

// ReadTriangles writes the next lifted triangles into dst.
func (s *SurfaceRenderer) ReadTriangles(dst []r3.Triangle) (n int, err error) {
	if len(dst) == 0 {
		return 0, io.ErrShortBuffer
	}
	for n < len(dst) && s.next < s.tri.Len() {
		dst[n] = s.Triangle(s.next)
		n++
		s.next++
	}
	if s.next == s.tri.Len() {
		return n, io.EOF
	}
	return n, nil
}

// Triangle returns the i'th lifted triangle.
func (s *SurfaceRenderer) Triangle(i int) r3.Triangle {
	idx := s.tri.Triangle(i)
	var t r3.Triangle
	for k, j := range idx {
		t[k] = d3.FromR2(s.tri.Points[j], s.heights[j])
	}
	return t
}

// Reset rewinds the renderer to the first triangle.
func (s *SurfaceRenderer) Reset() { s.next = 0 }
