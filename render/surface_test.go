package render_test

import (
	"errors"
	"io"
	"math/rand"
	"testing"

	"github.com/soypat/trisurf/delaunay"
	"github.com/soypat/trisurf/render"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSurfaceRenderAll(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const n = 500
	pts := make([]r2.Vec, n)
	heights := make([]float64, n)
	for i := range pts {
		pts[i] = r2.Vec{X: rng.Float64(), Y: 10 * rng.Float64()}
		heights[i] = rng.NormFloat64()
	}
	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		t.Fatal(err)
	}
	r, err := render.NewSurfaceRenderer(tri, heights)
	if err != nil {
		t.Fatal(err)
	}
	model, err := render.RenderAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(model) != tri.Len() {
		t.Fatalf("got %d triangles, want %d", len(model), tri.Len())
	}
	for i, got := range model {
		idx := tri.Triangle(i)
		for k, j := range idx {
			want := r3.Vec{X: pts[j].X, Y: pts[j].Y, Z: heights[j]}
			if got[k] != want {
				t.Fatalf("triangle %d vertex %d: got %v, want %v", i, k, got[k], want)
			}
		}
		// Winding is kept so normals of the lifted triangles point up.
		if n := got.Normal(); n.Z <= 0 {
			t.Errorf("triangle %d normal %v points down", i, n)
		}
	}

	// Drained renderer yields nothing until reset.
	model2, err := render.RenderAll(r)
	if err != nil || len(model2) != 0 {
		t.Errorf("drained renderer: got %d triangles and error %v", len(model2), err)
	}
	r.Reset()
	model2, err = render.RenderAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(model2) != len(model) {
		t.Errorf("after reset got %d triangles, want %d", len(model2), len(model))
	}
}

func TestSurfaceReadTriangles(t *testing.T) {
	pts := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0.5, Y: 0.4}}
	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		t.Fatal(err)
	}
	r, err := render.NewSurfaceRenderer(tri, []float64{0, 1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.ReadTriangles(nil); !errors.Is(err, io.ErrShortBuffer) {
		t.Errorf("empty buffer: got error %v, want io.ErrShortBuffer", err)
	}
	buf := make([]r3.Triangle, 1)
	total := 0
	for {
		n, err := r.ReadTriangles(buf)
		total += n
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatal(err)
		}
		if n != 1 {
			t.Fatalf("got %d triangles with nil error, want 1", n)
		}
	}
	if total != tri.Len() || total != 4 {
		t.Errorf("got %d triangles, want 4", total)
	}
}

func TestNewSurfaceRendererErrors(t *testing.T) {
	if _, err := render.NewSurfaceRenderer(nil, nil); err == nil {
		t.Error("expected error for nil triangulation")
	}
	tri, err := delaunay.Triangulate([]r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := render.NewSurfaceRenderer(tri, []float64{1, 2}); err == nil {
		t.Error("expected error for height count mismatch")
	}
}
