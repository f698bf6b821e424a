package viewer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/soypat/trisurf/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestPickerNearest(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	screen := d2.Box{Max: r2.Vec{X: 800, Y: 600}}
	pts := screen.RandomSet(rng, 500)
	// Points off screen must never be picked.
	for i := 0; i < len(pts); i += 7 {
		pts[i] = r2.Vec{X: math.NaN(), Y: math.NaN()}
	}
	pk := newPicker(pts)
	for _, q := range screen.RandomSet(rng, 200) {
		got, gotDist, ok := pk.nearest(q)
		if !ok {
			t.Fatal("no point found")
		}
		want, wantDist := -1, math.Inf(1)
		for i, p := range pts {
			if d := d2.Dist2(p, q); d < wantDist {
				want, wantDist = i, d
			}
		}
		if gotDist != wantDist {
			t.Fatalf("query %v: got point %d at %g, want point %d at %g", q, got, gotDist, want, wantDist)
		}
		if pk.position(got) != pts[got] {
			t.Fatalf("position of %d does not match", got)
		}
	}
}

func TestPickerEmpty(t *testing.T) {
	pk := newPicker([]r2.Vec{{X: math.NaN(), Y: 1}})
	if _, _, ok := pk.nearest(r2.Vec{}); ok {
		t.Error("picked a point from an empty picker")
	}
}
