package d3

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestBoxTransform(t *testing.T) {
	const tol = 1e-12
	from := Box{Min: r3.Vec{X: -3, Y: 10, Z: 0.5}, Max: r3.Vec{X: 5, Y: 110, Z: 0.75}}
	to := NewBox(r3.Vec{}, r3.Vec{X: 2, Y: 2, Z: 1.5})
	T := BoxTransform(from, to)
	for i, v := range from.Vertices() {
		got := T.Transform(v)
		want := to.Vertices()[i]
		if !EqualWithin(got, want, tol) {
			t.Errorf("vertex %d: got %v, want %v", i, got, want)
		}
		back := T.Inv().Transform(got)
		if !EqualWithin(back, v, tol) {
			t.Errorf("vertex %d inverse: got %v, want %v", i, back, v)
		}
	}
}

func TestBoxTransformFlat(t *testing.T) {
	from := Box{Min: r3.Vec{X: 0, Y: 0, Z: 4}, Max: r3.Vec{X: 1, Y: 1, Z: 4}}
	to := NewBox(r3.Vec{Z: 1}, Elem(2))
	got := BoxTransform(from, to).Transform(r3.Vec{X: 1, Y: 0, Z: 4})
	want := r3.Vec{X: 1, Y: -1, Z: 1}
	if !EqualWithin(got, want, 0) {
		t.Errorf("flat axis mapped to %v, want %v", got, want)
	}
	if w := from.Widen(2); w.Min.Z != 3 || w.Max.Z != 5 || w.Min.X != 0 {
		t.Errorf("unexpected widened box %+v", w)
	}
}
