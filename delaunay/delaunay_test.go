package delaunay

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/soypat/trisurf/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestTriangulateRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	bb := d2.Box{Min: r2.Vec{X: -3, Y: 10}, Max: r2.Vec{X: 5, Y: 10.5}}
	for _, n := range []int{3, 4, 10, 100, 1000} {
		pts := bb.RandomSet(rng, n)
		tri, err := Triangulate(pts)
		if err != nil {
			t.Fatal(err)
		}
		want := 2*n - len(tri.Hull) - 2
		if tri.Len() != want {
			t.Errorf("n=%d: got %d triangles, want %d", n, tri.Len(), want)
		}
		checkTriangulation(t, tri)
	}
}

func TestTriangulateGrid(t *testing.T) {
	const nx, ny = 12, 7
	var pts []r2.Vec
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			pts = append(pts, r2.Vec{X: float64(i) * 0.1, Y: float64(j) * 50})
		}
	}
	tri, err := Triangulate(pts)
	if err != nil {
		t.Fatal(err)
	}
	// Every grid cell is split in two.
	if want := 2 * (nx - 1) * (ny - 1); tri.Len() != want {
		t.Errorf("got %d triangles, want %d", tri.Len(), want)
	}
	var area float64
	for i := 0; i < tri.Len(); i++ {
		area += tri.Vertices(i).Area()
	}
	wantArea := 0.1 * (nx - 1) * 50 * (ny - 1)
	if !closeRel(area, wantArea, 1e-9) {
		t.Errorf("got area %g, want %g", area, wantArea)
	}
	checkTriangulation(t, tri)
}

func TestTriangulateDuplicates(t *testing.T) {
	pts := []r2.Vec{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1},
		{X: 1, Y: 0}, {X: 0, Y: 0}, {X: 0.5, Y: 0.5}, {X: 1, Y: 1},
	}
	tri, err := Triangulate(pts)
	if err != nil {
		t.Fatal(err)
	}
	if tri.Len() != 4 {
		t.Errorf("got %d triangles, want 4", tri.Len())
	}
	for _, v := range tri.Triangles {
		if v == 4 || v == 5 || v == 7 {
			t.Errorf("repeated point %d used as vertex", v)
		}
	}
	checkTriangulation(t, tri)
}

func TestTriangulateErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		pts  []r2.Vec
		want error
	}{
		{name: "empty", want: ErrTooFewPoints},
		{name: "two", pts: []r2.Vec{{X: 1}, {Y: 1}}, want: ErrTooFewPoints},
		{name: "line", pts: []r2.Vec{{X: 0}, {X: 1}, {X: 2}, {X: 5}}, want: ErrCollinear},
		{name: "diagonal", pts: []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 2, Y: 4}, {X: -1, Y: -2}}, want: ErrCollinear},
		{name: "coincident", pts: []r2.Vec{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}}, want: ErrCollinear},
		{name: "nan", pts: []r2.Vec{{X: 0}, {X: 1}, {Y: nan()}}, want: ErrNonFinite},
		{name: "range overflow", pts: []r2.Vec{{X: -1.7e308}, {X: 1.7e308}, {Y: 1}, {X: 1, Y: 2}}, want: ErrNonFinite},
	} {
		_, err := Triangulate(test.pts)
		if !errors.Is(err, test.want) {
			t.Errorf("%s: got error %v, want %v", test.name, err, test.want)
		}
	}
}

func TestOrient(t *testing.T) {
	a, b := r2.Vec{X: 0.5, Y: 0.5}, r2.Vec{X: 12, Y: 12}
	for _, test := range []struct {
		c    r2.Vec
		want int
	}{
		{c: r2.Vec{X: 0, Y: 1}, want: 1},
		{c: r2.Vec{X: 1, Y: 0}, want: -1},
		{c: r2.Vec{X: 24, Y: 24}, want: 0},
		// Next representable values off the line.
		{c: r2.Vec{X: 24, Y: 24.000000000000004}, want: 1},
		{c: r2.Vec{X: 24.000000000000004, Y: 24}, want: -1},
	} {
		if got := orient(a, b, test.c); got != test.want {
			t.Errorf("orient(%v, %v, %v) = %d, want %d", a, b, test.c, got, test.want)
		}
	}
}

func TestInCircle(t *testing.T) {
	a, b, c := r2.Vec{X: 1, Y: 0}, r2.Vec{X: 0, Y: 1}, r2.Vec{X: -1, Y: 0}
	for _, test := range []struct {
		p    r2.Vec
		want bool
	}{
		{p: r2.Vec{}, want: true},
		{p: r2.Vec{X: 0, Y: -0.999}, want: true},
		{p: r2.Vec{X: 0, Y: -1}, want: false}, // cocircular.
		{p: r2.Vec{X: 2, Y: 2}, want: false},
	} {
		if got := inCircle(a, b, c, test.p); got != test.want {
			t.Errorf("inCircle(%v) = %v, want %v", test.p, got, test.want)
		}
	}
}

func BenchmarkTriangulate(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	pts := d2.Box{Max: r2.Vec{X: 1, Y: 1}}.RandomSet(rng, 10000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := Triangulate(pts)
		if err != nil {
			b.Fatal(err)
		}
	}
}

// checkTriangulation checks orientation, half-edge symmetry, the empty
// circumcircle property and the hull.
func checkTriangulation(t *testing.T, tri *Triangulation) {
	t.Helper()
	bb := d2.Set(tri.Points).Bounds()
	unit := make([]r2.Vec, len(tri.Points))
	for i, p := range tri.Points {
		unit[i] = bb.Unit(p)
	}
	used := make(map[int]bool)
	for i := 0; i < tri.Len(); i++ {
		v := tri.Triangle(i)
		a, b, c := unit[v[0]], unit[v[1]], unit[v[2]]
		if orient(a, b, c) <= 0 {
			t.Fatalf("triangle %d %v is not counter-clockwise", i, v)
		}
		used[v[0]], used[v[1]], used[v[2]] = true, true, true
		for j := range tri.Points {
			if j == v[0] || j == v[1] || j == v[2] {
				continue
			}
			if inCircle(a, b, c, unit[j]) && !isRepeat(tri, unit, j) {
				t.Fatalf("point %d inside circumcircle of triangle %d %v", j, i, v)
			}
		}
	}
	for e, o := range tri.Halfedges {
		if o == -1 {
			continue
		}
		if tri.Halfedges[o] != e {
			t.Fatalf("half-edge %d opposite %d is not symmetric", e, o)
		}
		// Opposite half-edges run between the same points in reverse.
		if tri.Triangles[e] != tri.Triangles[next(o)] || tri.Triangles[o] != tri.Triangles[next(e)] {
			t.Fatalf("half-edges %d and %d do not share points", e, o)
		}
	}
	for i, h := range tri.Hull {
		if !used[h] {
			t.Fatalf("hull point %d not in any triangle", h)
		}
		a, b := unit[h], unit[tri.Hull[(i+1)%len(tri.Hull)]]
		for j := range unit {
			if orient(a, b, unit[j]) < 0 {
				t.Fatalf("point %d outside hull edge %d", j, i)
			}
		}
	}
}

// isRepeat reports whether point j repeats a point with lower index.
func isRepeat(tri *Triangulation, unit []r2.Vec, j int) bool {
	for k := 0; k < j; k++ {
		if unit[k] == unit[j] {
			return true
		}
	}
	return false
}

func next(e int) int {
	if e%3 == 2 {
		return e - 2
	}
	return e + 1
}

func closeRel(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol*b
}

func nan() float64 {
	var zero float64
	return zero / zero
}
