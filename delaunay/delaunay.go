// Package delaunay computes Delaunay triangulations of scattered 2D points.
//
// The triangulation is built with a radial sweep: points are inserted in
// order of distance to a seed triangle while a convex hull is kept and
// Delaunay edge flips are applied after each insertion. Connectivity is
// stored as half-edges: half-edge e belongs to triangle e/3, starts at
// vertex Triangles[e] and Halfedges[e] is the opposite half-edge in the
// adjacent triangle, or -1 on the hull.
package delaunay

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/soypat/trisurf/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// ErrTooFewPoints is returned for point sets with less than 3 points.
	ErrTooFewPoints = errors.New("delaunay: need at least 3 points")
	// ErrCollinear is returned when no triangle can be formed from the points.
	ErrCollinear = errors.New("delaunay: all points are coincident or collinear")
	// ErrNonFinite is returned when a coordinate, or the extent of the
	// coordinates along an axis, is NaN or infinite.
	ErrNonFinite = errors.New("delaunay: point has NaN or infinite coordinate")
)

// Triangulation is a Delaunay triangulation of a point set.
type Triangulation struct {
	// Points are the input points, not modified.
	Points []r2.Vec
	// Triangles holds 3 point indices per triangle in counter-clockwise order.
	Triangles []int
	// Halfedges holds the opposite half-edge of each half-edge or -1 if on the hull.
	Halfedges []int
	// Hull holds the point indices of the convex hull in counter-clockwise order.
	Hull []int
}

// Len returns the number of triangles.
func (t *Triangulation) Len() int { return len(t.Triangles) / 3 }

// Triangle returns the point indices of the i'th triangle.
func (t *Triangulation) Triangle(i int) [3]int {
	return [3]int{t.Triangles[3*i], t.Triangles[3*i+1], t.Triangles[3*i+2]}
}

// Vertices returns the coordinates of the i'th triangle.
func (t *Triangulation) Vertices(i int) r2.Triangle {
	tri := t.Triangle(i)
	return r2.Triangle{t.Points[tri[0]], t.Points[tri[1]], t.Points[tri[2]]}
}

// Triangulate computes the Delaunay triangulation of points.
// The triangulation is computed on the points mapped into the unit square
// so that the result does not depend on the relative scale of the axes.
// Repeated points are triangulated once, by their lowest index.
func Triangulate(points []r2.Vec) (*Triangulation, error) {
	if len(points) < 3 {
		return nil, ErrTooFewPoints
	}
	for _, p := range points {
		if !d2.IsFinite(p) {
			return nil, ErrNonFinite
		}
	}
	bb := d2.Set(points).Bounds()
	if !d2.IsFinite(bb.Size()) {
		return nil, fmt.Errorf("%w: coordinate range %v overflows", ErrNonFinite, bb.Size())
	}
	unit := make([]r2.Vec, len(points))
	for i, p := range points {
		unit[i] = bb.Unit(p)
	}
	s := newSweep(unit)
	if err := s.run(); err != nil {
		return nil, err
	}
	return &Triangulation{
		Points:    points,
		Triangles: s.triangles[:s.trianglesLen],
		Halfedges: s.halfedges[:s.trianglesLen],
		Hull:      s.hull(),
	}, nil
}

// sweep holds the state of the radial sweep triangulation.
type sweep struct {
	pts []r2.Vec

	triangles    []int
	halfedges    []int
	trianglesLen int

	// Convex hull as a doubly linked list over point indices.
	hullStart int
	hullSize  int
	hullNext  []int
	hullPrev  []int
	// hullTri[i] is the half-edge going from i to hullNext[i].
	hullTri  []int
	hullHash []int
	center   r2.Vec

	edgeStack [512]int
}

func newSweep(pts []r2.Vec) *sweep {
	n := len(pts)
	maxTriangles := 2*n - 5
	if maxTriangles < 1 {
		maxTriangles = 1
	}
	hashSize := int(math.Ceil(math.Sqrt(float64(n))))
	return &sweep{
		pts:       pts,
		triangles: make([]int, 3*maxTriangles),
		halfedges: make([]int, 3*maxTriangles),
		hullNext:  make([]int, n),
		hullPrev:  make([]int, n),
		hullTri:   make([]int, n),
		hullHash:  make([]int, hashSize),
	}
}

func (s *sweep) run() error {
	pts := s.pts
	bb := d2.Set(pts).Bounds()
	c := bb.Center()

	// Seed triangle: point closest to center, its nearest neighbour
	// and the point forming the smallest circumcircle with both.
	i0, i1, i2 := -1, -1, -1
	minDist := math.Inf(1)
	for i, p := range pts {
		if d := d2.Dist2(c, p); d < minDist {
			i0, minDist = i, d
		}
	}
	if i0 < 0 {
		return ErrNonFinite
	}
	minDist = math.Inf(1)
	for i, p := range pts {
		if d := d2.Dist2(pts[i0], p); i != i0 && d > 0 && d < minDist {
			i1, minDist = i, d
		}
	}
	if i1 < 0 {
		return ErrCollinear
	}
	minRadius := math.Inf(1)
	for i, p := range pts {
		if i == i0 || i == i1 {
			continue
		}
		if r := circumradius2(pts[i0], pts[i1], p); r < minRadius {
			i2, minRadius = i, r
		}
	}
	if i2 < 0 {
		return ErrCollinear
	}
	switch orient(pts[i0], pts[i1], pts[i2]) {
	case 0:
		return ErrCollinear
	case -1:
		i1, i2 = i2, i1
	}
	s.center = circumcenter(pts[i0], pts[i1], pts[i2])

	dists := make([]float64, len(pts))
	ids := make([]int, len(pts))
	for i, p := range pts {
		ids[i] = i
		dists[i] = d2.Dist2(p, s.center)
	}
	sort.Slice(ids, func(a, b int) bool {
		da, db := dists[ids[a]], dists[ids[b]]
		return da < db || (da == db && ids[a] < ids[b])
	})

	s.hullStart = i0
	s.hullSize = 3
	s.hullNext[i0], s.hullPrev[i2] = i1, i1
	s.hullNext[i1], s.hullPrev[i0] = i2, i2
	s.hullNext[i2], s.hullPrev[i1] = i0, i0
	s.hullTri[i0], s.hullTri[i1], s.hullTri[i2] = 0, 1, 2
	for i := range s.hullHash {
		s.hullHash[i] = -1
	}
	s.hullHash[s.hashKey(pts[i0])] = i0
	s.hullHash[s.hashKey(pts[i1])] = i1
	s.hullHash[s.hashKey(pts[i2])] = i2
	s.addTriangle(i0, i1, i2, -1, -1, -1)

	var prev r2.Vec
	for k, i := range ids {
		p := pts[i]
		if k > 0 && p == prev {
			continue
		}
		prev = p
		if i == i0 || i == i1 || i == i2 {
			continue
		}
		s.insert(i)
	}
	return nil
}

// insert adds point i, which lies outside the current hull, to the triangulation.
func (s *sweep) insert(i int) {
	p := s.pts[i]
	// Find a hull vertex near the point's angle and walk to the first visible edge.
	start := 0
	key := s.hashKey(p)
	for j := 0; j < len(s.hullHash); j++ {
		start = s.hullHash[(key+j)%len(s.hullHash)]
		if start != -1 && start != s.hullNext[start] {
			break
		}
	}
	start = s.hullPrev[start]
	e := start
	for !s.visible(p, e, s.hullNext[e]) {
		e = s.hullNext[e]
		if e == start {
			// Point is on the hull, which only happens for repeated points.
			return
		}
	}

	t := s.addTriangle(e, i, s.hullNext[e], -1, -1, s.hullTri[e])
	s.hullTri[i] = s.legalize(t + 2)
	s.hullTri[e] = t
	s.hullSize++

	// Walk forward through the hull adding triangles and flipping.
	n := s.hullNext[e]
	for q := s.hullNext[n]; s.visible(p, n, q); q = s.hullNext[n] {
		t = s.addTriangle(n, i, q, s.hullTri[i], -1, s.hullTri[n])
		s.hullTri[i] = s.legalize(t + 2)
		s.hullNext[n] = n // removed from hull.
		s.hullSize--
		n = q
	}
	// Walk backward from the other side.
	if e == start {
		for q := s.hullPrev[e]; s.visible(p, q, e); q = s.hullPrev[e] {
			t = s.addTriangle(q, i, e, -1, s.hullTri[e], s.hullTri[q])
			s.legalize(t + 2)
			s.hullTri[q] = t
			s.hullNext[e] = e
			s.hullSize--
			e = q
		}
	}
	s.hullStart = e
	s.hullPrev[i] = e
	s.hullNext[e] = i
	s.hullPrev[n] = i
	s.hullNext[i] = n
	s.hullHash[s.hashKey(p)] = i
	s.hullHash[s.hashKey(s.pts[e])] = e
}

// visible reports whether p lies strictly outside the hull edge a->b.
func (s *sweep) visible(p r2.Vec, a, b int) bool {
	return orient(s.pts[a], s.pts[b], p) < 0
}

// legalize restores the Delaunay condition around half-edge a by flipping
// edges and returns the half-edge that replaced a's predecessor on the hull.
//
//	      pl                    pl
//	     /||\                  /  \
//	  al/ || \bl            al/    \a
//	   /  ||  \              /      \
//	  /  a||b  \    flip    /___ar___\
//	p0\   ||   /p1   =>   p0\---bl---/p1
//	   \  ||  /              \      /
//	  ar\ || /br             b\    /br
//	     \||/                  \  /
//	      pr                    pr
func (s *sweep) legalize(a int) int {
	var i, ar int
	for {
		b := s.halfedges[a]
		a0 := a - a%3
		ar = a0 + (a+2)%3
		if b == -1 {
			if i == 0 {
				break
			}
			i--
			a = s.edgeStack[i]
			continue
		}
		b0 := b - b%3
		al := a0 + (a+1)%3
		bl := b0 + (b+2)%3
		p0 := s.triangles[ar]
		pr := s.triangles[a]
		pl := s.triangles[al]
		p1 := s.triangles[bl]
		if inCircle(s.pts[p0], s.pts[pr], s.pts[pl], s.pts[p1]) {
			s.triangles[a] = p1
			s.triangles[b] = p0
			hbl := s.halfedges[bl]
			if hbl == -1 {
				// Edge swapped on the other side of the hull; fix the hull reference.
				e := s.hullStart
				for {
					if s.hullTri[e] == bl {
						s.hullTri[e] = a
						break
					}
					e = s.hullPrev[e]
					if e == s.hullStart {
						break
					}
				}
			}
			s.link(a, hbl)
			s.link(b, s.halfedges[ar])
			s.link(ar, bl)
			br := b0 + (b+1)%3
			if i < len(s.edgeStack) {
				s.edgeStack[i] = br
				i++
			}
		} else {
			if i == 0 {
				break
			}
			i--
			a = s.edgeStack[i]
		}
	}
	return ar
}

func (s *sweep) link(a, b int) {
	s.halfedges[a] = b
	if b != -1 {
		s.halfedges[b] = a
	}
}

func (s *sweep) addTriangle(i0, i1, i2, a, b, c int) int {
	t := s.trianglesLen
	s.triangles[t] = i0
	s.triangles[t+1] = i1
	s.triangles[t+2] = i2
	s.link(t, a)
	s.link(t+1, b)
	s.link(t+2, c)
	s.trianglesLen += 3
	return t
}

func (s *sweep) hashKey(p r2.Vec) int {
	n := len(s.hullHash)
	return int(math.Floor(pseudoAngle(r2.Sub(p, s.center))*float64(n))) % n
}

func (s *sweep) hull() []int {
	hull := make([]int, 0, s.hullSize)
	e := s.hullStart
	for i := 0; i < s.hullSize; i++ {
		hull = append(hull, e)
		e = s.hullNext[e]
	}
	return hull
}

// pseudoAngle is monotonic with the counter-clockwise angle of d, in [0,1).
func pseudoAngle(d r2.Vec) float64 {
	if d == (r2.Vec{}) {
		return 0
	}
	p := d.X / (math.Abs(d.X) + math.Abs(d.Y))
	if d.Y > 0 {
		return (3 - p) / 4
	}
	return (1 + p) / 4
}
