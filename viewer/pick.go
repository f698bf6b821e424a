package viewer

import (
	"math"

	"github.com/soypat/trisurf/internal/d2"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	_ kdtree.Interface  = screenPoints{}
	_ kdtree.Comparable = screenPoint{}
	_ kdtree.SortSlicer = screenPlane{}
)

// picker finds the data point drawn nearest to a screen position.
type picker struct {
	tree      *kdtree.Tree
	positions []r2.Vec
}

// newPicker indexes the screen positions of data points. NaN positions
// (points not on screen) are never picked.
func newPicker(positions []r2.Vec) *picker {
	pts := make(screenPoints, 0, len(positions))
	for i, p := range positions {
		if d2.IsFinite(p) {
			pts = append(pts, screenPoint{pos: p, idx: i})
		}
	}
	pk := &picker{positions: positions}
	if len(pts) > 0 {
		pk.tree = kdtree.New(pts, false)
	}
	return pk
}

// nearest returns the index of the data point nearest to q and its squared
// distance. ok is false if there are no points.
func (pk *picker) nearest(q r2.Vec) (idx int, dist2 float64, ok bool) {
	if pk.tree == nil {
		return -1, math.Inf(1), false
	}
	got, dist2 := pk.tree.Nearest(screenPoint{pos: q, idx: -1})
	if got == nil {
		return -1, math.Inf(1), false
	}
	return got.(screenPoint).idx, dist2, true
}

// position returns the screen position of data point i.
func (pk *picker) position(i int) r2.Vec { return pk.positions[i] }

// screenPoint is a data point index at a screen position.
type screenPoint struct {
	pos r2.Vec
	idx int
}

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d.
func (a screenPoint) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return component(a.pos, int(d)) - component(b.(screenPoint).pos, int(d))
}

// Dims returns the number of dimensions described in the Comparable.
func (a screenPoint) Dims() int { return 2 }

// Distance returns the squared Euclidean distance between the receiver and
// the parameter.
func (a screenPoint) Distance(b kdtree.Comparable) float64 {
	return d2.Dist2(a.pos, b.(screenPoint).pos)
}

type screenPoints []screenPoint

func (s screenPoints) Index(i int) kdtree.Comparable { return s[i] }

// Len returns the length of the list.
func (s screenPoints) Len() int { return len(s) }

// Pivot partitions the list based on the dimension specified.
func (s screenPoints) Pivot(d kdtree.Dim) int {
	p := screenPlane{dim: int(d), points: s}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (s screenPoints) Slice(start, end int) kdtree.Interface { return s[start:end] }

// screenPlane sorts points along one dimension.
type screenPlane struct {
	dim    int
	points screenPoints
}

func (p screenPlane) Less(i, j int) bool {
	return component(p.points[i].pos, p.dim) < component(p.points[j].pos, p.dim)
}
func (p screenPlane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}
func (p screenPlane) Len() int {
	return len(p.points)
}
func (p screenPlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}

func component(v r2.Vec, dim int) float64 {
	if dim == 0 {
		return v.X
	}
	return v.Y
}
