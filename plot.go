package trisurf

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/trisurf/delaunay"
	"github.com/soypat/trisurf/plot3"
)

// Title and axis labels of the surface plot.
const (
	PlotTitle = "Graph of u(x,t)"
	LabelX    = "x"
	LabelT    = "t"
	LabelZ    = "z"
)

// NewPlot fits a triangulated surface over the scattered (x,t,u) points and
// returns the labeled plot, ready to be shown. Errors are of type *RenderError.
func NewPlot(x, t, u []float64) (*plot3.Plot, error) {
	const opCheck, opTriangulate = "check series", "triangulate"
	if len(x) != len(t) || len(x) != len(u) {
		return nil, NewRenderError(opCheck, fmt.Errorf("%w: %d x, %d t and %d u values",
			ErrLengthMismatch, len(x), len(t), len(u)))
	}
	for i := range u {
		for _, col := range [3]struct {
			name string
			v    float64
		}{{ColumnX, x[i]}, {ColumnT, t[i]}, {ColumnU, u[i]}} {
			if math.IsNaN(col.v) || math.IsInf(col.v, 0) {
				return nil, NewRenderError(opCheck, fmt.Errorf("%w: %s[%d] is %v", ErrNonFinite, col.name, i, col.v))
			}
		}
	}
	p, err := plot3.NewTrisurf(x, t, u)
	switch {
	case errors.Is(err, plot3.ErrNonFinite), errors.Is(err, delaunay.ErrNonFinite):
		return nil, NewRenderError(opCheck, fmt.Errorf("%w: %w", ErrNonFinite, err))
	case errors.Is(err, delaunay.ErrTooFewPoints), errors.Is(err, delaunay.ErrCollinear):
		return nil, NewRenderError(opTriangulate, fmt.Errorf("%w: %w", ErrDegenerate, err))
	case err != nil:
		return nil, NewRenderError(opTriangulate, err)
	}
	p.Title = PlotTitle
	p.XLabel, p.YLabel, p.ZLabel = LabelX, LabelT, LabelZ
	return p, nil
}

// Plot returns the surface plot of u over (x,t). See NewPlot.
func (ds *Dataset) Plot() (*plot3.Plot, error) {
	var cols [3][]float64
	for i, name := range [3]string{ColumnX, ColumnT, ColumnU} {
		c, err := ds.Column(name)
		if err != nil {
			return nil, NewRenderError("select columns", err)
		}
		cols[i] = c
	}
	return NewPlot(cols[0], cols[1], cols[2])
}
