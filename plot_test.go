package trisurf_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/soypat/trisurf"
)

func TestNewPlot(t *testing.T) {
	ds, err := trisurf.ReadCSV(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	p, err := ds.Plot()
	if err != nil {
		t.Fatal(err)
	}
	if p.XLabel != "x" || p.YLabel != "t" || p.ZLabel != "z" {
		t.Errorf("got labels %q %q %q, want x t z", p.XLabel, p.YLabel, p.ZLabel)
	}
	if !strings.Contains(p.Title, "u(x,t)") {
		t.Errorf("title %q does not name u(x,t)", p.Title)
	}
	if p.Len() != ds.Len() {
		t.Errorf("plot has %d points, want %d", p.Len(), ds.Len())
	}
	// Six points on a 3x2 grid form 4 triangles.
	if got := len(p.Triangles()); got != 4 {
		t.Errorf("got %d triangles, want 4", got)
	}
}

func TestNewPlotErrors(t *testing.T) {
	nan := math.NaN()
	for _, test := range []struct {
		name    string
		x, t, u []float64
		want    error
	}{
		{name: "short u", x: []float64{0, 1, 0}, t: []float64{0, 0, 1}, u: []float64{1, 2}, want: trisurf.ErrLengthMismatch},
		{name: "long t", x: []float64{0, 1, 0}, t: []float64{0, 0, 1, 1}, u: []float64{1, 2, 3}, want: trisurf.ErrLengthMismatch},
		// Lengths are checked before values.
		{name: "short with nan", x: []float64{nan, 1, 0}, t: []float64{0, 0}, u: []float64{1, 2, 3}, want: trisurf.ErrLengthMismatch},
		{name: "nan u", x: []float64{0, 1, 0}, t: []float64{0, 0, 1}, u: []float64{1, nan, 3}, want: trisurf.ErrNonFinite},
		{name: "inf x", x: []float64{0, math.Inf(-1), 0}, t: []float64{0, 0, 1}, u: []float64{1, 2, 3}, want: trisurf.ErrNonFinite},
		// Finite values whose spread does not fit in a float64.
		{name: "x range overflow", x: []float64{-1.7e308, 1.7e308, 0, 1}, t: []float64{0, 0, 1, 2}, u: []float64{1, 2, 3, 4}, want: trisurf.ErrNonFinite},
		{name: "u range overflow", x: []float64{0, 1, 0, 1}, t: []float64{0, 0, 1, 1}, u: []float64{-1.7e308, 1.7e308, 0, 1}, want: trisurf.ErrNonFinite},
		{name: "empty", want: trisurf.ErrDegenerate},
		{name: "two points", x: []float64{0, 1}, t: []float64{0, 1}, u: []float64{1, 2}, want: trisurf.ErrDegenerate},
		{name: "collinear", x: []float64{0, 1, 2}, t: []float64{0, 1, 2}, u: []float64{1, 2, 3}, want: trisurf.ErrDegenerate},
	} {
		p, err := trisurf.NewPlot(test.x, test.t, test.u)
		if p != nil {
			t.Errorf("%s: got plot, want nil", test.name)
		}
		var re *trisurf.RenderError
		if !errors.As(err, &re) {
			t.Errorf("%s: got error %v, want *RenderError", test.name, err)
			continue
		}
		if !errors.Is(err, test.want) {
			t.Errorf("%s: error %v does not wrap %v", test.name, err, test.want)
		}
	}
}

func TestNewPlotNonFiniteMessage(t *testing.T) {
	_, err := trisurf.NewPlot([]float64{0, 1, 0}, []float64{0, 0, 1}, []float64{1, 2, math.Inf(1)})
	if err == nil || !strings.Contains(err.Error(), "u[2]") {
		t.Errorf("error %v should name the offending value", err)
	}
}
