// Package transport solves the linear transport equation
//
//	du/dt + du/dx = f(t,x),  0 <= x < XMax, 0 <= t < TMax
//	u(0,x) = Initial(x), u(t,0) = Boundary(t)
//
// with the explicit upwind (left corner) finite difference scheme:
//
//	u[n][k] = u[n-1][k] + τ*(f(t_n, x_k) - (u[n-1][k] - u[n-1][k-1])/h)
//
// The x range is split in strips solved concurrently, each worker passing
// the value at the right edge of its strip to the next one every time step.
package transport

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// Problem defines the right hand side, initial and boundary conditions.
type Problem struct {
	// F is the source term f(t,x).
	F func(t, x float64) float64
	// Initial is u(0,x).
	Initial func(x float64) float64
	// Boundary is u(t,0).
	Boundary func(t float64) float64
}

// Grid is the numerical solution on a regular (t,x) grid.
type Grid struct {
	XStep, TStep float64
	// NX and NT are the number of grid points in x and t.
	NX, NT int
	// U holds the solution with rows of constant t: U[n*NX+k] = u(n*TStep, k*XStep).
	U []float64
}

// At returns the solution at time index n and position index k.
func (g *Grid) At(n, k int) float64 { return g.U[n*g.NX+k] }

// X returns the position of index k.
func (g *Grid) X(k int) float64 { return float64(k) * g.XStep }

// T returns the time of index n.
func (g *Grid) T(n int) float64 { return float64(n) * g.TStep }

// Solve integrates the problem on the grid defined by params using
// params.Workers goroutines. The result does not depend on the number of workers.
func Solve(ctx context.Context, prob Problem, params Params) (*Grid, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if prob.F == nil || prob.Initial == nil || prob.Boundary == nil {
		return nil, errors.New("transport: problem functions must not be nil")
	}
	nx := int(params.XMax / params.XStep)
	nt := int(params.TMax / params.TStep)
	if nx < 2 || nt < 1 {
		return nil, fmt.Errorf("transport: grid of %dx%d points too small", nt, nx)
	}
	workers := params.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > nx {
		workers = nx
	}
	g := &Grid{XStep: params.XStep, TStep: params.TStep, NX: nx, NT: nt, U: make([]float64, nx*nt)}
	for k := 0; k < nx; k++ {
		g.U[k] = prob.Initial(g.X(k))
	}
	for n := 0; n < nt; n++ {
		g.U[n*nx] = prob.Boundary(g.T(n))
	}

	// edges[w] carries the value at the right edge of strip w-1 for every time step.
	edges := make([]chan float64, workers)
	for w := 1; w < workers; w++ {
		edges[w] = make(chan float64, 1)
	}
	group, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		s := newStrip(w, workers, nx)
		var in, out chan float64
		if w > 0 {
			in = edges[w]
		}
		if w < workers-1 {
			out = edges[w+1]
		}
		group.Go(func() error {
			return s.solve(ctx, g, prob, in, out)
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return g, nil
}

// strip is the range [start, end) of x indices solved by one worker.
type strip struct {
	start, end int
}

// newStrip splits nx points evenly, the last strip takes the remainder.
func newStrip(w, workers, nx int) strip {
	size := nx / workers
	s := strip{start: w * size, end: (w + 1) * size}
	if w == workers-1 {
		s.end = nx
	}
	return s
}

func (s strip) solve(ctx context.Context, g *Grid, prob Problem, in <-chan float64, out chan<- float64) error {
	nx, tau, h := g.NX, g.TStep, g.XStep
	first := s.start
	if first == 0 {
		first = 1 // u(t,0) is the boundary condition.
	}
	for n := 1; n < g.NT; n++ {
		prev := g.U[(n-1)*nx:]
		var left float64
		if in != nil {
			select {
			case left = <-in:
			case <-ctx.Done():
				return ctx.Err()
			}
		} else {
			left = prev[first-1]
		}
		if out != nil {
			select {
			case out <- prev[s.end-1]:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		t := g.T(n)
		row := g.U[n*nx:]
		for k := first; k < s.end; k++ {
			u := prev[k]
			row[k] = u + tau*(prob.F(t, g.X(k))-(u-left)/h)
			if math.IsNaN(row[k]) || math.IsInf(row[k], 0) {
				return fmt.Errorf("transport: solution diverged at t=%g x=%g", t, g.X(k))
			}
			left = u
		}
	}
	return nil
}
