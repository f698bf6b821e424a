package transport

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Params holds the grid and worker settings of a run.
type Params struct {
	XMax    float64 `yaml:"x_max"`
	TMax    float64 `yaml:"t_max"`
	XStep   float64 `yaml:"x_step"`
	TStep   float64 `yaml:"t_step"`
	Workers int     `yaml:"workers"`
	// MaxRows is the maximum number of rows along each of t and x written
	// by WriteCSV. Larger grids are decimated. Zero means 100.
	MaxRows int `yaml:"max_rows"`
}

// DefaultParams returns a 1x1 domain with 1000x1000 grid points.
func DefaultParams() Params {
	return Params{XMax: 1, TMax: 1, XStep: 1e-3, TStep: 1e-3, Workers: 4, MaxRows: 100}
}

// Courant returns the Courant number τ/h of the grid steps. The scheme is stable
// for values in (0,1] and exact for f=0 at 1.
func (p Params) Courant() float64 { return p.TStep / p.XStep }

// Validate checks the parameters describe a non-empty, stable grid.
func (p Params) Validate() error {
	switch {
	case !(p.XMax > 0) || !(p.TMax > 0):
		return errors.New("transport: x_max and t_max must be positive")
	case !(p.XStep > 0) || !(p.TStep > 0):
		return errors.New("transport: x_step and t_step must be positive")
	case p.Courant() > 1:
		return fmt.Errorf("transport: unstable scheme, t_step/x_step=%g > 1", p.Courant())
	case p.Workers < 0 || p.MaxRows < 0:
		return errors.New("transport: workers and max_rows must not be negative")
	}
	return nil
}

// ReadParams decodes YAML parameters from r. Fields not present in the
// document keep the value of DefaultParams.
func ReadParams(r io.Reader) (Params, error) {
	p := DefaultParams()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && err != io.EOF {
		return p, fmt.Errorf("transport: decoding params: %w", err)
	}
	return p, p.Validate()
}
