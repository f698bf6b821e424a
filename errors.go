package trisurf

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrMissingColumn is wrapped by a DataLoadError when the header lacks one of
	// the required columns.
	ErrMissingColumn = errors.New("missing required column")
	// ErrLengthMismatch is wrapped by a RenderError when the x, t and u series differ in length.
	ErrLengthMismatch = errors.New("series length mismatch")
	// ErrNonFinite is wrapped by a RenderError when a series holds NaN or Inf.
	ErrNonFinite = errors.New("non-finite value")
	// ErrDegenerate is wrapped by a RenderError when no triangle can be formed from the (x,t) points.
	ErrDegenerate = errors.New("points do not span a surface")
)

// DataLoadError is returned when a dataset file is missing, unreadable or malformed.
// Line and Column are zero when the error is not tied to a position in the file.
type DataLoadError struct {
	Path   string
	Line   int
	Column string
	Err    error
}

func (e *DataLoadError) Error() string {
	msg := "trisurf: load"
	if e.Path != "" {
		msg += " " + strconv.Quote(e.Path)
	}
	if e.Line > 0 {
		msg += " line " + strconv.Itoa(e.Line)
	}
	if e.Column != "" {
		msg += " column " + strconv.Quote(e.Column)
	}
	return msg + ": " + e.Err.Error()
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// RenderError is returned when the x, t, u series can not be turned into a surface plot.
type RenderError struct {
	// Op names the rendering step that failed.
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("trisurf: %s: %s", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// NewRenderError wraps err in a RenderError for operation op.
// Use errors.Is on the result to test for the sentinel errors above.
func NewRenderError(op string, err error) error {
	return &RenderError{Op: op, Err: err}
}
