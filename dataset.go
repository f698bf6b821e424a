package trisurf

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/soypat/trisurf/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Names of the columns a dataset file must provide.
const (
	ColumnX = "x"
	ColumnT = "t"
	ColumnU = "u"
)

// DefaultFile is the dataset file read by the plotting program.
const DefaultFile = "output.csv"

// Dataset is a table of samples of u(x,t). All columns have the same length
// and keep the row order of the source file.
// The slices are shared with callers and must not be modified.
type Dataset struct {
	X []float64
	T []float64
	U []float64
}

// LoadCSV reads the dataset stored in the comma separated file at path.
// The first row must be a header naming at least the x, t and u columns,
// other columns are ignored. Errors are of type *DataLoadError.
func LoadCSV(path string) (*Dataset, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}
	defer fp.Close()
	ds, err := ReadCSV(bufio.NewReader(fp))
	if err != nil {
		var dle *DataLoadError
		if errors.As(err, &dle) {
			dle.Path = path
		}
		return nil, err
	}
	return ds, nil
}

// ReadCSV reads a dataset from comma separated data. See LoadCSV.
func ReadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, &DataLoadError{Line: 1, Err: errors.New("empty file, expected header row")}
	} else if err != nil {
		return nil, csvError(err)
	}
	idx, err := columnIndices(header)
	if err != nil {
		return nil, err
	}
	ds := &Dataset{}
	cols := [3]*[]float64{&ds.X, &ds.T, &ds.U}
	names := [3]string{ColumnX, ColumnT, ColumnU}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, csvError(err)
		}
		line, _ := cr.FieldPos(0)
		for i, col := range cols {
			v, err := parseCell(record[idx[i]])
			if err != nil {
				return nil, &DataLoadError{Line: line, Column: names[i], Err: err}
			}
			*col = append(*col, v)
		}
	}
	return ds, nil
}

// Len returns the number of rows in the dataset.
func (ds *Dataset) Len() int { return len(ds.U) }

// Column returns the values of the named column.
func (ds *Dataset) Column(name string) ([]float64, error) {
	switch name {
	case ColumnX:
		return ds.X, nil
	case ColumnT:
		return ds.T, nil
	case ColumnU:
		return ds.U, nil
	}
	return nil, fmt.Errorf("dataset has no column %q", name)
}

// Bounds returns the box containing all finite (x,t,u) samples.
// The returned box is empty (Min > Max) when there are no finite samples.
func (ds *Dataset) Bounds() r3.Box {
	bb := d3.EmptyBox()
	for i := range ds.U {
		p := r3.Vec{X: ds.X[i], Y: ds.T[i], Z: ds.U[i]}
		if d3.IsFinite(p) {
			bb = bb.Include(p)
		}
	}
	return r3.Box(bb)
}

// columnIndices returns the header positions of the x, t and u columns.
func columnIndices(header []string) ([3]int, error) {
	idx := [3]int{-1, -1, -1}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		for j, want := range [3]string{ColumnX, ColumnT, ColumnU} {
			if name != want {
				continue
			}
			if idx[j] >= 0 {
				return idx, &DataLoadError{Line: 1, Column: want, Err: errors.New("duplicate column")}
			}
			idx[j] = i
		}
	}
	for j, want := range [3]string{ColumnX, ColumnT, ColumnU} {
		if idx[j] < 0 {
			return idx, &DataLoadError{Line: 1, Column: want, Err: ErrMissingColumn}
		}
	}
	return idx, nil
}

// parseCell parses a numeric cell. Empty cells are missing values and read as NaN.
func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
			// Overflow saturates to ±Inf, underflow to zero. Keep it.
			return v, nil
		}
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}

func csvError(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &DataLoadError{Line: perr.Line, Err: perr.Err}
	}
	return &DataLoadError{Err: err}
}
