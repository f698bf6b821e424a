package transport

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV writes the grid as x,t,u rows with a header, t major. At most
// maxRows rows are written along each axis; zero means 100.
func (g *Grid) WriteCSV(w io.Writer, maxRows int) error {
	if maxRows <= 0 {
		maxRows = 100
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "t", "u"}); err != nil {
		return err
	}
	tStep, xStep := decimation(g.NT, maxRows), decimation(g.NX, maxRows)
	record := make([]string, 3)
	for n := 0; n < g.NT; n += tStep {
		for k := 0; k < g.NX; k += xStep {
			record[0] = strconv.FormatFloat(g.X(k), 'f', 6, 64)
			record[1] = strconv.FormatFloat(g.T(n), 'f', 6, 64)
			record[2] = strconv.FormatFloat(g.At(n, k), 'f', 6, 64)
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// decimation returns the index step so that at most about max of n points are kept.
func decimation(n, max int) int {
	if n > max {
		return n / max
	}
	return 1
}
