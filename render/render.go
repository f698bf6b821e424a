// Package render streams the triangles of a surface mesh.
package render

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer yields triangles in batches. ReadTriangles writes up to len(t)
// triangles into t and returns io.EOF once all triangles have been read.
type Renderer interface {
	ReadTriangles(t []r3.Triangle) (int, error)
}
