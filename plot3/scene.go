package plot3

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/trisurf/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	fovy     = 30 // vertical field of view in degrees
	near     = 0.1
	far      = 50
	eyeDist  = 3.2 // camera distance to the box center at zoom 1
	boxDepth = 0.75
)

var (
	background = fauxgl.Color{R: 1, G: 1, B: 1, A: 1}
	axisColor  = fauxgl.Color{R: 0.15, G: 0.15, B: 0.15, A: 1}
	paneColor  = fauxgl.Color{R: 0.75, G: 0.75, B: 0.75, A: 1}
	// Unit vector towards a light at azimuth 225 deg and altitude asin(1/3).
	lightDir = r3.Vec{X: -2. / 3, Y: -2. / 3, Z: 1. / 3}
)

// sceneBox is the box data is scaled into, with aspect 4:4:3.
func sceneBox() d3.Box {
	return d3.NewBox(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: boxDepth})
}

// camera projects scene coordinates onto an image of width x height pixels.
type camera struct {
	matrix        fauxgl.Matrix
	eye           r3.Vec
	width, height int
}

func newCamera(v View, width, height int) camera {
	eye := r3.Scale(eyeDist/v.zoom(), d3.Spherical(v.Elev*math.Pi/180, v.Azim*math.Pi/180))
	up := r3.Vec{Z: 1}
	if math.Abs(math.Cos(v.Elev*math.Pi/180)) < 1e-9 {
		// Looking straight down or up, use the azimuth to orient the screen.
		up = d3.Spherical(0, v.Azim*math.Pi/180+math.Pi)
	}
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(vec(eye), fauxgl.Vector{}, vec(up)).Perspective(fovy, aspect, near, far)
	return camera{matrix: matrix, eye: eye, width: width, height: height}
}

// project returns the pixel position of scene point v. ok is false if v is
// behind the camera.
func (c camera) project(v r3.Vec) (px r2.Vec, ok bool) {
	w := c.matrix.MulPositionW(vec(v))
	if w.W <= 0 {
		return r2.Vec{}, false
	}
	ndcX, ndcY := w.X/w.W, w.Y/w.W
	return r2.Vec{
		X: (ndcX + 1) * float64(c.width) / 2,
		Y: (1 - ndcY) * float64(c.height) / 2,
	}, true
}

// scene holds the plot geometry in scene coordinates.
type scene struct {
	toScene d3.Transform
	// surface triangles with their flat colors.
	triangles []*fauxgl.Triangle
	// axes are the x, y and z axis segments.
	axes  [3][2]r3.Vec
	panes []*fauxgl.Line
}

func (p *Plot) scene() *scene {
	bb := p.bounds.Widen(1)
	s := &scene{toScene: d3.BoxTransform(bb, sceneBox())}
	s.triangles = make([]*fauxgl.Triangle, len(p.mesh))
	for i, t := range p.mesh {
		meanZ := t[0].Z/3 + t[1].Z/3 + t[2].Z/3
		var st [3]r3.Vec
		for k := range t {
			st[k] = s.toScene.Transform(t[k])
		}
		n := r3.Triangle(st).Normal()
		if norm := r3.Norm(n); norm > 0 {
			n = r3.Scale(1/norm, n)
		}
		clr := shade(fauxColor(colorAt(p.cmap, meanZ)), n)
		s.triangles[i] = fauxgl.NewTriangle(
			fauxgl.Vertex{Position: vec(st[0]), Normal: vec(n), Color: clr},
			fauxgl.Vertex{Position: vec(st[1]), Normal: vec(n), Color: clr},
			fauxgl.Vertex{Position: vec(st[2]), Normal: vec(n), Color: clr},
		)
	}
	return s
}

// shade darkens c according to the angle between normal n and the light.
// A surface facing the light keeps its color, one facing away is at 30%.
func shade(c fauxgl.Color, n r3.Vec) fauxgl.Color {
	s := r3.Dot(n, lightDir)
	k := 0.3 + 0.7*(s+1)/2
	return fauxgl.Color{R: c.R * k, G: c.G * k, B: c.B * k, A: c.A}
}

// layoutAxes places the axes on the box edges nearest to the camera.
func (s *scene) layoutAxes(v View) {
	box := sceneBox()
	dir := d3.Spherical(v.Elev*math.Pi/180, v.Azim*math.Pi/180)
	xNear, xFar := box.Max.X, box.Min.X
	if dir.X < 0 {
		xNear, xFar = xFar, xNear
	}
	yNear := box.Min.Y
	if dir.Y > 0 {
		yNear = box.Max.Y
	}
	zFloor, zTop := box.Min.Z, box.Max.Z
	if dir.Z < 0 {
		zFloor, zTop = zTop, zFloor
	}
	s.axes = [3][2]r3.Vec{
		{{X: box.Min.X, Y: yNear, Z: zFloor}, {X: box.Max.X, Y: yNear, Z: zFloor}},
		{{X: xNear, Y: box.Min.Y, Z: zFloor}, {X: xNear, Y: box.Max.Y, Z: zFloor}},
		{{X: xFar, Y: yNear, Z: box.Min.Z}, {X: xFar, Y: yNear, Z: box.Max.Z}},
	}
	// Floor outline and the back vertical edges.
	yFar := box.Max.Y + box.Min.Y - yNear
	floor := [4]r3.Vec{
		{X: box.Min.X, Y: box.Min.Y, Z: zFloor},
		{X: box.Max.X, Y: box.Min.Y, Z: zFloor},
		{X: box.Max.X, Y: box.Max.Y, Z: zFloor},
		{X: box.Min.X, Y: box.Max.Y, Z: zFloor},
	}
	s.panes = s.panes[:0]
	for i := range floor {
		s.panes = append(s.panes, fauxgl.NewLineForPoints(vec(floor[i]), vec(floor[(i+1)%4])))
	}
	for _, c := range [2]r3.Vec{{X: xFar, Y: yFar}, {X: xNear, Y: yFar}} {
		s.panes = append(s.panes, fauxgl.NewLineForPoints(
			vec(r3.Vec{X: c.X, Y: c.Y, Z: zFloor}),
			vec(r3.Vec{X: c.X, Y: c.Y, Z: zTop}),
		))
	}
}

// rasterize draws the scene at supersample times the requested size and
// downsamples it to width x height.
func (s *scene) rasterize(cam camera, supersample int) image.Image {
	w, h := cam.width*supersample, cam.height*supersample
	ctx := fauxgl.NewContext(w, h)
	ctx.ClearColorBufferWith(background)
	ctx.Cull = fauxgl.CullNone
	ctx.LineWidth = float64(supersample)

	// Triangles and lines are drawn one at a time so that pixels at equal
	// depth always resolve the same way.
	ctx.Shader = fauxgl.NewSolidColorShader(cam.matrix, paneColor)
	for _, l := range s.panes {
		ctx.DrawLine(l)
	}
	ctx.Shader = fauxgl.NewSolidColorShader(cam.matrix, axisColor)
	ctx.LineWidth = 1.5 * float64(supersample)
	for _, a := range s.axes {
		ctx.DrawLine(fauxgl.NewLineForPoints(vec(a[0]), vec(a[1])))
	}
	ctx.Shader = &vertexColorShader{matrix: cam.matrix}
	for _, t := range s.triangles {
		ctx.DrawTriangle(t)
	}
	img := ctx.Image()
	if supersample > 1 {
		img = resize.Resize(uint(cam.width), uint(cam.height), img, resize.Bilinear)
	}
	return img
}

// vertexColorShader paints fragments with the interpolated vertex color.
type vertexColorShader struct {
	matrix fauxgl.Matrix
}

func (sh *vertexColorShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	v.Output = sh.matrix.MulPositionW(v.Position)
	return v
}

func (sh *vertexColorShader) Fragment(v fauxgl.Vertex) fauxgl.Color {
	return v.Color
}

func vec(v r3.Vec) fauxgl.Vector {
	return fauxgl.V(v.X, v.Y, v.Z)
}

func fauxColor(c color.Color) fauxgl.Color {
	r, g, b, a := c.RGBA()
	return fauxgl.Color{
		R: float64(r) / 0xffff,
		G: float64(g) / 0xffff,
		B: float64(b) / 0xffff,
		A: float64(a) / 0xffff,
	}
}
