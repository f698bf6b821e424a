package plot3

import (
	"errors"
	"image"
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// dpi of rendered figures. Text sizes are given in points.
const dpi = 96

// ImageConfig sets the size and quality of a rendered figure.
// Zero fields take the default value.
type ImageConfig struct {
	// Width and Height of the figure in pixels. Default 800x600.
	Width, Height int
	// Supersample is the factor the surface is oversampled by before being
	// downsampled for anti-aliasing. Default 2, 1 disables oversampling.
	Supersample int
}

func (cfg ImageConfig) withDefaults() ImageConfig {
	if cfg.Width == 0 {
		cfg.Width = 800
	}
	if cfg.Height == 0 {
		cfg.Height = 600
	}
	if cfg.Supersample == 0 {
		cfg.Supersample = 2
	}
	return cfg
}

// Figure is a rendered plot.
type Figure struct {
	Image image.Image
	// Points holds the pixel position in Image of every data point, in data
	// order. Points behind the camera are NaN.
	Points []r2.Vec
}

// Image renders the plot and returns the figure image.
func (p *Plot) Image(cfg ImageConfig) (image.Image, error) {
	fig, err := p.Render(cfg)
	if err != nil {
		return nil, err
	}
	return fig.Image, nil
}

// Render draws the surface, axes, title and color bar of the plot.
func (p *Plot) Render(cfg ImageConfig) (*Figure, error) {
	cfg = cfg.withDefaults()
	if cfg.Width < 64 || cfg.Height < 64 {
		return nil, errors.New("plot3: figure must be at least 64x64 pixels")
	}
	if cfg.Supersample < 1 {
		return nil, errors.New("plot3: supersample must be positive")
	}
	cnv := vgimg.NewWith(vgimg.UseWH(pxLen(cfg.Width), pxLen(cfg.Height)), vgimg.UseDPI(dpi))
	dc := draw.New(cnv)
	cbWidth := dc.Size().X * 0.14
	main := draw.Crop(dc, 0, -cbWidth, 0, 0)

	sp := plot.New()
	sp.Title.Text = p.Title
	sp.HideAxes()
	sp.X.Min, sp.X.Max = 0, 1
	sp.Y.Min, sp.Y.Max = 0, 1
	data := sp.DataCanvas(main)
	size := data.Size()
	iw, ih := lenPx(size.X), lenPx(size.Y)
	if iw < 1 || ih < 1 {
		return nil, errors.New("plot3: no room left for the surface")
	}

	cam := newCamera(p.View, iw, ih)
	sc := p.scene()
	sc.layoutAxes(p.View)
	surf := sc.rasterize(cam, cfg.Supersample)
	sp.Add(plotter.NewImage(surf, 0, 0, 1, 1))
	sp.Draw(main)

	// toCanvas converts a pixel position in the surface image to canvas coordinates.
	toCanvas := func(px r2.Vec) vg.Point {
		return vg.Point{
			X: data.Min.X + vg.Length(px.X/float64(iw))*size.X,
			Y: data.Max.Y - vg.Length(px.Y/float64(ih))*size.Y,
		}
	}
	p.drawAxisLabels(data, sc, cam, toCanvas)

	if err := p.drawColorBar(dc, data, cbWidth); err != nil {
		return nil, err
	}

	// Offset of the surface image inside the figure, in pixels.
	offset := r2.Vec{
		X: float64(lenPx(data.Min.X - dc.Min.X)),
		Y: float64(lenPx(dc.Max.Y - data.Max.Y)),
	}
	points := make([]r2.Vec, p.Len())
	for i := range points {
		px, ok := cam.project(sc.toScene.Transform(p.Point(i)))
		if !ok {
			points[i] = r2.Vec{X: math.NaN(), Y: math.NaN()}
			continue
		}
		points[i] = r2.Add(offset, px)
	}
	return &Figure{Image: cnv.Image(), Points: points}, nil
}

// drawAxisLabels writes the axis names and the data range at both ends of
// each axis, pushed away from the center of the box.
func (p *Plot) drawAxisLabels(c draw.Canvas, sc *scene, cam camera, toCanvas func(r2.Vec) vg.Point) {
	center, ok := cam.project(r3.Vec{})
	if !ok {
		return
	}
	nameStyle := labelStyle(12, color.Black)
	tickStyle := labelStyle(9, color.Gray{Y: 0x40})
	fromScene := sc.toScene.Inv()
	names := [3]string{p.XLabel, p.YLabel, p.ZLabel}
	for k, axis := range sc.axes {
		mid := r3.Scale(0.5, r3.Add(axis[0], axis[1]))
		pm, ok0 := cam.project(mid)
		pa, ok1 := cam.project(axis[0])
		pb, ok2 := cam.project(axis[1])
		if !ok0 || !ok1 || !ok2 {
			continue
		}
		out := r2.Sub(pm, center)
		if n := r2.Norm(out); n > 0 {
			out = r2.Scale(1/n, out)
		} else {
			out = r2.Vec{Y: 1}
		}
		if names[k] != "" {
			c.FillText(nameStyle, toCanvas(r2.Add(pm, r2.Scale(34, out))), names[k])
		}
		lo := component(fromScene.Transform(axis[0]), k)
		hi := component(fromScene.Transform(axis[1]), k)
		c.FillText(tickStyle, toCanvas(r2.Add(pa, r2.Scale(14, out))), formatTick(lo))
		c.FillText(tickStyle, toCanvas(r2.Add(pb, r2.Scale(14, out))), formatTick(hi))
	}
}

// drawColorBar draws the colormap legend to the right of the surface.
func (p *Plot) drawColorBar(dc, data draw.Canvas, width vg.Length) error {
	cp := plot.New()
	cp.HideX()
	cp.Add(&plotter.ColorBar{ColorMap: p.cmap, Vertical: true})
	shrink := data.Size().Y * 0.15
	c := draw.Crop(dc, dc.Size().X-width, -width*0.35, data.Min.Y-dc.Min.Y+shrink, data.Max.Y-dc.Max.Y-shrink)
	if c.Size().X <= 0 || c.Size().Y <= 0 {
		return errors.New("plot3: no room left for the color bar")
	}
	cp.Draw(c)
	return nil
}

func labelStyle(size vg.Length, clr color.Color) text.Style {
	return text.Style{
		Color:   clr,
		Font:    font.From(plot.DefaultFont, size),
		XAlign:  draw.XCenter,
		YAlign:  draw.YCenter,
		Handler: plot.DefaultTextHandler,
	}
}

func formatTick(v float64) string {
	if math.Abs(v) < 1e-12 {
		v = 0
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func component(v r3.Vec, k int) float64 {
	switch k {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	return v.Z
}

// pxLen returns the length of n pixels.
func pxLen(n int) vg.Length { return vg.Length(n) * vg.Inch / dpi }

// lenPx returns the number of pixels closest to length l.
func lenPx(l vg.Length) int { return int(math.Round(float64(l / vg.Inch * dpi))) }
