package plot3

import (
	"image/color"
	"math"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// viridis control points, sampled evenly from dark to light.
var viridis = []color.Color{
	color.NRGBA{R: 0x44, G: 0x01, B: 0x54, A: 0xff},
	color.NRGBA{R: 0x48, G: 0x28, B: 0x78, A: 0xff},
	color.NRGBA{R: 0x3e, G: 0x4a, B: 0x89, A: 0xff},
	color.NRGBA{R: 0x31, G: 0x68, B: 0x8e, A: 0xff},
	color.NRGBA{R: 0x26, G: 0x82, B: 0x8e, A: 0xff},
	color.NRGBA{R: 0x1f, G: 0x9e, B: 0x89, A: 0xff},
	color.NRGBA{R: 0x35, G: 0xb7, B: 0x79, A: 0xff},
	color.NRGBA{R: 0x6d, G: 0xcd, B: 0x59, A: 0xff},
	color.NRGBA{R: 0xb4, G: 0xde, B: 0x2c, A: 0xff},
	color.NRGBA{R: 0xfd, G: 0xe7, B: 0x25, A: 0xff},
}

// Viridis returns a perceptually uniform colormap going from dark purple
// to yellow. The range must be set before use.
func Viridis() (palette.ColorMap, error) {
	return moreland.NewLuminance(viridis)
}

// colorAt returns the colormap color for v clamped to the colormap range.
// NaN maps to the bottom of the range.
func colorAt(cmap palette.ColorMap, v float64) color.Color {
	if math.IsNaN(v) {
		v = cmap.Min()
	}
	v = math.Max(cmap.Min(), math.Min(cmap.Max(), v))
	c, err := cmap.At(v)
	if err != nil {
		panic(err) // v is always in range.
	}
	return c
}
