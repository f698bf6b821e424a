package viewer

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	background     = color.White
	crosshairColor = color.NRGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
)

// drawCrosshair marks pos with a cross of arm length r and a small dot.
func drawCrosshair(dst *ebiten.Image, pos r2.Vec, r float32) {
	x, y := pixelCenter(float32(pos.X)), pixelCenter(float32(pos.Y))
	vector.StrokeLine(dst, x-r, y, x-2, y, 1, crosshairColor, false)
	vector.StrokeLine(dst, x+2, y, x+r, y, 1, crosshairColor, false)
	vector.StrokeLine(dst, x, y-r, x, y-2, 1, crosshairColor, false)
	vector.StrokeLine(dst, x, y+2, x, y+r, 1, crosshairColor, false)
	vector.DrawFilledCircle(dst, x, y, 1.5, crosshairColor, true)
}

// pixelCenter snaps v to the center of the pixel containing it so one pixel
// wide lines are not blurred over two pixels.
func pixelCenter(v float32) float32 {
	return math32.Floor(v) + 0.5
}

// Size of the debug font glyphs in pixels.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

// readoutPos returns the top left corner of a one line label for the point
// at pos. The label goes up and right of the point, flipped to the left when
// it would leave bounds, and is clamped inside bounds.
func readoutPos(pos r2.Vec, label string, bounds image.Rectangle) (x, y int) {
	const gap = 10
	w := float32(len(label) * glyphWidth)
	px, py := float32(pos.X), float32(pos.Y)
	minX, minY := float32(bounds.Min.X), float32(bounds.Min.Y)
	maxX, maxY := float32(bounds.Max.X)-w, float32(bounds.Max.Y)-glyphHeight
	lx := px + gap
	if lx > maxX {
		lx = px - gap - w
	}
	ly := py - gap - glyphHeight
	if ly < minY {
		ly = py + gap
	}
	lx = math32.Max(minX, math32.Min(lx, maxX))
	ly = math32.Max(minY, math32.Min(ly, maxY))
	return int(math32.Round(lx)), int(math32.Round(ly))
}
