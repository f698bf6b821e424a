package viewer

import (
	"image"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestReadoutPos(t *testing.T) {
	bounds := image.Rect(0, 0, 400, 300)
	label := "abcdefghij" // 60 pixels wide.
	for _, test := range []struct {
		name         string
		pos          r2.Vec
		label        string
		wantX, wantY int
	}{
		{name: "center", pos: r2.Vec{X: 100, Y: 100}, label: label, wantX: 110, wantY: 74},
		{name: "right edge", pos: r2.Vec{X: 380, Y: 100}, label: label, wantX: 310, wantY: 74},
		{name: "top edge", pos: r2.Vec{X: 100, Y: 5}, label: label, wantX: 110, wantY: 15},
		{name: "bottom right", pos: r2.Vec{X: 395, Y: 295}, label: label, wantX: 325, wantY: 269},
		{name: "wider than window", pos: r2.Vec{X: 20, Y: 100}, label: strings.Repeat("x", 100), wantX: 0, wantY: 74},
	} {
		x, y := readoutPos(test.pos, test.label, bounds)
		if x != test.wantX || y != test.wantY {
			t.Errorf("%s: got (%d,%d), want (%d,%d)", test.name, x, y, test.wantX, test.wantY)
		}
	}
}

func TestPixelCenter(t *testing.T) {
	for _, test := range []struct {
		v, want float32
	}{
		{v: 3.7, want: 3.5},
		{v: 3, want: 3.5},
		{v: -0.2, want: -0.5},
	} {
		if got := pixelCenter(test.v); got != test.want {
			t.Errorf("pixelCenter(%g) = %g, want %g", test.v, got, test.want)
		}
	}
}
