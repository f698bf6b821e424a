// Package viewer shows plots in a desktop window.
package viewer

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/soypat/trisurf/plot3"
	"gonum.org/v1/gonum/spatial/r2"
)

// Config sets up the viewer window. Zero fields take the default value.
type Config struct {
	// Width and Height are the initial window size. Default 900x700.
	Width, Height int
	// Supersample is the anti-aliasing factor of still frames. Default 2.
	Supersample int
	// Sensitivity is the rotation in degrees per pixel dragged. Default 0.4.
	Sensitivity float64
	// PickRadius is the maximum distance in pixels from the cursor to a data
	// point for its coordinates to be shown. Default 12.
	PickRadius float64
}

func (cfg Config) withDefaults() Config {
	if cfg.Width <= 0 {
		cfg.Width = 900
	}
	if cfg.Height <= 0 {
		cfg.Height = 700
	}
	if cfg.Supersample <= 0 {
		cfg.Supersample = 2
	}
	if cfg.Sensitivity == 0 {
		cfg.Sensitivity = 0.4
	}
	if cfg.PickRadius <= 0 {
		cfg.PickRadius = 12
	}
	return cfg
}

// Show opens a window displaying p and blocks until it is closed by the user.
// Dragging with the left mouse button rotates the plot, the wheel zooms,
// R resets the view and Escape or Q close the window.
// Show must be called from the main goroutine. p.View is updated as the
// user moves the camera.
func Show(p *plot3.Plot, cfg Config) error {
	cfg = cfg.withDefaults()
	title := p.Title
	if title == "" {
		title = "plot"
	}
	g := &game{
		plot: p,
		cfg:  cfg,
		home: p.View,
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

// frameKey identifies the inputs of a rendered frame.
type frameKey struct {
	view          plot3.View
	width, height int
	supersample   int
}

type game struct {
	plot *plot3.Plot
	cfg  Config
	home plot3.View

	width, height int

	dragging bool
	lastX    int
	lastY    int

	frame    *ebiten.Image
	frameKey frameKey
	picker   *picker
	hovered  int
	cursor   r2.Vec
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.plot.View = g.home
	}
	cx, cy := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.dragging = true
	case g.dragging && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.plot.View = orbit(g.plot.View, float64(cx-g.lastX), float64(cy-g.lastY), g.cfg.Sensitivity)
	default:
		g.dragging = false
	}
	g.lastX, g.lastY = cx, cy
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.plot.View = zoom(g.plot.View, dy)
	}
	if err := g.render(); err != nil {
		return err
	}
	g.cursor = r2.Vec{X: float64(cx), Y: float64(cy)}
	g.hovered = -1
	if !g.dragging && g.picker != nil {
		if i, d2, ok := g.picker.nearest(g.cursor); ok && d2 <= g.cfg.PickRadius*g.cfg.PickRadius {
			g.hovered = i
		}
	}
	return nil
}

// render draws a new frame if the view or the window size changed.
// Frames are drawn without supersampling while dragging.
func (g *game) render() error {
	if g.width <= 0 || g.height <= 0 {
		return nil
	}
	key := frameKey{view: g.plot.View, width: g.width, height: g.height, supersample: g.cfg.Supersample}
	if g.dragging {
		key.supersample = 1
	}
	if g.frame != nil && key == g.frameKey {
		return nil
	}
	if key.width < 64 || key.height < 64 {
		// Too small to draw anything useful, keep the last frame.
		return nil
	}
	fig, err := g.plot.Render(plot3.ImageConfig{Width: key.width, Height: key.height, Supersample: key.supersample})
	if err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	if g.frame != nil {
		g.frame.Deallocate()
	}
	g.frame = ebiten.NewImageFromImage(fig.Image)
	g.frameKey = key
	g.picker = newPicker(fig.Points)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	if g.frame != nil {
		screen.DrawImage(g.frame, nil)
	}
	ebitenutil.DebugPrintAt(screen, "drag: rotate  wheel: zoom  R: reset  Q: quit", 8, 4)
	if g.hovered < 0 || g.picker == nil {
		return
	}
	pos := g.picker.position(g.hovered)
	drawCrosshair(screen, pos, 7)
	pt := g.plot.Point(g.hovered)
	names := axisNames(g.plot)
	readout := fmt.Sprintf("%s=%.6g  %s=%.6g  %s=%.6g", names[0], pt.X, names[1], pt.Y, names[2], pt.Z)
	x, y := readoutPos(pos, readout, screen.Bounds())
	ebitenutil.DebugPrintAt(screen, readout, x, y)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func axisNames(p *plot3.Plot) [3]string {
	names := [3]string{p.XLabel, p.YLabel, p.ZLabel}
	for i, def := range [3]string{"x", "y", "z"} {
		if names[i] == "" {
			names[i] = def
		}
	}
	return names
}
