//go:build !headless

package window

import (
	"fmt"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"go-overlay/internal/logger"
	"go-overlay/internal/overlay"
)

type game struct {
	m       *overlay.Manager
	opts    Options
	started bool
	display *display
	bounds  image.Rectangle
	canvas  canvas
}

func (g *game) Update() error {
	select {
	case <-g.opts.Done:
		return ebiten.Termination
	default:
	}

	if !g.started {
		g.started = true
		g.m.Show(g.opts.Initial)
	}

	g.opts.Queue.Drain(g.m)

loop:
	for {
		select {
		case cfg, ok := <-g.opts.Configs:
			if !ok {
				g.opts.Configs = nil
				break loop
			}
			g.m.ApplyConfig(cfg)
		default:
			break loop
		}
	}

	g.m.Update(time.Now())

	if g.opts.Queue == nil && !g.m.Visible() {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.canvas.dst = screen
	g.canvas.scale = float32(g.display.DeviceScaleFactor())
	g.m.Draw(&g.canvas)
}

// Layout renders at device resolution; the canvas scales logical
// coordinates up by the same factor.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return deviceSize(g.bounds, g.display.DeviceScaleFactor())
}

// Run opens the window and blocks until it closes. Without a queue the
// window closes as soon as nothing is shown.
func Run(opts Options) error {
	if opts.Log == nil {
		opts.Log = logger.Discard{}
	}

	d := newDisplay()
	m := overlay.NewManager(opts.Config, d, opts.Fonts, opts.Log)
	m.Events = opts.Events

	bounds := d.Bounds()
	ebiten.SetWindowTitle(Title)
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowMousePassthrough(true)
	ebiten.SetWindowSize(bounds.Dx(), bounds.Dy())
	ebiten.SetWindowPosition(bounds.Min.X, bounds.Min.Y)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetTPS(30)

	g := &game{m: m, opts: opts, display: d, bounds: bounds}
	err := ebiten.RunGameWithOptions(g, &ebiten.RunGameOptions{
		ScreenTransparent: true,
		InitUnfocused:     true,
		SkipTaskbar:       true,
	})
	if err != nil {
		return fmt.Errorf("overlay window: %w", err)
	}
	return nil
}
