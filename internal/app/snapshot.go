package app

import (
	"errors"
	"image"
	"io"

	"go-overlay/internal/logger"
	"go-overlay/internal/overlay"
	"go-overlay/internal/textbox"
	"go-overlay/pkg/render"
)

// ErrNoBoxes is returned when a payload yields nothing to draw.
var ErrNoBoxes = errors.New("no valid boxes to render")

// SnapshotOptions describe the virtual display a snapshot is drawn on.
type SnapshotOptions struct {
	Width  int
	Height int
	Scale  float64
}

// staticDisplay is a display of fixed size that cannot be captured anyway.
type staticDisplay struct {
	bounds image.Rectangle
	scale  float64
}

func (d staticDisplay) Bounds() image.Rectangle { return d.bounds }
func (d staticDisplay) DeviceScaleFactor() float64 { return d.scale }
func (d staticDisplay) ExcludeFromCapture() error { return nil }

// Snapshot draws payload as the overlay would and writes a PNG to w.
// The enable setting is ignored.
func (a *App) Snapshot(payload string, opts SnapshotOptions, w io.Writer) error {
	boxes := textbox.Parse(payload)
	if len(boxes) == 0 {
		return ErrNoBoxes
	}

	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	cfg := a.loadConfig()
	cfg.Enable = true

	d := staticDisplay{bounds: image.Rect(0, 0, opts.Width, opts.Height), scale: opts.Scale}
	m := overlay.NewManager(cfg, d, a.Fonts, a.Log)
	m.Events = a.Events
	m.Show(boxes)

	c := render.NewSoftCanvas(opts.Width, opts.Height)
	m.Draw(c)
	m.Close()

	a.Log.Log(logger.Debug, "snapshot %dx%d of %d boxes", opts.Width, opts.Height, len(boxes))
	return c.EncodePNG(w)
}
