//go:build !headless

package window

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// display is the monitor the window opens on.
type display struct {
	excluded bool
}

func newDisplay() *display {
	return &display{}
}

func (d *display) Bounds() image.Rectangle {
	w, h := ebiten.Monitor().Size()
	return image.Rect(0, 0, w, h)
}

func (d *display) DeviceScaleFactor() float64 {
	return ebiten.Monitor().DeviceScaleFactor()
}

// ExcludeFromCapture applies once per window.
func (d *display) ExcludeFromCapture() error {
	if d.excluded {
		return nil
	}
	if err := excludeFromCapture(Title); err != nil {
		return err
	}
	d.excluded = true
	return nil
}
