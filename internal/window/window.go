// Package window runs the overlay in a transparent, borderless, always-on-top
// window covering the primary display. Mouse input passes through it and it
// never takes focus.
package window

import (
	"errors"

	"go-overlay/internal/config"
	"go-overlay/internal/event"
	"go-overlay/internal/logger"
	"go-overlay/internal/overlay"
	"go-overlay/internal/textbox"
)

// Title of the overlay window.
const Title = "go-overlay"

// ErrCaptureExclusionUnsupported is returned where the platform cannot hide
// a window from screen capture.
var ErrCaptureExclusionUnsupported = errors.New("capture exclusion is not supported on this platform")

// Options configure Run.
type Options struct {
	Config config.Config
	Fonts  overlay.Fonts
	Log    logger.Writer
	Events *event.Dispatcher

	// Initial is shown on the first frame.
	Initial []textbox.Box

	// Queue, when set, keeps the window open after the surface goes away
	// and runs incoming work on the window loop.
	Queue overlay.Queue

	// Configs delivers reloaded settings.
	Configs <-chan config.Config

	// Done closes the window when closed.
	Done <-chan struct{}
}
