// Package app wires parsing, settings, fonts and the overlay window into
// the commands the binary offers.
package app

import (
	"errors"

	"go-overlay/internal/assets"
	"go-overlay/internal/config"
	"go-overlay/internal/event"
	"go-overlay/internal/logger"
	"go-overlay/internal/window"
)

// Exit codes of RenderOverlay.
const (
	ExitOK      = 0
	ExitNoBoxes = 1
	ExitFailure = 2
)

// App holds what every command shares.
type App struct {
	ConfigPath string
	Log        logger.Writer
	Fonts      *assets.FontManager
	Events     *event.Dispatcher

	runWindow func(window.Options) error
}

// New creates an App reading settings from configPath.
func New(configPath string, l logger.Writer) *App {
	if l == nil {
		l = logger.Discard{}
	}
	a := &App{
		ConfigPath: configPath,
		Log:        l,
		Fonts:      assets.NewFontManager(l),
		Events:     event.NewDispatcher(),
		runWindow:  window.Run,
	}
	a.Events.SubscribeAll(eventLogger{l})
	return a
}

// loadConfig never fails; problems are logged and defaults fill the gaps.
func (a *App) loadConfig() config.Config {
	cfg, err := config.Load(a.ConfigPath)
	switch {
	case errors.Is(err, config.ErrNotFound):
		a.Log.Log(logger.Warn, "no config file at %s, using defaults", a.ConfigPath)
	case err != nil:
		a.Log.Log(logger.Warn, "%v", err)
	}
	return cfg
}

// eventLogger reports overlay lifecycle changes.
type eventLogger struct {
	l logger.Writer
}

func (e eventLogger) OnEvent(ev event.Event) {
	d, _ := ev.Data.(event.SurfaceData)
	switch ev.Type {
	case event.SurfaceShown:
		e.l.Log(logger.Info, "overlay shown with %d labels", d.Labels)
	case event.SurfaceClosed:
		e.l.Log(logger.Info, "overlay closed (%s)", d.Reason)
	default:
		e.l.Log(logger.Debug, "%s: %d labels", ev.Type, d.Labels)
	}
}
