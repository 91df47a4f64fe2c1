package app

import (
	"go-overlay/internal/config"
	"go-overlay/internal/logger"
	"go-overlay/internal/textbox"
	"go-overlay/internal/window"
)

// RenderOverlay shows payload with the settings found next to the working
// directory or the executable, and blocks until the overlay is dismissed.
// It returns ExitOK when done or when the overlay is disabled, ExitNoBoxes
// when the payload has no boxes and ExitFailure when no window could be
// opened.
func RenderOverlay(payload string) int {
	l := &logger.Logger{
		Level:        logger.Warn,
		Destinations: []logger.Destination{logger.DestinationStdout},
	}
	if err := l.Initialize(); err != nil {
		return ExitFailure
	}
	defer l.Close()

	return New(config.Resolve(config.DefaultPath), l).RenderOverlay(payload)
}

// RenderOverlay is the package-level RenderOverlay with this App's settings.
func (a *App) RenderOverlay(payload string) int {
	cfg := a.loadConfig()
	if !cfg.Enable {
		a.Log.Log(logger.Info, "overlay disabled in config")
		return ExitOK
	}

	a.Log.Log(logger.Debug, "payload of %d bytes", len(payload))

	boxes := textbox.Parse(payload)
	if len(boxes) == 0 {
		a.Log.Log(logger.Warn, "no valid boxes to render")
		return ExitNoBoxes
	}
	a.Log.Log(logger.Info, "parsed %d boxes", len(boxes))

	err := a.runWindow(window.Options{
		Config:  cfg,
		Fonts:   a.Fonts,
		Log:     a.Log,
		Events:  a.Events,
		Initial: boxes,
	})
	if err != nil {
		a.Log.Log(logger.Error, "%v", err)
		return ExitFailure
	}
	return ExitOK
}
