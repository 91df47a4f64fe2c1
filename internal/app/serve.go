package app

import (
	"context"
	"errors"

	"go-overlay/internal/config"
	"go-overlay/internal/confwatcher"
	"go-overlay/internal/logger"
	"go-overlay/internal/overlay"
	"go-overlay/internal/server"
	"go-overlay/internal/window"
)

// ServeOptions configure Serve.
type ServeOptions struct {
	Listen string
	// Pprof exposes /debug/pprof on the control API.
	Pprof bool
}

// Serve keeps an overlay window open and feeds it from the control API
// until ctx is done. Settings changes on disk are applied live.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg := a.loadConfig()
	q := make(overlay.Queue)

	srv := &server.Server{
		Address: opts.Listen,
		Queue:   q,
		Pprof:   opts.Pprof,
		Parent:  a.Log,
	}
	if err := srv.Initialize(); err != nil {
		return err
	}
	defer srv.Close()

	configs := make(chan config.Config, 1)
	cw := &confwatcher.ConfWatcher{FilePath: a.ConfigPath}
	if err := cw.Initialize(); err != nil {
		a.Log.Log(logger.Warn, "settings will not be reloaded: %v", err)
	} else {
		defer cw.Close()
		go a.reloadConfig(ctx, cw.Watch(), configs)
	}

	return a.runWindow(window.Options{
		Config:  cfg,
		Fonts:   a.Fonts,
		Log:     a.Log,
		Events:  a.Events,
		Queue:   q,
		Configs: configs,
		Done:    ctx.Done(),
	})
}

// reloadConfig loads the settings file on every change signal.
func (a *App) reloadConfig(ctx context.Context, changed <-chan struct{}, out chan<- config.Config) {
	for range changed {
		cfg, err := config.Load(a.ConfigPath)
		if err != nil && !errors.Is(err, config.ErrNotFound) {
			a.Log.Log(logger.Warn, "%v", err)
		}
		a.Log.Log(logger.Info, "settings reloaded from %s", a.ConfigPath)

		select {
		case out <- cfg:
		case <-ctx.Done():
			return
		}
	}
}
