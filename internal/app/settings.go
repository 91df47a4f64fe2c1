package app

import (
	"errors"
	"fmt"
	"io"

	"go-overlay/internal/config"
	"go-overlay/internal/logger"
)

// loadForEdit returns the stored settings, or the defaults if there are
// none yet. Other load errors stop the edit so a broken file is not
// silently replaced.
func (a *App) loadForEdit() (config.Config, error) {
	cfg, err := config.Load(a.ConfigPath)
	if err != nil && !errors.Is(err, config.ErrNotFound) {
		return cfg, err
	}
	return cfg, nil
}

// PrintConfig writes "key = value" lines for keys, or for every key.
// Color keys also show their picker channels.
func (a *App) PrintConfig(w io.Writer, keys ...string) error {
	cfg := a.loadConfig()
	if len(keys) == 0 {
		keys = config.Keys()
	}

	for _, key := range keys {
		v, err := cfg.Get(key)
		if err != nil {
			return err
		}
		if ch, err := cfg.Channels(key); err == nil {
			fmt.Fprintf(w, "%s = %s (rgb %s, alpha %d)\n", key, v, ch.RGB, ch.Alpha)
			continue
		}
		fmt.Fprintf(w, "%s = %s\n", key, v)
	}
	return nil
}

// SetConfig stores one setting.
func (a *App) SetConfig(key, value string) error {
	cfg, err := a.loadForEdit()
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.Save(a.ConfigPath); err != nil {
		return err
	}
	a.Log.Log(logger.Info, "%s saved to %s", key, a.ConfigPath)
	return nil
}

// SetColor stores a color setting from picker channels. An empty rgb keeps
// the current color and only changes alpha.
func (a *App) SetColor(key, rgb string, alpha uint8) error {
	cfg, err := a.loadForEdit()
	if err != nil {
		return err
	}
	ch, err := cfg.Channels(key)
	if err != nil {
		return err
	}
	if rgb != "" {
		ch.RGB = rgb
	}
	ch.Alpha = alpha

	if err := cfg.SetChannels(key, ch); err != nil {
		return err
	}
	if err := cfg.Save(a.ConfigPath); err != nil {
		return err
	}
	a.Log.Log(logger.Info, "%s saved to %s", key, a.ConfigPath)
	return nil
}
