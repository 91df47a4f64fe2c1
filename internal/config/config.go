// internal/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go-overlay/internal/utils"
)

// DefaultPath is where settings live, relative to the working directory.
const DefaultPath = "userconfig/overlay.json"

// ErrNotFound is returned by Load when no settings file exists.
var ErrNotFound = errors.New("config file not found")

// Config holds the overlay settings. Only these fields are persisted.
type Config struct {
	Enable            bool   `json:"enable"`
	TextColor         string `json:"text_color"`
	StrokeColor       string `json:"stroke_color"`
	StrokeWidth       int    `json:"stroke_width"`
	MinFontSize       int    `json:"min_font_size"`
	MaxFontSize       int    `json:"max_font_size"`
	FontFamily        string `json:"font_family"`
	BackgroundColor   string `json:"background_color"`
	BoxExpansion      int    `json:"box_expansion"`
	TimeoutMS         int    `json:"timeout_ms"`
	HorizontalPadding int    `json:"horizontal_padding"`
	VerticalPadding   int    `json:"vertical_padding"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Enable:            true,
		TextColor:         "white",
		StrokeColor:       "black",
		StrokeWidth:       3,
		MinFontSize:       5,
		MaxFontSize:       48,
		FontFamily:        "",
		BackgroundColor:   "rgba(0, 0, 0, 180)",
		BoxExpansion:      6,
		TimeoutMS:         10000,
		HorizontalPadding: 4,
		VerticalPadding:   4,
	}
}

// Bounds of the integer settings, as offered by the settings panel.
var intRanges = map[string][2]int{
	"stroke_width":       {0, 10},
	"box_expansion":      {0, 50},
	"min_font_size":      {1, 100},
	"max_font_size":      {1, 200},
	"horizontal_padding": {0, 50},
	"vertical_padding":   {0, 50},
	"timeout_ms":         {100, 60000},
}

// Keys lists the persisted keys in file order.
func Keys() []string {
	return []string{
		"enable", "text_color", "stroke_color", "stroke_width",
		"min_font_size", "max_font_size", "font_family",
		"background_color", "box_expansion", "timeout_ms",
		"horizontal_padding", "vertical_padding",
	}
}

// field returns a pointer to the struct field behind a persisted key.
func (c *Config) field(key string) (any, bool) {
	switch key {
	case "enable":
		return &c.Enable, true
	case "text_color":
		return &c.TextColor, true
	case "stroke_color":
		return &c.StrokeColor, true
	case "stroke_width":
		return &c.StrokeWidth, true
	case "min_font_size":
		return &c.MinFontSize, true
	case "max_font_size":
		return &c.MaxFontSize, true
	case "font_family":
		return &c.FontFamily, true
	case "background_color":
		return &c.BackgroundColor, true
	case "box_expansion":
		return &c.BoxExpansion, true
	case "timeout_ms":
		return &c.TimeoutMS, true
	case "horizontal_padding":
		return &c.HorizontalPadding, true
	case "vertical_padding":
		return &c.VerticalPadding, true
	}
	return nil, false
}

// Normalize clamps every integer setting into its allowed range and makes
// sure MinFontSize <= MaxFontSize.
func (c *Config) Normalize() {
	for key, r := range intRanges {
		p, _ := c.field(key)
		v := p.(*int)
		*v = utils.Clamp(*v, r[0], r[1])
	}
	if c.MaxFontSize < c.MinFontSize {
		c.MaxFontSize = c.MinFontSize
	}
}

// Merge applies the whitelisted keys of a JSON object on top of c.
// Unknown keys are ignored. A key whose value has the wrong type keeps its
// current value and is reported in the returned error; the other keys are
// still applied.
func (c *Config) Merge(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var errs []error
	for _, key := range Keys() {
		val, ok := raw[key]
		if !ok {
			continue
		}
		if err := c.setRaw(key, val); err != nil {
			errs = append(errs, fmt.Errorf("ignoring %q: %w", key, err))
		}
	}
	c.Normalize()
	return errors.Join(errs...)
}

func (c *Config) setRaw(key string, val json.RawMessage) error {
	p, _ := c.field(key)
	if b, ok := p.(*bool); ok {
		// the settings panel historically wrote 0/1
		var n int
		if err := json.Unmarshal(val, &n); err == nil {
			*b = n != 0
			return nil
		}
		return json.Unmarshal(val, b)
	}

	// decode into a scratch value so a failure leaves the field untouched
	switch v := p.(type) {
	case *int:
		var n int
		if err := json.Unmarshal(val, &n); err != nil {
			return err
		}
		*v = n
	case *string:
		var s string
		if err := json.Unmarshal(val, &s); err != nil {
			return err
		}
		*v = s
	}
	return nil
}

// Load reads the settings file at path on top of the defaults.
// The returned Config is always usable: on any error it holds the
// defaults plus whatever keys could be applied.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cfg.Merge(data); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve returns path if it exists; otherwise the first existing
// candidate next to the executable. If nothing exists, path is returned.
func Resolve(path string) string {
	if _, err := os.Stat(path); err == nil || filepath.IsAbs(path) {
		return path
	}
	exe, err := os.Executable()
	if err != nil {
		return path
	}
	dir := filepath.Dir(exe)
	for _, candidate := range []string{
		filepath.Join(dir, "..", path),
		filepath.Join(dir, path),
	} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return path
}

// Save writes the persisted keys to path as indented JSON, creating the
// parent directory if needed.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Get returns the textual value of a persisted key.
func (c Config) Get(key string) (string, error) {
	p, ok := c.field(key)
	if !ok {
		return "", fmt.Errorf("unknown key %q", key)
	}
	switch v := p.(type) {
	case *bool:
		return strconv.FormatBool(*v), nil
	case *int:
		return strconv.Itoa(*v), nil
	case *string:
		return *v, nil
	}
	return "", nil
}

// Set parses value according to the type of key and stores it.
func (c *Config) Set(key, value string) error {
	p, ok := c.field(key)
	if !ok {
		return fmt.Errorf("unknown key %q", key)
	}
	switch v := p.(type) {
	case *bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*v = b
	case *int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*v = n
	case *string:
		*v = value
	}
	c.Normalize()
	return nil
}
