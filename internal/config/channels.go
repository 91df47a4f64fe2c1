package config

import (
	"fmt"
	"image/color"

	"go-overlay/pkg/render"
)

// ColorChannels is the color picker view of a color setting: an opaque
// "#rrggbb" value plus a separately tracked alpha. It lives only in the
// process and is never written to the settings file.
type ColorChannels struct {
	RGB   string
	Alpha uint8
}

// ColorKeys are the settings edited through ColorChannels.
var ColorKeys = []string{"text_color", "stroke_color", "background_color"}

func (c *Config) colorField(key string) (*string, error) {
	switch key {
	case "text_color":
		return &c.TextColor, nil
	case "stroke_color":
		return &c.StrokeColor, nil
	case "background_color":
		return &c.BackgroundColor, nil
	}
	return nil, fmt.Errorf("%q is not a color key", key)
}

// Channels decomposes a color setting. An unparsable value yields
// opaque black, matching what the overlay would draw.
func (c Config) Channels(key string) (ColorChannels, error) {
	p, err := c.colorField(key)
	if err != nil {
		return ColorChannels{}, err
	}
	clr, ok := render.ParseColor(*p)
	if !ok {
		return ColorChannels{RGB: "#000000", Alpha: 255}, nil
	}
	return ColorChannels{RGB: render.HexString(clr), Alpha: clr.A}, nil
}

// SetChannels recombines picker state into the "rgba(r, g, b, 0.xx)" form.
func (c *Config) SetChannels(key string, ch ColorChannels) error {
	p, err := c.colorField(key)
	if err != nil {
		return err
	}
	rgb := render.ColorOr(ch.RGB, color.NRGBA{A: 255})
	*p = render.ToRGBAString(rgb, ch.Alpha)
	return nil
}
