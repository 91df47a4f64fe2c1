// pkg/render/color.go
package render

import (
	"fmt"
	"image/color"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Invalid is returned by ParseColor for strings it cannot recognize.
var Invalid = color.NRGBA{}

var rgbaPattern = regexp.MustCompile(`(?i)^rgba\s*\((.*)\)$`)

// ParseColor converts a color string to a straight-alpha color.
// Accepted forms: "rgba(r, g, b, a)" where a is 0..255 or a 0.0..1.0 fraction,
// "#rgb", "#rrggbb", "#aarrggbb", SVG color names and "transparent".
// The boolean is false when nothing matched; the returned color is then Invalid.
func ParseColor(s string) (color.NRGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if m := rgbaPattern.FindStringSubmatch(s); m != nil {
		if c, ok := parseRGBAComponents(m[1]); ok {
			return c, true
		}
	}
	return parseNamed(s)
}

// ColorOr parses s and returns def when s is not a recognizable color.
func ColorOr(s string, def color.NRGBA) color.NRGBA {
	if c, ok := ParseColor(s); ok {
		return c
	}
	return def
}

// ToRGBAString serializes the RGB part of c with the given alpha (0..255)
// as "rgba(r, g, b, 0.xx)".
func ToRGBAString(c color.NRGBA, alpha uint8) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %.2f)", c.R, c.G, c.B, float64(alpha)/255)
}

// HexString returns "#rrggbb", dropping alpha.
func HexString(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func parseRGBAComponents(body string) (color.NRGBA, bool) {
	parts := strings.Split(body, ",")
	if len(parts) != 4 {
		return Invalid, false
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return Invalid, false
		}
		ch[i] = uint8(v)
	}
	a, ok := parseAlpha(strings.TrimSpace(parts[3]))
	if !ok {
		return Invalid, false
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: a}, true
}

// parseAlpha accepts either an integer 0..255 or a fraction with a decimal point.
func parseAlpha(s string) (uint8, bool) {
	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		v := math.Round(f * 255)
		if v < 0 || v > 255 {
			return 0, false
		}
		return uint8(v), true
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > 255 {
		return 0, false
	}
	return uint8(v), true
}

func parseNamed(s string) (color.NRGBA, bool) {
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	if s == "transparent" {
		return color.NRGBA{}, true
	}
	c, ok := colornames.Map[s]
	if !ok {
		return Invalid, false
	}
	// colornames only holds opaque colors, so premultiplied == straight here.
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, true
}

func parseHex(h string) (color.NRGBA, bool) {
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Invalid, false
	}
	switch len(h) {
	case 3:
		r, g, b := uint8(v>>8&0xf), uint8(v>>4&0xf), uint8(v&0xf)
		return color.NRGBA{R: r * 17, G: g * 17, B: b * 17, A: 255}, true
	case 6:
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
	case 8:
		// #aarrggbb
		return color.NRGBA{A: uint8(v >> 24), R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
	}
	return Invalid, false
}
