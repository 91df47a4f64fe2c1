// internal/ui/label.go
package ui

import (
	"image"
	"image/color"
	"strings"

	"go-overlay/internal/config"
	"go-overlay/internal/fontfit"
	"go-overlay/pkg/render"
)

// cornerRadius of the label background, in logical pixels.
const cornerRadius = 4

// searchRange is the size span above which fitting bisects instead of
// stepping down one pixel at a time.
const searchRange = 32

// fallbackColor is drawn for any color setting that does not parse.
var fallbackColor = color.NRGBA{A: 255}

// Typeface is what a label needs from a font.
type Typeface interface {
	fontfit.Measurer
	Metrics(size int) (ascent, descent float64)
	Outline(text string, size int, x, baseline float32) *render.Path
}

// Style is the resolved paint configuration shared by all labels of a surface.
type Style struct {
	TextColor         color.NRGBA
	StrokeColor       color.NRGBA
	BackgroundColor   color.NRGBA
	StrokeWidth       float32
	MinFontSize       int
	MaxFontSize       int
	HorizontalPadding int
	VerticalPadding   int
}

// StyleFromConfig resolves colors once; unparsable colors become opaque black.
func StyleFromConfig(cfg config.Config) Style {
	return Style{
		TextColor:         render.ColorOr(cfg.TextColor, fallbackColor),
		StrokeColor:       render.ColorOr(cfg.StrokeColor, fallbackColor),
		BackgroundColor:   render.ColorOr(cfg.BackgroundColor, fallbackColor),
		StrokeWidth:       float32(cfg.StrokeWidth),
		MinFontSize:       cfg.MinFontSize,
		MaxFontSize:       cfg.MaxFontSize,
		HorizontalPadding: cfg.HorizontalPadding,
		VerticalPadding:   cfg.VerticalPadding,
	}
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Label is one text box drawn at a fitted size over a rounded background.
// Layout happens once, in NewLabel.
type Label struct {
	Text     string
	Rect     image.Rectangle
	FontSize int
	Baseline float32

	style Style
	glyph *render.Path
}

// NewLabel fits text into rect and prepares its outline.
func NewLabel(text string, rect image.Rectangle, style Style, face Typeface) *Label {
	l := &Label{
		Text:  text,
		Rect:  rect,
		style: style,
	}
	line := lineBreaks.Replace(text)

	targetW := max(1, rect.Dx()-style.HorizontalPadding)
	targetH := max(1, rect.Dy()-style.VerticalPadding)
	fit := fontfit.Fit
	if style.MaxFontSize-style.MinFontSize > searchRange {
		fit = fontfit.Search
	}
	l.FontSize = fit(face, line, targetW, targetH, style.MinFontSize, style.MaxFontSize)

	if line == "" {
		return l
	}

	// равные отступы сверху и снизу независимо от конкретных глифов
	ascent, descent := face.Metrics(l.FontSize)
	l.Baseline = float32(float64(rect.Min.Y) + (float64(rect.Dy())-(ascent+descent))/2 + ascent)
	x := float32(rect.Min.X + style.HorizontalPadding/2)
	l.glyph = face.Outline(line, l.FontSize, x, l.Baseline)
	return l
}

// Draw paints background, then the text stroke, then the text fill.
func (l *Label) Draw(c render.Canvas) {
	bg := render.Rect{
		X: float32(l.Rect.Min.X),
		Y: float32(l.Rect.Min.Y),
		W: float32(l.Rect.Dx()),
		H: float32(l.Rect.Dy()),
	}
	c.FillRoundedRect(bg, cornerRadius, l.style.BackgroundColor)

	if l.glyph.Empty() {
		return
	}
	if l.style.StrokeWidth > 0 {
		c.StrokePath(l.glyph, l.style.StrokeWidth, l.style.StrokeColor)
	}
	c.FillPath(l.glyph, l.style.TextColor)
}
