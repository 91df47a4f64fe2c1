package render

import "image/color"

// Rect is an axis-aligned rectangle in canvas pixels.
type Rect struct {
	X, Y, W, H float32
}

// Canvas is a drawing target for overlay labels.
//
// StrokePath always uses round joins and round caps; FillPath uses the
// non-zero winding rule, which is what glyph outlines expect.
type Canvas interface {
	FillRoundedRect(r Rect, radius float32, clr color.Color)
	StrokePath(p *Path, width float32, clr color.Color)
	FillPath(p *Path, clr color.Color)
}

// RoundedRectPath builds a closed rounded rectangle. The radius is clamped
// to half of the shorter side.
func RoundedRectPath(r Rect, radius float32) *Path {
	radius = max(0, min(radius, r.W/2, r.H/2))
	// кубическое приближение четверти окружности
	const k = 0.5522848
	c := radius * k
	x0, y0, x1, y1 := r.X, r.Y, r.X+r.W, r.Y+r.H

	p := &Path{}
	p.MoveTo(x0+radius, y0)
	p.LineTo(x1-radius, y0)
	p.CubeTo(x1-radius+c, y0, x1, y0+radius-c, x1, y0+radius)
	p.LineTo(x1, y1-radius)
	p.CubeTo(x1, y1-radius+c, x1-radius+c, y1, x1-radius, y1)
	p.LineTo(x0+radius, y1)
	p.CubeTo(x0+radius-c, y1, x0, y1-radius+c, x0, y1-radius)
	p.LineTo(x0, y0+radius)
	p.CubeTo(x0, y0+radius-c, x0+radius-c, y0, x0+radius, y0)
	p.Close()
	return p
}
