package render

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
)

// SoftCanvas rasterizes on the CPU. It backs PNG snapshots and lets
// rendering be checked pixel by pixel without a GPU.
type SoftCanvas struct {
	dc *gg.Context
}

// NewSoftCanvas allocates a transparent canvas of the given size.
func NewSoftCanvas(width, height int) *SoftCanvas {
	dc := gg.NewContext(width, height)
	dc.SetFillRuleWinding()
	dc.SetLineJoin(gg.LineJoinRound)
	dc.SetLineCap(gg.LineCapRound)
	return &SoftCanvas{dc: dc}
}

func (s *SoftCanvas) FillRoundedRect(r Rect, radius float32, clr color.Color) {
	s.dc.DrawRoundedRectangle(float64(r.X), float64(r.Y), float64(r.W), float64(r.H), float64(radius))
	s.dc.SetColor(clr)
	s.dc.Fill()
}

func (s *SoftCanvas) StrokePath(p *Path, width float32, clr color.Color) {
	if p.Empty() || width <= 0 {
		return
	}
	s.appendPath(p)
	s.dc.SetLineWidth(float64(width))
	s.dc.SetColor(clr)
	s.dc.Stroke()
}

func (s *SoftCanvas) FillPath(p *Path, clr color.Color) {
	if p.Empty() {
		return
	}
	s.appendPath(p)
	s.dc.SetColor(clr)
	s.dc.Fill()
}

// Image returns the rendered pixels.
func (s *SoftCanvas) Image() image.Image {
	return s.dc.Image()
}

// EncodePNG writes the canvas as PNG.
func (s *SoftCanvas) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}

func (s *SoftCanvas) appendPath(p *Path) {
	s.dc.ClearPath()
	for _, seg := range p.Segments {
		pt := seg.Pts
		switch seg.Op {
		case MoveTo:
			s.dc.NewSubPath()
			s.dc.MoveTo(float64(pt[0].X), float64(pt[0].Y))
		case LineTo:
			s.dc.LineTo(float64(pt[0].X), float64(pt[0].Y))
		case QuadTo:
			s.dc.QuadraticTo(float64(pt[0].X), float64(pt[0].Y), float64(pt[1].X), float64(pt[1].Y))
		case CubeTo:
			s.dc.CubicTo(float64(pt[0].X), float64(pt[0].Y), float64(pt[1].X), float64(pt[1].Y),
				float64(pt[2].X), float64(pt[2].Y))
		case Close:
			s.dc.ClosePath()
		}
	}
}
