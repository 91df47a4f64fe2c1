//go:build !headless

package window

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"go-overlay/pkg/render"
)

var whiteImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img
}()

// whiteSubImage avoids sampling the image edge.
var whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)

// maxVertices keeps vertex indices inside uint16.
const maxVertices = math.MaxUint16

// canvas draws render paths onto an ebiten image as triangles. Paths are
// in logical pixels; scale maps them to the pixels of dst.
type canvas struct {
	dst   *ebiten.Image
	scale float32
	vs    []ebiten.Vertex
	is    []uint16
}

func (c *canvas) FillRoundedRect(r render.Rect, radius float32, clr color.Color) {
	c.FillPath(render.RoundedRectPath(r, radius), clr)
}

func (c *canvas) StrokePath(p *render.Path, width float32, clr color.Color) {
	if width <= 0 || p.Empty() {
		return
	}
	opts := &vector.StrokeOptions{
		Width:    width * c.scale,
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	}
	c.batch(p, width, clr, ebiten.FillAll, func(v *vector.Path, vs []ebiten.Vertex, is []uint16) ([]ebiten.Vertex, []uint16) {
		return v.AppendVerticesAndIndicesForStroke(vs, is, opts)
	})
}

func (c *canvas) FillPath(p *render.Path, clr color.Color) {
	if p.Empty() {
		return
	}
	c.batch(p, 0, clr, ebiten.NonZero, func(v *vector.Path, vs []ebiten.Vertex, is []uint16) ([]ebiten.Vertex, []uint16) {
		return v.AppendVerticesAndIndicesForFilling(vs, is)
	})
}

type tessellate func(v *vector.Path, vs []ebiten.Vertex, is []uint16) ([]ebiten.Vertex, []uint16)

// batch tessellates p group by group, skipping groups outside dst.
func (c *canvas) batch(p *render.Path, margin float32, clr color.Color, rule ebiten.FillRule, t tessellate) {
	c.vs, c.is = c.vs[:0], c.is[:0]
	var parts []*render.Path
	for _, part := range p.Parts() {
		if c.visible(part, margin) {
			parts = append(parts, part)
		}
	}
	drawBatched(&triangles{c: c, t: t, clr: clr, rule: rule}, parts, maxVertices)
}

// triangles batches tessellated groups in the canvas buffers.
type triangles struct {
	c      *canvas
	t      tessellate
	clr    color.Color
	rule   ebiten.FillRule
	nv, ni int
}

func (b *triangles) add(p *render.Path) int {
	c := b.c
	b.nv, b.ni = len(c.vs), len(c.is)
	c.vs, c.is = b.t(c.toVector(p), c.vs, c.is)
	return len(c.vs)
}

func (b *triangles) undo() {
	b.c.vs, b.c.is = b.c.vs[:b.nv], b.c.is[:b.ni]
}

func (b *triangles) flush() {
	b.c.draw(b.clr, b.rule)
	b.c.vs, b.c.is = b.c.vs[:0], b.c.is[:0]
}

func (c *canvas) visible(p *render.Path, margin float32) bool {
	lo, hi := p.Bounds()
	b := c.dst.Bounds()
	return (hi.X+margin)*c.scale >= float32(b.Min.X) && (lo.X-margin)*c.scale <= float32(b.Max.X) &&
		(hi.Y+margin)*c.scale >= float32(b.Min.Y) && (lo.Y-margin)*c.scale <= float32(b.Max.Y)
}

func (c *canvas) draw(clr color.Color, rule ebiten.FillRule) {
	if len(c.is) == 0 {
		return
	}
	n := color.NRGBAModel.Convert(clr).(color.NRGBA)
	for i := range c.vs {
		c.vs[i].SrcX = 1
		c.vs[i].SrcY = 1
		c.vs[i].ColorR = float32(n.R) / 255
		c.vs[i].ColorG = float32(n.G) / 255
		c.vs[i].ColorB = float32(n.B) / 255
		c.vs[i].ColorA = float32(n.A) / 255
	}
	c.dst.DrawTriangles(c.vs, c.is, whiteSubImage, &ebiten.DrawTrianglesOptions{
		FillRule:  rule,
		AntiAlias: true,
	})
}

func (c *canvas) toVector(p *render.Path) *vector.Path {
	k := c.scale
	var v vector.Path
	for _, s := range p.Segments {
		pt := s.Pts
		switch s.Op {
		case render.MoveTo:
			v.MoveTo(pt[0].X*k, pt[0].Y*k)
		case render.LineTo:
			v.LineTo(pt[0].X*k, pt[0].Y*k)
		case render.QuadTo:
			v.QuadTo(pt[0].X*k, pt[0].Y*k, pt[1].X*k, pt[1].Y*k)
		case render.CubeTo:
			v.CubicTo(pt[0].X*k, pt[0].Y*k, pt[1].X*k, pt[1].Y*k, pt[2].X*k, pt[2].Y*k)
		case render.Close:
			v.Close()
		}
	}
	return &v
}
