package assets

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"go-overlay/pkg/render"
)

// Font is a parsed font usable at any pixel size. Sizes are pixels per em.
// A Font is not safe for concurrent use: it reuses one sfnt.Buffer.
type Font struct {
	Family string
	// Fallbacks are tried in order for runes the font has no glyph for.
	// Their own fallbacks are not consulted.
	Fallbacks []*Font

	sf    *sfnt.Font
	buf   sfnt.Buffer
	faces map[int]font.Face
}

// ParseFont parses TrueType or OpenType data.
func ParseFont(data []byte) (*Font, error) {
	sf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return newFont(sf), nil
}

func newFont(sf *sfnt.Font) *Font {
	f := &Font{sf: sf, faces: make(map[int]font.Face)}
	f.Family, _ = sf.Name(&f.buf, sfnt.NameIDFamily)
	return f
}

func (f *Font) face(size int) font.Face {
	if face, ok := f.faces[size]; ok {
		return face
	}
	face, err := opentype.NewFace(f.sf, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72, // 1pt == 1px
		Hinting: font.HintingNone,
	})
	if err != nil {
		// only fails for invalid options
		panic(err)
	}
	f.faces[size] = face
	return face
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// HasGlyph reports whether the font itself, without fallbacks, maps r.
func (f *Font) HasGlyph(r rune) bool {
	gi, err := f.sf.GlyphIndex(&f.buf, r)
	return err == nil && gi != 0
}

// fontFor picks the font drawing r. Runes no font maps stay with f
// and come out as its .notdef glyph.
func (f *Font) fontFor(r rune) *Font {
	if f.HasGlyph(r) {
		return f
	}
	for _, fb := range f.Fallbacks {
		if fb.HasGlyph(r) {
			return fb
		}
	}
	return f
}

// runs splits text into maximal pieces drawn by the same font.
func (f *Font) runs(text string, visit func(g *Font, run string)) {
	var cur *Font
	start := 0
	for i, r := range text {
		g := f.fontFor(r)
		if cur != nil && g != cur {
			visit(cur, text[start:i])
			start = i
		}
		cur = g
	}
	if cur != nil {
		visit(cur, text[start:])
	}
}

// Advance returns the advance width of text, kerning included.
func (f *Font) Advance(text string, size int) float64 {
	var w float64
	f.runs(text, func(g *Font, run string) {
		w += toFloat(font.MeasureString(g.face(size), run))
	})
	return w
}

// Metrics returns ascent and descent, both positive.
func (f *Font) Metrics(size int) (ascent, descent float64) {
	m := f.face(size).Metrics()
	return toFloat(m.Ascent), toFloat(m.Descent)
}

// LineHeight returns ascent + descent.
func (f *Font) LineHeight(size int) float64 {
	a, d := f.Metrics(size)
	return a + d
}

// Outline lays text out on one line with its pen starting at (x, baseline)
// and returns the glyph contours as a closed path, one group per glyph.
// Line metrics stay those of f even where a fallback draws the glyph.
func (f *Font) Outline(text string, size int, x, baseline float32) *render.Path {
	ppem := fixed.I(size)
	p := &render.Path{}
	pen := x
	var prevFont *Font
	prev := sfnt.GlyphIndex(0)

	for _, r := range text {
		g := f.fontFor(r)
		gi, err := g.sf.GlyphIndex(&g.buf, r)
		if err != nil {
			continue
		}
		// kerning pairs only exist inside one font
		if prevFont == g {
			if k, err := g.sf.Kern(&g.buf, prev, gi, ppem, font.HintingNone); err == nil {
				pen += float32(toFloat(k))
			}
		}

		segs, err := g.sf.LoadGlyph(&g.buf, gi, ppem, nil)
		if err == nil && len(segs) > 0 {
			p.Group()
			appendSegments(p, segs, pen, baseline)
		}

		adv, err := g.sf.GlyphAdvance(&g.buf, gi, ppem, font.HintingNone)
		if err == nil {
			pen += float32(toFloat(adv))
		}
		prevFont, prev = g, gi
	}
	return p
}

func appendSegments(p *render.Path, segs sfnt.Segments, dx, dy float32) {
	pt := func(a fixed.Point26_6) (float32, float32) {
		return dx + float32(a.X)/64, dy + float32(a.Y)/64
	}
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.Close()
			}
			x, y := pt(s.Args[0])
			p.MoveTo(x, y)
			open = true
		case sfnt.SegmentOpLineTo:
			x, y := pt(s.Args[0])
			p.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(s.Args[0])
			x, y := pt(s.Args[1])
			p.QuadTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(s.Args[0])
			c2x, c2y := pt(s.Args[1])
			x, y := pt(s.Args[2])
			p.CubeTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	if open {
		p.Close()
	}
}
