package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"go-overlay/internal/logger"
)

func TestFontMetrics(t *testing.T) {
	f, err := ParseFont(goregular.TTF)
	require.NoError(t, err)
	require.Equal(t, "Go", f.Family)

	a, d := f.Metrics(20)
	require.Greater(t, a, 0.0)
	require.Greater(t, d, 0.0)
	require.InDelta(t, a+d, f.LineHeight(20), 1e-9)
	require.Greater(t, f.LineHeight(40), f.LineHeight(20))

	require.Equal(t, 0.0, f.Advance("", 20))
	require.Greater(t, f.Advance("Hello", 20), f.Advance("Hell", 20))
	require.Greater(t, f.Advance("Hello", 40), f.Advance("Hello", 20))
}

func TestFontOutline(t *testing.T) {
	f, err := ParseFont(goregular.TTF)
	require.NoError(t, err)

	p := f.Outline("H", 20, 10, 30)
	require.False(t, p.Empty())

	lo, hi := p.Bounds()
	// glyph sits above the baseline, right of the pen
	require.GreaterOrEqual(t, lo.X, float32(10))
	require.Less(t, lo.Y, float32(30))
	require.LessOrEqual(t, hi.Y, float32(30.5))

	require.True(t, f.Outline(" ", 20, 0, 0).Empty())
}

func TestFontOutlineAdvancesPen(t *testing.T) {
	f, err := ParseFont(goregular.TTF)
	require.NoError(t, err)

	_, one := f.Outline("H", 20, 0, 20).Bounds()
	_, two := f.Outline("HH", 20, 0, 20).Bounds()
	require.Greater(t, two.X, one.X+5)
}

func TestFontManagerDefault(t *testing.T) {
	m := NewFontManager(logger.Discard{})
	m.Dirs = nil
	require.Same(t, m.Default(), m.Get(""))
	require.Same(t, m.Default(), m.Get("No Such Family"))
}

func TestFontManagerByFamily(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mono-font.ttf"), gomono.TTF, 0o644))

	m := NewFontManager(logger.Discard{})
	m.Dirs = []string{dir}

	f := m.Get("Go Mono")
	require.Equal(t, "Go Mono", f.Family)
	require.Same(t, f, m.Get("Go Mono"))

	m.Reload()
	require.NotSame(t, f, m.Get("Go Mono"))
}

func TestFontManagerByPath(t *testing.T) {
	p := filepath.Join(t.TempDir(), "x.ttf")
	require.NoError(t, os.WriteFile(p, gomono.TTF, 0o644))

	m := NewFontManager(logger.Discard{})
	m.Dirs = nil
	require.Equal(t, "Go Mono", m.Get(p).Family)
}

func TestFontFallbackGlyphs(t *testing.T) {
	m := NewFontManager(logger.Discard{})
	m.Dirs = nil
	f := m.Get("")
	require.Equal(t, "Go", f.Family)
	require.False(t, f.HasGlyph('こ'))
	require.True(t, f.HasGlyph('A'))

	kana, err := ParseFont(fonts.MPlus1pRegular_ttf)
	require.NoError(t, err)
	require.True(t, kana.HasGlyph('こ'))
	latin, err := ParseFont(goregular.TTF)
	require.NoError(t, err)

	const text = "こんにちは"
	require.Equal(t, kana.Outline(text, 20, 0, 20).Segments, f.Outline(text, 20, 0, 20).Segments)
	require.InDelta(t, kana.Advance(text, 20), f.Advance(text, 20), 1e-9)

	// mixed text measures each run with the font drawing it
	require.InDelta(t, latin.Advance("Hi ", 20)+kana.Advance(text, 20), f.Advance("Hi "+text, 20), 1e-9)

	// a font without fallbacks draws its .notdef box instead
	require.NotEqual(t, kana.Outline("こ", 20, 0, 20).Segments, latin.Outline("こ", 20, 0, 20).Segments)
}

func TestFontOutlineGroupsGlyphs(t *testing.T) {
	f, err := ParseFont(goregular.TTF)
	require.NoError(t, err)

	// "o" has an outer contour and a hole; both stay in one group
	require.Len(t, f.Outline("o", 20, 0, 20).Parts(), 1)
	require.Len(t, f.Outline("o o", 20, 0, 20).Parts(), 2)
}

func TestFontManagerSystemDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "GoMono.ttf"), gomono.TTF, 0o644))

	m := NewFontManager(logger.Discard{})
	m.Dirs = []string{dir}
	m.Families = []string{"No Such Family", "Go Mono"}

	f := m.Get("")
	require.Equal(t, "Go Mono", f.Family)
	require.Len(t, f.Fallbacks, 2)
	require.Equal(t, "Go", f.Fallbacks[0].Family)

	// named fonts share the default chain
	named := m.Get(filepath.Join(dir, "GoMono.ttf"))
	require.NotSame(t, f, named)
	require.Same(t, f, named.Fallbacks[0])
	require.NotEmpty(t, named.Outline("こ", 20, 0, 20).Parts())

	m.Reload()
	require.NotSame(t, f, m.Default())
}
