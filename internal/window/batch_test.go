package window

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"go-overlay/pkg/render"
)

// countBatcher charges one vertex per segment and records every flush.
type countBatcher struct {
	pending []*render.Path
	count   int
	last    int
	flushed [][]*render.Path
	sizes   []int
}

func (b *countBatcher) add(p *render.Path) int {
	b.pending = append(b.pending, p)
	b.last = len(p.Segments)
	b.count += b.last
	return b.count
}

func (b *countBatcher) undo() {
	b.pending = b.pending[:len(b.pending)-1]
	b.count -= b.last
}

func (b *countBatcher) flush() {
	if len(b.pending) == 0 {
		return
	}
	b.flushed = append(b.flushed, b.pending)
	b.sizes = append(b.sizes, b.count)
	b.pending, b.count = nil, 0
}

// glyphs builds a path of n groups of segs segments each.
func glyphs(n, segs int) *render.Path {
	p := &render.Path{}
	for i := 0; i < n; i++ {
		p.Group()
		p.MoveTo(float32(i), 0)
		for j := 1; j < segs-1; j++ {
			p.LineTo(float32(i), float32(j))
		}
		p.Close()
	}
	return p
}

func TestDrawBatchedStaysUnderLimit(t *testing.T) {
	// a long body: 800 glyphs of 115 segments each
	parts := glyphs(800, 115).Parts()
	require.Len(t, parts, 800)

	b := &countBatcher{}
	drawBatched(b, parts, 65535)

	require.Greater(t, len(b.sizes), 1)
	var drawn []*render.Path
	for i, batch := range b.flushed {
		require.LessOrEqual(t, b.sizes[i], 65535)
		drawn = append(drawn, batch...)
	}
	require.Equal(t, parts, drawn)
}

func TestDrawBatchedSingleFlush(t *testing.T) {
	parts := glyphs(3, 10).Parts()
	b := &countBatcher{}
	drawBatched(b, parts, 100)
	require.Equal(t, []int{30}, b.sizes)
}

func TestDrawBatchedOversizedPart(t *testing.T) {
	parts := []*render.Path{glyphs(1, 50), glyphs(1, 5), glyphs(1, 5)}
	b := &countBatcher{}
	drawBatched(b, parts, 20)
	require.Equal(t, []int{50, 10}, b.sizes)
}

func TestDrawBatchedNothing(t *testing.T) {
	b := &countBatcher{}
	drawBatched(b, nil, 100)
	require.Empty(t, b.flushed)
}

func TestDeviceSize(t *testing.T) {
	w, h := deviceSize(image.Rect(0, 0, 1280, 720), 1.5)
	require.Equal(t, 1920, w)
	require.Equal(t, 1080, h)

	w, h = deviceSize(image.Rect(0, 0, 1280, 720), 0)
	require.Equal(t, 1280, w)
	require.Equal(t, 720, h)

	w, _ = deviceSize(image.Rect(0, 0, 1001, 10), 1.25)
	require.Equal(t, 1252, w)
}
