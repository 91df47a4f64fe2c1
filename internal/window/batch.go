package window

import (
	"image"
	"math"

	"go-overlay/pkg/render"
)

// batcher accumulates tessellated parts until they are drawn.
type batcher interface {
	// add appends p and returns the pending vertex count.
	add(p *render.Path) int
	// undo drops what the last add appended.
	undo()
	// flush draws what is pending and empties it.
	flush()
}

// drawBatched adds parts in order and flushes before the pending vertex
// count passes limit. A single part above limit is drawn on its own.
func drawBatched(b batcher, parts []*render.Path, limit int) {
	pending := false
	for _, p := range parts {
		if b.add(p) <= limit || !pending {
			pending = true
			continue
		}
		b.undo()
		b.flush()
		b.add(p)
	}
	b.flush()
}

// deviceSize is the size in device pixels of a window covering bounds.
func deviceSize(bounds image.Rectangle, scale float64) (int, int) {
	if scale <= 0 {
		scale = 1
	}
	return int(math.Ceil(float64(bounds.Dx()) * scale)), int(math.Ceil(float64(bounds.Dy()) * scale))
}
