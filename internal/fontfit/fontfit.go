// Package fontfit picks the largest pixel size at which a line of text
// fits inside a box.
package fontfit

import "go-overlay/internal/utils"

// Measurer reports font metrics at a pixel size.
type Measurer interface {
	// Advance is the horizontal advance of text, kerning included.
	Advance(text string, size int) float64
	// LineHeight is ascent plus descent.
	LineHeight(size int) float64
}

func fits(m Measurer, text string, size int, targetW, targetH float64) bool {
	return m.Advance(text, size) <= targetW && m.LineHeight(size) <= targetH
}

func bounds(minSize, maxSize int) (int, int) {
	if maxSize < minSize {
		maxSize = minSize
	}
	return minSize, maxSize
}

// Fit starts at the size matching the target height (clamped to
// [minSize, maxSize]) and shrinks one pixel at a time until the text fits.
// It never returns less than minSize, even if the text still overflows.
func Fit(m Measurer, text string, targetW, targetH, minSize, maxSize int) int {
	minSize, maxSize = bounds(minSize, maxSize)
	size := utils.Clamp(targetH, minSize, maxSize)

	for size > minSize && !fits(m, text, size, float64(targetW), float64(targetH)) {
		size--
	}
	return size
}

// Search returns the same size as Fit for measurers whose advance and
// line height grow with size, using a binary search.
func Search(m Measurer, text string, targetW, targetH, minSize, maxSize int) int {
	minSize, maxSize = bounds(minSize, maxSize)
	hi := utils.Clamp(targetH, minSize, maxSize)
	lo := minSize
	w, h := float64(targetW), float64(targetH)

	// invariant: answer in [lo, hi]; lo is either minSize or known to fit
	for lo < hi {
		mid := lo + (hi-lo+1)/2
		if fits(m, text, mid, w, h) {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
