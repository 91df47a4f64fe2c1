// internal/overlay/geometry.go
package overlay

import (
	"image"

	"go-overlay/internal/textbox"
	"go-overlay/internal/utils"
)

// DefaultJitterTolerance is the largest per-coordinate drift, in reference
// pixels, that still counts as the same box.
const DefaultJitterTolerance = 5

// Scale maps a box from reference resolution to logical screen pixels.
// Expansion is a margin in final pixels, applied after scaling.
func Scale(b textbox.Box, dpr float64, expansion int) image.Rectangle {
	x := utils.ScaleDown(b.X, dpr) - expansion/2
	y := utils.ScaleDown(b.Y, dpr) - expansion/2
	w := utils.ScaleDown(b.Width, dpr) + expansion
	h := utils.ScaleDown(b.Height, dpr) + expansion
	return image.Rect(x, y, x+w, y+h)
}

// Equivalent reports whether b can be shown with the labels built for a:
// same count, same text by index, and each coordinate within tol.
func Equivalent(a, b []textbox.Box, tol int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Text != b[i].Text {
			return false
		}
		if utils.Abs(a[i].X-b[i].X) > tol ||
			utils.Abs(a[i].Y-b[i].Y) > tol ||
			utils.Abs(a[i].Width-b[i].Width) > tol ||
			utils.Abs(a[i].Height-b[i].Height) > tol {
			return false
		}
	}
	return true
}
