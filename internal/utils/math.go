// internal/utils/math.go
package utils

import "math"

// Clamp ограничивает v диапазоном [lo, hi]. If lo > hi, lo wins.
func Clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Abs returns |v|.
func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ScaleDown converts a reference-resolution length to logical pixels,
// rounding half away from zero.
func ScaleDown(v int, ratio float64) int {
	if ratio <= 0 {
		return v
	}
	return int(math.Round(float64(v) / ratio))
}
