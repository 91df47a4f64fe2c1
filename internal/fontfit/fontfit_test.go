package fontfit

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

// monoMeasurer models a monospace font: each rune advances half an em and
// the line is 1.25 em tall.
type monoMeasurer struct {
	calls int
}

func (m *monoMeasurer) Advance(text string, size int) float64 {
	m.calls++
	return 0.5 * float64(size) * float64(utf8.RuneCountInString(text))
}

func (m *monoMeasurer) LineHeight(size int) float64 {
	return 1.25 * float64(size)
}

func TestFitLargeBoxReturnsMax(t *testing.T) {
	m := &monoMeasurer{}
	require.Equal(t, 48, Fit(m, "hi", 1000, 1000, 5, 48))
}

func TestFitHeightBound(t *testing.T) {
	m := &monoMeasurer{}
	// 1.25*size <= 30 -> 24
	require.Equal(t, 24, Fit(m, "hi", 1000, 30, 5, 48))
}

func TestFitWidthBound(t *testing.T) {
	m := &monoMeasurer{}
	// 10 runes * 0.5 * size <= 60 -> 12
	require.Equal(t, 12, Fit(m, "0123456789", 60, 100, 5, 48))
}

func TestFitFloor(t *testing.T) {
	m := &monoMeasurer{}
	require.Equal(t, 5, Fit(m, "a very long line of text", 10, 3, 5, 48))
}

func TestFitStartsFromMinWhenTargetIsSmall(t *testing.T) {
	m := &monoMeasurer{}
	require.Equal(t, 7, Fit(m, "x", 2, 2, 7, 48))
	require.Equal(t, 0, m.calls)
}

func TestFitInvertedBounds(t *testing.T) {
	m := &monoMeasurer{}
	require.Equal(t, 20, Fit(m, "x", 1000, 1000, 20, 10))
}

func TestFitRange(t *testing.T) {
	m := &monoMeasurer{}
	for w := 1; w < 400; w += 13 {
		for h := 1; h < 120; h += 7 {
			size := Fit(m, "range check", w, h, 6, 40)
			require.GreaterOrEqual(t, size, 6)
			require.LessOrEqual(t, size, 40)
		}
	}
}

func TestSearchMatchesFit(t *testing.T) {
	m := &monoMeasurer{}
	for _, text := range []string{"", "a", "hello world", "a much longer piece of translated text"} {
		for w := 1; w < 500; w += 17 {
			for h := 1; h < 100; h += 5 {
				require.Equal(t, Fit(m, text, w, h, 5, 48), Search(m, text, w, h, 5, 48),
					"text=%q w=%d h=%d", text, w, h)
			}
		}
	}
}
