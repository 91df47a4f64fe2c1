package overlay

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"go-overlay/internal/textbox"
)

func TestScale(t *testing.T) {
	for _, ca := range []struct {
		name string
		box  textbox.Box
		dpr  float64
		exp  int
		want image.Rectangle
	}{
		{
			"identity",
			textbox.Box{X: 10, Y: 20, Width: 30, Height: 40},
			1, 0,
			image.Rect(10, 20, 40, 60),
		},
		{
			"expansion only",
			textbox.Box{X: 10, Y: 20, Width: 30, Height: 40},
			1, 6,
			image.Rect(7, 17, 43, 63),
		},
		{
			"retina",
			textbox.Box{X: 100, Y: 200, Width: 50, Height: 20},
			2, 6,
			image.Rect(47, 97, 78, 113),
		},
		{
			"fractional ratio rounds",
			textbox.Box{X: 100, Y: 200, Width: 50, Height: 20},
			1.5, 6,
			image.Rect(64, 130, 103, 149),
		},
		{
			"odd expansion",
			textbox.Box{X: 3, Y: 3, Width: 3, Height: 3},
			2, 7,
			image.Rect(-1, -1, 8, 8),
		},
		{
			"invalid ratio",
			textbox.Box{X: 10, Y: 20, Width: 30, Height: 40},
			0, 0,
			image.Rect(10, 20, 40, 60),
		},
	} {
		t.Run(ca.name, func(t *testing.T) {
			require.Equal(t, ca.want, Scale(ca.box, ca.dpr, ca.exp))
		})
	}
}

func TestEquivalent(t *testing.T) {
	base := []textbox.Box{
		{X: 10, Y: 20, Width: 30, Height: 40, Text: "one"},
		{X: 100, Y: 200, Width: 300, Height: 40, Text: "two"},
	}
	shift := func(dx, dy, dw, dh int) []textbox.Box {
		out := append([]textbox.Box(nil), base...)
		out[1].X += dx
		out[1].Y += dy
		out[1].Width += dw
		out[1].Height += dh
		return out
	}

	require.True(t, Equivalent(base, base, 5))
	require.True(t, Equivalent(base, shift(3, 0, 0, 0), 5))
	require.True(t, Equivalent(base, shift(-5, 5, -5, 5), 5))
	require.False(t, Equivalent(base, shift(10, 0, 0, 0), 5))
	require.False(t, Equivalent(base, shift(0, -6, 0, 0), 5))
	require.False(t, Equivalent(base, shift(0, 0, 6, 0), 5))
	require.False(t, Equivalent(base, shift(0, 0, 0, -6), 5))
	require.False(t, Equivalent(base, base[:1], 5))

	renamed := shift(0, 0, 0, 0)
	renamed[0].Text = "One"
	require.False(t, Equivalent(base, renamed, 5))

	require.True(t, Equivalent(base, shift(10, 0, 0, 0), 10))
	require.True(t, Equivalent(nil, nil, 5))
}
