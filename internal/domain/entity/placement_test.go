package entity

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlacementRectCenter(t *testing.T) {
	r := PlacementRect{X: 10, Y: 20, Width: 8, Height: 6}
	x, y := r.Center()
	require.Equal(t, 14, x)
	require.Equal(t, 23, y)
}

func TestPlacementRectClip(t *testing.T) {
	bounds := image.Rect(0, 0, 640, 480)

	inside := PlacementRect{X: 230, Y: 144, Width: 192, Height: 256}
	require.Equal(t, inside, inside.Clip(bounds))

	edge := PlacementRect{X: 600, Y: 400, Width: 100, Height: 200}
	require.Equal(t, PlacementRect{X: 600, Y: 400, Width: 40, Height: 80}, edge.Clip(bounds))

	negative := PlacementRect{X: -20, Y: -10, Width: 50, Height: 30}
	require.Equal(t, PlacementRect{X: 0, Y: 0, Width: 30, Height: 20}, negative.Clip(bounds))

	outside := PlacementRect{X: 700, Y: 10, Width: 10, Height: 10}
	require.True(t, outside.Clip(bounds).Empty())
}
