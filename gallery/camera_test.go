package gallery_test

import (
	"testing"

	"github.com/plus3/gallery/gallery"
	"github.com/plus3/gallery/vec"
	"github.com/stretchr/testify/assert"
)

func TestCameraProjection(t *testing.T) {
	cam := gallery.Camera{Width: 16}

	assert.Equal(t, 50.0, cam.Scale(800))

	x, y := cam.WorldToScreen(vec.Zero, 800, 600)
	assert.Equal(t, 400.0, x)
	assert.Equal(t, 300.0, y)

	x, y = cam.WorldToScreen(vec.New(2, 3), 800, 600)
	assert.Equal(t, 500.0, x)
	assert.Equal(t, 150.0, y, "world y points up")

	cam.Position = vec.New(2, 3)
	x, y = cam.WorldToScreen(vec.New(2, 3), 800, 600)
	assert.Equal(t, 400.0, x)
	assert.Equal(t, 300.0, y)
}

func TestCameraRoundTrip(t *testing.T) {
	cam := gallery.Camera{Position: vec.New(-1, 0.5), Width: 12}
	for _, p := range []vec.Vector{vec.Zero, vec.New(-4, 3), vec.New(5.5, -2.25)} {
		x, y := cam.WorldToScreen(p, 640, 480)
		back := cam.ScreenToWorld(x, y, 640, 480)
		assert.InDelta(t, p.X, back.X, 1e-9)
		assert.InDelta(t, p.Y, back.Y, 1e-9)
	}
}

func TestCameraZeroWidth(t *testing.T) {
	assert.Equal(t, 1.0, gallery.Camera{}.Scale(800))
}
