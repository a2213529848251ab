package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestSnap(t *testing.T) {
	assert.InDelta(t, 0.5, Snap(0.62, 0.5), 1e-6)
	assert.InDelta(t, 1.0, Snap(0.75, 0.5), 1e-6)
	assert.InDelta(t, -0.5, Snap(-0.62, 0.5), 1e-6)
	assert.Equal(t, float32(0.62), Snap(0.62, 0))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(2), Clamp(5, 0, 2))
	assert.Equal(t, float32(0), Clamp(-1, 0, 2))
	assert.Equal(t, float32(7), Clamp(7, math32.Inf(-1), math32.Inf(1)))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}

func TestHexColor(t *testing.T) {
	c := HexColor(0xff0000)
	assert.Equal(t, Color{1, 0, 0, 1}, c)
	assert.Equal(t, float32(0.25), c.WithAlpha(0.25)[3])
}

func TestRectEmpty(t *testing.T) {
	assert.True(t, Rect{}.Empty())
	assert.False(t, Rect{Width: 10, Height: 10}.Empty())
}
