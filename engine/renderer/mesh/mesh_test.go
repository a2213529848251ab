package mesh

import (
	"testing"
	"unsafe"

	"github.com/Carmen-Shannon/topo3d/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexLayout(t *testing.T) {
	assert.Equal(t, uintptr(VertexStride), unsafe.Sizeof(Vertex{}))
	assert.Equal(t, uintptr(12), unsafe.Offsetof(Vertex{}.Color))
}

func TestGrid(t *testing.T) {
	var b Batch
	center, line := common.HexColor(0x444444), common.HexColor(0x888888)
	b.Grid(2000, 100, -3, center, line)

	require.Len(t, b.Lines, 101*4)
	for _, v := range b.Lines {
		assert.Equal(t, float32(-3), v.Position[1])
	}
	assert.Equal(t, [3]float32{-1000, -3, -1000}, b.Lines[0].Position)

	var centered int
	for _, v := range b.Lines {
		if v.Color == center {
			centered++
		}
	}
	assert.Equal(t, 4, centered)

	b.Reset()
	b.Grid(10, 0, 0, center, line)
	assert.True(t, b.Empty())
}

func TestAxesAndMarker(t *testing.T) {
	var b Batch
	b.Axes(mgl32.Vec3{-500, -500, -500}, 1)
	require.Len(t, b.Lines, 6)
	assert.Equal(t, [3]float32{-499, -500, -500}, b.Lines[1].Position)
	assert.Equal(t, common.HexColor(0x0000ff), b.Lines[5].Color)

	b.Reset()
	b.Marker(mgl32.Vec3{1, 2, 3}, 2, common.HexColor(0x333333))
	require.Len(t, b.Lines, 6)
	assert.Equal(t, [3]float32{0, 2, 3}, b.Lines[0].Position)
	assert.Equal(t, [3]float32{1, 2, 4}, b.Lines[5].Position)
}

func TestBoxTrianglesWindOutward(t *testing.T) {
	var b Batch
	world := mgl32.Translate3D(10, 0, 0)
	b.Box(world, mgl32.Vec3{2.5, 2.5, 2.5}, common.HexColor(0x285064))
	require.Len(t, b.Triangles, 36)

	center := mgl32.Vec3{10, 0, 0}
	for i := 0; i < len(b.Triangles); i += 3 {
		p0 := mgl32.Vec3(b.Triangles[i].Position)
		p1 := mgl32.Vec3(b.Triangles[i+1].Position)
		p2 := mgl32.Vec3(b.Triangles[i+2].Position)
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		mid := p0.Add(p1).Add(p2).Mul(1.0 / 3)
		assert.Greater(t, n.Dot(mid.Sub(center)), float32(0), "triangle %d faces inward", i/3)
	}
	assert.Equal(t, [3]float32{12.5, 2.5, 2.5}, b.Triangles[1].Position)
}

func TestShade(t *testing.T) {
	c := common.Color{1, 1, 1, 0.5}
	top := Shade(c, lightDir)
	assert.InDelta(t, 1, top[0], 1e-6)
	assert.Equal(t, float32(0.5), top[3])

	bottom := Shade(c, lightDir.Mul(-1))
	assert.InDelta(t, 0.45, bottom[0], 1e-6)
}
