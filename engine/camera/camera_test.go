package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookAtAndViewMatrix(t *testing.T) {
	c := NewCamera(WithPosition(mgl32.Vec3{0, 0, 600}), WithLookAt(mgl32.Vec3{}))

	dir := c.WorldDirection()
	assert.InDelta(t, -1, dir[2], 1e-6)

	eyeInView := c.ViewMatrix().Mul4x1(c.Position().Vec4(1))
	assert.InDelta(t, 0, eyeInView[0], 1e-4)
	assert.InDelta(t, 0, eyeInView[1], 1e-4)
	assert.InDelta(t, 0, eyeInView[2], 1e-4)

	originInView := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -600, originInView[2], 1e-3)
}

func TestPerspectiveRay(t *testing.T) {
	c := NewCamera(WithPosition(mgl32.Vec3{0, 0, 10}), WithLookAt(mgl32.Vec3{}), WithAspect(2))

	ray, ok := c.Ray(mgl32.Vec2{0, 0})
	require.True(t, ok)
	assert.Equal(t, c.Position(), ray.Origin)
	assert.InDelta(t, -1, ray.Direction[2], 1e-6)

	ray, ok = c.Ray(mgl32.Vec2{1, 0})
	require.True(t, ok)
	assert.Greater(t, ray.Direction[0], float32(0))
	assert.InDelta(t, 1, ray.Direction.Len(), 1e-6)
}

func TestOrthographicRayAndZoom(t *testing.T) {
	c := NewCamera(
		WithProjection(ProjectionOrthographic),
		WithFrustum(-10, 10, 5, -5),
		WithPosition(mgl32.Vec3{0, 0, 10}),
		WithLookAt(mgl32.Vec3{}),
	)

	ray, ok := c.Ray(mgl32.Vec2{1, 1})
	require.True(t, ok)
	assert.InDelta(t, 10, ray.Origin[0], 1e-5)
	assert.InDelta(t, 5, ray.Origin[1], 1e-5)
	assert.InDelta(t, -1, ray.Direction[2], 1e-6)

	before := c.ProjectionMatrix()[0]
	c.SetZoom(2)
	c.UpdateProjectionMatrix()
	assert.InDelta(t, before*2, c.ProjectionMatrix()[0], 1e-6)

	ray, _ = c.Ray(mgl32.Vec2{1, 1})
	assert.InDelta(t, 5, ray.Origin[0], 1e-5)
}

func TestCustomProjectionHasNoRay(t *testing.T) {
	c := NewCamera(WithProjection(ProjectionCustom))
	_, ok := c.Ray(mgl32.Vec2{})
	assert.False(t, ok)
	assert.Equal(t, "custom", c.Projection().String())
}

func TestGPUCameraUniformMarshal(t *testing.T) {
	c := NewCamera(WithPosition(mgl32.Vec3{1, 2, 3}))
	u := NewGPUCameraUniform(c)
	buf := u.Marshal()
	assert.Len(t, buf, 80)
	assert.Equal(t, 80, u.Size())
}
