package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVec3InDelta(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v", i, got)
	}
}

func TestBasisLookAtFacesTarget(t *testing.T) {
	eye := mgl32.Vec3{0, 0, 10}
	q := BasisLookAt(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	assertVec3InDelta(t, mgl32.Vec3{0, 0, -1}, q.Rotate(mgl32.Vec3{0, 0, -1}), 1e-6)

	eye = mgl32.Vec3{10, 5, -3}
	q = BasisLookAt(eye, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0, 1, 0})
	want := mgl32.Vec3{1, 1, 1}.Sub(eye).Normalize()
	assertVec3InDelta(t, want, q.Rotate(mgl32.Vec3{0, 0, -1}), 1e-5)
}

func TestBasisLookAtStraightDown(t *testing.T) {
	q := BasisLookAt(mgl32.Vec3{0, 10, 0}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	dir := q.Rotate(mgl32.Vec3{0, 0, -1})
	assert.InDelta(t, -1, dir[1], 1e-3)
}

func TestQuatFromUnitVectors(t *testing.T) {
	up := mgl32.Vec3{0, 1, 0}
	q := QuatFromUnitVectors(up, up)
	assert.InDelta(t, 1, q.W, 1e-6)

	to := mgl32.Vec3{1, 0, 0}
	q = QuatFromUnitVectors(up, to)
	assertVec3InDelta(t, to, q.Rotate(up), 1e-6)

	down := mgl32.Vec3{0, -1, 0}
	q = QuatFromUnitVectors(up, down)
	assertVec3InDelta(t, down, q.Rotate(up), 1e-6)
}

func TestComposeDecompose(t *testing.T) {
	pos := mgl32.Vec3{1, -2, 3}
	rot := mgl32.QuatRotate(0.7, mgl32.Vec3{0, 1, 0})
	scale := mgl32.Vec3{2, 3, 4}

	p, r, s := DecomposeMatrix(ComposeMatrix(pos, rot, scale))
	assertVec3InDelta(t, pos, p, 1e-5)
	assertVec3InDelta(t, scale, s, 1e-5)
	assert.InDelta(t, 1, math32.Abs(r.Dot(rot)), 1e-5)
}

func TestSafeNormalize(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{}, SafeNormalize(mgl32.Vec3{}))
	assertVec3InDelta(t, mgl32.Vec3{0, 1, 0}, SafeNormalize(mgl32.Vec3{0, 3, 0}), 1e-7)
}
