package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/topo3d/engine/raycast"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHierarchyWorldMatrix(t *testing.T) {
	parent := NewGameObject(WithPosition(mgl32.Vec3{10, 0, 0}), WithScale(mgl32.Vec3{2, 2, 2}))
	child := NewGameObject(WithPosition(mgl32.Vec3{1, 0, 0}))
	parent.Add(child)

	parent.UpdateMatrixWorld()
	child.UpdateMatrixWorld()

	assert.Equal(t, mgl32.Vec3{12, 0, 0}, child.WorldPosition())
	assert.Equal(t, parent, child.Parent())
	require.Len(t, parent.Children(), 1)

	parent.Remove(child)
	assert.Nil(t, child.Parent())
	assert.Empty(t, parent.Children())
	assert.Equal(t, mgl32.Ident4(), child.ParentWorldMatrix())
}

func TestPickingUsesWorldBox(t *testing.T) {
	g := NewGameObject(
		WithName("node-1"),
		WithPosition(mgl32.Vec3{0, 0, -10}),
		WithSize(mgl32.Vec3{5, 5, 5}),
	)
	r := raycast.Ray{Origin: mgl32.Vec3{2, 0, 0}, Direction: mgl32.Vec3{0, 0, -1}}

	hit, ok := raycast.First(r, []raycast.Pickable{g})
	require.True(t, ok)
	assert.Equal(t, "node-1", hit.Name)
	assert.InDelta(t, 7.5, hit.Distance, 1e-5)

	g.SetEnabled(false)
	_, ok = raycast.First(r, []raycast.Pickable{g})
	assert.False(t, ok)

	g.SetEnabled(true)
	g.SetScale(mgl32.Vec3{0.5, 0.5, 0.5})
	g.UpdateMatrixWorld()
	_, ok = raycast.First(r, []raycast.Pickable{g})
	assert.False(t, ok, "shrunk box no longer reaches x=2")
}

func TestLookAtFacesTarget(t *testing.T) {
	g := NewGameObject(WithPosition(mgl32.Vec3{0, 0, 0}))
	g.LookAt(mgl32.Vec3{0, 0, 600})
	forward := g.Quaternion().Rotate(mgl32.Vec3{0, 0, 1})
	assert.InDelta(t, 1, forward[2], 1e-5)
}
