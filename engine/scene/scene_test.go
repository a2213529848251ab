package scene

import (
	"testing"

	"github.com/Carmen-Shannon/topo3d/engine/camera"
	"github.com/Carmen-Shannon/topo3d/engine/game_object"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateMatricesHierarchy(t *testing.T) {
	root := game_object.NewGameObject(game_object.WithPosition(mgl32.Vec3{1, 0, 0}))
	child := game_object.NewGameObject(game_object.WithPosition(mgl32.Vec3{0, 2, 0}))
	grandchild := game_object.NewGameObject(game_object.WithPosition(mgl32.Vec3{0, 0, 3}))
	root.Add(child)
	child.Add(grandchild)

	s := NewScene("test", camera.NewCamera(), WithObjects(root))
	root.SetPosition(mgl32.Vec3{10, 0, 0})
	s.UpdateMatrices()

	assert.Equal(t, mgl32.Vec3{10, 2, 3}, grandchild.WorldPosition())
	assert.Equal(t, 3, s.Count())
	assert.Equal(t, grandchild, s.Get(grandchild.ID()))
}

func TestUpdateMatricesParallel(t *testing.T) {
	s := NewScene("bulk", camera.NewCamera(), WithComputeWorkers(4))
	var objs []game_object.GameObject
	for i := range parallelThreshold * 2 {
		obj := game_object.NewGameObject()
		s.Add(obj)
		obj.SetPosition(mgl32.Vec3{float32(i), 0, 0})
		objs = append(objs, obj)
	}

	s.UpdateMatrices()

	for i, obj := range objs {
		require.Equal(t, float32(i), obj.WorldPosition()[0])
	}
}

func TestAddRemoveAndPickables(t *testing.T) {
	a := game_object.NewGameObject(game_object.WithName("a"))
	b := game_object.NewGameObject(game_object.WithName("b"), game_object.WithShape(game_object.ShapeNone))
	s := NewScene("pick", camera.NewCamera())

	s.Add(a)
	s.Add(a)
	s.Add(b)
	assert.Len(t, s.Roots(), 2)
	assert.Len(t, s.Pickables(), 1)

	a.SetEnabled(false)
	assert.Empty(t, s.Pickables())

	s.Remove(a.ID())
	assert.Len(t, s.Roots(), 1)
	s.Clear()
	assert.Zero(t, s.Count())
	assert.Nil(t, s.Get(b.ID()))
}
