package drag

import (
	"testing"

	"github.com/Carmen-Shannon/topo3d/common"
	"github.com/Carmen-Shannon/topo3d/engine/camera"
	"github.com/Carmen-Shannon/topo3d/engine/controls"
	"github.com/Carmen-Shannon/topo3d/engine/game_object"
	"github.com/Carmen-Shannon/topo3d/engine/input"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	width  = 800
	height = 600
)

// halfWidth is the visible half width of the z=0 plane seen from z=10.
var halfWidth = 10 * math32.Tan(common.DegToRad(50)/2) * width / height

// pixelFor returns the client x coordinate whose ray meets z=0 at world x.
func pixelFor(worldX float32) float32 {
	return (worldX/halfWidth + 1) / 2 * width
}

func newRig(objects ...game_object.GameObject) (input.Hub, Controller) {
	cam := camera.NewCamera(
		camera.WithPosition(mgl32.Vec3{0, 0, 10}),
		camera.WithAspect(float32(width)/height),
	)
	hub := input.NewHub(input.WithBounds(common.Rect{Width: width, Height: height}))
	targets := make([]controls.PickableTarget, len(objects))
	for i, o := range objects {
		targets[i] = o
	}
	return hub, NewController(cam, hub, targets)
}

func record(c Controller) *[]controls.EventType {
	var got []controls.EventType
	for _, t := range []controls.EventType{
		controls.EventHoverOn, controls.EventHoverOff,
		controls.EventDragStart, controls.EventDrag, controls.EventDragEnd,
	} {
		c.On(t, func(e controls.Event) { got = append(got, e.Type) })
	}
	return &got
}

func TestDragKeepsGrabOffset(t *testing.T) {
	box := game_object.NewGameObject(game_object.WithName("node"))
	hub, c := newRig(box)
	events := record(c)

	hub.Dispatch(input.PointerDown(pixelFor(0.3), height/2, input.ButtonLeft))
	require.Equal(t, controls.ModeDrag, c.Mode())
	require.Equal(t, box, c.Selected())

	hub.Dispatch(input.PointerMove(pixelFor(1.5), height/2))
	assert.InDelta(t, 1.2, box.Position()[0], 1e-4)
	assert.InDelta(t, 0, box.Position()[1], 1e-4)
	assert.InDelta(t, 0, box.Position()[2], 1e-4)

	hub.Dispatch(input.PointerUp(pixelFor(1.5), height/2, input.ButtonLeft))
	assert.Equal(t, controls.ModeIdle, c.Mode())
	assert.Nil(t, c.Selected())
	assert.Equal(t, []controls.EventType{controls.EventDragStart, controls.EventDrag, controls.EventDragEnd}, *events)
}

func TestSetObjectsEndsDragOfRemovedObject(t *testing.T) {
	box := game_object.NewGameObject(game_object.WithName("node"))
	other := game_object.NewGameObject(game_object.WithName("other"), game_object.WithPosition(mgl32.Vec3{3, 0, 0}))
	hub, c := newRig(box)
	events := record(c)

	hub.Dispatch(input.PointerDown(pixelFor(0), height/2, input.ButtonLeft))
	require.Equal(t, controls.ModeDrag, c.Mode())

	c.SetObjects([]controls.PickableTarget{other})
	assert.Equal(t, controls.ModeIdle, c.Mode())
	assert.Nil(t, c.Selected())
	assert.Equal(t, []controls.EventType{controls.EventDragStart, controls.EventDragEnd}, *events)

	hub.Dispatch(input.PointerMove(pixelFor(1.5), height/2))
	assert.InDelta(t, 0, box.Position()[0], 1e-4)
}

func TestSetObjectsKeepsDragOfRetainedObject(t *testing.T) {
	box := game_object.NewGameObject(game_object.WithName("node"))
	hub, c := newRig(box)

	hub.Dispatch(input.PointerDown(pixelFor(0), height/2, input.ButtonLeft))
	c.SetObjects([]controls.PickableTarget{box})
	assert.Equal(t, controls.ModeDrag, c.Mode())
	assert.Equal(t, box, c.Selected())
}

func TestDragChildMovesInParentFrame(t *testing.T) {
	parent := game_object.NewGameObject(game_object.WithPosition(mgl32.Vec3{2, 0, 0}), game_object.WithShape(game_object.ShapeNone))
	child := game_object.NewGameObject(game_object.WithPosition(mgl32.Vec3{1, 0, 0}))
	parent.Add(child)
	child.UpdateMatrixWorld()
	hub, c := newRig(parent, child)

	hub.Dispatch(input.PointerDown(pixelFor(3), height/2, input.ButtonLeft))
	require.Equal(t, child, c.Selected())
	hub.Dispatch(input.PointerMove(pixelFor(4), height/2))

	assert.InDelta(t, 2, child.Position()[0], 1e-4)
	assert.InDelta(t, 4, child.WorldPosition()[0], 1e-4)
}

func TestHoverOnAndOff(t *testing.T) {
	box := game_object.NewGameObject()
	hub, c := newRig(box)
	events := record(c)

	hub.Dispatch(input.PointerMove(width/2, height/2))
	assert.Equal(t, box, c.Hovered())
	hub.Dispatch(input.PointerMove(width/2+1, height/2))
	hub.Dispatch(input.PointerMove(10, 10))
	assert.Nil(t, c.Hovered())
	assert.Equal(t, []controls.EventType{controls.EventHoverOn, controls.EventHoverOff}, *events)
}

func TestMissOrWrongButtonDoesNotStart(t *testing.T) {
	box := game_object.NewGameObject()
	hub, c := newRig(box)

	hub.Dispatch(input.PointerDown(10, 10, input.ButtonLeft))
	assert.Equal(t, controls.ModeIdle, c.Mode())
	hub.Dispatch(input.PointerDown(width/2, height/2, input.ButtonRight))
	assert.Equal(t, controls.ModeIdle, c.Mode())

	c.SetEnabled(false)
	hub.Dispatch(input.PointerDown(width/2, height/2, input.ButtonLeft))
	assert.Equal(t, controls.ModeIdle, c.Mode())
}

func TestSecondDownIgnoredWhileDragging(t *testing.T) {
	a := game_object.NewGameObject(game_object.WithPosition(mgl32.Vec3{-2, 0, 0}))
	b := game_object.NewGameObject(game_object.WithPosition(mgl32.Vec3{2, 0, 0}))
	hub, c := newRig(a, b)

	hub.Dispatch(input.PointerDown(pixelFor(-2), height/2, input.ButtonLeft))
	hub.Dispatch(input.PointerDown(pixelFor(2), height/2, input.ButtonLeft))
	assert.Equal(t, a, c.Selected())
}

func TestTouchDragAndDeactivate(t *testing.T) {
	box := game_object.NewGameObject()
	hub, c := newRig(box)

	hub.Dispatch(input.Touch(input.KindTouchStart, [2]float32{width / 2, height / 2}))
	require.Equal(t, controls.ModeDrag, c.Mode())
	hub.Dispatch(input.Touch(input.KindTouchMove, [2]float32{pixelFor(1), height / 2}))
	assert.InDelta(t, 1, box.Position()[0], 1e-4)
	hub.Dispatch(input.Touch(input.KindTouchEnd))
	assert.Equal(t, controls.ModeIdle, c.Mode())

	c.Deactivate()
	assert.Zero(t, hub.Subscribers())
	hub.Dispatch(input.PointerDown(pixelFor(1), height/2, input.ButtonLeft))
	assert.Equal(t, controls.ModeIdle, c.Mode())

	c.Activate()
	c.Activate()
	assert.Equal(t, 1, hub.Subscribers())
}
