package app

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/topo3d/common"
	"github.com/Carmen-Shannon/topo3d/config"
	"github.com/Carmen-Shannon/topo3d/engine/camera"
	"github.com/Carmen-Shannon/topo3d/engine/controls"
	"github.com/Carmen-Shannon/topo3d/engine/controls/transform"
	"github.com/Carmen-Shannon/topo3d/engine/input"
	"github.com/Carmen-Shannon/topo3d/engine/renderer/mesh"
	"github.com/Carmen-Shannon/topo3d/topology"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	width  = 800
	height = 600
)

// sample places "gw" at the world origin and "cloud" off to the left, linked to each other.
const sample = `{"topolist": [
	{"id": 1, "dev_id": "gw", "ip": "10.0.0.1", "x": 1500, "y": 0, "links": [{"dev_id": "cloud", "type": "cloud"}]},
	{"id": 2, "dev_id": "cloud", "ip": "", "x": 500, "y": 0, "links": [{"dev_id": "missing"}]}
]}`

func newRig(t *testing.T, options ...ViewerBuilderOption) (input.Hub, Viewer) {
	t.Helper()
	cfg := config.Default()
	cam := camera.NewCamera(cfg.CameraOptions(float32(width)/height)...)
	hub := input.NewHub(input.WithBounds(common.Rect{Width: width, Height: height}))
	opts := append([]ViewerBuilderOption{WithRandom(func() float64 { return 0 })}, options...)
	v := NewViewer(cam, hub, opts...)

	topo, err := topology.Parse([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, v.Load(topo))
	return hub, v
}

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-3, "component %d of %v", i, got)
	}
}

func TestLoadBuildsScene(t *testing.T) {
	_, v := newRig(t)

	nodes := v.Nodes()
	require.Len(t, nodes, 2)
	assertVec(t, mgl32.Vec3{0, 0, 0}, nodes[0].Position())
	assertVec(t, mgl32.Vec3{-200, 0, 0}, nodes[1].Position())
	assert.Equal(t, "10.0.0.1", nodes[0].Label())
	assert.Equal(t, "cloud", nodes[1].Label())

	l := v.Layout()
	assert.Equal(t, []topology.Edge{{From: 1, To: 0}}, l.Edges)
	assert.Equal(t, 1, l.Unresolved)

	// two node boxes plus the label group
	assert.Len(t, v.Scene().Roots(), 3)
	assert.Len(t, v.Drag().Objects(), 2)
	assert.Equal(t, 5, v.Scene().Count())
}

func TestLoadReplacesPreviousTopology(t *testing.T) {
	_, v := newRig(t)
	first := v.Nodes()[0]
	v.Transform().Attach(first)

	topo, err := topology.Parse([]byte(`[{"dev_id": "a", "ip": "10.0.0.9", "x": 0, "y": 0}]`))
	require.NoError(t, err)
	require.NoError(t, v.Load(topo))

	assert.Len(t, v.Nodes(), 1)
	assert.Len(t, v.Scene().Roots(), 2)
	assert.Nil(t, v.Scene().Get(first.ID()))
	assert.False(t, v.Transform().Visible())
}

func TestLoadRejectsInvalidTopology(t *testing.T) {
	_, v := newRig(t)

	dup := &topology.Topology{Records: []topology.Record{{DevID: "a"}, {DevID: "a"}}}
	assert.ErrorIs(t, v.Load(dup), topology.ErrDuplicateNode)
	assert.ErrorIs(t, v.Load(&topology.Topology{}), topology.ErrEmptyTopology)
	assert.ErrorIs(t, v.Load(nil), topology.ErrEmptyTopology)
	assert.Len(t, v.Nodes(), 2)
}

func TestDragAttachesGizmoAndSuspendsOrbit(t *testing.T) {
	hub, v := newRig(t)
	node := v.Nodes()[0]
	v.Tick(0)

	hub.Dispatch(input.PointerDown(width/2, height/2, input.ButtonLeft))
	assert.Equal(t, controls.ModeDrag, v.Drag().Mode())
	assert.False(t, v.Orbit().Enabled())
	assert.Equal(t, controls.ModeIdle, v.Orbit().Mode())
	require.True(t, v.Transform().Visible())
	assert.Equal(t, controls.Target(node), v.Transform().Object())

	hub.Dispatch(input.PointerMove(width/2+20, height/2))
	assert.Greater(t, node.Position().X(), float32(1))
	assert.InDelta(t, 0, node.Position().Y(), 1e-3)
	assert.True(t, v.Tick(0.016))

	hub.Dispatch(input.PointerUp(width/2+20, height/2, input.ButtonLeft))
	assert.True(t, v.Orbit().Enabled())
	assert.True(t, v.Transform().Visible())
	assert.Contains(t, v.Status(), "10.0.0.1")
}

func TestOrbitEndHidesGizmoAfterDelay(t *testing.T) {
	hub, v := newRig(t, WithAutoHide(2*time.Second))
	v.Transform().Attach(v.Nodes()[0])
	v.Tick(0)

	hub.Dispatch(input.PointerDown(40, 40, input.ButtonLeft))
	require.Equal(t, controls.ModeRotate, v.Orbit().Mode())
	hub.Dispatch(input.PointerMove(60, 40))
	hub.Dispatch(input.PointerUp(60, 40, input.ButtonLeft))
	assert.Equal(t, controls.ModeIdle, v.Orbit().Mode())

	v.Tick(1.5)
	assert.True(t, v.Transform().Visible())
	v.Tick(0.5)
	assert.False(t, v.Transform().Visible())
}

func TestOrbitStartCancelsPendingHide(t *testing.T) {
	hub, v := newRig(t, WithAutoHide(time.Second))
	v.Transform().Attach(v.Nodes()[0])

	hub.Dispatch(input.Wheel(-100))
	v.Tick(0.5)
	hub.Dispatch(input.PointerDown(40, 40, input.ButtonLeft))
	v.Tick(5)
	assert.True(t, v.Transform().Visible())
	hub.Dispatch(input.PointerUp(40, 40, input.ButtonLeft))
	v.Tick(1)
	assert.False(t, v.Transform().Visible())
}

func TestKeysDriveGizmoSettings(t *testing.T) {
	hub, v := newRig(t)
	tc := v.Transform()

	hub.Dispatch(input.KeyDown(common.KeyE, 0))
	assert.Equal(t, transform.ModeRotate, tc.Mode())
	hub.Dispatch(input.KeyDown(common.KeyQ, 0))
	assert.Equal(t, transform.SpaceLocal, tc.Space())
	hub.Dispatch(input.KeyDown(common.KeyQ, 0))
	assert.Equal(t, transform.SpaceWorld, tc.Space())
	hub.Dispatch(input.KeyDown(common.KeyEqual, 0))
	assert.InDelta(t, 1.1, tc.Settings().Size, 1e-6)
	for range 20 {
		hub.Dispatch(input.KeyDown(common.KeyMinus, 0))
	}
	assert.InDelta(t, 0.1, tc.Settings().Size, 1e-6)
	hub.Dispatch(input.KeyDown(common.KeyR, 0))
	assert.Equal(t, transform.ModeScale, tc.Mode())
	assert.Equal(t, transform.SpaceLocal, tc.Space())
	hub.Dispatch(input.KeyDown(common.KeyW, 0))
	assert.Equal(t, transform.ModeTranslate, tc.Mode())
}

func TestHomeResetsCamera(t *testing.T) {
	hub, v := newRig(t)
	cam := v.Camera()

	hub.Dispatch(input.Wheel(-100))
	v.Tick(0)
	require.Less(t, v.Orbit().Radius(), float32(600))

	hub.Dispatch(input.KeyDown(common.KeyHome, 0))
	assert.True(t, v.Tick(0))
	assertVec(t, mgl32.Vec3{0, 0, 600}, cam.Position())
}

func TestTickReportsDirtyOnce(t *testing.T) {
	_, v := newRig(t)
	assert.True(t, v.Tick(0))
	assert.False(t, v.Tick(0))
	v.HandleResize()
	assert.True(t, v.Tick(0))
}

func TestDrawEmitsSceneGeometry(t *testing.T) {
	_, v := newRig(t)
	v.Tick(0)

	var batch mesh.Batch
	v.Draw(&batch)
	// ground plus two nodes, 36 vertices each
	assert.Len(t, batch.Triangles, 3*36)
	// grid, axes, one edge and two label markers
	assert.Len(t, batch.Lines, 2*(202+3+1+2*3))
	assert.Empty(t, batch.Overlay)

	v.Transform().Attach(v.Nodes()[0])
	v.Tick(0)
	v.Draw(&batch)
	assert.NotEmpty(t, batch.Overlay)
	assert.Len(t, batch.Triangles, 3*36)
}

func TestFirstPersonMode(t *testing.T) {
	hub, v := newRig(t, WithFirstPerson(true))
	require.NotNil(t, v.FirstPerson())
	assert.Nil(t, v.Orbit())
	assert.Nil(t, v.Drag())
	assert.Nil(t, v.Transform())
	v.Tick(0)

	start := v.Camera().Position()
	hub.Dispatch(input.KeyDown(common.KeyW, 0))
	assert.True(t, v.Tick(0.1))
	assert.Less(t, v.Camera().Position().Z(), start.Z())

	var batch mesh.Batch
	v.Draw(&batch)
	assert.Empty(t, batch.Overlay)

	v.Dispose()
	assert.Zero(t, hub.Subscribers())
}

func TestDisposeUnsubscribesEverything(t *testing.T) {
	hub, v := newRig(t)
	require.Equal(t, 4, hub.Subscribers())
	v.Dispose()
	assert.Zero(t, hub.Subscribers())
}
