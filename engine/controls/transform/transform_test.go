package transform

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

var (
	halfHeight = 10 * math32.Tan(common.DegToRad(50)/2)
	halfWidth  = halfHeight * width / height
)

// pixel returns the client coordinates whose ray meets z=0 at world (x, y).
func pixel(x, y float32) (float32, float32) {
	return (x/halfWidth + 1) / 2 * width, (1 - y/halfHeight) / 2 * height
}

func identityFrames() Frames {
	return Frames{
		OldScale:       mgl32.Vec3{1, 1, 1},
		OldRotation:    mgl32.QuatIdent(),
		WorldRotation:  mgl32.QuatIdent(),
		ParentRotation: mgl32.QuatIdent(),
		ParentScale:    mgl32.Vec3{1, 1, 1},
	}
}

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-3, "component %d of %v", i, got)
	}
}

func TestTranslateConstrainsToAxis(t *testing.T) {
	got := Translate("X", SpaceWorld, mgl32.Vec3{2, 5, -3}, mgl32.Vec3{}, identityFrames(), 0)
	assertVec(t, mgl32.Vec3{2, 0, 0}, got)

	got = Translate("XY", SpaceWorld, mgl32.Vec3{2, 5, -3}, mgl32.Vec3{}, identityFrames(), 0)
	assertVec(t, mgl32.Vec3{2, 5, 0}, got)

	got = Translate("XYZ", SpaceWorld, mgl32.Vec3{2, 5, -3}, mgl32.Vec3{1, 1, 1}, identityFrames(), 0)
	assertVec(t, mgl32.Vec3{1, 4, -4}, got)
}

func TestTranslateSnaps(t *testing.T) {
	got := Translate("X", SpaceWorld, mgl32.Vec3{0.62, 0, 0}, mgl32.Vec3{}, identityFrames(), 0.5)
	assertVec(t, mgl32.Vec3{0.5, 0, 0}, got)

	got = Translate("X", SpaceWorld, mgl32.Vec3{0.8, 0, 0}, mgl32.Vec3{}, identityFrames(), 0.5)
	assertVec(t, mgl32.Vec3{1, 0, 0}, got)
}

func TestTranslateSnapsOffsetNotPosition(t *testing.T) {
	f := identityFrames()
	f.OldPosition = mgl32.Vec3{0.3, 0, 0}
	got := Translate("X", SpaceWorld, mgl32.Vec3{0.62, 0, 0}, mgl32.Vec3{}, f, 0.5)
	assertVec(t, mgl32.Vec3{0.8, 0, 0}, got)

	// local offsets snap along the object's axes
	f.OldRotation = mgl32.QuatRotate(math32.Pi/2, mgl32.Vec3{0, 0, 1})
	f.WorldRotation = f.OldRotation
	got = Translate("X", SpaceLocal, mgl32.Vec3{0, 0.62, 0}, mgl32.Vec3{}, f, 0.5)
	assertVec(t, mgl32.Vec3{0.3, 0.5, 0}, got)
}

func TestTranslateLocalFollowsObjectAxes(t *testing.T) {
	f := identityFrames()
	f.OldRotation = mgl32.QuatRotate(math32.Pi/2, mgl32.Vec3{0, 0, 1})
	f.WorldRotation = f.OldRotation

	// the object's X axis points along world Y
	got := Translate("X", SpaceLocal, mgl32.Vec3{1, 3, 0}, mgl32.Vec3{}, f, 0)
	assertVec(t, mgl32.Vec3{0, 3, 0}, got)

	got = Translate("X", SpaceWorld, mgl32.Vec3{1, 3, 0}, mgl32.Vec3{}, f, 0)
	assertVec(t, mgl32.Vec3{1, 0, 0}, got)
}

func TestTranslateChildOfScaledParent(t *testing.T) {
	f := identityFrames()
	f.ParentScale = mgl32.Vec3{0.5, 0.5, 0.5}
	got := Translate("X", SpaceWorld, mgl32.Vec3{4, 0, 0}, mgl32.Vec3{}, f, 0)
	assertVec(t, mgl32.Vec3{2, 0, 0}, got)
}

func TestScale(t *testing.T) {
	f := identityFrames()
	f.OldScale = mgl32.Vec3{2, 2, 2}

	assertVec(t, mgl32.Vec3{2.5, 2, 2}, Scale("X", mgl32.Vec3{1.5, 0, 0}, mgl32.Vec3{1, 0, 0}, f))
	assertVec(t, mgl32.Vec3{2, 1.5, 2}, Scale("Y", mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{0, 1, 0}, f))
	assertVec(t, mgl32.Vec3{3, 3, 3}, Scale("XYZ", mgl32.Vec3{0, 1, 0}, mgl32.Vec3{}, f))

	f.OldScale = mgl32.Vec3{}
	assertVec(t, mgl32.Vec3{}, Scale("XYZ", mgl32.Vec3{0, 1, 0}, mgl32.Vec3{}, f))
}

func TestRotateAboutAxis(t *testing.T) {
	q := Rotate("Z", SpaceWorld, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}, identityFrames(), 0)
	assertVec(t, mgl32.Vec3{0, 1, 0}, q.Rotate(mgl32.Vec3{1, 0, 0}))

	q = Rotate("X", SpaceLocal, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}, identityFrames(), 0)
	assertVec(t, mgl32.Vec3{0, 0, 1}, q.Rotate(mgl32.Vec3{0, 1, 0}))
}

func TestRotateSnaps(t *testing.T) {
	// one radian snaps to a quarter turn of pi/4
	point := mgl32.Vec3{math32.Cos(1), math32.Sin(1), 0}
	q := Rotate("Z", SpaceWorld, point, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}, identityFrames(), math32.Pi/4)
	want := mgl32.Vec3{math32.Cos(math32.Pi / 4), math32.Sin(math32.Pi / 4), 0}
	assertVec(t, want, q.Rotate(mgl32.Vec3{1, 0, 0}))
}

func TestRotateEyeAndTrackball(t *testing.T) {
	eye := mgl32.Vec3{0, 0, 1}
	q := Rotate("E", SpaceWorld, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, eye, identityFrames(), 0)
	assertVec(t, mgl32.Vec3{0, 1, 0}, q.Rotate(mgl32.Vec3{1, 0, 0}))

	q = Rotate("XYZE", SpaceWorld, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, eye, identityFrames(), 0)
	assertVec(t, mgl32.Vec3{0, 0, 1}, q.Rotate(mgl32.Vec3{1, 0, 0}))

	f := identityFrames()
	q = Rotate("XYZE", SpaceWorld, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 0, 0}, eye, f, 0)
	assert.Equal(t, f.OldRotation, q)
}

func TestTranslatePlaneFacesEye(t *testing.T) {
	g := NewGizmo(ModeTranslate)
	cases := []struct {
		axis string
		eye  mgl32.Vec3
		want string
	}{
		{"X", mgl32.Vec3{0, 0.2, 1}, PlaneXY},
		{"X", mgl32.Vec3{0, 1, 0.2}, PlaneXZ},
		{"Y", mgl32.Vec3{1, 0, 0.1}, PlaneYZ},
		{"Y", mgl32.Vec3{0.1, 0, 1}, PlaneXY},
		{"Z", mgl32.Vec3{0.1, 1, 0}, PlaneXZ},
		{"Z", mgl32.Vec3{1, 0.1, 0}, PlaneYZ},
		{"XYZ", mgl32.Vec3{0, 0, 1}, PlaneXYZE},
		{"YZ", mgl32.Vec3{0, 0, 1}, PlaneYZ},
	}
	for _, tc := range cases {
		g.SetActivePlane(tc.axis, tc.eye.Normalize())
		assert.Equal(t, tc.want, g.ActivePlaneName(), "%s seen from %v", tc.axis, tc.eye)
	}
}

func TestPlaneFollowsLocalRotation(t *testing.T) {
	g := NewGizmo(ModeTranslate)
	rot := mgl32.QuatRotate(math32.Pi/2, mgl32.Vec3{0, 0, 1})
	g.UpdatePose(Pose{Rotation: rot, Scale: 1}, mgl32.Vec3{0, 0, 1})

	// local X lies along world Y, so looking down world X is looking down local -Y
	g.SetActivePlane("X", mgl32.Vec3{1, 0, 0.2}.Normalize())
	assert.Equal(t, PlaneXZ, g.ActivePlaneName())
	assertVec(t, mgl32.Vec3{-1, 0, 0}, g.ActivePlane().Normal)
}

func TestRotatePlanePerpendicularToAxis(t *testing.T) {
	g := NewGizmo(ModeRotate)
	for axis, want := range map[string]string{"X": PlaneYZ, "Y": PlaneXZ, "Z": PlaneXY, "E": PlaneXYZE, "XYZE": PlaneXYZE} {
		g.SetActivePlane(axis, mgl32.Vec3{0, 0, 1})
		assert.Equal(t, want, g.ActivePlaneName(), axis)
	}
}

func TestPickerNames(t *testing.T) {
	names := func(g Gizmo) []string {
		var out []string
		for _, p := range g.Pickers() {
			out = append(out, p.Name())
		}
		return out
	}
	assert.Equal(t, []string{"X", "Y", "Z", "XYZ", "XY", "YZ", "XZ"}, names(NewGizmo(ModeTranslate)))
	assert.Equal(t, []string{"X", "Y", "Z", "E"}, names(NewGizmo(ModeRotate)))
	assert.Equal(t, []string{"X", "Y", "Z", "XYZ"}, names(NewGizmo(ModeScale)))
	assert.Equal(t, ModeTranslate, NewGizmo("bogus").Mode())
}

func TestHighlightColorsHandle(t *testing.T) {
	g := NewGizmo(ModeTranslate)
	g.Highlight("X")
	segs := g.Handles()
	require.NotEmpty(t, segs)
	assert.Equal(t, colorHighlight, segs[0].Color)
	assert.Equal(t, colorY, segs[1].Color)
}

type rig struct {
	hub    input.Hub
	ctrl   Controller
	obj    game_object.GameObject
	events *[]controls.Event
}

func newRig(options ...TransformBuilderOption) *rig {
	cam := camera.NewCamera(
		camera.WithPosition(mgl32.Vec3{0, 0, 10}),
		camera.WithAspect(float32(width)/height),
	)
	hub := input.NewHub(input.WithBounds(common.Rect{Width: width, Height: height}))
	r := &rig{
		hub:    hub,
		ctrl:   NewController(cam, hub, options...),
		obj:    game_object.NewGameObject(game_object.WithName("node")),
		events: &[]controls.Event{},
	}
	for _, et := range []controls.EventType{
		controls.EventChange, controls.EventMouseDown, controls.EventMouseUp, controls.EventObjectChange,
	} {
		r.ctrl.On(et, func(e controls.Event) { *r.events = append(*r.events, e) })
	}
	return r
}

func (r *rig) types() []controls.EventType {
	out := make([]controls.EventType, len(*r.events))
	for i, e := range *r.events {
		out[i] = e.Type
	}
	return out
}

func (r *rig) move(x, y float32) {
	px, py := pixel(x, y)
	r.hub.Dispatch(input.PointerMove(px, py))
}

func (r *rig) down(x, y float32) {
	px, py := pixel(x, y)
	r.hub.Dispatch(input.PointerDown(px, py, input.ButtonLeft))
}

func (r *rig) up(x, y float32) {
	px, py := pixel(x, y)
	r.hub.Dispatch(input.PointerUp(px, py, input.ButtonLeft))
}

func TestGizmoKeepsApparentSize(t *testing.T) {
	r := newRig()
	r.ctrl.Attach(r.obj)
	assert.InDelta(t, 10.0/6, r.ctrl.Gizmo().Pose().Scale, 1e-4)

	r.ctrl.SetSize(2)
	assert.InDelta(t, 20.0/6, r.ctrl.Gizmo().Pose().Scale, 1e-4)
}

func TestTranslateDrag(t *testing.T) {
	r := newRig()
	r.ctrl.Attach(r.obj)
	*r.events = nil

	// the X handle sits at 0.6 gizmo units, one world unit at this distance
	r.move(1, 0)
	assert.Equal(t, "X", r.ctrl.Axis())
	assert.Equal(t, "X", r.ctrl.Gizmo().Highlighted())

	r.down(1, 0)
	require.True(t, r.ctrl.Dragging())
	assert.Equal(t, PlaneXY, r.ctrl.Gizmo().ActivePlaneName())

	r.move(3, 2)
	assertVec(t, mgl32.Vec3{2, 0, 0}, r.obj.Position())

	r.up(3, 2)
	assert.False(t, r.ctrl.Dragging())
	assert.Equal(t, []controls.EventType{
		controls.EventChange,
		controls.EventMouseDown,
		controls.EventChange, controls.EventObjectChange,
		controls.EventMouseUp,
	}, r.types()[:5])

	last := (*r.events)[4]
	assert.Equal(t, "translate", last.Detail)
	assert.Equal(t, controls.Target(r.obj), last.Object)
}

func TestMissStartsNothing(t *testing.T) {
	r := newRig()
	r.ctrl.Attach(r.obj)
	*r.events = nil

	r.hub.Dispatch(input.PointerDown(10, 10, input.ButtonLeft))
	assert.False(t, r.ctrl.Dragging())
	assert.Empty(t, *r.events)

	r.ctrl.Detach()
	r.down(1, 0)
	assert.False(t, r.ctrl.Dragging())
}

func TestRightButtonAndDisabledIgnored(t *testing.T) {
	r := newRig()
	r.ctrl.Attach(r.obj)

	px, py := pixel(1, 0)
	r.hub.Dispatch(input.PointerDown(px, py, input.ButtonRight))
	assert.False(t, r.ctrl.Dragging())

	r.ctrl.SetEnabled(false)
	r.down(1, 0)
	assert.False(t, r.ctrl.Dragging())
}

func TestScaleDrag(t *testing.T) {
	r := newRig(WithMode(ModeScale), WithSpace(SpaceWorld))
	assert.Equal(t, SpaceLocal, r.ctrl.Space())
	r.ctrl.Attach(r.obj)

	r.down(1, 0)
	require.True(t, r.ctrl.Dragging())
	r.move(2, 0)
	assertVec(t, mgl32.Vec3{2, 1, 1}, r.obj.Scale())
	r.up(2, 0)
}

func TestRotateDrag(t *testing.T) {
	r := newRig(WithMode(ModeRotate))
	r.ctrl.Attach(r.obj)

	radius := float32(10.0 / 6)
	r.down(radius, 0)
	require.True(t, r.ctrl.Dragging())
	assert.Equal(t, "Z", r.ctrl.Axis())

	r.move(0, radius)
	assertVec(t, mgl32.Vec3{0, 1, 0}, r.obj.Quaternion().Rotate(mgl32.Vec3{1, 0, 0}))
	r.up(0, radius)
}

func TestSettingsDeferredDuringGesture(t *testing.T) {
	r := newRig()
	r.ctrl.Attach(r.obj)
	r.down(1, 0)
	require.True(t, r.ctrl.Dragging())

	r.ctrl.SetMode(ModeScale)
	r.ctrl.SetTranslationSnap(1)
	assert.Equal(t, ModeTranslate, r.ctrl.Mode())
	assert.Zero(t, r.ctrl.Settings().TranslationSnap)

	r.up(1, 0)
	assert.Equal(t, ModeScale, r.ctrl.Mode())
	assert.Equal(t, SpaceLocal, r.ctrl.Space())
	assert.Equal(t, float32(1), r.ctrl.Settings().TranslationSnap)

	r.ctrl.SetMode("bogus")
	assert.Equal(t, ModeScale, r.ctrl.Mode())
}

func TestDetachDuringGestureEndsIt(t *testing.T) {
	r := newRig()
	r.ctrl.Attach(r.obj)
	r.down(1, 0)
	require.True(t, r.ctrl.Dragging())
	*r.events = nil

	r.ctrl.Detach()
	assert.False(t, r.ctrl.Dragging())
	assert.False(t, r.ctrl.Visible())
	assert.Equal(t, []controls.EventType{controls.EventMouseUp, controls.EventChange}, r.types())
}

func TestLeaveEndsGestureAndClearsAxis(t *testing.T) {
	r := newRig()
	r.ctrl.Attach(r.obj)
	r.down(1, 0)
	require.True(t, r.ctrl.Dragging())

	r.hub.Dispatch(input.PointerLeave(0, 0))
	assert.False(t, r.ctrl.Dragging())
	assert.Empty(t, r.ctrl.Axis())
}

func TestTouchDrag(t *testing.T) {
	r := newRig()
	r.ctrl.Attach(r.obj)

	px, py := pixel(1, 0)
	r.hub.Dispatch(input.Touch(input.KindTouchStart, [2]float32{px, py}))
	require.True(t, r.ctrl.Dragging())

	px, py = pixel(2, 0)
	r.hub.Dispatch(input.Touch(input.KindTouchMove, [2]float32{px, py}))
	assertVec(t, mgl32.Vec3{1, 0, 0}, r.obj.Position())

	r.hub.Dispatch(input.Touch(input.KindTouchEnd))
	assert.False(t, r.ctrl.Dragging())

	r.ctrl.Dispose()
	assert.Zero(t, r.hub.Subscribers())
}
