package transform

import (
	"github.com/Carmen-Shannon/topo3d/common"
	"github.com/Carmen-Shannon/topo3d/engine/camera"
	"github.com/Carmen-Shannon/topo3d/engine/controls"
	"github.com/Carmen-Shannon/topo3d/engine/input"
	"github.com/Carmen-Shannon/topo3d/engine/raycast"
	"github.com/go-gl/mathgl/mgl32"
)

// Settings are the user-tunable parameters of a transform controller.
type Settings struct {
	Mode            Mode
	Space           Space
	Size            float32
	TranslationSnap float32
	RotationSnap    float32
}

// normalize applies the invariants between fields: scale always works in local space.
func (s Settings) normalize() Settings {
	if !s.Mode.Valid() {
		s.Mode = ModeTranslate
	}
	if s.Space != SpaceLocal {
		s.Space = SpaceWorld
	}
	if s.Mode == ModeScale {
		s.Space = SpaceLocal
	}
	return s
}

type transformImpl struct {
	cam     camera.Camera
	source  input.Source
	sub     input.Subscription
	enabled bool

	settings Settings
	pending  *Settings
	gizmos   map[Mode]Gizmo

	object controls.Target
	axis   string

	machine  controls.Machine
	notifier controls.Notifier
	frames   Frames
	grab     mgl32.Vec3
	eye      mgl32.Vec3
}

// Controller manipulates an attached object through a translate, rotate or scale gizmo.
// Hovering a handle highlights it; pressing on a handle starts an axis-constrained gesture
// that ends on release or when the pointer leaves the viewport.
type Controller interface {
	// Attach shows the gizmo on obj. Attaching nil is Detach.
	//
	// Parameters:
	//   - obj: the object to manipulate
	Attach(obj controls.Target)

	// Detach hides the gizmo and releases the object. An active gesture ends with EventMouseUp.
	Detach()

	// Object returns the attached object, or nil.
	//
	// Returns:
	//   - controls.Target: the attached object
	Object() controls.Target

	// Visible reports whether an object is attached.
	//
	// Returns:
	//   - bool: true while attached
	Visible() bool

	// Update re-centers the gizmo on the attached object, rescales it to a constant apparent
	// size and refreshes the highlight. Call it whenever the camera or object moved.
	Update()

	// Mode returns the transform mode in effect.
	//
	// Returns:
	//   - Mode: the transform mode
	Mode() Mode

	// SetMode switches the gizmo. Scale mode forces local space. Deferred during a gesture.
	//
	// Parameters:
	//   - mode: the new mode; unknown modes are ignored
	SetMode(mode Mode)

	// Space returns the gizmo space in effect.
	//
	// Returns:
	//   - Space: the gizmo space
	Space() Space

	// SetSpace aligns the gizmo to world or local axes. Deferred during a gesture.
	//
	// Parameters:
	//   - space: the new space
	SetSpace(space Space)

	// SetSize sets the gizmo size multiplier. Deferred during a gesture.
	//
	// Parameters:
	//   - size: the size multiplier
	SetSize(size float32)

	// SetTranslationSnap sets the translation increment, 0 to disable. Deferred during a gesture.
	//
	// Parameters:
	//   - step: the translation increment
	SetTranslationSnap(step float32)

	// SetRotationSnap sets the rotation increment in radians, 0 to disable. Deferred during a gesture.
	//
	// Parameters:
	//   - step: the rotation increment
	SetRotationSnap(step float32)

	// Settings returns the settings in effect.
	//
	// Returns:
	//   - Settings: the active settings
	Settings() Settings

	// Axis returns the hovered or active handle name, or "".
	//
	// Returns:
	//   - string: the handle name
	Axis() string

	// Gizmo returns the gizmo for the current mode.
	//
	// Returns:
	//   - Gizmo: the active gizmo
	Gizmo() Gizmo

	// Dragging reports whether a handle gesture is active.
	//
	// Returns:
	//   - bool: true while dragging a handle
	Dragging() bool

	// Enabled reports whether the controller reacts to input.
	//
	// Returns:
	//   - bool: the enabled state
	Enabled() bool

	// SetEnabled toggles input handling. Releasing the pointer still ends an active gesture.
	//
	// Parameters:
	//   - enabled: the new state
	SetEnabled(enabled bool)

	// Dispose unsubscribes from the input source.
	Dispose()

	// On registers a listener for EventChange, EventMouseDown, EventMouseUp or EventObjectChange.
	//
	// Parameters:
	//   - t: the event type
	//   - l: the listener
	//
	// Returns:
	//   - controls.ListenerID: handle for Off
	On(t controls.EventType, l controls.Listener) controls.ListenerID

	// Off removes a listener.
	//
	// Parameters:
	//   - id: the handle returned by On
	Off(id controls.ListenerID)
}

var _ Controller = &transformImpl{}

// NewController creates a transform controller viewed through cam.
//
// Parameters:
//   - cam: the viewing camera
//   - source: the input event source
//   - options: builder options
//
// Returns:
//   - Controller: the transform controller
func NewController(cam camera.Camera, source input.Source, options ...TransformBuilderOption) Controller {
	t := &transformImpl{
		cam:     cam,
		source:  source,
		enabled: true,
		settings: Settings{
			Mode:  ModeTranslate,
			Space: SpaceWorld,
			Size:  1,
		},
		gizmos: map[Mode]Gizmo{
			ModeTranslate: NewGizmo(ModeTranslate),
			ModeRotate:    NewGizmo(ModeRotate),
			ModeScale:     NewGizmo(ModeScale),
		},
	}
	for _, opt := range options {
		opt(t)
	}
	t.settings = t.settings.normalize()
	t.sub = source.Subscribe(input.KindPointer|input.KindTouch, t.handle)
	return t
}

func (t *transformImpl) Attach(obj controls.Target) {
	if obj == nil {
		t.Detach()
		return
	}
	if t.object != obj {
		t.endGesture()
	}
	t.object = obj
	t.Update()
	t.emit(controls.EventChange)
}

func (t *transformImpl) Detach() {
	if t.object == nil {
		return
	}
	t.endGesture()
	t.object = nil
	t.axis = ""
	t.gizmo().Highlight("")
	t.emit(controls.EventChange)
}

func (t *transformImpl) Object() controls.Target {
	return t.object
}

func (t *transformImpl) Visible() bool {
	return t.object != nil
}

func (t *transformImpl) Update() {
	if t.object == nil {
		return
	}
	t.object.UpdateMatrixWorld()
	worldPos, worldRot, _ := common.DecomposeMatrix(t.object.WorldMatrix())
	camPos := t.cam.Position()

	if t.cam.Projection() == camera.ProjectionOrthographic {
		t.eye = common.SafeNormalize(camPos)
	} else {
		t.eye = common.SafeNormalize(camPos.Sub(worldPos))
	}

	rot := mgl32.QuatIdent()
	if t.settings.Space == SpaceLocal {
		rot = worldRot
	}
	g := t.gizmo()
	g.UpdatePose(Pose{
		Position: worldPos,
		Rotation: rot,
		Scale:    worldPos.Sub(camPos).Len() / 6 * t.settings.Size,
	}, t.eye)
	g.Highlight(t.axis)
}

func (t *transformImpl) Mode() Mode {
	return t.settings.Mode
}

func (t *transformImpl) SetMode(mode Mode) {
	if !mode.Valid() {
		return
	}
	t.change(func(s *Settings) { s.Mode = mode }, true)
}

func (t *transformImpl) Space() Space {
	return t.settings.Space
}

func (t *transformImpl) SetSpace(space Space) {
	t.change(func(s *Settings) { s.Space = space }, true)
}

func (t *transformImpl) SetSize(size float32) {
	t.change(func(s *Settings) { s.Size = size }, true)
}

func (t *transformImpl) SetTranslationSnap(step float32) {
	t.change(func(s *Settings) { s.TranslationSnap = step }, false)
}

func (t *transformImpl) SetRotationSnap(step float32) {
	t.change(func(s *Settings) { s.RotationSnap = step }, false)
}

func (t *transformImpl) Settings() Settings {
	return t.settings
}

func (t *transformImpl) Axis() string {
	return t.axis
}

func (t *transformImpl) Gizmo() Gizmo {
	return t.gizmo()
}

func (t *transformImpl) Dragging() bool {
	return t.machine.Mode() == controls.ModeTransform
}

func (t *transformImpl) Enabled() bool {
	return t.enabled
}

func (t *transformImpl) SetEnabled(enabled bool) {
	t.enabled = enabled
}

func (t *transformImpl) Dispose() {
	if t.sub != nil {
		t.sub.Unsubscribe()
		t.sub = nil
	}
}

func (t *transformImpl) On(et controls.EventType, l controls.Listener) controls.ListenerID {
	return t.notifier.On(et, l)
}

func (t *transformImpl) Off(id controls.ListenerID) {
	t.notifier.Off(id)
}

// change edits the settings now when idle, or queues the edit until the gesture ends.
func (t *transformImpl) change(edit func(s *Settings), visual bool) {
	if !t.machine.Idle() {
		next := t.settings
		if t.pending != nil {
			next = *t.pending
		}
		edit(&next)
		t.pending = &next
		return
	}
	edit(&t.settings)
	t.settings = t.settings.normalize()
	if visual {
		t.Update()
		t.emit(controls.EventChange)
	}
}

func (t *transformImpl) applyPending() {
	if t.pending == nil {
		return
	}
	t.settings = t.pending.normalize()
	t.pending = nil
	t.Update()
	t.emit(controls.EventChange)
}

func (t *transformImpl) gizmo() Gizmo {
	return t.gizmos[t.settings.Mode]
}

func (t *transformImpl) handle(e input.Event) {
	switch e.Kind {
	case input.KindPointerDown:
		if t.enabled && e.Pointer.Button == input.ButtonLeft {
			t.down(e.Pointer)
		}
	case input.KindTouchStart:
		if t.enabled && len(e.Touches) == 1 {
			t.down(e.Pointer)
		}
	case input.KindPointerMove, input.KindTouchMove:
		if t.enabled {
			t.hover(e.Pointer)
			t.move(e.Pointer)
		}
	case input.KindPointerUp:
		if e.Pointer.Button == input.ButtonLeft {
			t.endGesture()
			if t.enabled {
				t.hover(e.Pointer)
			}
		}
	case input.KindPointerLeave, input.KindTouchEnd, input.KindTouchCancel:
		t.endGesture()
		t.clearAxis()
	}
}

func (t *transformImpl) pick(p input.PointerSample) (raycast.Ray, string, bool) {
	ray, ok := controls.PointerRay(t.cam, t.source.Bounds(), p.X, p.Y)
	if !ok {
		return raycast.Ray{}, "", false
	}
	hit, ok := raycast.First(ray, t.gizmo().Pickers())
	if !ok {
		return ray, "", true
	}
	return ray, hit.Name, true
}

func (t *transformImpl) hover(p input.PointerSample) {
	if t.object == nil || !t.machine.Idle() {
		return
	}
	_, axis, ok := t.pick(p)
	if !ok || axis == t.axis {
		return
	}
	t.axis = axis
	t.Update()
	t.emit(controls.EventChange)
}

func (t *transformImpl) down(p input.PointerSample) {
	if t.object == nil || !t.machine.Idle() {
		return
	}
	ray, axis, ok := t.pick(p)
	if !ok || axis == "" {
		return
	}
	t.axis = axis
	t.Update()

	g := t.gizmo()
	worldPos, _, _ := common.DecomposeMatrix(t.object.WorldMatrix())
	g.SetActivePlane(axis, common.SafeNormalize(t.cam.Position().Sub(worldPos)))
	point, ok := g.ActivePlane().IntersectRay(ray)
	if !ok {
		return
	}

	t.frames = CaptureFrames(t.object)
	t.grab = point
	t.machine.BeginAxis(axis)
	t.emit(controls.EventMouseDown)
}

func (t *transformImpl) move(p input.PointerSample) {
	if t.object == nil || t.machine.Mode() != controls.ModeTransform {
		return
	}
	ray, ok := controls.PointerRay(t.cam, t.source.Bounds(), p.X, p.Y)
	if !ok {
		return
	}
	point, ok := t.gizmo().ActivePlane().IntersectRay(ray)
	if !ok {
		return
	}

	axis := t.machine.Axis()
	s := t.settings
	switch s.Mode {
	case ModeTranslate:
		t.object.SetPosition(Translate(axis, s.Space, point, t.grab, t.frames, s.TranslationSnap))
	case ModeScale:
		t.object.SetScale(Scale(axis, point, t.grab, t.frames))
	case ModeRotate:
		t.object.SetQuaternion(Rotate(axis, s.Space, point, t.grab, t.eye, t.frames, s.RotationSnap))
	}

	t.Update()
	t.emit(controls.EventChange)
	t.emit(controls.EventObjectChange)
}

func (t *transformImpl) endGesture() {
	if _, ok := t.machine.End(); !ok {
		return
	}
	t.notifier.Emit(controls.Event{
		Type:   controls.EventMouseUp,
		Mode:   controls.ModeIdle,
		Object: t.object,
		Detail: string(t.settings.Mode),
	})
	t.applyPending()
}

func (t *transformImpl) clearAxis() {
	if t.axis == "" {
		return
	}
	t.axis = ""
	t.Update()
	t.emit(controls.EventChange)
}

func (t *transformImpl) emit(et controls.EventType) {
	t.notifier.Emit(controls.Event{
		Type:   et,
		Mode:   t.machine.Mode(),
		Object: t.object,
		Detail: string(t.settings.Mode),
	})
}
