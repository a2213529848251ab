package orbit

import (
	"log"

	"github.com/Carmen-Shannon/topo3d/common"
	"github.com/Carmen-Shannon/topo3d/engine/camera"
	"github.com/Carmen-Shannon/topo3d/engine/controls"
	"github.com/Carmen-Shannon/topo3d/engine/input"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type orbitImpl struct {
	cam     camera.Camera
	source  input.Source
	sub     input.Subscription
	cfg     Config
	pending *Config
	enabled bool

	machine  controls.Machine
	notifier controls.Notifier
	delta    controls.ScreenDelta
	tracker  controls.PoseTracker

	target    mgl32.Vec3
	target0   mgl32.Vec3
	position0 mgl32.Vec3
	zoom0     float32

	spherical   Spherical
	rotateDelta Spherical
	scale       float32
	panOffset   mgl32.Vec3
	zoomChanged bool
	pinchPrev   float32

	panDisabled  bool
	zoomDisabled bool
}

// Controller orbits a camera around a target point. Dragging rotates, the wheel or a
// pinch dollies, and the right button, three fingers or the arrow keys pan.
// All input handlers run synchronously on the caller's goroutine.
type Controller interface {
	// Update advances one frame: applies pending deltas, enforces limits, repositions the
	// camera and emits EventChange if the pose moved more than floating-point noise.
	//
	// Returns:
	//   - bool: true if EventChange was emitted
	Update() bool

	// Reset restores the camera position, target and zoom captured at construction or by the
	// last SaveState. Any active gesture is ended.
	Reset()

	// SaveState captures the current position, target and zoom for Reset.
	SaveState()

	// Dispose unsubscribes from the input source. The controller ignores input afterwards.
	Dispose()

	// Enabled reports whether the controller reacts to input.
	//
	// Returns:
	//   - bool: the enabled state
	Enabled() bool

	// SetEnabled toggles input handling. Disabling does not end an active gesture.
	//
	// Parameters:
	//   - enabled: the new state
	SetEnabled(enabled bool)

	// Configure replaces the configuration. When a gesture is active the change is deferred
	// until it ends.
	//
	// Parameters:
	//   - cfg: the new configuration
	Configure(cfg Config)

	// Config returns the configuration in effect.
	//
	// Returns:
	//   - Config: the active configuration
	Config() Config

	// Target returns the orbit center.
	//
	// Returns:
	//   - mgl32.Vec3: world-space orbit center
	Target() mgl32.Vec3

	// SetTarget moves the orbit center. The camera re-aims on the next Update.
	//
	// Parameters:
	//   - target: the new center
	SetTarget(target mgl32.Vec3)

	// PolarAngle returns the vertical angle from the up axis as of the last Update.
	//
	// Returns:
	//   - float32: phi in radians
	PolarAngle() float32

	// AzimuthalAngle returns the horizontal angle as of the last Update.
	//
	// Returns:
	//   - float32: theta in radians
	AzimuthalAngle() float32

	// Radius returns the camera distance from the target as of the last Update.
	//
	// Returns:
	//   - float32: the orbit radius
	Radius() float32

	// Mode returns the active interaction mode.
	//
	// Returns:
	//   - controls.Mode: the current mode
	Mode() controls.Mode

	// On registers a listener for EventStart, EventChange or EventEnd.
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

var _ Controller = &orbitImpl{}

// NewController creates an orbit controller for cam driven by events from source.
// The camera is aimed at the target immediately and its pose, target and zoom are
// captured for Reset.
//
// Parameters:
//   - cam: the camera to move
//   - source: the input event source
//   - options: builder options
//
// Returns:
//   - Controller: the orbit controller
func NewController(cam camera.Camera, source input.Source, options ...OrbitBuilderOption) Controller {
	o := &orbitImpl{
		cam:     cam,
		source:  source,
		cfg:     DefaultConfig(),
		enabled: true,
		scale:   1,
	}
	for _, opt := range options {
		opt(o)
	}

	o.cam.LookAt(o.target)
	o.SaveState()
	o.syncSpherical()
	o.tracker = controls.NewPoseTracker(cam.Position(), cam.Quaternion())
	o.sub = source.Subscribe(input.KindPointer|input.KindTouch|input.KindWheel|input.KindKeyDown, o.handle)
	return o
}

func (o *orbitImpl) Update() bool {
	// work in a frame where +Y is up
	toYUp := common.QuatFromUnitVectors(o.cam.Up(), mgl32.Vec3{0, 1, 0})
	fromYUp := toYUp.Inverse()

	offset := toYUp.Rotate(o.cam.Position().Sub(o.target))
	s := SphericalFromVector(offset)

	if o.cfg.AutoRotate && o.machine.Idle() {
		o.rotateLeft(o.autoRotationAngle())
	}

	s.Theta += o.rotateDelta.Theta
	s.Phi += o.rotateDelta.Phi

	s.Theta = common.Clamp(s.Theta, o.cfg.MinAzimuthAngle, o.cfg.MaxAzimuthAngle)
	s.Phi = common.Clamp(s.Phi, o.cfg.MinPolarAngle, o.cfg.MaxPolarAngle)
	s = s.MakeSafe()

	s.Radius *= o.scale
	s.Radius = common.Clamp(s.Radius, o.cfg.MinDistance, o.cfg.MaxDistance)

	o.target = o.target.Add(o.panOffset)

	o.cam.SetPosition(o.target.Add(fromYUp.Rotate(s.Vector())))
	o.cam.LookAt(o.target)
	o.spherical = s

	if o.cfg.EnableDamping {
		o.rotateDelta.Theta *= 1 - o.cfg.DampingFactor
		o.rotateDelta.Phi *= 1 - o.cfg.DampingFactor
	} else {
		o.rotateDelta = Spherical{}
	}
	o.scale = 1
	o.panOffset = mgl32.Vec3{}

	moved := o.tracker.Changed(o.cam.Position(), o.cam.Quaternion())
	if o.zoomChanged || moved {
		o.zoomChanged = false
		o.emit(controls.EventChange)
		return true
	}
	return false
}

func (o *orbitImpl) Reset() {
	if prev, ok := o.machine.End(); ok {
		o.notifier.Emit(controls.Event{Type: controls.EventEnd, Mode: prev})
		o.applyPending()
	}

	o.target = o.target0
	o.cam.SetPosition(o.position0)
	o.cam.SetZoom(o.zoom0)
	o.cam.UpdateProjectionMatrix()
	o.cam.LookAt(o.target)

	o.rotateDelta = Spherical{}
	o.scale = 1
	o.panOffset = mgl32.Vec3{}
	o.zoomChanged = false
	o.syncSpherical()
	o.tracker = controls.NewPoseTracker(o.cam.Position(), o.cam.Quaternion())
	o.emit(controls.EventChange)
}

func (o *orbitImpl) SaveState() {
	o.target0 = o.target
	o.position0 = o.cam.Position()
	o.zoom0 = o.cam.Zoom()
}

func (o *orbitImpl) Dispose() {
	if o.sub != nil {
		o.sub.Unsubscribe()
		o.sub = nil
	}
}

func (o *orbitImpl) Enabled() bool {
	return o.enabled
}

func (o *orbitImpl) SetEnabled(enabled bool) {
	o.enabled = enabled
}

func (o *orbitImpl) Configure(cfg Config) {
	if o.machine.Idle() {
		o.cfg = cfg
		o.pending = nil
		return
	}
	o.pending = &cfg
}

func (o *orbitImpl) Config() Config {
	return o.cfg
}

func (o *orbitImpl) Target() mgl32.Vec3 {
	return o.target
}

func (o *orbitImpl) SetTarget(target mgl32.Vec3) {
	o.target = target
}

func (o *orbitImpl) PolarAngle() float32 {
	return o.spherical.Phi
}

func (o *orbitImpl) AzimuthalAngle() float32 {
	return o.spherical.Theta
}

func (o *orbitImpl) Radius() float32 {
	return o.spherical.Radius
}

func (o *orbitImpl) Mode() controls.Mode {
	return o.machine.Mode()
}

func (o *orbitImpl) On(t controls.EventType, l controls.Listener) controls.ListenerID {
	return o.notifier.On(t, l)
}

func (o *orbitImpl) Off(id controls.ListenerID) {
	o.notifier.Off(id)
}

func (o *orbitImpl) handle(e input.Event) {
	if !o.enabled || o.sub == nil {
		return
	}
	switch e.Kind {
	case input.KindPointerDown:
		o.pointerDown(e.Pointer)
	case input.KindPointerMove:
		o.pointerMove(e.Pointer)
	case input.KindPointerUp, input.KindPointerLeave:
		if !o.machine.Mode().Touch() {
			o.endGesture()
		}
	case input.KindWheel:
		o.wheel(e.DeltaY)
	case input.KindKeyDown:
		o.keyDown(e.Key)
	case input.KindTouchStart:
		o.touchStart(e.Touches)
	case input.KindTouchMove:
		o.touchMove(e.Touches)
	case input.KindTouchEnd, input.KindTouchCancel:
		if o.machine.Mode().Touch() {
			o.endGesture()
		}
	}
}

func (o *orbitImpl) pointerDown(p input.PointerSample) {
	var mode controls.Mode
	switch p.Button {
	case o.cfg.Buttons.Orbit:
		if !o.cfg.EnableRotate {
			return
		}
		mode = controls.ModeRotate
	case o.cfg.Buttons.Zoom:
		if !o.zoomAllowed() {
			return
		}
		mode = controls.ModeDolly
	case o.cfg.Buttons.Pan:
		if !o.panAllowed() {
			return
		}
		mode = controls.ModePan
	default:
		return
	}
	if !o.machine.Begin(mode) {
		return
	}
	o.delta.Start(p.X, p.Y)
	o.emit(controls.EventStart)
}

func (o *orbitImpl) pointerMove(p input.PointerSample) {
	switch o.machine.Mode() {
	case controls.ModeRotate:
		o.applyRotate(o.delta.Next(p.X, p.Y))
	case controls.ModeDolly:
		dy := o.delta.Next(p.X, p.Y)[1]
		if dy > 0 {
			o.dollyIn(o.zoomScale())
		} else if dy < 0 {
			o.dollyOut(o.zoomScale())
		}
		o.Update()
	case controls.ModePan:
		d := o.delta.Next(p.X, p.Y)
		o.pan(d[0], d[1])
		o.Update()
	}
}

// wheel treats each notch as an atomic gesture. While rotating, the dolly is applied as
// part of the rotate gesture without extra start/end events.
func (o *orbitImpl) wheel(deltaY float32) {
	if !o.zoomAllowed() || deltaY == 0 {
		return
	}
	mode := o.machine.Mode()
	if mode != controls.ModeIdle && mode != controls.ModeRotate {
		return
	}
	atomic := mode == controls.ModeIdle
	if atomic {
		o.machine.Begin(controls.ModeDolly)
		o.emit(controls.EventStart)
	}
	if deltaY < 0 {
		o.dollyOut(o.zoomScale())
	} else {
		o.dollyIn(o.zoomScale())
	}
	o.Update()
	if atomic {
		o.endGesture()
	}
}

func (o *orbitImpl) keyDown(key int) {
	if !o.cfg.EnableKeys || !o.panAllowed() {
		return
	}
	speed := o.cfg.KeyPanSpeed
	switch key {
	case o.cfg.Keys.Up:
		o.pan(0, speed)
	case o.cfg.Keys.Bottom:
		o.pan(0, -speed)
	case o.cfg.Keys.Left:
		o.pan(speed, 0)
	case o.cfg.Keys.Right:
		o.pan(-speed, 0)
	default:
		return
	}
	o.Update()
}

func (o *orbitImpl) touchStart(touches []input.PointerSample) {
	current := o.machine.Mode()
	if current != controls.ModeIdle {
		if !current.Touch() || current.Fingers() == len(touches) {
			return
		}
		// finger count changed mid-gesture: close it and start over with the new count
		o.endGesture()
	}

	mode := controls.TouchMode(len(touches))
	switch mode {
	case controls.ModeTouchRotate:
		if !o.cfg.EnableRotate {
			return
		}
		o.delta.Start(touches[0].X, touches[0].Y)
	case controls.ModeTouchDolly:
		if !o.zoomAllowed() {
			return
		}
		o.pinchPrev, _ = controls.PinchDistance(touches)
	case controls.ModeTouchPan:
		if !o.panAllowed() {
			return
		}
		o.delta.Start(touches[0].X, touches[0].Y)
	default:
		return
	}
	o.machine.Begin(mode)
	o.emit(controls.EventStart)
}

func (o *orbitImpl) touchMove(touches []input.PointerSample) {
	mode := o.machine.Mode()
	if !mode.Touch() {
		return
	}
	if len(touches) != mode.Fingers() {
		o.endGesture()
		return
	}
	switch mode {
	case controls.ModeTouchRotate:
		o.applyRotate(o.delta.Next(touches[0].X, touches[0].Y))
	case controls.ModeTouchDolly:
		dist, _ := controls.PinchDistance(touches)
		if dist > o.pinchPrev {
			o.dollyOut(o.zoomScale())
		} else if dist < o.pinchPrev {
			o.dollyIn(o.zoomScale())
		}
		o.pinchPrev = dist
		o.Update()
	case controls.ModeTouchPan:
		d := o.delta.Next(touches[0].X, touches[0].Y)
		o.pan(d[0], d[1])
		o.Update()
	}
}

func (o *orbitImpl) endGesture() {
	prev, ok := o.machine.End()
	if !ok {
		return
	}
	o.notifier.Emit(controls.Event{Type: controls.EventEnd, Mode: prev})
	o.applyPending()
}

func (o *orbitImpl) applyPending() {
	if o.pending != nil {
		o.cfg = *o.pending
		o.pending = nil
	}
}

func (o *orbitImpl) emit(t controls.EventType) {
	o.notifier.Emit(controls.Event{Type: t, Mode: o.machine.Mode()})
}

func (o *orbitImpl) applyRotate(d mgl32.Vec2) {
	left, up := controls.RotationDelta(d, o.source.Bounds(), o.cfg.RotateSpeed)
	o.rotateLeft(left)
	o.rotateUp(up)
	o.Update()
}

func (o *orbitImpl) rotateLeft(angle float32) {
	o.rotateDelta.Theta -= angle
}

func (o *orbitImpl) rotateUp(angle float32) {
	o.rotateDelta.Phi -= angle
}

func (o *orbitImpl) autoRotationAngle() float32 {
	return 2 * math32.Pi / 60 / 60 * o.cfg.AutoRotateSpeed
}

func (o *orbitImpl) zoomScale() float32 {
	return math32.Pow(0.95, o.cfg.ZoomSpeed)
}

// pan moves the target by a screen-space delta in pixels.
func (o *orbitImpl) pan(dx, dy float32) {
	bounds := o.source.Bounds()
	if bounds.Empty() {
		return
	}
	q := o.cam.Quaternion()
	right := q.Rotate(mgl32.Vec3{1, 0, 0})
	up := q.Rotate(mgl32.Vec3{0, 1, 0})

	switch o.cam.Projection() {
	case camera.ProjectionPerspective:
		// half the visible height at the target distance, in world units
		distance := o.cam.Position().Sub(o.target).Len() * math32.Tan(o.cam.Fov()/2)
		o.panOffset = o.panOffset.
			Add(right.Mul(-2 * dx * distance / bounds.Height)).
			Add(up.Mul(2 * dy * distance / bounds.Height))
	case camera.ProjectionOrthographic:
		left, r, top, bottom := o.cam.Frustum()
		zoom := o.cam.Zoom()
		o.panOffset = o.panOffset.
			Add(right.Mul(-dx * (r - left) / zoom / bounds.Width)).
			Add(up.Mul(dy * (top - bottom) / zoom / bounds.Height))
	default:
		log.Printf("[Orbit] unsupported camera projection %s, panning disabled", o.cam.Projection())
		o.panDisabled = true
	}
}

func (o *orbitImpl) dollyIn(scale float32) {
	switch o.cam.Projection() {
	case camera.ProjectionPerspective:
		o.scale /= scale
	case camera.ProjectionOrthographic:
		o.setZoom(o.cam.Zoom() * scale)
	default:
		o.disableZoom()
	}
}

func (o *orbitImpl) dollyOut(scale float32) {
	switch o.cam.Projection() {
	case camera.ProjectionPerspective:
		o.scale *= scale
	case camera.ProjectionOrthographic:
		o.setZoom(o.cam.Zoom() / scale)
	default:
		o.disableZoom()
	}
}

// setZoom applies the clamped orthographic zoom and flags a change only if it moved.
func (o *orbitImpl) setZoom(zoom float32) {
	zoom = common.Clamp(zoom, o.cfg.MinZoom, o.cfg.MaxZoom)
	if zoom == o.cam.Zoom() {
		return
	}
	o.cam.SetZoom(zoom)
	o.cam.UpdateProjectionMatrix()
	o.zoomChanged = true
}

func (o *orbitImpl) disableZoom() {
	log.Printf("[Orbit] unsupported camera projection %s, zoom disabled", o.cam.Projection())
	o.zoomDisabled = true
}

func (o *orbitImpl) panAllowed() bool {
	return o.cfg.EnablePan && !o.panDisabled
}

func (o *orbitImpl) zoomAllowed() bool {
	return o.cfg.EnableZoom && !o.zoomDisabled
}

// syncSpherical derives the spherical state from the camera pose without moving the camera.
func (o *orbitImpl) syncSpherical() {
	toYUp := common.QuatFromUnitVectors(o.cam.Up(), mgl32.Vec3{0, 1, 0})
	o.spherical = SphericalFromVector(toYUp.Rotate(o.cam.Position().Sub(o.target)))
}
