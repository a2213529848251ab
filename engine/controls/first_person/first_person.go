package first_person

import (
	"github.com/Carmen-Shannon/topo3d/common"
	"github.com/Carmen-Shannon/topo3d/engine/camera"
	"github.com/Carmen-Shannon/topo3d/engine/controls"
	"github.com/Carmen-Shannon/topo3d/engine/input"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// lookDistance is how far ahead of the camera the look target is placed.
const lookDistance = 100

// maxLatitude keeps the view short of the poles, in degrees.
const maxLatitude = 85

type movement struct {
	forward, backward bool
	left, right       bool
	up, down          bool
}

type firstPersonImpl struct {
	cam     camera.Camera
	source  input.Source
	sub     input.Subscription
	enabled bool
	cfg     Config

	target    mgl32.Vec3
	mouseX    float32
	mouseY    float32
	viewHalfX float32
	viewHalfY float32
	lat       float32
	lon       float32

	move     movement
	tracker  controls.PoseTracker
	notifier controls.Notifier
}

// Controller flies the camera: held keys or mouse buttons move it, and the pointer's offset
// from the viewport center turns it at a rate proportional to the offset.
type Controller interface {
	// Update advances the camera by delta seconds of held movement and look.
	//
	// Parameters:
	//   - delta: elapsed time in seconds
	//
	// Returns:
	//   - bool: true if the camera moved and EventChange was emitted
	Update(delta float32) bool

	// HandleResize re-reads the viewport bounds used to center the pointer.
	HandleResize()

	// Target returns the point the camera looks at.
	//
	// Returns:
	//   - mgl32.Vec3: the look target
	Target() mgl32.Vec3

	// Config returns the configuration in effect.
	//
	// Returns:
	//   - Config: the configuration
	Config() Config

	// Configure replaces the configuration.
	//
	// Parameters:
	//   - cfg: the new configuration
	Configure(cfg Config)

	// Enabled reports whether the controller reacts to input and updates.
	//
	// Returns:
	//   - bool: the enabled state
	Enabled() bool

	// SetEnabled toggles the controller. Disabling releases every held movement.
	//
	// Parameters:
	//   - enabled: the new state
	SetEnabled(enabled bool)

	// Dispose unsubscribes from the input source.
	Dispose()

	// On registers a listener for EventChange.
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

var _ Controller = &firstPersonImpl{}

// NewController creates a first-person controller driving cam. The initial heading is taken
// from the camera's current view direction.
//
// Parameters:
//   - cam: the camera to fly
//   - source: the input event source
//   - options: builder options
//
// Returns:
//   - Controller: the first-person controller
func NewController(cam camera.Camera, source input.Source, options ...FirstPersonBuilderOption) Controller {
	f := &firstPersonImpl{
		cam:     cam,
		source:  source,
		enabled: true,
		cfg:     DefaultConfig(),
	}
	for _, opt := range options {
		opt(f)
	}

	dir := cam.WorldDirection()
	f.lat = 90 - mgl32.RadToDeg(math32.Acos(common.Clamp(dir[1], -1, 1)))
	f.lon = mgl32.RadToDeg(math32.Atan2(dir[2], dir[0]))
	f.target = cam.Position().Add(dir.Mul(lookDistance))

	f.HandleResize()
	f.tracker = controls.NewPoseTracker(cam.Position(), cam.Quaternion())
	f.sub = source.Subscribe(input.KindPointer|input.KindKey, f.handle)
	return f
}

func (f *firstPersonImpl) Update(delta float32) bool {
	if !f.enabled {
		return false
	}
	cfg := f.cfg

	var autoSpeed float32
	if cfg.HeightSpeed {
		y := common.Clamp(f.cam.Position()[1], cfg.HeightMin, cfg.HeightMax)
		autoSpeed = delta * (y - cfg.HeightMin) * cfg.HeightCoef
	}

	speed := delta * cfg.MovementSpeed
	var step mgl32.Vec3
	if f.move.forward || (cfg.AutoForward && !f.move.backward) {
		step[2] -= speed + autoSpeed
	}
	if f.move.backward {
		step[2] += speed
	}
	if f.move.left {
		step[0] -= speed
	}
	if f.move.right {
		step[0] += speed
	}
	if f.move.up {
		step[1] += speed
	}
	if f.move.down {
		step[1] -= speed
	}
	if step != (mgl32.Vec3{}) {
		f.cam.SetPosition(f.cam.Position().Add(f.cam.Quaternion().Rotate(step)))
	}

	look := delta * cfg.LookSpeed
	if !cfg.ActiveLook {
		look = 0
	}
	ratio := float32(1)
	if cfg.ConstrainVertical && cfg.VerticalMax != cfg.VerticalMin {
		ratio = math32.Pi / (cfg.VerticalMax - cfg.VerticalMin)
	}

	f.lon += f.mouseX * look
	if cfg.LookVertical {
		f.lat -= f.mouseY * look * ratio
	}
	f.lat = common.Clamp(f.lat, -maxLatitude, maxLatitude)

	phi := common.DegToRad(90 - f.lat)
	theta := common.DegToRad(f.lon)
	if cfg.ConstrainVertical {
		phi = cfg.VerticalMin + phi/math32.Pi*(cfg.VerticalMax-cfg.VerticalMin)
	}

	pos := f.cam.Position()
	f.target = pos.Add(mgl32.Vec3{
		math32.Sin(phi) * math32.Cos(theta),
		math32.Cos(phi),
		math32.Sin(phi) * math32.Sin(theta),
	}.Mul(lookDistance))
	f.cam.LookAt(f.target)

	if !f.tracker.Changed(f.cam.Position(), f.cam.Quaternion()) {
		return false
	}
	f.notifier.Emit(controls.Event{Type: controls.EventChange, Mode: controls.ModeIdle})
	return true
}

func (f *firstPersonImpl) HandleResize() {
	b := f.source.Bounds()
	f.viewHalfX = b.Width / 2
	f.viewHalfY = b.Height / 2
}

func (f *firstPersonImpl) Target() mgl32.Vec3 {
	return f.target
}

func (f *firstPersonImpl) Config() Config {
	return f.cfg
}

func (f *firstPersonImpl) Configure(cfg Config) {
	f.cfg = cfg
}

func (f *firstPersonImpl) Enabled() bool {
	return f.enabled
}

func (f *firstPersonImpl) SetEnabled(enabled bool) {
	f.enabled = enabled
	if !enabled {
		f.move = movement{}
		f.mouseX, f.mouseY = 0, 0
	}
}

func (f *firstPersonImpl) Dispose() {
	if f.sub != nil {
		f.sub.Unsubscribe()
		f.sub = nil
	}
}

func (f *firstPersonImpl) On(t controls.EventType, l controls.Listener) controls.ListenerID {
	return f.notifier.On(t, l)
}

func (f *firstPersonImpl) Off(id controls.ListenerID) {
	f.notifier.Off(id)
}

func (f *firstPersonImpl) handle(e input.Event) {
	if !f.enabled {
		return
	}
	switch e.Kind {
	case input.KindPointerDown, input.KindPointerUp:
		if f.cfg.ActiveLook {
			f.button(e.Pointer.Button, e.Kind == input.KindPointerDown)
		}
	case input.KindPointerMove:
		b := f.source.Bounds()
		f.mouseX = e.Pointer.X - b.X - f.viewHalfX
		f.mouseY = e.Pointer.Y - b.Y - f.viewHalfY
	case input.KindPointerLeave:
		f.move.forward, f.move.backward = false, false
		f.mouseX, f.mouseY = 0, 0
	case input.KindKeyDown, input.KindKeyUp:
		f.key(e.Key, e.Kind == input.KindKeyDown)
	}
}

func (f *firstPersonImpl) button(b input.Button, held bool) {
	switch b {
	case input.ButtonLeft:
		f.move.forward = held
	case input.ButtonRight:
		f.move.backward = held
	}
}

func (f *firstPersonImpl) key(k int, held bool) {
	switch k {
	case common.KeyUp, common.KeyW:
		f.move.forward = held
	case common.KeyLeft, common.KeyA:
		f.move.left = held
	case common.KeyDown, common.KeyS:
		f.move.backward = held
	case common.KeyRight, common.KeyD:
		f.move.right = held
	case common.KeyR:
		f.move.up = held
	case common.KeyF:
		f.move.down = held
	}
}
