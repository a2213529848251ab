package orbit

import (
	"github.com/Carmen-Shannon/topo3d/common"
	"github.com/Carmen-Shannon/topo3d/engine/input"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Keys maps the four pan directions to key codes.
type Keys struct {
	Left   int
	Up     int
	Right  int
	Bottom int
}

// Buttons maps the three mouse gestures to pointer buttons.
type Buttons struct {
	Orbit input.Button
	Zoom  input.Button
	Pan   input.Button
}

// Config holds the user-tunable limits of an orbit controller. It is read-only while
// a gesture is active; Configure changes take effect when the controller is next Idle.
type Config struct {
	MinDistance float32
	MaxDistance float32

	MinZoom float32
	MaxZoom float32

	MinPolarAngle float32
	MaxPolarAngle float32

	MinAzimuthAngle float32
	MaxAzimuthAngle float32

	EnableDamping bool
	DampingFactor float32

	EnableZoom bool
	ZoomSpeed  float32

	EnableRotate bool
	RotateSpeed  float32

	EnablePan   bool
	KeyPanSpeed float32

	AutoRotate      bool
	AutoRotateSpeed float32

	EnableKeys bool
	Keys       Keys
	Buttons    Buttons
}

// DefaultConfig returns the stock limits: unbounded distance and zoom, full polar range,
// unbounded azimuth, everything enabled except damping and auto-rotate.
func DefaultConfig() Config {
	return Config{
		MinDistance:     0,
		MaxDistance:     math32.Inf(1),
		MinZoom:         0,
		MaxZoom:         math32.Inf(1),
		MinPolarAngle:   0,
		MaxPolarAngle:   math32.Pi,
		MinAzimuthAngle: math32.Inf(-1),
		MaxAzimuthAngle: math32.Inf(1),
		EnableDamping:   false,
		DampingFactor:   0.25,
		EnableZoom:      true,
		ZoomSpeed:       1,
		EnableRotate:    true,
		RotateSpeed:     1,
		EnablePan:       true,
		KeyPanSpeed:     7,
		AutoRotate:      false,
		AutoRotateSpeed: 2,
		EnableKeys:      true,
		Keys:            Keys{Left: common.KeyLeft, Up: common.KeyUp, Right: common.KeyRight, Bottom: common.KeyDown},
		Buttons:         Buttons{Orbit: input.ButtonLeft, Zoom: input.ButtonMiddle, Pan: input.ButtonRight},
	}
}

// OrbitBuilderOption is a functional option for configuring an orbit Controller.
type OrbitBuilderOption func(*orbitImpl)

// WithConfig replaces the whole configuration.
//
// Parameters:
//   - cfg: the configuration
//
// Returns:
//   - OrbitBuilderOption: a function that sets the configuration
func WithConfig(cfg Config) OrbitBuilderOption {
	return func(o *orbitImpl) {
		o.cfg = cfg
	}
}

// WithTarget sets the point the camera orbits around. Defaults to the origin.
//
// Parameters:
//   - target: world-space orbit center
//
// Returns:
//   - OrbitBuilderOption: a function that sets the target
func WithTarget(target mgl32.Vec3) OrbitBuilderOption {
	return func(o *orbitImpl) {
		o.target = target
	}
}

// WithDistanceLimits bounds the orbit radius for perspective cameras.
//
// Parameters:
//   - min: the smallest radius
//   - max: the largest radius
//
// Returns:
//   - OrbitBuilderOption: a function that sets the distance limits
func WithDistanceLimits(min, max float32) OrbitBuilderOption {
	return func(o *orbitImpl) {
		o.cfg.MinDistance = min
		o.cfg.MaxDistance = max
	}
}

// WithZoomLimits bounds the zoom factor for orthographic cameras.
//
// Parameters:
//   - min: the smallest zoom
//   - max: the largest zoom
//
// Returns:
//   - OrbitBuilderOption: a function that sets the zoom limits
func WithZoomLimits(min, max float32) OrbitBuilderOption {
	return func(o *orbitImpl) {
		o.cfg.MinZoom = min
		o.cfg.MaxZoom = max
	}
}

// WithPolarLimits bounds the vertical orbit angle, in radians from the up axis.
//
// Parameters:
//   - min: the smallest polar angle, at least 0
//   - max: the largest polar angle, at most π
//
// Returns:
//   - OrbitBuilderOption: a function that sets the polar limits
func WithPolarLimits(min, max float32) OrbitBuilderOption {
	return func(o *orbitImpl) {
		o.cfg.MinPolarAngle = min
		o.cfg.MaxPolarAngle = max
	}
}

// WithAzimuthLimits bounds the horizontal orbit angle. Bounded values must lie within [-π, π].
//
// Parameters:
//   - min: the smallest azimuth angle
//   - max: the largest azimuth angle
//
// Returns:
//   - OrbitBuilderOption: a function that sets the azimuth limits
func WithAzimuthLimits(min, max float32) OrbitBuilderOption {
	return func(o *orbitImpl) {
		o.cfg.MinAzimuthAngle = min
		o.cfg.MaxAzimuthAngle = max
	}
}

// WithDamping enables inertia. Each Update decays pending rotation by factor instead of consuming it.
//
// Parameters:
//   - enabled: whether damping is on
//   - factor: the per-frame decay factor in (0, 1]
//
// Returns:
//   - OrbitBuilderOption: a function that sets damping
func WithDamping(enabled bool, factor float32) OrbitBuilderOption {
	return func(o *orbitImpl) {
		o.cfg.EnableDamping = enabled
		o.cfg.DampingFactor = factor
	}
}

// WithZoom toggles dolly and sets its speed.
//
// Parameters:
//   - enabled: whether dolly is allowed
//   - speed: the exponent applied to the 0.95 per-notch factor
//
// Returns:
//   - OrbitBuilderOption: a function that sets zoom
func WithZoom(enabled bool, speed float32) OrbitBuilderOption {
	return func(o *orbitImpl) {
		o.cfg.EnableZoom = enabled
		o.cfg.ZoomSpeed = speed
	}
}

// WithRotate toggles rotation and sets its speed.
//
// Parameters:
//   - enabled: whether rotation is allowed
//   - speed: full turns per viewport width dragged
//
// Returns:
//   - OrbitBuilderOption: a function that sets rotation
func WithRotate(enabled bool, speed float32) OrbitBuilderOption {
	return func(o *orbitImpl) {
		o.cfg.EnableRotate = enabled
		o.cfg.RotateSpeed = speed
	}
}

// WithPan toggles panning and sets the pixels moved per arrow key press.
//
// Parameters:
//   - enabled: whether panning is allowed
//   - keySpeed: pixels panned per key press
//
// Returns:
//   - OrbitBuilderOption: a function that sets panning
func WithPan(enabled bool, keySpeed float32) OrbitBuilderOption {
	return func(o *orbitImpl) {
		o.cfg.EnablePan = enabled
		o.cfg.KeyPanSpeed = keySpeed
	}
}

// WithAutoRotate spins the camera around the target while no gesture is active.
// A speed of 2 is one turn every 30 seconds at 60 updates per second.
//
// Parameters:
//   - enabled: whether auto-rotate is on
//   - speed: the rotation speed
//
// Returns:
//   - OrbitBuilderOption: a function that sets auto-rotate
func WithAutoRotate(enabled bool, speed float32) OrbitBuilderOption {
	return func(o *orbitImpl) {
		o.cfg.AutoRotate = enabled
		o.cfg.AutoRotateSpeed = speed
	}
}

// WithKeys toggles arrow key panning and sets the key map.
//
// Parameters:
//   - enabled: whether keys are handled
//   - keys: the key map
//
// Returns:
//   - OrbitBuilderOption: a function that sets keys
func WithKeys(enabled bool, keys Keys) OrbitBuilderOption {
	return func(o *orbitImpl) {
		o.cfg.EnableKeys = enabled
		o.cfg.Keys = keys
	}
}

// WithButtons remaps the mouse buttons for orbit, zoom and pan.
//
// Parameters:
//   - buttons: the button map
//
// Returns:
//   - OrbitBuilderOption: a function that sets the button map
func WithButtons(buttons Buttons) OrbitBuilderOption {
	return func(o *orbitImpl) {
		o.cfg.Buttons = buttons
	}
}

// WithEnabled sets whether the controller reacts to input at all.
//
// Parameters:
//   - enabled: the initial enabled state
//
// Returns:
//   - OrbitBuilderOption: a function that sets the enabled state
func WithEnabled(enabled bool) OrbitBuilderOption {
	return func(o *orbitImpl) {
		o.enabled = enabled
	}
}
