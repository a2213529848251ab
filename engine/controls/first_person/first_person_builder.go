package first_person

import "github.com/chewxy/math32"

// Config holds the tunables of a first-person controller.
type Config struct {
	MovementSpeed float32
	LookSpeed     float32

	LookVertical bool
	AutoForward  bool
	ActiveLook   bool

	// HeightSpeed adds a forward speed bonus proportional to the camera height within
	// [HeightMin, HeightMax], scaled by HeightCoef.
	HeightSpeed bool
	HeightCoef  float32
	HeightMin   float32
	HeightMax   float32

	// ConstrainVertical maps the full polar range onto [VerticalMin, VerticalMax].
	ConstrainVertical bool
	VerticalMin       float32
	VerticalMax       float32
}

// DefaultConfig returns unit movement speed, a slow horizontal-only look and no height
// or vertical constraints.
//
// Returns:
//   - Config: the default configuration
func DefaultConfig() Config {
	return Config{
		MovementSpeed: 1,
		LookSpeed:     0.005,
		ActiveLook:    true,
		HeightCoef:    1,
		HeightMin:     0,
		HeightMax:     1,
		VerticalMin:   0,
		VerticalMax:   math32.Pi,
	}
}

// FirstPersonBuilderOption is a functional option for configuring a first-person Controller.
type FirstPersonBuilderOption func(*firstPersonImpl)

// WithConfig replaces the whole configuration.
//
// Parameters:
//   - cfg: the configuration
//
// Returns:
//   - FirstPersonBuilderOption: a function that sets the configuration
func WithConfig(cfg Config) FirstPersonBuilderOption {
	return func(f *firstPersonImpl) {
		f.cfg = cfg
	}
}

// WithMovementSpeed sets the distance travelled per second of held movement.
//
// Parameters:
//   - speed: units per second
//
// Returns:
//   - FirstPersonBuilderOption: a function that sets the movement speed
func WithMovementSpeed(speed float32) FirstPersonBuilderOption {
	return func(f *firstPersonImpl) {
		f.cfg.MovementSpeed = speed
	}
}

// WithLookSpeed sets the look rate in degrees per second per pixel of pointer offset.
//
// Parameters:
//   - speed: the look rate
//
// Returns:
//   - FirstPersonBuilderOption: a function that sets the look speed
func WithLookSpeed(speed float32) FirstPersonBuilderOption {
	return func(f *firstPersonImpl) {
		f.cfg.LookSpeed = speed
	}
}

// WithLookVertical allows the pointer to pitch the view.
//
// Parameters:
//   - enabled: whether vertical look is enabled
//
// Returns:
//   - FirstPersonBuilderOption: a function that sets vertical look
func WithLookVertical(enabled bool) FirstPersonBuilderOption {
	return func(f *firstPersonImpl) {
		f.cfg.LookVertical = enabled
	}
}

// WithAutoForward moves the camera forward continuously unless moving backward.
//
// Parameters:
//   - enabled: whether auto-forward is enabled
//
// Returns:
//   - FirstPersonBuilderOption: a function that sets auto-forward
func WithAutoForward(enabled bool) FirstPersonBuilderOption {
	return func(f *firstPersonImpl) {
		f.cfg.AutoForward = enabled
	}
}

// WithActiveLook sets whether the pointer steers the view and mouse buttons move.
//
// Parameters:
//   - enabled: whether active look is enabled
//
// Returns:
//   - FirstPersonBuilderOption: a function that sets active look
func WithActiveLook(enabled bool) FirstPersonBuilderOption {
	return func(f *firstPersonImpl) {
		f.cfg.ActiveLook = enabled
	}
}

// WithHeightSpeed enables the height-dependent forward speed bonus.
//
// Parameters:
//   - coef: the bonus per unit of height
//   - min: the height with no bonus
//   - max: the height where the bonus stops growing
//
// Returns:
//   - FirstPersonBuilderOption: a function that sets the height speed
func WithHeightSpeed(coef, min, max float32) FirstPersonBuilderOption {
	return func(f *firstPersonImpl) {
		f.cfg.HeightSpeed = true
		f.cfg.HeightCoef = coef
		f.cfg.HeightMin = min
		f.cfg.HeightMax = max
	}
}

// WithVerticalLimits constrains the polar angle to [min, max] radians.
//
// Parameters:
//   - min: the smallest polar angle
//   - max: the largest polar angle
//
// Returns:
//   - FirstPersonBuilderOption: a function that sets the vertical limits
func WithVerticalLimits(min, max float32) FirstPersonBuilderOption {
	return func(f *firstPersonImpl) {
		f.cfg.ConstrainVertical = true
		f.cfg.VerticalMin = min
		f.cfg.VerticalMax = max
	}
}

// WithEnabled sets whether the controller reacts to input and updates.
//
// Parameters:
//   - enabled: the initial enabled state
//
// Returns:
//   - FirstPersonBuilderOption: a function that sets the enabled state
func WithEnabled(enabled bool) FirstPersonBuilderOption {
	return func(f *firstPersonImpl) {
		f.enabled = enabled
	}
}
