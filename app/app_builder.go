package app

import (
	"time"

	"github.com/Carmen-Shannon/topo3d/config"
)

// ViewerBuilderOption is a functional option for configuring a Viewer.
type ViewerBuilderOption func(*viewer)

// WithConfig replaces the default configuration the viewer builds its controllers from.
//
// Parameters:
//   - cfg: the viewer configuration
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithConfig(cfg config.Config) ViewerBuilderOption {
	return func(v *viewer) {
		v.cfg = cfg
	}
}

// WithFirstPerson flies the camera with the first-person controller instead of orbiting it.
// Node dragging and the transform gizmo are unavailable in this mode.
//
// Parameters:
//   - enabled: true for first-person navigation
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithFirstPerson(enabled bool) ViewerBuilderOption {
	return func(v *viewer) {
		v.firstPerson = enabled
	}
}

// WithRandom replaces the source of random node heights used by Load.
//
// Parameters:
//   - random: returns values in [0, 1)
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithRandom(random func() float64) ViewerBuilderOption {
	return func(v *viewer) {
		v.random = random
	}
}

// WithAutoHide overrides the configured delay after which the gizmo hides once an orbit
// gesture ends. Zero keeps the gizmo until another node is picked.
//
// Parameters:
//   - d: the delay
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithAutoHide(d time.Duration) ViewerBuilderOption {
	return func(v *viewer) {
		v.autoHide = &d
	}
}
