package engine

import (
	"time"

	"github.com/Carmen-Shannon/topo3d/engine/profiler"
	"github.com/Carmen-Shannon/topo3d/engine/renderer"
	"github.com/Carmen-Shannon/topo3d/engine/scene"
	"github.com/Carmen-Shannon/topo3d/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow sets a custom configured window for the engine to use rather than allowing the engine
// to create and manage one internally.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer the engine resizes along with the window.
//
// Parameters:
//   - r: the renderer drawing into the window's surface
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithScene registers a scene at the given z-index key during engine construction.
// Active scenes have their world matrices refreshed in ascending key order each iteration.
//
// Parameters:
//   - key: the z-index determining update order (lower first)
//   - s: the Scene to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
	}
}

// WithContinuous makes every iteration render instead of only those following RequestRedraw.
//
// Parameters:
//   - continuous: true to render every iteration
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithContinuous(continuous bool) EngineBuilderOption {
	return func(e *engine) {
		e.continuous = continuous
	}
}

// WithIdleSleep sets how long an iteration that draws nothing sleeps before polling again.
//
// Parameters:
//   - d: the idle sleep (default 4ms)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithIdleSleep(d time.Duration) EngineBuilderOption {
	return func(e *engine) {
		if d >= 0 {
			e.idleSleep = d
		}
	}
}

// WithProfilerInterval replaces the profiler with one logging at the given interval.
//
// Parameters:
//   - d: the logging interval
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfilerInterval(d time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = profiler.NewProfiler(profiler.WithInterval(d))
	}
}
