package engine

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/topo3d/engine/profiler"
	"github.com/Carmen-Shannon/topo3d/engine/renderer"
	"github.com/Carmen-Shannon/topo3d/engine/scene"
	"github.com/Carmen-Shannon/topo3d/engine/window"
)

// engine implements the Engine interface.
// Everything it calls runs on the window thread; other goroutines reach it through Post.
type engine struct {
	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	posted chan func()

	window   window.Window
	renderer renderer.Renderer

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)
	resizeCallback func(width, height int)

	scenes map[int]scene.Scene

	continuous       bool
	dirty            bool
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	idleSleep        time.Duration

	lastTick   time.Time
	lastRender time.Time
}

// Engine is the main entry point for the engine.
// It runs a single-threaded loop on the window thread: poll native events, drain posted
// work, tick, refresh scene matrices, then render if a redraw was requested.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer resized with the window, if any.
	//
	// Returns:
	//   - renderer.Renderer: the renderer, or nil
	Renderer() renderer.Renderer

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called every loop iteration, after native
	// events have been dispatched and posted work has run.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds since the previous tick
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function that draws a frame. It is only called on
	// iterations following RequestRedraw, or every iteration in continuous mode.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds since the previous frame
	SetRenderCallback(callback func(deltaTime float32))

	// SetResizeCallback registers a function called after the renderer and scene cameras
	// have been adapted to a new framebuffer size.
	//
	// Parameters:
	//   - callback: function receiving the new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// SetContinuous selects whether every iteration renders, regardless of RequestRedraw.
	//
	// Parameters:
	//   - continuous: true to render every iteration
	SetContinuous(continuous bool)

	// RequestRedraw marks the next iteration as needing a frame.
	RequestRedraw()

	// Post queues fn to run on the window thread at the start of the next iteration.
	// Safe to call from any goroutine.
	//
	// Parameters:
	//   - fn: the work to run
	//
	// Returns:
	//   - bool: false if the queue is full or the engine has quit
	Post(fn func()) bool

	// AddScene registers a scene at the given z-index key.
	// Active scenes have their world matrices refreshed in ascending key order each iteration.
	//
	// Parameters:
	//   - key: the z-index determining update order (lower first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Run starts the main loop (blocks until the window closes or Quit is called).
	Run()

	// Quit stops the loop at the start of the next iteration and closes the window.
	// Safe to call multiple times and from any goroutine.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, profiling, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel: make(chan struct{}),
		posted:      make(chan func(), 64),
		scenes:      make(map[int]scene.Scene),
		profiler:    profiler.NewProfiler(),
		idleSleep:   4 * time.Millisecond,
		dirty:       true,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Run() {
	now := time.Now()
	e.lastTick, e.lastRender = now, now
	e.window.SetUpdateCallback(e.step)
	e.window.ProcessMessages()
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) resize(width, height int) {
	if e.renderer != nil {
		if err := e.renderer.Resize(width, height); err != nil {
			log.Printf("[Engine] resize to %dx%d failed: %v", width, height, err)
		}
	}
	if height > 0 {
		for _, s := range e.scenes {
			if c := s.Camera(); c != nil {
				c.SetAspect(float32(width) / float32(height))
			}
		}
	}
	if e.resizeCallback != nil {
		e.resizeCallback(width, height)
	}
	e.dirty = true
}

// step runs one loop iteration. The window calls it after dispatching native events.
func (e *engine) step() {
	select {
	case <-e.quitChannel:
		if err := e.window.Close(); err != nil {
			log.Printf("[Engine] close window: %v", err)
		}
		return
	default:
	}

	e.drain()

	now := time.Now()
	dt := float32(now.Sub(e.lastTick).Seconds())
	e.lastTick = now
	if e.tickCallback != nil {
		e.tickCallback(dt)
	}

	for _, s := range e.activeScenes() {
		s.UpdateMatrices()
	}

	if e.dirty || e.continuous {
		e.render()
	} else {
		if e.profilingEnabled {
			e.profiler.Suppress()
		}
		time.Sleep(e.idleSleep)
	}

	if e.profilingEnabled {
		e.profiler.Tick()
	}
}

func (e *engine) render() {
	now := time.Now()
	dt := float32(now.Sub(e.lastRender).Seconds())
	e.lastRender = now
	e.dirty = false

	if e.renderCallback != nil {
		e.renderCallback(dt)
	}
	if e.profilingEnabled {
		e.profiler.Redraw()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

func (e *engine) drain() {
	for {
		select {
		case fn := <-e.posted:
			fn()
		default:
			return
		}
	}
}

func (e *engine) activeScenes() []scene.Scene {
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]scene.Scene, 0, len(keys))
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			out = append(out, s)
		}
	}
	return out
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetResizeCallback(callback func(width, height int)) {
	e.resizeCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) SetContinuous(continuous bool) {
	e.continuous = continuous
}

func (e *engine) RequestRedraw() {
	e.dirty = true
}

func (e *engine) Post(fn func()) bool {
	select {
	case <-e.quitChannel:
		return false
	default:
	}
	select {
	case e.posted <- fn:
		return true
	default:
		return false
	}
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}
