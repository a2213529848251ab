package scene

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/topo3d/engine/camera"
	"github.com/Carmen-Shannon/topo3d/engine/game_object"
	"github.com/Carmen-Shannon/topo3d/engine/raycast"
)

// parallelThreshold is the number of objects in a hierarchy level below which world
// matrices are updated inline instead of on the worker pool.
const parallelThreshold = 256

// Scene holds a forest of GameObjects and the Camera viewing them.
// Scenes can be hot-swapped via the Active flag to switch between different views.
type Scene interface {
	// Name returns the scene's name.
	//
	// Returns:
	//   - string: the scene name
	Name() string

	// Active returns whether the scene is drawn.
	//
	// Returns:
	//   - bool: true if active
	Active() bool

	// SetActive sets whether the scene is drawn.
	//
	// Parameters:
	//   - active: true to activate
	SetActive(active bool)

	// Camera returns the scene camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Add registers a root object. Objects already registered are ignored.
	//
	// Parameters:
	//   - obj: the object to add
	Add(obj game_object.GameObject)

	// Get returns a registered object by ID, searching the whole hierarchy.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - game_object.GameObject: the object, or nil if not found
	Get(id uint64) game_object.GameObject

	// Remove unregisters a root object by ID.
	//
	// Parameters:
	//   - id: the object ID
	Remove(id uint64)

	// Clear removes every root object.
	Clear()

	// Roots returns the registered root objects in insertion order.
	//
	// Returns:
	//   - []game_object.GameObject: the roots
	Roots() []game_object.GameObject

	// Objects returns every object in the hierarchy, parents before children.
	//
	// Returns:
	//   - []game_object.GameObject: all objects
	Objects() []game_object.GameObject

	// Count returns the total number of objects in the hierarchy.
	//
	// Returns:
	//   - int: the object count
	Count() int

	// Pickables returns every enabled object as a ray-cast candidate.
	//
	// Returns:
	//   - []raycast.Pickable: the candidates
	Pickables() []raycast.Pickable

	// UpdateMatrices recomputes every world matrix. Levels of the hierarchy are processed
	// in order; objects within a large level are updated in parallel on the worker pool.
	UpdateMatrices()
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool
	cam    camera.Camera

	roots []game_object.GameObject

	// computePool manages a bounded set of reusable goroutines for parallel world matrix updates.
	computePool    worker.DynamicWorkerPool
	computeWorkers int
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene viewed through cam.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}

	s := &scene{
		mu:             &sync.RWMutex{},
		name:           name,
		active:         true,
		cam:            cam,
		computeWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the compute pool after options so WithComputeWorkers can override the default.
	s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) Add(obj game_object.GameObject) {
	if obj == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.roots {
		if r.ID() == obj.ID() {
			return
		}
	}
	s.roots = append(s.roots, obj)
}

func (s *scene) Get(id uint64) game_object.GameObject {
	for _, obj := range s.Objects() {
		if obj.ID() == id {
			return obj
		}
	}
	return nil
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.roots {
		if r.ID() == id {
			s.roots = append(s.roots[:i], s.roots[i+1:]...)
			return
		}
	}
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roots = nil
}

func (s *scene) Roots() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]game_object.GameObject, len(s.roots))
	copy(out, s.roots)
	return out
}

func (s *scene) Objects() []game_object.GameObject {
	var out []game_object.GameObject
	for _, level := range s.levels() {
		out = append(out, level...)
	}
	return out
}

func (s *scene) Count() int {
	return len(s.Objects())
}

func (s *scene) Pickables() []raycast.Pickable {
	var out []raycast.Pickable
	for _, obj := range s.Objects() {
		if obj.Enabled() && obj.Shape() != game_object.ShapeNone {
			out = append(out, obj)
		}
	}
	return out
}

func (s *scene) UpdateMatrices() {
	for _, level := range s.levels() {
		s.updateLevel(level)
	}
}

// levels groups the hierarchy breadth-first so every parent precedes its children.
func (s *scene) levels() [][]game_object.GameObject {
	current := s.Roots()
	var out [][]game_object.GameObject
	for len(current) > 0 {
		out = append(out, current)
		var next []game_object.GameObject
		for _, obj := range current {
			next = append(next, obj.Children()...)
		}
		current = next
	}
	return out
}

// updateLevel refreshes the world matrices of one hierarchy level. Parents were updated
// by the previous level, so objects within a level are independent of each other.
func (s *scene) updateLevel(level []game_object.GameObject) {
	if len(level) < parallelThreshold || s.computeWorkers <= 1 {
		for _, obj := range level {
			obj.UpdateMatrixWorld()
		}
		return
	}

	// A WaitGroup provides the per-level barrier since pool.Wait() blocks until
	// workers idle-exit which is unsuitable for frame-rate workloads.
	chunk := (len(level) + s.computeWorkers - 1) / s.computeWorkers
	var wg sync.WaitGroup
	taskID := 0
	for start := 0; start < len(level); start += chunk {
		end := min(start+chunk, len(level))
		part := level[start:end]
		wg.Add(1)
		id := taskID
		taskID++
		s.computePool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				for _, obj := range part {
					obj.UpdateMatrixWorld()
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
}
