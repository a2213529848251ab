// Package app hosts the topology viewer: it builds the scene from a topology snapshot and
// coordinates the orbit, drag, transform and first-person controllers over one input source.
package app

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/Carmen-Shannon/topo3d/common"
	"github.com/Carmen-Shannon/topo3d/config"
	"github.com/Carmen-Shannon/topo3d/engine/camera"
	"github.com/Carmen-Shannon/topo3d/engine/controls"
	"github.com/Carmen-Shannon/topo3d/engine/controls/drag"
	"github.com/Carmen-Shannon/topo3d/engine/controls/first_person"
	"github.com/Carmen-Shannon/topo3d/engine/controls/orbit"
	"github.com/Carmen-Shannon/topo3d/engine/controls/transform"
	"github.com/Carmen-Shannon/topo3d/engine/game_object"
	"github.com/Carmen-Shannon/topo3d/engine/input"
	"github.com/Carmen-Shannon/topo3d/engine/renderer/mesh"
	"github.com/Carmen-Shannon/topo3d/engine/scene"
	"github.com/Carmen-Shannon/topo3d/topology"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// nodeSize is the edge length of a node box.
	nodeSize = 5
	// axesLength is the length of the world axis helper.
	axesLength = 20
	// markerSize is the half width of a label cross.
	markerSize = 2
	// sizeStep is the gizmo size change per key press.
	sizeStep = 0.1
	// minGizmoSize keeps the gizmo from collapsing.
	minGizmoSize = 0.1
)

var (
	nodeColor     = common.HexColor(0x285064)
	hoverColor    = common.HexColor(0x4682a0)
	selectedColor = common.HexColor(0xc07830)
	labelColor    = common.HexColor(0x333333)
	edgeColor     = common.HexColor(0x999999)
	gridCenter    = common.HexColor(0x444444).WithAlpha(0.25)
	gridLines     = common.HexColor(0x888888).WithAlpha(0.25)
	groundColor   = common.HexColor(0xffffff).WithAlpha(0.04)
)

type viewer struct {
	cfg         config.Config
	firstPerson bool
	random      func() float64
	autoHide    *time.Duration

	cam    camera.Camera
	source input.Source
	scene  scene.Scene

	orbit     orbit.Controller
	drag      drag.Controller
	transform transform.Controller
	fp        first_person.Controller
	keys      input.Subscription

	layout topology.Layout
	nodes  []game_object.GameObject
	labels game_object.GameObject

	hide  countdown
	dirty bool
}

// Viewer is the topology view: a scene of node boxes, labels and links navigated either by
// orbiting the camera, with nodes draggable and editable through a transform gizmo, or by
// flying it first-person.
type Viewer interface {
	// Scene returns the scene holding the nodes and labels.
	//
	// Returns:
	//   - scene.Scene: the viewer scene
	Scene() scene.Scene

	// Camera returns the viewing camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Orbit returns the orbit controller, or nil in first-person mode.
	//
	// Returns:
	//   - orbit.Controller: the orbit controller
	Orbit() orbit.Controller

	// Drag returns the node drag controller, or nil in first-person mode.
	//
	// Returns:
	//   - drag.Controller: the drag controller
	Drag() drag.Controller

	// Transform returns the gizmo controller, or nil in first-person mode.
	//
	// Returns:
	//   - transform.Controller: the transform controller
	Transform() transform.Controller

	// FirstPerson returns the first-person controller, or nil in orbit mode.
	//
	// Returns:
	//   - first_person.Controller: the first-person controller
	FirstPerson() first_person.Controller

	// Nodes returns the node objects in record order.
	//
	// Returns:
	//   - []game_object.GameObject: the node boxes
	Nodes() []game_object.GameObject

	// Layout returns the placement of the loaded snapshot.
	//
	// Returns:
	//   - topology.Layout: the current layout
	Layout() topology.Layout

	// Load replaces the displayed topology. On error the previous one stays in place.
	//
	// Parameters:
	//   - t: the snapshot
	//
	// Returns:
	//   - error: a validation error
	Load(t *topology.Topology) error

	// Tick advances the active controllers by dt seconds.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	//
	// Returns:
	//   - bool: true if anything visible changed since the previous Tick
	Tick(dt float32) bool

	// Draw fills batch with the current frame. The batch is reset first.
	//
	// Parameters:
	//   - batch: the frame geometry
	Draw(batch *mesh.Batch)

	// HandleResize re-reads the viewport bounds and marks the view dirty.
	HandleResize()

	// Status describes the loaded topology and the node under the pointer or selected.
	//
	// Returns:
	//   - string: a one-line status
	Status() string

	// Dispose unsubscribes every controller from the input source.
	Dispose()
}

var _ Viewer = &viewer{}

// NewViewer creates a viewer over cam driven by events from source. The controllers
// subscribe in priority order: the gizmo sees each event before node dragging, and node
// dragging before the orbit.
//
// Parameters:
//   - cam: the viewing camera
//   - source: the input event source
//   - options: builder options
//
// Returns:
//   - Viewer: the viewer, initially empty
func NewViewer(cam camera.Camera, source input.Source, options ...ViewerBuilderOption) Viewer {
	v := &viewer{
		cfg:    config.Default(),
		cam:    cam,
		source: source,
		dirty:  true,
	}
	for _, opt := range options {
		opt(v)
	}

	v.hide.delay = v.cfg.AutoHideDelay()
	if v.autoHide != nil {
		v.hide.delay = *v.autoHide
	}
	if v.random == nil && v.cfg.Topology.Seed != 0 {
		seed := v.cfg.Topology.Seed
		v.random = rand.New(rand.NewPCG(seed, seed)).Float64
	}

	v.scene = scene.NewScene("topology", cam)

	if v.firstPerson {
		v.fp = first_person.NewController(cam, source, first_person.WithConfig(v.cfg.FirstPersonConfig()))
		v.fp.On(controls.EventChange, v.markDirty)
		return v
	}

	v.transform = transform.NewController(cam, source, v.cfg.TransformOptions()...)
	v.drag = drag.NewController(cam, source, nil)
	v.orbit = orbit.NewController(cam, source, orbit.WithConfig(v.cfg.OrbitConfig()))
	v.keys = source.Subscribe(input.KindKeyDown, v.keyDown)

	v.orbit.On(controls.EventStart, func(controls.Event) {
		v.hide.Cancel()
	})
	v.orbit.On(controls.EventChange, v.markDirty)
	v.orbit.On(controls.EventEnd, func(controls.Event) {
		if v.transform.Visible() {
			v.hide.Arm()
		}
	})

	v.transform.On(controls.EventMouseDown, func(controls.Event) {
		v.hide.Cancel()
		v.orbit.SetEnabled(false)
		v.drag.SetEnabled(false)
	})
	v.transform.On(controls.EventMouseUp, func(controls.Event) {
		v.orbit.SetEnabled(true)
		v.drag.SetEnabled(true)
	})
	v.transform.On(controls.EventChange, v.markDirty)
	v.transform.On(controls.EventObjectChange, v.markDirty)

	v.drag.On(controls.EventDragStart, func(e controls.Event) {
		v.hide.Cancel()
		v.orbit.SetEnabled(false)
		v.transform.Attach(e.Object)
		v.dirty = true
	})
	v.drag.On(controls.EventDrag, v.markDirty)
	v.drag.On(controls.EventDragEnd, func(controls.Event) {
		v.orbit.SetEnabled(true)
	})
	v.drag.On(controls.EventHoverOn, v.markDirty)
	v.drag.On(controls.EventHoverOff, v.markDirty)
	return v
}

func (v *viewer) markDirty(controls.Event) {
	v.dirty = true
}

func (v *viewer) keyDown(e input.Event) {
	switch e.Key {
	case common.KeyW:
		v.transform.SetMode(transform.ModeTranslate)
	case common.KeyE:
		v.transform.SetMode(transform.ModeRotate)
	case common.KeyR:
		v.transform.SetMode(transform.ModeScale)
	case common.KeyQ:
		if v.transform.Space() == transform.SpaceLocal {
			v.transform.SetSpace(transform.SpaceWorld)
		} else {
			v.transform.SetSpace(transform.SpaceLocal)
		}
	case common.KeyEqual:
		v.transform.SetSize(v.transform.Settings().Size + sizeStep)
	case common.KeyMinus:
		v.transform.SetSize(max(v.transform.Settings().Size-sizeStep, minGizmoSize))
	case common.KeyHome:
		v.orbit.Reset()
	default:
		return
	}
	v.dirty = true
}

func (v *viewer) Scene() scene.Scene {
	return v.scene
}

func (v *viewer) Camera() camera.Camera {
	return v.cam
}

func (v *viewer) Orbit() orbit.Controller {
	return v.orbit
}

func (v *viewer) Drag() drag.Controller {
	return v.drag
}

func (v *viewer) Transform() transform.Controller {
	return v.transform
}

func (v *viewer) FirstPerson() first_person.Controller {
	return v.fp
}

func (v *viewer) Nodes() []game_object.GameObject {
	return v.nodes
}

func (v *viewer) Layout() topology.Layout {
	return v.layout
}

func (v *viewer) Load(t *topology.Topology) error {
	if t == nil {
		return fmt.Errorf("failed to load topology: %w", topology.ErrEmptyTopology)
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("failed to load topology: %w", err)
	}

	var opts []topology.LayoutBuilderOption
	if v.random != nil {
		opts = append(opts, topology.WithRandom(v.random))
	}
	layout := topology.Arrange(t, opts...)

	if v.transform != nil {
		v.transform.Detach()
		v.hide.Cancel()
	}
	for _, n := range v.nodes {
		v.scene.Remove(n.ID())
	}
	if v.labels != nil {
		v.scene.Remove(v.labels.ID())
	}

	v.layout = layout
	v.nodes = make([]game_object.GameObject, len(layout.Nodes))
	v.labels = game_object.NewGameObject(
		game_object.WithName("labels"),
		game_object.WithShape(game_object.ShapeNone),
	)
	pickable := make([]controls.PickableTarget, len(layout.Nodes))
	for i, n := range layout.Nodes {
		node := game_object.NewGameObject(
			game_object.WithName(string(n.Record.DevID)),
			game_object.WithLabel(n.Label),
			game_object.WithShape(game_object.ShapeBox),
			game_object.WithColor(nodeColor),
			game_object.WithPosition(n.Position),
			game_object.WithSize(mgl32.Vec3{nodeSize, nodeSize, nodeSize}),
		)
		v.nodes[i] = node
		pickable[i] = node
		v.scene.Add(node)

		marker := game_object.NewGameObject(
			game_object.WithName(n.Label),
			game_object.WithLabel(n.Label),
			game_object.WithShape(game_object.ShapeMarker),
			game_object.WithColor(labelColor),
			game_object.WithPosition(n.LabelPosition),
		)
		v.labels.Add(marker)
		marker.LookAt(v.cam.Position())
	}
	v.scene.Add(v.labels)
	v.scene.UpdateMatrices()

	if v.drag != nil {
		v.drag.SetObjects(pickable)
	}
	if layout.Unresolved > 0 {
		log.Printf("[Viewer] %d links point at unknown devices", layout.Unresolved)
	}
	log.Printf("[Viewer] loaded %d nodes, %d links", len(layout.Nodes), len(layout.Edges))
	v.dirty = true
	return nil
}

func (v *viewer) Tick(dt float32) bool {
	if v.fp != nil {
		v.fp.Update(dt)
	} else {
		v.orbit.Update()
		if v.hide.Tick(dt) {
			v.transform.Detach()
		}
		v.transform.Update()
	}
	dirty := v.dirty
	v.dirty = false
	return dirty
}

func (v *viewer) HandleResize() {
	if v.fp != nil {
		v.fp.HandleResize()
	}
	v.dirty = true
}

func (v *viewer) Status() string {
	title := v.cfg.Window.Title
	status := fmt.Sprintf("%s | %d nodes | %d links", title, len(v.layout.Nodes), len(v.layout.Edges))
	if label := v.focusLabel(); label != "" {
		status += " | " + label
	}
	return status
}

// focusLabel returns the label of the hovered node, falling back to the gizmo's object.
func (v *viewer) focusLabel() string {
	if v.drag != nil {
		if l := labelOf(v.drag.Hovered()); l != "" {
			return l
		}
	}
	if v.transform != nil {
		return labelOf(v.transform.Object())
	}
	return ""
}

func labelOf(t controls.Target) string {
	if g, ok := t.(game_object.GameObject); ok && g != nil {
		return g.Label()
	}
	return ""
}

func (v *viewer) Dispose() {
	if v.fp != nil {
		v.fp.Dispose()
		return
	}
	v.keys.Unsubscribe()
	v.orbit.Dispose()
	v.drag.Dispose()
	v.transform.Dispose()
}
