package drag

import (
	"github.com/Carmen-Shannon/topo3d/engine/camera"
	"github.com/Carmen-Shannon/topo3d/engine/controls"
	"github.com/Carmen-Shannon/topo3d/engine/input"
	"github.com/Carmen-Shannon/topo3d/engine/raycast"
	"github.com/go-gl/mathgl/mgl32"
)

type dragImpl struct {
	cam           camera.Camera
	source        input.Source
	sub           input.Subscription
	button        input.Button
	enabled       bool
	startInactive bool

	objects []controls.PickableTarget

	machine  controls.Machine
	notifier controls.Notifier
	grab     controls.GrabOffset
	plane    raycast.Plane

	selected controls.PickableTarget
	hovered  controls.PickableTarget
}

// Controller moves pickable objects across a camera-facing plane. Hovering an object emits
// EventHoverOn and EventHoverOff; pressing on one starts a drag that keeps the grabbed point
// under the pointer until release.
type Controller interface {
	// SetObjects replaces the set of draggable objects. An active drag whose object is not in
	// the new set ends with EventDragEnd.
	//
	// Parameters:
	//   - objects: the draggable objects
	SetObjects(objects []controls.PickableTarget)

	// Objects returns the draggable objects.
	//
	// Returns:
	//   - []controls.PickableTarget: the draggable objects
	Objects() []controls.PickableTarget

	// Activate subscribes to the input source. Calling it while active is a no-op.
	Activate()

	// Deactivate unsubscribes from the input source and abandons any active drag.
	Deactivate()

	// Dispose is Deactivate; the controller may be reactivated afterwards.
	Dispose()

	// Enabled reports whether the controller reacts to input.
	//
	// Returns:
	//   - bool: the enabled state
	Enabled() bool

	// SetEnabled toggles input handling. Releasing the pointer still ends an active drag
	// after the controller is disabled.
	//
	// Parameters:
	//   - enabled: the new state
	SetEnabled(enabled bool)

	// Mode returns ModeDrag while dragging and ModeIdle otherwise.
	//
	// Returns:
	//   - controls.Mode: the current mode
	Mode() controls.Mode

	// Selected returns the object being dragged, or nil.
	//
	// Returns:
	//   - controls.PickableTarget: the dragged object
	Selected() controls.PickableTarget

	// Hovered returns the object under the pointer while idle, or nil.
	//
	// Returns:
	//   - controls.PickableTarget: the hovered object
	Hovered() controls.PickableTarget

	// On registers a listener for hover and drag events.
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

var _ Controller = &dragImpl{}

// NewController creates a drag controller over objects seen through cam.
//
// Parameters:
//   - cam: the viewing camera
//   - source: the input event source
//   - objects: the draggable objects
//   - options: builder options
//
// Returns:
//   - Controller: the drag controller
func NewController(cam camera.Camera, source input.Source, objects []controls.PickableTarget, options ...DragBuilderOption) Controller {
	d := &dragImpl{
		cam:     cam,
		source:  source,
		button:  input.ButtonLeft,
		enabled: true,
		objects: objects,
	}
	for _, opt := range options {
		opt(d)
	}
	if !d.startInactive {
		d.Activate()
	}
	return d
}

func (d *dragImpl) SetObjects(objects []controls.PickableTarget) {
	d.objects = objects
	if d.selected != nil && !d.contains(d.selected) {
		d.up()
	}
	if d.hovered != nil && !d.contains(d.hovered) {
		d.hovered = nil
	}
}

func (d *dragImpl) Objects() []controls.PickableTarget {
	return d.objects
}

func (d *dragImpl) Activate() {
	if d.sub != nil {
		return
	}
	d.sub = d.source.Subscribe(input.KindPointer|input.KindTouch, d.handle)
}

func (d *dragImpl) Deactivate() {
	if d.sub == nil {
		return
	}
	d.sub.Unsubscribe()
	d.sub = nil
	d.machine.End()
	d.selected = nil
	d.hovered = nil
}

func (d *dragImpl) Dispose() {
	d.Deactivate()
}

func (d *dragImpl) Enabled() bool {
	return d.enabled
}

func (d *dragImpl) SetEnabled(enabled bool) {
	d.enabled = enabled
}

func (d *dragImpl) Mode() controls.Mode {
	return d.machine.Mode()
}

func (d *dragImpl) Selected() controls.PickableTarget {
	return d.selected
}

func (d *dragImpl) Hovered() controls.PickableTarget {
	return d.hovered
}

func (d *dragImpl) On(t controls.EventType, l controls.Listener) controls.ListenerID {
	return d.notifier.On(t, l)
}

func (d *dragImpl) Off(id controls.ListenerID) {
	d.notifier.Off(id)
}

func (d *dragImpl) handle(e input.Event) {
	switch e.Kind {
	case input.KindPointerDown:
		if e.Pointer.Button == d.button {
			d.down(e.Pointer)
		}
	case input.KindTouchStart:
		if len(e.Touches) == 1 {
			d.down(e.Pointer)
		}
	case input.KindPointerMove, input.KindTouchMove:
		d.move(e.Pointer)
	case input.KindPointerUp, input.KindPointerLeave, input.KindTouchEnd, input.KindTouchCancel:
		d.up()
	}
}

func (d *dragImpl) down(p input.PointerSample) {
	if !d.enabled || !d.machine.Idle() {
		return
	}
	ray, ok := controls.PointerRay(d.cam, d.source.Bounds(), p.X, p.Y)
	if !ok {
		return
	}
	hit, ok := d.pick(ray)
	if !ok {
		return
	}

	d.plane = raycast.NewPlane(d.cam.WorldDirection(), worldPosition(hit))
	point, ok := d.plane.IntersectRay(ray)
	if !ok {
		return
	}
	d.machine.Begin(controls.ModeDrag)
	d.selected = hit
	d.grab.Capture(toParent(hit, point), hit.Position())
	d.emit(controls.EventDragStart, hit)
}

func (d *dragImpl) move(p input.PointerSample) {
	if !d.enabled {
		return
	}
	ray, ok := controls.PointerRay(d.cam, d.source.Bounds(), p.X, p.Y)
	if !ok {
		return
	}

	if d.machine.Mode() == controls.ModeDrag {
		point, ok := d.plane.IntersectRay(ray)
		if !ok {
			return
		}
		d.selected.SetPosition(d.grab.Apply(toParent(d.selected, point)))
		d.selected.UpdateMatrixWorld()
		d.emit(controls.EventDrag, d.selected)
		return
	}

	hit, ok := d.pick(ray)
	if ok {
		d.plane = raycast.NewPlane(d.cam.WorldDirection(), worldPosition(hit))
		if d.hovered != hit {
			if d.hovered != nil {
				d.emit(controls.EventHoverOff, d.hovered)
			}
			d.hovered = hit
			d.emit(controls.EventHoverOn, hit)
		}
		return
	}
	if d.hovered != nil {
		prev := d.hovered
		d.hovered = nil
		d.emit(controls.EventHoverOff, prev)
	}
}

func (d *dragImpl) up() {
	if _, ok := d.machine.End(); !ok {
		return
	}
	selected := d.selected
	d.selected = nil
	d.emit(controls.EventDragEnd, selected)
}

func (d *dragImpl) emit(t controls.EventType, obj controls.Target) {
	d.notifier.Emit(controls.Event{Type: t, Mode: d.machine.Mode(), Object: obj})
}

func (d *dragImpl) pick(ray raycast.Ray) (controls.PickableTarget, bool) {
	candidates := make([]raycast.Pickable, len(d.objects))
	for i, obj := range d.objects {
		candidates[i] = obj
	}
	hit, ok := raycast.First(ray, candidates)
	if !ok {
		return nil, false
	}
	target, ok := hit.Object.(controls.PickableTarget)
	return target, ok
}

func (d *dragImpl) contains(obj controls.PickableTarget) bool {
	for _, o := range d.objects {
		if o == obj {
			return true
		}
	}
	return false
}

func worldPosition(t controls.Target) mgl32.Vec3 {
	return t.WorldMatrix().Col(3).Vec3()
}

// toParent maps a world-space point into the target's parent frame.
func toParent(t controls.Target, world mgl32.Vec3) mgl32.Vec3 {
	return t.ParentWorldMatrix().Inv().Mul4x1(world.Vec4(1)).Vec3()
}
