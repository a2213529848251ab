package controls

// EventType names a controller lifecycle notification.
type EventType string

const (
	// EventStart fires when a gesture begins.
	EventStart EventType = "start"
	// EventChange fires for every frame whose applied transform exceeded the noise threshold.
	EventChange EventType = "change"
	// EventEnd fires when a gesture ends.
	EventEnd EventType = "end"

	// EventHoverOn fires when the pointer moves onto a draggable object.
	EventHoverOn EventType = "hoveron"
	// EventHoverOff fires when the pointer leaves the hovered object.
	EventHoverOff EventType = "hoveroff"
	// EventDragStart fires when a press selects an object for dragging.
	EventDragStart EventType = "dragstart"
	// EventDrag fires for every pointer move that repositions the dragged object.
	EventDrag EventType = "drag"
	// EventDragEnd fires when the dragged object is released.
	EventDragEnd EventType = "dragend"

	// EventMouseDown fires when a press grabs a gizmo handle.
	EventMouseDown EventType = "mouseDown"
	// EventMouseUp fires when a grabbed gizmo handle is released.
	EventMouseUp EventType = "mouseUp"
	// EventObjectChange fires whenever the gizmo modifies the attached object.
	EventObjectChange EventType = "objectChange"
)

// Event is delivered to listeners after the state mutation it describes has been committed.
type Event struct {
	Type EventType
	// Mode is the controller mode when the event was emitted.
	Mode Mode
	// Object is the manipulated object for drag and transform events.
	Object Target
	// Detail carries extra context, e.g. the transform mode name on EventMouseUp.
	Detail string
}

// Listener receives controller events.
type Listener func(e Event)

// ListenerID identifies a registration for Off.
type ListenerID uint64

type listenerEntry struct {
	id       ListenerID
	listener Listener
}

// Notifier fans controller events out to listeners, invoked synchronously in registration order.
// The zero value is ready to use.
type Notifier struct {
	nextID    ListenerID
	listeners map[EventType][]listenerEntry
}

// On registers listener for events of type t.
//
// Parameters:
//   - t: the event type
//   - listener: the callback
//
// Returns:
//   - ListenerID: handle for Off
func (n *Notifier) On(t EventType, listener Listener) ListenerID {
	if n.listeners == nil {
		n.listeners = make(map[EventType][]listenerEntry)
	}
	n.nextID++
	n.listeners[t] = append(n.listeners[t], listenerEntry{id: n.nextID, listener: listener})
	return n.nextID
}

// Off removes a registration. Unknown IDs are ignored.
func (n *Notifier) Off(id ListenerID) {
	for t, entries := range n.listeners {
		for i, e := range entries {
			if e.id == id {
				n.listeners[t] = append(entries[:i:i], entries[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers e to every listener registered for e.Type.
func (n *Notifier) Emit(e Event) {
	entries := n.listeners[e.Type]
	if len(entries) == 0 {
		return
	}
	snapshot := make([]listenerEntry, len(entries))
	copy(snapshot, entries)
	for _, entry := range snapshot {
		entry.listener(e)
	}
}

// Clear removes every listener.
func (n *Notifier) Clear() {
	n.listeners = nil
}

// Count returns the number of listeners registered for t.
func (n *Notifier) Count(t EventType) int {
	return len(n.listeners[t])
}
