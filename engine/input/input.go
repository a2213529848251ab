package input

import "github.com/Carmen-Shannon/topo3d/common"

// Kind identifies the class of an input Event. Kinds are bit flags so a subscriber
// can register for several classes with a single mask.
type Kind uint32

const (
	KindPointerDown Kind = 1 << iota
	KindPointerMove
	KindPointerUp
	KindPointerLeave
	KindTouchStart
	KindTouchMove
	KindTouchEnd
	KindTouchCancel
	KindWheel
	KindKeyDown
	KindKeyUp
)

// Convenience masks for Subscribe.
const (
	KindPointer = KindPointerDown | KindPointerMove | KindPointerUp | KindPointerLeave
	KindTouch   = KindTouchStart | KindTouchMove | KindTouchEnd | KindTouchCancel
	KindKey     = KindKeyDown | KindKeyUp
	KindAll     = KindPointer | KindTouch | KindWheel | KindKey
)

// String returns a short name for a single Kind flag.
func (k Kind) String() string {
	switch k {
	case KindPointerDown:
		return "pointerdown"
	case KindPointerMove:
		return "pointermove"
	case KindPointerUp:
		return "pointerup"
	case KindPointerLeave:
		return "pointerleave"
	case KindTouchStart:
		return "touchstart"
	case KindTouchMove:
		return "touchmove"
	case KindTouchEnd:
		return "touchend"
	case KindTouchCancel:
		return "touchcancel"
	case KindWheel:
		return "wheel"
	case KindKeyDown:
		return "keydown"
	case KindKeyUp:
		return "keyup"
	}
	return "mixed"
}

// Button identifies a pointer button independent of the windowing backend.
type Button int

const (
	ButtonNone   Button = -1
	ButtonLeft   Button = 0
	ButtonMiddle Button = 1
	ButtonRight  Button = 2
)

// Modifier is a bit set of held modifier keys.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// PointerSample is one normalized pointer or finger position.
// Time is stamped by the dispatching Source and strictly increases within its stream.
type PointerSample struct {
	// ID is 0 for the mouse and the platform finger identifier for touches.
	ID int
	// X and Y are client coordinates in pixels relative to the top-left of the viewport.
	X, Y float32
	// Button is the button that changed state for down/up events, ButtonNone otherwise.
	Button Button
	// Time is the dispatch timestamp in nanoseconds.
	Time int64
}

// Event is a device-agnostic input event.
type Event struct {
	// Kind is exactly one Kind flag.
	Kind Kind
	// Pointer is the primary pointer sample for pointer events.
	// For touch events it mirrors the first entry of Touches, if any.
	Pointer PointerSample
	// Touches holds every finger currently in contact for touch events.
	Touches []PointerSample
	// DeltaY is the wheel delta. Negative values scroll up (zoom in), positive scroll down.
	DeltaY float32
	// Key is the virtual key code for key events (see common key codes).
	Key int
	// Mods is the set of modifiers held when the event was produced.
	Mods Modifier
	// Time is the dispatch timestamp in nanoseconds.
	Time int64
}

// Handler receives events delivered by a Source.
type Handler func(e Event)

// Subscription is returned by Source.Subscribe and detaches the handler when released.
type Subscription interface {
	// Unsubscribe removes the handler. Calling it more than once is a no-op.
	Unsubscribe()
}

// Source is the capability set a controller needs from its host environment:
// subscribe to normalized input events and query the viewport bounds used to
// normalize pointer positions.
type Source interface {
	// Subscribe registers a handler for every event whose Kind is contained in mask.
	// Handlers are invoked synchronously in registration order.
	//
	// Parameters:
	//   - mask: bitwise OR of the Kinds the handler is interested in
	//   - handler: the callback to invoke
	//
	// Returns:
	//   - Subscription: handle used to remove the handler
	Subscribe(mask Kind, handler Handler) Subscription

	// Bounds returns the viewport rectangle in client pixels.
	//
	// Returns:
	//   - common.Rect: the current viewport bounds
	Bounds() common.Rect
}
