package input

import (
	"time"

	"github.com/Carmen-Shannon/topo3d/common"
)

type subscriber struct {
	id      uint64
	mask    Kind
	handler Handler
}

type hub struct {
	bounds      common.Rect
	clock       func() int64
	lastTime    int64
	nextID      uint64
	subscribers []subscriber
}

// Hub is an in-memory Source. Backends (the GLFW window, tests, replay tools)
// push events into it with Dispatch and controllers subscribe to it.
type Hub interface {
	Source

	// Dispatch stamps the event with a strictly increasing timestamp and delivers it
	// to every subscriber whose mask contains the event's Kind, in registration order.
	//
	// Parameters:
	//   - e: the event to deliver
	Dispatch(e Event)

	// SetBounds updates the viewport rectangle reported by Bounds.
	//
	// Parameters:
	//   - r: the new viewport bounds in client pixels
	SetBounds(r common.Rect)

	// Subscribers returns the number of live subscriptions.
	//
	// Returns:
	//   - int: the subscription count
	Subscribers() int
}

var _ Hub = &hub{}

// NewHub creates a new Hub.
//
// Parameters:
//   - options: functional options to configure the hub
//
// Returns:
//   - Hub: the newly created hub
func NewHub(options ...HubBuilderOption) Hub {
	h := &hub{
		clock: func() int64 { return time.Now().UnixNano() },
	}
	for _, opt := range options {
		opt(h)
	}
	return h
}

func (h *hub) Subscribe(mask Kind, handler Handler) Subscription {
	h.nextID++
	h.subscribers = append(h.subscribers, subscriber{id: h.nextID, mask: mask, handler: handler})
	return &subscription{hub: h, id: h.nextID}
}

func (h *hub) Bounds() common.Rect {
	return h.bounds
}

func (h *hub) SetBounds(r common.Rect) {
	h.bounds = r
}

func (h *hub) Subscribers() int {
	return len(h.subscribers)
}

func (h *hub) Dispatch(e Event) {
	t := e.Time
	if t == 0 {
		t = h.clock()
	}
	if t <= h.lastTime {
		t = h.lastTime + 1
	}
	h.lastTime = t

	e.Time = t
	e.Pointer.Time = t
	if len(e.Touches) > 0 {
		touches := make([]PointerSample, len(e.Touches))
		for i, s := range e.Touches {
			s.Time = t
			touches[i] = s
		}
		e.Touches = touches
		if e.Kind&KindTouch != 0 {
			e.Pointer = touches[0]
		}
	}
	if e.Kind&(KindPointerDown|KindPointerUp) == 0 && e.Kind&KindTouch == 0 {
		e.Pointer.Button = ButtonNone
	}

	// Handlers may unsubscribe while being dispatched to, so iterate a snapshot.
	snapshot := make([]subscriber, len(h.subscribers))
	copy(snapshot, h.subscribers)
	for _, s := range snapshot {
		if s.mask&e.Kind == 0 || !h.live(s.id) {
			continue
		}
		s.handler(e)
	}
}

func (h *hub) live(id uint64) bool {
	for _, s := range h.subscribers {
		if s.id == id {
			return true
		}
	}
	return false
}

func (h *hub) remove(id uint64) {
	for i, s := range h.subscribers {
		if s.id == id {
			h.subscribers = append(h.subscribers[:i], h.subscribers[i+1:]...)
			return
		}
	}
}

type subscription struct {
	hub *hub
	id  uint64
}

func (s *subscription) Unsubscribe() {
	if s.hub == nil {
		return
	}
	s.hub.remove(s.id)
	s.hub = nil
}
