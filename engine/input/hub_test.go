package input

import (
	"testing"

	"github.com/Carmen-Shannon/topo3d/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDispatchOrderAndMask(t *testing.T) {
	h := NewHub()
	var got []string
	h.Subscribe(KindPointer, func(e Event) { got = append(got, "a:"+e.Kind.String()) })
	h.Subscribe(KindWheel, func(e Event) { got = append(got, "b:"+e.Kind.String()) })
	h.Subscribe(KindAll, func(e Event) { got = append(got, "c:"+e.Kind.String()) })

	h.Dispatch(PointerDown(1, 2, ButtonLeft))
	h.Dispatch(Wheel(-1))

	assert.Equal(t, []string{"a:pointerdown", "c:pointerdown", "b:wheel", "c:wheel"}, got)
}

func TestHubTimestampsStrictlyIncrease(t *testing.T) {
	h := NewHub(WithClock(func() int64 { return 42 }))
	var times []int64
	h.Subscribe(KindAll, func(e Event) {
		times = append(times, e.Time)
		assert.Equal(t, e.Time, e.Pointer.Time)
	})

	h.Dispatch(PointerMove(0, 0))
	h.Dispatch(PointerMove(1, 0))
	h.Dispatch(Event{Kind: KindPointerMove, Time: 10})
	h.Dispatch(Event{Kind: KindPointerMove, Time: 100})

	require.Len(t, times, 4)
	assert.Equal(t, []int64{42, 43, 44, 100}, times)
}

func TestHubUnsubscribeDuringDispatch(t *testing.T) {
	h := NewHub()
	calls := 0
	var sub Subscription
	sub = h.Subscribe(KindAll, func(e Event) {
		calls++
		sub.Unsubscribe()
	})
	other := 0
	h.Subscribe(KindAll, func(e Event) { other++ })

	h.Dispatch(KeyDown(common.KeyW, 0))
	h.Dispatch(KeyDown(common.KeyW, 0))
	sub.Unsubscribe()

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, other)
	assert.Equal(t, 1, h.Subscribers())
}

func TestHubTouchPrimary(t *testing.T) {
	h := NewHub()
	var got Event
	h.Subscribe(KindTouch, func(e Event) { got = e })

	h.Dispatch(Touch(KindTouchStart, [2]float32{3, 4}, [2]float32{5, 6}))

	require.Len(t, got.Touches, 2)
	assert.Equal(t, float32(3), got.Pointer.X)
	assert.Equal(t, 1, got.Touches[1].ID)
	assert.Equal(t, got.Time, got.Touches[1].Time)
}

func TestHubMoveClearsButton(t *testing.T) {
	h := NewHub()
	var got Event
	h.Subscribe(KindPointerMove, func(e Event) { got = e })
	h.Dispatch(Event{Kind: KindPointerMove, Pointer: PointerSample{Button: ButtonRight}})
	assert.Equal(t, ButtonNone, got.Pointer.Button)
}

func TestHubBounds(t *testing.T) {
	h := NewHub(WithBounds(common.Rect{Width: 800, Height: 600}))
	assert.Equal(t, float32(800), h.Bounds().Width)
	h.SetBounds(common.Rect{Width: 10, Height: 20})
	assert.Equal(t, float32(20), h.Bounds().Height)
}
