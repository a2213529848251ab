package input

// PointerDown builds a mouse press event.
//
// Parameters:
//   - x, y: client coordinates in pixels
//   - button: the pressed button
//
// Returns:
//   - Event: the press event
func PointerDown(x, y float32, button Button) Event {
	return Event{Kind: KindPointerDown, Pointer: PointerSample{X: x, Y: y, Button: button}}
}

// PointerMove builds a mouse move event.
func PointerMove(x, y float32) Event {
	return Event{Kind: KindPointerMove, Pointer: PointerSample{X: x, Y: y, Button: ButtonNone}}
}

// PointerUp builds a mouse release event.
func PointerUp(x, y float32, button Button) Event {
	return Event{Kind: KindPointerUp, Pointer: PointerSample{X: x, Y: y, Button: button}}
}

// PointerLeave builds an event signalling the pointer left the viewport.
func PointerLeave(x, y float32) Event {
	return Event{Kind: KindPointerLeave, Pointer: PointerSample{X: x, Y: y, Button: ButtonNone}}
}

// Wheel builds a wheel event. Negative deltaY scrolls up.
func Wheel(deltaY float32) Event {
	return Event{Kind: KindWheel, DeltaY: deltaY}
}

// KeyDown builds a key press event.
func KeyDown(key int, mods Modifier) Event {
	return Event{Kind: KindKeyDown, Key: key, Mods: mods}
}

// KeyUp builds a key release event.
func KeyUp(key int, mods Modifier) Event {
	return Event{Kind: KindKeyUp, Key: key, Mods: mods}
}

// Touch builds a touch event of the given kind carrying the fingers currently in contact.
//
// Parameters:
//   - kind: one of the touch Kinds
//   - points: x, y pairs for each finger; finger IDs are assigned by index
//
// Returns:
//   - Event: the touch event
func Touch(kind Kind, points ...[2]float32) Event {
	touches := make([]PointerSample, len(points))
	for i, p := range points {
		touches[i] = PointerSample{ID: i, X: p[0], Y: p[1], Button: ButtonNone}
	}
	e := Event{Kind: kind, Touches: touches}
	if len(touches) > 0 {
		e.Pointer = touches[0]
	}
	return e
}
