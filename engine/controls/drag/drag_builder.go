package drag

import "github.com/Carmen-Shannon/topo3d/engine/input"

// DragBuilderOption is a functional option for configuring a drag Controller.
type DragBuilderOption func(*dragImpl)

// WithButton sets the pointer button that grabs an object. Defaults to the left button.
//
// Parameters:
//   - button: the grab button
//
// Returns:
//   - DragBuilderOption: a function that sets the grab button
func WithButton(button input.Button) DragBuilderOption {
	return func(d *dragImpl) {
		d.button = button
	}
}

// WithEnabled sets whether the controller reacts to input.
//
// Parameters:
//   - enabled: the initial enabled state
//
// Returns:
//   - DragBuilderOption: a function that sets the enabled state
func WithEnabled(enabled bool) DragBuilderOption {
	return func(d *dragImpl) {
		d.enabled = enabled
	}
}

// WithInactive creates the controller without subscribing to input. Call Activate to start.
//
// Returns:
//   - DragBuilderOption: a function that defers activation
func WithInactive() DragBuilderOption {
	return func(d *dragImpl) {
		d.startInactive = true
	}
}
