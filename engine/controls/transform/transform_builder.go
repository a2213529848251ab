package transform

// TransformBuilderOption is a functional option for configuring a transform Controller.
type TransformBuilderOption func(*transformImpl)

// WithMode sets the initial transform mode. Defaults to ModeTranslate.
//
// Parameters:
//   - mode: the transform mode
//
// Returns:
//   - TransformBuilderOption: a function that sets the mode
func WithMode(mode Mode) TransformBuilderOption {
	return func(t *transformImpl) {
		if mode.Valid() {
			t.settings.Mode = mode
		}
	}
}

// WithSpace sets the initial gizmo space. Defaults to SpaceWorld.
//
// Parameters:
//   - space: the gizmo space
//
// Returns:
//   - TransformBuilderOption: a function that sets the space
func WithSpace(space Space) TransformBuilderOption {
	return func(t *transformImpl) {
		t.settings.Space = space
	}
}

// WithSize sets the gizmo size multiplier. Defaults to 1.
//
// Parameters:
//   - size: the size multiplier
//
// Returns:
//   - TransformBuilderOption: a function that sets the size
func WithSize(size float32) TransformBuilderOption {
	return func(t *transformImpl) {
		t.settings.Size = size
	}
}

// WithTranslationSnap rounds translated positions to multiples of step. 0 disables snapping.
//
// Parameters:
//   - step: the translation increment
//
// Returns:
//   - TransformBuilderOption: a function that sets translation snapping
func WithTranslationSnap(step float32) TransformBuilderOption {
	return func(t *transformImpl) {
		t.settings.TranslationSnap = step
	}
}

// WithRotationSnap rounds rotation angles to multiples of step radians. 0 disables snapping.
//
// Parameters:
//   - step: the rotation increment in radians
//
// Returns:
//   - TransformBuilderOption: a function that sets rotation snapping
func WithRotationSnap(step float32) TransformBuilderOption {
	return func(t *transformImpl) {
		t.settings.RotationSnap = step
	}
}

// WithEnabled sets whether the controller reacts to input.
//
// Parameters:
//   - enabled: the initial enabled state
//
// Returns:
//   - TransformBuilderOption: a function that sets the enabled state
func WithEnabled(enabled bool) TransformBuilderOption {
	return func(t *transformImpl) {
		t.enabled = enabled
	}
}
