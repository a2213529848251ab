package controls

// Mode is the interaction state of a controller. Exactly one mode is active at a time
// and Idle is both the initial state and the state every gesture returns to.
type Mode int

const (
	ModeIdle Mode = iota
	ModeRotate
	ModeDolly
	ModePan
	ModeTouchRotate
	ModeTouchDolly
	ModeTouchPan
	ModeDrag
	ModeTransform
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeRotate:
		return "rotate"
	case ModeDolly:
		return "dolly"
	case ModePan:
		return "pan"
	case ModeTouchRotate:
		return "touch-rotate"
	case ModeTouchDolly:
		return "touch-dolly"
	case ModeTouchPan:
		return "touch-pan"
	case ModeDrag:
		return "drag"
	case ModeTransform:
		return "transform"
	}
	return "unknown"
}

// Touch reports whether the mode was entered from a touch gesture.
func (m Mode) Touch() bool {
	return m == ModeTouchRotate || m == ModeTouchDolly || m == ModeTouchPan
}

// TouchMode maps a finger count to the touch mode it starts: one finger rotates,
// two dolly and three pan. Any other count maps to Idle.
//
// Parameters:
//   - fingers: the number of fingers in contact
//
// Returns:
//   - Mode: the matching touch mode or ModeIdle
func TouchMode(fingers int) Mode {
	switch fingers {
	case 1:
		return ModeTouchRotate
	case 2:
		return ModeTouchDolly
	case 3:
		return ModeTouchPan
	}
	return ModeIdle
}

// Fingers returns the finger count a touch mode expects, or 0 for non-touch modes.
func (m Mode) Fingers() int {
	switch m {
	case ModeTouchRotate:
		return 1
	case ModeTouchDolly:
		return 2
	case ModeTouchPan:
		return 3
	}
	return 0
}

// Machine enforces one gesture at a time. The zero value is Idle.
type Machine struct {
	mode Mode
	axis string
}

// Mode returns the active mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Axis returns the handle name of an active ModeTransform gesture, or "" otherwise.
func (m *Machine) Axis() string {
	return m.axis
}

// Idle reports whether no gesture is active.
func (m *Machine) Idle() bool {
	return m.mode == ModeIdle
}

// Begin enters mode from Idle. Starting a gesture while another is active is rejected
// and leaves the machine unchanged.
//
// Parameters:
//   - mode: the mode to enter (ModeIdle is rejected)
//
// Returns:
//   - bool: true if the gesture started
func (m *Machine) Begin(mode Mode) bool {
	if m.mode != ModeIdle || mode == ModeIdle {
		return false
	}
	m.mode = mode
	m.axis = ""
	return true
}

// BeginAxis enters ModeTransform on the named handle.
//
// Parameters:
//   - axis: the picked handle name, e.g. "X" or "XY"
//
// Returns:
//   - bool: true if the gesture started
func (m *Machine) BeginAxis(axis string) bool {
	if !m.Begin(ModeTransform) {
		return false
	}
	m.axis = axis
	return true
}

// End returns to Idle.
//
// Returns:
//   - Mode: the mode that was active
//   - bool: false if the machine was already Idle
func (m *Machine) End() (Mode, bool) {
	prev := m.mode
	m.mode = ModeIdle
	m.axis = ""
	return prev, prev != ModeIdle
}
