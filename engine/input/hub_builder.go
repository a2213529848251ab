package input

import "github.com/Carmen-Shannon/topo3d/common"

// HubBuilderOption is a functional option for configuring a Hub.
type HubBuilderOption func(*hub)

// WithBounds sets the initial viewport rectangle.
//
// Parameters:
//   - r: viewport bounds in client pixels
//
// Returns:
//   - HubBuilderOption: option function to apply
func WithBounds(r common.Rect) HubBuilderOption {
	return func(h *hub) {
		h.bounds = r
	}
}

// WithClock replaces the timestamp source used for events dispatched without a time.
// Tests use this to get deterministic timestamps.
//
// Parameters:
//   - clock: function returning the current time in nanoseconds
//
// Returns:
//   - HubBuilderOption: option function to apply
func WithClock(clock func() int64) HubBuilderOption {
	return func(h *hub) {
		if clock != nil {
			h.clock = clock
		}
	}
}
