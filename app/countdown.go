package app

import "time"

// countdown fires once after its delay has elapsed in accumulated tick time.
// It is driven by the frame loop rather than a timer so expiry runs on the window thread.
type countdown struct {
	delay     time.Duration
	remaining time.Duration
	armed     bool
}

// Arm (re)starts the countdown. A non-positive delay leaves it disarmed.
func (c *countdown) Arm() {
	if c.delay <= 0 {
		c.armed = false
		return
	}
	c.remaining = c.delay
	c.armed = true
}

// Cancel disarms the countdown without firing it.
func (c *countdown) Cancel() {
	c.armed = false
}

// Armed reports whether the countdown is running.
func (c *countdown) Armed() bool {
	return c.armed
}

// Tick advances the countdown by dt seconds and reports whether it expired on this tick.
func (c *countdown) Tick(dt float32) bool {
	if !c.armed {
		return false
	}
	c.remaining -= time.Duration(float64(dt) * float64(time.Second))
	if c.remaining > 0 {
		return false
	}
	c.armed = false
	return true
}
