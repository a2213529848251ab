package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountdownFiresOnce(t *testing.T) {
	c := countdown{delay: 2500 * time.Millisecond}
	assert.False(t, c.Tick(10))

	c.Arm()
	assert.True(t, c.Armed())
	assert.False(t, c.Tick(1))
	assert.False(t, c.Tick(1))
	assert.True(t, c.Tick(0.5))
	assert.False(t, c.Armed())
	assert.False(t, c.Tick(1))
}

func TestCountdownRearmRestarts(t *testing.T) {
	c := countdown{delay: time.Second}
	c.Arm()
	assert.False(t, c.Tick(0.75))
	c.Arm()
	assert.False(t, c.Tick(0.75))
	assert.True(t, c.Tick(0.25))
}

func TestCountdownCancel(t *testing.T) {
	c := countdown{delay: time.Second}
	c.Arm()
	c.Cancel()
	assert.False(t, c.Tick(5))
}

func TestCountdownZeroDelayNeverArms(t *testing.T) {
	var c countdown
	c.Arm()
	assert.False(t, c.Armed())
	assert.False(t, c.Tick(1))
}
