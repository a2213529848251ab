package game_object

import (
	"github.com/Carmen-Shannon/topo3d/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the object's unique identifier.
//
// Parameters:
//   - id: the ID to assign
//
// Returns:
//   - GameObjectBuilderOption: option function to apply
func WithID(id uint64) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.id = id
	}
}

// WithName sets the name reported in picking hits.
//
// Parameters:
//   - name: the object name
//
// Returns:
//   - GameObjectBuilderOption: option function to apply
func WithName(name string) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.name = name
	}
}

// WithLabel attaches display text to the object.
//
// Parameters:
//   - label: the label text
//
// Returns:
//   - GameObjectBuilderOption: option function to apply
func WithLabel(label string) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.label = label
	}
}

// WithEnabled sets whether the object starts enabled.
//
// Parameters:
//   - enabled: true to enable
//
// Returns:
//   - GameObjectBuilderOption: option function to apply
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.enabled.Store(enabled)
	}
}

// WithShape sets how the renderer draws the object.
//
// Parameters:
//   - shape: the draw shape
//
// Returns:
//   - GameObjectBuilderOption: option function to apply
func WithShape(shape Shape) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.shape = shape
	}
}

// WithColor sets the draw color.
//
// Parameters:
//   - c: the RGBA color
//
// Returns:
//   - GameObjectBuilderOption: option function to apply
func WithColor(c common.Color) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.color = c
	}
}

// WithPosition sets the initial local position.
//
// Parameters:
//   - p: the local position
//
// Returns:
//   - GameObjectBuilderOption: option function to apply
func WithPosition(p mgl32.Vec3) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.position = p
	}
}

// WithQuaternion sets the initial local orientation.
//
// Parameters:
//   - q: the local orientation
//
// Returns:
//   - GameObjectBuilderOption: option function to apply
func WithQuaternion(q mgl32.Quat) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.quaternion = q.Normalize()
	}
}

// WithScale sets the initial local scale.
//
// Parameters:
//   - s: the local scale
//
// Returns:
//   - GameObjectBuilderOption: option function to apply
func WithScale(s mgl32.Vec3) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.scale = s
	}
}

// WithSize sets the unscaled bounding box size used for drawing and picking.
//
// Parameters:
//   - size: full box size along each local axis
//
// Returns:
//   - GameObjectBuilderOption: option function to apply
func WithSize(size mgl32.Vec3) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.halfExtents = size.Mul(0.5)
	}
}
