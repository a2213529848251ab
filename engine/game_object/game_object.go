package game_object

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/topo3d/common"
	"github.com/Carmen-Shannon/topo3d/engine/raycast"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Shape selects how the renderer draws a GameObject.
type Shape int

const (
	// ShapeBox draws a solid box of size 2*HalfExtents.
	ShapeBox Shape = iota
	// ShapeMarker draws a small camera-facing cross, used for labels.
	ShapeMarker
	// ShapeNone draws nothing; the object only groups children or carries data.
	ShapeNone
)

type gameObject struct {
	id      uint64
	name    string
	label   string
	enabled atomic.Bool
	shape   Shape
	color   common.Color

	position    mgl32.Vec3
	quaternion  mgl32.Quat
	scale       mgl32.Vec3
	halfExtents mgl32.Vec3

	parent   *gameObject
	children []*gameObject

	worldMatrix mgl32.Mat4
}

// GameObject defines the interface for a scene-graph entity with a local transform,
// an optional parent, and a box-shaped picking volume.
// World matrices are cached and refreshed by UpdateMatrixWorld or by the owning Scene.
type GameObject interface {
	raycast.Pickable

	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// Label returns the display text attached to this object, if any.
	//
	// Returns:
	//   - string: the label text
	Label() string

	// Enabled returns whether this object is enabled for rendering and picking.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is enabled for rendering and picking.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Shape returns how the renderer draws the object.
	//
	// Returns:
	//   - Shape: the draw shape
	Shape() Shape

	// Color returns the draw color.
	//
	// Returns:
	//   - common.Color: the RGBA color
	Color() common.Color

	// Position returns the parent-relative position.
	//
	// Returns:
	//   - mgl32.Vec3: the local position
	Position() mgl32.Vec3

	// SetPosition sets the parent-relative position.
	//
	// Parameters:
	//   - p: the new local position
	SetPosition(p mgl32.Vec3)

	// Quaternion returns the parent-relative orientation.
	//
	// Returns:
	//   - mgl32.Quat: the local orientation
	Quaternion() mgl32.Quat

	// SetQuaternion sets the parent-relative orientation.
	//
	// Parameters:
	//   - q: the new local orientation (normalized on write)
	SetQuaternion(q mgl32.Quat)

	// Scale returns the parent-relative scale.
	//
	// Returns:
	//   - mgl32.Vec3: the local scale
	Scale() mgl32.Vec3

	// SetScale sets the parent-relative scale.
	//
	// Parameters:
	//   - s: the new local scale
	SetScale(s mgl32.Vec3)

	// HalfExtents returns the half size of the object's unscaled bounding box.
	//
	// Returns:
	//   - mgl32.Vec3: half extents along the local axes
	HalfExtents() mgl32.Vec3

	// LookAt orients the object so its local +Z axis points toward target.
	//
	// Parameters:
	//   - target: world-space point to face
	LookAt(target mgl32.Vec3)

	// Parent returns the parent object, or nil for roots.
	//
	// Returns:
	//   - GameObject: the parent or nil
	Parent() GameObject

	// Children returns the direct children in insertion order.
	//
	// Returns:
	//   - []GameObject: the children
	Children() []GameObject

	// Add reparents child under this object.
	//
	// Parameters:
	//   - child: the object to attach
	Add(child GameObject)

	// Remove detaches child from this object. Unknown children are ignored.
	//
	// Parameters:
	//   - child: the object to detach
	Remove(child GameObject)

	// LocalMatrix composes the local transform.
	//
	// Returns:
	//   - mgl32.Mat4: translation * rotation * scale
	LocalMatrix() mgl32.Mat4

	// WorldMatrix returns the cached world transform.
	//
	// Returns:
	//   - mgl32.Mat4: the world matrix from the last update
	WorldMatrix() mgl32.Mat4

	// ParentWorldMatrix returns the parent's cached world transform, or identity for roots.
	//
	// Returns:
	//   - mgl32.Mat4: the parent world matrix
	ParentWorldMatrix() mgl32.Mat4

	// UpdateMatrixWorld recomputes the cached world matrix from the parent's cached world matrix.
	// Children are not updated.
	UpdateMatrixWorld()

	// WorldPosition returns the translation of the cached world matrix.
	//
	// Returns:
	//   - mgl32.Vec3: the world-space position
	WorldPosition() mgl32.Vec3
}

var _ GameObject = &gameObject{}

// objectCount is an atomic counter used to hand out default IDs.
var objectCount atomic.Uint64

// NewGameObject creates a new GameObject with an identity transform and a unit box volume.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	g := &gameObject{
		id:          objectCount.Add(1),
		quaternion:  mgl32.QuatIdent(),
		scale:       mgl32.Vec3{1, 1, 1},
		halfExtents: mgl32.Vec3{0.5, 0.5, 0.5},
		color:       common.Color{1, 1, 1, 1},
		worldMatrix: mgl32.Ident4(),
	}
	g.enabled.Store(true)
	for _, opt := range options {
		opt(g)
	}
	g.UpdateMatrixWorld()
	return g
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Label() string {
	return g.label
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Shape() Shape {
	return g.shape
}

func (g *gameObject) Color() common.Color {
	return g.color
}

func (g *gameObject) Position() mgl32.Vec3 {
	return g.position
}

func (g *gameObject) SetPosition(p mgl32.Vec3) {
	g.position = p
}

func (g *gameObject) Quaternion() mgl32.Quat {
	return g.quaternion
}

func (g *gameObject) SetQuaternion(q mgl32.Quat) {
	g.quaternion = q.Normalize()
}

func (g *gameObject) Scale() mgl32.Vec3 {
	return g.scale
}

func (g *gameObject) SetScale(s mgl32.Vec3) {
	g.scale = s
}

func (g *gameObject) HalfExtents() mgl32.Vec3 {
	return g.halfExtents
}

func (g *gameObject) LookAt(target mgl32.Vec3) {
	g.UpdateMatrixWorld()
	// Objects face +Z toward the target, the reverse of the camera convention.
	world := common.BasisLookAt(target, g.WorldPosition(), mgl32.Vec3{0, 1, 0})
	if g.parent != nil {
		_, parentRot, _ := common.DecomposeMatrix(g.parent.worldMatrix)
		world = parentRot.Inverse().Mul(world)
	}
	g.SetQuaternion(world)
}

func (g *gameObject) Parent() GameObject {
	if g.parent == nil {
		return nil
	}
	return g.parent
}

func (g *gameObject) Children() []GameObject {
	out := make([]GameObject, len(g.children))
	for i, c := range g.children {
		out[i] = c
	}
	return out
}

func (g *gameObject) Add(child GameObject) {
	c, ok := child.(*gameObject)
	if !ok || c == g {
		return
	}
	if c.parent != nil {
		c.parent.Remove(c)
	}
	c.parent = g
	g.children = append(g.children, c)
}

func (g *gameObject) Remove(child GameObject) {
	c, ok := child.(*gameObject)
	if !ok {
		return
	}
	for i, existing := range g.children {
		if existing == c {
			g.children = append(g.children[:i], g.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

func (g *gameObject) LocalMatrix() mgl32.Mat4 {
	return common.ComposeMatrix(g.position, g.quaternion, g.scale)
}

func (g *gameObject) WorldMatrix() mgl32.Mat4 {
	return g.worldMatrix
}

func (g *gameObject) ParentWorldMatrix() mgl32.Mat4 {
	if g.parent == nil {
		return mgl32.Ident4()
	}
	return g.parent.worldMatrix
}

func (g *gameObject) UpdateMatrixWorld() {
	g.worldMatrix = g.ParentWorldMatrix().Mul4(g.LocalMatrix())
}

func (g *gameObject) WorldPosition() mgl32.Vec3 {
	return g.worldMatrix.Col(3).Vec3()
}

// IntersectRay tests the ray against the object's world-space bounding box.
// Disabled objects and objects without a drawable shape are never hit.
func (g *gameObject) IntersectRay(r raycast.Ray) (float32, bool) {
	if !g.Enabled() || g.shape == ShapeNone {
		return 0, false
	}
	pos, rot, scale := common.DecomposeMatrix(g.worldMatrix)
	box := raycast.Box{
		Label:       g.name,
		Center:      pos,
		HalfExtents: mgl32.Vec3{g.halfExtents[0] * math32.Abs(scale[0]), g.halfExtents[1] * math32.Abs(scale[1]), g.halfExtents[2] * math32.Abs(scale[2])},
		Rotation:    rot,
	}
	return box.IntersectRay(r)
}
