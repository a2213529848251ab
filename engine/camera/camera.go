package camera

import (
	"github.com/Carmen-Shannon/topo3d/common"
	"github.com/Carmen-Shannon/topo3d/engine/raycast"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Projection identifies how a camera maps view space to clip space.
type Projection int

const (
	// ProjectionPerspective is a pinhole projection parameterized by a vertical field of view.
	ProjectionPerspective Projection = iota
	// ProjectionOrthographic is a parallel projection parameterized by frustum extents and a zoom factor.
	ProjectionOrthographic
	// ProjectionCustom marks a projection the interaction controllers cannot reason about.
	// Pan and zoom are disabled for cameras of this kind.
	ProjectionCustom
)

// String returns the projection name.
func (p Projection) String() string {
	switch p {
	case ProjectionPerspective:
		return "perspective"
	case ProjectionOrthographic:
		return "orthographic"
	}
	return "custom"
}

type cameraImpl struct {
	projection Projection

	position   mgl32.Vec3
	quaternion mgl32.Quat
	up         mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	left   float32
	right  float32
	top    float32
	bottom float32
	zoom   float32

	projectionMatrix mgl32.Mat4
}

// Camera defines the interface for the camera system.
// The camera owns its pose (position and orientation) and its projection. Interaction
// controllers mutate the pose directly and call UpdateProjectionMatrix after changing
// projection parameters such as the orthographic zoom.
type Camera interface {
	// Projection returns the projection kind of this camera.
	//
	// Returns:
	//   - Projection: the projection kind
	Projection() Projection

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// SetPosition sets the camera's world-space position.
	//
	// Parameters:
	//   - p: the new position
	SetPosition(p mgl32.Vec3)

	// Quaternion returns the camera's world-space orientation.
	//
	// Returns:
	//   - mgl32.Quat: the orientation quaternion
	Quaternion() mgl32.Quat

	// SetQuaternion sets the camera's world-space orientation.
	//
	// Parameters:
	//   - q: the new orientation (normalized by the camera)
	SetQuaternion(q mgl32.Quat)

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// SetUp sets the camera's up vector used by LookAt.
	//
	// Parameters:
	//   - up: the up vector
	SetUp(up mgl32.Vec3)

	// LookAt orients the camera so its view direction points at target.
	//
	// Parameters:
	//   - target: world-space point to look at
	LookAt(target mgl32.Vec3)

	// WorldDirection returns the unit view direction in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the forward vector (-Z of the camera frame)
	WorldDirection() mgl32.Vec3

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// SetFov sets the vertical field of view in radians and updates the projection.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// SetAspect sets the aspect ratio (width / height) and updates the projection.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// Frustum returns the orthographic frustum extents before zoom is applied.
	//
	// Returns:
	//   - left, right, top, bottom: frustum extents in view space
	Frustum() (left, right, top, bottom float32)

	// SetFrustum sets the orthographic frustum extents and updates the projection.
	//
	// Parameters:
	//   - left, right, top, bottom: frustum extents in view space
	SetFrustum(left, right, top, bottom float32)

	// Zoom returns the orthographic zoom factor.
	//
	// Returns:
	//   - float32: the zoom factor (1 = unzoomed)
	Zoom() float32

	// SetZoom sets the orthographic zoom factor. Call UpdateProjectionMatrix afterwards.
	//
	// Parameters:
	//   - zoom: the zoom factor
	SetZoom(zoom float32)

	// UpdateProjectionMatrix recomputes the projection matrix from the current parameters.
	UpdateProjectionMatrix()

	// Matrix returns the camera's world transform (camera space to world space).
	//
	// Returns:
	//   - mgl32.Mat4: the world matrix
	Matrix() mgl32.Mat4

	// ViewMatrix returns the current view matrix (world space to camera space).
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix (WebGPU clip space).
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns the combined view-projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: projection * view
	ViewProjectionMatrix() mgl32.Mat4

	// Ray returns the world-space picking ray through a point in normalized device coordinates.
	// Custom projections cannot be unprojected and report ok = false.
	//
	// Parameters:
	//   - ndc: x and y in [-1, 1], +Y up
	//
	// Returns:
	//   - raycast.Ray: the picking ray
	//   - bool: false if the projection does not support unprojection
	Ray(ndc mgl32.Vec2) (raycast.Ray, bool)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings, positioned at the origin
// looking down -Z.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		projection: ProjectionPerspective,
		quaternion: mgl32.QuatIdent(),
		up:         mgl32.Vec3{0, 1, 0},
		fov:        common.DegToRad(50),
		aspect:     1.0,
		near:       0.1,
		far:        2000.0,
		left:       -1,
		right:      1,
		top:        1,
		bottom:     -1,
		zoom:       1,
	}
	for _, option := range options {
		option(c)
	}
	c.UpdateProjectionMatrix()
	return c
}

func (c *cameraImpl) Projection() Projection {
	return c.projection
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	return c.position
}

func (c *cameraImpl) SetPosition(p mgl32.Vec3) {
	c.position = p
}

func (c *cameraImpl) Quaternion() mgl32.Quat {
	return c.quaternion
}

func (c *cameraImpl) SetQuaternion(q mgl32.Quat) {
	c.quaternion = q.Normalize()
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	return c.up
}

func (c *cameraImpl) SetUp(up mgl32.Vec3) {
	c.up = up
}

func (c *cameraImpl) LookAt(target mgl32.Vec3) {
	c.quaternion = common.BasisLookAt(c.position, target, c.up)
}

func (c *cameraImpl) WorldDirection() mgl32.Vec3 {
	return c.quaternion.Rotate(mgl32.Vec3{0, 0, -1})
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) SetFov(fov float32) {
	c.fov = fov
	c.UpdateProjectionMatrix()
}

func (c *cameraImpl) Aspect() float32 {
	return c.aspect
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.aspect = aspect
	c.UpdateProjectionMatrix()
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) Frustum() (left, right, top, bottom float32) {
	return c.left, c.right, c.top, c.bottom
}

func (c *cameraImpl) SetFrustum(left, right, top, bottom float32) {
	c.left, c.right, c.top, c.bottom = left, right, top, bottom
	c.UpdateProjectionMatrix()
}

func (c *cameraImpl) Zoom() float32 {
	return c.zoom
}

func (c *cameraImpl) SetZoom(zoom float32) {
	c.zoom = zoom
}

func (c *cameraImpl) UpdateProjectionMatrix() {
	switch c.projection {
	case ProjectionOrthographic:
		l, r, t, b := c.zoomedFrustum()
		common.Orthographic(c.projectionMatrix[:], l, r, b, t, c.near, c.far)
	default:
		common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	}
}

func (c *cameraImpl) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(c.position[0], c.position[1], c.position[2]).Mul4(c.quaternion.Mat4())
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	inv := c.quaternion.Inverse()
	p := inv.Rotate(c.position).Mul(-1)
	return mgl32.Translate3D(p[0], p[1], p[2]).Mul4(inv.Mat4())
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	return c.projectionMatrix.Mul4(c.ViewMatrix())
}

func (c *cameraImpl) Ray(ndc mgl32.Vec2) (raycast.Ray, bool) {
	switch c.projection {
	case ProjectionPerspective:
		tanHalf := math32.Tan(c.fov / 2)
		local := mgl32.Vec3{ndc[0] * tanHalf * c.aspect, ndc[1] * tanHalf, -1}
		return raycast.Ray{
			Origin:    c.position,
			Direction: c.quaternion.Rotate(local).Normalize(),
		}, true
	case ProjectionOrthographic:
		l, r, t, b := c.zoomedFrustum()
		local := mgl32.Vec3{
			l + (ndc[0]+1)/2*(r-l),
			b + (ndc[1]+1)/2*(t-b),
			-c.near,
		}
		return raycast.Ray{
			Origin:    c.position.Add(c.quaternion.Rotate(local)),
			Direction: c.WorldDirection(),
		}, true
	}
	return raycast.Ray{}, false
}

// zoomedFrustum returns the orthographic extents with zoom applied around the frustum center.
func (c *cameraImpl) zoomedFrustum() (left, right, top, bottom float32) {
	zoom := c.zoom
	if zoom == 0 {
		zoom = 1
	}
	dx := (c.right - c.left) / (2 * zoom)
	dy := (c.top - c.bottom) / (2 * zoom)
	cx := (c.right + c.left) / 2
	cy := (c.top + c.bottom) / 2
	return cx - dx, cx + dx, cy + dy, cy - dy
}
