package controls

import (
	"github.com/Carmen-Shannon/topo3d/common"
	"github.com/Carmen-Shannon/topo3d/engine/camera"
	"github.com/Carmen-Shannon/topo3d/engine/raycast"
	"github.com/go-gl/mathgl/mgl32"
)

// Target is an object whose pose an interaction controller can manipulate.
// Position, rotation and scale are parent-relative; the world matrices give the basis
// needed to map world-space deltas back into the parent frame.
type Target interface {
	Position() mgl32.Vec3
	SetPosition(p mgl32.Vec3)
	Quaternion() mgl32.Quat
	SetQuaternion(q mgl32.Quat)
	Scale() mgl32.Vec3
	SetScale(s mgl32.Vec3)

	// WorldMatrix returns the object's cached world transform.
	WorldMatrix() mgl32.Mat4
	// ParentWorldMatrix returns the parent's cached world transform, identity for roots.
	ParentWorldMatrix() mgl32.Mat4
	// UpdateMatrixWorld refreshes the cached world transform after a pose change.
	UpdateMatrixWorld()
}

// PickableTarget is a Target that can also be hit by picking rays.
type PickableTarget interface {
	Target
	raycast.Pickable
}

// PointerRay casts the picking ray through a client-space pointer position.
//
// Parameters:
//   - cam: the viewing camera
//   - bounds: the viewport rectangle
//   - x, y: client coordinates in pixels
//
// Returns:
//   - raycast.Ray: the world-space ray
//   - bool: false if the viewport is empty or the camera cannot unproject
func PointerRay(cam camera.Camera, bounds common.Rect, x, y float32) (raycast.Ray, bool) {
	if bounds.Empty() {
		return raycast.Ray{}, false
	}
	return cam.Ray(raycast.NDC(x, y, bounds))
}
