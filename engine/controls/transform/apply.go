package transform

import (
	"github.com/Carmen-Shannon/topo3d/common"
	"github.com/Carmen-Shannon/topo3d/engine/controls"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Frames is the attached object's basis captured when a gesture starts. Every pointer move
// is applied relative to these values, so rounding never accumulates across frames.
type Frames struct {
	OldPosition    mgl32.Vec3
	OldScale       mgl32.Vec3
	OldRotation    mgl32.Quat
	WorldPosition  mgl32.Vec3
	WorldRotation  mgl32.Quat
	ParentRotation mgl32.Quat
	// ParentScale is the scale of the inverse parent world transform.
	ParentScale mgl32.Vec3
}

// CaptureFrames snapshots t's local and world basis. The world matrices must be current.
//
// Parameters:
//   - t: the manipulated object
//
// Returns:
//   - Frames: the captured basis
func CaptureFrames(t controls.Target) Frames {
	worldPos, worldRot, _ := common.DecomposeMatrix(t.WorldMatrix())
	parent := t.ParentWorldMatrix()
	_, parentRot, _ := common.DecomposeMatrix(parent)
	_, _, parentScale := common.DecomposeMatrix(parent.Inv())
	return Frames{
		OldPosition:    t.Position(),
		OldScale:       t.Scale(),
		OldRotation:    t.Quaternion(),
		WorldPosition:  worldPos,
		WorldRotation:  worldRot,
		ParentRotation: parentRot,
		ParentScale:    parentScale,
	}
}

// Translate computes the new parent-relative position for a translate drag. The world-space
// displacement point - grab is restricted to the axes named in axis, measured along the
// object's own axes in local space. The constrained offset is snapped before it is added
// to the starting position.
//
// Parameters:
//   - axis: the active handle, e.g. "X", "XY" or "XYZ"
//   - space: the gizmo space
//   - point: the current drag plane intersection
//   - grab: the drag plane intersection at gesture start
//   - f: the frames captured at gesture start
//   - snap: the translation increment, 0 to disable
//
// Returns:
//   - mgl32.Vec3: the new position
func Translate(axis string, space Space, point, grab mgl32.Vec3, f Frames, snap float32) mgl32.Vec3 {
	delta := mulElem(point.Sub(grab), f.ParentScale)
	local := space == SpaceLocal

	if local && axis != "XYZ" {
		delta = f.WorldRotation.Inverse().Rotate(delta)
		delta = controls.SnapAxes(axis, controls.ConstrainToAxis(axis, delta), snap)
		return f.OldPosition.Add(f.OldRotation.Rotate(delta))
	}
	delta = controls.SnapAxes(axis, controls.ConstrainToAxis(axis, delta), snap)
	return f.OldPosition.Add(f.ParentRotation.Inverse().Rotate(delta))
}

// Scale computes the new scale for a scale drag. Single-axis handles grow that axis by the
// displacement along it; the XYZ handle scales uniformly by the vertical displacement.
//
// Parameters:
//   - axis: the active handle, "X", "Y", "Z" or "XYZ"
//   - point: the current drag plane intersection
//   - grab: the drag plane intersection at gesture start
//   - f: the frames captured at gesture start
//
// Returns:
//   - mgl32.Vec3: the new scale
func Scale(axis string, point, grab mgl32.Vec3, f Frames) mgl32.Vec3 {
	delta := mulElem(point.Sub(grab), f.ParentScale)
	s := f.OldScale

	if axis == "XYZ" {
		largest := math32.Max(s[0], math32.Max(s[1], s[2]))
		if largest == 0 {
			return s
		}
		return s.Mul(1 + delta[1]/largest)
	}

	delta = f.WorldRotation.Inverse().Rotate(delta)
	switch axis {
	case "X":
		s[0] += delta[0]
	case "Y":
		s[1] += delta[1]
	case "Z":
		s[2] += delta[2]
	}
	return s
}

// Rotate computes the new parent-relative orientation for a rotate drag. X, Y and Z turn
// about that axis by the angle swept around the gizmo center, E turns about the eye vector
// and XYZE turns freely like a trackball.
//
// Parameters:
//   - axis: the active handle
//   - space: the gizmo space
//   - point: the current drag plane intersection
//   - grab: the drag plane intersection at gesture start
//   - eye: unit vector from the object toward the camera
//   - f: the frames captured at gesture start
//   - snap: the rotation increment in radians, 0 to disable
//
// Returns:
//   - mgl32.Quat: the new orientation
func Rotate(axis string, space Space, point, grab, eye mgl32.Vec3, f Frames, snap float32) mgl32.Quat {
	p := mulElem(point.Sub(f.WorldPosition), f.ParentScale)
	g := mulElem(grab.Sub(f.WorldPosition), f.ParentScale)
	parentInv := f.ParentRotation.Inverse()

	switch axis {
	case "E":
		angle := math32.Atan2(eye.Dot(g.Cross(p)), g.Dot(p))
		return parentInv.Mul(mgl32.QuatRotate(angle, eye)).Mul(f.WorldRotation)
	case "XYZE":
		n := g.Cross(p)
		if n.Len() < common.Epsilon {
			return f.OldRotation
		}
		angle := math32.Atan2(n.Len(), g.Dot(p))
		return parentInv.Mul(mgl32.QuatRotate(angle, n.Normalize())).Mul(f.WorldRotation)
	}

	unit, ok := axisUnit(axis)
	if !ok {
		return f.OldRotation
	}
	if space == SpaceLocal {
		inv := f.WorldRotation.Inverse()
		angle := sweep(axis, inv.Rotate(p), inv.Rotate(g), snap)
		return f.OldRotation.Mul(mgl32.QuatRotate(angle, unit))
	}
	angle := sweep(axis, p, g, snap)
	return parentInv.Mul(mgl32.QuatRotate(angle, unit)).Mul(f.WorldRotation)
}

// sweep returns the angle about axis from g to p, measured in the plane perpendicular to it.
func sweep(axis string, p, g mgl32.Vec3, snap float32) float32 {
	var angle float32
	switch axis {
	case "X":
		angle = math32.Atan2(p[2], p[1]) - math32.Atan2(g[2], g[1])
	case "Y":
		angle = math32.Atan2(p[0], p[2]) - math32.Atan2(g[0], g[2])
	case "Z":
		angle = math32.Atan2(p[1], p[0]) - math32.Atan2(g[1], g[0])
	}
	return common.Snap(angle, snap)
}

func axisUnit(axis string) (mgl32.Vec3, bool) {
	switch axis {
	case "X":
		return mgl32.Vec3{1, 0, 0}, true
	case "Y":
		return mgl32.Vec3{0, 1, 0}, true
	case "Z":
		return mgl32.Vec3{0, 0, 1}, true
	}
	return mgl32.Vec3{}, false
}

func mulElem(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}
