package controls

import (
	"github.com/Carmen-Shannon/topo3d/common"
	"github.com/Carmen-Shannon/topo3d/engine/input"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ScreenDelta turns consecutive pointer positions into frame-relative pixel deltas.
type ScreenDelta struct {
	prev mgl32.Vec2
}

// Start records the gesture's first position.
func (d *ScreenDelta) Start(x, y float32) {
	d.prev = mgl32.Vec2{x, y}
}

// Next returns current - previous and makes current the new previous.
//
// Parameters:
//   - x, y: the current position
//
// Returns:
//   - mgl32.Vec2: the delta in pixels
func (d *ScreenDelta) Next(x, y float32) mgl32.Vec2 {
	cur := mgl32.Vec2{x, y}
	delta := cur.Sub(d.prev)
	d.prev = cur
	return delta
}

// Previous returns the last recorded position.
func (d *ScreenDelta) Previous() mgl32.Vec2 {
	return d.prev
}

// RotationDelta normalizes a pixel delta by the viewport so a full-width horizontal drag is a
// full turn, and a full-height vertical drag is likewise a full turn of the polar angle.
//
// Parameters:
//   - delta: the pixel delta
//   - bounds: the viewport rectangle
//   - speed: the rotate speed factor
//
// Returns:
//   - left: the azimuthal angle to rotate left by, in radians
//   - up: the polar angle to rotate up by, in radians
func RotationDelta(delta mgl32.Vec2, bounds common.Rect, speed float32) (left, up float32) {
	if bounds.Empty() {
		return 0, 0
	}
	left = 2 * math32.Pi * delta[0] / bounds.Width * speed
	up = 2 * math32.Pi * delta[1] / bounds.Height * speed
	return left, up
}

// PinchDistance returns the distance between the first two touches.
//
// Parameters:
//   - touches: the touches in contact (at least two)
//
// Returns:
//   - float32: the distance in pixels
//   - bool: false if fewer than two touches are present
func PinchDistance(touches []input.PointerSample) (float32, bool) {
	if len(touches) < 2 {
		return 0, false
	}
	dx := touches[0].X - touches[1].X
	dy := touches[0].Y - touches[1].Y
	return math32.Sqrt(dx*dx + dy*dy), true
}

// GrabOffset remembers where a ray-based gesture grabbed its target so later
// intersections can be expressed relative to that grab.
type GrabOffset struct {
	offset mgl32.Vec3
}

// Capture stores intersection - reference.
func (g *GrabOffset) Capture(intersection, reference mgl32.Vec3) {
	g.offset = intersection.Sub(reference)
}

// Offset returns the captured offset.
func (g *GrabOffset) Offset() mgl32.Vec3 {
	return g.offset
}

// Apply returns intersection minus the captured offset.
func (g *GrabOffset) Apply(intersection mgl32.Vec3) mgl32.Vec3 {
	return intersection.Sub(g.offset)
}

// PoseTracker detects pose changes above floating-point noise: squared displacement above
// common.Epsilon, or an orientation change whose small-angle estimate 8*(1 - q·q') exceeds it.
type PoseTracker struct {
	position   mgl32.Vec3
	quaternion mgl32.Quat
}

// NewPoseTracker seeds the tracker with the current pose.
func NewPoseTracker(position mgl32.Vec3, quaternion mgl32.Quat) PoseTracker {
	return PoseTracker{position: position, quaternion: quaternion}
}

// Changed reports whether the pose moved beyond the threshold. The new pose is
// recorded only when it did, so slow drifts below the threshold accumulate.
//
// Parameters:
//   - position: the current position
//   - quaternion: the current orientation
//
// Returns:
//   - bool: true if the pose changed
func (p *PoseTracker) Changed(position mgl32.Vec3, quaternion mgl32.Quat) bool {
	d := position.Sub(p.position)
	if d.Dot(d) > common.Epsilon || 8*(1-p.quaternion.Dot(quaternion)) > common.Epsilon {
		p.position = position
		p.quaternion = quaternion
		return true
	}
	return false
}

// ConstrainToAxis zeroes the components of v whose axis letter does not appear in axis.
// "X" keeps only x, "XY" keeps x and y, "XYZ" keeps everything.
//
// Parameters:
//   - axis: the handle name
//   - v: the unconstrained vector
//
// Returns:
//   - mgl32.Vec3: the constrained vector
func ConstrainToAxis(axis string, v mgl32.Vec3) mgl32.Vec3 {
	for i, letter := range [3]byte{'X', 'Y', 'Z'} {
		if !hasAxis(axis, letter) {
			v[i] = 0
		}
	}
	return v
}

// SnapAxes rounds the components of v named in axis to the nearest multiple of step.
// A non-positive step leaves v unchanged.
//
// Parameters:
//   - axis: the handle name
//   - v: the vector to snap
//   - step: the snap increment
//
// Returns:
//   - mgl32.Vec3: the snapped vector
func SnapAxes(axis string, v mgl32.Vec3, step float32) mgl32.Vec3 {
	if step <= 0 {
		return v
	}
	for i, letter := range [3]byte{'X', 'Y', 'Z'} {
		if hasAxis(axis, letter) {
			v[i] = common.Snap(v[i], step)
		}
	}
	return v
}

func hasAxis(axis string, letter byte) bool {
	for i := 0; i < len(axis); i++ {
		if axis[i] == letter {
			return true
		}
	}
	return false
}
