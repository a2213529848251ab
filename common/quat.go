package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// QuatFromBasis converts an orthonormal basis (the columns of a rotation matrix) into a unit quaternion.
//
// Parameters:
//   - x, y, z: the rotated X, Y and Z axes
//
// Returns:
//   - mgl32.Quat: the rotation mapping the standard basis onto (x, y, z)
func QuatFromBasis(x, y, z mgl32.Vec3) mgl32.Quat {
	m11, m12, m13 := x[0], y[0], z[0]
	m21, m22, m23 := x[1], y[1], z[1]
	m31, m32, m33 := x[2], y[2], z[2]

	trace := m11 + m22 + m33
	var q mgl32.Quat
	switch {
	case trace > 0:
		s := 0.5 / math32.Sqrt(trace+1)
		q = mgl32.Quat{W: 0.25 / s, V: mgl32.Vec3{(m32 - m23) * s, (m13 - m31) * s, (m21 - m12) * s}}
	case m11 > m22 && m11 > m33:
		s := 2 * math32.Sqrt(1+m11-m22-m33)
		q = mgl32.Quat{W: (m32 - m23) / s, V: mgl32.Vec3{0.25 * s, (m12 + m21) / s, (m13 + m31) / s}}
	case m22 > m33:
		s := 2 * math32.Sqrt(1+m22-m11-m33)
		q = mgl32.Quat{W: (m13 - m31) / s, V: mgl32.Vec3{(m12 + m21) / s, 0.25 * s, (m23 + m32) / s}}
	default:
		s := 2 * math32.Sqrt(1+m33-m11-m22)
		q = mgl32.Quat{W: (m21 - m12) / s, V: mgl32.Vec3{(m13 + m31) / s, (m23 + m32) / s, 0.25 * s}}
	}
	return q.Normalize()
}

// QuatFromUnitVectors returns the shortest rotation taking unit vector from onto unit vector to.
// Antiparallel inputs rotate half a turn around an arbitrary perpendicular axis.
//
// Parameters:
//   - from: the source direction (unit length)
//   - to: the destination direction (unit length)
//
// Returns:
//   - mgl32.Quat: the rotation quaternion
func QuatFromUnitVectors(from, to mgl32.Vec3) mgl32.Quat {
	r := from.Dot(to) + 1
	var v mgl32.Vec3
	if r < Epsilon {
		r = 0
		if math32.Abs(from[0]) > math32.Abs(from[2]) {
			v = mgl32.Vec3{-from[1], from[0], 0}
		} else {
			v = mgl32.Vec3{0, -from[2], from[1]}
		}
	} else {
		v = from.Cross(to)
	}
	return mgl32.Quat{W: r, V: v}.Normalize()
}

// BasisLookAt builds the rotation of an object at eye whose -Z axis faces target, keeping up as close to +Y as possible.
// Coincident eye and target produce the identity rotation.
//
// Parameters:
//   - eye: the observer position
//   - target: the point to face
//   - up: the reference up direction
//
// Returns:
//   - mgl32.Quat: the orientation quaternion
func BasisLookAt(eye, target, up mgl32.Vec3) mgl32.Quat {
	z := eye.Sub(target)
	if z.Dot(z) == 0 {
		z = mgl32.Vec3{0, 0, 1}
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.Dot(x) == 0 {
		// up and view direction are parallel; nudge the view direction off-axis.
		if math32.Abs(up[2]) == 1 {
			z[0] += 1e-4
		} else {
			z[2] += 1e-4
		}
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)
	return QuatFromBasis(x, y, z)
}

// ComposeMatrix builds a transform matrix applying scale, then rotation, then translation.
//
// Parameters:
//   - position: the translation
//   - rotation: the orientation
//   - scale: the per-axis scale
//
// Returns:
//   - mgl32.Mat4: the composed matrix
func ComposeMatrix(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(position[0], position[1], position[2]).
		Mul4(rotation.Mat4()).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// DecomposeMatrix splits a transform matrix without shear into translation, rotation and scale.
// A zero-length basis column leaves the rotation as identity.
//
// Parameters:
//   - m: the matrix to decompose
//
// Returns:
//   - position: the translation
//   - rotation: the orientation
//   - scale: the per-axis scale
func DecomposeMatrix(m mgl32.Mat4) (position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) {
	position = m.Col(3).Vec3()
	x, y, z := m.Col(0).Vec3(), m.Col(1).Vec3(), m.Col(2).Vec3()
	scale = mgl32.Vec3{x.Len(), y.Len(), z.Len()}
	if scale[0] == 0 || scale[1] == 0 || scale[2] == 0 {
		return position, mgl32.QuatIdent(), scale
	}
	if x.Cross(y).Dot(z) < 0 {
		scale[0] = -scale[0]
	}
	rotation = QuatFromBasis(x.Mul(1/scale[0]), y.Mul(1/scale[1]), z.Mul(1/scale[2]))
	return position, rotation, scale
}

// SafeNormalize returns v scaled to unit length, or the zero vector when v has no length.
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}
