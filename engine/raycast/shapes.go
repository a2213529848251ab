package raycast

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Box is an oriented bounding box picker.
type Box struct {
	Label       string
	Center      mgl32.Vec3
	HalfExtents mgl32.Vec3
	Rotation    mgl32.Quat
}

var _ Pickable = &Box{}

func (b *Box) Name() string {
	return b.Label
}

// IntersectRay uses the slab test in the box's local frame.
func (b *Box) IntersectRay(r Ray) (float32, bool) {
	rot := b.Rotation
	if rot.W == 0 && rot.V == (mgl32.Vec3{}) {
		rot = mgl32.QuatIdent()
	}
	inv := rot.Inverse()
	origin := inv.Rotate(r.Origin.Sub(b.Center))
	dir := inv.Rotate(r.Direction)
	return slab(origin, dir, b.HalfExtents.Mul(-1), b.HalfExtents)
}

// slab intersects a ray with the axis-aligned box [lo, hi].
func slab(origin, dir, lo, hi mgl32.Vec3) (float32, bool) {
	tmin := math32.Inf(-1)
	tmax := math32.Inf(1)
	for i := range 3 {
		if math32.Abs(dir[i]) < 1e-12 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (lo[i] - origin[i]) * inv
		t2 := (hi[i] - origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return 0, true
	}
	return tmin, true
}

// Sphere is a spherical picker.
type Sphere struct {
	Label  string
	Center mgl32.Vec3
	Radius float32
}

var _ Pickable = &Sphere{}

func (s *Sphere) Name() string {
	return s.Label
}

func (s *Sphere) IntersectRay(r Ray) (float32, bool) {
	oc := s.Center.Sub(r.Origin)
	tca := oc.Dot(r.Direction)
	d2 := oc.Dot(oc) - tca*tca
	r2 := s.Radius * s.Radius
	if d2 > r2 {
		return 0, false
	}
	thc := math32.Sqrt(r2 - d2)
	t0, t1 := tca-thc, tca+thc
	if t1 < 0 {
		return 0, false
	}
	if t0 < 0 {
		return t1, true
	}
	return t0, true
}

// Ring is a flat annulus picker approximating a torus handle: points on the plane through
// Center with the given Normal whose distance from Center is within Thickness of Radius.
type Ring struct {
	Label     string
	Center    mgl32.Vec3
	Normal    mgl32.Vec3
	Radius    float32
	Thickness float32
}

var _ Pickable = &Ring{}

func (g *Ring) Name() string {
	return g.Label
}

func (g *Ring) IntersectRay(r Ray) (float32, bool) {
	t, ok := NewPlane(g.Normal, g.Center).distance(r)
	if !ok {
		return 0, false
	}
	d := r.At(t).Sub(g.Center).Len()
	if math32.Abs(d-g.Radius) > g.Thickness {
		return 0, false
	}
	return t, true
}
