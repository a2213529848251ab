package raycast

import (
	"slices"

	"github.com/Carmen-Shannon/topo3d/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half-line starting at Origin and extending along the unit vector Direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Hit describes one ray intersection.
type Hit struct {
	// Object is the intersected pickable.
	Object Pickable
	// Name is the object's name at the time of the test.
	Name string
	// Distance is the ray parameter of the intersection.
	Distance float32
	// Point is the world-space intersection point.
	Point mgl32.Vec3
}

// Pickable is anything that can be hit by a picking ray.
type Pickable interface {
	// Name returns the identifier reported in hits, e.g. a gizmo axis tag such as "X" or "XY".
	//
	// Returns:
	//   - string: the object name
	Name() string

	// IntersectRay tests the ray against the object.
	//
	// Parameters:
	//   - r: the world-space ray
	//
	// Returns:
	//   - float32: the ray parameter of the nearest intersection
	//   - bool: false if the ray misses
	IntersectRay(r Ray) (float32, bool)
}

// Intersect tests the ray against every object and returns the hits sorted nearest first.
// A miss on every object returns an empty slice, which callers treat as "no applicable target".
//
// Parameters:
//   - r: the world-space ray
//   - objects: the candidate objects
//
// Returns:
//   - []Hit: hits sorted by ascending distance
func Intersect(r Ray, objects []Pickable) []Hit {
	var hits []Hit
	for _, o := range objects {
		if o == nil {
			continue
		}
		if t, ok := o.IntersectRay(r); ok {
			hits = append(hits, Hit{Object: o, Name: o.Name(), Distance: t, Point: r.At(t)})
		}
	}
	slices.SortStableFunc(hits, func(a, b Hit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})
	return hits
}

// First returns the nearest hit, if any.
//
// Parameters:
//   - r: the world-space ray
//   - objects: the candidate objects
//
// Returns:
//   - Hit: the nearest hit
//   - bool: false if nothing was hit
func First(r Ray, objects []Pickable) (Hit, bool) {
	hits := Intersect(r, objects)
	if len(hits) == 0 {
		return Hit{}, false
	}
	return hits[0], true
}

// NDC converts client pixel coordinates into normalized device coordinates within bounds.
// An empty bounds rectangle maps every point to the origin.
//
// Parameters:
//   - x, y: client coordinates in pixels
//   - bounds: the viewport rectangle
//
// Returns:
//   - mgl32.Vec2: x and y in [-1, 1], +Y up
func NDC(x, y float32, bounds common.Rect) mgl32.Vec2 {
	if bounds.Empty() {
		return mgl32.Vec2{}
	}
	nx := (x - bounds.X) / bounds.Width
	ny := (y - bounds.Y) / bounds.Height
	return mgl32.Vec2{nx*2 - 1, -(ny * 2) + 1}
}

// Plane is the set of points p with Normal·p + Constant = 0.
type Plane struct {
	Normal   mgl32.Vec3
	Constant float32
}

// NewPlane constructs the plane with the given normal passing through point.
//
// Parameters:
//   - normal: the plane normal (normalized by the constructor)
//   - point: a point on the plane
//
// Returns:
//   - Plane: the plane
func NewPlane(normal, point mgl32.Vec3) Plane {
	n := common.SafeNormalize(normal)
	return Plane{Normal: n, Constant: -point.Dot(n)}
}

// DistanceToPoint returns the signed distance from the plane to p.
func (p Plane) DistanceToPoint(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.Constant
}

// IntersectRay returns the point where the ray crosses the plane.
// Rays parallel to the plane, or pointing away from it, miss.
//
// Parameters:
//   - r: the ray
//
// Returns:
//   - mgl32.Vec3: the intersection point
//   - bool: false on a miss
func (p Plane) IntersectRay(r Ray) (mgl32.Vec3, bool) {
	t, ok := p.distance(r)
	if !ok {
		return mgl32.Vec3{}, false
	}
	return r.At(t), true
}

func (p Plane) distance(r Ray) (float32, bool) {
	denom := p.Normal.Dot(r.Direction)
	if math32.Abs(denom) < 1e-9 {
		if p.DistanceToPoint(r.Origin) == 0 {
			return 0, true
		}
		return 0, false
	}
	t := -(r.Origin.Dot(p.Normal) + p.Constant) / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}
