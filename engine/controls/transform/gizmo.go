package transform

import (
	"github.com/Carmen-Shannon/topo3d/common"
	"github.com/Carmen-Shannon/topo3d/engine/raycast"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Mode selects which property of the attached object the gizmo edits.
type Mode string

const (
	ModeTranslate Mode = "translate"
	ModeRotate    Mode = "rotate"
	ModeScale     Mode = "scale"
)

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModeTranslate || m == ModeRotate || m == ModeScale
}

// Space selects the frame the gizmo axes are aligned to.
type Space string

const (
	SpaceWorld Space = "world"
	SpaceLocal Space = "local"
)

// Plane names used by SetActivePlane. XYZE always faces the eye.
const (
	PlaneXY   = "XY"
	PlaneYZ   = "YZ"
	PlaneXZ   = "XZ"
	PlaneXYZE = "XYZE"
)

var (
	colorX         = common.HexColor(0xff0000)
	colorY         = common.HexColor(0x00ff00)
	colorZ         = common.HexColor(0x0000ff)
	colorXY        = common.HexColor(0xffff00)
	colorYZ        = common.HexColor(0x00ffff)
	colorXZ        = common.HexColor(0xff00ff)
	colorXYZ       = common.HexColor(0xffffff)
	colorE         = common.HexColor(0xcccc00)
	colorXYZE      = common.HexColor(0x787878)
	colorHighlight = common.HexColor(0xffff00)
)

// Pose places a gizmo in the world: centered on the object, uniformly scaled so it keeps a
// constant apparent size, and rotated to the object's frame in local space.
type Pose struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    float32
}

// Segment is one world-space line of a gizmo handle.
type Segment struct {
	From  mgl32.Vec3
	To    mgl32.Vec3
	Color common.Color
}

// Gizmo is the visual and pickable handle set for one transform mode.
type Gizmo interface {
	// Mode returns the transform mode this gizmo edits.
	//
	// Returns:
	//   - Mode: the gizmo's mode tag
	Mode() Mode

	// UpdatePose moves the gizmo to pose and records the eye vector used for eye-facing handles.
	//
	// Parameters:
	//   - pose: the gizmo pose
	//   - eye: unit vector from the gizmo toward the camera
	UpdatePose(pose Pose, eye mgl32.Vec3)

	// Pose returns the pose set by the last UpdatePose.
	//
	// Returns:
	//   - Pose: the gizmo pose
	Pose() Pose

	// SetActivePlane selects the drag plane for axis, preferring the candidate most face-on to eye.
	//
	// Parameters:
	//   - axis: the picked handle name
	//   - eye: unit vector from the gizmo toward the camera in world space
	SetActivePlane(axis string, eye mgl32.Vec3)

	// ActivePlane returns the selected drag plane in world space, through the gizmo center.
	//
	// Returns:
	//   - raycast.Plane: the drag plane
	ActivePlane() raycast.Plane

	// ActivePlaneName returns the name of the selected drag plane.
	//
	// Returns:
	//   - string: one of PlaneXY, PlaneYZ, PlaneXZ, PlaneXYZE
	ActivePlaneName() string

	// Highlight marks axis as hovered or active. An empty axis clears the highlight.
	//
	// Parameters:
	//   - axis: the handle name to highlight
	Highlight(axis string)

	// Highlighted returns the highlighted handle name.
	//
	// Returns:
	//   - string: the highlighted handle, or ""
	Highlighted() string

	// Pickers returns the world-space hit volumes, each named after its handle.
	//
	// Returns:
	//   - []raycast.Pickable: the pickers
	Pickers() []raycast.Pickable

	// Handles returns the world-space line segments to draw.
	//
	// Returns:
	//   - []Segment: the handle lines
	Handles() []Segment
}

// NewGizmo creates the gizmo for mode. Unknown modes fall back to translate.
//
// Parameters:
//   - mode: the transform mode
//
// Returns:
//   - Gizmo: the gizmo
func NewGizmo(mode Mode) Gizmo {
	base := gizmoBase{
		pose:  Pose{Rotation: mgl32.QuatIdent(), Scale: 1},
		eye:   mgl32.Vec3{0, 0, 1},
		plane: PlaneXYZE,
	}
	switch mode {
	case ModeRotate:
		return &rotateGizmo{gizmoBase: base}
	case ModeScale:
		return &scaleGizmo{gizmoBase: base}
	}
	return &translateGizmo{gizmoBase: base}
}

type gizmoBase struct {
	pose        Pose
	eye         mgl32.Vec3
	plane       string
	highlighted string
}

func (g *gizmoBase) UpdatePose(pose Pose, eye mgl32.Vec3) {
	g.pose = pose
	g.eye = eye
}

func (g *gizmoBase) Pose() Pose {
	return g.pose
}

func (g *gizmoBase) ActivePlane() raycast.Plane {
	return raycast.NewPlane(g.planeNormal(g.plane), g.pose.Position)
}

func (g *gizmoBase) ActivePlaneName() string {
	return g.plane
}

func (g *gizmoBase) Highlight(axis string) {
	g.highlighted = axis
}

func (g *gizmoBase) Highlighted() string {
	return g.highlighted
}

func (g *gizmoBase) planeNormal(name string) mgl32.Vec3 {
	switch name {
	case PlaneXY:
		return g.pose.Rotation.Rotate(mgl32.Vec3{0, 0, 1})
	case PlaneYZ:
		return g.pose.Rotation.Rotate(mgl32.Vec3{1, 0, 0})
	case PlaneXZ:
		return g.pose.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
	}
	return g.eye
}

// toWorld maps a point in unit gizmo space to world space.
func (g *gizmoBase) toWorld(local mgl32.Vec3) mgl32.Vec3 {
	return g.pose.Position.Add(g.pose.Rotation.Rotate(local.Mul(g.pose.Scale)))
}

func (g *gizmoBase) box(name string, center, half mgl32.Vec3) *raycast.Box {
	return &raycast.Box{
		Label:       name,
		Center:      g.toWorld(center),
		HalfExtents: half.Mul(g.pose.Scale),
		Rotation:    g.pose.Rotation,
	}
}

func (g *gizmoBase) color(axis string, base common.Color) common.Color {
	if axis == g.highlighted && axis != "" {
		return colorHighlight
	}
	return base
}

func (g *gizmoBase) line(axis string, from, to mgl32.Vec3, base common.Color) Segment {
	return Segment{From: g.toWorld(from), To: g.toWorld(to), Color: g.color(axis, base)}
}

// circle approximates a circle of radius r in unit gizmo space spanned by u and v.
func (g *gizmoBase) circle(axis string, u, v mgl32.Vec3, r float32, base common.Color) []Segment {
	const n = 48
	out := make([]Segment, 0, n)
	col := g.color(axis, base)
	prev := g.toWorld(u.Mul(r))
	for i := 1; i <= n; i++ {
		a := 2 * math32.Pi * float32(i) / n
		cur := g.toWorld(u.Mul(r * math32.Cos(a)).Add(v.Mul(r * math32.Sin(a))))
		out = append(out, Segment{From: prev, To: cur, Color: col})
		prev = cur
	}
	return out
}

// square outlines the rectangle with corners a and b lying in the plane spanned by two axes.
func (g *gizmoBase) square(axis string, center, du, dv mgl32.Vec3, base common.Color) []Segment {
	c := [4]mgl32.Vec3{
		center.Sub(du).Sub(dv),
		center.Add(du).Sub(dv),
		center.Add(du).Add(dv),
		center.Sub(du).Add(dv),
	}
	out := make([]Segment, 4)
	for i := range c {
		out[i] = g.line(axis, c[i], c[(i+1)%4], base)
	}
	return out
}

func (g *gizmoBase) cube(axis string, center mgl32.Vec3, h float32, base common.Color) []Segment {
	x, y, z := mgl32.Vec3{h, 0, 0}, mgl32.Vec3{0, h, 0}, mgl32.Vec3{0, 0, h}
	out := g.square(axis, center.Sub(z), x, y, base)
	out = append(out, g.square(axis, center.Add(z), x, y, base)...)
	for _, s := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
		corner := center.Add(x.Mul(s[0])).Add(y.Mul(s[1]))
		out = append(out, g.line(axis, corner.Sub(z), corner.Add(z), base))
	}
	return out
}

// eyeBasis returns two unit vectors spanning the plane facing the eye, in unit gizmo space.
func (g *gizmoBase) eyeBasis() (mgl32.Vec3, mgl32.Vec3) {
	eye := g.pose.Rotation.Inverse().Rotate(g.eye)
	u := common.SafeNormalize(eye.Cross(mgl32.Vec3{0, 1, 0}))
	if u.Len() == 0 {
		u = mgl32.Vec3{1, 0, 0}
	}
	return u, eye.Cross(u)
}

// facingPlane picks the axis-aligned plane containing a single axis that is most face-on to
// the eye. Plane handles and the free handle map directly.
func (g *gizmoBase) facingPlane(axis string, eye mgl32.Vec3) string {
	e := g.pose.Rotation.Inverse().Rotate(eye)
	switch axis {
	case "X":
		if math32.Abs(e[1]) > math32.Abs(e[2]) {
			return PlaneXZ
		}
		return PlaneXY
	case "Y":
		if math32.Abs(e[0]) > math32.Abs(e[2]) {
			return PlaneYZ
		}
		return PlaneXY
	case "Z":
		if math32.Abs(e[0]) > math32.Abs(e[1]) {
			return PlaneYZ
		}
		return PlaneXZ
	case "XYZ":
		return PlaneXYZE
	case PlaneXY, PlaneYZ, PlaneXZ:
		return axis
	}
	return g.plane
}

type translateGizmo struct {
	gizmoBase
}

var _ Gizmo = &translateGizmo{}

func (g *translateGizmo) Mode() Mode {
	return ModeTranslate
}

func (g *translateGizmo) SetActivePlane(axis string, eye mgl32.Vec3) {
	g.plane = g.facingPlane(axis, eye)
}

func (g *translateGizmo) Pickers() []raycast.Pickable {
	return []raycast.Pickable{
		g.box("X", mgl32.Vec3{0.6, 0, 0}, mgl32.Vec3{0.5, 0.2, 0.2}),
		g.box("Y", mgl32.Vec3{0, 0.6, 0}, mgl32.Vec3{0.2, 0.5, 0.2}),
		g.box("Z", mgl32.Vec3{0, 0, 0.6}, mgl32.Vec3{0.2, 0.2, 0.5}),
		&raycast.Sphere{Label: "XYZ", Center: g.pose.Position, Radius: 0.2 * g.pose.Scale},
		g.box("XY", mgl32.Vec3{0.2, 0.2, 0}, mgl32.Vec3{0.2, 0.2, 0.01}),
		g.box("YZ", mgl32.Vec3{0, 0.2, 0.2}, mgl32.Vec3{0.01, 0.2, 0.2}),
		g.box("XZ", mgl32.Vec3{0.2, 0, 0.2}, mgl32.Vec3{0.2, 0.01, 0.2}),
	}
}

func (g *translateGizmo) Handles() []Segment {
	var out []Segment
	out = append(out,
		g.line("X", mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, colorX),
		g.line("Y", mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, colorY),
		g.line("Z", mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, colorZ),
	)
	const h = 0.145
	out = append(out, g.square("XY", mgl32.Vec3{0.15, 0.15, 0}, mgl32.Vec3{h, 0, 0}, mgl32.Vec3{0, h, 0}, colorXY)...)
	out = append(out, g.square("YZ", mgl32.Vec3{0, 0.15, 0.15}, mgl32.Vec3{0, h, 0}, mgl32.Vec3{0, 0, h}, colorYZ)...)
	out = append(out, g.square("XZ", mgl32.Vec3{0.15, 0, 0.15}, mgl32.Vec3{h, 0, 0}, mgl32.Vec3{0, 0, h}, colorXZ)...)
	out = append(out, g.cube("XYZ", mgl32.Vec3{}, 0.07, colorXYZ)...)
	return out
}

type rotateGizmo struct {
	gizmoBase
}

var _ Gizmo = &rotateGizmo{}

func (g *rotateGizmo) Mode() Mode {
	return ModeRotate
}

// SetActivePlane uses the plane perpendicular to the rotation axis; the eye ring rotates in
// the eye-facing plane.
func (g *rotateGizmo) SetActivePlane(axis string, _ mgl32.Vec3) {
	switch axis {
	case "E", "XYZE":
		g.plane = PlaneXYZE
	case "X":
		g.plane = PlaneYZ
	case "Y":
		g.plane = PlaneXZ
	case "Z":
		g.plane = PlaneXY
	}
}

func (g *rotateGizmo) Pickers() []raycast.Pickable {
	ring := func(name string, normal mgl32.Vec3, radius float32) *raycast.Ring {
		return &raycast.Ring{
			Label:     name,
			Center:    g.pose.Position,
			Normal:    normal,
			Radius:    radius * g.pose.Scale,
			Thickness: 0.12 * g.pose.Scale,
		}
	}
	return []raycast.Pickable{
		ring("X", g.planeNormal(PlaneYZ), 1),
		ring("Y", g.planeNormal(PlaneXZ), 1),
		ring("Z", g.planeNormal(PlaneXY), 1),
		ring("E", g.eye, 1.25),
	}
}

func (g *rotateGizmo) Handles() []Segment {
	x, y, z := mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}
	u, v := g.eyeBasis()
	var out []Segment
	out = append(out, g.circle("X", y, z, 1, colorX)...)
	out = append(out, g.circle("Y", z, x, 1, colorY)...)
	out = append(out, g.circle("Z", x, y, 1, colorZ)...)
	out = append(out, g.circle("E", u, v, 1.25, colorE)...)
	out = append(out, g.circle("XYZE", u, v, 1, colorXYZE)...)
	return out
}

type scaleGizmo struct {
	gizmoBase
}

var _ Gizmo = &scaleGizmo{}

func (g *scaleGizmo) Mode() Mode {
	return ModeScale
}

func (g *scaleGizmo) SetActivePlane(axis string, eye mgl32.Vec3) {
	switch axis {
	case "X", "Y", "Z", "XYZ":
		g.plane = g.facingPlane(axis, eye)
	}
}

func (g *scaleGizmo) Pickers() []raycast.Pickable {
	return []raycast.Pickable{
		g.box("X", mgl32.Vec3{0.6, 0, 0}, mgl32.Vec3{0.5, 0.2, 0.2}),
		g.box("Y", mgl32.Vec3{0, 0.6, 0}, mgl32.Vec3{0.2, 0.5, 0.2}),
		g.box("Z", mgl32.Vec3{0, 0, 0.6}, mgl32.Vec3{0.2, 0.2, 0.5}),
		g.box("XYZ", mgl32.Vec3{}, mgl32.Vec3{0.2, 0.2, 0.2}),
	}
}

func (g *scaleGizmo) Handles() []Segment {
	var out []Segment
	for _, a := range []struct {
		name string
		dir  mgl32.Vec3
		col  common.Color
	}{
		{"X", mgl32.Vec3{1, 0, 0}, colorX},
		{"Y", mgl32.Vec3{0, 1, 0}, colorY},
		{"Z", mgl32.Vec3{0, 0, 1}, colorZ},
	} {
		out = append(out, g.line(a.name, mgl32.Vec3{}, a.dir, a.col))
		out = append(out, g.cube(a.name, a.dir, 0.05, a.col)...)
	}
	out = append(out, g.cube("XYZ", mgl32.Vec3{}, 0.0625, colorXYZ)...)
	return out
}
