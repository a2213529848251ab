// Package mesh builds the CPU-side vertex streams the renderer uploads each frame.
package mesh

import (
	"github.com/Carmen-Shannon/topo3d/common"
	"github.com/go-gl/mathgl/mgl32"
)

// VertexStride is the size in bytes of one Vertex as laid out in GPU memory.
const VertexStride = 28

// Vertex is a colored world-space point. The layout matches the renderer's vertex
// input: a vec3<f32> position at location 0 and a vec4<f32> color at location 1.
type Vertex struct {
	Position [3]float32
	Color    common.Color
}

// Batch collects one frame of geometry.
// Lines and Triangles are depth tested against each other; Overlay lines are drawn
// last, on top of everything, for gizmo handles.
type Batch struct {
	Lines     []Vertex
	Triangles []Vertex
	Overlay   []Vertex
}

// boxFaces lists the cube faces as corner indices, where bit 0, 1 and 2 of an index select
// the +X, +Y and +Z half, with the outward normal used for flat shading. Corners run
// clockwise seen from outside; Box emits them reversed so triangles wind counter-clockwise.
var boxFaces = [6]struct {
	corners [4]int
	normal  mgl32.Vec3
}{
	{[4]int{1, 5, 7, 3}, mgl32.Vec3{1, 0, 0}},
	{[4]int{4, 0, 2, 6}, mgl32.Vec3{-1, 0, 0}},
	{[4]int{2, 3, 7, 6}, mgl32.Vec3{0, 1, 0}},
	{[4]int{4, 5, 1, 0}, mgl32.Vec3{0, -1, 0}},
	{[4]int{5, 4, 6, 7}, mgl32.Vec3{0, 0, 1}},
	{[4]int{0, 1, 3, 2}, mgl32.Vec3{0, 0, -1}},
}

// lightDir is the fixed direction faces are shaded against.
var lightDir = mgl32.Vec3{0.3, 1, 0.5}.Normalize()

// Reset empties the batch while keeping its allocations.
func (b *Batch) Reset() {
	b.Lines = b.Lines[:0]
	b.Triangles = b.Triangles[:0]
	b.Overlay = b.Overlay[:0]
}

// Empty reports whether the batch holds no geometry.
func (b *Batch) Empty() bool {
	return len(b.Lines) == 0 && len(b.Triangles) == 0 && len(b.Overlay) == 0
}

// Line appends a depth-tested segment.
//
// Parameters:
//   - from: the start point
//   - to: the end point
//   - c: the segment color
func (b *Batch) Line(from, to mgl32.Vec3, c common.Color) {
	b.Lines = append(b.Lines, Vertex{Position: from, Color: c}, Vertex{Position: to, Color: c})
}

// OverlayLine appends a segment drawn above all other geometry.
//
// Parameters:
//   - from: the start point
//   - to: the end point
//   - c: the segment color
func (b *Batch) OverlayLine(from, to mgl32.Vec3, c common.Color) {
	b.Overlay = append(b.Overlay, Vertex{Position: from, Color: c}, Vertex{Position: to, Color: c})
}

// Grid appends a square grid in the plane y = height, centered on the origin.
// The two center lines use centerColor; the rest use lineColor.
//
// Parameters:
//   - size: the side length of the grid
//   - divisions: the number of cells along each side
//   - height: the y coordinate of the grid plane
//   - centerColor: the color of the lines through the origin
//   - lineColor: the color of every other line
func (b *Batch) Grid(size float32, divisions int, height float32, centerColor, lineColor common.Color) {
	if divisions < 1 {
		return
	}
	half := size / 2
	step := size / float32(divisions)
	center := divisions / 2
	for i := 0; i <= divisions; i++ {
		k := -half + float32(i)*step
		c := lineColor
		if i == center && divisions%2 == 0 {
			c = centerColor
		}
		b.Line(mgl32.Vec3{-half, height, k}, mgl32.Vec3{half, height, k}, c)
		b.Line(mgl32.Vec3{k, height, -half}, mgl32.Vec3{k, height, half}, c)
	}
}

// Axes appends red, green and blue segments along +X, +Y and +Z from origin.
//
// Parameters:
//   - origin: the common start point
//   - length: the segment length
func (b *Batch) Axes(origin mgl32.Vec3, length float32) {
	b.Line(origin, origin.Add(mgl32.Vec3{length, 0, 0}), common.HexColor(0xff0000))
	b.Line(origin, origin.Add(mgl32.Vec3{0, length, 0}), common.HexColor(0x00ff00))
	b.Line(origin, origin.Add(mgl32.Vec3{0, 0, length}), common.HexColor(0x0000ff))
}

// Marker appends three short crossing segments centered on p.
//
// Parameters:
//   - p: the marker center
//   - size: the length of each segment
//   - c: the marker color
func (b *Batch) Marker(p mgl32.Vec3, size float32, c common.Color) {
	h := size / 2
	b.Line(p.Sub(mgl32.Vec3{h, 0, 0}), p.Add(mgl32.Vec3{h, 0, 0}), c)
	b.Line(p.Sub(mgl32.Vec3{0, h, 0}), p.Add(mgl32.Vec3{0, h, 0}), c)
	b.Line(p.Sub(mgl32.Vec3{0, 0, h}), p.Add(mgl32.Vec3{0, 0, h}), c)
}

// Box appends the twelve triangles of a box with the given half extents, transformed by
// world. Each face is flat shaded against a fixed light direction.
//
// Parameters:
//   - world: the box's world matrix
//   - half: the half extents of the unscaled box
//   - c: the base color
func (b *Batch) Box(world mgl32.Mat4, half mgl32.Vec3, c common.Color) {
	var corners [8]mgl32.Vec3
	for i := range corners {
		local := mgl32.Vec3{-half[0], -half[1], -half[2]}
		if i&1 != 0 {
			local[0] = half[0]
		}
		if i&2 != 0 {
			local[1] = half[1]
		}
		if i&4 != 0 {
			local[2] = half[2]
		}
		corners[i] = mgl32.TransformCoordinate(local, world)
	}

	normalMatrix := world.Mat3()
	for _, f := range boxFaces {
		n := common.SafeNormalize(normalMatrix.Mul3x1(f.normal))
		shade := Shade(c, n)
		q := f.corners
		for _, idx := range [6]int{q[0], q[2], q[1], q[0], q[3], q[2]} {
			b.Triangles = append(b.Triangles, Vertex{Position: corners[idx], Color: shade})
		}
	}
}

// Shade scales the color's RGB by a Lambert term for normal n plus a constant ambient.
//
// Parameters:
//   - c: the base color
//   - n: the unit surface normal
//
// Returns:
//   - common.Color: the shaded color with the original alpha
func Shade(c common.Color, n mgl32.Vec3) common.Color {
	k := 0.45 + 0.55*max(n.Dot(lightDir), 0)
	return common.Color{c[0] * k, c[1] * k, c[2] * k, c[3]}
}
