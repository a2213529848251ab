// Package common contains common types that are used throughout this viewer. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Rect is a screen-space rectangle in pixels, origin at the top-left corner.
type Rect struct {
	// X and Y are the coordinates of the top-left corner.
	X, Y float32
	// Width and Height are the extents of the rectangle. A zero extent means the viewport is not laid out yet.
	Width, Height float32
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Color is a linear RGBA color with components in [0, 1].
type Color [4]float32

// HexColor converts a 0xRRGGBB integer into an opaque Color.
//
// Parameters:
//   - hex: the packed color value
//
// Returns:
//   - Color: the unpacked color with alpha 1
func HexColor(hex uint32) Color {
	return Color{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
		1,
	}
}

// WithAlpha returns a copy of the color with its alpha replaced.
func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}
