package framecore

import "image/color"

// Color represents a non-premultiplied color with red, green, blue, and
// alpha components. Each component is in the range [0, 1].
type Color struct {
	R, G, B, A float32
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA creates a color from RGBA components.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Common colors.
var (
	ColorTransparent = Color{}
	ColorBlack       = RGB(0, 0, 0)
	ColorWhite       = RGB(1, 1, 1)
)

// Color converts to the standard color.Color interface.
func (c Color) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// IsOpaque reports whether the color is fully opaque.
func (c Color) IsOpaque() bool {
	return c.A >= 1
}

func clamp255(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
