package debug

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Debug palette.
var (
	ColorWhite          = Color{1, 1, 1, 1}
	ColorCornflowerBlue = RGBA(100, 149, 237, 255)
	ColorOrchid         = RGBA(218, 112, 214, 255)
	ColorGreenYellow    = RGBA(173, 255, 47, 255)
	ColorRed            = Color{1, 0, 0, 1}
)

// RGBA creates a color from 8-bit RGBA values (0-255).
func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: float32(a) / 255.0,
	}
}

// Scale multiplies every channel, alpha included.
func (c Color) Scale(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A * s}
}

// AlphaMultiplied returns the color with alpha scaled by s.
func (c Color) AlphaMultiplied(s float32) Color {
	c.A *= s
	return c
}
