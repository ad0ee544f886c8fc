package canvas

import "image/color"

// Color represents an RGBA color with components in the range [0, 1].
type Color struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1.0}
}

// RGBA creates a color from RGBA components.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Gray creates an opaque gray color.
func Gray(v float64) Color {
	return Color{R: v, G: v, B: v, A: 1.0}
}

// Color converts to the standard color.Color interface.
func (c Color) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// Lerp performs linear interpolation between two colors.
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// CMYK represents a CMYK color with an alpha component, all in [0, 1].
type CMYK struct {
	C, M, Y, K, A float64
}

// RGB converts the CMYK color to its RGB approximation. The alpha
// component is carried over unchanged.
func (c CMYK) RGB() Color {
	return Color{
		R: (1 - c.C) * (1 - c.K),
		G: (1 - c.M) * (1 - c.K),
		B: (1 - c.Y) * (1 - c.K),
		A: c.A,
	}
}

// Paint is a fill or stroke source: either a solid color (possibly in
// both RGB and CMYK representations) or nothing. Shape operations skip
// the corresponding draw phase when the paint is unset.
type Paint struct {
	Set   bool
	Color Color
	// CMYK carries the original CMYK components when the paint was set
	// through a CMYK call; backends with native CMYK support use it,
	// everything else falls back to Color.
	CMYK   *CMYK
	IsCMYK bool
}

// SolidPaint returns a set RGB paint.
func SolidPaint(c Color) Paint {
	return Paint{Set: true, Color: c}
}

// CMYKPaint returns a set CMYK paint carrying both representations.
func CMYKPaint(c CMYK) Paint {
	cc := c
	return Paint{Set: true, Color: c.RGB(), CMYK: &cc, IsCMYK: true}
}

// NoPaint returns an unset paint.
func NoPaint() Paint {
	return Paint{}
}

// Clone returns a deep copy of the paint.
func (p Paint) Clone() Paint {
	q := p
	if p.CMYK != nil {
		c := *p.CMYK
		q.CMYK = &c
	}
	return q
}
