package model

import "github.com/ingyamilmolinar/keyoverlay/internal/utils"

// Color is a non-premultiplied 8-bit RGBA colour. It satisfies color.Color.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque colour.
func RGB(r, g, b uint8) Color { return Color{r, g, b, 255} }

// RGBA implements color.Color, returning alpha-premultiplied components.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A)
	a |= a << 8
	r = uint32(c.R) * 0x101 * a / 0xffff
	g = uint32(c.G) * 0x101 * a / 0xffff
	b = uint32(c.B) * 0x101 * a / 0xffff
	return
}

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Lerp interpolates every channel linearly from c to to. t is clamped to [0,1].
func (c Color) Lerp(to Color, t float64) Color {
	t = utils.Clamp(t, 0, 1)
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*(1-t) + float64(b)*t + 0.5)
	}
	return Color{mix(c.R, to.R), mix(c.G, to.G), mix(c.B, to.B), mix(c.A, to.A)}
}
