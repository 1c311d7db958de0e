package core

import "fmt"

// Color is a linear RGB color with float channels, nominally in [0, 1].
// Arithmetic never clamps; only ClampMax and ToRGBA8 bound the channels.
type Color struct {
	R, G, B float64
}

// Named colors used by the built-in scenes
var (
	Black     = NewColorHex(0x000000ff)
	White     = NewColorHex(0xffffffff)
	LightGray = NewColorHex(0xd3d3d3ff)
	DarkGray  = NewColorHex(0x555555ff)
	Red       = NewColorHex(0xe03c31ff)
	Orange    = NewColorHex(0xffa500ff)
	Green     = NewColorHex(0x3cb371ff)
	Blue      = NewColorHex(0x4169e1ff)
	Purple    = NewColorHex(0x8a2be2ff)
)

// NewColor creates a color from float channels
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// NewColorRGB8 creates a color from byte channels
func NewColorRGB8(r, g, b uint8) Color {
	return Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
}

// NewColorHex creates a color from a 0xRRGGBBAA value; alpha is ignored
func NewColorHex(hex uint32) Color {
	return NewColorRGB8(uint8(hex>>24), uint8(hex>>16), uint8(hex>>8))
}

// Add returns the channel-wise sum
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Subtract returns the channel-wise difference
func (c Color) Subtract(other Color) Color {
	return Color{c.R - other.R, c.G - other.G, c.B - other.B}
}

// Scale multiplies every channel by s
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Multiply returns the channel-wise product
func (c Color) Multiply(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// ClampMax limits every channel to at most limit; there is no lower bound
func (c Color) ClampMax(limit float64) Color {
	return Color{min(c.R, limit), min(c.G, limit), min(c.B, limit)}
}

// Luminance returns the perceptual luminance of the color
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func (c Color) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// ToRGBA8 converts each channel to a byte by multiplying by 255 and
// truncating. Channels outside [0, 1] saturate at 0 and 255.
func (c Color) ToRGBA8() (r, g, b, a uint8) {
	return channelToByte(c.R), channelToByte(c.G), channelToByte(c.B), 0xff
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%g, %g, %g)", c.R, c.G, c.B)
}

func channelToByte(v float64) uint8 {
	// NaN fails both comparisons and maps to zero
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v * 255.0)
}
