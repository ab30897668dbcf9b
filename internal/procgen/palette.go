package procgen

import (
	"encoding/json"
	"fmt"
)

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Unpack decodes a color packed with red in the low byte and alpha in the
// high byte (0xAABBGGRR).
func Unpack(n uint32) Color {
	return Color{
		R: uint8(n),
		G: uint8(n >> 8),
		B: uint8(n >> 16),
		A: uint8(n >> 24),
	}
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xFF}
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Hex())
}

// UnmarshalJSON reads the #rrggbb form written by MarshalJSON as an opaque
// color.
func (c *Color) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err != nil {
		return err
	}
	var r, g, b uint8
	if len(hex) != 7 {
		return fmt.Errorf("color %q is not #rrggbb", hex)
	}
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return fmt.Errorf("color %q is not #rrggbb: %w", hex, err)
	}
	*c = RGB(r, g, b)
	return nil
}

// Palette holds the read-only color tables the generator and the
// presentation draws index into. Palettes are passed by value, so callers
// can never mutate the tables a Generator uses.
type Palette struct {
	Stars [8]Color
	Rings [3]Color
	Moons [3]Color
}

var (
	white           = RGB(255, 255, 255)
	black           = RGB(0, 0, 0)
	grey            = RGB(192, 192, 192)
	darkGrey        = RGB(128, 128, 128)
	veryDarkGrey    = RGB(64, 64, 64)
	yellow          = RGB(255, 255, 0)
	darkYellow      = RGB(128, 128, 0)
	veryDarkYellow  = RGB(64, 64, 0)
	veryDarkMagenta = RGB(64, 0, 64)

	midnightBlue   = RGB(25, 25, 112)
	darkSlateBlue  = RGB(72, 61, 139)
	lightSlateBlue = RGB(132, 112, 255)

	blackHoleOrange = RGB(227, 81, 36)
	blackHoleYellow = RGB(255, 237, 102)
)

var starColors = [8]uint32{
	0xFFFFFFFF, 0xFFD9FFFF, 0xFFA3FFFF, 0xFFFFC8C8,
	0xFFFFCB9D, 0xFF9F9FFF, 0xFF415EFF, 0xFF28199D,
}

// DefaultPalette returns a copy of the standard color tables.
func DefaultPalette() Palette {
	var p Palette
	for i, n := range starColors {
		p.Stars[i] = Unpack(n)
	}
	p.Rings = [3]Color{yellow, darkYellow, veryDarkYellow}
	p.Moons = [3]Color{grey, darkGrey, veryDarkGrey}
	return p
}
