package procgen

import (
	"fmt"
	"strconv"
)

// RingOrientation is the direction a ring is drawn across its planet.
type RingOrientation int

const (
	RingVertical RingOrientation = iota
	RingDiagonal
	RingAntiDiagonal
)

func (o RingOrientation) String() string {
	switch o {
	case RingDiagonal:
		return "diagonal"
	case RingAntiDiagonal:
		return "anti_diagonal"
	default:
		return "vertical"
	}
}

func (o RingOrientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *RingOrientation) UnmarshalText(text []byte) error {
	switch string(text) {
	case "vertical":
		*o = RingVertical
	case "diagonal":
		*o = RingDiagonal
	case "anti_diagonal":
		*o = RingAntiDiagonal
	default:
		return fmt.Errorf("unknown ring orientation %q", text)
	}
	return nil
}

// RingStyle is how a planet's ring is drawn.
type RingStyle struct {
	Color       Color           `json:"color"`
	Orientation RingOrientation `json:"orientation"`
}

// DrawRingStyle picks a ring color then an orientation from the
// continuation of the system's sequence. Only the first two ring colors
// are ever chosen. Advances the system's mixer by two draws.
func (s *StarSystem) DrawRingStyle() RingStyle {
	color := s.palette.Rings[s.NextInt(0, 2)]
	orientation := RingOrientation(s.NextInt(0, 3))
	return RingStyle{Color: color, Orientation: orientation}
}

// DrawMoonColor picks a moon color from the continuation of the system's
// sequence. Advances the system's mixer by one draw.
func (s *StarSystem) DrawMoonColor() Color {
	return s.palette.Moons[s.NextInt(0, len(s.palette.Moons))]
}

// TemperatureLabel formats the primary body's temperature in kelvin, with a
// B marker for supernova remnants. Empty space and asteroids report 0K.
func (s *StarSystem) TemperatureLabel() string {
	label := strconv.Itoa(s.Temperature())
	if s.IsSupernova() {
		label += "B"
	}
	return label + "K"
}

// Layer is one filled circle of a map marker, outermost first.
type Layer struct {
	Radius int   `json:"radius"`
	Color  Color `json:"color"`
}

// MapLayers describes how the system appears as a cell on the galaxy map.
// Radii derive from the truncated diameter. Empty space has no layers.
func (s *StarSystem) MapLayers() []Layer {
	switch b := s.body.(type) {
	case Star:
		return []Layer{{Radius: int(b.Diameter) / 8, Color: b.Color}}
	case BlackHole:
		d := int(b.Diameter)
		if b.Supernova {
			return []Layer{
				{Radius: d / 6, Color: veryDarkMagenta},
				{Radius: d / 8, Color: midnightBlue},
				{Radius: d / 12, Color: darkSlateBlue},
				{Radius: d / 24, Color: lightSlateBlue},
				{Radius: d / 30, Color: white},
			}
		}
		return []Layer{
			{Radius: d / 8, Color: blackHoleOrange},
			{Radius: d / 10, Color: blackHoleYellow},
			{Radius: d / 12, Color: black},
		}
	case Asteroid:
		return []Layer{{Radius: int(b.Diameter) / 8, Color: veryDarkGrey}}
	}
	return []Layer{}
}
