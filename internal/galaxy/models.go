package galaxy

import (
	"galaxy-server/internal/procgen"
)

// Window is a rectangle of cells starting at (X, Y). Cells past the edge of
// the coordinate space wrap around.
type Window struct {
	X      uint32 `json:"x"`
	Y      uint32 `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (w Window) Cells() int {
	return w.Width * w.Height
}

// Marker is a non-empty cell as drawn on the galaxy map.
type Marker struct {
	X         uint32          `json:"x"`
	Y         uint32          `json:"y"`
	Kind      procgen.Kind    `json:"kind"`
	Supernova bool            `json:"supernova,omitempty"`
	Layers    []procgen.Layer `json:"layers"`
}

type Map struct {
	Window  Window   `json:"window"`
	Markers []Marker `json:"markers"`
}

type MoonView struct {
	Diameter float64       `json:"diameter"`
	Color    procgen.Color `json:"color"`
}

type PlanetView struct {
	Distance    float64             `json:"distance"`
	Diameter    float64             `json:"diameter"`
	Temperature float64             `json:"temperature"`
	Composition procgen.Composition `json:"composition"`
	Population  int64               `json:"population"`
	Color       procgen.Color       `json:"color"`
	Ring        *procgen.RingStyle  `json:"ring,omitempty"`
	Moons       []MoonView          `json:"moons"`
	Features    []procgen.Feature   `json:"features"`
}

// SystemView is everything a renderer needs to draw one coordinate.
type SystemView struct {
	X                uint32         `json:"x"`
	Y                uint32         `json:"y"`
	Kind             procgen.Kind   `json:"kind"`
	Supernova        bool           `json:"supernova,omitempty"`
	Diameter         float64        `json:"diameter"`
	Temperature      int            `json:"temperature"`
	TemperatureLabel string         `json:"temperature_label"`
	Color            *procgen.Color `json:"color,omitempty"`
	Planets          []PlanetView   `json:"planets"`
}

type SelectionView struct {
	Selected bool        `json:"selected"`
	System   *SystemView `json:"system,omitempty"`
}
