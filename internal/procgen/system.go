package procgen

import "log/slog"

// Detail selects how deep generation goes.
type Detail int

const (
	// DetailCoarse stops after classifying the coordinate. Used when
	// scanning many cells for a map view.
	DetailCoarse Detail = iota
	// DetailFull also expands a star's planets and moons.
	DetailFull
)

func (d Detail) String() string {
	if d == DetailFull {
		return "full"
	}
	return "coarse"
}

// Kind is the classification a coordinate resolves to.
type Kind string

const (
	KindEmpty     Kind = "empty"
	KindStar      Kind = "star"
	KindBlackHole Kind = "black_hole"
	KindAsteroid  Kind = "asteroid"
)

// Body is the primary object found at a coordinate: Empty, Star, BlackHole
// or Asteroid.
type Body interface {
	Kind() Kind
	body()
}

// Empty marks a coordinate with nothing in it.
type Empty struct{}

// Star is a star and, when generated with DetailFull, its planets.
type Star struct {
	Diameter    float64  `json:"diameter"`
	Color       Color    `json:"color"`
	Temperature int      `json:"temperature"`
	Planets     []Planet `json:"planets,omitempty"`
	// Expanded reports whether Planets was computed. An unexpanded star
	// may still have planets.
	Expanded bool `json:"expanded"`
}

// BlackHole is a black hole, possibly a supernova remnant.
type BlackHole struct {
	Supernova   bool    `json:"supernova"`
	Diameter    float64 `json:"diameter"`
	Temperature int     `json:"temperature"`
}

// Asteroid is a lone asteroid.
type Asteroid struct {
	Diameter float64 `json:"diameter"`
}

func (Empty) Kind() Kind     { return KindEmpty }
func (Star) Kind() Kind      { return KindStar }
func (BlackHole) Kind() Kind { return KindBlackHole }
func (Asteroid) Kind() Kind  { return KindAsteroid }

func (Empty) body()     {}
func (Star) body()      {}
func (BlackHole) body() {}
func (Asteroid) body()  {}

// Coordinate identifies one generation site.
type Coordinate struct {
	X uint32 `json:"x"`
	Y uint32 `json:"y"`
}

// StarSystem is everything generated for one coordinate. Its generated
// fields never change after construction; the embedded mixer keeps
// advancing when NextInt, NextDouble or the Draw* methods are called.
type StarSystem struct {
	coord   Coordinate
	detail  Detail
	body    Body
	palette Palette
	mixer   Mixer
}

// Generator derives star systems from coordinates using a fixed palette.
// A Generator holds no mutable state and may be shared between goroutines.
type Generator struct {
	palette Palette
	logger  *slog.Logger
}

// NewGenerator returns a generator drawing colors from palette. A nil
// logger logs through slog.Default at the time of each call.
func NewGenerator(palette Palette, logger *slog.Logger) *Generator {
	return &Generator{
		palette: palette,
		logger:  logger,
	}
}

var defaultGenerator = NewGenerator(DefaultPalette(), nil)

// Generate derives the system at (x, y) with the default palette.
func Generate(x, y uint32, detail Detail) *StarSystem {
	return defaultGenerator.Generate(x, y, detail)
}

// Palette returns the generator's color tables.
func (g *Generator) Palette() Palette {
	return g.palette
}

// Generate derives the system at (x, y). The same arguments always yield
// the same system.
func (g *Generator) Generate(x, y uint32, detail Detail) *StarSystem {
	s := &StarSystem{
		coord:   Coordinate{X: x, Y: y},
		detail:  detail,
		palette: g.palette,
		mixer:   Mixer{state: Seed(x, y)},
	}
	s.body = g.classify(&s.mixer, detail)
	return s
}

// classify runs the existence gates in their fixed order. Each gate
// consumes draws only when reached.
func (g *Generator) classify(m *Mixer, detail Detail) Body {
	if m.Int(0, 20) != 1 {
		if m.Int(0, 1000) == 1 {
			bh := BlackHole{Supernova: m.Int(0, 4) == 1}
			bh.Diameter = m.Float64(10.0, 40.0)
			bh.Temperature = drawTemperature(m, bh.Diameter)
			return bh
		}

		if m.Int(0, 300) == 1 {
			return Asteroid{Diameter: m.Float64(5.0, 25.0)}
		}
		return Empty{}
	}

	star := Star{Diameter: m.Float64(10.0, 40.0)}
	star.Color = g.palette.Stars[m.Int(0, len(g.palette.Stars))]
	star.Temperature = drawTemperature(m, star.Diameter)

	if detail != DetailFull {
		return star
	}

	star.Planets = g.expand(m)
	star.Expanded = true
	return star
}

// drawTemperature scales a base temperature by diameter, truncated toward
// zero.
func drawTemperature(m *Mixer, diameter float64) int {
	return int(float64(m.Int(500, 3000)) * diameter)
}

// expand generates a star's planets. Each planet takes the running orbital
// distance, which then grows by at least 20 before the planet's own draws.
func (g *Generator) expand(m *Mixer) []Planet {
	distance := m.Float64(60.0, 200.0)
	count := m.Int(0, maxPlanets)

	planets := make([]Planet, 0, count)
	for range count {
		placed := distance
		distance += m.Float64(20.0, 200.0)
		planets = append(planets, g.generatePlanet(m, placed))
	}
	return planets
}

func (g *Generator) log() *slog.Logger {
	if g.logger != nil {
		return g.logger
	}
	return slog.Default().With("component", "procgen")
}

// Coordinate returns the coordinate the system was generated from.
func (s *StarSystem) Coordinate() Coordinate { return s.coord }

// Detail returns the depth the system was generated with.
func (s *StarSystem) Detail() Detail { return s.detail }

// Body returns the classified primary body.
func (s *StarSystem) Body() Body { return s.body }

// Kind returns the classification of the coordinate.
func (s *StarSystem) Kind() Kind { return s.body.Kind() }

func (s *StarSystem) HasStar() bool      { return s.Kind() == KindStar }
func (s *StarSystem) HasBlackHole() bool { return s.Kind() == KindBlackHole }
func (s *StarSystem) HasAsteroid() bool  { return s.Kind() == KindAsteroid }

// IsSupernova reports whether the system is a supernova remnant. It is only
// ever true for black holes.
func (s *StarSystem) IsSupernova() bool {
	bh, ok := s.body.(BlackHole)
	return ok && bh.Supernova
}

// Star returns the star, if the coordinate holds one.
func (s *StarSystem) Star() (Star, bool) {
	star, ok := s.body.(Star)
	return star, ok
}

// BlackHole returns the black hole, if the coordinate holds one.
func (s *StarSystem) BlackHole() (BlackHole, bool) {
	bh, ok := s.body.(BlackHole)
	return bh, ok
}

// Asteroid returns the asteroid, if the coordinate holds one.
func (s *StarSystem) Asteroid() (Asteroid, bool) {
	a, ok := s.body.(Asteroid)
	return a, ok
}

// Planets returns the star's planets in orbital order. It is empty for
// anything but a star generated with DetailFull. The slice is owned by the
// system and must not be modified.
func (s *StarSystem) Planets() []Planet {
	if star, ok := s.body.(Star); ok && star.Expanded {
		return star.Planets
	}
	return []Planet{}
}

// Diameter returns the primary body's diameter, or 0 for empty space.
func (s *StarSystem) Diameter() float64 {
	switch b := s.body.(type) {
	case Star:
		return b.Diameter
	case BlackHole:
		return b.Diameter
	case Asteroid:
		return b.Diameter
	}
	return 0
}

// Temperature returns the star's or black hole's temperature, or 0.
func (s *StarSystem) Temperature() int {
	switch b := s.body.(type) {
	case Star:
		return b.Temperature
	case BlackHole:
		return b.Temperature
	}
	return 0
}

// MixerState returns the current state of the system's mixer.
func (s *StarSystem) MixerState() uint32 { return s.mixer.State() }

// Draws returns how many values the system's mixer has produced, including
// draws made after construction.
func (s *StarSystem) Draws() uint64 { return s.mixer.Draws() }

// NextInt continues the system's generation sequence with an integer in
// [min, max). It advances the system's mixer and is not safe for
// concurrent use.
func (s *StarSystem) NextInt(min, max int) int {
	return s.mixer.Int(min, max)
}

// NextDouble continues the system's generation sequence with a float (see
// Mixer.Float64). It advances the system's mixer and is not safe for
// concurrent use.
func (s *StarSystem) NextDouble(min, max float64) float64 {
	return s.mixer.Float64(min, max)
}
