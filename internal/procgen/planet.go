package procgen

// Planet is one orbiting body of a star system.
type Planet struct {
	Distance    float64     `json:"distance"`
	Diameter    float64     `json:"diameter"`
	Temperature float64     `json:"temperature"`
	Composition Composition `json:"composition"`
	Population  int64       `json:"population"`
	Ring        bool        `json:"ring"`
	Color       Color       `json:"color"`
	Moons       []float64   `json:"moons"`
}

const (
	maxPlanets = 10
	maxMoons   = 5
)

// generatePlanet draws a planet's attributes in their fixed order. The
// caller has already placed it at distance.
func (g *Generator) generatePlanet(m *Mixer, distance float64) Planet {
	p := Planet{Distance: distance}

	p.Diameter = m.Float64(4.0, 20.0)
	p.Temperature = m.Float64(-200.0, 300.0)

	p.Composition = Composition{
		Foliage:  m.Float64(0.0, 1.0),
		Minerals: m.Float64(0.0, 1.0),
		Gases:    m.Float64(0.0, 1.0),
		Water:    m.Float64(0.0, 1.0),
	}
	p.Color = g.palette.Stars[m.Int(0, len(g.palette.Stars))]

	if err := p.Composition.Normalize(); err != nil {
		g.log().Warn("Falling back to even composition split",
			"error", err,
			"mixer_state", m.State(),
		)
		p.Composition = EvenComposition
	}

	p.Population = int64(max(m.Int(-5000000, 20000000), 0))
	p.Ring = m.Int(0, 10) == 1

	moons := max(m.Int(-maxMoons, maxMoons), 0)
	p.Moons = make([]float64, 0, moons)
	for range moons {
		p.Moons = append(p.Moons, m.Float64(1.0, 5.0))
	}

	return p
}

// Feature is a notable surface trait of a planet.
type Feature string

const (
	FeatureWater    Feature = "water"
	FeatureFoliage  Feature = "foliage"
	FeatureMinerals Feature = "minerals"
)

// Features lists the traits whose fraction exceeds one half, in display
// order.
func (p Planet) Features() []Feature {
	features := []Feature{}
	if p.Composition.Water > 0.5 {
		features = append(features, FeatureWater)
	}
	if p.Composition.Foliage > 0.5 {
		features = append(features, FeatureFoliage)
	}
	if p.Composition.Minerals > 0.5 {
		features = append(features, FeatureMinerals)
	}
	return features
}
