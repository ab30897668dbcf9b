package procgen

const (
	mixIncrement   uint32 = 0xe120fc15
	mixMultiplier1 uint64 = 0x4a39b70d
	mixMultiplier2 uint64 = 0x12fad5c9

	// doubleScale is the signed 32-bit maximum. Raw draws above it map past
	// the nominal upper bound of Float64. Existing galaxies depend on it.
	doubleScale = float64(0x7FFFFFFF)
)

// Seed packs a coordinate into an initial mixer state. Only the low 16 bits
// of each axis are used, so coordinates repeat every 65536 cells.
func Seed(x, y uint32) uint32 {
	return (x&0xFFFF)<<16 | (y & 0xFFFF)
}

// Next advances state by one step and returns the new state together with
// the mixed output value.
func Next(state uint32) (uint32, uint32) {
	state += mixIncrement

	t := uint64(state) * mixMultiplier1
	m1 := uint32(t>>32) ^ uint32(t)

	t = uint64(m1) * mixMultiplier2
	m2 := uint32(t>>32) ^ uint32(t)

	return state, m2
}

// Mixer is a sequential view over Next. The zero value is a valid mixer
// seeded with 0. A Mixer is not safe for concurrent use.
type Mixer struct {
	state uint32
	draws uint64
}

// NewMixer returns a mixer starting at seed.
func NewMixer(seed uint32) *Mixer {
	return &Mixer{state: seed}
}

// State returns the current internal state.
func (m *Mixer) State() uint32 {
	return m.state
}

// Draws returns how many values have been drawn since the mixer was seeded.
func (m *Mixer) Draws() uint64 {
	return m.draws
}

// Uint32 draws the next raw value.
func (m *Mixer) Uint32() uint32 {
	var v uint32
	m.state, v = Next(m.state)
	m.draws++
	return v
}

// Int draws an integer in [min, max) using a plain modulo reduction, so
// ranges that do not divide 2^32 are slightly biased toward low values.
// max must be greater than min.
func (m *Mixer) Int(min, max int) int {
	return int(m.Uint32()%uint32(max-min)) + min
}

// Float64 maps the next raw value onto [min, max] by dividing by the signed
// 32-bit maximum. Draws above 0x7FFFFFFF land beyond max, up to roughly
// min + 2*(max-min).
func (m *Mixer) Float64(min, max float64) float64 {
	// The explicit conversion keeps the compiler from fusing the multiply
	// and add, which would change results on FMA-capable architectures.
	return float64(float64(m.Uint32())/doubleScale*(max-min)) + min
}
