package dice

const (
	lcgModulus    int64 = 2147483647 // 2^31 - 1
	lcgMultiplier int64 = 16807
)

// LCGSource implements Source with the Park–Miller minimal standard generator.
//
// Invariant: state is always in [1, lcgModulus-1]; identical seeds produce
// identical sequences.
type LCGSource struct {
	state int64
}

// NewLCGSource returns a Source seeded with seed.
// Seeds outside [1, 2^31-2] are folded into range so the generator never sticks at 0.
//
// Postcondition: Every value returned by Float64 is in [0, 1).
func NewLCGSource(seed int64) *LCGSource {
	s := seed % lcgModulus
	if s <= 0 {
		s += lcgModulus - 1
	}
	return &LCGSource{state: s}
}

// Float64 advances the generator (state' = state*16807 mod 2^31-1) and returns
// (state'-1)/(2^31-2).
func (l *LCGSource) Float64() float64 {
	l.state = l.state * lcgMultiplier % lcgModulus
	return float64(l.state-1) / float64(lcgModulus-1)
}

// State returns the current generator state.
func (l *LCGSource) State() int64 { return l.state }
