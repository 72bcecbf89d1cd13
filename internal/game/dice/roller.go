package dice

import (
	"math"

	"go.uber.org/zap"
)

// Roller wraps a Source and logger to provide logged draws.
// Every draw is logged at debug level with its label, bounds and result.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that draws from src and logs each draw to logger.
//
// Precondition: src must be non-nil. A nil logger disables logging.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if src == nil {
		panic("dice: NewLoggedRoller requires a non-nil Source")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Float64 returns one raw draw in [0, 1).
func (r *Roller) Float64(label string) float64 {
	v := r.src.Float64()
	r.logger.Debug("dice draw", zap.String("label", label), zap.Float64("value", v))
	return v
}

// Uniform returns a value in [lo, hi) from a single draw.
//
// Precondition: lo <= hi.
func (r *Roller) Uniform(label string, lo, hi float64) float64 {
	v := lo + r.src.Float64()*(hi-lo)
	r.logger.Debug("dice uniform",
		zap.String("label", label),
		zap.Float64("lo", lo),
		zap.Float64("hi", hi),
		zap.Float64("value", v),
	)
	return v
}

// Intn returns a value in [0, n) from a single draw.
//
// Precondition: n > 0.
func (r *Roller) Intn(label string, n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	v := int(math.Floor(r.src.Float64() * float64(n)))
	if v >= n {
		v = n - 1
	}
	r.logger.Debug("dice intn", zap.String("label", label), zap.Int("n", n), zap.Int("value", v))
	return v
}

// Chance reports whether a single draw lands below p.
func (r *Roller) Chance(label string, p float64) bool {
	v := r.src.Float64()
	hit := v < p
	r.logger.Debug("dice chance",
		zap.String("label", label),
		zap.Float64("p", p),
		zap.Float64("value", v),
		zap.Bool("hit", hit),
	)
	return hit
}

// Pick returns a uniformly chosen element of options.
//
// Precondition: len(options) > 0.
func Pick[T any](r *Roller, label string, options []T) T {
	return options[r.Intn(label, len(options))]
}
