package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged randomness.
// All draws are logged at debug level with the kind of draw, its bound, and the value.
//
// Roller itself satisfies Source, so it can be handed to anything that consumes one.
type Roller struct {
	src    Source
	logger *zap.Logger
	draws  int
}

// NewLoggedRoller creates a Roller that draws from src and logs each draw to logger.
//
// Precondition: src must be non-nil. A nil logger is replaced by a no-op logger.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Intn draws from the wrapped Source and logs the result.
func (r *Roller) Intn(n int) int {
	v := r.src.Intn(n)
	r.draws++
	r.logger.Debug("rng draw",
		zap.String("kind", "intn"),
		zap.Int("n", n),
		zap.Int("value", v),
		zap.Int("draw", r.draws),
	)
	return v
}

// Float64 draws from the wrapped Source and logs the result.
func (r *Roller) Float64() float64 {
	v := r.src.Float64()
	r.draws++
	r.logger.Debug("rng draw",
		zap.String("kind", "float64"),
		zap.Float64("value", v),
		zap.Int("draw", r.draws),
	)
	return v
}

// Draws returns the number of values consumed through this Roller.
func (r *Roller) Draws() int { return r.draws }
