package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger so every combat roll leaves an audit
// trail. All rolls are logged at debug level with kind, inputs, and result.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Source returns the underlying Source for callers that need raw access.
func (r *Roller) Source() Source { return r.src }

// Chance rolls against probability p and logs the outcome.
//
// Postcondition: result logged at debug with p and the outcome.
func (r *Roller) Chance(kind string, p float64) bool {
	ok := Chance(r.src, p)
	r.logger.Debug("chance roll",
		zap.String("kind", kind),
		zap.Float64("p", p),
		zap.Bool("success", ok),
	)
	return ok
}

// Uniform draws a value in [lo, hi) and logs it.
func (r *Roller) Uniform(kind string, lo, hi float64) float64 {
	v := Uniform(r.src, lo, hi)
	r.logger.Debug("uniform roll",
		zap.String("kind", kind),
		zap.Float64("lo", lo),
		zap.Float64("hi", hi),
		zap.Float64("value", v),
	)
	return v
}

// IntBetween draws an int in [lo, hi] inclusive and logs it.
func (r *Roller) IntBetween(kind string, lo, hi int) int {
	v := IntBetween(r.src, lo, hi)
	r.logger.Debug("int roll",
		zap.String("kind", kind),
		zap.Int("lo", lo),
		zap.Int("hi", hi),
		zap.Int("value", v),
	)
	return v
}
