package game

import (
	"math/rand/v2"

	"github.com/rs/zerolog"
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for round lifecycle events.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = l.With().Str("component", "controller").Logger()
	}
}

// WithRand overrides the random source for delays and target placement.
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) {
		c.rng = r
	}
}
