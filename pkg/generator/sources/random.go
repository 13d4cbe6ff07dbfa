// Package sources provides prediction sources for the generator
package sources

import (
	"context"
	"math/rand/v2"

	"github.com/james-see/reelgen/pkg/abc"
)

const (
	// DefaultCeiling keeps scaled pitches at or below 90, the top of the notation table
	DefaultCeiling = 0.87
	// DefaultRepeat is the chance a step repeats the previous prediction
	DefaultRepeat = 0.35
)

// Random produces predictions in [0, ceiling) from a seeded generator.
// It stands in for the model when no inference backend is wired up.
type Random struct {
	seed    uint64
	length  int
	ceiling float64
	repeat  float64
}

// NewRandom creates a Random source emitting one full tune of predictions
func NewRandom(seed uint64) *Random {
	return &Random{
		seed:    seed,
		length:  abc.NotesPerTune,
		ceiling: DefaultCeiling,
		repeat:  DefaultRepeat,
	}
}

// WithCeiling overrides the exclusive upper bound of the predictions
func (r *Random) WithCeiling(c float64) *Random {
	r.ceiling = c
	return r
}

// Name returns the source name
func (r *Random) Name() string {
	return "random"
}

// Seed returns the seed the source was created with
func (r *Random) Seed() uint64 {
	return r.seed
}

// Predict returns the same sequence for the same seed on every call
func (r *Random) Predict(ctx context.Context) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(r.seed, r.seed^0x9E3779B97F4A7C15))
	out := make([]float64, r.length)
	for i := range out {
		if i > 0 && rng.Float64() < r.repeat {
			out[i] = out[i-1]
			continue
		}
		out[i] = rng.Float64() * r.ceiling
	}
	return out, nil
}
