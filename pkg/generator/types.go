// Package generator drives reel generation from a prediction source to ABC and MIDI files
package generator

import (
	"context"

	"github.com/james-see/reelgen/pkg/abc"
)

// Source supplies raw pitch predictions, normally from the generative model
type Source interface {
	Name() string
	Predict(ctx context.Context) ([]float64, error)
}

// Generator runs the transcription pipeline over a Source
type Generator struct {
	source Source
}

// New creates a new Generator reading from the given source
func New(source Source) *Generator {
	return &Generator{source: source}
}

// GetSource returns the current source
func (g *Generator) GetSource() Source {
	return g.source
}

// SetSource sets the source for generation
func (g *Generator) SetSource(source Source) {
	g.source = source
}

// Tune is re-exported so callers of this package need not import abc
type Tune = abc.Tune
