package abc

import (
	"fmt"
	"math"
)

// Transcribe runs the full pipeline over exactly NotesPerTune predictions
// using DefaultRange, DMajor and DefaultHeader
func Transcribe(predictions []float64) (*Tune, error) {
	if len(predictions) != NotesPerTune {
		return nil, &RangeError{Length: len(predictions), Want: fmt.Sprintf("exactly %d predictions", NotesPerTune)}
	}

	pitches, err := QuantizeAll(DefaultRange, DMajor, predictions)
	if err != nil {
		return nil, err
	}

	symbols, err := EncodeSymbols(pitches)
	if err != nil {
		return nil, err
	}

	bars, err := Bars(symbols)
	if err != nil {
		return nil, err
	}

	doc, err := AssembleTune(DefaultHeader, bars)
	if err != nil {
		return nil, err
	}

	return &Tune{
		Predictions: append([]float64(nil), predictions...),
		Pitches:     pitches,
		Symbols:     symbols,
		Bars:        bars,
		Document:    doc,
	}, nil
}

// Generate returns only the ABC document for the predictions
func Generate(predictions []float64) (string, error) {
	tune, err := Transcribe(predictions)
	if err != nil {
		return "", err
	}
	return tune.Document, nil
}

// QuantizeAll scales, rounds and quantizes each prediction in order
func QuantizeAll(r PitchRange, set PitchClassSet, predictions []float64) ([]int, error) {
	pitches := make([]int, len(predictions))
	for i, v := range predictions {
		scaled, err := r.Scale(v)
		if err != nil {
			return nil, withIndex(err, i)
		}
		if math.Abs(scaled) > math.MaxInt32 {
			return nil, &NumericError{Index: i, Stage: "round", Value: scaled}
		}
		q, err := set.Quantize(Round(scaled))
		if err != nil {
			return nil, withIndex(err, i)
		}
		pitches[i] = q
	}
	return pitches, nil
}

func withIndex(err error, i int) error {
	if ne, ok := err.(*NumericError); ok {
		ne.Index = i
	}
	return err
}
