package abc

import "math"

// PitchRange holds the MIDI pitch bounds predictions are scaled into
type PitchRange struct {
	Min int
	Max int
}

// DefaultRange is the pitch window seen in the session tunes
var DefaultRange = PitchRange{Min: 53, Max: 93}

// Center returns floor((Min+Max)/2)
func (r PitchRange) Center() int {
	return int(math.Floor(float64(r.Min+r.Max) / 2))
}

// Span returns the distance from the center to Max
func (r PitchRange) Span() int {
	return r.Max - r.Center()
}

// Scale maps a raw prediction onto the pitch range as v*span + center.
//
// Min only contributes to the center, so predictions in [0,1] land in
// [center, Max]. Values outside [0,1] are not clamped.
func (r PitchRange) Scale(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &NumericError{Stage: "scale", Value: v}
	}
	return v*float64(r.Span()) + float64(r.Center()), nil
}

// Round rounds to the nearest integer, halves going toward +Inf
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}
