package abc

import "fmt"

// RangeError reports a sequence whose length cannot be laid out as a tune
type RangeError struct {
	Length int    // Length of the offending sequence
	Want   string // Human readable requirement
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid sequence length %d: %s", e.Length, e.Want)
}

// EncodingError reports a quantized pitch with no notation symbol
type EncodingError struct {
	Index int // Position in the sequence
	Pitch int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("no notation symbol for pitch %d at index %d", e.Pitch, e.Index)
}

// NumericError reports a value the numeric stages cannot process
// (NaN, ±Inf, or a negative pitch)
type NumericError struct {
	Index int
	Stage string
	Value float64
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("%s: invalid value %v at index %d", e.Stage, e.Value, e.Index)
}
