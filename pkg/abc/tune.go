// Package abc turns model pitch predictions into ABC notation reels
package abc

import (
	"fmt"
	"strings"
)

// Header holds the ABC header fields written above the notes
type Header struct {
	Title      string
	Composer   string
	Meter      string
	UnitLength string
	Key        string
}

// DefaultHeader is the header of every generated reel
var DefaultHeader = Header{
	Title:      "GAN Morrison Generated",
	Composer:   "GANs n Reels",
	Meter:      "4/4",
	UnitLength: "1/16",
	Key:        "Dmaj",
}

// String renders the five header lines, each terminated by a newline
func (h Header) String() string {
	return fmt.Sprintf("T: %s\nC: %s\nM: %s\nL: %s\nK: %s\n",
		h.Title, h.Composer, h.Meter, h.UnitLength, h.Key)
}

// Tune is the result of one transcription, keeping every intermediate stage
type Tune struct {
	Predictions []float64
	Pitches     []int    // quantized MIDI pitches
	Symbols     []string // one ABC symbol per pitch
	Bars        []string
	Document    string
}

// AssembleTune writes the header followed by four lines of four bars.
// Every line carries a leading and a trailing bar line.
func AssembleTune(h Header, bars []string) (string, error) {
	if len(bars) != BarsPerTune {
		return "", &RangeError{Length: len(bars), Want: fmt.Sprintf("exactly %d bars", BarsPerTune)}
	}

	lines := make([]string, 0, LinesPerTune)
	for i := 0; i < len(bars); i += BarsPerLine {
		lines = append(lines, "|"+strings.Join(bars[i:i+BarsPerLine], "|")+"|")
	}

	return h.String() + strings.Join(lines, "\n"), nil
}
