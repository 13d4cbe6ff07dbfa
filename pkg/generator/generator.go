package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/james-see/reelgen/pkg/abc"
)

// DefaultABCFilename is the name offered when downloading a tune
const DefaultABCFilename = "abc_notation.txt"

// Format represents an output file format
type Format string

const (
	FormatABC     Format = "abc"
	FormatMIDI    Format = "midi"
	FormatUnknown Format = "unknown"
)

// DetectFormat detects the output format of a file based on extension
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".abc", ".txt":
		return FormatABC
	case ".mid", ".midi":
		return FormatMIDI
	default:
		return FormatUnknown
	}
}

// Generate asks the source for predictions and transcribes them
func (g *Generator) Generate(ctx context.Context) (*Tune, error) {
	if g.source == nil {
		return nil, errors.New("no source configured")
	}

	predictions, err := g.source.Predict(ctx)
	if err != nil {
		return nil, fmt.Errorf("prediction failed (%s): %w", g.source.Name(), err)
	}

	tune, err := abc.Transcribe(predictions)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}
	return tune, nil
}

// Export renders a tune in the requested format
func Export(tune *Tune, format Format) ([]byte, error) {
	if tune == nil {
		return nil, errors.New("nil tune")
	}

	switch format {
	case FormatABC:
		return []byte(tune.Document), nil
	case FormatMIDI:
		return NewMIDIConverter().GenerateMIDI(tune)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// ExportFile writes a tune to outputPath, choosing the format from the extension
func ExportFile(tune *Tune, outputPath string) error {
	format := DetectFormat(outputPath)
	if format == FormatUnknown {
		return errors.New("cannot determine output format from filename")
	}

	data, err := Export(tune, format)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}

// GetSupportedFormats returns the output formats ExportFile understands
func GetSupportedFormats() []string {
	return []string{
		"abc (.abc, .txt)",
		"midi (.mid, .midi)",
	}
}
