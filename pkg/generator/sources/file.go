package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// File reads predictions that were dumped to disk by the model.
//
// Two layouts are accepted: a JSON array of numbers, or plain text with
// numbers separated by whitespace or commas.
type File struct {
	path string
}

// NewFile creates a File source for path
func NewFile(path string) *File {
	return &File{path: path}
}

// Name returns the source name
func (f *File) Name() string {
	return "file:" + f.path
}

// Predict reads and parses the file
func (f *File) Predict(ctx context.Context) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read predictions file: %w", err)
	}
	return ParsePredictions(data)
}

// ParsePredictions decodes a JSON array or a separated list of numbers
func ParsePredictions(data []byte) ([]float64, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("no predictions found")
	}

	if trimmed[0] == '[' {
		var out []float64
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, fmt.Errorf("invalid JSON predictions: %w", err)
		}
		return out, nil
	}

	fields := strings.FieldsFunc(string(trimmed), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	out := make([]float64, 0, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid prediction %q at position %d: %w", field, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
