package abc

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantPredictions(n int, v float64) []float64 {
	p := make([]float64, n)
	for i := range p {
		p[i] = v
	}
	return p
}

func TestScaleBounds(t *testing.T) {
	r := DefaultRange
	assert.Equal(t, 73, r.Center())
	assert.Equal(t, 20, r.Span())

	tests := []struct {
		in   float64
		want float64
	}{
		{0, 73},
		{1, 93},
		{0.5, 83},
		{-1, 53},
		{2, 113},
	}
	for _, tt := range tests {
		got, err := r.Scale(tt.in)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-9, "Scale(%v)", tt.in)
	}
}

func TestScaleNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := DefaultRange.Scale(v)
		var ne *NumericError
		require.ErrorAs(t, err, &ne)
		assert.Equal(t, "scale", ne.Stage)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{73.0, 73},
		{73.4, 73},
		{73.5, 74},
		{73.6, 74},
		{-0.5, 0},
		{-1.5, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round(tt.in), "Round(%v)", tt.in)
	}
}

func TestQuantizeIdempotent(t *testing.T) {
	for octave := 0; octave < 10; octave++ {
		for _, s := range DMajor {
			p := s + 12*octave
			// 13 sits in the next octave, where pitch class 1 snaps to 2
			if s == 13 {
				continue
			}
			got, err := DMajor.Quantize(p)
			require.NoError(t, err)
			assert.Equal(t, p, got)
		}
	}
}

func TestQuantizeTieBreak(t *testing.T) {
	// pitch class 5 is 1 away from both 4 and 6; 4 comes first
	for octave := 0; octave < 10; octave++ {
		p := 5 + 12*octave
		got, err := DMajor.Quantize(p)
		require.NoError(t, err)
		assert.Equal(t, 4+12*octave, got)
	}
}

func TestQuantizePitchClasses(t *testing.T) {
	want := map[int]int{0: 2, 1: 2, 2: 2, 3: 2, 4: 4, 5: 4, 6: 6, 7: 7, 8: 7, 9: 9, 10: 9, 11: 11}
	for pc, w := range want {
		got, err := DMajor.Quantize(60 + pc)
		require.NoError(t, err)
		assert.Equal(t, 60+w, got, "pitch class %d", pc)
	}
}

func TestQuantizeNegative(t *testing.T) {
	_, err := DMajor.Quantize(-1)
	var ne *NumericError
	assert.ErrorAs(t, err, &ne)
}

func TestQuantizeEmptySet(t *testing.T) {
	_, err := PitchClassSet{}.Quantize(62)
	assert.ErrorIs(t, err, ErrEmptyPitchClassSet)

	_, err = QuantizeAll(DefaultRange, nil, []float64{0.5})
	assert.ErrorIs(t, err, ErrEmptyPitchClassSet)
}

func TestSymbol(t *testing.T) {
	sym, err := Symbol(54)
	require.NoError(t, err)
	assert.Equal(t, "F,", sym)

	sym, err = Symbol(90)
	require.NoError(t, err)
	assert.Equal(t, "f'", sym)

	_, err = Symbol(91)
	var ee *EncodingError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 91, ee.Pitch)
}

func TestEncodablePitches(t *testing.T) {
	keys := EncodablePitches()
	assert.Len(t, keys, 22)
	assert.Equal(t, 54, keys[0])
	assert.Equal(t, 90, keys[len(keys)-1])

	table := NotationTable()
	table[54] = "x"
	sym, _ := Symbol(54)
	assert.Equal(t, "F,", sym, "NotationTable must return a copy")
}

func TestEncodeSymbolsReportsIndex(t *testing.T) {
	_, err := EncodeSymbols([]int{62, 64, 91, 66})
	var ee *EncodingError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 2, ee.Index)
	assert.Equal(t, 91, ee.Pitch)
}

func TestEncodeBeatGroup(t *testing.T) {
	tests := []struct {
		name  string
		group []string
		want  string
	}{
		{"pairs", []string{"e", "e", "f", "f"}, "e2f2"},
		{"all same", []string{"g", "g", "g", "g"}, "g4"},
		{"all distinct", []string{"a", "b", "c", "d"}, "abcd"},
		{"run of three then one", []string{"a", "a", "a", "b"}, "a3b"},
		{"one then run of three", []string{"a", "b", "b", "b"}, "ab3"},
		{"split run", []string{"a", "b", "b", "a"}, "ab2a"},
		{"octave marks", []string{"F,", "F,", "d'", "d'"}, "F,2d'2"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeBeatGroup(tt.group))
		})
	}
}

func TestBeatGroupsLength(t *testing.T) {
	for _, n := range []int{0, 3, 5, 255} {
		_, err := BeatGroups(make([]string, n))
		var re *RangeError
		assert.ErrorAs(t, err, &re, "length %d", n)
	}

	groups, err := BeatGroups([]string{"a", "b", "c", "d", "e", "f", "g", "a"})
	require.NoError(t, err)
	assert.Len(t, groups, 2)
}

func TestBars(t *testing.T) {
	symbols := strings.Split("eeffggggabcdaaab", "")
	bars, err := Bars(symbols)
	require.NoError(t, err)
	assert.Equal(t, []string{"e2f2g4abcda3b"}, bars)

	_, err = Bars(symbols[:12])
	var re *RangeError
	assert.ErrorAs(t, err, &re)
}

func TestAssembleTuneBarCount(t *testing.T) {
	_, err := AssembleTune(DefaultHeader, make([]string, 15))
	var re *RangeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 15, re.Length)
}

func TestAssembleTuneLayout(t *testing.T) {
	bars := make([]string, BarsPerTune)
	for i := range bars {
		bars[i] = "d16"
	}
	doc, err := AssembleTune(DefaultHeader, bars)
	require.NoError(t, err)

	want := "T: GAN Morrison Generated\n" +
		"C: GANs n Reels\n" +
		"M: 4/4\n" +
		"L: 1/16\n" +
		"K: Dmaj\n" +
		"|d16|d16|d16|d16|\n" +
		"|d16|d16|d16|d16|\n" +
		"|d16|d16|d16|d16|\n" +
		"|d16|d16|d16|d16|"
	assert.Equal(t, want, doc)
}

func TestTranscribeShape(t *testing.T) {
	// 0.05 -> 74 -> "d", every group collapses to d4
	tune, err := Transcribe(constantPredictions(NotesPerTune, 0.05))
	require.NoError(t, err)

	lines := strings.Split(tune.Document, "\n")
	require.Len(t, lines, 9)
	for _, prefix := range []string{"T:", "C:", "M:", "L:", "K:"} {
		assert.True(t, strings.HasPrefix(lines[0], prefix), "header line %q", lines[0])
		lines = lines[1:]
	}
	for _, line := range lines {
		assert.Equal(t, "|d4d4d4d4|d4d4d4d4|d4d4d4d4|d4d4d4d4|", line)
		parts := strings.Split(strings.Trim(line, "|"), "|")
		assert.Len(t, parts, BarsPerLine)
	}

	assert.Len(t, tune.Pitches, NotesPerTune)
	assert.Len(t, tune.Symbols, NotesPerTune)
	assert.Len(t, tune.Bars, BarsPerTune)
}

func TestTranscribeMixed(t *testing.T) {
	// 0 -> 73 (pc 1 -> 2) -> 74 "d"; 0.15 -> 76 "e"; 0.25 -> 78 "f"; 0.3 -> 79 "g"
	pattern := []float64{0, 0, 0.15, 0.15, 0.25, 0.25, 0.25, 0.25, 0, 0.15, 0.25, 0.3, 0.3, 0.3, 0.3, 0}
	preds := make([]float64, 0, NotesPerTune)
	for len(preds) < NotesPerTune {
		preds = append(preds, pattern...)
	}

	tune, err := Transcribe(preds)
	require.NoError(t, err)
	for _, bar := range tune.Bars {
		assert.Equal(t, "d2e2f4defgg3d", bar)
	}
}

func TestTranscribeLength(t *testing.T) {
	_, err := Transcribe(constantPredictions(255, 0.05))
	var re *RangeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 255, re.Length)

	_, err = Transcribe(nil)
	assert.ErrorAs(t, err, &re)
}

func TestTranscribeEncodingError(t *testing.T) {
	preds := constantPredictions(NotesPerTune, 0.05)
	// 0.9 -> 91, which quantizes to itself and has no symbol
	preds[7] = 0.9
	_, err := Transcribe(preds)
	var ee *EncodingError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 7, ee.Index)
	assert.Equal(t, 91, ee.Pitch)
}

func TestTranscribeNumericError(t *testing.T) {
	preds := constantPredictions(NotesPerTune, 0.05)
	preds[42] = math.NaN()
	_, err := Transcribe(preds)
	var ne *NumericError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, 42, ne.Index)

	preds[42] = -10 // scales below zero
	_, err = Transcribe(preds)
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, "quantize", ne.Stage)
}

func TestGenerateDeterministic(t *testing.T) {
	preds := make([]float64, NotesPerTune)
	for i := range preds {
		preds[i] = float64(i%17) / 20
	}
	a, err := Generate(preds)
	require.NoError(t, err)
	b, err := Generate(preds)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
