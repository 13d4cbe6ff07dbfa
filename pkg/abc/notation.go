package abc

import "sort"

// noteToABC maps quantized MIDI pitches to ABC note symbols
var noteToABC = map[int]string{
	54: "F,",
	55: "G,",
	57: "A,",
	59: "B,",
	61: "C,",
	62: "D",
	64: "E",
	66: "F",
	67: "G",
	69: "A",
	71: "B",
	73: "C",
	74: "d",
	76: "e",
	78: "f",
	79: "g",
	81: "a",
	83: "b",
	85: "c",
	86: "d'",
	88: "e'",
	90: "f'",
}

// Symbol returns the ABC symbol for a quantized pitch
func Symbol(pitch int) (string, error) {
	sym, ok := noteToABC[pitch]
	if !ok {
		return "", &EncodingError{Pitch: pitch}
	}
	return sym, nil
}

// EncodeSymbols converts every pitch to its symbol, failing on the first
// pitch missing from the table
func EncodeSymbols(pitches []int) ([]string, error) {
	symbols := make([]string, len(pitches))
	for i, p := range pitches {
		sym, err := Symbol(p)
		if err != nil {
			return nil, &EncodingError{Index: i, Pitch: p}
		}
		symbols[i] = sym
	}
	return symbols, nil
}

// NotationTable returns a copy of the lookup table
func NotationTable() map[int]string {
	table := make(map[int]string, len(noteToABC))
	for k, v := range noteToABC {
		table[k] = v
	}
	return table
}

// EncodablePitches returns the table keys in ascending order
func EncodablePitches() []int {
	keys := make([]int, 0, len(noteToABC))
	for k := range noteToABC {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
