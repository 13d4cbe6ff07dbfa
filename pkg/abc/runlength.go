package abc

import (
	"strconv"
	"strings"
)

// Tune layout. Sizes are counted in sixteenth notes.
const (
	BeatSize     = 4  // notes per beat group
	BarSize      = 16 // notes per bar
	BarsPerLine  = 4
	LinesPerTune = 4
	BarsPerTune  = BarsPerLine * LinesPerTune
	NotesPerTune = BarsPerTune * BarSize
	groupsPerBar = BarSize / BeatSize
)

// BeatGroups partitions symbols into consecutive groups of BeatSize
func BeatGroups(symbols []string) ([][]string, error) {
	if len(symbols) == 0 || len(symbols)%BeatSize != 0 {
		return nil, &RangeError{Length: len(symbols), Want: "positive multiple of 4"}
	}

	groups := make([][]string, 0, len(symbols)/BeatSize)
	for i := 0; i < len(symbols); i += BeatSize {
		groups = append(groups, symbols[i:i+BeatSize])
	}
	return groups, nil
}

// EncodeBeatGroup run-length encodes a group, e.g. [e e f f] -> "e2f2"
func EncodeBeatGroup(group []string) string {
	if len(group) == 0 {
		return ""
	}

	var b strings.Builder
	flush := func(sym string, count int) {
		b.WriteString(sym)
		if count > 1 {
			b.WriteString(strconv.Itoa(count))
		}
	}

	current := group[0]
	count := 1
	for _, sym := range group[1:] {
		if sym == current {
			count++
			continue
		}
		flush(current, count)
		current = sym
		count = 1
	}
	flush(current, count)

	return b.String()
}

// Bars encodes every beat group and joins each four of them into a bar
func Bars(symbols []string) ([]string, error) {
	groups, err := BeatGroups(symbols)
	if err != nil {
		return nil, err
	}
	if len(symbols)%BarSize != 0 {
		return nil, &RangeError{Length: len(symbols), Want: "multiple of 16 to fill whole bars"}
	}

	bars := make([]string, 0, len(groups)/groupsPerBar)
	for i := 0; i < len(groups); i += groupsPerBar {
		var bar strings.Builder
		for _, g := range groups[i : i+groupsPerBar] {
			bar.WriteString(EncodeBeatGroup(g))
		}
		bars = append(bars, bar.String())
	}
	return bars, nil
}
