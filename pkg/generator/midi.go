package generator

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/james-see/reelgen/pkg/abc"
)

// Playback defaults used by the web player
const (
	DefaultTempo   = 115.0
	DefaultProgram = 21 // GM accordion
)

// MIDIConverter renders tunes as Standard MIDI Files
type MIDIConverter struct {
	ticksPerQuarter uint16
	tempo           float64
	program         uint8
	velocity        uint8
}

// NewMIDIConverter creates a new MIDI converter
func NewMIDIConverter() *MIDIConverter {
	return &MIDIConverter{
		ticksPerQuarter: 480,
		tempo:           DefaultTempo,
		program:         DefaultProgram,
		velocity:        100,
	}
}

// GenerateMIDI creates a single track MIDI file from a tune.
//
// Each pitch is a sixteenth note. Repeated pitches inside one beat group
// become a single longer note, matching the run-length ABC output.
func (m *MIDIConverter) GenerateMIDI(tune *abc.Tune) ([]byte, error) {
	if tune == nil {
		return nil, errors.New("nil tune")
	}
	if len(tune.Pitches) == 0 {
		return nil, errors.New("tune has no pitches")
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(m.ticksPerQuarter)

	var track smf.Track

	// Tempo meta event
	microsecondsPerBeat := uint32(60000000.0 / m.tempo)
	track.Add(0, smf.Message([]byte{
		0xFF, 0x51, 0x03,
		byte(microsecondsPerBeat >> 16),
		byte(microsecondsPerBeat >> 8),
		byte(microsecondsPerBeat),
	}))

	// Time signature (4/4)
	track.Add(0, smf.Message([]byte{0xFF, 0x58, 0x04, 0x04, 0x02, 0x18, 0x08}))

	channel := uint8(0)
	track.Add(0, midi.ProgramChange(channel, m.program))

	ticksPerStep := uint32(m.ticksPerQuarter) / 4

	for _, n := range m.notes(tune.Pitches) {
		if n.pitch < 0 || n.pitch > 127 {
			return nil, fmt.Errorf("pitch %d out of MIDI range", n.pitch)
		}
		key := uint8(n.pitch)
		track.Add(0, midi.NoteOn(channel, key, m.velocity))
		track.Add(uint32(n.steps)*ticksPerStep, midi.NoteOff(channel, key))
	}

	track.Close(0)

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("failed to add track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}

	return buf.Bytes(), nil
}

type midiNote struct {
	pitch int
	steps int // length in sixteenth notes
}

// notes merges runs of equal pitches within each beat group
func (m *MIDIConverter) notes(pitches []int) []midiNote {
	var out []midiNote
	for i, p := range pitches {
		last := len(out) - 1
		if i%abc.BeatSize != 0 && last >= 0 && out[last].pitch == p {
			out[last].steps++
			continue
		}
		out = append(out, midiNote{pitch: p, steps: 1})
	}
	return out
}

// WriteMIDIFile writes a tune as a MIDI file
func (m *MIDIConverter) WriteMIDIFile(tune *abc.Tune, filename string) error {
	data, err := m.GenerateMIDI(tune)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
