package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/james-see/reelgen/pkg/abc"
	"github.com/james-see/reelgen/pkg/generator/sources"
)

func press(m Model, key tea.KeyType) Model {
	next, _ := m.Update(tea.KeyMsg{Type: key})
	return next.(Model)
}

func TestMenuNavigation(t *testing.T) {
	m := New()
	if m.state != StateMenu {
		t.Fatalf("initial state = %v, want StateMenu", m.state)
	}

	m = press(m, tea.KeyUp)
	if m.menuIndex != 0 {
		t.Errorf("menuIndex = %d, want 0 at top", m.menuIndex)
	}

	for i := 0; i < len(menuItems)+2; i++ {
		m = press(m, tea.KeyDown)
	}
	if m.menuIndex != len(menuItems)-1 {
		t.Errorf("menuIndex = %d, want %d at bottom", m.menuIndex, len(menuItems)-1)
	}
}

func TestGenerateRandomFlow(t *testing.T) {
	m := New()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if m.state != StateGenerating {
		t.Fatalf("state = %v, want StateGenerating", m.state)
	}
	if cmd == nil {
		t.Fatal("expected a generation command")
	}

	done := generate(sources.NewRandom(m.seed))()
	next, _ = m.Update(done)
	m = next.(Model)
	if m.state != StateResult {
		t.Fatalf("state = %v, want StateResult", m.state)
	}
	if m.err != nil {
		t.Fatalf("generation error = %v", m.err)
	}
	if m.tune == nil || !strings.HasPrefix(m.tune.Document, "T: ") {
		t.Error("expected a generated tune")
	}
	if !strings.Contains(m.View(), "REEL") {
		t.Error("result view should show the reel")
	}
	if want := fmt.Sprintf("seed %d", m.seed); !strings.Contains(m.View(), want) {
		t.Errorf("result view should show %q", want)
	}

	m = press(m, tea.KeyEnter)
	if m.state != StateMenu {
		t.Errorf("state = %v, want StateMenu after enter", m.state)
	}
	if m.tune == nil {
		t.Error("tune should be kept for saving")
	}
}

func TestGenerationError(t *testing.T) {
	m := New()
	next, _ := m.Update(generationDoneMsg{err: errors.New("boom")})
	m = next.(Model)
	if m.state != StateResult || m.err == nil {
		t.Fatal("expected error result")
	}
	if !strings.Contains(m.View(), "boom") {
		t.Error("error view should show the message")
	}
}

func TestSaveWithoutTune(t *testing.T) {
	msg := save(nil, "out.abc")().(savedMsg)
	if msg.err == nil {
		t.Error("save() expected error without a tune")
	}
}

func TestSave(t *testing.T) {
	preds := make([]float64, abc.NotesPerTune)
	for i := range preds {
		preds[i] = 0.05
	}
	tune, err := abc.Transcribe(preds)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "reel.abc")
	msg := save(tune, path)().(savedMsg)
	if msg.err != nil {
		t.Fatalf("save() error = %v", msg.err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != tune.Document {
		t.Error("saved document mismatch")
	}
}
