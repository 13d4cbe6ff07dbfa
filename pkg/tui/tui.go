// Package tui provides a terminal user interface for reelgen
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/james-see/reelgen/pkg/abc"
	"github.com/james-see/reelgen/pkg/generator"
	"github.com/james-see/reelgen/pkg/generator/sources"
)

// Session colors, a nod to green baize and brass
var (
	reelGreen = lipgloss.Color("#2E8B57")
	brass     = lipgloss.Color("#D4A017")
	parchment = lipgloss.Color("#F5F5DC")
	darkGray  = lipgloss.Color("#333333")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(parchment).
			Background(reelGreen).
			Padding(0, 2).
			MarginBottom(1)

	menuStyle = lipgloss.NewStyle().
			Foreground(parchment).
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(brass).
			Bold(true).
			PaddingLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(brass).
			PaddingTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(reelGreen).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(reelGreen).
			Padding(1, 2)

	abcStyle = lipgloss.NewStyle().
			Foreground(parchment).
			Background(darkGray).
			Padding(0, 1)
)

// State represents the current TUI state
type State int

const (
	StateMenu State = iota
	StateFilePicker
	StateGenerating
	StateResult
)

// Action identifies what a menu item does
type Action int

const (
	ActionRandom Action = iota
	ActionFromFile
	ActionSaveABC
	ActionSaveMIDI
	ActionExit
)

// MenuItem represents a menu option
type MenuItem struct {
	Title       string
	Description string
	Action      Action
}

var menuItems = []MenuItem{
	{Title: "Generate reel", Description: "Generate a reel from random predictions", Action: ActionRandom},
	{Title: "Generate from file", Description: "Transcribe predictions saved by the model (.json, .txt)", Action: ActionFromFile},
	{Title: "Save ABC", Description: "Write the last reel to " + generator.DefaultABCFilename, Action: ActionSaveABC},
	{Title: "Export MIDI", Description: "Write the last reel to reel.mid", Action: ActionSaveMIDI},
	{Title: "Exit", Description: "Exit the application", Action: ActionExit},
}

// Model represents the TUI model
type Model struct {
	state        State
	menuIndex    int
	filePicker   filepicker.Model
	spinner      spinner.Model
	viewport     viewport.Model
	selectedFile string
	outputFile   string
	tune         *abc.Tune
	seed         uint64
	status       string
	err          error
	width        int
	height       int
}

// generationDoneMsg signals generation completion
type generationDoneMsg struct {
	tune *abc.Tune
	err  error
}

// savedMsg signals an export completed
type savedMsg struct {
	outputFile string
	err        error
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick)
}

// New creates a new TUI model
func New() Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".json", ".txt"}
	fp.CurrentDirectory, _ = os.Getwd()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(brass)

	return Model{
		state:      StateMenu,
		menuIndex:  0,
		filePicker: fp,
		spinner:    s,
		viewport:   viewport.New(80, 12),
		seed:       uint64(time.Now().UnixNano()),
	}
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The file picker needs every message while it is open
	if m.state == StateFilePicker {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				m.state = StateMenu
				return m, nil
			case "q", "ctrl+c":
				return m, tea.Quit
			}
		}

		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			m.status = "from " + filepath.Base(path)
			m.state = StateGenerating
			return m, tea.Batch(m.spinner.Tick, generate(sources.NewFile(path)))
		}

		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filePicker.SetHeight(msg.Height - 10)
		m.viewport.Width = msg.Width - 8
		m.viewport.Height = msg.Height - 16
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateMenu:
			return m.updateMenu(msg)
		case StateResult:
			return m.updateResult(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case generationDoneMsg:
		m.state = StateResult
		m.err = msg.err
		m.outputFile = ""
		if msg.err == nil {
			m.tune = msg.tune
			m.viewport.SetContent(abcStyle.Render(msg.tune.Document))
			m.viewport.GotoTop()
		}
		return m, nil

	case savedMsg:
		m.state = StateResult
		m.err = msg.err
		m.outputFile = msg.outputFile
		return m, nil
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
		}
	case "enter":
		switch menuItems[m.menuIndex].Action {
		case ActionExit:
			return m, tea.Quit
		case ActionRandom:
			m.seed++
			m.selectedFile = ""
			m.status = fmt.Sprintf("seed %d", m.seed)
			m.state = StateGenerating
			return m, tea.Batch(m.spinner.Tick, generate(sources.NewRandom(m.seed)))
		case ActionFromFile:
			m.state = StateFilePicker
			return m, m.filePicker.Init()
		case ActionSaveABC:
			return m, save(m.tune, generator.DefaultABCFilename)
		case ActionSaveMIDI:
			return m, save(m.tune, "reel.mid")
		}
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.state = StateMenu
		m.err = nil
		m.selectedFile = ""
		m.outputFile = ""
		return m, nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func generate(source generator.Source) tea.Cmd {
	return func() tea.Msg {
		tune, err := generator.New(source).Generate(context.Background())
		return generationDoneMsg{tune: tune, err: err}
	}
}

func save(tune *abc.Tune, filename string) tea.Cmd {
	return func() tea.Msg {
		if tune == nil {
			return savedMsg{err: fmt.Errorf("nothing to save yet, generate a reel first")}
		}
		if err := generator.ExportFile(tune, filename); err != nil {
			return savedMsg{err: err}
		}
		return savedMsg{outputFile: filename}
	}
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(asciiLogo())
	s.WriteString("\n")

	switch m.state {
	case StateMenu:
		s.WriteString(m.viewMenu())
	case StateFilePicker:
		s.WriteString(m.viewFilePicker())
	case StateGenerating:
		s.WriteString(m.viewGenerating())
	case StateResult:
		s.WriteString(m.viewResult())
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓: navigate • enter: select • q: quit"))

	return s.String()
}

func (m Model) viewMenu() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" GANs n REELS "))
	s.WriteString("\n\n")

	for i, item := range menuItems {
		if i == m.menuIndex {
			s.WriteString(selectedStyle.Render(fmt.Sprintf("▸ %s", item.Title)))
			s.WriteString("\n")
			s.WriteString(lipgloss.NewStyle().Foreground(brass).PaddingLeft(4).Render(item.Description))
		} else {
			s.WriteString(menuStyle.Render(fmt.Sprintf("  %s", item.Title)))
		}
		s.WriteString("\n")
	}

	return boxStyle.Render(s.String())
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SELECT PREDICTIONS FILE "))
	s.WriteString("\n\n")
	s.WriteString(m.filePicker.View())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("esc: back to menu"))

	return s.String()
}

func (m Model) viewGenerating() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" GENERATING "))
	s.WriteString("\n\n")
	if m.selectedFile != "" {
		s.WriteString(fmt.Sprintf("%s Transcribing %s...\n", m.spinner.View(), filepath.Base(m.selectedFile)))
	} else {
		s.WriteString(fmt.Sprintf("%s Generating reel...\n", m.spinner.View()))
	}
	s.WriteString(statusStyle.Render(fmt.Sprintf("  %d sixteenth notes → %d bars", abc.NotesPerTune, abc.BarsPerTune)))

	return boxStyle.Render(s.String())
}

func (m Model) viewResult() string {
	var s strings.Builder

	switch {
	case m.err != nil:
		s.WriteString(titleStyle.Render(" ERROR "))
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s", m.err.Error())))
	case m.outputFile != "":
		s.WriteString(titleStyle.Render(" SAVED "))
		s.WriteString("\n\n")
		s.WriteString(successStyle.Render(fmt.Sprintf("✓ Wrote %s", m.outputFile)))
	default:
		s.WriteString(titleStyle.Render(" REEL "))
		s.WriteString("\n\n")
		s.WriteString(m.viewport.View())
		s.WriteString(statusStyle.Render(m.status))
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Press enter to continue"))

	return boxStyle.Render(s.String())
}

func asciiLogo() string {
	logo := `
   ____ _____ _____ ____   ___ _____ _   _
  |  _ \| ____| ____| |   / __| ____| \ | |
  | |_) |  _| |  _| | |  | |  _|  _| |  \| |
  |  _ <| |___| |___| |__| |_| | |___| |\  |
  |_| \_\_____|_____|_____\____|_____|_| \_|
`
	return lipgloss.NewStyle().Foreground(reelGreen).Render(logo)
}

// Run starts the TUI application
func Run() error {
	p := tea.NewProgram(New(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
