package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwantia/photofs"
	"github.com/mwantia/photofs/cmd"
	"github.com/mwantia/photofs/log"
	"github.com/mwantia/photofs/slug"
)

// Mode represents the current interaction mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeCommand
	ModeInput
	ModeHelp
)

// InputType represents what kind of input we're collecting
type InputType int

const (
	InputNewDir InputType = iota
	InputDelete
	InputCapture
	InputCommand
)

// Model is the folder browser. It drives a single photofs view.
type Model struct {
	ctx    context.Context
	view   *photofs.View
	center *cmd.Center
	log    *log.Logger
	theme  *Theme
	keys   KeyMap
	help   help.Model

	// Navigation state
	state       photofs.State
	previousDir string // Slug of the folder we came from, for cursor placement
	entries     []*Entry
	cursor      int
	offset      int
	pending     int // navigations issued but not yet answered

	// View state
	width       int
	height      int
	showPreview bool
	previewURL  string
	previewErr  error
	previewGen  int

	// Mode state
	mode      Mode
	inputType InputType
	textInput textinput.Model

	// Status
	statusMsg  string
	errorMsg   string
	commandOut string
}

// NewModel creates a browser for view, starting at path.
func NewModel(ctx context.Context, view *photofs.View, center *cmd.Center, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.Discard()
	}

	ti := textinput.New()
	ti.Placeholder = "Enter command..."
	ti.CharLimit = 256

	return &Model{
		ctx:         ctx,
		view:        view,
		center:      center,
		log:         logger,
		theme:       DefaultTheme(),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		state:       view.State(),
		showPreview: true,
		textInput:   ti,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.navigate(m.state.Path),
		textinput.Blink,
	)
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case navigatedMsg:
		m.pending--
		if msg.err != nil {
			m.errorMsg = msg.err.Error()
			return m, nil
		}
		if !msg.committed {
			// a newer navigation owns the view
			m.log.Debug("Superseded navigation to '%s'", msg.path)
			return m, nil
		}
		m.applyState(msg.state)
		if !msg.state.Found() {
			m.errorMsg = fmt.Sprintf("Not found: %s", msg.state.Path)
		}
		return m, m.updatePreview()

	case stateMsg:
		m.applyState(photofs.State(msg))
		return m, m.updatePreview()

	case previewLoadedMsg:
		if msg.generation == m.previewGen {
			m.previewURL = msg.url
			m.previewErr = msg.err
		}
		return m, nil

	case commandExecutedMsg:
		m.commandOut = msg.output
		m.errorMsg = msg.error
		if msg.exit {
			return m, tea.Quit
		}
		if msg.error == "" {
			m.statusMsg = "Command executed"
		}
		m.applyState(m.view.State())
		return m, m.updatePreview()

	case statusMsg:
		m.statusMsg = string(msg)
		m.applyState(m.view.State())
		return m, m.updatePreview()

	case errorMsg:
		m.errorMsg = string(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	if m.mode == ModeCommand || m.mode == ModeInput {
		var inputCmd tea.Cmd
		m.textInput, inputCmd = m.textInput.Update(msg)
		return m, inputCmd
	}

	return m, nil
}

// applyState replaces the displayed listing and keeps the cursor in range.
func (m *Model) applyState(state photofs.State) {
	m.state = state
	m.entries = entriesOf(state)

	if m.previousDir != "" {
		for i, entry := range m.entries {
			if entry.IsDir && slug.Slugify(entry.Name) == m.previousDir {
				m.cursor = i
				break
			}
		}
		m.previousDir = ""
	}

	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scrollToCursor()
}

// handleKeyPress processes keyboard input based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeCommand, ModeInput:
		return m.handleInputMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	}
	return m.handleNormalMode(msg)
}

// handleNormalMode processes keys in normal browsing mode
func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, m.updatePreview()

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, m.updatePreview()

	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-10)
		return m, m.updatePreview()

	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(10)
		return m, m.updatePreview()

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.offset = 0
		return m, m.updatePreview()

	case key.Matches(msg, m.keys.Bottom):
		if len(m.entries) > 0 {
			m.moveCursor(len(m.entries))
		}
		return m, m.updatePreview()

	case key.Matches(msg, m.keys.Enter):
		return m, m.enterDirectory()

	case key.Matches(msg, m.keys.Back):
		return m, m.goBack()

	case key.Matches(msg, m.keys.TogglePreview):
		m.showPreview = !m.showPreview
		return m, m.updatePreview()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()

	case key.Matches(msg, m.keys.NewDir):
		return m, m.startInput(InputNewDir, "New folder name")

	case key.Matches(msg, m.keys.Capture):
		return m, m.startInput(InputCapture, "Local image file to capture")

	case key.Matches(msg, m.keys.Delete):
		entry := m.currentEntry()
		if entry == nil {
			return m, nil
		}
		if entry.IsDir {
			m.statusMsg = "Only images can be deleted"
			return m, nil
		}
		return m, m.startInput(InputDelete, fmt.Sprintf("Delete %s? (y/n)", entry.Name))

	case key.Matches(msg, m.keys.Command):
		return m, m.startInput(InputCommand, "Enter command...")
	}

	return m, nil
}

// handleInputMode processes keys when collecting user input
func (m *Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.cancelInput()
		return m, nil

	case tea.KeyEnter:
		return m, m.submitInput()
	}

	var inputCmd tea.Cmd
	m.textInput, inputCmd = m.textInput.Update(msg)
	return m, inputCmd
}

// handleHelpMode processes keys in help mode
func (m *Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit), msg.Type == tea.KeyEscape:
		m.mode = ModeNormal
	}
	return m, nil
}

// startInput enters input mode with the specified type and prompt
func (m *Model) startInput(inputType InputType, prompt string) tea.Cmd {
	m.mode = ModeInput
	if inputType == InputCommand {
		m.mode = ModeCommand
	}
	m.inputType = inputType
	m.textInput.Placeholder = prompt
	m.textInput.SetValue("")
	m.errorMsg = ""
	m.statusMsg = ""
	return m.textInput.Focus()
}

// cancelInput exits input mode without taking action
func (m *Model) cancelInput() {
	m.mode = ModeNormal
	m.textInput.Blur()
	m.textInput.SetValue("")
}

// submitInput processes the collected input
func (m *Model) submitInput() tea.Cmd {
	value := strings.TrimSpace(m.textInput.Value())
	inputType := m.inputType
	m.cancelInput()

	if value == "" {
		return nil
	}

	switch inputType {
	case InputNewDir:
		return m.createDirectory(value)
	case InputCapture:
		return m.capture(value)
	case InputDelete:
		if v := strings.ToLower(value); v == "y" || v == "yes" {
			return m.deleteFile()
		}
		return nil
	case InputCommand:
		return m.executeCommand(value)
	}

	return nil
}

// moveCursor moves the cursor by delta, handling bounds and scrolling
func (m *Model) moveCursor(delta int) {
	if len(m.entries) == 0 {
		return
	}

	m.cursor = max(0, min(m.cursor+delta, len(m.entries)-1))
	m.scrollToCursor()
}

func (m *Model) scrollToCursor() {
	visibleLines := m.getVisibleLines()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visibleLines {
		m.offset = m.cursor - visibleLines + 1
	}
}

// getVisibleLines returns how many entries can be displayed
func (m *Model) getVisibleLines() int {
	// title, borders, status, help and padding
	reserved := 8
	available := m.height - reserved
	if available < 5 {
		return 5
	}
	return available
}

// currentEntry returns the currently selected entry
func (m *Model) currentEntry() *Entry {
	if m.cursor >= 0 && m.cursor < len(m.entries) {
		return m.entries[m.cursor]
	}
	return nil
}

// Messages for async operations
type navigatedMsg struct {
	path      string
	state     photofs.State
	committed bool
	err       error
}

type stateMsg photofs.State

type previewLoadedMsg struct {
	url        string
	err        error
	generation int
}

type commandExecutedMsg struct {
	output string
	error  string
	exit   bool
}

type statusMsg string

type errorMsg string

// navigate issues a navigation. Results of navigations that were superseded
// by a later one come back uncommitted and are ignored.
func (m *Model) navigate(path string) tea.Cmd {
	m.pending++
	m.errorMsg = ""

	return func() tea.Msg {
		state, committed, err := m.view.Navigate(m.ctx, path)
		return navigatedMsg{path: path, state: state, committed: committed, err: err}
	}
}

func (m *Model) refresh() tea.Cmd {
	return func() tea.Msg {
		state, err := m.view.Refresh(m.ctx)
		if err != nil {
			return errorMsg(fmt.Sprintf("Failed to refresh: %v", err))
		}
		return stateMsg(state)
	}
}

func (m *Model) updatePreview() tea.Cmd {
	m.previewGen++
	generation := m.previewGen

	entry := m.currentEntry()
	if !m.showPreview || entry == nil || entry.IsDir {
		m.previewURL = ""
		m.previewErr = nil
		return nil
	}

	file := entry.file
	return func() tea.Msg {
		url, err := m.view.ImageURL(m.ctx, file)
		return previewLoadedMsg{url: url, err: err, generation: generation}
	}
}

func (m *Model) enterDirectory() tea.Cmd {
	entry := m.currentEntry()
	if entry == nil {
		return nil
	}
	if !entry.IsDir {
		m.statusMsg = fmt.Sprintf("Not a folder: %s", entry.Name)
		return nil
	}

	m.cursor = 0
	m.offset = 0
	return m.navigate(entry.Link)
}

func (m *Model) goBack() tea.Cmd {
	segments := m.state.Segments
	if len(segments) == 0 {
		return nil
	}

	m.previousDir = segments[len(segments)-1]
	m.cursor = 0
	m.offset = 0
	return m.navigate(slug.Join(segments[:len(segments)-1]))
}

func (m *Model) createDirectory(name string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.view.CreateDirectory(m.ctx, name); err != nil {
			return errorMsg(fmt.Sprintf("Failed to create folder: %v", err))
		}
		return statusMsg(fmt.Sprintf("Created %s", m.view.Link(name)))
	}
}

func (m *Model) capture(local string) tea.Cmd {
	return func() tea.Msg {
		content, err := os.ReadFile(local)
		if err != nil {
			return errorMsg(fmt.Sprintf("Failed to read %s: %v", local, err))
		}

		file, err := m.view.Capture(m.ctx, filepath.Base(local), content)
		if err != nil {
			return errorMsg(fmt.Sprintf("Failed to capture: %v", err))
		}
		return statusMsg(fmt.Sprintf("Captured %s", file.Name()))
	}
}

func (m *Model) deleteFile() tea.Cmd {
	entry := m.currentEntry()
	if entry == nil || entry.IsDir {
		return nil
	}

	name := entry.Name
	return func() tea.Msg {
		if err := m.view.DeleteFile(m.ctx, name); err != nil {
			return errorMsg(fmt.Sprintf("Failed to delete: %v", err))
		}
		return statusMsg(fmt.Sprintf("Deleted %s", name))
	}
}

func (m *Model) executeCommand(line string) tea.Cmd {
	return func() tea.Msg {
		var out bytes.Buffer
		code, err := m.center.ExecuteLine(m.ctx, m.view, &out, line)

		msg := commandExecutedMsg{output: strings.TrimRight(out.String(), "\n")}
		switch {
		case errors.Is(err, cmd.ErrExit):
			msg.exit = true
		case err != nil:
			msg.error = err.Error()
		case code != 0:
			msg.error = fmt.Sprintf("Command exited with code %d", code)
		}
		return msg
	}
}
