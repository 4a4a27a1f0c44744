package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwantia/photofs"
	"github.com/mwantia/photofs/backend/ephemeral"
	"github.com/mwantia/photofs/cmd"
	"github.com/mwantia/photofs/cmd/builtin"
	"github.com/mwantia/photofs/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(tst *testing.T) *Model {
	tst.Helper()

	session, err := photofs.Open(tst.Context(), ephemeral.NewEphemeralBackend(), photofs.WithLogger(log.Discard()))
	require.NoError(tst, err)

	view := session.NewView()
	tst.Cleanup(func() {
		_ = view.Close()
		_ = session.Close(context.Background())
	})

	center := cmd.NewCenter()
	require.NoError(tst, builtin.InitBuiltin(center))

	m := NewModel(tst.Context(), view, center, nil)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	drain(tst, m, m.navigate("/"))
	return m
}

// drain runs cmd and feeds its message back into the model until no command is left.
func drain(tst *testing.T, m *Model, cmd tea.Cmd) tea.Msg {
	tst.Helper()

	var last tea.Msg
	for cmd != nil {
		msg := cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			return msg
		}
		last = msg
		_, cmd = m.Update(msg)
	}
	return last
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(tst *testing.T, m *Model, msg tea.KeyMsg) tea.Msg {
	tst.Helper()

	_, cmd := m.Update(msg)
	return drain(tst, m, cmd)
}

func submit(tst *testing.T, m *Model, value string) tea.Msg {
	tst.Helper()

	m.textInput.SetValue(value)
	return press(tst, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestModel_NavigateAndCreate(t *testing.T) {
	m := newTestModel(t)
	require.True(t, m.state.Found())
	assert.Equal(t, "/", m.state.Path)
	assert.Empty(t, m.entries)

	_, _ = m.Update(runes("N"))
	require.Equal(t, ModeInput, m.mode)
	submit(t, m, "Summer Trip")

	assert.Equal(t, ModeNormal, m.mode)
	require.Len(t, m.entries, 1)
	assert.Equal(t, "Summer Trip", m.entries[0].Name)
	assert.Equal(t, "/summer-trip", m.entries[0].Link)

	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "/summer-trip", m.state.Path)
	assert.Contains(t, m.View(), "photofs - /summer-trip")

	press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "/", m.state.Path)
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, 0, m.pending)
}

func TestModel_IgnoresSupersededNavigation(t *testing.T) {
	m := newTestModel(t)

	m.pending++
	m.Update(navigatedMsg{path: "/elsewhere", committed: false})
	assert.Equal(t, "/", m.state.Path)
	assert.Equal(t, 0, m.pending)
}

func TestModel_LinksFollowAppliedState(t *testing.T) {
	m := newTestModel(t)

	_, _ = m.Update(runes("N"))
	submit(t, m, "Trips")
	require.Len(t, m.entries, 1)
	root := m.state

	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "/trips", m.state.Path)

	// a late state keeps links relative to its own path
	m.Update(stateMsg(root))
	require.Len(t, m.entries, 1)
	assert.Equal(t, "/trips", m.entries[0].Link)
}

func TestModel_UnknownPath(t *testing.T) {
	m := newTestModel(t)

	drain(t, m, m.navigate("/missing"))
	assert.False(t, m.state.Found())
	assert.Contains(t, m.errorMsg, "/missing")
	assert.Contains(t, m.View(), "folder not found")
}

func TestModel_CommandMode(t *testing.T) {
	m := newTestModel(t)

	_, _ = m.Update(runes(":"))
	require.Equal(t, ModeCommand, m.mode)
	submit(t, m, "mkdir Album")

	assert.Empty(t, m.errorMsg)
	assert.Equal(t, "/album", m.commandOut)
	require.Len(t, m.entries, 1)

	_, _ = m.Update(runes(":"))
	submit(t, m, "rm Album")
	assert.NotEmpty(t, m.errorMsg)

	_, _ = m.Update(runes(":"))
	msg := submit(t, m, "exit")
	assert.IsType(t, tea.QuitMsg{}, msg)
}

func TestModel_DeleteRejectsFolders(t *testing.T) {
	m := newTestModel(t)

	_, _ = m.Update(runes("N"))
	submit(t, m, "Album")

	press(t, m, runes("d"))
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, "Only images can be deleted", m.statusMsg)
}

func TestModel_EscapeCancelsInput(t *testing.T) {
	m := newTestModel(t)

	_, _ = m.Update(runes("N"))
	m.textInput.SetValue("Album")
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})

	assert.Equal(t, ModeNormal, m.mode)
	assert.Empty(t, m.entries)
}
