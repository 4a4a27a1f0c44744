package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the TUI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.mode == ModeHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m *Model) renderMain() string {
	sections := []string{
		m.renderTitle(),
		m.renderContent(),
		m.renderStatus(),
	}

	if m.mode == ModeCommand || m.mode == ModeInput {
		sections = append(sections, m.renderInput())
	}
	if m.commandOut != "" {
		sections = append(sections, m.renderCommandOutput())
	}
	sections = append(sections, m.renderHelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderTitle() string {
	return m.theme.TitleStyle.Render(fmt.Sprintf("photofs - %s", m.state.Path))
}

// renderContent renders the entry list and preview pane
func (m *Model) renderContent() string {
	height := m.getVisibleLines() + 2

	if m.showPreview {
		leftWidth := m.width / 2
		rightWidth := m.width - leftWidth - 4

		list := m.theme.BorderStyle.Width(leftWidth).Height(height).Render(m.renderList(leftWidth - 4))
		preview := m.theme.PreviewBorderStyle.Width(rightWidth).Height(height).Render(m.renderPreview())
		return lipgloss.JoinHorizontal(lipgloss.Top, list, preview)
	}

	return m.theme.BorderStyle.Width(m.width - 4).Height(height).Render(m.renderList(m.width - 8))
}

func (m *Model) renderList(width int) string {
	if !m.state.Found() {
		return m.theme.ErrorStyle.Render("(folder not found)")
	}
	if len(m.entries) == 0 {
		return m.theme.NormalItemStyle.Render("(empty folder)")
	}

	end := min(m.offset+m.getVisibleLines(), len(m.entries))
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderEntry(m.entries[i], i == m.cursor, width))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderEntry(entry *Entry, selected bool, width int) string {
	var style lipgloss.Style
	switch {
	case selected:
		style = m.theme.SelectedItemStyle
	case entry.IsDir:
		style = m.theme.DirectoryStyle
	default:
		style = m.theme.FileStyle
	}

	size := entry.DisplaySize()
	nameWidth := max(width-lipgloss.Width(size)-4, 8)

	name := entry.DisplayName()
	if lipgloss.Width(name) > nameWidth {
		runes := []rune(name)
		name = string(runes[:max(nameWidth-3, 1)]) + "..."
	}
	name += strings.Repeat(" ", max(nameWidth-lipgloss.Width(name), 0))

	return style.Render(fmt.Sprintf("%s %s %s", entry.Icon(), name, size))
}

func (m *Model) renderPreview() string {
	entry := m.currentEntry()
	if entry == nil {
		return m.theme.PreviewStyle.Render("Nothing selected")
	}

	if entry.IsDir {
		info := fmt.Sprintf("Folder: %s\n\nLink: %s\n", entry.Name, entry.Link)
		return m.theme.PreviewStyle.Render(info)
	}

	info := fmt.Sprintf("Image: %s\n", entry.Name)
	info += fmt.Sprintf("Type: %s\n", entry.MediaType)
	info += fmt.Sprintf("Size: %s\n", entry.DisplaySize())
	info += fmt.Sprintf("Modified: %s\n\n", entry.DisplayModTime())

	switch {
	case m.previewErr != nil:
		info += m.theme.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.previewErr))
	case m.previewURL != "":
		info += fmt.Sprintf("URL: %s", m.previewURL)
	default:
		info += "Loading..."
	}

	return m.theme.PreviewStyle.Render(info)
}

func (m *Model) renderStatus() string {
	left := fmt.Sprintf("%d folders, %d images", len(m.state.Listing.Directories), len(m.state.Listing.Files))
	if len(m.entries) > 0 {
		left = fmt.Sprintf("%d/%d - %s", m.cursor+1, len(m.entries), left)
	}
	if m.pending > 0 {
		left += " - loading"
	}

	right := m.statusMsg
	if m.errorMsg != "" {
		right = m.theme.ErrorStyle.Render(m.errorMsg)
	}

	spacing := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-4, 0)
	return m.theme.StatusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", spacing) + right)
}

func (m *Model) renderInput() string {
	prompt := "> "
	if m.mode == ModeCommand {
		prompt = ": "
	}
	return m.theme.CommandStyle.Render(prompt + m.textInput.View())
}

func (m *Model) renderCommandOutput() string {
	lines := strings.Split(m.commandOut, "\n")
	if len(lines) > 5 {
		lines = append(lines[:5], "...")
	}
	return m.theme.PreviewBorderStyle.Width(m.width - 4).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderHelpBar() string {
	return m.theme.HelpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

// renderHelp renders the full help screen
func (m *Model) renderHelp() string {
	sections := []string{
		m.theme.TitleStyle.Render("photofs - Help"),
		"",
		m.help.FullHelpView(m.keys.FullHelp()),
		"",
		m.theme.TitleStyle.Render("Commands:"),
	}

	for _, command := range m.center.List() {
		sections = append(sections, fmt.Sprintf("  %-40s %s", command.Usage(), command.Description()))
	}

	sections = append(sections, "", m.theme.HelpStyle.Render("Press ? or q to return"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
