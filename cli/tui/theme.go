package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles of the browser.
type Theme struct {
	TitleStyle         lipgloss.Style
	BorderStyle        lipgloss.Style
	PreviewBorderStyle lipgloss.Style
	NormalItemStyle    lipgloss.Style
	SelectedItemStyle  lipgloss.Style
	DirectoryStyle     lipgloss.Style
	FileStyle          lipgloss.Style
	PreviewStyle       lipgloss.Style
	ErrorStyle         lipgloss.Style
	StatusBarStyle     lipgloss.Style
	CommandStyle       lipgloss.Style
	HelpStyle          lipgloss.Style
}

func DefaultTheme() *Theme {
	accent := lipgloss.Color("39")
	muted := lipgloss.Color("241")

	return &Theme{
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		BorderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		PreviewBorderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		NormalItemStyle: lipgloss.NewStyle(),
		SelectedItemStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(accent),
		DirectoryStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		FileStyle:    lipgloss.NewStyle(),
		PreviewStyle: lipgloss.NewStyle(),
		ErrorStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		StatusBarStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1),
		CommandStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")),
		HelpStyle: lipgloss.NewStyle().
			Foreground(muted),
	}
}
