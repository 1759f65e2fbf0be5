package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorPrimary   = "#7D56F4"
	colorSuccess   = "#04B575"
	colorWarning   = "#E5C07B"
	colorError     = "#FF5F56"
	colorInfo      = "#626262"
	colorHighlight = "#FAFAFA"
	colorBorder    = "#874BFD"
	colorDoctor    = "#61AFEF"
	colorStudent   = "#98C379"
)

var (
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorPrimary)).
		MarginBottom(1)

	StatusStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorSuccess))

	WarningStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorWarning))

	ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorError))

	InfoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorInfo))

	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colorBorder)).
		Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorHighlight)).
		Background(lipgloss.Color(colorPrimary))

	DoctorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorDoctor))

	StudentStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorStudent))
)
