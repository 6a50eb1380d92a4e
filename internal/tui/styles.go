package tui

import "github.com/charmbracelet/lipgloss"

// Color constants for the wastedyears theme
const (
	ColorPrimaryText   = "#E6EAF2" // Input text, task descriptions
	ColorSecondaryText = "#B1B8C7" // Timestamps, counts
	ColorPlaceholder   = "#6D7383" // Muted placeholder text
	ColorHelpText      = "240"     // Dark grey for key hints

	ColorAccentMain   = "#7C3AED" // Headings, prompt border
	ColorAccentBright = "#A78BFA" // Cursor, highlights

	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E"
	ColorWarning = "#F59E0B"
)

var (
	HeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright))
	MutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	WarningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning))
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
	SuccessStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	HelpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))
	PromptBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorAccentMain)).
			Padding(0, 1)
)
