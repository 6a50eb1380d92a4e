package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TaskPromptModel asks for the description of a new task
type TaskPromptModel struct {
	input textinput.Model
	width int

	// State
	description   string
	completed     bool
	cancelled     bool
	validationErr string
}

// NewTaskPromptModel creates the prompt, optionally pre-filled
func NewTaskPromptModel(prefilled string) TaskPromptModel {
	input := textinput.New()
	input.Placeholder = "What are you working on?"
	input.CharLimit = 500
	input.Width = 60
	input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
	input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	input.SetValue(prefilled)
	input.Focus()

	return TaskPromptModel{input: input}
}

// Init implements tea.Model
func (m TaskPromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m TaskPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

		inputWidth := m.width - 10
		if inputWidth < 20 {
			inputWidth = 20
		}
		if inputWidth > 100 {
			inputWidth = 100
		}
		m.input.Width = inputWidth
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit

		case tea.KeyEnter:
			description := strings.TrimSpace(m.input.Value())
			if description == "" {
				m.validationErr = "Task description is required"
				return m, nil
			}
			m.description = description
			m.completed = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if strings.TrimSpace(m.input.Value()) != "" {
		m.validationErr = ""
	}
	return m, cmd
}

// View renders the prompt
func (m TaskPromptModel) View() string {
	if m.cancelled || m.completed {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("New task"))
	b.WriteString("\n")
	b.WriteString(PromptBoxStyle.Render(m.input.View()))
	b.WriteString("\n")
	if m.validationErr != "" {
		b.WriteString(ErrorStyle.Render(m.validationErr))
		b.WriteString("\n")
	}
	b.WriteString(HelpStyle.Render("enter: start task • esc: cancel"))
	b.WriteString("\n")
	return b.String()
}

// Description returns the entered description and whether the user confirmed it
func (m TaskPromptModel) Description() (string, bool) {
	return m.description, m.completed && !m.cancelled
}
