package tui

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user leaves the prompt without confirming
var ErrCancelled = errors.New("cancelled")

// RunTaskPrompt asks for a task description interactively
func RunTaskPrompt(in io.Reader, out io.Writer, prefilled string) (string, error) {
	model := NewTaskPromptModel(prefilled)

	p := tea.NewProgram(model, tea.WithInput(in), tea.WithOutput(out))
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(TaskPromptModel)
	if !ok {
		return "", ErrCancelled
	}
	description, confirmed := m.Description()
	if !confirmed {
		return "", ErrCancelled
	}
	return description, nil
}
