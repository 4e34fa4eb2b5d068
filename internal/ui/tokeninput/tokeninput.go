// Package tokeninput prompts for the GitSpatial API token with a masked text input.
package tokeninput

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// Model represents the token input view model
type Model struct {
	textInput textinput.Model
	isUpdate  bool
	err       string
	submitted bool
}

// NewModel creates a token input for first-time setup
func NewModel() Model {
	ti := textinput.New()
	ti.Placeholder = "Enter your GitSpatial API token"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	return Model{textInput: ti}
}

// NewModelForUpdate creates a token input that replaces an existing token
func NewModelForUpdate() Model {
	m := NewModel()
	m.isUpdate = true
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			if m.Token() == "" {
				m.err = "token cannot be empty"
				return m, nil
			}
			m.submitted = true
			m.err = ""
			return m, tea.Quit

		case tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View renders the token input view
func (m Model) View() string {
	var b strings.Builder

	if m.isUpdate {
		b.WriteString(titleStyle.Render("Update GitSpatial API Token") + "\n\n")
		b.WriteString("Enter a new token to replace the one in your keyring:\n\n")
	} else {
		b.WriteString(titleStyle.Render("GitSpatial API Token Setup") + "\n\n")
		b.WriteString("No token found in keyring. Please enter your API token:\n\n")
	}
	b.WriteString(m.textInput.View() + "\n\n")

	if m.err != "" {
		b.WriteString(errorStyle.Render("Error: "+m.err) + "\n\n")
	}

	b.WriteString(helpStyle.Render("Press Enter to submit • Esc to quit"))
	return b.String()
}

// Submitted reports whether the user confirmed a token.
func (m Model) Submitted() bool {
	return m.submitted
}

// Token returns the entered token with surrounding whitespace removed
func (m Model) Token() string {
	return strings.TrimSpace(m.textInput.Value())
}
