package tokeninput

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func typeString(m Model, s string) Model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func TestNewModel(t *testing.T) {
	model := NewModel()

	if model.textInput.EchoMode != textinput.EchoPassword {
		t.Error("Expected token input to be in password mode")
	}
	if model.err != "" {
		t.Errorf("Expected no error, got: %s", model.err)
	}
	if model.Submitted() {
		t.Error("Expected submitted to be false initially")
	}
}

func TestUpdate_EnterSubmitsAndQuits(t *testing.T) {
	model := typeString(NewModel(), "  abc123  ")

	m, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = m.(Model)

	if !model.Submitted() {
		t.Error("Expected submitted to be true after pressing Enter")
	}
	if model.Token() != "abc123" {
		t.Errorf("Expected trimmed token, got %q", model.Token())
	}
	if cmd == nil {
		t.Fatal("Expected a command after submission")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected submission to quit the program")
	}
}

func TestUpdate_EmptyTokenShowsError(t *testing.T) {
	m, cmd := NewModel().Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := m.(Model)

	if model.Submitted() {
		t.Error("Empty token must not submit")
	}
	if cmd != nil {
		t.Error("Expected no command for empty token")
	}
	if !strings.Contains(model.View(), "token cannot be empty") {
		t.Error("Expected the error to be rendered")
	}
}

func TestUpdate_EscCancels(t *testing.T) {
	model := typeString(NewModel(), "abc")

	m, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.(Model).Submitted() {
		t.Error("Esc must not submit")
	}
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected Esc to quit")
	}
}

func TestView_SetupAndUpdate(t *testing.T) {
	if v := NewModel().View(); !strings.Contains(v, "Token Setup") {
		t.Errorf("setup view missing title: %s", v)
	}
	if v := NewModelForUpdate().View(); !strings.Contains(v, "Update GitSpatial API Token") {
		t.Errorf("update view missing title: %s", v)
	}
}
