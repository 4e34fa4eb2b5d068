package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Elpulgo/gitspatial-tui/internal/ui/styles"
)

func newPicker() *ThemePicker {
	return NewThemePicker(styles.DefaultStyles(), []string{"dark", "gruvbox", "nord"}, "gruvbox")
}

func TestThemePicker_CursorStartsOnCurrent(t *testing.T) {
	if c := newPicker().Cursor(); c != 1 {
		t.Errorf("cursor = %d, want 1", c)
	}
}

func TestThemePicker_IgnoresKeysWhenHidden(t *testing.T) {
	p := newPicker()
	if _, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("hidden picker must not select")
	}
}

func TestThemePicker_NavigateAndSelect(t *testing.T) {
	p := newPicker()
	p.Show()

	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p.Update(tea.KeyMsg{Type: tea.KeyDown}) // clamped at the end
	if p.Cursor() != 2 {
		t.Fatalf("cursor = %d, want 2", p.Cursor())
	}

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should select")
	}
	msg, ok := cmd().(ThemeSelectedMsg)
	if !ok || msg.ThemeName != "nord" {
		t.Errorf("unexpected selection %+v", msg)
	}
	if p.IsVisible() {
		t.Error("picker should close after selection")
	}
}

func TestThemePicker_Cancel(t *testing.T) {
	p := newPicker()
	p.Show()
	if _, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc}); cmd != nil {
		t.Error("cancel must not select")
	}
	if p.IsVisible() {
		t.Error("esc should close the picker")
	}
}

func TestThemePicker_ViewMarksCurrent(t *testing.T) {
	p := newPicker()
	p.Show()
	if !strings.Contains(p.View(), "gruvbox (current)") {
		t.Error("view should mark the current theme")
	}
}
