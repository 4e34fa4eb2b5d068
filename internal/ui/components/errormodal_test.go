package components

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Elpulgo/gitspatial-tui/internal/gitspatial"
	"github.com/Elpulgo/gitspatial-tui/internal/ui/styles"
)

func TestErrorModal_ShowAndHide(t *testing.T) {
	m := NewErrorModal(styles.DefaultStyles())
	if m.IsVisible() {
		t.Error("error modal should be hidden by default")
	}

	m.Show(SyncFailedTitle, "permission denied", "")
	if !m.IsVisible() {
		t.Fatal("error modal should be visible after Show()")
	}
	if m.title != SyncFailedTitle || m.message != "permission denied" {
		t.Errorf("unexpected content %q / %q", m.title, m.message)
	}

	m.Hide()
	if m.IsVisible() {
		t.Error("error modal should be hidden after Hide()")
	}
}

func TestErrorModal_View(t *testing.T) {
	m := NewErrorModal(styles.DefaultStyles())
	m.SetSize(100, 30)

	if m.View() != "" {
		t.Error("hidden modal should render nothing")
	}

	m.Show(SyncFailedTitle, "While we ramp things up, users are limited to syncing 3 repos. Cool?", "a hint")
	view := m.View()
	for _, want := range []string{SyncFailedTitle, "limited to syncing 3 repos", "a hint", "esc to dismiss"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestErrorModal_DismissKeys(t *testing.T) {
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyEnter},
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
	} {
		m := NewErrorModal(styles.DefaultStyles())
		m.Show("t", "m", "")
		m.Update(k)
		if m.IsVisible() {
			t.Errorf("%q should dismiss the modal", k.String())
		}
	}

	m := NewErrorModal(styles.DefaultStyles())
	m.Show("t", "m", "")
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if !m.IsVisible() {
		t.Error("other keys must not dismiss the modal")
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantNil   bool
		wantTitle string
		wantMsg   string
	}{
		{"nil", nil, true, "", ""},
		{"transport", &gitspatial.TransportError{Op: "GET", Err: errors.New("refused")}, false, "Connection Error", ""},
		{"unauthorized", &gitspatial.RequestRejected{StatusCode: 401}, false, "Authentication Error", ""},
		{"forbidden with message", &gitspatial.RequestRejected{StatusCode: 403, Message: "permission denied"}, false, "Permission Denied", "permission denied"},
		{"forbidden bare", &gitspatial.RequestRejected{StatusCode: 403}, false, "Permission Denied", "You do not have access to this resource."},
		{"not found", &gitspatial.RequestRejected{StatusCode: 404}, false, "Not Found", ""},
		{"limit", &gitspatial.RequestRejected{StatusCode: 400, Message: "limit reached"}, false, "Error", "limit reached"},
		{"other", errors.New("boom"), false, "Error", "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ClassifyError(tt.err)
			if tt.wantNil {
				if info != nil {
					t.Errorf("expected nil, got %+v", info)
				}
				return
			}
			if info == nil {
				t.Fatal("expected error info")
			}
			if info.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", info.Title, tt.wantTitle)
			}
			if tt.wantMsg != "" && info.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", info.Message, tt.wantMsg)
			}
		})
	}
}
