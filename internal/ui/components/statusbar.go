package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Elpulgo/gitspatial-tui/internal/polling"
	"github.com/Elpulgo/gitspatial-tui/internal/ui/styles"
)

// StatusBar displays the server host, poll activity, connection state and
// help hints at the bottom of the screen.
type StatusBar struct {
	styles   *styles.Styles
	host     string
	state    polling.ConnectionState
	recovery string
	syncing  int
	notice   string
	helpText string
	width    int
}

// NewStatusBar creates a new StatusBar with default values.
func NewStatusBar(s *styles.Styles) *StatusBar {
	return &StatusBar{
		styles:   s,
		state:    polling.StateConnecting,
		helpText: "? help",
	}
}

// SetHost sets the server host to display.
func (s *StatusBar) SetHost(host string) {
	s.host = host
}

// SetState sets the connection state.
func (s *StatusBar) SetState(state polling.ConnectionState) {
	s.state = state
}

// SetRecovery sets the message shown next to a failing connection state.
func (s *StatusBar) SetRecovery(msg string) {
	s.recovery = msg
}

// SetSyncing sets the number of resources currently syncing.
func (s *StatusBar) SetSyncing(n int) {
	s.syncing = n
}

// SetNotice sets a short informational message, such as an available update.
func (s *StatusBar) SetNotice(notice string) {
	s.notice = notice
}

// SetHelpText sets custom help text to display.
func (s *StatusBar) SetHelpText(text string) {
	s.helpText = text
}

// SetStyles swaps the styles, e.g. after a theme change.
func (s *StatusBar) SetStyles(st *styles.Styles) {
	s.styles = st
}

// SetWidth sets the width of the status bar.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// View renders the status bar.
func (s *StatusBar) View() string {
	left := s.renderLeft()
	center := s.renderConnectionState()
	right := s.styles.Muted.Render(s.helpText)

	content := lipgloss.Width(left) + lipgloss.Width(center) + lipgloss.Width(right)
	space := s.width - content
	if space < 2 {
		space = 2
	}
	leftPad := space / 2

	bar := left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", space-leftPad) + right

	return lipgloss.NewStyle().
		Background(s.styles.Theme.Background).
		Foreground(s.styles.Theme.Foreground).
		Padding(0, 1).
		Inline(true).
		Render(bar)
}

func (s *StatusBar) renderLeft() string {
	var parts []string
	if s.host != "" {
		parts = append(parts, s.styles.Bold.Render(s.host))
	}
	if s.syncing > 0 {
		parts = append(parts, s.styles.Warning.Render(fmt.Sprintf("%d syncing", s.syncing)))
	}
	if s.notice != "" {
		parts = append(parts, s.styles.Info.Render(s.notice))
	}
	return strings.Join(parts, s.styles.Muted.Render(" │ "))
}

// renderConnectionState renders the connection state indicator.
func (s *StatusBar) renderConnectionState() string {
	indicator := s.renderIndicator()
	if s.recovery == "" || s.state == polling.StateConnected {
		return indicator
	}
	return indicator + " " + s.styles.Muted.Render(s.recovery)
}

func (s *StatusBar) renderIndicator() string {
	switch s.state {
	case polling.StateConnected:
		return s.styles.Connected.Render("● connected")
	case polling.StateConnecting:
		return s.styles.Connecting.Render("○ connecting")
	case polling.StateDisconnected:
		return s.styles.Disconnected.Render("○ disconnected")
	case polling.StateError:
		return s.styles.ConnError.Render("✗ error")
	default:
		return s.styles.Disconnected.Render(fmt.Sprintf("? %s", s.state))
	}
}
