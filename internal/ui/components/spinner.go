package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Elpulgo/gitspatial-tui/internal/ui/styles"
)

// LoadingIndicator wraps the bubbles spinner. It renders a message while
// visible and exposes the current frame for inline use in table rows.
type LoadingIndicator struct {
	styles  *styles.Styles
	spinner spinner.Model
	message string
	visible bool
}

// NewLoadingIndicator creates a new LoadingIndicator with default settings.
func NewLoadingIndicator(s *styles.Styles) *LoadingIndicator {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Spinner

	return &LoadingIndicator{
		styles:  s,
		spinner: sp,
		message: "Loading...",
	}
}

// SetMessage sets the loading message to display.
func (l *LoadingIndicator) SetMessage(msg string) {
	l.message = msg
}

// SetVisible sets whether the loading indicator is visible.
func (l *LoadingIndicator) SetVisible(visible bool) {
	l.visible = visible
}

// IsVisible returns whether the loading indicator is currently visible.
func (l *LoadingIndicator) IsVisible() bool {
	return l.visible
}

// Tick returns the spinner tick command.
func (l *LoadingIndicator) Tick() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner on its own tick messages.
func (l *LoadingIndicator) Update(msg tea.Msg) (*LoadingIndicator, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(tick)
		return l, cmd
	}
	return l, nil
}

// Frame returns the current spinner frame.
func (l *LoadingIndicator) Frame() string {
	return l.spinner.View()
}

// View renders the loading indicator, or an empty string when hidden.
func (l *LoadingIndicator) View() string {
	if !l.visible {
		return ""
	}
	return l.spinner.View() + " " + l.styles.Spinner.Render(l.message)
}
