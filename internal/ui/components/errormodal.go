package components

import (
	"errors"
	"net/http"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Elpulgo/gitspatial-tui/internal/gitspatial"
	"github.com/Elpulgo/gitspatial-tui/internal/ui/styles"
)

// minErrorModalWidth is the minimum width for the error modal content.
const minErrorModalWidth = 50

// SyncFailedTitle is the modal title for a failed start or stop.
const SyncFailedTitle = "Sync Failed"

// ErrorInfo holds classified error information for display in the error modal.
type ErrorInfo struct {
	Title   string
	Message string
	Hint    string
}

// ErrorModal is an overlay that displays error messages until dismissed.
type ErrorModal struct {
	styles  *styles.Styles
	visible bool
	width   int
	height  int
	title   string
	message string
	hint    string
}

// NewErrorModal creates a new ErrorModal.
func NewErrorModal(s *styles.Styles) *ErrorModal {
	return &ErrorModal{styles: s}
}

// Show makes the error modal visible with the given content.
func (m *ErrorModal) Show(title, message, hint string) {
	m.title = title
	m.message = message
	m.hint = hint
	m.visible = true
}

// ShowInfo shows a classified error.
func (m *ErrorModal) ShowInfo(info ErrorInfo) {
	m.Show(info.Title, info.Message, info.Hint)
}

// Hide hides the error modal.
func (m *ErrorModal) Hide() {
	m.visible = false
}

// IsVisible returns true if the modal is visible.
func (m *ErrorModal) IsVisible() bool {
	return m.visible
}

// SetStyles swaps the styles, e.g. after a theme change.
func (m *ErrorModal) SetStyles(s *styles.Styles) {
	m.styles = s
}

// SetSize sets the available size for the modal.
func (m *ErrorModal) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles key events for the error modal.
func (m *ErrorModal) Update(msg tea.Msg) (*ErrorModal, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "enter", "q":
			m.Hide()
		}
	}
	return m, nil
}

// View renders the error modal overlay.
func (m *ErrorModal) View() string {
	if !m.visible {
		return ""
	}

	contentWidth := minErrorModalWidth
	for _, s := range []string{m.title, m.message} {
		if w := lipgloss.Width(s); w > contentWidth {
			contentWidth = w
		}
	}

	theme := m.styles.Theme
	base := lipgloss.NewStyle().Width(contentWidth).Background(theme.BackgroundAlt)

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Error).
		Padding(1, 2).
		Background(theme.BackgroundAlt)

	var content strings.Builder
	content.WriteString(base.Foreground(theme.Error).Bold(true).MarginBottom(1).Render(m.title))
	content.WriteString("\n")
	content.WriteString(base.Foreground(theme.Foreground).Render(m.message))
	content.WriteString("\n")
	if m.hint != "" {
		content.WriteString(base.Foreground(theme.Accent).Bold(true).MarginTop(1).Render(m.hint))
		content.WriteString("\n")
	}
	content.WriteString("\n")
	content.WriteString(base.Foreground(theme.ForegroundMuted).Render("Press esc to dismiss"))

	return centerOverlay(modalStyle.Render(content.String()), m.width, m.height)
}

// ClassifyError turns a request error into modal content. Rejections carrying
// a server message are shown verbatim; well-known status codes get a hint.
func ClassifyError(err error) *ErrorInfo {
	if err == nil {
		return nil
	}

	if gitspatial.IsTransport(err) {
		return &ErrorInfo{
			Title:   "Connection Error",
			Message: "Could not reach the GitSpatial server.",
			Hint:    "Check your network connection and the base_url in your config.",
		}
	}

	var rejected *gitspatial.RequestRejected
	if !errors.As(err, &rejected) {
		return &ErrorInfo{Title: "Error", Message: err.Error()}
	}

	switch rejected.StatusCode {
	case http.StatusUnauthorized:
		return &ErrorInfo{
			Title:   "Authentication Error",
			Message: "Your API token may be expired or invalid.",
			Hint:    "Run 'gitspatial-tui auth' to update your token.",
		}
	case http.StatusForbidden:
		if rejected.Message != "" {
			return &ErrorInfo{Title: "Permission Denied", Message: rejected.Message}
		}
		return &ErrorInfo{
			Title:   "Permission Denied",
			Message: "You do not have access to this resource.",
			Hint:    "Check the ids in your config belong to your account.",
		}
	case http.StatusNotFound:
		return &ErrorInfo{
			Title:   "Not Found",
			Message: "The resource does not exist on the server.",
			Hint:    "Check the ids in your config.",
		}
	}

	return &ErrorInfo{Title: "Error", Message: gitspatial.FailureMessage(err)}
}
