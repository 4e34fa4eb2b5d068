package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Elpulgo/gitspatial-tui/internal/ui/styles"
)

// HelpBinding represents a single keybinding entry.
type HelpBinding struct {
	Key         string
	Description string
}

// HelpSection represents a group of related keybindings.
type HelpSection struct {
	Title    string
	Bindings []HelpBinding
}

// HelpModal is an overlay that displays available keybindings.
type HelpModal struct {
	styles   *styles.Styles
	visible  bool
	width    int
	height   int
	sections []HelpSection
}

// NewHelpModal creates a new HelpModal with the default keybindings.
func NewHelpModal(s *styles.Styles) *HelpModal {
	return &HelpModal{
		styles: s,
		sections: []HelpSection{
			{
				Title: "Navigation",
				Bindings: []HelpBinding{
					{Key: "↑/k", Description: "Move up"},
					{Key: "↓/j", Description: "Move down"},
				},
			},
			{
				Title: "Sync",
				Bindings: []HelpBinding{
					{Key: "enter/space", Description: "Sync, unsync or retry"},
					{Key: "r", Description: "Refresh statuses"},
					{Key: "f", Description: "Search by name (esc to clear)"},
				},
			},
			{
				Title: "General",
				Bindings: []HelpBinding{
					{Key: "t", Description: "Select theme"},
					{Key: "?", Description: "Toggle help"},
					{Key: "q", Description: "Quit application"},
				},
			},
		},
	}
}

// Toggle toggles the help modal visibility.
func (h *HelpModal) Toggle() {
	h.visible = !h.visible
}

// Hide hides the help modal.
func (h *HelpModal) Hide() {
	h.visible = false
}

// IsVisible returns true if the modal is visible.
func (h *HelpModal) IsVisible() bool {
	return h.visible
}

// SetStyles swaps the styles, e.g. after a theme change.
func (h *HelpModal) SetStyles(s *styles.Styles) {
	h.styles = s
}

// SetSize sets the available size for the modal.
func (h *HelpModal) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// Sections returns the keybinding sections shown by the modal.
func (h *HelpModal) Sections() []HelpSection {
	return h.sections
}

// Update handles key events for the help modal.
func (h *HelpModal) Update(msg tea.Msg) (*HelpModal, tea.Cmd) {
	if !h.visible {
		return h, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q", "?":
			h.Hide()
		}
	}
	return h, nil
}

// View renders the help modal overlay.
func (h *HelpModal) View() string {
	if !h.visible {
		return ""
	}

	theme := h.styles.Theme
	sectionStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).MarginTop(1)
	keyStyle := h.styles.Key.Width(14)

	var content strings.Builder
	content.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("⌨ Keyboard Shortcuts"))
	content.WriteString("\n")

	for _, section := range h.sections {
		content.WriteString(sectionStyle.Render(section.Title))
		content.WriteString("\n")
		for _, b := range section.Bindings {
			content.WriteString(keyStyle.Render(b.Key) + h.styles.Description.Render(b.Description))
			content.WriteString("\n")
		}
	}

	content.WriteString("\n")
	content.WriteString(h.styles.Muted.Render("Press esc, q, or ? to close"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 2).
		Background(theme.BackgroundAlt).
		Render(content.String())

	return centerOverlay(modal, h.width, h.height)
}
