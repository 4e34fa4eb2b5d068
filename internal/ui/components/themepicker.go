package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Elpulgo/gitspatial-tui/internal/ui/styles"
)

// ThemeSelectedMsg is sent when a theme is selected
type ThemeSelectedMsg struct {
	ThemeName string
}

var (
	pickerUp     = key.NewBinding(key.WithKeys("up", "k"))
	pickerDown   = key.NewBinding(key.WithKeys("down", "j"))
	pickerSelect = key.NewBinding(key.WithKeys("enter"))
	pickerCancel = key.NewBinding(key.WithKeys("esc", "q"))
)

// ThemePicker is a modal component for selecting themes
type ThemePicker struct {
	styles  *styles.Styles
	visible bool
	width   int
	height  int
	themes  []string
	current string
	cursor  int
}

// NewThemePicker creates a theme picker with the cursor on the current theme
func NewThemePicker(s *styles.Styles, themes []string, current string) *ThemePicker {
	p := &ThemePicker{styles: s, themes: themes}
	p.SetCurrent(current)
	return p
}

// SetCurrent marks the active theme and moves the cursor to it.
func (p *ThemePicker) SetCurrent(name string) {
	p.current = name
	for i, t := range p.themes {
		if t == name {
			p.cursor = i
			return
		}
	}
}

// SetStyles swaps the styles, e.g. after a theme change.
func (p *ThemePicker) SetStyles(s *styles.Styles) {
	p.styles = s
}

// Show makes the theme picker visible
func (p *ThemePicker) Show() {
	p.visible = true
}

// IsVisible returns whether the theme picker is visible
func (p *ThemePicker) IsVisible() bool {
	return p.visible
}

// SetSize sets the dimensions for centering
func (p *ThemePicker) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Cursor returns the current cursor position
func (p *ThemePicker) Cursor() int {
	return p.cursor
}

// Update handles key messages while visible
func (p *ThemePicker) Update(msg tea.Msg) (*ThemePicker, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !p.visible || !ok {
		return p, nil
	}

	switch {
	case key.Matches(keyMsg, pickerCancel):
		p.visible = false
	case key.Matches(keyMsg, pickerUp):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(keyMsg, pickerDown):
		if p.cursor < len(p.themes)-1 {
			p.cursor++
		}
	case key.Matches(keyMsg, pickerSelect):
		if len(p.themes) == 0 {
			return p, nil
		}
		selected := p.themes[p.cursor]
		p.visible = false
		return p, func() tea.Msg {
			return ThemeSelectedMsg{ThemeName: selected}
		}
	}
	return p, nil
}

// View renders the theme picker
func (p *ThemePicker) View() string {
	if !p.visible {
		return ""
	}

	var list strings.Builder
	for i, name := range p.themes {
		cursor := " "
		if i == p.cursor {
			cursor = ">"
		}
		suffix := ""
		if name == p.current {
			suffix = " (current)"
		}
		line := fmt.Sprintf("%s %s%s", cursor, name, suffix)
		if i == p.cursor {
			line = p.styles.Selected.Render(line)
		} else {
			line = p.styles.Description.Render(line)
		}
		list.WriteString(line + "\n")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		p.styles.Title.Render("Select Theme"),
		"",
		list.String(),
		p.styles.Muted.Render("↑/↓: navigate • enter: select • esc/q: cancel"),
	)

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.styles.Theme.Border).
		Padding(1, 2).
		Background(p.styles.Theme.Background).
		Render(content)

	return centerOverlay(modal, p.width, p.height)
}
