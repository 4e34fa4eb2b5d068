package resources

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Elpulgo/gitspatial-tui/internal/status"
)

// Column widths. The name column absorbs the remaining width.
const (
	cursorWidth = 2
	kindWidth   = 13
	statusWidth = 22
	buttonWidth = 12
	minName     = 16
)

// View renders the table of resources.
func (m *Model) View() string {
	if !m.loaded {
		return "\n  " + m.spinner.View()
	}
	if len(m.rows) == 0 {
		return m.styles.Muted.Render("\n  No repos or feature sets configured. Add them to your config file.")
	}

	nameWidth := m.width - cursorWidth - kindWidth - statusWidth - buttonWidth - 4
	if nameWidth < minName {
		nameWidth = minName
	}

	header := strings.Repeat(" ", cursorWidth) +
		pad("Type", kindWidth) + " " +
		pad("Name", nameWidth) + " " +
		pad("Status", statusWidth) + " " +
		"Action"

	lines := make([]string, 0, len(m.visible))
	for i, idx := range m.visible {
		lines = append(lines, m.renderRow(m.rows[idx], i == m.cursor, nameWidth))
	}
	if len(lines) == 0 {
		lines = append(lines, m.styles.Muted.Render(fmt.Sprintf("  No resources match %q", m.query)))
	}

	parts := []string{m.styles.Header.Render(header)}
	if m.searching || m.query != "" {
		parts = append(parts, m.searchInput.View())
	}
	parts = append(parts, m.scroll(lines, len(parts)))
	return strings.Join(parts, "\n")
}

// scroll fits lines into the space below the chrome, keeping the cursor row
// in view.
func (m *Model) scroll(lines []string, chrome int) string {
	height := m.height - chrome
	if m.height <= 0 || len(lines) <= height {
		return strings.Join(lines, "\n")
	}

	m.viewport.Width = m.width
	m.viewport.Height = height
	m.viewport.SetContent(strings.Join(lines, "\n"))

	switch {
	case m.cursor < m.viewport.YOffset:
		m.viewport.SetYOffset(m.cursor)
	case m.cursor >= m.viewport.YOffset+height:
		m.viewport.SetYOffset(m.cursor - height + 1)
	}
	return m.viewport.View()
}

func (m *Model) renderRow(row Row, selected bool, nameWidth int) string {
	cursor := "  "
	if selected {
		cursor = m.styles.Key.Render("> ")
	}

	kind := m.styles.Muted.Render(pad(row.Entry.Ref.Kind.Label(), kindWidth))

	name := pad(row.Entry.Name, nameWidth)
	if row.Attrs.Linked {
		name = m.styles.Link.Render(name)
	} else if selected {
		name = m.styles.Bold.Render(name)
	} else {
		name = m.styles.Description.Render(name)
	}

	if !row.Bound {
		return cursor + kind + " " + name + " " + m.styles.Muted.Render("…")
	}

	label := row.Attrs.StatusLabel
	if row.Status == status.Syncing {
		label = m.spinner.Frame() + " " + label
	}
	statusCell := m.statusStyle(row.Classes).Render(pad(label, statusWidth))
	button := m.buttonStyle(row.Classes).Render(row.Attrs.ButtonLabel)

	return cursor + kind + " " + name + " " + statusCell + " " + button
}

// buttonStyle maps the control's class set to a button style.
func (m *Model) buttonStyle(classes status.ClassSet) lipgloss.Style {
	switch {
	case classes.Has(status.ClassDisabled):
		return m.styles.ButtonDisabled
	case classes.Has(status.ClassDanger):
		return m.styles.ButtonUnsync
	case classes.Has(status.ClassSuccess):
		return m.styles.ButtonSync
	default:
		return m.styles.Muted
	}
}

// statusStyle maps the control's class set to a status label style.
func (m *Model) statusStyle(classes status.ClassSet) lipgloss.Style {
	switch {
	case classes.Has(status.ClassSynced):
		return m.styles.Success
	case classes.Has(status.ClassDisabled):
		return m.styles.Warning
	case classes.Has(status.ClassDanger):
		return m.styles.Error
	default:
		return m.styles.Muted
	}
}

// pad truncates or right-pads s to exactly width cells.
func pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w > width {
		r := []rune(s)
		for lipgloss.Width(string(r)) > width-1 && len(r) > 0 {
			r = r[:len(r)-1]
		}
		return string(r) + "…"
	}
	return s + strings.Repeat(" ", width-w)
}

// HelpText returns the short key hints for the status bar.
func (m *Model) HelpText() string {
	return fmt.Sprintf("%s %s • %s %s • %s %s • ? help",
		m.keys.Toggle.Help().Key, m.keys.Toggle.Help().Desc,
		m.keys.Refresh.Help().Key, m.keys.Refresh.Help().Desc,
		m.keys.Search.Help().Key, m.keys.Search.Help().Desc)
}
