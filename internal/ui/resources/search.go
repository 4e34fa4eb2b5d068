package resources

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// searchBarHeight is the vertical space consumed by the search bar when active.
const searchBarHeight = 1

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter by name"
	ti.CharLimit = 100
	return ti
}

// Searching reports whether the search bar has focus. While it does, every
// key except ctrl+c belongs to the view.
func (m *Model) Searching() bool {
	return m.searching
}

func (m *Model) enterSearch() tea.Cmd {
	m.searching = true
	m.searchInput.SetValue("")
	m.query = ""
	m.applyFilter()
	return m.searchInput.Focus()
}

func (m *Model) exitSearch() {
	m.searching = false
	m.query = ""
	m.searchInput.Blur()
	m.applyFilter()
}

func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.exitSearch()
		return nil
	case "enter":
		if row, ok := m.Selected(); ok && row.Bound {
			return m.route(toggleFor(row))
		}
		return nil
	case "up", "down":
		m.moveCursor(msg.String() == "down")
		return nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	if q := m.searchInput.Value(); q != m.query {
		m.query = q
		m.applyFilter()
	}
	return cmd
}

// applyFilter recomputes the visible rows for the current query and keeps
// the cursor in range.
func (m *Model) applyFilter() {
	m.visible = m.visible[:0]
	q := strings.ToLower(strings.TrimSpace(m.query))
	for i, row := range m.rows {
		if q == "" || matches(row, q) {
			m.visible = append(m.visible, i)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func matches(row Row, q string) bool {
	return strings.Contains(strings.ToLower(row.Entry.Name), q) ||
		strings.Contains(row.Entry.Ref.String(), q)
}
