// Package resources is the view of configured repositories and feature sets.
// Each row is bound to a sync controller and re-rendered from the render
// instructions the controller emits.
package resources

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Elpulgo/gitspatial-tui/internal/config"
	"github.com/Elpulgo/gitspatial-tui/internal/gitspatial"
	"github.com/Elpulgo/gitspatial-tui/internal/polling"
	"github.com/Elpulgo/gitspatial-tui/internal/status"
	"github.com/Elpulgo/gitspatial-tui/internal/syncctl"
	"github.com/Elpulgo/gitspatial-tui/internal/ui/components"
	"github.com/Elpulgo/gitspatial-tui/internal/ui/styles"
)

// NoticeMsg asks the root model to surface a failure for one resource.
type NoticeMsg struct {
	Ref     gitspatial.Ref
	Name    string
	Message string
}

// Row is the rendered state of one resource's sync control.
type Row struct {
	Entry   config.Entry
	Status  status.Status
	Attrs   status.DisplayAttributes
	Classes status.ClassSet
	Bound   bool
}

// Model is the resources view.
type Model struct {
	styles   *styles.Styles
	keys     KeyMap
	registry *syncctl.Registry
	client   syncctl.Client
	log      zerolog.Logger

	rows    []Row
	index   map[gitspatial.Ref]int
	visible []int // indexes into rows matching the search query
	cursor  int   // index into visible
	loaded  bool
	spinner *components.LoadingIndicator

	searching   bool
	searchInput textinput.Model
	query       string
	viewport    viewport.Model

	width  int
	height int
}

// New creates the view for entries. Statuses are fetched by Init.
func New(entries []config.Entry, client syncctl.Client, registry *syncctl.Registry, s *styles.Styles, log zerolog.Logger) *Model {
	rows := make([]Row, len(entries))
	index := make(map[gitspatial.Ref]int, len(entries))
	for i, e := range entries {
		rows[i] = Row{Entry: e, Classes: status.NewClassSet()}
		index[e.Ref] = i
	}

	sp := components.NewLoadingIndicator(s)
	sp.SetMessage("Fetching sync statuses...")
	sp.SetVisible(true)

	m := &Model{
		styles:      s,
		keys:        DefaultKeyMap(),
		registry:    registry,
		client:      client,
		log:         log,
		rows:        rows,
		index:       index,
		visible:     make([]int, 0, len(rows)),
		spinner:     sp,
		searchInput: newSearchInput(),
		viewport:    viewport.New(0, 0),
	}
	m.applyFilter()
	return m
}

// Init fetches the current status of every row.
func (m *Model) Init() tea.Cmd {
	refs := make([]gitspatial.Ref, len(m.rows))
	for i, r := range m.rows {
		refs[i] = r.Entry.Ref
	}
	return tea.Batch(fetchStatuses(m.client, refs), m.spinner.Tick())
}

// Update handles keys, bootstrap results and every sync message.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StatusesLoadedMsg:
		return m, m.bind(msg.Results)

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case syncctl.ToggleMsg, syncctl.StartResultMsg, syncctl.StopResultMsg,
		syncctl.RefreshedMsg, polling.TickMsg, polling.StatusFetchedMsg:
		return m, m.route(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.searching {
		return m.updateSearch(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(false)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(true)
	case key.Matches(msg, m.keys.Toggle):
		if row, ok := m.Selected(); ok && row.Bound {
			return m.route(toggleFor(row))
		}
	case key.Matches(msg, m.keys.Refresh):
		return m.refresh()
	case key.Matches(msg, m.keys.Search):
		if m.loaded {
			return m.enterSearch()
		}
	}
	return nil
}

func (m *Model) moveCursor(down bool) {
	switch {
	case down && m.cursor < len(m.visible)-1:
		m.cursor++
	case !down && m.cursor > 0:
		m.cursor--
	}
}

func toggleFor(row Row) syncctl.ToggleMsg {
	return syncctl.ToggleMsg{Ref: row.Entry.Ref}
}

// bind attaches a controller to every row. Rows whose status could not be
// fetched start as not synced.
func (m *Model) bind(results []FetchResult) tea.Cmd {
	var cmds []tea.Cmd
	var lastErr error
	succeeded := false
	for _, res := range results {
		initial := res.Status
		if res.Err != nil {
			m.log.Warn().Str("ref", res.Ref.String()).Err(res.Err).Msg("initial status fetch failed")
			initial = status.NotSynced
			lastErr = res.Err
		} else {
			succeeded = true
		}
		render, cmd := m.registry.Bind(res.Ref, string(initial))
		m.apply(render)
		cmds = append(cmds, cmd)
	}
	m.loaded = true
	m.spinner.SetVisible(false)

	errs := m.registry.Poller().Errors()
	if succeeded {
		errs.ClearError()
	} else if lastErr != nil {
		errs.SetError(lastErr)
	}
	return tea.Batch(cmds...)
}

// refresh re-fetches the status of every idle row.
func (m *Model) refresh() tea.Cmd {
	var cmds []tea.Cmd
	for _, row := range m.rows {
		if c, ok := m.registry.Get(row.Entry.Ref); ok && c.Interactive() {
			cmds = append(cmds, m.registry.Refresh(row.Entry.Ref))
		}
	}
	return tea.Batch(cmds...)
}

// route hands msg to the registry and applies the renders it produces.
func (m *Model) route(msg tea.Msg) tea.Cmd {
	renders, cmd := m.registry.Update(msg)
	cmds := []tea.Cmd{cmd}
	for _, r := range renders {
		m.apply(r)
		if r.Notice != "" {
			notice := NoticeMsg{Ref: r.Ref, Name: m.nameOf(r.Ref), Message: r.Notice}
			cmds = append(cmds, func() tea.Msg { return notice })
		}
	}
	return tea.Batch(cmds...)
}

// apply updates a row from a render instruction.
func (m *Model) apply(r syncctl.Render) {
	i, ok := m.index[r.Ref]
	if !ok {
		return
	}
	row := &m.rows[i]
	row.Status = r.Status
	row.Attrs = r.Attrs
	row.Classes.Apply(r.Attrs)
	row.Bound = true
}

func (m *Model) nameOf(ref gitspatial.Ref) string {
	if i, ok := m.index[ref]; ok {
		return m.rows[i].Entry.Name
	}
	return ref.String()
}

// Close tears down every controller. Late results are dropped.
func (m *Model) Close() {
	m.registry.Close()
}

// Rows returns the current rows.
func (m *Model) Rows() []Row {
	return m.rows
}

// VisibleRows returns the rows matching the search query.
func (m *Model) VisibleRows() []Row {
	out := make([]Row, len(m.visible))
	for i, idx := range m.visible {
		out[i] = m.rows[idx]
	}
	return out
}

// Selected returns the row under the cursor.
func (m *Model) Selected() (Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return Row{}, false
	}
	return m.rows[m.visible[m.cursor]], true
}

// Cursor returns the selected row index.
func (m *Model) Cursor() int {
	return m.cursor
}

// Loaded reports whether the initial statuses have been bound.
func (m *Model) Loaded() bool {
	return m.loaded
}

// SyncingCount returns the number of rows with a poll in progress.
func (m *Model) SyncingCount() int {
	return m.registry.Poller().ActiveCount()
}

// ConnectionState reports the health of status polling.
func (m *Model) ConnectionState() polling.ConnectionState {
	return m.registry.Poller().Errors().State()
}

// ConnectionMessage describes a failing connection, or is empty when healthy.
func (m *Model) ConnectionMessage() string {
	return m.registry.Poller().Errors().RecoveryMessage()
}

// SetStyles swaps the styles, e.g. after a theme change.
func (m *Model) SetStyles(s *styles.Styles) {
	m.styles = s
}

// SetSize sets the available size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.searchInput.Width = width - 4
}
