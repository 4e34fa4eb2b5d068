// Package app wires the resources view, modals and status bar into the root
// Bubble Tea model, and runs one-shot headless sync operations.
package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/Elpulgo/gitspatial-tui/internal/config"
	"github.com/Elpulgo/gitspatial-tui/internal/polling"
	"github.com/Elpulgo/gitspatial-tui/internal/syncctl"
	"github.com/Elpulgo/gitspatial-tui/internal/ui/components"
	"github.com/Elpulgo/gitspatial-tui/internal/ui/resources"
	"github.com/Elpulgo/gitspatial-tui/internal/ui/styles"
	"github.com/Elpulgo/gitspatial-tui/internal/version"
)

// Model is the root application model for the TUI
type Model struct {
	config    *config.Config
	styles    *styles.Styles
	log       zerolog.Logger
	checker   *version.Checker
	version   string
	pollOpts  []polling.Option
	host      string
	resources *resources.Model

	statusBar   *components.StatusBar
	errorModal  *components.ErrorModal
	helpModal   *components.HelpModal
	themePicker *components.ThemePicker

	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithHost sets the server host shown in the status bar.
func WithHost(host string) Option {
	return func(m *Model) { m.host = host }
}

// WithVersionCheck checks for a newer release on startup.
func WithVersionCheck(current string, checker *version.Checker) Option {
	return func(m *Model) {
		m.version = current
		m.checker = checker
	}
}

// WithPollOptions configures the status poller.
func WithPollOptions(opts ...polling.Option) Option {
	return func(m *Model) { m.pollOpts = append(m.pollOpts, opts...) }
}

// NewModel creates the root model for the resources in cfg.
func NewModel(client syncctl.Client, cfg *config.Config, log zerolog.Logger, opts ...Option) Model {
	m := Model{
		config: cfg,
		styles: styles.NewStyles(styles.GetThemeByNameWithFallback(cfg.GetTheme())),
		log:    log,
	}
	for _, opt := range opts {
		opt(&m)
	}

	registry := syncctl.NewRegistry(client, log, m.pollOpts...)
	m.resources = resources.New(cfg.Entries(), client, registry, m.styles, log)

	m.statusBar = components.NewStatusBar(m.styles)
	m.statusBar.SetHost(m.host)
	m.statusBar.SetHelpText(m.resources.HelpText())
	m.errorModal = components.NewErrorModal(m.styles)
	m.helpModal = components.NewHelpModal(m.styles)
	m.themePicker = components.NewThemePicker(m.styles, styles.ListAvailableThemes(), cfg.GetTheme())

	return m
}

// Init fetches the initial statuses and checks for updates.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.resources.Init()}
	if m.checker != nil && m.version != "dev" {
		cmds = append(cmds, m.checker.CheckCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.SetWidth(msg.Width)
		m.errorModal.SetSize(msg.Width, msg.Height)
		m.helpModal.SetSize(msg.Width, msg.Height)
		m.themePicker.SetSize(msg.Width, msg.Height)
		m.resources.SetSize(msg.Width, m.contentHeight())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case resources.StatusesLoadedMsg:
		// Nothing loaded usually means a bad token or base_url; say so up front.
		if info := components.ClassifyError(msg.Err()); info != nil {
			m.errorModal.ShowInfo(*info)
		}
		return m.forward(msg)

	case resources.NoticeMsg:
		m.errorModal.Show(components.SyncFailedTitle+": "+msg.Name, msg.Message, "")
		return m, nil

	case components.ThemeSelectedMsg:
		return m.applyTheme(msg.ThemeName), nil

	case version.UpdateCheckedMsg:
		if msg.Err != nil {
			m.log.Debug().Err(msg.Err).Msg("update check failed")
		} else if msg.Info != nil && msg.Info.UpdateAvailable {
			m.statusBar.SetNotice(fmt.Sprintf("update available: %s", msg.Info.LatestVersion))
		}
		return m, nil
	}

	return m.forward(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch {
	case m.errorModal.IsVisible():
		m.errorModal, _ = m.errorModal.Update(msg)
		return m, nil
	case m.themePicker.IsVisible():
		var cmd tea.Cmd
		m.themePicker, cmd = m.themePicker.Update(msg)
		return m, cmd
	case m.helpModal.IsVisible():
		m.helpModal, _ = m.helpModal.Update(msg)
		return m, nil
	case m.resources.Searching():
		return m.forward(msg)
	}

	switch msg.String() {
	case "q":
		return m.quit()
	case "?":
		m.helpModal.Toggle()
		return m, nil
	case "t":
		m.themePicker.SetCurrent(m.config.GetTheme())
		m.themePicker.Show()
		return m, nil
	}

	return m.forward(msg)
}

func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.resources, cmd = m.resources.Update(msg)
	m.syncStatusBar()
	return m, cmd
}

// quit tears down every sync controller so no poll outlives the view.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.resources.Close()
	return m, tea.Quit
}

func (m Model) applyTheme(name string) Model {
	s := styles.NewStyles(styles.GetThemeByNameWithFallback(name))
	m.styles = s
	m.resources.SetStyles(s)
	m.statusBar.SetStyles(s)
	m.errorModal.SetStyles(s)
	m.helpModal.SetStyles(s)
	m.themePicker.SetStyles(s)
	m.themePicker.SetCurrent(name)

	if err := m.config.UpdateTheme(name); err != nil {
		m.log.Warn().Err(err).Str("theme", name).Msg("failed to persist theme")
	}
	return m
}

func (m Model) syncStatusBar() {
	m.statusBar.SetSyncing(m.resources.SyncingCount())
	m.statusBar.SetState(m.resources.ConnectionState())
	m.statusBar.SetRecovery(m.resources.ConnectionMessage())
}

func (m Model) contentHeight() int {
	// title and status bar
	h := m.height - 3
	if h < 1 {
		return 1
	}
	return h
}

// View renders the application UI
func (m Model) View() string {
	switch {
	case m.errorModal.IsVisible():
		return m.errorModal.View()
	case m.themePicker.IsVisible():
		return m.themePicker.View()
	case m.helpModal.IsVisible():
		return m.helpModal.View()
	}

	title := m.styles.Title.Render("GitSpatial Sync")
	content := lipgloss.NewStyle().Height(m.contentHeight()).Render(m.resources.View())

	return lipgloss.JoinVertical(lipgloss.Left, title, content, m.statusBar.View())
}
