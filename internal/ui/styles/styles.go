package styles

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	ModalBox lipgloss.Style

	Header      lipgloss.Style
	Title       lipgloss.Style
	Muted       lipgloss.Style
	Bold        lipgloss.Style
	Key         lipgloss.Style
	Description lipgloss.Style
	Link        lipgloss.Style
	Spinner     lipgloss.Style
	Selected    lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	// Sync control buttons
	ButtonSync     lipgloss.Style
	ButtonUnsync   lipgloss.Style
	ButtonDisabled lipgloss.Style

	// Connection state styles
	Connected    lipgloss.Style
	Connecting   lipgloss.Style
	Disconnected lipgloss.Style
	ConnError    lipgloss.Style
}

// NewStyles creates a new Styles instance from the given theme.
func NewStyles(theme Theme) *Styles {
	s := &Styles{Theme: theme}

	s.ModalBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Background(theme.BackgroundAlt).
		Padding(1, 2)

	s.Header = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	s.Title = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	s.Muted = lipgloss.NewStyle().Foreground(theme.ForegroundMuted)
	s.Bold = lipgloss.NewStyle().Foreground(theme.ForegroundBold).Bold(true)
	s.Key = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	s.Description = lipgloss.NewStyle().Foreground(theme.Foreground)
	s.Link = lipgloss.NewStyle().Foreground(theme.Link).Underline(true)
	s.Spinner = lipgloss.NewStyle().Foreground(theme.Spinner)
	s.Selected = lipgloss.NewStyle().
		Foreground(theme.SelectForeground).
		Background(theme.SelectBackground)

	s.Success = lipgloss.NewStyle().Foreground(theme.Success)
	s.Warning = lipgloss.NewStyle().Foreground(theme.Warning)
	s.Error = lipgloss.NewStyle().Foreground(theme.Error)
	s.Info = lipgloss.NewStyle().Foreground(theme.Info)

	button := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	s.ButtonSync = button.Foreground(theme.Background).Background(theme.Success)
	s.ButtonUnsync = button.Foreground(theme.ForegroundBold).Background(theme.Error)
	s.ButtonDisabled = button.Bold(false).Foreground(theme.ForegroundMuted).Background(theme.BackgroundAlt)

	s.Connected = lipgloss.NewStyle().Foreground(theme.Success)
	s.Connecting = lipgloss.NewStyle().Foreground(theme.Warning)
	s.Disconnected = lipgloss.NewStyle().Foreground(theme.ForegroundMuted)
	s.ConnError = lipgloss.NewStyle().Foreground(theme.Error)

	return s
}

// DefaultStyles returns styles using the default dark theme.
func DefaultStyles() *Styles {
	return NewStyles(GetDefaultTheme())
}
