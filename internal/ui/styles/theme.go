package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the application.
// Colors can be ANSI 256 codes (e.g., "33") or hex values (e.g., "#7c6f64").
type Theme struct {
	Name string

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Status colors. Success and Error double as the sync and unsync button colors.
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	Background    lipgloss.Color
	BackgroundAlt lipgloss.Color // modals

	Foreground      lipgloss.Color
	ForegroundMuted lipgloss.Color // disabled controls, metadata
	ForegroundBold  lipgloss.Color

	SelectForeground lipgloss.Color
	SelectBackground lipgloss.Color

	Border  lipgloss.Color
	Link    lipgloss.Color
	Spinner lipgloss.Color
}

// Validate checks that the theme is usable.
func (t Theme) Validate() error {
	if t.Name == "" {
		return ErrThemeNameRequired
	}
	return nil
}

// ThemeError represents errors related to theme operations.
type ThemeError struct {
	Message string
}

func (e ThemeError) Error() string {
	return e.Message
}

// Common theme errors
var (
	ErrThemeNameRequired = ThemeError{Message: "theme name is required"}
	ErrThemeNotFound     = ThemeError{Message: "theme not found"}
)
