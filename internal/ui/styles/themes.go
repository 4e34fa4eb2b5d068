package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// themeRegistry holds all built-in themes
var themeRegistry = map[string]Theme{
	"dark":    darkTheme,
	"gruvbox": gruvboxTheme,
	"nord":    nordTheme,
	"dracula": draculaTheme,
}

// GetThemeByName returns a theme by name.
// Returns ErrThemeNotFound if the theme doesn't exist.
func GetThemeByName(name string) (Theme, error) {
	theme, ok := themeRegistry[name]
	if !ok {
		return Theme{}, ErrThemeNotFound
	}
	return theme, nil
}

// GetThemeByNameWithFallback returns a theme by name, falling back to the
// default theme if the requested theme doesn't exist.
func GetThemeByNameWithFallback(name string) Theme {
	theme, err := GetThemeByName(name)
	if err != nil {
		return GetDefaultTheme()
	}
	return theme
}

// GetDefaultTheme returns the default dark theme.
func GetDefaultTheme() Theme {
	return darkTheme
}

// ListAvailableThemes returns a sorted list of all available theme names.
func ListAvailableThemes() []string {
	names := make([]string, 0, len(themeRegistry))
	for name := range themeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var darkTheme = Theme{
	Name:             "dark",
	Primary:          lipgloss.Color("33"),
	Secondary:        lipgloss.Color("39"),
	Accent:           lipgloss.Color("212"),
	Success:          lipgloss.Color("42"),
	Warning:          lipgloss.Color("214"),
	Error:            lipgloss.Color("196"),
	Info:             lipgloss.Color("33"),
	Background:       lipgloss.Color("236"),
	BackgroundAlt:    lipgloss.Color("235"),
	Foreground:       lipgloss.Color("252"),
	ForegroundMuted:  lipgloss.Color("243"),
	ForegroundBold:   lipgloss.Color("255"),
	SelectForeground: lipgloss.Color("229"),
	SelectBackground: lipgloss.Color("57"),
	Border:           lipgloss.Color("240"),
	Link:             lipgloss.Color("81"),
	Spinner:          lipgloss.Color("205"),
}

var gruvboxTheme = Theme{
	Name:             "gruvbox",
	Primary:          lipgloss.Color("#458588"),
	Secondary:        lipgloss.Color("#689d6a"),
	Accent:           lipgloss.Color("#d3869b"),
	Success:          lipgloss.Color("#b8bb26"),
	Warning:          lipgloss.Color("#fabd2f"),
	Error:            lipgloss.Color("#fb4934"),
	Info:             lipgloss.Color("#83a598"),
	Background:       lipgloss.Color("#282828"),
	BackgroundAlt:    lipgloss.Color("#1d2021"),
	Foreground:       lipgloss.Color("#ebdbb2"),
	ForegroundMuted:  lipgloss.Color("#928374"),
	ForegroundBold:   lipgloss.Color("#fbf1c7"),
	SelectForeground: lipgloss.Color("#fabd2f"),
	SelectBackground: lipgloss.Color("#504945"),
	Border:           lipgloss.Color("#504945"),
	Link:             lipgloss.Color("#83a598"),
	Spinner:          lipgloss.Color("#d3869b"),
}

var nordTheme = Theme{
	Name:             "nord",
	Primary:          lipgloss.Color("#81a1c1"),
	Secondary:        lipgloss.Color("#88c0d0"),
	Accent:           lipgloss.Color("#b48ead"),
	Success:          lipgloss.Color("#a3be8c"),
	Warning:          lipgloss.Color("#ebcb8b"),
	Error:            lipgloss.Color("#bf616a"),
	Info:             lipgloss.Color("#5e81ac"),
	Background:       lipgloss.Color("#2e3440"),
	BackgroundAlt:    lipgloss.Color("#3b4252"),
	Foreground:       lipgloss.Color("#eceff4"),
	ForegroundMuted:  lipgloss.Color("#4c566a"),
	ForegroundBold:   lipgloss.Color("#eceff4"),
	SelectForeground: lipgloss.Color("#eceff4"),
	SelectBackground: lipgloss.Color("#434c5e"),
	Border:           lipgloss.Color("#4c566a"),
	Link:             lipgloss.Color("#88c0d0"),
	Spinner:          lipgloss.Color("#b48ead"),
}

var draculaTheme = Theme{
	Name:             "dracula",
	Primary:          lipgloss.Color("#bd93f9"),
	Secondary:        lipgloss.Color("#8be9fd"),
	Accent:           lipgloss.Color("#ff79c6"),
	Success:          lipgloss.Color("#50fa7b"),
	Warning:          lipgloss.Color("#ffb86c"),
	Error:            lipgloss.Color("#ff5555"),
	Info:             lipgloss.Color("#8be9fd"),
	Background:       lipgloss.Color("#282a36"),
	BackgroundAlt:    lipgloss.Color("#21222c"),
	Foreground:       lipgloss.Color("#f8f8f2"),
	ForegroundMuted:  lipgloss.Color("#6272a4"),
	ForegroundBold:   lipgloss.Color("#ffffff"),
	SelectForeground: lipgloss.Color("#f1fa8c"),
	SelectBackground: lipgloss.Color("#44475a"),
	Border:           lipgloss.Color("#44475a"),
	Link:             lipgloss.Color("#8be9fd"),
	Spinner:          lipgloss.Color("#ff79c6"),
}
