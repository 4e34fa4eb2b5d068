package styles

import "testing"

func TestNewStyles(t *testing.T) {
	theme := GetDefaultTheme()
	styles := NewStyles(theme)

	if styles.Theme.Name != theme.Name {
		t.Errorf("NewStyles() theme name = %q, want %q", styles.Theme.Name, theme.Name)
	}
}

func TestStylesStatusStyles(t *testing.T) {
	theme := GetDefaultTheme()
	styles := NewStyles(theme)

	if styles.Success.GetForeground() != theme.Success {
		t.Error("Success foreground doesn't match theme")
	}
	if styles.Error.GetForeground() != theme.Error {
		t.Error("Error foreground doesn't match theme")
	}
	if styles.Warning.GetForeground() != theme.Warning {
		t.Error("Warning foreground doesn't match theme")
	}
}

func TestStylesButtons(t *testing.T) {
	theme := GetDefaultTheme()
	styles := NewStyles(theme)

	if styles.ButtonSync.GetBackground() != theme.Success {
		t.Error("sync button should use the success color")
	}
	if styles.ButtonUnsync.GetBackground() != theme.Error {
		t.Error("unsync button should use the error color")
	}
	if styles.ButtonDisabled.GetForeground() != theme.ForegroundMuted {
		t.Error("disabled button should be muted")
	}
	if styles.ButtonDisabled.GetBold() {
		t.Error("disabled button should not be bold")
	}
}

func TestStylesModalBoxHasBorder(t *testing.T) {
	styles := DefaultStyles()
	if !styles.ModalBox.GetBorderTop() {
		t.Error("ModalBox should have a border")
	}
}

func TestStylesAllThemes(t *testing.T) {
	for _, name := range ListAvailableThemes() {
		t.Run(name, func(t *testing.T) {
			theme, err := GetThemeByName(name)
			if err != nil {
				t.Fatalf("GetThemeByName(%q) error = %v", name, err)
			}
			styles := NewStyles(theme)
			if styles.Connected.GetForeground() != theme.Success {
				t.Error("Connected should use the success color")
			}
			if styles.ConnError.GetForeground() != theme.Error {
				t.Error("ConnError should use the error color")
			}
		})
	}
}
