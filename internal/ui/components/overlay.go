// Package components provides reusable UI components for the TUI.
package components

import "github.com/charmbracelet/lipgloss"

// centerOverlay places a rendered modal in the middle of a width x height
// area. It returns the modal unchanged when the size is unknown.
func centerOverlay(modal string, width, height int) string {
	if width <= 0 || height <= 0 {
		return modal
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}
