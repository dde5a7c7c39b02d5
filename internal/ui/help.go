package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mailterm/internal/keys"
	"github.com/nhle/mailterm/internal/theme"
)

// Help is the keyboard shortcut overlay.
type Help struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// NewHelp creates the help overlay.
func NewHelp(k *keys.KeyMap, width, height int) Help {
	h := help.New()
	h.Width = width
	return Help{keys: k, help: h, width: width, height: height}
}

// SetSize updates the overlay dimensions.
func (h *Help) SetSize(width, height int) {
	h.width = width
	h.height = height
	h.help.Width = width - 4
}

// View renders the overlay.
func (h Help) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Keyboard Shortcuts")

	h.help.ShowAll = true
	body := h.help.View(h.keys)

	note := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Italic(true).
		MarginTop(1).
		Render("press any key to return")

	content := lipgloss.JoinVertical(lipgloss.Left, title, body, note)

	return theme.HelpPanelStyle.
		Width(h.width - 4).
		Height(h.height - 4).
		Render(content)
}
