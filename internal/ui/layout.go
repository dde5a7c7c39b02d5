package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mailterm/internal/theme"
)

// Layout manages the terminal frame dimensions: a one-line header, the
// content area, and a one-line status bar.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout for the given terminal dimensions.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the content area.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.StatusBarHeight
}

// ListWidth returns the width of the left (message index) pane:
// 40% of the terminal, as in a classic two-pane mail layout.
func (l Layout) ListWidth() int {
	return l.Width * 2 / 5
}

// DetailWidth returns the width of the right (message body) pane.
func (l Layout) DetailWidth() int {
	return l.Width - l.ListWidth()
}

// RenderHeader renders the top bar with the title left and the fetch
// state right.
func (l Layout) RenderHeader(title, fetchState string) string {
	titleRendered := theme.HeaderStyle.Render(title)
	stateRendered := theme.HeaderStyle.Align(lipgloss.Right).Render(fetchState)

	gap := l.Width - lipgloss.Width(titleRendered) - lipgloss.Width(stateRendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.HeaderStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.HeaderStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, titleRendered, filler, stateRendered)
}

// RenderStatusBar renders the bottom bar with the given style, padding
// it to the full terminal width.
func (l Layout) RenderStatusBar(text string, style lipgloss.Style) string {
	rendered := style.Render(text)

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}

	filler := style.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(style.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderWithFrame vertically joins the header, content, and status bar.
func (l Layout) RenderWithFrame(header, content, statusBar string) string {
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}
