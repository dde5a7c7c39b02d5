package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mailterm/internal/model"
	"github.com/nhle/mailterm/internal/theme"
)

// RenderMessage builds the body pane content for a message: header
// fields, a separator, then the plain-text body. The caller feeds the
// result into a viewport for scrolling.
func RenderMessage(m model.Message, width int) string {
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(m.Subject))
	sections = append(sections, "")

	sections = append(sections, fmt.Sprintf(
		"%s      %s",
		theme.MetaLabelStyle.Render("From:"),
		theme.MetaValueStyle.Render(m.From),
	))
	sections = append(sections, fmt.Sprintf(
		"%s  %s",
		theme.MetaLabelStyle.Render("Received:"),
		theme.MetaValueStyle.Render(m.Received.Format("2006-01-02 15:04")),
	))

	sepWidth := width - 4
	if sepWidth > 80 {
		sepWidth = 80
	}
	if sepWidth < 1 {
		sepWidth = 1
	}
	separator := lipgloss.NewStyle().
		Foreground(theme.ColorSubtle).
		Render(strings.Repeat("─", sepWidth))

	sections = append(sections, "")
	sections = append(sections, separator)
	sections = append(sections, "")
	sections = append(sections, m.Body)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// RenderEmptyDetail fills the body pane when nothing is selected.
func RenderEmptyDetail(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray).
		Render("No message selected")
}
