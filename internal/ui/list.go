package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/nhle/mailterm/internal/model"
	"github.com/nhle/mailterm/internal/theme"
)

// ScrollOffset computes the window offset that keeps the cursor visible
// within pageSize rows.
func ScrollOffset(cursor, currentOffset, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	if cursor < currentOffset {
		return cursor
	}
	if cursor >= currentOffset+pageSize {
		return cursor - pageSize + 1
	}
	return currentOffset
}

// RenderList renders the message index pane: one row per message with
// an unread marker, date, sender, and subject.
func RenderList(
	messages []model.Message,
	selected, offset, width, height int,
) string {
	if len(messages) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No messages")
	}

	end := offset + height
	if end > len(messages) {
		end = len(messages)
	}

	rows := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		rows = append(rows, renderRow(messages[i], i == selected, width))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderRow formats a single index row, truncated to the pane width.
func renderRow(m model.Message, selected bool, width int) string {
	marker := " "
	if !m.Read {
		marker = "●"
	}

	line := fmt.Sprintf(
		"%s %s  %s  %s",
		marker,
		shortDate(m.Received),
		m.From,
		m.Subject,
	)
	line = runewidth.Truncate(line, width-1, "…")

	switch {
	case selected:
		return theme.SelectedItemStyle.Width(width - 1).Render(line)
	case !m.Read:
		return theme.UnreadItemStyle.Width(width).Render(line)
	default:
		return theme.ReadItemStyle.Width(width).Render(line)
	}
}

// shortDate renders a compact receive date: time of day for today,
// month/day otherwise.
func shortDate(t time.Time) string {
	now := time.Now()
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	if t.Year() == now.Year() {
		return t.Format("Jan 02")
	}
	return t.Format("2006-01-02")
}

// RenderSearchBar renders the query entry line shown above the list
// while searching, with a block cursor after the query text.
func RenderSearchBar(query string, width int) string {
	bar := "/ " + query + "█"
	return theme.SearchBarStyle.Width(width).Render(
		runewidth.Truncate(bar, width-2, ""),
	)
}

// RenderMatchCount summarizes how many messages matched the query.
func RenderMatchCount(query string, count int) string {
	if query == "" {
		return ""
	}
	return fmt.Sprintf("%d matching %q", count, strings.TrimSpace(query))
}
