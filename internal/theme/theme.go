package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for the application title bar.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is the neutral bottom status bar style (key hints).
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// InfoStatusStyle renders informational status messages.
var InfoStatusStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorGreen).
	Padding(0, 1)

// ErrorStatusStyle renders error status messages.
var ErrorStatusStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorRed).
	Padding(0, 1)

// SelectedItemStyle highlights the focused row in the message index.
var SelectedItemStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// UnreadItemStyle marks messages that have not been opened.
var UnreadItemStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite)

// ReadItemStyle renders already-read index rows.
var ReadItemStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// PaneStyle frames a content pane.
var PaneStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// FocusedPaneStyle frames the pane that has input focus.
var FocusedPaneStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBlue)

// SearchBarStyle renders the search input line.
var SearchBarStyle = lipgloss.NewStyle().
	Foreground(ColorYellow).
	Padding(0, 1)

// HelpPanelStyle wraps the help overlay.
var HelpPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// MetaLabelStyle and MetaValueStyle render header fields in the
// message detail pane.
var (
	MetaLabelStyle = lipgloss.NewStyle().Foreground(ColorGray)
	MetaValueStyle = lipgloss.NewStyle().Foreground(ColorWhite)
)
