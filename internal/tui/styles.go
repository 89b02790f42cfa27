package tui

import "github.com/charmbracelet/lipgloss"

// Theme colors
const (
	ColorAccent    = "86"  // titles, active view
	ColorHighlight = "205" // cursor, borders
	ColorDanger    = "196" // error diagnostics
	ColorWarning   = "208" // warning diagnostics
	ColorMuted     = "241" // hints, help line
	ColorText      = "252"
)

// Styles contains the shared style definitions
var Styles = struct {
	Title    lipgloss.Style
	Section  lipgloss.Style
	Sidebar  lipgloss.Style
	Main     lipgloss.Style
	Active   lipgloss.Style
	Cursor   lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Badge    lipgloss.Style
	Code     lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Help     lipgloss.Style
	Selected lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Section: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorHighlight)),
	Sidebar: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Padding(0, 1),
	Main: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 2),
	Active: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Cursor: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Badge: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)),
	Code: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Padding(0, 1),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	Warning: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Selected: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorHighlight)),
}
