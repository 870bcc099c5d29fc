package tui

import "github.com/charmbracelet/lipgloss"

// Layout defaults.
const (
	defaultWidth  = 100
	defaultHeight = 30
	minHeight     = 5
	borderPadding = 4

	// chromeHeight covers title, search line, footer, status and short help.
	chromeHeight = 8

	searchInputCharLimit = 128
	searchInputWidth     = 40
	maxStatusWidth       = 60
)

// Column widths for the members table.
const (
	colWidthCheck = 3
	colWidthName  = 26
	colWidthEmail = 34
	colWidthRole  = 10
)

// Palette.
var (
	colorAccent  = lipgloss.Color("57")
	colorHilite  = lipgloss.Color("229")
	colorSubtle  = lipgloss.Color("241")
	colorInfo    = lipgloss.Color("39")
	colorWarning = lipgloss.Color("214")
	colorError   = lipgloss.Color("196")
)

// Shared styles.
//
//nolint:gochecknoglobals // lipgloss styles are immutable values shared across views.
var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorInfo)
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorHilite).Background(colorAccent).Padding(0, 1)
	LabelStyle    = lipgloss.NewStyle().Foreground(colorSubtle)
	ValueStyle    = lipgloss.NewStyle().Bold(true)
	SubtleStyle   = lipgloss.NewStyle().Foreground(colorSubtle)
	InfoStyle     = lipgloss.NewStyle().Foreground(colorInfo)
	WarningStyle  = lipgloss.NewStyle().Foreground(colorWarning)
	CriticalStyle = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	BoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(1, 2)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(colorSubtle).
				BorderBottom(true).
				Padding(0, 1)
	TableSelectedStyle = lipgloss.NewStyle().Foreground(colorHilite).Background(colorAccent)
	TableCellStyle     = lipgloss.NewStyle().Padding(0, 1)
)
