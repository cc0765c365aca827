// Package tui holds the Bubble Tea models and lipgloss styles used by the
// interactive commands.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
const (
	colorPrimary = lipgloss.Color("35")  // green
	colorAccent  = lipgloss.Color("81")  // teal
	colorWarning = lipgloss.Color("214") // amber
	colorSubtle  = lipgloss.Color("244") // grey
	colorText    = lipgloss.Color("252")
)

// Shared styles.
//
//nolint:gochecknoglobals // lipgloss styles are immutable values shared across views.
var (
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	LabelStyle   = lipgloss.NewStyle().Foreground(colorAccent)
	ValueStyle   = lipgloss.NewStyle().Foreground(colorText)
	SubtleStyle  = lipgloss.NewStyle().Foreground(colorSubtle)
	WarningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	BoxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(colorSubtle)
	TableSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("22"))
)

// Layout constants.
const (
	borderPadding = 4
	summaryHeight = 8
	minHeight     = 5
)

// Key bindings shared by the models.
const (
	keyQuit   = "q"
	keyCtrlC  = "ctrl+c"
	keyEnter  = "enter"
	keyEsc    = "esc"
	keyDelete = "d"
	keyS      = "s"
)

// ViewState is the screen a model is showing.
type ViewState int

const (
	// ViewStateList shows the item table.
	ViewStateList ViewState = iota
	// ViewStateDetail shows one item.
	ViewStateDetail
	// ViewStateQuitting is set once the user quits.
	ViewStateQuitting
)
