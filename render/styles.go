package render

import "github.com/charmbracelet/lipgloss"

var (
	colorGreen  = lipgloss.Color("42")
	colorRed    = lipgloss.Color("196")
	colorYellow = lipgloss.Color("214")
	colorBlue   = lipgloss.Color("39")
	colorDim    = lipgloss.Color("242")
)

// Styles holds the terminal styles used by every view.
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Dim      lipgloss.Style
	Selected lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style

	Available   lipgloss.Style
	Unavailable lipgloss.Style

	BadgeReturned lipgloss.Style
	BadgeOverdue  lipgloss.Style
	BadgeDueSoon  lipgloss.Style
	BadgeActive   lipgloss.Style

	Card lipgloss.Style
}

func DefaultStyles() Styles {
	s := Styles{}

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	s.Header = lipgloss.NewStyle().Bold(true).Underline(true)
	s.Dim = lipgloss.NewStyle().Foreground(colorDim)
	s.Selected = lipgloss.NewStyle().
		Bold(true).
		Background(lipgloss.Color("62")).
		Foreground(lipgloss.Color("255"))
	s.Warning = lipgloss.NewStyle().Foreground(colorYellow)
	s.Error = lipgloss.NewStyle().Bold(true).Foreground(colorRed)

	s.Available = lipgloss.NewStyle().Foreground(colorGreen)
	s.Unavailable = lipgloss.NewStyle().Foreground(colorRed)

	s.BadgeReturned = lipgloss.NewStyle().Foreground(colorGreen)
	s.BadgeOverdue = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	s.BadgeDueSoon = lipgloss.NewStyle().Foreground(colorYellow)
	s.BadgeActive = lipgloss.NewStyle().Foreground(colorBlue)

	s.Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorDim).
		Padding(0, 1)

	return s
}

// Default is used by the package-level helpers.
var Default = DefaultStyles()
