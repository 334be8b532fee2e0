package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Amber
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Good = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Weak = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Strong = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)
)

// Priority returns the style for a recommendation priority.
func Priority(p string) lipgloss.Style {
	switch p {
	case "high":
		return lipgloss.NewStyle().Foreground(Error).Bold(true)
	case "medium":
		return lipgloss.NewStyle().Foreground(Warning)
	default:
		return lipgloss.NewStyle().Foreground(Secondary)
	}
}

// Mastery returns the style for a 0-100 mastery score given the mastered
// and extension thresholds.
func Mastery(score, mastered, extension float64) lipgloss.Style {
	switch {
	case score >= extension:
		return Strong
	case score >= mastered:
		return Good
	default:
		return Weak
	}
}
