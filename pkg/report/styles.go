package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors degrade to plain text when the output is not a terminal
var (
	headingColor = lipgloss.Color("#7C3AED")
	mutedColor   = lipgloss.Color("#9CA3AF")
	warningColor = lipgloss.Color("#F59E0B")
	goodColor    = lipgloss.Color("#10B981")

	Heading = lipgloss.NewStyle().Bold(true).Foreground(headingColor)
	Project = lipgloss.NewStyle().Bold(true)
	Muted   = lipgloss.NewStyle().Foreground(mutedColor)
	Warning = lipgloss.NewStyle().Foreground(warningColor)
	Good    = lipgloss.NewStyle().Foreground(goodColor)
)

// rule returns a divider as wide as the text it underlines
func rule(text string, char string) string {
	return Muted.Render(strings.Repeat(char, lipgloss.Width(text)))
}
