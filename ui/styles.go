package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	dimColor     = lipgloss.Color("7")
	faintColor   = lipgloss.Color("8")
	accentColor  = lipgloss.Color("13")
	successColor = lipgloss.Color("10")
	warningColor = lipgloss.Color("11")
	dangerColor  = lipgloss.Color("9")

	// User message style
	UserStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)
	// NO .Background() = transparent!

	// Assistant message style
	AssistantStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	// System/timestamp style
	DimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	// Title style
	TitleStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	// Status bar style
	StatusStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	// Selected welcome card title
	SelectedStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	connectedDot    = lipgloss.NewStyle().Foreground(successColor).Render("●")
	disconnectedDot = lipgloss.NewStyle().Foreground(dangerColor).Render("●")
)

// FormatFooter formats a footer string with alternating keys and descriptions.
// Usage: FormatFooter("Alt+H", "Guide", "Esc", "Close")
// Result: "Alt+H Guide  Esc Close" (descriptions in accent+bold)
func FormatFooter(parts ...string) string {
	descStyle := lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	var result []string
	for i := 0; i < len(parts); i += 2 {
		if i+1 < len(parts) {
			result = append(result, parts[i]+" "+descStyle.Render(parts[i+1]))
		}
	}
	return strings.Join(result, "  ")
}
