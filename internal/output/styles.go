package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette. Use these instead of inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: project names, paths, URIs.
	ColorCyan = lipgloss.Color("14")

	// ColorYellow marks archive-backed locations.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for failures (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (project names, namespace URIs).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleArchive styles archive-backed locations.
	StyleArchive = lipgloss.NewStyle().Foreground(ColorYellow)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleFailure styles failed steps.
	StyleFailure = lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatFailure renders a red cross with a message.
func FormatFailure(msg string) string {
	return StyleFailure.Render("✘") + " " + msg
}
