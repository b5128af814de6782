package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette for the CLI, as ANSI 256 constants.
// These are the single source of truth; never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: file paths, run names, policy names.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "valid" finding status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for warnings.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for the "invalid" finding status (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark (✔).
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles map domain concepts to visual presentation.
var (
	// StyleNoun styles identifiable nouns (file paths, run names, fields).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs (expanding, validating, writing).
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (scope prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Finding status constants.
const (
	StatusValid   = "valid"
	StatusWarning = "warning"
	StatusInvalid = "invalid"
)

// StatusStyle returns the lipgloss style for a finding status string.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusValid:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusWarning:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusInvalid:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minFieldColumnWidth is the minimum width for the field path column before
// the status suffix. This ensures status words align consistently.
const minFieldColumnWidth = 40

// FormatFindingLine renders a field path with a right-aligned, color-coded
// status suffix.
//
// Format: f:<field>  <status>
func FormatFindingLine(field, status string) string {
	padding := minFieldColumnWidth - len(field)
	if padding < 2 {
		padding = 2
	}

	prefix := StyleDim.Render("f:")
	styledField := StyleNoun.Render(field)
	styledStatus := StatusStyle(status).Render(status)

	return prefix + styledField + strings.Repeat(" ", padding) + styledStatus
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatVetCheck renders a passed vet check with its detail.
func FormatVetCheck(check, detail string) string {
	return fmt.Sprintf("%s %s %s",
		StyleDim.Render("c:"),
		check,
		StyleNoun.Render("("+detail+")"),
	)
}
