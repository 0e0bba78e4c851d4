package ui

import "github.com/charmbracelet/lipgloss"

// Semantic Color Palette
// Designed for accessibility (colorblind-safe) with both color and shape differentiation.

// UI chrome colors - structural elements
var (
	// Primary is the accent/focus color
	Primary = lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#7D56F4"}

	// BorderFocus is the border color for focused elements
	BorderFocus = lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#7D56F4"}

	// TextPrimary is the main text color
	TextPrimary = lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}

	// TextSecondary is for secondary text (descriptions, labels)
	TextSecondary = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}

	// TextMuted is for hints and subtle text
	TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}

	// BackgroundSelected is for the open trigger
	BackgroundSelected = lipgloss.AdaptiveColor{Light: "#dde4f0", Dark: "#3C3C4C"}

	// StatusError is for error lines
	StatusError = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#EF4444"}
)

// Trigger glyphs. The caret points toward where the panel will open.
const (
	CaretDown = "▾"
	CaretUp   = "▴"
	CaretOpen = "◆"
)

// TextStyles contains pre-built styles for text elements
var TextStyles = struct {
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
}{
	Primary:   lipgloss.NewStyle().Foreground(TextPrimary),
	Secondary: lipgloss.NewStyle().Foreground(TextSecondary),
	Muted:     lipgloss.NewStyle().Foreground(TextMuted),
	Error:     lipgloss.NewStyle().Foreground(StatusError).Bold(true),
}

// TriggerStyles are the states of a selector's trigger button.
var TriggerStyles = struct {
	Label   lipgloss.Style
	Normal  lipgloss.Style
	Focused lipgloss.Style
	Open    lipgloss.Style
}{
	Label: lipgloss.NewStyle().Foreground(TextSecondary),
	Normal: lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1),
	Focused: lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Underline(true).
		Padding(0, 1),
	Open: lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(BackgroundSelected).
		Bold(true).
		Padding(0, 1),
}
