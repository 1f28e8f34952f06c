package ui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary    = lipgloss.Color("#00BFFF") // Cyan: headings
	colorAccent     = lipgloss.Color("#FFD700") // Gold: active periods, yogas
	colorSuccess    = lipgloss.Color("#00E676") // Green: exalted, own sign
	colorDanger     = lipgloss.Color("#FF5252") // Red: debilitated, errors
	colorMuted      = lipgloss.Color("#636363") // Gray: de-emphasized
	colorMutedLight = lipgloss.Color("#8C8C8C") // Lighter gray: labels
	colorWhite      = lipgloss.Color("#EEEEEE") // Off-white: values
	colorBlue       = lipgloss.Color("#5B8DEF") // Blue: retrograde
)

// Status icons.
const (
	iconOK      = "✓"
	iconFailed  = "✗"
	iconActive  = "▶"
	iconRetro   = "℞"
	iconWaiting = "·"
)

var (
	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleSection = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			MarginTop(1)

	styleLabel = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleValue = lipgloss.NewStyle().
			Foreground(colorWhite)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleActive = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	styleGood = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleBad = lipgloss.NewStyle().
			Foreground(colorDanger)

	styleRetro = lipgloss.NewStyle().
			Foreground(colorBlue)

	styleError = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)

// dignityStyle colors a dignity state name.
func dignityStyle(state string) lipgloss.Style {
	switch state {
	case "deep_exaltation", "exalted", "own_sign":
		return styleGood
	case "deep_debilitation", "debilitated":
		return styleBad
	case "retrograde":
		return styleRetro
	default:
		return styleValue
	}
}
