package ui

import "charm.land/lipgloss/v2"

// Color palette: calm, high-contrast, readable for older eyes.
var (
	colorPrimary = lipgloss.Color("#3498DB") // Blue
	colorCorrect = lipgloss.Color("#2ECC71") // Green
	colorWrong   = lipgloss.Color("#E74C3C") // Red
	colorText    = lipgloss.Color("#ECF0F1") // Off-white
	colorDim     = lipgloss.Color("#95A5A6") // Grey
	colorCard    = lipgloss.Color("#2C3E50") // Dark blue-grey
	colorBorder  = lipgloss.Color("#34495E") // Slate
)

var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleQuestion = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	styleRemi = lipgloss.NewStyle().
			Foreground(colorText)

	styleCorrect = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCorrect)

	styleWrong = lipgloss.NewStyle().
			Foreground(colorWrong)

	styleDim = lipgloss.NewStyle().
			Foreground(colorDim)

	styleBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCard).
			Background(colorPrimary).
			Padding(0, 1)
)
