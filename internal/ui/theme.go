package ui

import (
	"charm.land/lipgloss/v2"
)

// Color palette — calm, study-room tones.
var (
	colorPrimary = lipgloss.Color("#0EA5E9") // Sky blue
	colorAccent  = lipgloss.Color("#F59E0B") // Amber
	colorText    = lipgloss.Color("#F8FAFC") // White
	colorTextDim = lipgloss.Color("#94A3B8") // Slate
	colorError   = lipgloss.Color("#F43F5E") // Rose
)

var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleUserLabel = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	styleTutorLabel = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleBody = lipgloss.NewStyle().
			Foreground(colorText)

	styleHint = lipgloss.NewStyle().
			Foreground(colorTextDim).
			Italic(true)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)
)
