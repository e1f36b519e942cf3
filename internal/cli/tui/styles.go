package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("86")  // Cyan
	colorSecondary = lipgloss.Color("240") // Gray
	colorSuccess   = lipgloss.Color("82")  // Green
	colorWarning   = lipgloss.Color("214") // Orange
	colorDanger    = lipgloss.Color("196") // Red
	colorMuted     = lipgloss.Color("245") // Light gray
)

// Styles
var (
	// Title bar
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(0)

	// Help text
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Section headers
	sectionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary)

	// Distribution bars
	progressBarEmptyStyle = lipgloss.NewStyle().
				Foreground(colorSecondary)

	failureBarStyle = lipgloss.NewStyle().
			Foreground(colorDanger)

	successBarStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	// Model state
	trainedStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	untrainedStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	// Results log
	timestampStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	logTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// Values
	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Error
	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)
)
