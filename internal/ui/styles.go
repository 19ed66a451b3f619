package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorBlue      = lipgloss.Color("75")  // Blue

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)

	// Completed tasks render struck through and dim.
	StyleDone = lipgloss.NewStyle().Foreground(ColorSecondary).Strikethrough(true)

	// Overdue deadlines render red.
	StyleOverdue = lipgloss.NewStyle().Foreground(ColorError).Bold(true)

	// Day-group headers.
	StyleDayHeader = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	// Selected row in the live view.
	StyleSelected = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)

	// Priority badges.
	StyleHigh = lipgloss.NewStyle().Foreground(ColorError)
	StyleLow  = lipgloss.NewStyle().Foreground(ColorSecondary)
)
