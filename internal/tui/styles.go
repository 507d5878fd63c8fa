package tui

import "datepick/internal/tui/theme"

var (
	// Title styles
	TitleStyle = theme.Title

	// Status bar
	StatusBarStyle = theme.StatusBar

	// Help text
	HelpStyle = theme.Muted

	// Last committed selection
	SelectionStyle = theme.Ok
)
