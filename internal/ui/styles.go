// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	shortcutStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	timeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("238"))
	focusedButtonStyle = buttonStyle.
				BorderForeground(lipgloss.Color("5")).
				Bold(true)

	menuBarStyle       = lipgloss.NewStyle().Padding(0, 1)
	openMenuTitleStyle = menuBarStyle.Reverse(true)
	menuStyle          = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), true).
				BorderForeground(lipgloss.Color("238"))
	menuCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))

	mainContentBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("238")) // Light grey border

	// Footer / Status Bar Styles
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")) // Default light grey text

	footerKeyStyle = lipgloss.NewStyle().
			Inherit(footerStyle).
			Foreground(lipgloss.Color("39")) // Bright blue for key

	footerDescStyle = lipgloss.NewStyle().
			Inherit(footerStyle).
			Foreground(lipgloss.Color("250")) // Light grey for description

	footerSeparatorStyle = lipgloss.NewStyle().
				Inherit(footerStyle).
				Foreground(lipgloss.Color("240")) // Dim grey for separator "|"
)
