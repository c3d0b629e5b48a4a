// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

// state represents the different modes of the TUI.
type state int

const (
	stateButtons state = iota // Focus is on the button row
	stateMenuOpen             // The File menu is open
)

const (
	appTitle       = "cmdeck"
	menuTitle      = "File"
	maxStatusLines = 200 // Oldest status lines are dropped past this.
)
