// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// This file defines the keyboard bindings for the TUI application.
// It maps keys to actions and provides descriptions for the help footer.
// Command chords are not listed here; menu items bind those themselves.

package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	// Navigation keys
	Up       key.Binding // Previous menu item
	Down     key.Binding // Next menu item
	Left     key.Binding // Previous button
	Right    key.Binding // Next button
	Tab      key.Binding // Next button
	ShiftTab key.Binding // Previous button
	PgUp     key.Binding // Scroll the status log up
	PgDown   key.Binding // Scroll the status log down

	// Control interaction
	Press  key.Binding // Click the focused button or menu item
	Revert key.Binding // Revert the focused control's command
	Menu   key.Binding // Open the File menu
	Esc    key.Binding // Close the menu

	// Misc actions
	Requery key.Binding // Force a requery of every command
	Quit    key.Binding // Exit the application
}

// DefaultKeyMap provides the default keybindings.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "right"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev"),
	),
	PgUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "log up"),
	),
	PgDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "log down"),
	),
	Press: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter/space", "press"),
	),
	Revert: key.NewBinding(
		key.WithKeys("z"),
		key.WithHelp("z", "revert"),
	),
	Menu: key.NewBinding(
		key.WithKeys("f", "alt+f"),
		key.WithHelp("f", "file menu"),
	),
	Esc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close menu"),
	),
	Requery: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "requery"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}
