// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Update Handlers ---
// These methods handle key presses for the two UI states.

func (m *Model) handleKeys(msg tea.KeyMsg) []tea.Cmd {
	if key.Matches(msg, m.keymap.Quit) {
		m.quitting = true
		return nil
	}

	// Menu item chords work from anywhere, like menu accelerators.
	for _, mi := range m.menu {
		if mi.Matches(msg) {
			m.click(mi)
			m.currentState = stateButtons
			return nil
		}
	}

	switch m.currentState {
	case stateMenuOpen:
		return m.handleMenuKeys(msg)
	default:
		return m.handleButtonKeys(msg)
	}
}

func (m *Model) handleButtonKeys(msg tea.KeyMsg) []tea.Cmd {
	var cmds []tea.Cmd

	switch {
	case key.Matches(msg, m.keymap.Left), key.Matches(msg, m.keymap.ShiftTab):
		if len(m.buttons) > 0 {
			m.focus = (m.focus - 1 + len(m.buttons)) % len(m.buttons)
		}
	case key.Matches(msg, m.keymap.Right), key.Matches(msg, m.keymap.Tab):
		if len(m.buttons) > 0 {
			m.focus = (m.focus + 1) % len(m.buttons)
		}
	case key.Matches(msg, m.keymap.Press):
		if btn := m.focusedButton(); btn != nil {
			m.click(btn)
		}
	case key.Matches(msg, m.keymap.Revert):
		if btn := m.focusedButton(); btn != nil {
			m.revert(btn)
		}
	case key.Matches(msg, m.keymap.Menu):
		m.currentState = stateMenuOpen
		m.menuCursor = 0
	case key.Matches(msg, m.keymap.Requery):
		m.manager.InvalidateRequerySuggested()
		m.appendStatus("Requery done.")
	case key.Matches(msg, m.keymap.PgUp), key.Matches(msg, m.keymap.PgDown):
		var vpCmd tea.Cmd
		m.viewport, vpCmd = m.viewport.Update(msg)
		cmds = append(cmds, vpCmd)
	}
	return cmds
}

func (m *Model) handleMenuKeys(msg tea.KeyMsg) []tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Esc), key.Matches(msg, m.keymap.Menu):
		m.currentState = stateButtons
	case key.Matches(msg, m.keymap.Up):
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.menuCursor < len(m.menu)-1 {
			m.menuCursor++
		}
	case key.Matches(msg, m.keymap.Press):
		if m.menuCursor >= 0 && m.menuCursor < len(m.menu) {
			item := m.menu[m.menuCursor]
			if m.click(item) {
				m.currentState = stateButtons
			}
		}
	}
	return nil
}

func (m *Model) focusedButton() *Button {
	if m.focus < 0 || m.focus >= len(m.buttons) {
		return nil
	}
	return m.buttons[m.focus]
}

// click presses c and reports a disabled control in the status log.
func (m *Model) click(c Control) bool {
	if c.Click() {
		return true
	}
	m.addStatus(fmt.Sprintf("%s is disabled.", c.Label()), true)
	return false
}

// revert reverts the command of c with its parameter. Revert is gated by the
// command's own cached flag, so this reports when nothing can be reverted.
func (m *Model) revert(c Control) {
	cmd := c.Command()
	if cmd == nil {
		return
	}
	if !cmd.CanRevertNow() {
		m.addStatus(fmt.Sprintf("Nothing to revert for %s.", c.Label()), true)
		return
	}
	cmd.Revert(c.CommandParameter())
}
