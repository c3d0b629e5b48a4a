// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"
	"strings"

	"cmdeck/internal/command"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return statusStyle.Render("Initializing...")
	}

	header := titleStyle.Render(appTitle)
	menuBar := m.renderMenuBar()
	buttons := m.renderButtons()
	commands := m.renderCommandTable()
	footer := m.renderFooter()

	sections := []string{header, menuBar}
	if m.currentState == stateMenuOpen {
		sections = append(sections, m.renderMenu())
	}
	sections = append(sections, buttons, commands)

	top := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// The status log takes whatever height is left.
	used := lipgloss.Height(top) + lipgloss.Height(footer) + 2 // log border
	m.viewport.Width = max(m.width-2, 1)
	m.viewport.Height = max(m.height-used, 1)

	log := mainContentBorderStyle.Width(max(m.width-2, 1)).Render(m.viewport.View())
	return lipgloss.JoinVertical(lipgloss.Left, top, log, footer)
}

func (m *Model) renderMenuBar() string {
	if m.currentState == stateMenuOpen {
		return openMenuTitleStyle.Render(menuTitle)
	}
	return menuBarStyle.Render(menuTitle)
}

func (m *Model) renderMenu() string {
	labelWidth := 0
	for _, mi := range m.menu {
		labelWidth = max(labelWidth, lipgloss.Width(mi.Label()))
	}

	var b strings.Builder
	for i, mi := range m.menu {
		if i > 0 {
			b.WriteString("\n")
		}
		cursor := "  "
		if i == m.menuCursor {
			cursor = menuCursorStyle.Render("> ")
		}
		label := fmt.Sprintf("%-*s", labelWidth, mi.Label())
		if !mi.Enabled() {
			label = disabledStyle.Render(label)
		}
		line := cursor + label
		if text := mi.ShortcutText(); text != "" {
			line += "  " + shortcutStyle.Render(text)
		}
		b.WriteString(line)
	}
	return menuStyle.Render(b.String())
}

func (m *Model) renderButtons() string {
	rendered := make([]string, 0, len(m.buttons))
	for i, btn := range m.buttons {
		style := buttonStyle
		if i == m.focus && m.currentState == stateButtons {
			style = focusedButtonStyle
		}
		label := btn.Label()
		if !btn.Enabled() {
			label = disabledStyle.Render(label)
		}
		rendered = append(rendered, style.Render(label))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	tip := ""
	if btn := m.focusedButton(); btn != nil && btn.Tooltip() != "" {
		tip = statusStyle.Render(btn.Tooltip())
	}
	return lipgloss.JoinVertical(lipgloss.Left, row, tip)
}

func (m *Model) renderCommandTable() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-10s %-5s %-6s %-6s %s\n", "command", "exec", "revert", "record", "binding"))
	for _, c := range m.manager.Commands() {
		attached := "-"
		if r, ok := c.(command.Routed); ok {
			attached = "detached"
			if r.Binding() != nil {
				attached = "attached"
			}
		}
		b.WriteString(fmt.Sprintf("%-10s %s %s %s %s\n",
			c.Name(), flag(c.CanExecuteNow(), 5), flag(c.CanRevertNow(), 6), flag(c.CanRecordNow(), 6), attached))
	}
	return strings.TrimRight(b.String(), "\n")
}

func flag(v bool, width int) string {
	if v {
		return successStyle.Render(fmt.Sprintf("%-*s", width, "yes"))
	}
	return disabledStyle.Render(fmt.Sprintf("%-*s", width, "no"))
}

func (m *Model) renderFooter() string {
	var bindings []key.Binding
	switch m.currentState {
	case stateMenuOpen:
		bindings = []key.Binding{m.keymap.Up, m.keymap.Down, m.keymap.Press, m.keymap.Esc, m.keymap.Quit}
	default:
		bindings = []key.Binding{m.keymap.Left, m.keymap.Right, m.keymap.Press, m.keymap.Revert,
			m.keymap.Menu, m.keymap.Requery, m.keymap.PgUp, m.keymap.Quit}
	}
	for _, mi := range m.menu {
		if mi.ShortcutBinding().Enabled() {
			bindings = append(bindings, mi.ShortcutBinding())
		}
	}

	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+footerDescStyle.Render(": "+h.Desc))
	}
	help := strings.Join(parts, footerSeparatorStyle.Render(" | "))
	return lipgloss.NewStyle().Width(m.width).Render(help)
}
