// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"cmdeck/internal/command"
	"cmdeck/internal/shortcut"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// MenuItem is an entry of a drop-down menu. Menu items take over the chord
// of a routed UI command: the key binding fires them from anywhere on the
// screen and the chord is displayed next to the label.
type MenuItem struct {
	control
	keys         key.Binding
	shortcutText string
}

var _ Control = (*MenuItem)(nil)

// NewMenuItem creates a menu item and registers it with m.
func NewMenuItem(m *command.Manager, label string) (*MenuItem, error) {
	mi := &MenuItem{}
	if err := mi.init(m, mi, label, mi); err != nil {
		return nil, err
	}
	return mi, nil
}

// ShortcutBinding returns the key binding taken from the command. It is
// disabled when there is none.
func (mi *MenuItem) ShortcutBinding() key.Binding { return mi.keys }

// ShortcutText returns the chord as displayed, e.g. "Ctrl+1".
func (mi *MenuItem) ShortcutText() string { return mi.shortcutText }

// Matches reports whether msg is the item's chord.
func (mi *MenuItem) Matches(msg tea.KeyMsg) bool {
	return key.Matches(msg, mi.keys)
}

func (mi *MenuItem) applyShortcut(keys shortcut.Keys, bindKeys, showText bool) {
	if bindKeys {
		mi.keys = keys.Binding(mi.label)
	}
	if showText {
		mi.shortcutText = keys.String()
	}
}

func (mi *MenuItem) clearShortcut() {
	mi.keys = key.NewBinding(key.WithDisabled())
	mi.shortcutText = ""
}
