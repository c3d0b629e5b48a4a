// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"

	"cmdeck/internal/command"
	"cmdeck/internal/shortcut"
)

// Button is a push button. Buttons never bind a chord themselves; a routed
// UI command only shows up in the tooltip.
type Button struct {
	control
	tooltip string
}

var _ Control = (*Button)(nil)

// NewButton creates a button and registers it with m.
func NewButton(m *command.Manager, label string) (*Button, error) {
	b := &Button{}
	if err := b.init(m, b, label, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Tooltip returns "Label (Chord)" while the command shows its chord.
func (b *Button) Tooltip() string { return b.tooltip }

func (b *Button) applyShortcut(keys shortcut.Keys, _, showText bool) {
	if showText {
		b.tooltip = fmt.Sprintf("%s (%s)", b.label, keys)
	}
}

func (b *Button) clearShortcut() {
	b.tooltip = ""
}
