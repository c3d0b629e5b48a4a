// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"cmdeck/internal/command"
	"cmdeck/internal/shortcut"
)

// Control is a command source the demo screen can draw and click.
type Control interface {
	command.Source
	Label() string
	Enabled() bool
	// Click executes the command with the control's parameter. It reports
	// whether anything ran: disabled controls and controls without a command
	// ignore clicks.
	Click() bool
	Dispose()
}

// shortcutTarget is the per-kind part of a control: what it does with the
// chord of a routed UI command.
type shortcutTarget interface {
	applyShortcut(keys shortcut.Keys, bindKeys, showText bool)
	clearShortcut()
}

// control keeps a widget in sync with its command. It mirrors the cached
// executable flag into Enabled and hands the chord of routed UI commands to
// the widget.
type control struct {
	command.SourceBase

	label       string
	enabled     bool
	unsubscribe func()
	target      shortcutTarget
}

func (c *control) init(m *command.Manager, self command.Source, label string, target shortcutTarget) error {
	c.label = label
	c.enabled = true
	c.target = target
	return c.SourceBase.Init(m, self)
}

// Label returns the text the control shows.
func (c *control) Label() string { return c.label }

// Enabled mirrors CanExecuteNow of the command.
func (c *control) Enabled() bool { return c.enabled }

// SetCommand implements command.Source. The previous command's subscription
// and shortcut are undone before the new command is wired.
func (c *control) SetCommand(cmd command.Command) {
	old := c.Command()
	if old == cmd {
		return
	}
	if old != nil {
		c.release()
	}

	c.SourceBase.SetCommand(cmd)
	if cmd == nil {
		return
	}

	c.unsubscribe = cmd.CanExecuteChanged().Subscribe(func(any, command.EventArgs) { c.syncEnabled() })
	c.syncEnabled()

	if u, ok := cmd.(*command.RoutedUICommand); ok && !u.ShortcutKeys().IsZero() {
		c.target.applyShortcut(u.ShortcutKeys(), u.SetShortcutKeys, u.SetShortcutText)
	}
}

func (c *control) syncEnabled() {
	if cmd := c.Command(); cmd != nil {
		c.enabled = cmd.CanExecuteNow()
	}
}

func (c *control) release() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.target.clearShortcut()
}

// Click implements Control.
func (c *control) Click() bool {
	cmd := c.Command()
	if cmd == nil || !c.enabled {
		return false
	}
	cmd.Execute(c.CommandParameter())
	return true
}

// Dispose stops tracking the command and unregisters the control.
func (c *control) Dispose() {
	if c.IsDisposed() {
		return
	}
	if c.Command() != nil {
		c.release()
	}
	c.SourceBase.Dispose()
}
