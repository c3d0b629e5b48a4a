// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"cmdeck/internal/command"

	tea "github.com/charmbracelet/bubbletea"
)

// Window turns terminal focus reports into activation events, so a manager
// hooked to it requeries whenever the user comes back to the terminal or
// leaves it. The program must be started with tea.WithReportFocus.
type Window struct {
	focused     bool
	activated   command.Event[command.EventArgs]
	deactivated command.Event[command.EventArgs]
}

var _ command.ActivationSource = (*Window)(nil)

// NewWindow returns a window that starts out focused.
func NewWindow() *Window {
	return &Window{focused: true}
}

// OnActivated implements command.ActivationSource.
func (w *Window) OnActivated(fn func()) func() {
	return w.activated.Subscribe(func(any, command.EventArgs) { fn() })
}

// OnDeactivated implements command.ActivationSource.
func (w *Window) OnDeactivated(fn func()) func() {
	return w.deactivated.Subscribe(func(any, command.EventArgs) { fn() })
}

// Focused reports the last focus state seen.
func (w *Window) Focused() bool { return w.focused }

// Update raises the matching event for tea.FocusMsg and tea.BlurMsg and
// reports whether msg was one of them.
func (w *Window) Update(msg tea.Msg) bool {
	switch msg.(type) {
	case tea.FocusMsg:
		w.focused = true
		w.activated.Raise(w, command.EventArgs{})
		return true
	case tea.BlurMsg:
		w.focused = false
		w.deactivated.Raise(w, command.EventArgs{})
		return true
	}
	return false
}
