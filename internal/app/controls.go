// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package app

import "cmdeck/internal/command"

// ControlKind tells the UI which adapter to build for a control.
type ControlKind int

const (
	KindButton ControlKind = iota
	KindMenuItem
)

func (k ControlKind) String() string {
	switch k {
	case KindButton:
		return "button"
	case KindMenuItem:
		return "menu item"
	default:
		return "unknown"
	}
}

// Control describes one invoker of the demo screen.
type Control struct {
	Name      string
	Kind      ControlKind
	Label     string
	Command   string
	Parameter any
}

// Layout is the demo screen: a row of buttons and a File menu. Order matters,
// it is the order sources register in and so decides which parameter a
// shared routed command is requeried with.
var Layout = []Control{
	{Name: "btnInvoke1", Kind: KindButton, Label: "Invoke 1", Command: NameInvoke1},
	{Name: "btnInvoke1Param", Kind: KindButton, Label: "Invoke 1 (1234)", Command: NameInvoke1, Parameter: 1234},
	{Name: "btnToggle1", Kind: KindButton, Label: "Toggle 1", Command: NameToggle1},
	{Name: "btnInvoke2", Kind: KindButton, Label: "Invoke 2", Command: NameInvoke2},
	{Name: "btnUndo", Kind: KindButton, Label: "Record", Command: NameUndo},
	{Name: "mnuFileInvoke1", Kind: KindMenuItem, Label: "Invoke 1", Command: NameInvoke1},
	{Name: "mnuFileHello", Kind: KindMenuItem, Label: "Hello", Command: NameHello},
	{Name: "mnuFileExit", Kind: KindMenuItem, Label: "Exit", Command: NameExit},
}

// Command returns the demo command with the given name.
func (a *App) Command(name string) (command.Command, bool) {
	switch name {
	case NameInvoke1:
		return a.Invoke1, true
	case NameToggle1:
		return a.Toggle1, true
	case NameInvoke2:
		return a.Invoke2, true
	case NameHello:
		return a.Hello, true
	case NameUndo:
		return a.Undo, true
	case NameExit:
		return a.Exit, true
	}
	return nil, false
}

// NewSources registers one plain command source per Layout entry, standing
// in for the controls when there is no UI. The caller disposes them.
func (a *App) NewSources() []*command.SourceBase {
	sources := make([]*command.SourceBase, 0, len(Layout))
	for _, c := range Layout {
		cmd, ok := a.Command(c.Command)
		if !ok {
			continue
		}
		sources = append(sources, a.manager.NewSource(cmd, c.Parameter))
	}
	return sources
}
