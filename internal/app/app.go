// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package app wires the demo command set: a handful of routed, UI and
// delegate commands, their bindings and the controls that invoke them.
// The TUI and the headless server both build on it.
package app

import (
	"fmt"

	"cmdeck/internal/command"
	"cmdeck/internal/config"
	"cmdeck/internal/logger"
	"cmdeck/internal/shortcut"
)

// Command names, used by config shortcut overrides, the API and the CLI.
const (
	NameInvoke1 = "invoke1"
	NameToggle1 = "toggle1"
	NameInvoke2 = "invoke2"
	NameHello   = "hello"
	NameUndo    = "undo"
	NameExit    = "exit"
)

// Default chords of the UI commands.
var (
	DefaultInvoke1Keys = shortcut.MustParse("Ctrl+1")
	DefaultExitKeys    = shortcut.MustParse("Alt+X")
)

// Notifier receives the messages the demo handlers produce.
type Notifier func(msg string)

// Option configures an App.
type Option func(*App)

// WithNotifier routes handler messages to n instead of the logger.
func WithNotifier(n Notifier) Option {
	return func(a *App) {
		if n != nil {
			a.notify = n
		}
	}
}

// WithQuit sets what the exit command does.
func WithQuit(fn func()) Option {
	return func(a *App) { a.quit = fn }
}

// App holds the demo commands and their bindings.
type App struct {
	manager *command.Manager

	Invoke1 *command.RoutedUICommand
	Toggle1 *command.RoutedCommand
	Invoke2 *command.RoutedCommand
	Hello   *command.DelegateCommand
	Undo    *command.DelegateCommand
	Exit    *command.RoutedUICommand

	invoke1Binding *command.Binding
	toggle1Binding *command.Binding
	invoke2Binding *command.Binding
	exitBinding    *command.Binding

	invoke1Enabled bool
	undoDepth      int

	notify Notifier
	quit   func()
}

// New creates the demo commands on m. Shortcut defaults and per-command
// chords come from cfg.
func New(m *command.Manager, cfg config.Config, opts ...Option) (*App, error) {
	if m == nil {
		return nil, command.ErrNilManager
	}

	a := &App{
		manager:        m,
		invoke1Enabled: true,
		notify:         func(msg string) { logger.Info(msg) },
	}
	for _, opt := range opts {
		opt(a)
	}

	m.SetShortcutDefaults(cfg.SetShortcutKeys, cfg.SetShortcutText)

	a.Invoke1 = m.NewRoutedUICommand(cfg.Shortcut(NameInvoke1, DefaultInvoke1Keys),
		command.WithName(NameInvoke1), command.WithDescription("Show a message with the command parameter"))
	a.Toggle1 = m.NewRoutedCommand(
		command.WithName(NameToggle1), command.WithDescription("Enable or disable invoke1"))
	a.Invoke2 = m.NewRoutedCommand(
		command.WithName(NameInvoke2), command.WithDescription("Show a message, then run hello"))
	a.Exit = m.NewRoutedUICommand(cfg.Shortcut(NameExit, DefaultExitKeys),
		command.WithName(NameExit), command.WithDescription("Quit the application"))

	var err error
	a.Hello, err = m.NewDelegateCommand(command.Hooks{
		Execute: func(any) { a.notify("Hello from a DelegateCommand.") },
	}, command.WithName(NameHello), command.WithDescription("Say hello without a binding"))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", NameHello, err)
	}

	a.Undo, err = m.NewDelegateCommand(command.Hooks{
		Execute:   a.pushUndo,
		Revert:    a.popUndo,
		CanRevert: func(any) bool { return a.undoDepth > 0 },
	}, command.WithName(NameUndo), command.WithDescription("Record a step that can be reverted"))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", NameUndo, err)
	}

	if err := a.bind(); err != nil {
		a.Dispose()
		return nil, err
	}

	logger.Debug("Demo commands created.", "commands", len(m.Commands()))
	return a, nil
}

func (a *App) bind() error {
	var err error

	if a.invoke1Binding, err = command.NewBinding(a.Invoke1); err != nil {
		return fmt.Errorf("bind %s: %w", NameInvoke1, err)
	}
	a.invoke1Binding.Executed().Subscribe(func(_ any, e *command.ExecutedEventArgs) {
		a.notify(fmt.Sprintf("This is command 1. Command parameter: %s", describeParameter(e.Parameter)))
	})
	a.invoke1Binding.QueryCanExecute().Subscribe(func(_ any, e *command.QueryCanExecuteEventArgs) {
		e.CanExecute = a.invoke1Enabled
	})

	if a.toggle1Binding, err = command.NewBinding(a.Toggle1); err != nil {
		return fmt.Errorf("bind %s: %w", NameToggle1, err)
	}
	a.toggle1Binding.Executed().Subscribe(func(any, *command.ExecutedEventArgs) {
		a.invoke1Enabled = !a.invoke1Enabled
		if a.invoke1Enabled {
			a.notify("Command 1 enabled.")
		} else {
			a.notify("Command 1 disabled.")
		}
		a.manager.InvalidateRequerySuggested()
	})

	if a.invoke2Binding, err = command.NewBinding(a.Invoke2); err != nil {
		return fmt.Errorf("bind %s: %w", NameInvoke2, err)
	}
	a.invoke2Binding.Executed().Subscribe(func(any, *command.ExecutedEventArgs) {
		a.notify("This is command 2.")
		a.Hello.Execute(nil)
	})

	if a.exitBinding, err = command.NewBinding(a.Exit); err != nil {
		return fmt.Errorf("bind %s: %w", NameExit, err)
	}
	a.exitBinding.Executed().Subscribe(func(any, *command.ExecutedEventArgs) {
		if a.quit == nil {
			a.notify("Exit requested.")
			return
		}
		a.quit()
	})

	return nil
}

func (a *App) pushUndo(any) {
	a.undoDepth++
	a.notify(fmt.Sprintf("Recorded step %d.", a.undoDepth))
	a.Undo.CanRevert(nil)
}

func (a *App) popUndo(any) {
	if a.undoDepth == 0 {
		return
	}
	a.notify(fmt.Sprintf("Reverted step %d.", a.undoDepth))
	a.undoDepth--
	a.Undo.CanRevert(nil)
}

func describeParameter(p any) string {
	if p == nil {
		return "(none)"
	}
	return fmt.Sprint(p)
}

// Manager returns the manager the commands live on.
func (a *App) Manager() *command.Manager { return a.manager }

// Invoke1Enabled reports the flag toggle1 flips.
func (a *App) Invoke1Enabled() bool { return a.invoke1Enabled }

// UndoDepth reports how many recorded steps can be reverted.
func (a *App) UndoDepth() int { return a.undoDepth }

// Binding returns the binding of the named routed command, nil for delegate
// commands and unknown names.
func (a *App) Binding(name string) *command.Binding {
	switch name {
	case NameInvoke1:
		return a.invoke1Binding
	case NameToggle1:
		return a.toggle1Binding
	case NameInvoke2:
		return a.invoke2Binding
	case NameExit:
		return a.exitBinding
	}
	return nil
}

// Dispose detaches every binding and disposes every command.
func (a *App) Dispose() {
	for _, b := range []*command.Binding{a.invoke1Binding, a.toggle1Binding, a.invoke2Binding, a.exitBinding} {
		if b != nil {
			b.Detach()
		}
	}
	for _, c := range []command.Command{a.Invoke1, a.Toggle1, a.Invoke2, a.Hello, a.Undo, a.Exit} {
		c.Dispose()
	}
}
