// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package command

// Source is anything that invokes a command with a stored parameter: a
// button, a menu item, an API endpoint. The manager reads both fields during
// a requery and never changes them.
type Source interface {
	Command() Command
	SetCommand(cmd Command)
	CommandParameter() any
	SetCommandParameter(parameter any)
}

// SourceBase is the template Source. Controls embed it and call Init with
// their own pointer; Dispose unregisters them again.
type SourceBase struct {
	manager   *Manager
	self      Source
	command   Command
	parameter any

	disposed   Event[EventArgs]
	isDisposed bool
}

var _ Source = (*SourceBase)(nil)

// Init registers self, the value embedding s, with m.
func (s *SourceBase) Init(m *Manager, self Source) error {
	if m == nil {
		return ErrNilManager
	}
	if self == nil {
		return ErrNilSource
	}
	s.manager = m
	s.self = self
	m.RegisterSource(self)
	return nil
}

// Command implements Source.
func (s *SourceBase) Command() Command { return s.command }

// SetCommand implements Source.
func (s *SourceBase) SetCommand(cmd Command) { s.command = cmd }

// CommandParameter implements Source.
func (s *SourceBase) CommandParameter() any { return s.parameter }

// SetCommandParameter implements Source.
func (s *SourceBase) SetCommandParameter(parameter any) { s.parameter = parameter }

// Disposed fires once, after the source has been unregistered.
func (s *SourceBase) Disposed() *Event[EventArgs] { return &s.disposed }

// IsDisposed reports whether Dispose has run.
func (s *SourceBase) IsDisposed() bool { return s.isDisposed }

// Dispose unregisters the source. Later calls are no-ops.
func (s *SourceBase) Dispose() {
	if s.isDisposed {
		return
	}
	s.isDisposed = true

	if s.manager != nil {
		s.manager.UnregisterSource(s.self)
	}
	var sender any = s
	if s.self != nil {
		sender = s.self
	}
	s.disposed.Raise(sender, EventArgs{})
}
