// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package command

import "github.com/google/uuid"

// Class-level defaults of the three capability flags. A command starts with
// these cached values and unset hooks evaluate to them.
const (
	DefaultCanExecute = true
	DefaultCanRevert  = false
	DefaultCanRecord  = false
)

// Command is what invokers hold. Controls call Execute/CanExecute on it and
// watch CanExecuteChanged; they never need the concrete type.
type Command interface {
	// ID is the opaque handle the manager keys registrations and
	// attachments by.
	ID() uuid.UUID
	Name() string
	Description() string

	// Execute runs the command if the cached executable flag is set and is
	// a silent no-op otherwise. It does not re-evaluate the flag.
	Execute(parameter any)
	// Revert is Execute's counterpart, gated by the cached revertible flag.
	Revert(parameter any)

	// CanExecute, CanRevert and CanRecord evaluate the capability for
	// parameter, update the cache and fire the change event if the value
	// changed. The fresh value is returned either way.
	CanExecute(parameter any) bool
	CanRevert(parameter any) bool
	CanRecord(parameter any) bool

	// The *Now getters read the cache without evaluating.
	CanExecuteNow() bool
	CanRevertNow() bool
	CanRecordNow() bool

	CanExecuteChanged() *Event[EventArgs]
	CanRevertChanged() *Event[EventArgs]
	CanRecordChanged() *Event[EventArgs]

	// Dispose unregisters the command from its manager. Later calls are
	// no-ops.
	Dispose()
	IsDisposed() bool
}

// Hooks is the behavior a concrete command plugs into Base. Nil hooks fall
// back to the defaults: Execute and Revert do nothing, CanExecute reports
// DefaultCanExecute, CanRevert and CanRecord report false.
type Hooks struct {
	Execute    func(parameter any)
	Revert     func(parameter any)
	CanExecute func(parameter any) bool
	CanRevert  func(parameter any) bool
	CanRecord  func(parameter any) bool
}

func (h Hooks) execute(parameter any) {
	if h.Execute != nil {
		h.Execute(parameter)
	}
}

func (h Hooks) revert(parameter any) {
	if h.Revert != nil {
		h.Revert(parameter)
	}
}

func (h Hooks) canExecute(parameter any) bool {
	if h.CanExecute == nil {
		return DefaultCanExecute
	}
	return h.CanExecute(parameter)
}

func (h Hooks) canRevert(parameter any) bool {
	if h.CanRevert == nil {
		return DefaultCanRevert
	}
	return h.CanRevert(parameter)
}

func (h Hooks) canRecord(parameter any) bool {
	if h.CanRecord == nil {
		return DefaultCanRecord
	}
	return h.CanRecord(parameter)
}

// Option configures a command at construction.
type Option func(*Base)

// WithName sets the command name.
func WithName(name string) Option {
	return func(b *Base) { b.name = name }
}

// WithDescription sets the command description.
func WithDescription(description string) Option {
	return func(b *Base) { b.description = description }
}

// Base implements the Command state machine. Concrete commands embed it and
// call Init with their own pointer and hooks:
//
//	type Save struct{ command.Base }
//
//	s := &Save{}
//	err := s.Init(m, s, command.Hooks{Execute: s.save})
type Base struct {
	id      uuid.UUID
	manager *Manager
	self    Command
	hooks   Hooks

	name        string
	description string

	canExecute bool
	canRevert  bool
	canRecord  bool

	canExecuteChanged Event[EventArgs]
	canRevertChanged  Event[EventArgs]
	canRecordChanged  Event[EventArgs]
	disposed          Event[EventArgs]

	isDisposed bool
}

// Init assigns the command its id, seeds the cache with the class defaults
// and registers self with m. self is the outer value embedding b; it is what
// the manager stores and what events report as their sender.
func (b *Base) Init(m *Manager, self Command, hooks Hooks, opts ...Option) error {
	if m == nil {
		return ErrNilManager
	}
	if self == nil {
		return ErrNilCommand
	}

	b.id = newID()
	b.manager = m
	b.self = self
	b.hooks = hooks
	b.canExecute = DefaultCanExecute
	b.canRevert = DefaultCanRevert
	b.canRecord = DefaultCanRecord
	for _, opt := range opts {
		opt(b)
	}

	m.RegisterCommand(self)
	return nil
}

// newID returns a time-ordered UUID, falling back to a random one.
func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

func (b *Base) sender() any {
	if b.self != nil {
		return b.self
	}
	return b
}

// ID implements Command.
func (b *Base) ID() uuid.UUID { return b.id }

// Manager returns the manager the command is registered with.
func (b *Base) Manager() *Manager { return b.manager }

// Name implements Command.
func (b *Base) Name() string { return b.name }

// SetName renames the command.
func (b *Base) SetName(name string) { b.name = name }

// Description implements Command.
func (b *Base) Description() string { return b.description }

// SetDescription changes the description.
func (b *Base) SetDescription(description string) { b.description = description }

// Execute implements Command.
func (b *Base) Execute(parameter any) {
	if !b.canExecute {
		return
	}
	b.hooks.execute(parameter)
}

// Revert implements Command.
func (b *Base) Revert(parameter any) {
	if !b.canRevert {
		return
	}
	b.hooks.revert(parameter)
}

// CanExecute implements Command.
func (b *Base) CanExecute(parameter any) bool {
	v := b.hooks.canExecute(parameter)
	if v != b.canExecute {
		b.canExecute = v
		b.canExecuteChanged.Raise(b.sender(), EventArgs{})
	}
	return v
}

// CanRevert implements Command.
func (b *Base) CanRevert(parameter any) bool {
	v := b.hooks.canRevert(parameter)
	if v != b.canRevert {
		b.canRevert = v
		b.canRevertChanged.Raise(b.sender(), EventArgs{})
	}
	return v
}

// CanRecord implements Command.
func (b *Base) CanRecord(parameter any) bool {
	v := b.hooks.canRecord(parameter)
	if v != b.canRecord {
		b.canRecord = v
		b.canRecordChanged.Raise(b.sender(), EventArgs{})
	}
	return v
}

// CanExecuteNow implements Command.
func (b *Base) CanExecuteNow() bool { return b.canExecute }

// CanRevertNow implements Command.
func (b *Base) CanRevertNow() bool { return b.canRevert }

// CanRecordNow implements Command.
func (b *Base) CanRecordNow() bool { return b.canRecord }

// CanExecuteChanged implements Command.
func (b *Base) CanExecuteChanged() *Event[EventArgs] { return &b.canExecuteChanged }

// CanRevertChanged implements Command.
func (b *Base) CanRevertChanged() *Event[EventArgs] { return &b.canRevertChanged }

// CanRecordChanged implements Command.
func (b *Base) CanRecordChanged() *Event[EventArgs] { return &b.canRecordChanged }

// Disposed fires once, after the command has been unregistered.
func (b *Base) Disposed() *Event[EventArgs] { return &b.disposed }

// IsDisposed implements Command.
func (b *Base) IsDisposed() bool { return b.isDisposed }

// Dispose implements Command. The flag is set before anything else runs so a
// Disposed handler calling Dispose again cannot unregister or fire twice.
func (b *Base) Dispose() {
	if b.isDisposed {
		return
	}
	b.isDisposed = true

	if b.manager != nil {
		b.manager.UnregisterCommand(b.self)
	}
	b.disposed.Raise(b.sender(), EventArgs{})
}
