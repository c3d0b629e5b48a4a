// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package command

import "github.com/google/uuid"

// ExecutedEventArgs carries the parameter of an execution. PreviewExecuted and
// Executed handlers of one execution share the same value.
type ExecutedEventArgs struct {
	Parameter any
}

// RevertedEventArgs carries the parameter of a revert.
type RevertedEventArgs struct {
	Parameter any
}

// QueryCanExecuteEventArgs is passed to QueryCanExecute handlers. CanExecute
// starts at DefaultCanExecute; the value left by the last handler wins.
type QueryCanExecuteEventArgs struct {
	Parameter  any
	CanExecute bool
}

// QueryCanRevertEventArgs is passed to QueryCanRevert handlers. CanRevert
// starts at DefaultCanRevert.
type QueryCanRevertEventArgs struct {
	Parameter any
	CanRevert bool
}

// QueryCanRecordEventArgs is passed to QueryCanRecord handlers. CanRecord
// starts at DefaultCanRecord.
type QueryCanRecordEventArgs struct {
	Parameter any
	CanRecord bool
}

// Binding pairs a command with the handlers that give it behavior.
//
// Events are only raised when the command is a routed command attached to
// this binding; with any other command the binding is a passive wrapper.
type Binding struct {
	id      uuid.UUID
	command Command

	previewExecuted Event[*ExecutedEventArgs]
	executed        Event[*ExecutedEventArgs]
	previewReverted Event[*RevertedEventArgs]
	reverted        Event[*RevertedEventArgs]
	queryCanExecute Event[*QueryCanExecuteEventArgs]
	queryCanRevert  Event[*QueryCanRevertEventArgs]
	queryCanRecord  Event[*QueryCanRecordEventArgs]
}

// NewBinding binds cmd. A routed command attached elsewhere is moved here.
func NewBinding(cmd Command) (*Binding, error) {
	b := &Binding{id: newID()}
	if err := b.SetCommand(cmd); err != nil {
		return nil, err
	}
	return b, nil
}

// ID returns the binding's opaque handle.
func (b *Binding) ID() uuid.UUID { return b.id }

// Command returns the bound command.
func (b *Binding) Command() Command { return b.command }

// SetCommand replaces the bound command. Setting the command already held
// is a no-op and nil is rejected. The previous routed command, if attached
// here, is detached; a new routed command is detached from its current
// binding and attached to this one.
func (b *Binding) SetCommand(cmd Command) error {
	if cmd == nil {
		return ErrNilCommand
	}
	if b.command == cmd {
		return nil
	}

	if old, ok := b.command.(Routed); ok && old.Binding() == b {
		_ = old.routed().detach(b)
	}

	if r, ok := cmd.(Routed); ok {
		rc := r.routed()
		rc.detachCurrent()
		if err := rc.attach(b); err != nil {
			return err
		}
	}

	b.command = cmd
	return nil
}

// Detach releases the bound routed command so it can be attached elsewhere
// and the binding can be dropped. The binding keeps its command reference but
// raises nothing until a command is set again.
func (b *Binding) Detach() {
	if r, ok := b.command.(Routed); ok && r.Binding() == b {
		_ = r.routed().detach(b)
	}
}

// PreviewExecuted fires before Executed.
func (b *Binding) PreviewExecuted() *Event[*ExecutedEventArgs] { return &b.previewExecuted }

// Executed fires when the attached command executes.
func (b *Binding) Executed() *Event[*ExecutedEventArgs] { return &b.executed }

// PreviewReverted fires before Reverted.
func (b *Binding) PreviewReverted() *Event[*RevertedEventArgs] { return &b.previewReverted }

// Reverted fires when the attached command is reverted.
func (b *Binding) Reverted() *Event[*RevertedEventArgs] { return &b.reverted }

// QueryCanExecute fires when the attached command evaluates CanExecute.
func (b *Binding) QueryCanExecute() *Event[*QueryCanExecuteEventArgs] { return &b.queryCanExecute }

// QueryCanRevert fires when the attached command evaluates CanRevert.
func (b *Binding) QueryCanRevert() *Event[*QueryCanRevertEventArgs] { return &b.queryCanRevert }

// QueryCanRecord fires when the attached command evaluates CanRecord.
func (b *Binding) QueryCanRecord() *Event[*QueryCanRecordEventArgs] { return &b.queryCanRecord }

func (b *Binding) raisePreviewExecuted(sender any, e *ExecutedEventArgs) {
	b.previewExecuted.Raise(sender, e)
}

func (b *Binding) raiseExecuted(sender any, e *ExecutedEventArgs) {
	b.executed.Raise(sender, e)
}

func (b *Binding) raisePreviewReverted(sender any, e *RevertedEventArgs) {
	b.previewReverted.Raise(sender, e)
}

func (b *Binding) raiseReverted(sender any, e *RevertedEventArgs) {
	b.reverted.Raise(sender, e)
}

func (b *Binding) raiseQueryCanExecute(sender any, e *QueryCanExecuteEventArgs) {
	b.queryCanExecute.Raise(sender, e)
}

func (b *Binding) raiseQueryCanRevert(sender any, e *QueryCanRevertEventArgs) {
	b.queryCanRevert.Raise(sender, e)
}

func (b *Binding) raiseQueryCanRecord(sender any, e *QueryCanRecordEventArgs) {
	b.queryCanRecord.Raise(sender, e)
}
