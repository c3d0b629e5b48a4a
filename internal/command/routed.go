// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package command

import "cmdeck/internal/shortcut"

// Routed is implemented by RoutedCommand and every type embedding it.
// The manager uses it to tell routed commands apart during a requery.
type Routed interface {
	Command
	// Binding returns the binding the command is attached to, or nil.
	Binding() *Binding
	routed() *RoutedCommand
}

// RoutedCommand is a command without behavior of its own. Everything is
// forwarded to the one Binding it is attached to, if any:
//
//   - unattached, Execute and Revert do nothing and the queries return the
//     class defaults;
//   - attached, Execute raises PreviewExecuted then Executed on the binding,
//     Revert raises PreviewReverted then Reverted, and each query raises its
//     query event with a fresh args value seeded with the default and returns
//     whatever the handlers left in it.
//
// A routed command is attached to at most one binding at a time. Binding.SetCommand
// is the only way to move it to another binding.
type RoutedCommand struct {
	Base
}

var _ Routed = (*RoutedCommand)(nil)

func (r *RoutedCommand) init(m *Manager, self Command, opts []Option) {
	_ = r.Base.Init(m, self, Hooks{
		Execute:    r.execute,
		Revert:     r.revert,
		CanExecute: r.canExecute,
		CanRevert:  r.canRevert,
		CanRecord:  r.canRecord,
	}, opts...)
}

func (r *RoutedCommand) routed() *RoutedCommand { return r }

// Binding implements Routed.
func (r *RoutedCommand) Binding() *Binding {
	if r.manager == nil {
		return nil
	}
	return r.manager.attachment(r.id)
}

// IsAttached reports whether the command is attached to a binding.
func (r *RoutedCommand) IsAttached() bool {
	return r.Binding() != nil
}

// attach moves the command from Unattached to Attached(b).
func (r *RoutedCommand) attach(b *Binding) error {
	if b == nil {
		return ErrNilBinding
	}
	if r.manager == nil {
		return ErrNilManager
	}
	return r.manager.attach(r.id, b)
}

// detach moves the command from Attached(b) to Unattached. b must be the
// binding the command is attached to.
func (r *RoutedCommand) detach(b *Binding) error {
	if b == nil {
		return ErrNilBinding
	}
	if r.manager == nil {
		return ErrBindingMismatch
	}
	return r.manager.detach(r.id, b)
}

// detachCurrent detaches from whatever binding the command is attached to.
// Unattached commands are left alone.
func (r *RoutedCommand) detachCurrent() {
	if b := r.Binding(); b != nil {
		_ = r.detach(b)
	}
}

func (r *RoutedCommand) execute(parameter any) {
	b := r.Binding()
	if b == nil {
		return
	}
	e := &ExecutedEventArgs{Parameter: parameter}
	b.raisePreviewExecuted(r.sender(), e)
	b.raiseExecuted(r.sender(), e)
}

func (r *RoutedCommand) revert(parameter any) {
	b := r.Binding()
	if b == nil {
		return
	}
	e := &RevertedEventArgs{Parameter: parameter}
	b.raisePreviewReverted(r.sender(), e)
	b.raiseReverted(r.sender(), e)
}

func (r *RoutedCommand) canExecute(parameter any) bool {
	b := r.Binding()
	if b == nil {
		return DefaultCanExecute
	}
	e := &QueryCanExecuteEventArgs{Parameter: parameter, CanExecute: DefaultCanExecute}
	b.raiseQueryCanExecute(r.sender(), e)
	return e.CanExecute
}

func (r *RoutedCommand) canRevert(parameter any) bool {
	b := r.Binding()
	if b == nil {
		return DefaultCanRevert
	}
	e := &QueryCanRevertEventArgs{Parameter: parameter, CanRevert: DefaultCanRevert}
	b.raiseQueryCanRevert(r.sender(), e)
	return e.CanRevert
}

func (r *RoutedCommand) canRecord(parameter any) bool {
	b := r.Binding()
	if b == nil {
		return DefaultCanRecord
	}
	e := &QueryCanRecordEventArgs{Parameter: parameter, CanRecord: DefaultCanRecord}
	b.raiseQueryCanRecord(r.sender(), e)
	return e.CanRecord
}

// RoutedUICommand is a routed command with a shortcut chord. The chord is
// only read by controls; dispatch is the same as RoutedCommand.
type RoutedUICommand struct {
	RoutedCommand

	shortcutKeys shortcut.Keys

	// SetShortcutKeys tells controls to bind the chord.
	SetShortcutKeys bool
	// SetShortcutText tells controls to display the chord.
	SetShortcutText bool
}

var _ Routed = (*RoutedUICommand)(nil)

// ShortcutKeys returns the chord, shortcut.None if the command has none.
func (u *RoutedUICommand) ShortcutKeys() shortcut.Keys {
	return u.shortcutKeys
}
