// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package command

import (
	"testing"

	"cmdeck/internal/shortcut"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBinding(t *testing.T, cmd Command) *Binding {
	t.Helper()
	b, err := NewBinding(cmd)
	require.NoError(t, err)
	return b
}

func TestNewBindingRejectsNil(t *testing.T) {
	b, err := NewBinding(nil)
	assert.ErrorIs(t, err, ErrNilCommand)
	assert.Nil(t, b)
}

func TestNewBindingAttachesRoutedCommand(t *testing.T) {
	m := NewManager()
	r := m.NewRoutedCommand()
	assert.False(t, r.IsAttached())

	b := newBinding(t, r)
	assert.Same(t, b, r.Binding())
	assert.Same(t, r, b.Command())
}

func TestBindingAroundPlainCommandIsPassive(t *testing.T) {
	m := NewManager()
	ran := 0
	d := newDelegate(t, m, Hooks{Execute: func(any) { ran++ }})
	b := newBinding(t, d)

	b.Executed().Subscribe(func(any, *ExecutedEventArgs) { t.Fatal("binding raised for a delegate command") })
	d.Execute(nil)
	assert.Equal(t, 1, ran)
}

func TestAttachmentIsExclusive(t *testing.T) {
	m := NewManager()
	r := m.NewRoutedCommand()
	b1 := &Binding{id: newID()}
	b2 := &Binding{id: newID()}

	require.NoError(t, r.attach(b1))
	assert.ErrorIs(t, r.attach(b2), ErrAlreadyAttached)
	assert.ErrorIs(t, r.attach(b1), ErrAlreadyAttached)
	assert.Same(t, b1, r.Binding())

	assert.ErrorIs(t, r.detach(b2), ErrBindingMismatch)
	assert.Same(t, b1, r.Binding())

	require.NoError(t, r.detach(b1))
	assert.Nil(t, r.Binding())
	assert.ErrorIs(t, r.detach(b1), ErrBindingMismatch)

	require.NoError(t, r.attach(b2))
	assert.Same(t, b2, r.Binding())

	assert.ErrorIs(t, r.attach(nil), ErrNilBinding)
	assert.ErrorIs(t, r.detach(nil), ErrNilBinding)
}

func TestSetCommandReplacesRoutedCommand(t *testing.T) {
	m := NewManager()
	r1 := m.NewRoutedCommand()
	r2 := m.NewRoutedCommand()
	b := newBinding(t, r1)

	require.NoError(t, b.SetCommand(r2))
	assert.False(t, r1.IsAttached())
	assert.Same(t, b, r2.Binding())
	assert.Same(t, r2, b.Command())
}

func TestSetCommandSameCommandIsNoop(t *testing.T) {
	m := NewManager()
	r := m.NewRoutedCommand()
	b := newBinding(t, r)

	require.NoError(t, b.SetCommand(r))
	assert.Same(t, b, r.Binding())
}

func TestSetCommandNilKeepsCurrent(t *testing.T) {
	m := NewManager()
	r := m.NewRoutedCommand()
	b := newBinding(t, r)

	assert.ErrorIs(t, b.SetCommand(nil), ErrNilCommand)
	assert.Same(t, r, b.Command())
	assert.Same(t, b, r.Binding())
}

func TestSetCommandMovesRoutedCommandBetweenBindings(t *testing.T) {
	m := NewManager()
	r := m.NewRoutedCommand()
	first := newBinding(t, r)
	second := newBinding(t, r)

	assert.Same(t, second, r.Binding())

	// first still points at r but is no longer attached, so it stays quiet.
	executedOn := ""
	first.Executed().Subscribe(func(any, *ExecutedEventArgs) { executedOn = "first" })
	second.Executed().Subscribe(func(any, *ExecutedEventArgs) { executedOn = "second" })
	r.Execute(nil)
	assert.Equal(t, "second", executedOn)

	// Replacing first's command must not detach r from second.
	other := m.NewRoutedCommand()
	require.NoError(t, first.SetCommand(other))
	assert.Same(t, second, r.Binding())
	assert.Same(t, first, other.Binding())
}

func TestBindingDetach(t *testing.T) {
	m := NewManager()
	r := m.NewRoutedCommand()
	b := newBinding(t, r)

	b.Detach()
	assert.False(t, r.IsAttached())
	assert.Same(t, r, b.Command())
	assert.NotPanics(t, b.Detach)

	other := newBinding(t, r)
	assert.Same(t, other, r.Binding())
}

func TestRoutedUICommandAttachesLikeRoutedCommand(t *testing.T) {
	m := NewManager()
	u, err := m.ParseRoutedUICommand("Ctrl+1", WithName("invoke1"))
	require.NoError(t, err)

	b := newBinding(t, u)
	var sender any
	b.Executed().Subscribe(func(s any, _ *ExecutedEventArgs) { sender = s })

	u.Execute(nil)
	assert.Same(t, u, sender)
	assert.Same(t, b, u.Binding())
	assert.Equal(t, shortcut.MustParse("Ctrl+1"), u.ShortcutKeys())
}
