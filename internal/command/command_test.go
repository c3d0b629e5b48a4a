// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package command

import (
	"testing"

	"cmdeck/internal/shortcut"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counter counts change notifications of one event.
type counter struct{ n int }

func (c *counter) watch(e *Event[EventArgs]) {
	e.Subscribe(func(any, EventArgs) { c.n++ })
}

func newDelegate(t *testing.T, m *Manager, hooks Hooks) *DelegateCommand {
	t.Helper()
	if hooks.Execute == nil {
		hooks.Execute = func(any) {}
	}
	d, err := m.NewDelegateCommand(hooks)
	require.NoError(t, err)
	return d
}

func TestNewCommandsStartWithClassDefaults(t *testing.T) {
	m := NewManager()
	d := newDelegate(t, m, Hooks{})
	r := m.NewRoutedCommand()
	u := m.NewRoutedUICommand(shortcut.None)

	for _, c := range []Command{d, r, u} {
		assert.True(t, c.CanExecuteNow())
		assert.False(t, c.CanRevertNow())
		assert.False(t, c.CanRecordNow())
		assert.True(t, m.IsRegistered(c))
		assert.NotEqual(t, uuid.Nil, c.ID())
	}
}

func TestCanExecuteIsEdgeTriggered(t *testing.T) {
	m := NewManager()
	allowed := true
	d := newDelegate(t, m, Hooks{CanExecute: func(any) bool { return allowed }})

	var changes counter
	changes.watch(d.CanExecuteChanged())

	assert.True(t, d.CanExecute(nil))
	assert.Equal(t, 0, changes.n, "same as cached default")

	allowed = false
	assert.False(t, d.CanExecute(nil))
	assert.False(t, d.CanExecute(nil))
	assert.Equal(t, 1, changes.n)
	assert.False(t, d.CanExecuteNow())

	allowed = true
	assert.True(t, d.CanExecute(nil))
	assert.Equal(t, 2, changes.n)
}

func TestCanRevertAndCanRecordAreEdgeTriggered(t *testing.T) {
	m := NewManager()
	d := newDelegate(t, m, Hooks{
		CanRevert: func(any) bool { return true },
		CanRecord: func(any) bool { return true },
	})

	var reverts, records counter
	reverts.watch(d.CanRevertChanged())
	records.watch(d.CanRecordChanged())

	for i := 0; i < 3; i++ {
		assert.True(t, d.CanRevert(nil))
		assert.True(t, d.CanRecord(nil))
	}
	assert.Equal(t, 1, reverts.n)
	assert.Equal(t, 1, records.n)
	assert.True(t, d.CanRevertNow())
	assert.True(t, d.CanRecordNow())
}

func TestEvaluationAlwaysRunsHook(t *testing.T) {
	m := NewManager()
	calls := 0
	d := newDelegate(t, m, Hooks{CanExecute: func(any) bool { calls++; return true }})

	d.CanExecute(nil)
	d.CanExecute(nil)
	assert.Equal(t, 2, calls)
}

func TestExecuteTrustsCache(t *testing.T) {
	m := NewManager()
	allowed := true
	var ran []any
	d := newDelegate(t, m, Hooks{
		Execute:    func(p any) { ran = append(ran, p) },
		CanExecute: func(any) bool { return allowed },
	})

	allowed = false
	d.Execute(1)
	assert.Equal(t, []any{1}, ran, "cache still says executable")

	d.CanExecute(nil)
	d.Execute(2)
	assert.Equal(t, []any{1}, ran, "gated by the refreshed cache")

	allowed = true
	d.Execute(3)
	assert.Equal(t, []any{1}, ran, "not re-evaluated before executing")

	d.CanExecute(nil)
	d.Execute(4)
	assert.Equal(t, []any{1, 4}, ran)
}

func TestRevertIsGatedByCachedFlag(t *testing.T) {
	m := NewManager()
	var reverted []any
	d := newDelegate(t, m, Hooks{
		Revert:    func(p any) { reverted = append(reverted, p) },
		CanRevert: func(any) bool { return true },
	})

	d.Revert("early")
	assert.Empty(t, reverted, "revertible defaults to false")

	d.CanRevert(nil)
	d.Revert("late")
	assert.Equal(t, []any{"late"}, reverted)
}

func TestDelegateCommandRequiresExecute(t *testing.T) {
	m := NewManager()
	d, err := m.NewDelegateCommand(Hooks{CanExecute: func(any) bool { return true }})
	assert.ErrorIs(t, err, ErrNilExecute)
	assert.Nil(t, d)
	assert.Empty(t, m.Commands())
}

func TestDelegateCommandDefaultsForOmittedCallbacks(t *testing.T) {
	m := NewManager()
	d := newDelegate(t, m, Hooks{})

	assert.True(t, d.CanExecute("x"))
	assert.False(t, d.CanRevert("x"))
	assert.False(t, d.CanRecord("x"))
	assert.NotPanics(t, func() { d.Revert("x") })
}

func TestOptionsNameCommands(t *testing.T) {
	m := NewManager()
	d, err := m.NewDelegateCommand(Hooks{Execute: func(any) {}}, WithName("hello"), WithDescription("says hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", d.Name())
	assert.Equal(t, "says hello", d.Description())

	d.SetName("hi")
	d.SetDescription("")
	assert.Equal(t, "hi", d.Name())
	assert.Equal(t, "", d.Description())

	found, ok := m.CommandByName("hi")
	require.True(t, ok)
	assert.Same(t, d, found)
}

func TestDisposeUnregistersOnce(t *testing.T) {
	m := NewManager()
	d := newDelegate(t, m, Hooks{})

	var disposed counter
	disposed.watch(d.Disposed())

	d.Dispose()
	assert.True(t, d.IsDisposed())
	assert.False(t, m.IsRegistered(d))

	d.Dispose()
	assert.Equal(t, 1, disposed.n)
}

func TestDisposeFromDisposedHandlerIsHarmless(t *testing.T) {
	m := NewManager()
	d := newDelegate(t, m, Hooks{})

	fired := 0
	d.Disposed().Subscribe(func(any, EventArgs) {
		fired++
		d.Dispose()
	})
	d.Dispose()
	assert.Equal(t, 1, fired)
}

type saveCommand struct {
	Base
	saved int
}

func TestCustomCommandEmbedsBase(t *testing.T) {
	m := NewManager()
	s := &saveCommand{}
	require.NoError(t, s.Init(m, s, Hooks{Execute: func(any) { s.saved++ }}, WithName("save")))

	var sender any
	s.CanExecuteChanged().Subscribe(func(from any, _ EventArgs) { sender = from })

	s.Execute(nil)
	assert.Equal(t, 1, s.saved)
	assert.True(t, m.IsRegistered(s))

	found, ok := m.Command(s.ID())
	require.True(t, ok)
	assert.Same(t, s, found)

	s.hooks.CanExecute = func(any) bool { return false }
	s.CanExecute(nil)
	assert.Same(t, s, sender, "events report the embedding value")
}

func TestInitRejectsMissingArguments(t *testing.T) {
	s := &saveCommand{}
	assert.ErrorIs(t, s.Init(nil, s, Hooks{}), ErrNilManager)
	assert.ErrorIs(t, s.Init(NewManager(), nil, Hooks{}), ErrNilCommand)
}
