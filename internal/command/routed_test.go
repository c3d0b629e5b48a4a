// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package command

import (
	"testing"

	"cmdeck/internal/shortcut"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnattachedRoutedCommandUsesDefaults(t *testing.T) {
	m := NewManager()
	r := m.NewRoutedCommand()

	assert.True(t, r.CanExecute(1))
	assert.False(t, r.CanRevert(1))
	assert.False(t, r.CanRecord(1))
	assert.NotPanics(t, func() {
		r.Execute(1)
		r.Revert(1)
	})
}

func TestRoutedExecuteRaisesPreviewThenExecuted(t *testing.T) {
	m := NewManager()
	r := m.NewRoutedCommand()
	b := newBinding(t, r)

	var order []string
	var seen []*ExecutedEventArgs
	b.PreviewExecuted().Subscribe(func(_ any, e *ExecutedEventArgs) {
		order = append(order, "preview")
		seen = append(seen, e)
	})
	b.Executed().Subscribe(func(_ any, e *ExecutedEventArgs) {
		order = append(order, "executed")
		seen = append(seen, e)
	})

	r.Execute("p")
	assert.Equal(t, []string{"preview", "executed"}, order)
	require.Len(t, seen, 2)
	assert.Same(t, seen[0], seen[1])
	assert.Equal(t, "p", seen[1].Parameter)
}

func TestRoutedRevertRaisesPreviewThenReverted(t *testing.T) {
	m := NewManager()
	r := m.NewRoutedCommand()
	b := newBinding(t, r)
	b.QueryCanRevert().Subscribe(func(_ any, e *QueryCanRevertEventArgs) { e.CanRevert = true })

	var order []string
	b.PreviewReverted().Subscribe(func(_ any, e *RevertedEventArgs) { order = append(order, "preview") })
	b.Reverted().Subscribe(func(_ any, e *RevertedEventArgs) { order = append(order, "reverted") })

	r.Revert(nil)
	assert.Empty(t, order, "not revertible yet")

	require.True(t, r.CanRevert(nil))
	r.Revert(nil)
	assert.Equal(t, []string{"preview", "reverted"}, order)
}

func TestRoutedExecuteUsesGivenParameter(t *testing.T) {
	m := NewManager()
	r := m.NewRoutedCommand()
	b := newBinding(t, r)
	m.NewSource(r, 42)

	var got any
	b.Executed().Subscribe(func(_ any, e *ExecutedEventArgs) { got = e.Parameter })

	r.Execute(99)
	assert.Equal(t, 99, got)
}

func TestQueryHandlerDecidesCanExecute(t *testing.T) {
	m := NewManager()
	r := m.NewRoutedCommand()
	b := newBinding(t, r)

	var seeded []bool
	b.QueryCanExecute().Subscribe(func(_ any, e *QueryCanExecuteEventArgs) {
		seeded = append(seeded, e.CanExecute)
		e.CanExecute = false
	})
	var changes counter
	changes.watch(r.CanExecuteChanged())

	assert.False(t, r.CanExecute(nil))
	assert.False(t, r.CanExecute(nil))
	assert.False(t, r.CanExecuteNow())
	assert.Equal(t, 1, changes.n)
	assert.Equal(t, []bool{true, true}, seeded, "each query starts from the default")
}

func TestQueryWithoutHandlersKeepsDefault(t *testing.T) {
	m := NewManager()
	r := m.NewRoutedCommand()
	newBinding(t, r)

	assert.True(t, r.CanExecute(nil))
	assert.False(t, r.CanRevert(nil))
	assert.False(t, r.CanRecord(nil))
}

func TestLastQueryHandlerWins(t *testing.T) {
	m := NewManager()
	r := m.NewRoutedCommand()
	b := newBinding(t, r)

	b.QueryCanRecord().Subscribe(func(_ any, e *QueryCanRecordEventArgs) { e.CanRecord = true })
	b.QueryCanRecord().Subscribe(func(_ any, e *QueryCanRecordEventArgs) { e.CanRecord = false })
	assert.False(t, r.CanRecord(nil))
}

func TestQueryReceivesParameter(t *testing.T) {
	m := NewManager()
	r := m.NewRoutedCommand()
	b := newBinding(t, r)

	b.QueryCanExecute().Subscribe(func(_ any, e *QueryCanExecuteEventArgs) {
		e.CanExecute = e.Parameter == "yes"
	})
	assert.True(t, r.CanExecute("yes"))
	assert.False(t, r.CanExecute("no"))
}

func TestDetachedRoutedCommandKeepsCache(t *testing.T) {
	m := NewManager()
	r := m.NewRoutedCommand()
	b := newBinding(t, r)
	b.QueryCanExecute().Subscribe(func(_ any, e *QueryCanExecuteEventArgs) { e.CanExecute = false })

	r.CanExecute(nil)
	b.Detach()
	assert.False(t, r.CanExecuteNow())

	assert.True(t, r.CanExecute(nil), "unattached queries report the default")
}

func TestRoutedUICommandShortcutDefaults(t *testing.T) {
	m := NewManager()
	u := m.NewRoutedUICommand(shortcut.MustParse("Alt+X"))
	assert.True(t, u.SetShortcutKeys)
	assert.True(t, u.SetShortcutText)

	m.SetShortcutDefaults(false, true)
	v := m.NewRoutedUICommand(shortcut.None)
	assert.False(t, v.SetShortcutKeys)
	assert.True(t, v.SetShortcutText)
	assert.True(t, v.ShortcutKeys().IsZero())

	keys, text := m.ShortcutDefaults()
	assert.False(t, keys)
	assert.True(t, text)
	assert.True(t, u.SetShortcutKeys, "existing commands keep their flags")
}

func TestParseRoutedUICommandRejectsBadChord(t *testing.T) {
	m := NewManager()
	u, err := m.ParseRoutedUICommand("Ctrl+Nope")
	assert.ErrorIs(t, err, shortcut.ErrUnknownKey)
	assert.Nil(t, u)
	assert.Empty(t, m.Commands())
}
