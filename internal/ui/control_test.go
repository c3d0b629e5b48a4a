// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"testing"

	"cmdeck/internal/command"
	"cmdeck/internal/shortcut"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func altKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func gatedBinding(t *testing.T, cmd command.Command, allowed *bool) *command.Binding {
	t.Helper()
	b, err := command.NewBinding(cmd)
	require.NoError(t, err)
	b.QueryCanExecute().Subscribe(func(_ any, e *command.QueryCanExecuteEventArgs) { e.CanExecute = *allowed })
	return b
}

func TestButtonMirrorsCanExecute(t *testing.T) {
	m := command.NewManager()
	r := m.NewRoutedCommand()
	allowed := true
	binding := gatedBinding(t, r, &allowed)

	btn, err := NewButtonBuilder(m, "Go").WithBinding(binding).Build()
	require.NoError(t, err)
	assert.True(t, btn.Enabled())
	assert.True(t, m.IsSourceRegistered(btn))

	allowed = false
	m.InvalidateRequerySuggested()
	assert.False(t, btn.Enabled())

	executed := 0
	binding.Executed().Subscribe(func(any, *command.ExecutedEventArgs) { executed++ })
	assert.False(t, btn.Click())
	assert.Zero(t, executed)

	allowed = true
	m.InvalidateRequerySuggested()
	assert.True(t, btn.Click())
	assert.Equal(t, 1, executed)
}

func TestSetCommandTakesCachedStateImmediately(t *testing.T) {
	m := command.NewManager()
	r := m.NewRoutedCommand()
	allowed := false
	gatedBinding(t, r, &allowed)
	r.CanExecute(nil)

	btn, err := NewButton(m, "Go")
	require.NoError(t, err)
	btn.SetCommand(r)
	assert.False(t, btn.Enabled())
}

func TestReplacingCommandDropsOldSubscription(t *testing.T) {
	m := command.NewManager()
	first := m.NewRoutedCommand()
	second := m.NewRoutedCommand()
	firstAllowed, secondAllowed := true, true
	gatedBinding(t, first, &firstAllowed)
	gatedBinding(t, second, &secondAllowed)

	btn, err := NewButtonBuilder(m, "Go").WithCommand(first).Build()
	require.NoError(t, err)
	assert.Equal(t, 1, first.CanExecuteChanged().Len())

	btn.SetCommand(second)
	assert.Zero(t, first.CanExecuteChanged().Len())
	assert.Equal(t, 1, second.CanExecuteChanged().Len())

	firstAllowed = false
	first.CanExecute(nil)
	assert.True(t, btn.Enabled(), "old command no longer drives the button")

	btn.SetCommand(second)
	assert.Equal(t, 1, second.CanExecuteChanged().Len(), "same command is a no-op")
}

func TestClickPassesParameter(t *testing.T) {
	m := command.NewManager()
	r := m.NewRoutedCommand()
	binding, err := command.NewBinding(r)
	require.NoError(t, err)

	var got any
	binding.Executed().Subscribe(func(_ any, e *command.ExecutedEventArgs) { got = e.Parameter })

	btn, err := NewButtonBuilder(m, "Go").WithBinding(binding).WithCommandParameter(1234).Build()
	require.NoError(t, err)
	require.True(t, btn.Click())
	assert.Equal(t, 1234, got)
	assert.Equal(t, 1234, btn.CommandParameter())
}

func TestControlWithoutCommandIgnoresClicks(t *testing.T) {
	m := command.NewManager()
	btn, err := NewButtonBuilder(m, "Idle").WithBinding(nil).Build()
	require.NoError(t, err)
	assert.Nil(t, btn.Command())
	assert.True(t, btn.Enabled())
	assert.False(t, btn.Click())
}

func TestButtonTooltipShowsChord(t *testing.T) {
	m := command.NewManager()
	u := m.NewRoutedUICommand(shortcut.MustParse("Ctrl+1"))

	btn, err := NewButtonBuilder(m, "Invoke").WithCommand(u).Build()
	require.NoError(t, err)
	assert.Equal(t, "Invoke (Ctrl+1)", btn.Tooltip())

	btn.SetCommand(m.NewRoutedCommand())
	assert.Empty(t, btn.Tooltip())
}

func TestButtonTooltipRespectsShortcutText(t *testing.T) {
	m := command.NewManager()
	m.SetShortcutDefaults(true, false)
	u := m.NewRoutedUICommand(shortcut.MustParse("Ctrl+1"))

	btn, err := NewButtonBuilder(m, "Invoke").WithCommand(u).Build()
	require.NoError(t, err)
	assert.Empty(t, btn.Tooltip())
}

func TestMenuItemBindsChord(t *testing.T) {
	m := command.NewManager()
	u := m.NewRoutedUICommand(shortcut.MustParse("Alt+X"))

	item, err := NewMenuItemBuilder(m, "Exit").WithCommand(u).Build()
	require.NoError(t, err)
	assert.Equal(t, "Alt+X", item.ShortcutText())
	assert.True(t, item.Matches(altKey('x')))
	assert.False(t, item.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}))
	assert.Equal(t, "Exit", item.ShortcutBinding().Help().Desc)
}

func TestMenuItemShortcutFlags(t *testing.T) {
	tests := []struct {
		name     string
		keys     bool
		text     bool
		wantBind bool
		wantText string
	}{
		{"both", true, true, true, "Alt+X"},
		{"keys only", true, false, true, ""},
		{"text only", false, true, false, "Alt+X"},
		{"neither", false, false, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := command.NewManager()
			m.SetShortcutDefaults(tt.keys, tt.text)
			u := m.NewRoutedUICommand(shortcut.MustParse("Alt+X"))

			item, err := NewMenuItemBuilder(m, "Exit").WithCommand(u).Build()
			require.NoError(t, err)
			assert.Equal(t, tt.wantBind, item.Matches(altKey('x')))
			assert.Equal(t, tt.wantText, item.ShortcutText())
		})
	}
}

func TestMenuItemWithoutChordBindsNothing(t *testing.T) {
	m := command.NewManager()
	u := m.NewRoutedUICommand(shortcut.None)

	item, err := NewMenuItemBuilder(m, "Plain").WithCommand(u).Build()
	require.NoError(t, err)
	assert.False(t, item.ShortcutBinding().Enabled())
	assert.Empty(t, item.ShortcutText())
}

func TestReplacingCommandUnsetsChord(t *testing.T) {
	m := command.NewManager()
	exit := m.NewRoutedUICommand(shortcut.MustParse("Alt+X"))
	quit := m.NewRoutedUICommand(shortcut.MustParse("Alt+Q"))

	item, err := NewMenuItemBuilder(m, "Exit").WithCommand(exit).Build()
	require.NoError(t, err)

	item.SetCommand(quit)
	assert.False(t, item.Matches(altKey('x')))
	assert.True(t, item.Matches(altKey('q')))
	assert.Equal(t, "Alt+Q", item.ShortcutText())

	item.SetCommand(nil)
	assert.False(t, item.Matches(altKey('q')))
	assert.Empty(t, item.ShortcutText())
}

func TestDisposeReleasesControl(t *testing.T) {
	m := command.NewManager()
	u := m.NewRoutedUICommand(shortcut.MustParse("Alt+X"))
	item, err := NewMenuItemBuilder(m, "Exit").WithCommand(u).Build()
	require.NoError(t, err)

	item.Dispose()
	item.Dispose()
	assert.True(t, item.IsDisposed())
	assert.False(t, m.IsSourceRegistered(item))
	assert.Zero(t, u.CanExecuteChanged().Len())
	assert.False(t, item.Matches(altKey('x')))
}

func TestNewControlRequiresManager(t *testing.T) {
	_, err := NewButton(nil, "x")
	assert.ErrorIs(t, err, command.ErrNilManager)

	_, err = NewMenuItemBuilder(nil, "x").Build()
	assert.ErrorIs(t, err, command.ErrNilManager)
}
