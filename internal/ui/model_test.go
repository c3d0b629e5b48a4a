// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"context"
	"errors"
	"testing"

	"cmdeck/internal/app"
	"cmdeck/internal/command"
	"cmdeck/internal/config"
	"cmdeck/internal/dispatch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T) *Model {
	t.Helper()
	m, err := NewModel(command.NewManager(), config.Default())
	require.NoError(t, err)
	t.Cleanup(m.Dispose)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func press(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestWindowRaisesActivation(t *testing.T) {
	w := NewWindow()
	var events []string
	w.OnActivated(func() { events = append(events, "activated") })
	off := w.OnDeactivated(func() { events = append(events, "deactivated") })

	assert.True(t, w.Update(tea.BlurMsg{}))
	assert.False(t, w.Focused())
	assert.True(t, w.Update(tea.FocusMsg{}))
	assert.True(t, w.Focused())
	assert.False(t, w.Update(tea.KeyMsg{}))

	off()
	w.Update(tea.BlurMsg{})
	assert.Equal(t, []string{"deactivated", "activated"}, events)
}

func TestProgramDispatcher(t *testing.T) {
	d := newProgramDispatcher(func(msg tea.Msg) {
		go msg.(*dispatch.Job).Run()
	})

	ran := false
	require.NoError(t, d.Do(context.Background(), func() { ran = true }))
	assert.True(t, ran)

	err := d.Do(context.Background(), func() { panic("bad") })
	assert.ErrorIs(t, err, dispatch.ErrPanic)

	d.Close()
	d.Close()
	assert.ErrorIs(t, d.Do(context.Background(), func() {}), dispatch.ErrClosed)
}

func TestProgramDispatcherClosedWhileWaiting(t *testing.T) {
	// A program that has exited drops messages.
	d := newProgramDispatcher(func(tea.Msg) {})
	done := make(chan error, 1)
	go func() { done <- d.Do(context.Background(), func() {}) }()

	d.Close()
	assert.ErrorIs(t, <-done, dispatch.ErrClosed)
}

func TestProgramDispatcherHonorsContext(t *testing.T) {
	d := newProgramDispatcher(func(tea.Msg) { t.Fatal("sent with a cancelled context") })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, d.Do(ctx, func() {}), context.Canceled)
}

func TestModelBuildsLayout(t *testing.T) {
	m := newModel(t)

	var buttons, items int
	for _, c := range app.Layout {
		if c.Kind == app.KindButton {
			buttons++
		} else {
			items++
		}
	}
	assert.Len(t, m.Buttons(), buttons)
	assert.Len(t, m.MenuItems(), items)
	assert.Len(t, m.App().Manager().Sources(), len(app.Layout))
	assert.Equal(t, "Invoke 1 (Ctrl+1)", m.Buttons()[0].Tooltip())
	assert.Equal(t, 1234, m.Buttons()[1].CommandParameter())

	view := m.View()
	assert.Contains(t, view, "Invoke 1")
	assert.Contains(t, view, "Toggle 1")
}

func TestModelPressesFocusedButton(t *testing.T) {
	m := newModel(t)

	press(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"This is command 1. Command parameter: 1234"}, m.StatusLines())
}

func TestModelToggleDisablesControls(t *testing.T) {
	m := newModel(t)

	// btnToggle1 is the third button.
	press(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.StatusLines(), "Command 1 disabled.")
	assert.False(t, m.Buttons()[0].Enabled())
	assert.False(t, m.Buttons()[1].Enabled())
	assert.False(t, m.MenuItems()[0].Enabled())

	press(m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.StatusLines(), "Invoke 1 (1234) is disabled.")
}

func TestModelRevertsFocusedButton(t *testing.T) {
	m := newModel(t)

	// btnUndo is the fifth button.
	for i := 0; i < 4; i++ {
		press(m, tea.KeyMsg{Type: tea.KeyRight})
	}
	press(m, runes("z"))
	assert.Contains(t, m.StatusLines(), "Nothing to revert for Record.")

	press(m, tea.KeyMsg{Type: tea.KeyEnter}, runes("z"))
	assert.Contains(t, m.StatusLines(), "Reverted step 1.")
	assert.Zero(t, m.App().UndoDepth())
}

func TestModelMenuNavigation(t *testing.T) {
	m := newModel(t)

	press(m, runes("f"))
	assert.Contains(t, m.View(), "Alt+X")

	press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"Hello from a DelegateCommand."}, m.StatusLines())
	assert.Equal(t, stateButtons, m.currentState)

	press(m, runes("f"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateButtons, m.currentState)
}

func TestModelExitChordQuits(t *testing.T) {
	m := newModel(t)
	cmd := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true})
	assert.True(t, isQuit(cmd))
	assert.Empty(t, m.View())
}

func TestModelCtrlCQuits(t *testing.T) {
	m := newModel(t)
	assert.True(t, isQuit(press(m, tea.KeyMsg{Type: tea.KeyCtrlC})))
}

func TestModelFocusRequeries(t *testing.T) {
	m := newModel(t)
	requeries := 0
	m.App().Manager().RequerySuggested().Subscribe(func(any, command.EventArgs) { requeries++ })

	press(m, tea.BlurMsg{}, tea.FocusMsg{})
	assert.Equal(t, 2, requeries)
}

func TestModelRunsDispatchedJobs(t *testing.T) {
	m := newModel(t)
	j := dispatch.NewJob(func() { m.App().Hello.Execute(nil) })
	press(m, j)

	require.NoError(t, j.Wait(context.Background(), nil))
	assert.Equal(t, []string{"Hello from a DelegateCommand."}, m.StatusLines())
}

func TestModelStatusMessages(t *testing.T) {
	m := newModel(t)
	press(m, Status("listening"), StatusError(errors.New("bind failed")))
	assert.Equal(t, []string{"listening", "bind failed"}, m.StatusLines())
}

func TestModelDisposeReleasesManager(t *testing.T) {
	mgr := command.NewManager()
	m, err := NewModel(mgr, config.Default())
	require.NoError(t, err)

	m.Dispose()
	assert.Empty(t, mgr.Commands())
	assert.Empty(t, mgr.Sources())
}
