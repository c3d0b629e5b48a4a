// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"context"
	"sync"

	"cmdeck/internal/dispatch"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgramDispatcher runs dispatched functions inside the program's Update,
// which is where the model owns the command manager.
type ProgramDispatcher struct {
	send func(tea.Msg)
	quit chan struct{}
	once sync.Once
}

var _ dispatch.Dispatcher = (*ProgramDispatcher)(nil)

// NewProgramDispatcher dispatches onto p. Call Close once p.Run returns.
func NewProgramDispatcher(p *tea.Program) *ProgramDispatcher {
	return newProgramDispatcher(p.Send)
}

func newProgramDispatcher(send func(tea.Msg)) *ProgramDispatcher {
	return &ProgramDispatcher{send: send, quit: make(chan struct{})}
}

// Do implements dispatch.Dispatcher.
func (d *ProgramDispatcher) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-d.quit:
		return dispatch.ErrClosed
	default:
	}

	j := dispatch.NewJob(fn)
	d.send(j)
	return j.Wait(ctx, d.quit)
}

// Close fails pending and future calls with dispatch.ErrClosed.
func (d *ProgramDispatcher) Close() {
	d.once.Do(func() { close(d.quit) })
}
