// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package dispatch moves work onto the single logical thread that owns a
// command.Manager. The core is not safe for concurrent use, so goroutines
// such as HTTP handlers hand it closures through a Dispatcher instead of
// calling it directly.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"cmdeck/internal/logger"
)

var (
	// ErrClosed is returned by Do once the loop has stopped.
	ErrClosed = errors.New("dispatch loop closed")
	// ErrPanic wraps a panic recovered from a dispatched function.
	ErrPanic = errors.New("dispatched function panicked")
)

// Dispatcher runs fn on the owning thread and waits for it to finish. If ctx
// is cancelled while fn is still queued, fn is dropped and ctx.Err() is
// returned; once fn has started, Do waits for it.
type Dispatcher interface {
	Do(ctx context.Context, fn func()) error
}

// Inline runs functions on the calling goroutine. It is the dispatcher for
// code that already owns the manager, and for tests.
type Inline struct{}

// Do implements Dispatcher.
func (Inline) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return run(fn)
}

const (
	jobQueued int32 = iota
	jobRunning
	jobCancelled
)

// Job is one dispatched function on its way to the owning thread. Event loops
// other than Loop (a bubbletea program, say) receive Jobs as messages and
// call Run from their own thread; the dispatching goroutine waits in Wait.
type Job struct {
	fn    func()
	state atomic.Int32
	done  chan struct{}
	err   error
}

// NewJob wraps fn.
func NewJob(fn func()) *Job {
	return &Job{fn: fn, done: make(chan struct{})}
}

// Run executes the function unless the job was cancelled, recovering any
// panic into the error Wait returns. Only the first call has an effect.
func (j *Job) Run() {
	if !j.state.CompareAndSwap(jobQueued, jobRunning) {
		return
	}
	j.err = run(j.fn)
	close(j.done)
}

// Wait blocks until Run has finished. If ctx is cancelled or quit is closed
// before Run starts, the job is cancelled and ctx.Err() or ErrClosed is
// returned; a job that already started is always waited for.
func (j *Job) Wait(ctx context.Context, quit <-chan struct{}) error {
	select {
	case <-j.done:
		return j.err
	case <-ctx.Done():
		if j.state.CompareAndSwap(jobQueued, jobCancelled) {
			return ctx.Err()
		}
	case <-quit:
		if j.state.CompareAndSwap(jobQueued, jobCancelled) {
			return ErrClosed
		}
	}
	<-j.done
	return j.err
}

// Loop is a dispatcher backed by one goroutine, used when no UI event loop
// owns the manager (serve, commands).
type Loop struct {
	jobs chan *Job
	quit chan struct{}
	once sync.Once
}

// NewLoop returns a loop whose queue holds up to buffer pending jobs before
// Do blocks. Start it with Run.
func NewLoop(buffer int) *Loop {
	if buffer < 0 {
		buffer = 0
	}
	return &Loop{
		jobs: make(chan *Job, buffer),
		quit: make(chan struct{}),
	}
}

// Run executes queued functions one at a time until ctx is cancelled or
// Close is called. It returns nil on Close and ctx.Err() on cancellation.
func (l *Loop) Run(ctx context.Context) error {
	logger.Debug("Dispatch loop started.")
	defer logger.Debug("Dispatch loop stopped.")

	for {
		select {
		case <-ctx.Done():
			l.Close()
			return ctx.Err()
		case <-l.quit:
			return nil
		case j := <-l.jobs:
			j.Run()
		}
	}
}

// Do implements Dispatcher.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	j := NewJob(fn)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.quit:
		return ErrClosed
	case l.jobs <- j:
	}
	return j.Wait(ctx, l.quit)
}

// Close stops the loop. Jobs still queued are dropped and their callers get
// ErrClosed. Close may be called more than once.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.quit) })
}

func run(fn func()) (err error) {
	if fn == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered panic in dispatched function.", "panic", fmt.Sprint(r))
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	fn()
	return nil
}
