// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package command

// EventArgs is the empty payload of change notifications.
type EventArgs struct{}

// Handler receives an event together with the object that raised it.
type Handler[T any] func(sender any, args T)

type subscriber[T any] struct {
	id      uint64
	handler Handler[T]
}

// Event is an ordered subscriber list. Handlers run synchronously, in
// subscription order, on the goroutine that raises the event. Subscribing or
// unsubscribing from inside a handler is allowed and takes effect from the
// next raise.
type Event[T any] struct {
	subscribers []subscriber[T]
	nextID      uint64
}

// Subscribe adds h and returns a function that removes it again.
// The returned function may be called any number of times.
func (e *Event[T]) Subscribe(h Handler[T]) (unsubscribe func()) {
	if h == nil {
		return func() {}
	}
	e.nextID++
	id := e.nextID
	e.subscribers = append(e.subscribers, subscriber[T]{id: id, handler: h})
	return func() { e.remove(id) }
}

// Len reports the number of subscribers.
func (e *Event[T]) Len() int {
	return len(e.subscribers)
}

func (e *Event[T]) remove(id uint64) {
	for i, s := range e.subscribers {
		if s.id == id {
			// Copy so a raise in progress keeps iterating its own snapshot.
			e.subscribers = append(e.subscribers[:i:i], e.subscribers[i+1:]...)
			return
		}
	}
}

// Raise runs the handlers. It is for the type that owns the event; everyone
// else only subscribes.
func (e *Event[T]) Raise(sender any, args T) {
	subs := e.subscribers
	for _, s := range subs {
		s.handler(sender, args)
	}
}
