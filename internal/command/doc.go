// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package command implements the command-dispatch protocol used by the
// terminal controls and the HTTP API.
//
// A Command caches three capability flags (executable, revertible,
// recordable) and fires a change event only when a fresh evaluation differs
// from the cached value. Execute and Revert trust the cache and never
// re-evaluate. A RoutedCommand has no behavior of its own and forwards every
// call to the single Binding it is attached to, whose events are observed by
// handlers; a DelegateCommand runs caller-supplied callbacks directly.
//
// A Manager owns the registry of live commands and command sources and the
// requery broadcast (InvalidateRequerySuggested). Nothing here is safe for
// concurrent use: all calls are expected to come from one goroutine, usually
// the UI event loop. See package dispatch for hopping onto that goroutine.
package command
