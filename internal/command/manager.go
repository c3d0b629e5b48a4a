// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package command

import (
	"cmdeck/internal/logger"
	"cmdeck/internal/shortcut"

	"github.com/google/uuid"
)

// ActivationSource is a window-like object that signals when it gains or
// loses focus. Each subscription returns a function that undoes it.
type ActivationSource interface {
	OnActivated(fn func()) (unsubscribe func())
	OnDeactivated(fn func()) (unsubscribe func())
}

// registry is a membership set that remembers insertion order.
type registry[K comparable, V any] struct {
	order []K
	items map[K]V
}

func (r *registry[K, V]) add(k K, v V) bool {
	if r.items == nil {
		r.items = make(map[K]V)
	}
	if _, ok := r.items[k]; ok {
		return false
	}
	r.items[k] = v
	r.order = append(r.order, k)
	return true
}

func (r *registry[K, V]) remove(k K) bool {
	if _, ok := r.items[k]; !ok {
		return false
	}
	delete(r.items, k)
	for i, o := range r.order {
		if o == k {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *registry[K, V]) has(k K) bool {
	_, ok := r.items[k]
	return ok
}

func (r *registry[K, V]) get(k K) (V, bool) {
	v, ok := r.items[k]
	return v, ok
}

// snapshot returns the values in insertion order.
func (r *registry[K, V]) snapshot() []V {
	out := make([]V, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.items[k])
	}
	return out
}

// Manager is the registry of live commands and command sources for one
// application. It also owns the routed-command attachment table and the
// requery broadcast. Create one with NewManager and pass it to everything
// that creates commands or sources.
type Manager struct {
	commands registry[uuid.UUID, Command]
	sources  registry[Source, Source]

	// attachments maps a routed command id to the binding it is attached
	// to. Bindings hold the forward reference to their command.
	attachments map[uuid.UUID]*Binding

	hooked map[ActivationSource]func()

	requerySuggested Event[EventArgs]

	setShortcutKeys bool
	setShortcutText bool
}

// NewManager returns an empty manager. New UI commands apply their shortcut
// keys and shortcut text to controls unless SetShortcutDefaults says otherwise.
func NewManager() *Manager {
	return &Manager{
		attachments:     make(map[uuid.UUID]*Binding),
		hooked:          make(map[ActivationSource]func()),
		setShortcutKeys: true,
		setShortcutText: true,
	}
}

// RequerySuggested fires once at the end of every InvalidateRequerySuggested.
func (m *Manager) RequerySuggested() *Event[EventArgs] {
	return &m.requerySuggested
}

// SetShortcutDefaults sets the SetShortcutKeys/SetShortcutText values given to
// UI commands created from now on.
func (m *Manager) SetShortcutDefaults(keys, text bool) {
	m.setShortcutKeys = keys
	m.setShortcutText = text
}

// ShortcutDefaults reports the values set by SetShortcutDefaults.
func (m *Manager) ShortcutDefaults() (keys, text bool) {
	return m.setShortcutKeys, m.setShortcutText
}

// RegisterCommand adds c to the registry. Registering twice or registering
// nil is a no-op.
func (m *Manager) RegisterCommand(c Command) {
	if c == nil {
		return
	}
	m.commands.add(c.ID(), c)
}

// UnregisterCommand removes c. Unknown commands and nil are ignored.
func (m *Manager) UnregisterCommand(c Command) {
	if c == nil {
		return
	}
	m.commands.remove(c.ID())
}

// RegisterSource adds s to the registry. Sources are compared by identity,
// so s must be a comparable value (normally a pointer).
func (m *Manager) RegisterSource(s Source) {
	if s == nil {
		return
	}
	m.sources.add(s, s)
}

// UnregisterSource removes s. Unknown sources and nil are ignored.
func (m *Manager) UnregisterSource(s Source) {
	if s == nil {
		return
	}
	m.sources.remove(s)
}

// IsRegistered reports whether c is currently registered.
func (m *Manager) IsRegistered(c Command) bool {
	return c != nil && m.commands.has(c.ID())
}

// IsSourceRegistered reports whether s is currently registered.
func (m *Manager) IsSourceRegistered(s Source) bool {
	return s != nil && m.sources.has(s)
}

// Commands returns the registered commands in registration order.
func (m *Manager) Commands() []Command {
	return m.commands.snapshot()
}

// Sources returns the registered command sources in registration order.
func (m *Manager) Sources() []Source {
	return m.sources.snapshot()
}

// Command looks a registered command up by id.
func (m *Manager) Command(id uuid.UUID) (Command, bool) {
	return m.commands.get(id)
}

// CommandByName returns the first registered command with the given name.
func (m *Manager) CommandByName(name string) (Command, bool) {
	if name == "" {
		return nil, false
	}
	for _, c := range m.commands.snapshot() {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// InvalidateRequerySuggested forces every registered command to re-evaluate
// its executable flag, then fires RequerySuggested.
//
// Plain commands are evaluated with a nil parameter. Routed commands have no
// meaningful global parameter, so they are evaluated through the registered
// sources that hold them, with that source's parameter. Each command is
// evaluated at most once per pass: when several sources share a routed
// command, the first-registered source decides the parameter and the others
// are skipped. A routed command no source holds is not evaluated at all.
//
// Both passes walk snapshots and skip entries that handlers unregistered
// earlier in the same pass.
func (m *Manager) InvalidateRequerySuggested() {
	updated := make(map[uuid.UUID]struct{})
	var plain, routed, shared int

	for _, c := range m.commands.snapshot() {
		if _, ok := c.(Routed); ok {
			continue
		}
		if !m.commands.has(c.ID()) {
			continue
		}
		c.CanExecute(nil)
		updated[c.ID()] = struct{}{}
		plain++
	}

	for _, s := range m.sources.snapshot() {
		if !m.sources.has(s) {
			continue
		}
		r, ok := s.Command().(Routed)
		if !ok || r.routed() == nil {
			continue
		}
		if !m.commands.has(r.ID()) {
			// Disposed while still held by a control.
			continue
		}
		if _, done := updated[r.ID()]; done {
			shared++
			continue
		}
		r.CanExecute(s.CommandParameter())
		updated[r.ID()] = struct{}{}
		routed++
	}

	logger.Debug("Requery pass finished.", "commands", plain, "routed", routed, "shared_sources_skipped", shared)

	m.requerySuggested.Raise(m, EventArgs{})
}

// Hook makes every activation and deactivation of w trigger
// InvalidateRequerySuggested. Hooking the same source twice is a no-op.
func (m *Manager) Hook(w ActivationSource) error {
	if w == nil {
		return ErrNilActivationSource
	}
	if _, ok := m.hooked[w]; ok {
		return nil
	}

	offActivated := w.OnActivated(m.InvalidateRequerySuggested)
	offDeactivated := w.OnDeactivated(m.InvalidateRequerySuggested)
	m.hooked[w] = func() {
		offActivated()
		offDeactivated()
	}
	return nil
}

// Unhook undoes Hook. Unhooking a source that is not hooked is a no-op.
func (m *Manager) Unhook(w ActivationSource) error {
	if w == nil {
		return ErrNilActivationSource
	}
	off, ok := m.hooked[w]
	if !ok {
		return nil
	}
	delete(m.hooked, w)
	off()
	return nil
}

// NewRoutedCommand creates and registers a routed command.
func (m *Manager) NewRoutedCommand(opts ...Option) *RoutedCommand {
	r := &RoutedCommand{}
	r.init(m, r, opts)
	return r
}

// NewRoutedUICommand creates and registers a routed command carrying a
// shortcut chord for controls to display and bind.
func (m *Manager) NewRoutedUICommand(keys shortcut.Keys, opts ...Option) *RoutedUICommand {
	u := &RoutedUICommand{
		shortcutKeys:    keys,
		SetShortcutKeys: m.setShortcutKeys,
		SetShortcutText: m.setShortcutText,
	}
	u.RoutedCommand.init(m, u, opts)
	return u
}

// ParseRoutedUICommand is NewRoutedUICommand with the chord given in its
// readable form, e.g. "Ctrl+1".
func (m *Manager) ParseRoutedUICommand(keys string, opts ...Option) (*RoutedUICommand, error) {
	k, err := shortcut.Parse(keys)
	if err != nil {
		return nil, err
	}
	return m.NewRoutedUICommand(k, opts...), nil
}

// NewDelegateCommand creates and registers a command that runs hooks
// directly. hooks.Execute is required.
func (m *Manager) NewDelegateCommand(hooks Hooks, opts ...Option) (*DelegateCommand, error) {
	if hooks.Execute == nil {
		return nil, ErrNilExecute
	}
	d := &DelegateCommand{}
	if err := d.Init(m, d, hooks, opts...); err != nil {
		return nil, err
	}
	return d, nil
}

// NewSource creates and registers a plain command source, for invokers that
// have no control of their own (scripts, the HTTP API, tests).
func (m *Manager) NewSource(cmd Command, parameter any) *SourceBase {
	s := &SourceBase{}
	_ = s.Init(m, s)
	s.command = cmd
	s.parameter = parameter
	return s
}

func (m *Manager) attachment(id uuid.UUID) *Binding {
	return m.attachments[id]
}

func (m *Manager) attach(id uuid.UUID, b *Binding) error {
	if b == nil {
		return ErrNilBinding
	}
	if _, ok := m.attachments[id]; ok {
		return ErrAlreadyAttached
	}
	m.attachments[id] = b
	logger.Debug("Routed command attached.", "command", id.String(), "binding", b.id.String())
	return nil
}

func (m *Manager) detach(id uuid.UUID, b *Binding) error {
	if b == nil {
		return ErrNilBinding
	}
	if m.attachments[id] != b {
		return ErrBindingMismatch
	}
	delete(m.attachments, id)
	logger.Debug("Routed command detached.", "command", id.String(), "binding", b.id.String())
	return nil
}
