// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import "cmdeck/internal/command"

// Builder assembles a control and its command in one chain:
//
//	btn, err := ui.NewButtonBuilder(m, "Invoke").
//		WithBinding(binding).
//		WithCommandParameter(1234).
//		Build()
type Builder[C Control] struct {
	create    func() (C, error)
	command   command.Command
	parameter any
}

// NewButtonBuilder starts a Button.
func NewButtonBuilder(m *command.Manager, label string) *Builder[*Button] {
	return &Builder[*Button]{create: func() (*Button, error) { return NewButton(m, label) }}
}

// NewMenuItemBuilder starts a MenuItem.
func NewMenuItemBuilder(m *command.Manager, label string) *Builder[*MenuItem] {
	return &Builder[*MenuItem]{create: func() (*MenuItem, error) { return NewMenuItem(m, label) }}
}

// WithCommand sets the command the control invokes.
func (b *Builder[C]) WithCommand(cmd command.Command) *Builder[C] {
	b.command = cmd
	return b
}

// WithCommandParameter sets the parameter passed on every click.
func (b *Builder[C]) WithCommandParameter(parameter any) *Builder[C] {
	b.parameter = parameter
	return b
}

// WithBinding uses the binding's command. A nil binding changes nothing.
func (b *Builder[C]) WithBinding(binding *command.Binding) *Builder[C] {
	if binding != nil {
		b.command = binding.Command()
	}
	return b
}

// Build creates, registers and wires the control.
func (b *Builder[C]) Build() (C, error) {
	c, err := b.create()
	if err != nil {
		var zero C
		return zero, err
	}
	c.SetCommandParameter(b.parameter)
	if b.command != nil {
		c.SetCommand(b.command)
	}
	return c, nil
}
