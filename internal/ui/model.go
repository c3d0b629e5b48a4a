// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package ui is the terminal front end: bubbletea adapters that turn buttons
// and menu items into command sources, a window whose focus drives requeries,
// and the demo screen built from the app layout.
package ui

import (
	"fmt"
	"strings"
	"time"

	"cmdeck/internal/app"
	"cmdeck/internal/command"
	"cmdeck/internal/config"
	"cmdeck/internal/dispatch"
	"cmdeck/internal/logger"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// statusLine is one entry of the status log.
type statusLine struct {
	at    time.Time
	text  string
	isErr bool
}

// Model is the demo screen. It owns the manager: every call into the command
// core happens inside Update.
type Model struct {
	app     *app.App
	manager *command.Manager
	window  *Window
	keymap  KeyMap

	buttons    []*Button
	menu       []*MenuItem
	focus      int
	menuCursor int

	currentState state
	status       []statusLine
	viewport     viewport.Model
	ready        bool
	width        int
	height       int
	quitting     bool

	now func() time.Time
}

// NewModel creates the demo commands on m, builds a control for every entry
// of app.Layout and hooks the terminal window to the manager.
func NewModel(m *command.Manager, cfg config.Config) (*Model, error) {
	model := &Model{
		manager: m,
		window:  NewWindow(),
		keymap:  DefaultKeyMap,
		now:     time.Now,
	}

	a, err := app.New(m, cfg,
		app.WithNotifier(model.appendStatus),
		app.WithQuit(func() { model.quitting = true }),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create commands: %w", err)
	}
	model.app = a

	if err := model.buildControls(); err != nil {
		model.Dispose()
		return nil, err
	}
	if err := m.Hook(model.window); err != nil {
		model.Dispose()
		return nil, err
	}

	m.InvalidateRequerySuggested()
	return model, nil
}

func (m *Model) buildControls() error {
	for _, c := range app.Layout {
		cmd, ok := m.app.Command(c.Command)
		if !ok {
			return fmt.Errorf("layout control %s: unknown command %q", c.Name, c.Command)
		}

		switch c.Kind {
		case app.KindButton:
			b := NewButtonBuilder(m.manager, c.Label).WithCommandParameter(c.Parameter)
			if binding := m.app.Binding(c.Command); binding != nil {
				b.WithBinding(binding)
			} else {
				b.WithCommand(cmd)
			}
			btn, err := b.Build()
			if err != nil {
				return fmt.Errorf("build %s: %w", c.Name, err)
			}
			m.buttons = append(m.buttons, btn)

		case app.KindMenuItem:
			b := NewMenuItemBuilder(m.manager, c.Label).WithCommandParameter(c.Parameter)
			if binding := m.app.Binding(c.Command); binding != nil {
				b.WithBinding(binding)
			} else {
				b.WithCommand(cmd)
			}
			item, err := b.Build()
			if err != nil {
				return fmt.Errorf("build %s: %w", c.Name, err)
			}
			m.menu = append(m.menu, item)
		}
	}
	logger.Debug("Controls built.", "buttons", len(m.buttons), "menu_items", len(m.menu))
	return nil
}

// App returns the demo command set.
func (m *Model) App() *app.App { return m.app }

// Window returns the activation source hooked to the manager.
func (m *Model) Window() *Window { return m.window }

// Buttons returns the button row.
func (m *Model) Buttons() []*Button { return m.buttons }

// MenuItems returns the File menu entries.
func (m *Model) MenuItems() []*MenuItem { return m.menu }

// Dispose unhooks the window and disposes every control and command.
func (m *Model) Dispose() {
	_ = m.manager.Unhook(m.window)
	for _, b := range m.buttons {
		b.Dispose()
	}
	for _, mi := range m.menu {
		mi.Dispose()
	}
	if m.app != nil {
		m.app.Dispose()
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle(appTitle)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cmds = append(cmds, handleWindowSizeMsg(m, msg))
	case tea.FocusMsg, tea.BlurMsg:
		m.window.Update(msg)
	case *dispatch.Job:
		msg.Run()
	case statusMsg:
		m.addStatus(msg.text, msg.isErr)
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeys(msg)...)
	}

	if m.quitting {
		return m, tea.Quit
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) appendStatus(text string) {
	m.addStatus(text, false)
}

func (m *Model) addStatus(text string, isErr bool) {
	m.status = append(m.status, statusLine{at: m.now(), text: text, isErr: isErr})
	if over := len(m.status) - maxStatusLines; over > 0 {
		m.status = append(m.status[:0], m.status[over:]...)
	}
	if m.ready {
		m.viewport.SetContent(m.renderStatusLog())
		m.viewport.GotoBottom()
	}
}

// StatusLines returns the status log without timestamps.
func (m *Model) StatusLines() []string {
	lines := make([]string, len(m.status))
	for i, s := range m.status {
		lines[i] = s.text
	}
	return lines
}

func (m *Model) renderStatusLog() string {
	var b strings.Builder
	for i, s := range m.status {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(timeStyle.Render(s.at.Format("15:04:05")) + " ")
		if s.isErr {
			b.WriteString(errorStyle.Render(s.text))
		} else {
			b.WriteString(s.text)
		}
	}
	return b.String()
}
