// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Message Handlers ---
// These functions handle specific message types received by the model's Update function.

func handleWindowSizeMsg(m *Model, msg tea.WindowSizeMsg) tea.Cmd {
	m.width = msg.Width
	m.height = msg.Height

	if !m.ready {
		// Height is set in View from the space the other sections leave.
		m.viewport = viewport.New(m.width, 1)
		m.viewport.SetContent(m.renderStatusLog())
		m.viewport.GotoBottom()
		m.ready = true
	} else {
		m.viewport.Width = m.width
	}
	return nil
}
