// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package ui's messages.go file defines the message types used in the Bubble Tea
// Model-View-Update architecture besides the ones bubbletea itself sends.

package ui

import tea "github.com/charmbracelet/bubbletea"

// statusMsg appends a line to the status log from outside Update, e.g. the
// HTTP server reporting that it is listening.
type statusMsg struct {
	text  string
	isErr bool
}

// Status returns a message that appends text to the status log.
func Status(text string) tea.Msg { return statusMsg{text: text} }

// StatusError returns a message that appends err to the status log.
func StatusError(err error) tea.Msg { return statusMsg{text: err.Error(), isErr: true} }
