// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package command

import "errors"

// Protocol errors. Each is returned at the call that broke the protocol and
// leaves the receiver unchanged.
var (
	ErrNilManager          = errors.New("command manager must not be nil")
	ErrNilCommand          = errors.New("command must not be nil")
	ErrNilBinding          = errors.New("command binding must not be nil")
	ErrNilSource           = errors.New("command source must not be nil")
	ErrNilExecute          = errors.New("execute callback must not be nil")
	ErrNilActivationSource = errors.New("activation source must not be nil")
	ErrAlreadyAttached     = errors.New("routed command is already attached to a command binding")
	ErrBindingMismatch     = errors.New("routed command is not attached to this command binding")
)
