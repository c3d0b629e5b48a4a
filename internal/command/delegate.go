// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package command

// DelegateCommand runs the callbacks it was created with, without a binding
// in between. Create one with Manager.NewDelegateCommand.
type DelegateCommand struct {
	Base
}
