// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"

	"cmdeck/internal/logger"

	"github.com/spf13/cobra"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Requery the demo commands and show their state",
	Long: `Builds the demo command set without a UI, runs one requery pass through
the default control layout and prints what every command reports.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}

		h, err := newHeadless(c)
		if err != nil {
			return err
		}
		defer h.Dispose()

		states := h.states()
		logger.Debug("Listed commands", "count", len(states))
		printCommandTable(states)
		fmt.Println()
		fmt.Printf("%d commands, %d sources\n", len(states), len(h.manager.Sources()))
		return nil
	},
}
