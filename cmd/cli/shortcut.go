// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"

	"cmdeck/internal/shortcut"

	"github.com/spf13/cobra"
)

var shortcutCmd = &cobra.Command{
	Use:   "shortcut",
	Short: "Inspect shortcut chords",
}

var shortcutDescribeCmd = &cobra.Command{
	Use:     "describe <chord>...",
	Short:   "Normalize chords and show the key each one matches in a terminal",
	Example: "  cmdeck shortcut describe ctrl+1 \"Alt + x\" Shift+F5",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var invalid int
		for _, chord := range args {
			keys, err := shortcut.Parse(chord)
			if err != nil {
				errorColor.Printf("%-20s %v\n", chord, err)
				invalid++
				continue
			}
			if keys.IsZero() {
				fmt.Printf("%-20s %s\n", chord, dimColor.Sprint("(none)"))
				continue
			}
			fmt.Printf("%-20s %s  %s\n", chord, identifierColor.Sprintf("%-14s", keys.String()),
				dimColor.Sprintf("terminal: %s", keys.TeaString()))
		}
		if invalid > 0 {
			return fmt.Errorf("%d of %d chords are invalid", invalid, len(args))
		}
		return nil
	},
}

func init() {
	shortcutCmd.AddCommand(shortcutDescribeCmd)
}
