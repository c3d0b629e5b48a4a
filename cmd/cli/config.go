// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"cmdeck/internal/config"
	"cmdeck/internal/logger"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configInitForce bool

// configCmd is the parent command for all configuration-related subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage cmdeck configuration",
	Long: `Provides subcommands to inspect and edit the cmdeck configuration file.
Environment variables (CMDECK_LOG_LEVEL, CMDECK_LISTEN, CMDECK_SET_SHORTCUT_KEYS,
CMDECK_SET_SHORTCUT_TEXT) override the file and are never written back.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(configPath)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}

		if _, statErr := os.Stat(configPath); errors.Is(statErr, os.ErrNotExist) {
			fmt.Println(dimColor.Sprintf("# %s does not exist, showing defaults", configPath))
		} else {
			fmt.Println(dimColor.Sprintf("# %s", configPath))
		}
		fmt.Print(string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		}
		if err := config.Save(configPath, config.Default()); err != nil {
			return err
		}
		successColor.Printf("Wrote default configuration to %s\n", identifierColor.Sprint(configPath))
		return nil
	},
}

var configSetShortcutCmd = &cobra.Command{
	Use:   "set-shortcut <command> <chord>",
	Short: "Override the shortcut chord of a UI command",
	Long: `Stores a chord for the named command in the config file. The chord is
normalized before it is saved. An empty chord removes the override:
  cmdeck config set-shortcut exit ""`,
	Example:           "  cmdeck config set-shortcut invoke1 Ctrl+Shift+1\n  cmdeck config set-shortcut exit alt+q",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: commandNameCompletion,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, chord := args[0], args[1]
		if !slices.Contains(commandNames, name) {
			return fmt.Errorf("unknown command %q (known: %s)", name, strings.Join(commandNames, ", "))
		}

		// The file only, so environment overrides are not persisted.
		c, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		if err := c.SetShortcut(name, chord); err != nil {
			return err
		}
		if err := config.Save(configPath, c); err != nil {
			return err
		}
		logger.Debug("Shortcut override saved", "command", name, "shortcut", c.Shortcuts[name])

		if saved, ok := c.Shortcuts[name]; ok {
			successColor.Printf("Shortcut for %s set to %s\n", identifierColor.Sprint(name), saved)
		} else {
			successColor.Printf("Shortcut override for %s removed.\n", identifierColor.Sprint(name))
		}
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing file")

	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetShortcutCmd)
}
