// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"os"

	"cmdeck/cmd/tui"
	"cmdeck/internal/config"
	"cmdeck/internal/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	statusColor     = color.New(color.FgCyan)
	errorColor      = color.New(color.FgRed)
	successColor    = color.New(color.FgGreen)
	enabledColor    = color.New(color.FgGreen)
	disabledColor   = color.New(color.FgRed)
	identifierColor = color.New(color.FgBlue)
	dimColor        = color.New(color.Faint)
)

var (
	configFlag string
	tuiListen  string

	// configPath is the resolved --config value, or the default path.
	configPath string
	// cfg is the loaded config. loadErr is set instead when the file could
	// not be read, so the config subcommands can still repair it.
	cfg     config.Config
	loadErr error
)

var rootCmd = &cobra.Command{
	Use:   "cmdeck",
	Short: "Command dispatch playground",
	Long: `cmdeck drives a small set of routed, UI and delegate commands.

Without arguments it starts the terminal UI. The subcommands run the same
commands headless, serve them over HTTP, or talk to a running server.
Configuration is read from ~/.config/cmdeck/config.yaml and CMDECK_* variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configFlag
		if path == "" {
			var err error
			if path, err = config.DefaultConfigPath(); err != nil {
				return err
			}
		}
		resolved, err := config.ResolvePath(path)
		if err != nil {
			return err
		}
		configPath = resolved

		cfg, loadErr = config.Load(configPath)
		if loadErr != nil {
			cfg = config.Default()
		}
		logger.InitLogger(false, cfg.Level(), cfg.LogToFile)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Close()
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the terminal UI",
	Long: `Starts the terminal UI. With --listen the HTTP API is served as well and
API calls run on the UI's event loop.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		return tui.Run(c, tuiListen)
	},
}

// currentConfig returns the loaded config or the error that prevented
// loading it.
func currentConfig() (config.Config, error) {
	if loadErr != nil {
		return config.Config{}, fmt.Errorf("error loading configuration: %w", loadErr)
	}
	return cfg, nil
}

// RunCLI executes the root command and exits non-zero on failure.
func RunCLI() {
	if err := rootCmd.Execute(); err != nil {
		logger.Debug("Command failed", "error", err)
		errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default is $XDG_CONFIG_HOME/cmdeck/config.yaml)")
	tuiCmd.Flags().StringVar(&tuiListen, "listen", "", "also serve the HTTP API on this address")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(commandsCmd)
	rootCmd.AddCommand(shortcutCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(remoteCmd)
}
