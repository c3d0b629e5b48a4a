// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"strings"

	"cmdeck/internal/api"
	"cmdeck/internal/app"
	"cmdeck/internal/command"
	"cmdeck/internal/config"

	"github.com/spf13/cobra"
)

// headless is the demo command set without a UI: plain sources stand in for
// the controls so routed commands still get requeried.
type headless struct {
	manager *command.Manager
	app     *app.App
	sources []*command.SourceBase
}

func newHeadless(c config.Config, opts ...app.Option) (*headless, error) {
	m := command.NewManager()
	a, err := app.New(m, c, opts...)
	if err != nil {
		return nil, fmt.Errorf("create commands: %w", err)
	}
	h := &headless{manager: m, app: a, sources: a.NewSources()}
	m.InvalidateRequerySuggested()
	return h, nil
}

// states reports every registered command. Call it on the goroutine that
// owns the manager.
func (h *headless) states() []api.CommandState {
	commands := h.manager.Commands()
	states := make([]api.CommandState, 0, len(commands))
	for _, c := range commands {
		states = append(states, api.StateOf(c))
	}
	return states
}

func (h *headless) Dispose() {
	for _, s := range h.sources {
		s.Dispose()
	}
	h.app.Dispose()
}

// printCommandTable writes states as an aligned table. Colored cells are
// padded before coloring so the escape codes do not skew the columns.
func printCommandTable(states []api.CommandState) {
	fmt.Printf("%-10s %-10s %-10s %-8s %-8s %-8s %s\n", "NAME", "KIND", "SHORTCUT", "EXECUTE", "REVERT", "RECORD", "DESCRIPTION")
	fmt.Printf("%-10s %-10s %-10s %-8s %-8s %-8s %s\n",
		strings.Repeat("-", 10), strings.Repeat("-", 10), strings.Repeat("-", 10),
		strings.Repeat("-", 8), strings.Repeat("-", 8), strings.Repeat("-", 8), strings.Repeat("-", 11))
	for _, s := range states {
		name := s.Name
		if name == "" {
			name = s.ID.String()[:8]
		}
		fmt.Printf("%s %-10s %-10s %s %s %s %s\n",
			identifierColor.Sprintf("%-10s", name), s.Kind, s.Shortcut,
			flagCell(s.CanExecute), flagCell(s.CanRevert), flagCell(s.CanRecord),
			dimColor.Sprint(s.Description))
	}
}

func flagCell(v bool) string {
	if v {
		return enabledColor.Sprintf("%-8s", "yes")
	}
	return disabledColor.Sprintf("%-8s", "no")
}

// commandNames lists the demo commands for completion and validation.
var commandNames = []string{
	app.NameInvoke1, app.NameToggle1, app.NameInvoke2,
	app.NameHello, app.NameUndo, app.NameExit,
}

// commandNameCompletion completes the first argument with a command name.
func commandNameCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var suggestions []string
	for _, name := range commandNames {
		if strings.HasPrefix(name, toComplete) {
			suggestions = append(suggestions, name)
		}
	}
	return suggestions, cobra.ShellCompDirectiveNoFileComp
}
