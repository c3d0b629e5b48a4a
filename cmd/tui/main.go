// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	"cmdeck/internal/api"
	"cmdeck/internal/command"
	"cmdeck/internal/config"
	"cmdeck/internal/logger"
	"cmdeck/internal/ui"
	"cmdeck/internal/web"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

// RunTUI loads the default config and runs the TUI without the API server.
func RunTUI() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if err := Run(cfg, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
}

// Run runs the Bubble Tea TUI until it quits. When listen is set the HTTP API
// is served next to it, dispatching onto the program's event loop.
func Run(cfg config.Config, listen string) error {
	logger.InitLogger(true, cfg.Level(), cfg.LogToFile)
	defer logger.Close()

	m := command.NewManager()
	model, err := ui.NewModel(m, cfg)
	if err != nil {
		return fmt.Errorf("build UI: %w", err)
	}
	defer model.Dispose()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())
	d := ui.NewProgramDispatcher(p)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var g errgroup.Group

	if listen != "" {
		srv, err := api.NewServer(m, d)
		if err != nil {
			return err
		}
		ln, err := net.Listen("tcp", listen)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", listen, err)
		}
		g.Go(func() error {
			err := api.Serve(ctx, ln, srv.Handler(web.GetFileSystem()))
			if err != nil {
				p.Send(ui.StatusError(err))
			}
			return err
		})
		go p.Send(ui.Status(fmt.Sprintf("API listening on http://%s", ln.Addr())))
	}

	_, runErr := p.Run()

	// Handlers still waiting on the program get ErrClosed.
	d.Close()
	cancel()
	return errors.Join(runErr, g.Wait())
}
