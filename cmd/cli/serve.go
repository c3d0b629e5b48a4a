// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"cmdeck/internal/api"
	"cmdeck/internal/app"
	"cmdeck/internal/dispatch"
	"cmdeck/internal/web"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// serveQueue is how many API calls may wait for the command loop.
const serveQueue = 16

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the demo commands over HTTP",
	Long: `Starts an HTTP server that exposes the demo commands through the JSON API
and a status page. All calls run on one command loop. The exit command stops
the server.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		listen := serveListen
		if listen == "" {
			listen = c.Listen
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		h, err := newHeadless(c,
			app.WithNotifier(func(msg string) { statusColor.Println(msg) }),
			app.WithQuit(stop),
		)
		if err != nil {
			return err
		}
		defer h.Dispose()

		loop := dispatch.NewLoop(serveQueue)
		srv, err := api.NewServer(h.manager, loop)
		if err != nil {
			return err
		}

		ln, err := net.Listen("tcp", listen)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", listen, err)
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return loop.Run(gctx) })
		g.Go(func() error { return api.Serve(gctx, ln, srv.Handler(web.GetFileSystem())) })

		successColor.Printf("Serving cmdeck on %s\n", identifierColor.Sprintf("http://%s", ln.Addr()))
		fmt.Println(dimColor.Sprint("Press Ctrl+C to stop."))

		err = g.Wait()
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		if err == nil {
			statusColor.Println("Server stopped.")
		}
		return err
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "address to listen on (default from config)")
}
