// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cmdeck/internal/api"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

const remoteTimeout = 10 * time.Second

var remoteServer string

// remoteClient talks to a running "cmdeck serve" or "cmdeck tui --listen".
type remoteClient struct {
	base string
	http *http.Client
}

func newRemoteClient(server string) (*remoteClient, error) {
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}
	u, err := url.Parse(server)
	if err != nil {
		return nil, fmt.Errorf("invalid server %q: %w", server, err)
	}
	return &remoteClient{
		base: strings.TrimSuffix(u.String(), "/"),
		http: &http.Client{Timeout: remoteTimeout},
	}, nil
}

// call sends body as JSON and decodes the reply into out. Non-2xx replies
// become errors carrying the server's message.
func (c *remoteClient) call(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s", resp.Status, apiErr.Error)
		}
		return fmt.Errorf("%s %s: %s", method, path, resp.Status)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *remoteClient) commands(ctx context.Context) ([]api.CommandState, error) {
	var states []api.CommandState
	err := c.call(ctx, http.MethodGet, "/api/commands", nil, &states)
	return states, err
}

func (c *remoteClient) requery(ctx context.Context) ([]api.CommandState, error) {
	var states []api.CommandState
	err := c.call(ctx, http.MethodPost, "/api/requery", nil, &states)
	return states, err
}

// action runs verb ("execute" or "revert") on the referenced command.
func (c *remoteClient) action(ctx context.Context, verb, ref string, parameter any) (api.ActionResult, error) {
	var res api.ActionResult
	path := fmt.Sprintf("/api/commands/%s/%s", url.PathEscape(ref), verb)
	err := c.call(ctx, http.MethodPost, path, api.ParameterRequest{Parameter: parameter}, &res)
	return res, err
}

// parseParameter reads a command line parameter as JSON when it is valid
// JSON and as a plain string otherwise, so 1234 is a number and hello a
// string.
func parseParameter(args []string) any {
	if len(args) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(args[0]), &v); err == nil {
		return v
	}
	return args[0]
}

// withSpinner runs fn with a spinner on the terminal.
func withSpinner(suffix string, fn func() error) error {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Color("cyan")
	s.Suffix = " " + suffix
	s.Start()
	err := fn()
	s.Stop()
	return err
}

// client builds a remote client for --server, falling back to the
// configured listen address.
func client() (*remoteClient, error) {
	server := remoteServer
	if server == "" {
		server = cfg.Listen
	}
	return newRemoteClient(server)
}

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Control a running cmdeck server",
	Long: `Talks to the HTTP API of "cmdeck serve" or "cmdeck tui --listen".
The server defaults to the configured listen address.`,
}

var remoteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the server's commands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client()
		if err != nil {
			return err
		}
		var states []api.CommandState
		err = withSpinner("Fetching commands...", func() error {
			states, err = c.commands(cmd.Context())
			return err
		})
		if err != nil {
			return err
		}
		printCommandTable(states)
		return nil
	},
}

var remoteRequeryCmd = &cobra.Command{
	Use:   "requery",
	Short: "Ask the server to requery every command",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client()
		if err != nil {
			return err
		}
		var states []api.CommandState
		err = withSpinner("Requerying...", func() error {
			states, err = c.requery(cmd.Context())
			return err
		})
		if err != nil {
			return err
		}
		printCommandTable(states)
		return nil
	},
}

// newRemoteActionCmd builds a subcommand named use that calls the API's
// verb endpoint.
func newRemoteActionCmd(use, verb, short string) *cobra.Command {
	return &cobra.Command{
		Use:               use + " <command> [parameter]",
		Short:             short,
		Example:           fmt.Sprintf("  cmdeck remote %s invoke1 1234\n  cmdeck remote %s undo", use, use),
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: commandNameCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			var res api.ActionResult
			err = withSpinner(fmt.Sprintf("Sending %s to %s...", verb, args[0]), func() error {
				res, err = c.action(cmd.Context(), verb, args[0], parseParameter(args[1:]))
				return err
			})
			if err != nil {
				return err
			}
			if !res.Ran {
				return fmt.Errorf("%s is disabled for %s", verb, res.Command.Name)
			}
			successColor.Printf("%s %s: done.\n", strings.ToUpper(verb[:1])+verb[1:], identifierColor.Sprint(res.Command.Name))
			return nil
		},
	}
}

func init() {
	remoteCmd.PersistentFlags().StringVar(&remoteServer, "server", "", "server address or URL (default from config)")

	remoteCmd.AddCommand(remoteListCmd)
	remoteCmd.AddCommand(remoteRequeryCmd)
	remoteCmd.AddCommand(newRemoteActionCmd("exec", "execute", "Execute a command on the server"))
	remoteCmd.AddCommand(newRemoteActionCmd("revert", "revert", "Revert a command on the server"))
}
