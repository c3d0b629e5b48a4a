// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package api exposes a command manager over HTTP. Handlers run on server
// goroutines, so every call into the manager is handed to a dispatcher that
// owns the command loop.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"cmdeck/internal/command"
	"cmdeck/internal/dispatch"
	"cmdeck/internal/logger"

	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

// ErrUnknownCommand is returned when a command reference resolves to nothing.
var ErrUnknownCommand = errors.New("unknown command")

// Server serves the command API for one manager.
type Server struct {
	manager    *command.Manager
	dispatcher dispatch.Dispatcher
}

// NewServer returns a server for m. Manager calls go through d; a nil d runs
// them inline on the handler goroutine, which is only safe in tests.
func NewServer(m *command.Manager, d dispatch.Dispatcher) (*Server, error) {
	if m == nil {
		return nil, command.ErrNilManager
	}
	if d == nil {
		d = dispatch.Inline{}
	}
	return &Server{manager: m, dispatcher: d}, nil
}

// RegisterRoutes adds the API routes to router.
func (s *Server) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/commands", s.listCommandsHandler).Methods("GET")
	router.HandleFunc("/api/commands/{ref}", s.getCommandHandler).Methods("GET")
	router.HandleFunc("/api/commands/{ref}/execute", s.executeHandler).Methods("POST")
	router.HandleFunc("/api/commands/{ref}/revert", s.revertHandler).Methods("POST")
	router.HandleFunc("/api/commands/{ref}/query", s.queryHandler).Methods("POST")
	router.HandleFunc("/api/sources", s.listSourcesHandler).Methods("GET")
	router.HandleFunc("/api/requery", s.requeryHandler).Methods("POST")
}

// Handler returns a router with the API routes and, when static is non-nil,
// the status page under "/". Static files are registered after the API so
// they never shadow it.
func (s *Server) Handler(static http.FileSystem) http.Handler {
	router := mux.NewRouter()
	s.RegisterRoutes(router)
	if static != nil {
		router.PathPrefix("/").Handler(http.FileServer(static))
	}
	return router
}

// do runs fn on the command loop.
func (s *Server) do(ctx context.Context, fn func()) error {
	return s.dispatcher.Do(ctx, fn)
}

// ParameterRequest is the body of execute, revert and query.
type ParameterRequest struct {
	Parameter any `json:"parameter"`
}

// decodeParameter reads an optional ParameterRequest. An empty body means a
// nil parameter. Numbers are kept as json.Number so they print the way they
// were sent.
func decodeParameter(r *http.Request) (any, error) {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var req ParameterRequest
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	return req.Parameter, nil
}

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSONResponse writes data as JSON with CORS headers.
func writeJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode API response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSONResponse(w, status, errorResponse{Error: err.Error()})
}

// writeDispatchError maps a dispatcher failure onto a status code.
func writeDispatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dispatch.ErrPanic):
		logger.Error("Command handler panicked", "error", err)
		writeError(w, http.StatusInternalServerError, err)
	case errors.Is(err, dispatch.ErrClosed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

// Serve serves h on ln until ctx is done, then shuts the server down,
// giving in-flight requests a few seconds to finish.
func Serve(ctx context.Context, ln net.Listener, h http.Handler) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	logger.Info("API server listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", ln.Addr(), err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown API server: %w", err)
	}
	logger.Info("API server stopped")
	return nil
}
