// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package api

import (
	"fmt"
	"net/http"

	"cmdeck/internal/command"
	"cmdeck/internal/logger"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Command kinds reported by the API.
const (
	KindRoutedUI = "routed_ui"
	KindRouted   = "routed"
	KindDelegate = "delegate"
	KindCustom   = "custom"
)

// CommandState is a command as the API reports it. The capability flags are
// the cached values; use the query endpoint to evaluate them.
type CommandState struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Kind        string    `json:"kind"`
	Shortcut    string    `json:"shortcut,omitempty"`
	CanExecute  bool      `json:"can_execute"`
	CanRevert   bool      `json:"can_revert"`
	CanRecord   bool      `json:"can_record"`
	Attached    bool      `json:"attached"`
}

// ActionResult is the reply to execute and revert. Ran is false when the
// cached flag gated the call.
type ActionResult struct {
	Ran     bool         `json:"ran"`
	Command CommandState `json:"command"`
}

// QueryResult is the reply to the query endpoint.
type QueryResult struct {
	CanExecute bool `json:"can_execute"`
	CanRevert  bool `json:"can_revert"`
	CanRecord  bool `json:"can_record"`
}

func kindOf(c command.Command) string {
	switch c.(type) {
	case *command.RoutedUICommand:
		return KindRoutedUI
	case command.Routed:
		return KindRouted
	case *command.DelegateCommand:
		return KindDelegate
	default:
		return KindCustom
	}
}

// StateOf reports c without evaluating anything. Call it on the command loop.
func StateOf(c command.Command) CommandState {
	st := CommandState{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: c.Description(),
		Kind:        kindOf(c),
		CanExecute:  c.CanExecuteNow(),
		CanRevert:   c.CanRevertNow(),
		CanRecord:   c.CanRecordNow(),
	}
	if u, ok := c.(*command.RoutedUICommand); ok && !u.ShortcutKeys().IsZero() {
		st.Shortcut = u.ShortcutKeys().String()
	}
	if r, ok := c.(command.Routed); ok {
		st.Attached = r.Binding() != nil
	}
	return st
}

// lookup resolves ref, a command id or name. Must run on the command loop.
func (s *Server) lookup(ref string) (command.Command, error) {
	if id, err := uuid.Parse(ref); err == nil {
		if c, ok := s.manager.Command(id); ok {
			return c, nil
		}
	}
	if c, ok := s.manager.CommandByName(ref); ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, ref)
}

// listCommandsHandler serves GET /api/commands.
func (s *Server) listCommandsHandler(w http.ResponseWriter, r *http.Request) {
	var states []CommandState
	err := s.do(r.Context(), func() {
		states = make([]CommandState, 0, len(s.manager.Commands()))
		for _, c := range s.manager.Commands() {
			states = append(states, StateOf(c))
		}
	})
	if err != nil {
		writeDispatchError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, states)
}

// getCommandHandler serves GET /api/commands/{ref}.
func (s *Server) getCommandHandler(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]

	var state CommandState
	var lookupErr error
	err := s.do(r.Context(), func() {
		var c command.Command
		if c, lookupErr = s.lookup(ref); lookupErr == nil {
			state = StateOf(c)
		}
	})
	if err != nil {
		writeDispatchError(w, err)
		return
	}
	if lookupErr != nil {
		writeError(w, http.StatusNotFound, lookupErr)
		return
	}
	writeJSONResponse(w, http.StatusOK, state)
}

// executeHandler serves POST /api/commands/{ref}/execute.
func (s *Server) executeHandler(w http.ResponseWriter, r *http.Request) {
	s.runAction(w, r, "execute", command.Command.CanExecuteNow, command.Command.Execute)
}

// revertHandler serves POST /api/commands/{ref}/revert.
func (s *Server) revertHandler(w http.ResponseWriter, r *http.Request) {
	s.runAction(w, r, "revert", command.Command.CanRevertNow, command.Command.Revert)
}

// runAction calls action on the referenced command. The command gates the
// call itself; allowed only reads the same cached flag so the reply can say
// whether it ran.
func (s *Server) runAction(w http.ResponseWriter, r *http.Request, verb string,
	allowed func(command.Command) bool, action func(command.Command, any)) {
	ref := mux.Vars(r)["ref"]

	parameter, err := decodeParameter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var result ActionResult
	var lookupErr error
	err = s.do(r.Context(), func() {
		var c command.Command
		if c, lookupErr = s.lookup(ref); lookupErr != nil {
			return
		}
		result.Ran = allowed(c)
		action(c, parameter)
		result.Command = StateOf(c)
	})
	if err != nil {
		writeDispatchError(w, err)
		return
	}
	if lookupErr != nil {
		writeError(w, http.StatusNotFound, lookupErr)
		return
	}

	logger.Debug("API command call", "verb", verb, "command", ref, "ran", result.Ran)
	writeJSONResponse(w, http.StatusOK, result)
}

// queryHandler serves POST /api/commands/{ref}/query. Evaluating updates
// the command's cached flags and fires its change events like any other
// query.
func (s *Server) queryHandler(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]

	parameter, err := decodeParameter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var result QueryResult
	var lookupErr error
	err = s.do(r.Context(), func() {
		var c command.Command
		if c, lookupErr = s.lookup(ref); lookupErr != nil {
			return
		}
		result = QueryResult{
			CanExecute: c.CanExecute(parameter),
			CanRevert:  c.CanRevert(parameter),
			CanRecord:  c.CanRecord(parameter),
		}
	})
	if err != nil {
		writeDispatchError(w, err)
		return
	}
	if lookupErr != nil {
		writeError(w, http.StatusNotFound, lookupErr)
		return
	}
	writeJSONResponse(w, http.StatusOK, result)
}
