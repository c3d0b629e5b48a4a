// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package api

import (
	"net/http"

	"cmdeck/internal/command"
	"cmdeck/internal/logger"
)

// SourceState is a registered command source, in registration order.
type SourceState struct {
	Index     int    `json:"index"`
	Label     string `json:"label,omitempty"`
	Command   string `json:"command,omitempty"`
	CommandID string `json:"command_id,omitempty"`
	Parameter any    `json:"parameter"`
}

// labeled is implemented by UI controls.
type labeled interface {
	Label() string
}

func sourceStateOf(i int, src command.Source) SourceState {
	st := SourceState{Index: i, Parameter: src.CommandParameter()}
	if l, ok := src.(labeled); ok {
		st.Label = l.Label()
	}
	if c := src.Command(); c != nil {
		st.Command = c.Name()
		st.CommandID = c.ID().String()
	}
	return st
}

// listSourcesHandler serves GET /api/sources.
func (s *Server) listSourcesHandler(w http.ResponseWriter, r *http.Request) {
	var states []SourceState
	err := s.do(r.Context(), func() {
		sources := s.manager.Sources()
		states = make([]SourceState, 0, len(sources))
		for i, src := range sources {
			states = append(states, sourceStateOf(i, src))
		}
	})
	if err != nil {
		writeDispatchError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, states)
}

// requeryHandler serves POST /api/requery and replies with the refreshed
// command states.
func (s *Server) requeryHandler(w http.ResponseWriter, r *http.Request) {
	var states []CommandState
	err := s.do(r.Context(), func() {
		s.manager.InvalidateRequerySuggested()
		for _, c := range s.manager.Commands() {
			states = append(states, StateOf(c))
		}
	})
	if err != nil {
		writeDispatchError(w, err)
		return
	}
	logger.Debug("Requery requested over the API", "commands", len(states))
	if states == nil {
		states = []CommandState{}
	}
	writeJSONResponse(w, http.StatusOK, states)
}
