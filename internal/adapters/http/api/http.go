// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	repository "github.com/quaylabs/frisk/internal/adapters/repository"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Decide validates, classifies and records a raw observation payload,
	// returning the boolean decision.
	Decide(ctx context.Context, raw []byte) (bool, error)

	// Resolve attaches a reported outcome to a recorded prediction and
	// returns the updated record.
	Resolve(ctx context.Context, id string, outcome bool) (repository.Record, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	decideHandler  *DecideHandler
	outcomeHandler *OutcomeHandler
}

// NewServer creates a new API server with all handlers. maxBodyBytes caps
// accepted request bodies.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxBodyBytes int64) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		decideHandler:  NewDecideHandler(deps, maxBodyBytes),
		outcomeHandler: NewOutcomeHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/should_search/", MetricsMiddleware(s.decideHandler.HandleShouldSearch, "should_search"))
	mux.HandleFunc("/search_result/", MetricsMiddleware(s.outcomeHandler.HandleSearchResult, "search_result"))
}

// decisionResponse mirrors the wire shape of POST /should_search/.
type decisionResponse struct {
	Outcome bool `json:"outcome"`
}

// outcomeResponse mirrors the wire shape of POST /search_result/.
type outcomeResponse struct {
	ObservationID    string `json:"observation_id"`
	Outcome          bool   `json:"outcome"`
	PredictedOutcome bool   `json:"predicted_outcome"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}
