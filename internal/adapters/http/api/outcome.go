package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	repository "github.com/quaylabs/frisk/internal/adapters/repository"
)

// OutcomeHandler handles reported search results.
type OutcomeHandler struct {
	deps Dependencies
}

// NewOutcomeHandler creates a new outcome handler.
func NewOutcomeHandler(deps Dependencies) *OutcomeHandler {
	return &OutcomeHandler{deps: deps}
}

type outcomeRequest struct {
	ObservationID string `json:"observation_id"`
	Outcome       bool   `json:"outcome"`
}

// HandleSearchResult handles POST /search_result/ requests, attaching a
// ground-truth outcome to a previously recorded prediction. Reporting the
// same observation again overwrites the stored outcome.
func (h *OutcomeHandler) HandleSearchResult(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req outcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "could not decode request body")
		return
	}

	rec, err := h.deps.Resolve(r.Context(), req.ObservationID, req.Outcome)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound,
				fmt.Sprintf("Observation ID: %q does not exist", req.ObservationID))
		case errors.Is(err, repository.ErrUnavailable):
			writeError(w, http.StatusServiceUnavailable, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, outcomeResponse{
		ObservationID:    rec.ObservationID,
		Outcome:          req.Outcome,
		PredictedOutcome: rec.Decision,
	})
}
