package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	repository "github.com/quaylabs/frisk/internal/adapters/repository"
	"github.com/quaylabs/frisk/internal/domain/features"
	"github.com/quaylabs/frisk/internal/domain/observation"
)

// DecideHandler handles observation submissions.
type DecideHandler struct {
	deps         Dependencies
	maxBodyBytes int64
}

// NewDecideHandler creates a new decide handler.
func NewDecideHandler(deps Dependencies, maxBodyBytes int64) *DecideHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = 1 << 20
	}
	return &DecideHandler{deps: deps, maxBodyBytes: maxBodyBytes}
}

// HandleShouldSearch handles POST /should_search/ requests: the full
// record-and-decide operation. Every failure returns a structured
// {"error": ...} body; none is fatal to the process.
func (h *DecideHandler) HandleShouldSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	decision, err := h.deps.Decide(r.Context(), raw)
	if err != nil {
		h.writeDecideError(w, raw, err)
		return
	}

	writeJSON(w, http.StatusOK, decisionResponse{Outcome: decision})
}

// writeDecideError maps a record-and-decide failure to a status code and
// the message exposed to the caller.
func (h *DecideHandler) writeDecideError(w http.ResponseWriter, raw []byte, err error) {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var parseErr *features.ParseError

	switch {
	case observation.IsValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &parseErr):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		writeError(w, http.StatusBadRequest, "could not decode request body")
	case errors.Is(err, repository.ErrDuplicateID):
		writeError(w, http.StatusConflict,
			fmt.Sprintf("ERROR: Observation ID: '%s' already exists", observationIDFrom(raw)))
	case errors.Is(err, repository.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// observationIDFrom pulls the id out of an already-validated payload for
// error messages.
func observationIDFrom(raw []byte) string {
	var probe struct {
		ObservationID string `json:"observation_id"`
	}
	_ = json.Unmarshal(raw, &probe)
	return probe.ObservationID
}
