package governance

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/de-tools/cost-atlas/pkg/models/api"
	"github.com/de-tools/cost-atlas/pkg/services/anomaly"
	"github.com/de-tools/cost-atlas/pkg/services/optimization"
	"github.com/de-tools/cost-atlas/pkg/store"
)

func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, err error) {
	respondJSON(w, r, status, api.Error{Error: err.Error()})
}

// respondServiceError maps a service failure to its status code: missing
// records are 404, refused transitions 409, a status outside the lifecycle
// enum 400, anything else 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, r, http.StatusNotFound, err)
	case errors.Is(err, optimization.ErrIllegalTransition),
		errors.Is(err, anomaly.ErrAlreadyResolved),
		errors.Is(err, anomaly.ErrAlertAlreadySent):
		respondError(w, r, http.StatusConflict, err)
	case errors.Is(err, optimization.ErrUnknownStatus):
		respondError(w, r, http.StatusBadRequest, err)
	default:
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("request failed")
		respondError(w, r, http.StatusInternalServerError, err)
	}
}

// decodeBody parses the request body into the typed DTO. Type mismatches
// (a string where a number belongs, malformed JSON) fail here, before any
// record is built.
func decodeBody[T any](r *http.Request) (T, error) {
	var body T
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return body, fmt.Errorf("decode request body: %w", err)
	}
	return body, nil
}
