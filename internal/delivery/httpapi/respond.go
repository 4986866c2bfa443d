package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wund3run/arena-escrow-service/internal/domain"
)

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// writeError maps the domain error taxonomy onto HTTP status codes. Every
// failure reaches the caller typed; nothing is swallowed into a bare 500.
func writeError(w http.ResponseWriter, err error) {
	kind := "persistence"
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		kind, status = "validation", http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidTransition):
		kind, status = "invalid_transition", http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		kind, status = "unauthorized", http.StatusForbidden
	case errors.Is(err, domain.ErrDuplicateApproval):
		kind, status = "duplicate_approval", http.StatusConflict
	case errors.Is(err, domain.ErrAlreadyResolved):
		kind, status = "already_resolved", http.StatusConflict
	case errors.Is(err, domain.ErrIdempotencyConflict):
		kind, status = "idempotency_conflict", http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		kind, status = "not_found", http.StatusNotFound
	}
	writeJSON(w, status, errorBody{Error: err.Error(), Kind: kind})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body", Kind: "validation"})
		return false
	}
	return true
}
