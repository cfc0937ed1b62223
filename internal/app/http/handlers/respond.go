package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"coalo/go_backend/internal/domain/quote"
)

const maxBodyBytes = 64 << 10

type errorBody struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func writeValidation(w http.ResponseWriter, ve *quote.ValidationError) {
	writeJSON(w, http.StatusUnprocessableEntity, errorBody{
		Error:   "validation failed",
		Details: ve.Details(),
	})
}

// decodeJSON reads exactly one JSON object from a bounded body; trailing
// data after it is rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// writeDomainError maps validation errors to 422 and everything else to a
// generic 500; details of internal failures stay in the log.
func writeDomainError(w http.ResponseWriter, err error, msg string) {
	var ve *quote.ValidationError
	if errors.As(err, &ve) {
		writeValidation(w, ve)
		return
	}
	writeError(w, http.StatusInternalServerError, msg)
}
