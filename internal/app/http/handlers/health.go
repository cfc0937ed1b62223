package handlers

import (
	"context"
	"net/http"
	"time"
)

// Health answers ok while the sequence store is reachable, since no quote can
// be issued without it.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := h.Sequence.Current(ctx); err != nil {
		h.Log.WithError(err).Warn("health: sequence store unreachable")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("sequence store unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
