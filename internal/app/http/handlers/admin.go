package handlers

import "net/http"

// CurrentSequence reports the last issued quote sequence number.
func (h *Handlers) CurrentSequence(w http.ResponseWriter, r *http.Request) {
	n, err := h.Sequence.Current(r.Context())
	if err != nil {
		h.Log.WithError(err).Error("admin: read sequence")
		writeError(w, http.StatusInternalServerError, "sequence unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"current": n})
}
