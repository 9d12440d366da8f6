package handlers

import "net/http"

// Health reports whether the store is reachable, plus the image upload
// circuit state when uploads go through a breaker
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  ErrorResponse
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "Database unavailable: "+err.Error())
		return
	}
	body := map[string]string{"status": "ok"}
	if sr, ok := h.images.(stateReporter); ok {
		body["images"] = sr.State()
	}
	writeJSON(w, http.StatusOK, body)
}
