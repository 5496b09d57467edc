package httpapi

import "net/http"

// HandleHealth returns API health status and index size
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := HealthResponse{
		Status:      "healthy",
		StringCount: h.service.Count(),
		SuffixCount: h.service.Index().Len(),
	}

	h.logger.Debug().Int("string_count", resp.StringCount).Msg("health check")

	writeJSON(w, http.StatusOK, resp)
}
