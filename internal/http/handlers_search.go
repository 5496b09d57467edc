package httpapi

import "net/http"

// HandleSearch returns the strings containing q with every match position,
// grouped per string
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit, ok := parseLimit(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "limit must be a non-negative integer", "INVALID_LIMIT")
		return
	}

	res := h.service.Search(query, limit)

	results := make([]SearchItem, len(res.Items))
	for i, item := range res.Items {
		results[i] = SearchItem{
			ID:        item.ID,
			Text:      item.Text,
			Positions: item.Positions,
		}
	}

	h.logger.Info().
		Str("query", query).
		Int("results", len(results)).
		Int("total", res.Total).
		Msg("search completed")

	writeJSON(w, http.StatusOK, SearchResponse{
		Results: results,
		Count:   len(results),
		Total:   res.Total,
		Query:   query,
	})
}

// HandleMatch returns up to limit distinct strings containing q
func (h *Handler) HandleMatch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit, ok := parseLimit(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "limit must be a non-negative integer", "INVALID_LIMIT")
		return
	}

	matches := h.service.Match(query, limit)
	if matches == nil {
		matches = []string{}
	}

	h.logger.Info().
		Str("query", query).
		Int("matches", len(matches)).
		Msg("match completed")

	writeJSON(w, http.StatusOK, MatchResponse{
		Matches: matches,
		Count:   len(matches),
		Query:   query,
	})
}
