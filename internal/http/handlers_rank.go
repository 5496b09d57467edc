package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/viniciusth/suffixindex"
)

// HandleRank returns the number of suffixes strictly less than q
func (h *Handler) HandleRank(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, RankResponse{
		Query: query,
		Rank:  h.service.Rank(query),
	})
}

// HandleSelect returns the suffix at the given rank
func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	rank, err := strconv.Atoi(chi.URLParam(r, "rank"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "rank must be an integer", "INVALID_RANK")
		return
	}

	suffix, err := h.service.Select(rank)
	if errors.Is(err, suffixindex.ErrOutOfRange) {
		writeError(w, http.StatusNotFound, err.Error(), "RANK_OUT_OF_RANGE")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Int("rank", rank).Msg("select failed")
		writeError(w, http.StatusInternalServerError, "select failed", "INTERNAL")
		return
	}

	writeJSON(w, http.StatusOK, SelectResponse{
		Rank:   rank,
		Suffix: suffix,
	})
}
