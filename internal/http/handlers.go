package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/viniciusth/suffixindex/internal/search"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	service *search.Service
	logger  zerolog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(service *search.Service, logger zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// NewRouter mounts the API routes. Query routes share limiter; a nil limiter
// disables rate limiting.
func NewRouter(h *Handler, limiter *rate.Limiter) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	r.Get("/health", h.HandleHealth)

	r.Group(func(r chi.Router) {
		r.Use(RateLimit(limiter, h.logger))
		r.Get("/search", h.HandleSearch)
		r.Get("/match", h.HandleMatch)
		r.Get("/rank", h.HandleRank)
		r.Get("/select/{rank}", h.HandleSelect)
	})

	return r
}

// Helper functions used across all handlers

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// parseLimit reads the optional limit parameter. Zero means the service default.
func parseLimit(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, false
	}
	return limit, true
}
