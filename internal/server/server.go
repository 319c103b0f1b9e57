// Package server exposes the computed statistics over JSON HTTP. It is thin
// plumbing: parameter parsing, error mapping and serialization; all
// computation lives in internal/service.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"crosswords-analytics/internal/service"
)

const APIVersion = "0.1.0"

type Handler struct {
	svc    *service.StatisticsService
	logger zerolog.Logger
}

func NewHandler(svc *service.StatisticsService, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Routes mounts the statistics API. The prefix mirrors the platform's public
// contract.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Root)
	r.Get("/health", h.Health)

	r.Route("/api/v1/statistics", func(r chi.Router) {
		r.Get("/grids", h.Grids)
		r.Get("/global", h.GlobalStatistics)
		r.Route("/grid/{gridID}", func(r chi.Router) {
			r.Get("/", h.GridStatistics)
			r.Get("/leaderboard", h.Leaderboard)
			r.Get("/distribution", h.ScoreDistribution)
			r.Get("/completion-time-distribution", h.CompletionTimeDistribution)
			r.Get("/temporal", h.TemporalStatistics)
		})
	})

	return r
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{
		"message": "Crosswords Analytics API",
		"version": APIVersion,
		"health":  "/health",
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "crosswords-analytics",
		"version": APIVersion,
	})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, detail string) {
	h.respondJSON(w, status, map[string]string{"detail": detail})
}
