package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"crosswords-analytics/internal/domain"
)

func (h *Handler) Grids(w http.ResponseWriter, r *http.Request) {
	grids, err := h.svc.Grids(r.Context())
	if err != nil {
		h.serveError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, grids)
}

func (h *Handler) GridStatistics(w http.ResponseWriter, r *http.Request) {
	gridID, ok := h.gridID(w, r)
	if !ok {
		return
	}
	stats, err := h.svc.GridStatistics(r.Context(), gridID)
	if err != nil {
		h.serveError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, stats)
}

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	gridID, ok := h.gridID(w, r)
	if !ok {
		return
	}
	limit, ok := h.queryInt(w, r, "limit", 0)
	if !ok {
		return
	}
	entries, err := h.svc.Leaderboard(r.Context(), gridID, limit)
	if err != nil {
		h.serveError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, entries)
}

func (h *Handler) ScoreDistribution(w http.ResponseWriter, r *http.Request) {
	gridID, ok := h.gridID(w, r)
	if !ok {
		return
	}
	bins, ok := h.queryInt(w, r, "bins", 0)
	if !ok {
		return
	}
	dist, err := h.svc.ScoreDistribution(r.Context(), gridID, bins)
	if err != nil {
		h.serveError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, dist)
}

func (h *Handler) CompletionTimeDistribution(w http.ResponseWriter, r *http.Request) {
	gridID, ok := h.gridID(w, r)
	if !ok {
		return
	}
	bins, ok := h.queryInt(w, r, "bins", 0)
	if !ok {
		return
	}
	dist, err := h.svc.CompletionTimeDistribution(r.Context(), gridID, bins)
	if err != nil {
		h.serveError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, dist)
}

func (h *Handler) TemporalStatistics(w http.ResponseWriter, r *http.Request) {
	gridID, ok := h.gridID(w, r)
	if !ok {
		return
	}
	stats, err := h.svc.TemporalStatistics(r.Context(), gridID)
	if err != nil {
		h.serveError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, stats)
}

func (h *Handler) GlobalStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.GlobalStatistics(r.Context())
	if err != nil {
		h.serveError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, stats)
}

// gridID parses the path parameter; a malformed id is a client error, not a
// not-found.
func (h *Handler) gridID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "gridID")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		h.respondError(w, http.StatusBadRequest, "invalid grid id")
		return 0, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter; fallback is returned
// when the parameter is absent.
func (h *Handler) queryInt(w http.ResponseWriter, r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return v, true
}

// serveError maps the error taxonomy onto status codes: a missing grid is a
// recoverable 404, everything else is a server-side failure.
func (h *Handler) serveError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrGridNotFound) {
		h.respondError(w, http.StatusNotFound, "grid not found")
		return
	}
	h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	h.respondError(w, http.StatusInternalServerError, "internal error")
}
