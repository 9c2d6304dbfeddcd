// Package congress exposes the disclosure ranking over HTTP.
package congress

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/chrishlee1228/fountain-ai-website/pkg/core/cache"
	core "github.com/chrishlee1228/fountain-ai-website/pkg/core/congress"
	"github.com/chrishlee1228/fountain-ai-website/pkg/models"
)

// Handler serves the congress trade ranking from its snapshot cache.
type Handler struct {
	store *cache.Store[models.RankingResult]
	topN  int
}

func NewHandler(store *cache.Store[models.RankingResult], topN int) *Handler {
	return &Handler{store: store, topN: topN}
}

// Refresh loads the trade tables and recomputes the ranking. Shared by the
// request path, the scheduler, and the administrative trigger.
func (h *Handler) Refresh(ctx context.Context) (models.RankingResult, error) {
	records, err := core.LoadTrades(ctx)
	if err != nil {
		return models.RankingResult{}, err
	}
	return core.ComputeTopBottom(records, h.topN), nil
}

// HandleTopBottom is GET /api/congress/top-bottom.
//
// This is the one endpoint that can surface an upstream failure, and only
// before the first successful refresh: once any snapshot exists, stale data
// is always served instead of an error.
func (h *Handler) HandleTopBottom(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, err := h.store.GetOrRefresh(r.Context(), h.Refresh)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "disclosure source unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleForceRefresh is POST /tasks/refresh: recompute now, TTL ignored.
func (h *Handler) HandleForceRefresh(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if _, err := h.store.ForceRefresh(r.Context(), h.Refresh); err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{
			"ok":    false,
			"error": err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":           true,
		"refreshed_at": time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
