// Package news exposes headline aggregation over HTTP. Like the filings
// endpoints, these never surface upstream failures.
package news

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/chrishlee1228/fountain-ai-website/pkg/core/cache"
	core "github.com/chrishlee1228/fountain-ai-website/pkg/core/news"
	"github.com/chrishlee1228/fountain-ai-website/pkg/models"
)

const defaultLimit = 20

// Handler serves the site-wide headline snapshot and per-ticker lookups.
// Only the site-wide feed is cached; per-ticker queries vary too much to be
// worth a snapshot.
type Handler struct {
	major *cache.Store[[]models.Headline]
}

func NewHandler(major *cache.Store[[]models.Headline]) *Handler {
	return &Handler{major: major}
}

// HandleMajor is GET /api/home/major?limit=20.
func (h *Handler) HandleMajor(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	headlines, _ := h.major.GetOrRefresh(r.Context(), func(ctx context.Context) ([]models.Headline, error) {
		return core.SiteHeadlines(ctx, limit), nil
	})
	if len(headlines) > limit {
		headlines = headlines[:limit]
	}
	writeArticles(w, headlines)
}

// HandleTickerNews is GET /api/news?tickers=AAPL,MSFT.
func (h *Handler) HandleTickerNews(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var tickers []string
	for _, t := range strings.Split(r.URL.Query().Get("tickers"), ",") {
		if s := strings.TrimSpace(t); s != "" {
			tickers = append(tickers, s)
		}
	}
	if len(tickers) == 0 {
		writeArticles(w, nil)
		return
	}

	writeArticles(w, core.TickerHeadlines(r.Context(), tickers))
}

func writeArticles(w http.ResponseWriter, headlines []models.Headline) {
	if headlines == nil {
		headlines = []models.Headline{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"count":    len(headlines),
		"articles": headlines,
	})
}
