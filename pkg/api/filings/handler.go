// Package filings exposes the SEC filing feeds over HTTP. These endpoints
// never surface upstream failures: the substitute is always an empty,
// well-formed result.
package filings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/chrishlee1228/fountain-ai-website/pkg/core/cache"
	core "github.com/chrishlee1228/fountain-ai-website/pkg/core/filings"
	"github.com/chrishlee1228/fountain-ai-website/pkg/models"
)

const (
	defaultForms    = "10-K,10-Q,8-K"
	defaultCount    = 50
	defaultCountPer = 200
)

// Handler serves recent filings and the per-ticker browse endpoint. Recent
// snapshots are cached per (forms, count) request shape.
type Handler struct {
	browser *core.Browser
	recent  *cache.Keyed[[]models.FilingRecord]
}

func NewHandler(browser *core.Browser, recent *cache.Keyed[[]models.FilingRecord]) *Handler {
	return &Handler{browser: browser, recent: recent}
}

// HandleRecent is GET /api/home/sec-recent?forms=10-K,10-Q,8-K&count=50.
func (h *Handler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	wanted, formsKey := parseForms(r.URL.Query().Get("forms"))
	count := parseIntDefault(r.URL.Query().Get("count"), defaultCount)

	key := fmt.Sprintf("%s|%d", formsKey, count)
	records, _ := h.recent.GetOrRefresh(r.Context(), key, func(ctx context.Context) ([]models.FilingRecord, error) {
		return core.FetchCurrent(ctx, wanted, count), nil
	})
	if records == nil {
		records = []models.FilingRecord{}
	}

	writeJSON(w, map[string]interface{}{
		"count":   len(records),
		"filings": records,
	})
}

// HandleBrowseFor is GET /api/sec/filings-browse-for?tickers=AAPL,MSFT.
// Per ticker: company feed, description index scrape, join by accession.
func (h *Handler) HandleBrowseFor(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	tickers := splitCSV(r.URL.Query().Get("tickers"))
	if len(tickers) == 0 {
		http.Error(w, "tickers query parameter is required", http.StatusBadRequest)
		return
	}

	wanted, _ := parseForms(r.URL.Query().Get("forms"))
	countPer := parseIntDefault(r.URL.Query().Get("count_per"), defaultCountPer)

	byTicker := h.browser.BrowseForTickers(r.Context(), tickers, wanted, countPer)
	writeJSON(w, map[string]interface{}{"by_ticker": byTicker})
}

// parseForms returns the wanted-form set plus a canonical cache key for it.
func parseForms(raw string) (map[string]bool, string) {
	if strings.TrimSpace(raw) == "" {
		raw = defaultForms
	}
	wanted := make(map[string]bool)
	var keys []string
	for _, f := range splitCSV(raw) {
		form := strings.ToUpper(f)
		if !wanted[form] {
			wanted[form] = true
			keys = append(keys, form)
		}
	}
	sort.Strings(keys)
	return wanted, strings.Join(keys, ",")
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
