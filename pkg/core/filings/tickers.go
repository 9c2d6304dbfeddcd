// Package filings ingests SEC EDGAR filing feeds: the site-wide current
// filings stream (Atom with an HTML fallback), per-company feeds, and the
// browse-page description index joined to them by accession number.
package filings

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/chrishlee1228/fountain-ai-website/pkg/core/scrape"
	"github.com/chrishlee1228/fountain-ai-website/pkg/core/utils"
)

var companyTickersURL = "https://www.sec.gov/files/company_tickers.json"

var (
	tickerMu  sync.Mutex
	tickerMap map[string]string // ticker -> zero-padded CIK
)

// ResolveCIK maps a ticker symbol to its zero-padded CIK. The reference
// document is fetched once and memoized for the process lifetime; ticker
// listings change rarely enough that a restart is the accepted refresh path.
// Only a successful load is memoized: a failed fetch is retried on the next
// call rather than latching every later resolution into the same error.
// Returns "" when the ticker is unknown.
func ResolveCIK(ctx context.Context, ticker string) (string, error) {
	m, err := tickerReference(ctx)
	if err != nil {
		return "", err
	}
	return m[strings.ToUpper(strings.TrimSpace(ticker))], nil
}

func tickerReference(ctx context.Context) (map[string]string, error) {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	if tickerMap != nil {
		return tickerMap, nil
	}
	m, err := loadTickerMap(ctx)
	if err != nil {
		return nil, err
	}
	tickerMap = m
	log.Printf("[sec] loaded %d tickers from reference document", len(tickerMap))
	return tickerMap, nil
}

// loadTickerMap parses the reference JSON leniently: the document is served
// by a rate-limited host and has been seen truncated. Format is a map of
// numeric string keys to {cik_str, ticker, title}.
func loadTickerMap(ctx context.Context) (map[string]string, error) {
	body, err := scrape.FetchDocument(ctx, companyTickersURL)
	if err != nil {
		return nil, fmt.Errorf("ticker reference: %w", err)
	}

	type tickerEntry struct {
		CIK    int    `json:"cik_str"`
		Ticker string `json:"ticker"`
		Title  string `json:"title"`
	}
	var raw map[string]tickerEntry
	if err := utils.DecodeLenientJSON(body, &raw); err != nil {
		return nil, fmt.Errorf("ticker reference: %w", err)
	}

	out := make(map[string]string, len(raw))
	for _, e := range raw {
		if e.Ticker == "" || e.CIK == 0 {
			continue
		}
		out[strings.ToUpper(e.Ticker)] = fmt.Sprintf("%010d", e.CIK)
	}
	return out, nil
}
