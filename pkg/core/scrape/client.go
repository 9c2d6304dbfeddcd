// Package scrape retrieves raw content from the upstream disclosure and
// filing sources. Table scrapes are required inputs and fail loudly with
// *SourceUnavailableError; feed fetches are best-effort and never propagate.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Outbound identification is a fixed literal per source, not configuration.
// The SEC asks for a descriptive contact string; the disclosure table pages
// serve different markup to non-browser agents.
const (
	BrowserUserAgent = "Mozilla/5.0"
	SECUserAgent     = "FountainAI/1.0 (fountain-ai.com) Contact: admin@fountain-ai.com"

	tableTimeout = 20 * time.Second
	feedTimeout  = 15 * time.Second
)

// Shared client with connection reuse. Per-request deadlines come from the
// contexts below, so no client-level timeout.
var client = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}

// SourceUnavailableError marks a required upstream as unreachable: transport
// failure, timeout, non-success status, or a response missing the structure
// we scrape. Callers with a cached fallback serve it; the ranking pipeline
// propagates this when no fallback exists.
type SourceUnavailableError struct {
	URL string
	Err error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source unavailable: %s: %v", e.URL, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// fetch performs a single GET with the given User-Agent and deadline.
func fetch(ctx context.Context, url, userAgent, accept string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// FetchDocument retrieves a structured (JSON/XML) document from a required
// source with the descriptive SEC User-Agent.
func FetchDocument(ctx context.Context, url string) ([]byte, error) {
	body, err := fetch(ctx, url, SECUserAgent, "application/json, text/xml, application/atom+xml;q=0.9,*/*;q=0.8", feedTimeout)
	if err != nil {
		return nil, &SourceUnavailableError{URL: url, Err: err}
	}
	return body, nil
}
