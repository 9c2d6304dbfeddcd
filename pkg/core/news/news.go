// Package news aggregates market headline feeds. Headlines are a purely
// decorative surface: every failure degrades to an empty list.
package news

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/chrishlee1228/fountain-ai-website/pkg/core/scrape"
	"github.com/chrishlee1228/fountain-ai-website/pkg/models"
)

// Feed URLs are vars so tests can point them at a local server.
var (
	majorFeedURL  = "https://www.cnbc.com/id/100003114/device/rss/rss.html"
	tickerFeedURL = "https://feeds.finance.yahoo.com/rss/2.0/headline?s=%s&region=US&lang=en-US"
)

const (
	perTickerLimit     = 30
	tickerHeadlinesCap = 100
)

// SiteHeadlines returns up to limit headlines from the site-wide feed.
func SiteHeadlines(ctx context.Context, limit int) []models.Headline {
	var out []models.Headline
	for _, item := range scrape.FetchFeed(ctx, majorFeedURL) {
		h, ok := toHeadline(item, "CNBC")
		if !ok {
			continue
		}
		out = append(out, h)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// TickerHeadlines fetches the per-ticker feeds sequentially and merges them,
// deduplicating by URL across tickers. Capped at 100 items total.
func TickerHeadlines(ctx context.Context, tickers []string) []models.Headline {
	seen := make(map[string]bool)
	var out []models.Headline

	for _, t := range tickers {
		ticker := strings.ToUpper(strings.TrimSpace(t))
		if ticker == "" {
			continue
		}

		items := scrape.FetchFeed(ctx, fmt.Sprintf(tickerFeedURL, ticker))
		if len(items) > perTickerLimit {
			items = items[:perTickerLimit]
		}
		for _, item := range items {
			h, ok := toHeadline(item, "Yahoo Finance")
			if !ok || seen[h.URL] {
				continue
			}
			seen[h.URL] = true
			out = append(out, h)
			if len(out) >= tickerHeadlinesCap {
				return out
			}
		}
	}
	return out
}

// toHeadline keeps only entries carrying both a title and a link.
func toHeadline(item *gofeed.Item, source string) (models.Headline, bool) {
	title := strings.TrimSpace(item.Title)
	link := strings.TrimSpace(item.Link)
	if title == "" || link == "" {
		return models.Headline{}, false
	}

	published := item.Published
	if published == "" {
		published = item.Updated
	}
	return models.Headline{
		Title:       title,
		URL:         link,
		Source:      source,
		PublishedAt: published,
	}, true
}
