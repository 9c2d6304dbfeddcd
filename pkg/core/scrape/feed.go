package scrape

import (
	"bytes"
	"context"
	"log"

	"github.com/mmcdole/gofeed"
)

// FetchFeed retrieves and parses an RSS/Atom feed. Feeds carry optional and
// enrichment data only, so every failure is logged and swallowed: the caller
// always gets a usable (possibly empty) slice.
func FetchFeed(ctx context.Context, url string) []*gofeed.Item {
	body, err := fetch(ctx, url, SECUserAgent, "application/atom+xml, application/rss+xml;q=0.9, */*;q=0.8", feedTimeout)
	if err != nil {
		log.Printf("[scrape] feed fetch failed for %s: %v", url, err)
		return nil
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		log.Printf("[scrape] feed parse failed for %s: %v", url, err)
		return nil
	}
	return feed.Items
}
