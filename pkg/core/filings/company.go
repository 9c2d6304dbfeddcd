package filings

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/chrishlee1228/fountain-ai-website/pkg/core/cache"
	"github.com/chrishlee1228/fountain-ai-website/pkg/core/extract"
	"github.com/chrishlee1228/fountain-ai-website/pkg/core/scrape"
	"github.com/chrishlee1228/fountain-ai-website/pkg/models"
)

const (
	companyAtomURL   = "https://www.sec.gov/cgi-bin/browse-edgar?action=getcompany&CIK=%s&owner=exclude&count=%d&output=atom"
	companyBrowseURL = "https://www.sec.gov/cgi-bin/browse-edgar?action=getcompany&CIK=%s&owner=exclude&count=%d"

	companyCountMin = 20
	companyCountMax = 400

	// Politeness pause between tickers in a batch. The browse endpoint rate
	// limits aggressively; sequential with a pause beats parallel and banned.
	interTickerPause = 250 * time.Millisecond
)

// Browser fetches per-company filing feeds and enriches them with the
// short descriptions scraped from the company browse page. The description
// index is cached per CIK with its own TTL, independent of the filings
// snapshots.
type Browser struct {
	descIndex *cache.Keyed[map[string]string]
}

func NewBrowser(descTTL time.Duration) *Browser {
	return &Browser{descIndex: cache.NewKeyed[map[string]string](descTTL)}
}

// CompanyFilings returns the company's filing records from its Atom feed,
// newest first, filtered by wanted forms. companyFallback (usually the
// ticker) names records whose feed title carries no company part.
func CompanyFilings(ctx context.Context, cik string, count int, wanted map[string]bool, companyFallback string) []models.FilingRecord {
	url := fmt.Sprintf(companyAtomURL, cik, clampCount(count))

	var records []models.FilingRecord
	for _, item := range scrape.FetchFeed(ctx, url) {
		if rec, ok := normalizeFeedItem(item, wanted, companyFallback); ok {
			records = append(records, rec)
		}
	}

	sortByFiledDesc(records)
	return records
}

// sortByFiledDesc orders newest first; records without a parsed date sink to
// the end.
func sortByFiledDesc(records []models.FilingRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		ti, tj := records[i].FiledAt, records[j].FiledAt
		if ti == nil {
			return false
		}
		if tj == nil {
			return true
		}
		return ti.After(*tj)
	})
}

// DescriptionIndex returns accession -> description for one company,
// scraping the browse page on a cache miss. Failures degrade to an empty
// index: descriptions are enrichment, never required.
func (b *Browser) DescriptionIndex(ctx context.Context, cik string, count int) map[string]string {
	index, err := b.descIndex.GetOrRefresh(ctx, cik, func(ctx context.Context) (map[string]string, error) {
		return scrapeDescriptions(ctx, cik, clampCount(count))
	})
	if err != nil {
		log.Printf("[sec] description index for CIK %s unavailable: %v", cik, err)
		return map[string]string{}
	}
	return index
}

func scrapeDescriptions(ctx context.Context, cik string, count int) (map[string]string, error) {
	doc, err := scrape.FetchHTMLDocument(ctx, fmt.Sprintf(companyBrowseURL, cik, count))
	if err != nil {
		return nil, err
	}
	return parseDescriptionRows(doc), nil
}

func parseDescriptionRows(doc *goquery.Document) map[string]string {
	rows := doc.Find("table.tableFile2 tr")
	if rows.Length() == 0 {
		rows = doc.Find("table tr")
	}

	index := make(map[string]string)
	rows.Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return // header
		}
		tds := tr.Find("td")
		if tds.Length() < 3 {
			return
		}

		docsLink := tds.Eq(1).Find("a[href]").First()
		if docsLink.Length() == 0 {
			return
		}
		acc := extract.AccessionFromURL(absoluteSECURL(docsLink.AttrOr("href", "")))
		if acc == "" {
			return
		}
		index[acc] = extract.CleanWhitespace(tds.Eq(2).Text())
	})
	return index
}

// Join attaches descriptions to records whose extracted accession appears in
// the index. A miss leaves the record untouched: the accession is a
// best-effort key and absence of a description is normal.
func Join(records []models.FilingRecord, index map[string]string) {
	for i := range records {
		if records[i].Accession == "" {
			continue
		}
		if desc, ok := index[records[i].Accession]; ok && desc != "" {
			records[i].Description = desc
		}
	}
}

// BrowseForTickers resolves each ticker to its CIK, pulls its filings, and
// joins in descriptions. Tickers are processed sequentially with a fixed
// pause in between; an unresolvable or failing ticker maps to an empty
// slice, never an error.
func (b *Browser) BrowseForTickers(ctx context.Context, tickers []string, wanted map[string]bool, countPer int) map[string][]models.FilingRecord {
	out := make(map[string][]models.FilingRecord, len(tickers))

	for i, t := range tickers {
		ticker := strings.ToUpper(strings.TrimSpace(t))
		if ticker == "" {
			continue
		}
		if i > 0 {
			time.Sleep(interTickerPause)
		}

		cik, err := ResolveCIK(ctx, ticker)
		if err != nil {
			log.Printf("[sec] ticker resolution failed for %s: %v", ticker, err)
			out[ticker] = []models.FilingRecord{}
			continue
		}
		if cik == "" {
			out[ticker] = []models.FilingRecord{}
			continue
		}

		records := CompanyFilings(ctx, cik, countPer, wanted, ticker)
		if len(records) > 0 {
			Join(records, b.DescriptionIndex(ctx, cik, countPer))
		}
		out[ticker] = records
	}
	return out
}

func clampCount(count int) int {
	if count < companyCountMin {
		return companyCountMin
	}
	if count > companyCountMax {
		return companyCountMax
	}
	return count
}
