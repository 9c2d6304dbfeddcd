package filings

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/chrishlee1228/fountain-ai-website/pkg/core/extract"
	"github.com/chrishlee1228/fountain-ai-website/pkg/core/scrape"
	"github.com/chrishlee1228/fountain-ai-website/pkg/models"
)

// URL templates are vars so tests can point them at a local server.
var (
	currentAtomURL = "https://www.sec.gov/cgi-bin/browse-edgar?action=getcurrent&count=%d&output=atom"
	currentHTMLURL = "https://www.sec.gov/cgi-bin/browse-edgar?action=getcurrent&start=%d&count=%d"
)

const (
	secBaseURL = "https://www.sec.gov"
	sourceTag  = "SEC EDGAR"

	htmlPageSize   = 40
	htmlScanRowCap = 200
	atomRequestCap = 200
)

// FetchCurrent returns up to target recently filed records matching wanted.
// The structured Atom feed is tried first; when its form-filtered yield
// falls short, the paginated HTML listing is scraped page by page until the
// target is met or the row scan cap is hit. Both paths are best-effort:
// failures are logged and whatever was collected is returned.
func FetchCurrent(ctx context.Context, wanted map[string]bool, target int) []models.FilingRecord {
	if target <= 0 {
		return nil
	}

	records := fetchCurrentAtom(ctx, wanted, target)

	if len(records) < target {
		records = append(records, fetchCurrentHTML(ctx, wanted, target-len(records))...)
	}
	if len(records) > target {
		records = records[:target]
	}
	return records
}

func fetchCurrentAtom(ctx context.Context, wanted map[string]bool, target int) []models.FilingRecord {
	count := target
	if count > atomRequestCap {
		count = atomRequestCap
	}

	var records []models.FilingRecord
	for _, item := range scrape.FetchFeed(ctx, fmt.Sprintf(currentAtomURL, count)) {
		rec, ok := normalizeFeedItem(item, wanted, "")
		if !ok {
			continue
		}
		records = append(records, rec)
		if len(records) >= target {
			break
		}
	}
	return records
}

// normalizeFeedItem maps one Atom entry to a FilingRecord. The form token
// comes from structured categories first, then the title text; an entry
// whose form cannot be determined (or is filtered out) is dropped, not an
// error. companyFallback fills in when the title carries no company part.
func normalizeFeedItem(item *gofeed.Item, wanted map[string]bool, companyFallback string) (models.FilingRecord, bool) {
	title := extract.CleanWhitespace(item.Title)

	form := extract.FormTokenOf(title, item.Categories, wanted)
	if form == "" {
		return models.FilingRecord{}, false
	}
	if len(wanted) > 0 && !wanted[form] {
		return models.FilingRecord{}, false
	}

	company := companyFallback
	if _, after, found := strings.Cut(title, " - "); found {
		company = strings.TrimSpace(after)
	} else if company == "" {
		company = title
	}

	var filedAt *time.Time
	if item.UpdatedParsed != nil {
		filedAt = item.UpdatedParsed
	} else if item.PublishedParsed != nil {
		filedAt = item.PublishedParsed
	}

	return models.FilingRecord{
		Company:   company,
		Form:      form,
		FiledAt:   filedAt,
		URL:       item.Link,
		Accession: extract.AccessionFromURL(item.Link),
		Source:    sourceTag,
	}, true
}

func fetchCurrentHTML(ctx context.Context, wanted map[string]bool, remaining int) []models.FilingRecord {
	var records []models.FilingRecord

	scanCap := remaining + htmlPageSize
	if scanCap > htmlScanRowCap {
		scanCap = htmlScanRowCap
	}

	for start := 0; start < scanCap; start += htmlPageSize {
		doc, err := scrape.FetchHTMLDocument(ctx, fmt.Sprintf(currentHTMLURL, start, htmlPageSize))
		if err != nil {
			log.Printf("[sec] current filings HTML fallback stopped: %v", err)
			break
		}

		doc.Find("table tr").Each(func(i int, tr *goquery.Selection) {
			if i == 0 || len(records) >= remaining {
				return
			}
			if rec, ok := normalizeListingRow(tr, wanted); ok {
				records = append(records, rec)
			}
		})
		if len(records) >= remaining {
			break
		}
	}
	return records
}

// normalizeListingRow maps one row of the EDGAR current-filings HTML table.
// Layout: form | documents-link | company | cik | ... | filed-date.
func normalizeListingRow(tr *goquery.Selection, wanted map[string]bool) (models.FilingRecord, bool) {
	tds := tr.Find("td")
	if tds.Length() < 3 {
		return models.FilingRecord{}, false
	}

	form := strings.ToUpper(extract.CleanWhitespace(tds.Eq(0).Text()))
	if form == "" {
		return models.FilingRecord{}, false
	}
	if len(wanted) > 0 && !wanted[form] {
		return models.FilingRecord{}, false
	}

	companyCell := tds.Eq(2)
	company := extract.CleanWhitespace(companyCell.Text())
	if a := companyCell.Find("a").First(); a.Length() > 0 {
		company = extract.CleanWhitespace(a.Text())
	}

	link := ""
	if a := companyCell.Find("a[href]").First(); a.Length() > 0 {
		link = absoluteSECURL(a.AttrOr("href", ""))
	}

	var filedAt *time.Time
	if tds.Length() >= 6 {
		filedAt = extract.ParseDate(extract.CleanWhitespace(tds.Eq(5).Text()))
	}

	// No accession here: the listing row links to the company page, whose
	// digit runs are CIKs, not accession numbers.
	return models.FilingRecord{
		Company: company,
		Form:    form,
		FiledAt: filedAt,
		URL:     link,
		Source:  sourceTag,
	}, true
}

func absoluteSECURL(href string) string {
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	return secBaseURL + href
}
