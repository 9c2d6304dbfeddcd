package scrape

import (
	"bytes"
	"context"
	"errors"

	"github.com/PuerkitoBio/goquery"

	"github.com/chrishlee1228/fountain-ai-website/pkg/core/extract"
)

var errNoTable = errors.New("no table found on page")

// FetchTable retrieves url and parses the first <table> in the response into
// rows of cell texts. The header row, when present, comes back as row zero.
// Any failure, including the absence of a table, is a *SourceUnavailableError:
// a page without its table is as useless to us as a page that never loaded.
func FetchTable(ctx context.Context, url string) ([][]string, error) {
	body, err := fetch(ctx, url, BrowserUserAgent, "", tableTimeout)
	if err != nil {
		return nil, &SourceUnavailableError{URL: url, Err: err}
	}

	rows, err := parseFirstTable(body)
	if err != nil {
		return nil, &SourceUnavailableError{URL: url, Err: err}
	}
	return rows, nil
}

// FetchHTMLDocument retrieves url with the descriptive SEC User-Agent and
// hands back the parsed document for row-level traversal. Used where cell
// text alone is not enough (the EDGAR pages carry the join key in hrefs).
func FetchHTMLDocument(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := fetch(ctx, url, SECUserAgent, "text/html", tableTimeout)
	if err != nil {
		return nil, &SourceUnavailableError{URL: url, Err: err}
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &SourceUnavailableError{URL: url, Err: err}
	}
	return doc, nil
}

func parseFirstTable(body []byte) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, errNoTable
	}
	return TableRows(table), nil
}

// TableRows flattens a goquery table selection into rows of trimmed cell
// texts. Rows without cells (spacer rows, nested header wrappers) are
// skipped.
func TableRows(table *goquery.Selection) [][]string {
	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, extract.CleanWhitespace(cell.Text()))
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})
	return rows
}
