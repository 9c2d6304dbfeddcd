package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchTableParsesFirstTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != BrowserUserAgent {
			t.Errorf("User-Agent = %q", got)
		}
		w.Write([]byte(`<html><body>
			<table>
				<tr><th>Stock</th><th> Transaction </th></tr>
				<tr><td>AAPL</td><td>Purchase
					$1,001 - $15,000</td></tr>
			</table>
			<table><tr><td>second table ignored</td></tr></table>
		</body></html>`))
	}))
	defer srv.Close()

	rows, err := FetchTable(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0][1] != "Transaction" {
		t.Errorf("header cell = %q, want trimmed", rows[0][1])
	}
	if rows[1][1] != "Purchase $1,001 - $15,000" {
		t.Errorf("cell whitespace not collapsed: %q", rows[1][1])
	}
}

func TestFetchTableNoTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>maintenance page</p></body></html>`))
	}))
	defer srv.Close()

	_, err := FetchTable(context.Background(), srv.URL)
	var unavailable *SourceUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("err = %v, want *SourceUnavailableError", err)
	}
}

func TestFetchTableNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := FetchTable(context.Background(), srv.URL)
	var unavailable *SourceUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("err = %v, want *SourceUnavailableError", err)
	}
}

func TestFetchFeedNeverPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a feed at all"))
	}))
	defer srv.Close()

	if items := FetchFeed(context.Background(), srv.URL); items != nil {
		t.Errorf("items = %v, want nil on parse failure", items)
	}
	if items := FetchFeed(context.Background(), "http://127.0.0.1:1/unreachable"); items != nil {
		t.Errorf("items = %v, want nil on transport failure", items)
	}
}

func TestFetchFeedParsesAtom(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Latest Filings</title>
  <entry>
    <title>8-K - APPLE INC (0000320193) (Filer)</title>
    <link href="https://www.sec.gov/Archives/edgar/data/320193/000032019324000045-index.htm"/>
    <category term="8-K" label="form type"/>
    <updated>2024-03-15T12:00:00-04:00</updated>
    <id>urn:tag:sec.gov,2008:accession-number=0000320193-24-000045</id>
  </entry>
</feed>`))
	}))
	defer srv.Close()

	items := FetchFeed(context.Background(), srv.URL)
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].Categories[0] != "8-K" {
		t.Errorf("categories = %v", items[0].Categories)
	}
	if items[0].UpdatedParsed == nil {
		t.Error("updated timestamp not parsed")
	}
}
