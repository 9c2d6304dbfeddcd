package filings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// pointTickerReference swaps the reference URL and clears the memoized map,
// returning a restore func.
func pointTickerReference(url string) func() {
	tickerMu.Lock()
	old := companyTickersURL
	companyTickersURL = url
	tickerMap = nil
	tickerMu.Unlock()
	return func() {
		tickerMu.Lock()
		companyTickersURL = old
		tickerMap = nil
		tickerMu.Unlock()
	}
}

func TestResolveCIKRetriesAfterFailedLoad(t *testing.T) {
	var fetches int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fetches, 1)
		w.Write([]byte(`{"0":{"cik_str":320193,"ticker":"AAPL","title":"Apple Inc."}}`))
	}))
	defer srv.Close()
	defer pointTickerReference(srv.URL)()

	// First load fails (dead context). The failure must not be memoized.
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ResolveCIK(cancelled, "AAPL"); err == nil {
		t.Fatal("expected error from a dead context")
	}

	cik, err := ResolveCIK(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("load must be retried after a failure, got %v", err)
	}
	if cik != "0000320193" {
		t.Errorf("cik = %q, want 0000320193", cik)
	}

	// Success IS memoized: further lookups never refetch.
	before := atomic.LoadInt32(&fetches)
	if _, err := ResolveCIK(context.Background(), "MSFT"); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt32(&fetches); got != before {
		t.Errorf("fetches = %d after lookup, want %d (memoized)", got, before)
	}
}
