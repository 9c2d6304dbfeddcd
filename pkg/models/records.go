package models

import (
	"time"
)

// TransactionType classifies a disclosed trade.
type TransactionType string

const (
	TxPurchase TransactionType = "Purchase"
	TxSale     TransactionType = "Sale"
	TxExchange TransactionType = "Exchange"
	TxUnknown  TransactionType = "Unknown"
)

// DisclosureRecord is one normalized row of a legislator trade disclosure.
// Optional fields are pointers: nil means the source text did not parse.
type DisclosureRecord struct {
	Symbol  string `json:"symbol"`
	Name    string `json:"name,omitempty"`
	Chamber string `json:"chamber"` // "Senate" or "House"

	TxType     TransactionType `json:"tx_type"`
	AmountLow  *int64          `json:"amount_low,omitempty"`
	AmountHigh *int64          `json:"amount_high,omitempty"`

	// Estimate is the mean of the amount bounds; SignedValue is
	// +Estimate for Purchase, -Estimate for Sale, 0 otherwise.
	// Both are nil when either bound failed to parse.
	Estimate    *float64 `json:"estimate,omitempty"`
	SignedValue *float64 `json:"signed_value,omitempty"`

	Filed     *time.Time `json:"filed,omitempty"`
	Traded    *time.Time `json:"traded,omitempty"`
	SourceURL string     `json:"source_url,omitempty"`
}

// FilingRecord is one normalized regulatory filing event.
type FilingRecord struct {
	Company     string     `json:"company"`
	Form        string     `json:"form"` // "10-K", "10-Q", "8-K" or "Other"
	FiledAt     *time.Time `json:"filed_at,omitempty"`
	URL         string     `json:"url,omitempty"`
	Accession   string     `json:"accession,omitempty"` // best-effort join key
	Description string     `json:"desc,omitempty"`
	Source      string     `json:"source"`
}

// NetFlow is the per-symbol sum of signed trade estimates.
type NetFlow struct {
	Symbol string  `json:"stock"`
	Value  float64 `json:"value"`
}

// RankingResult is the top/bottom net-flow ranking over one scrape cycle.
// DateRange is "N/A" when no record carried a usable filed date.
type RankingResult struct {
	DateRange   string    `json:"date_range"`
	Top10       []NetFlow `json:"top10"`
	Bottom10    []NetFlow `json:"bottom10"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Headline is one deduplicated news item.
type Headline struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at,omitempty"`
}
