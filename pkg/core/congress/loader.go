// Package congress ingests legislator trade disclosure tables and computes
// the net-flow ranking served on the dashboard.
package congress

import (
	"context"
	"fmt"
	"strings"

	"github.com/chrishlee1228/fountain-ai-website/pkg/core/extract"
	"github.com/chrishlee1228/fountain-ai-website/pkg/core/scrape"
	"github.com/chrishlee1228/fountain-ai-website/pkg/models"
)

const (
	senateTradingURL = "https://www.quiverquant.com/sources/senatetrading"
	houseTradingURL  = "https://www.quiverquant.com/sources/housetrading"
)

// LoadTrades scrapes both chamber tables and returns the combined normalized
// records. Either table failing fails the whole load: the ranking has no
// meaningful half-result, and the caller falls back to its cached snapshot.
func LoadTrades(ctx context.Context) ([]models.DisclosureRecord, error) {
	senate, err := scrape.FetchTable(ctx, senateTradingURL)
	if err != nil {
		return nil, fmt.Errorf("senate trades: %w", err)
	}
	house, err := scrape.FetchTable(ctx, houseTradingURL)
	if err != nil {
		return nil, fmt.Errorf("house trades: %w", err)
	}

	records := Normalize(senate, "Senate", senateTradingURL)
	records = append(records, Normalize(house, "House", houseTradingURL)...)
	return records, nil
}

// Normalize converts raw table rows (header row first) into canonical
// disclosure records. Field-level parse failures null the field; only a row
// with no symbol at all is dropped. One bad row never fails the batch.
// Signed values are computed here, exactly once: downstream aggregation
// reads them, it never recomputes them.
func Normalize(rows [][]string, chamber, sourceURL string) []models.DisclosureRecord {
	if len(rows) < 2 {
		return nil
	}

	cols := headerIndex(rows[0])
	symbolCol := cols.first("stock", "ticker", "symbol")
	txCol := cols.first("transaction")
	filedCol := cols.first("filed")
	tradedCol := cols.first("traded")
	nameCol := cols.first("politician", "representative", "senator", "name")
	if symbolCol < 0 || txCol < 0 {
		return nil
	}

	var out []models.DisclosureRecord
	for _, row := range rows[1:] {
		symbol := strings.ToUpper(cell(row, symbolCol))
		if symbol == "" {
			continue
		}

		tx := cell(row, txCol)
		rec := models.DisclosureRecord{
			Symbol:    symbol,
			Name:      cell(row, nameCol),
			Chamber:   chamber,
			TxType:    extract.TransactionTypeOf(tx),
			Filed:     extract.ParseDate(cell(row, filedCol)),
			Traded:    extract.ParseDate(cell(row, tradedCol)),
			SourceURL: sourceURL,
		}
		rec.AmountLow, rec.AmountHigh = extract.ParseAmountRange(tx)

		if rec.AmountLow != nil && rec.AmountHigh != nil {
			est := (float64(*rec.AmountLow) + float64(*rec.AmountHigh)) / 2
			rec.Estimate = &est

			signed := 0.0
			switch rec.TxType {
			case models.TxPurchase:
				signed = est
			case models.TxSale:
				signed = -est
			}
			rec.SignedValue = &signed
		}

		out = append(out, rec)
	}
	return out
}

type columnIndex map[string]int

func headerIndex(header []string) columnIndex {
	cols := make(columnIndex, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	return cols
}

func (c columnIndex) first(names ...string) int {
	for _, n := range names {
		if i, ok := c[n]; ok {
			return i
		}
	}
	return -1
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
