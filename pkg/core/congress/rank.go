package congress

import (
	"sort"
	"time"

	"github.com/chrishlee1228/fountain-ai-website/pkg/models"
)

const dateSpanLayout = "Jan 02, 2006"

// ComputeTopBottom groups records by symbol, sums their signed values, and
// returns the n strongest net buyers and net sellers. Records missing a
// filed date, a signed value, or a symbol are excluded first. Ties are
// broken by ascending symbol so repeated runs over the same snapshot are
// byte-identical.
func ComputeTopBottom(records []models.DisclosureRecord, n int) models.RankingResult {
	net := make(map[string]float64)
	var minFiled, maxFiled *time.Time

	for i := range records {
		r := &records[i]
		if r.Symbol == "" || r.Filed == nil || r.SignedValue == nil {
			continue
		}
		net[r.Symbol] += *r.SignedValue

		if minFiled == nil || r.Filed.Before(*minFiled) {
			minFiled = r.Filed
		}
		if maxFiled == nil || r.Filed.After(*maxFiled) {
			maxFiled = r.Filed
		}
	}

	flows := make([]models.NetFlow, 0, len(net))
	for sym, v := range net {
		flows = append(flows, models.NetFlow{Symbol: sym, Value: v})
	}

	// Ascending by value: the head is the most net-sold.
	sort.Slice(flows, func(i, j int) bool {
		if flows[i].Value != flows[j].Value {
			return flows[i].Value < flows[j].Value
		}
		return flows[i].Symbol < flows[j].Symbol
	})
	bottom := firstN(flows, n)

	desc := make([]models.NetFlow, len(flows))
	copy(desc, flows)
	sort.Slice(desc, func(i, j int) bool {
		if desc[i].Value != desc[j].Value {
			return desc[i].Value > desc[j].Value
		}
		return desc[i].Symbol < desc[j].Symbol
	})
	top := firstN(desc, n)

	dateRange := "N/A"
	if minFiled != nil && maxFiled != nil {
		dateRange = minFiled.Format(dateSpanLayout) + " to " + maxFiled.Format(dateSpanLayout)
	}

	return models.RankingResult{
		DateRange:   dateRange,
		Top10:       top,
		Bottom10:    bottom,
		GeneratedAt: time.Now().UTC(),
	}
}

func firstN(flows []models.NetFlow, n int) []models.NetFlow {
	if n > len(flows) {
		n = len(flows)
	}
	out := make([]models.NetFlow, n)
	copy(out, flows[:n])
	return out
}
