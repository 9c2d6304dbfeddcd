// Package extract provides tolerant field-level parsers for the noisy text
// found in disclosure tables and filing feeds. Every function here is
// option-shaped: a value that cannot be parsed comes back as a nil pointer or
// an empty string, never as an error. Batch callers decide whether a missing
// field drops the row.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/chrishlee1228/fountain-ai-website/pkg/models"
)

var (
	accessionPathRe = regexp.MustCompile(`/data/\d+/(\d{10,})/`)
	digitRunRe      = regexp.MustCompile(`\d{10,}`)
	formTokenRe     = regexp.MustCompile(`(?i)\b(10-K|10-Q|8-K)\b`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// dateLayouts covers the formats the upstream tables have been observed to
// use. Order matters: the most common format first.
var dateLayouts = []string{
	"01/02/2006",
	"2006-01-02",
	"Jan 2, 2006",
	"Jan. 2, 2006",
	"January 2, 2006",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// ParseAmountRange parses a disclosure amount band such as
// "Purchase $1,001 - $15,000" into its integer bounds. The text is split at
// the first "$", then on the " - " range separator; thousands separators and
// stray "$" are stripped. Any failure yields (nil, nil).
func ParseAmountRange(text string) (low, high *int64) {
	_, after, found := strings.Cut(text, "$")
	if !found {
		return nil, nil
	}

	parts := strings.SplitN(after, " - ", 2)
	if len(parts) < 2 {
		return nil, nil
	}

	l, err := parseAmount(parts[0])
	if err != nil {
		return nil, nil
	}
	h, err := parseAmount(parts[1])
	if err != nil {
		return nil, nil
	}
	return &l, &h
}

func parseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	return strconv.ParseInt(s, 10, 64)
}

// TransactionTypeOf maps the first token of a transaction cell to a
// TransactionType. Anything unrecognized is Unknown, not an error: upstream
// occasionally introduces new verbs ("Received", partial sales, etc.).
func TransactionTypeOf(text string) models.TransactionType {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return models.TxUnknown
	}
	switch strings.ToLower(fields[0]) {
	case "purchase":
		return models.TxPurchase
	case "sale":
		return models.TxSale
	case "exchange":
		return models.TxExchange
	default:
		return models.TxUnknown
	}
}

// FormTokenOf resolves the form type of a feed entry. Structured category
// tags are preferred: an exact (case-insensitive) match against wanted wins.
// Failing that, the free-text title is scanned for a known form token.
// Returns "" when neither yields a form; callers drop the entry.
func FormTokenOf(title string, categories []string, wanted map[string]bool) string {
	for _, c := range categories {
		term := strings.ToUpper(strings.TrimSpace(c))
		if wanted[term] {
			return term
		}
	}
	if m := formTokenRe.FindString(title); m != "" {
		return strings.ToUpper(m)
	}
	return ""
}

// AccessionFromURL pulls the accession number out of a filing document URL.
// The run of digits following a "/data/<cik>/" path segment is preferred
// (that is where EDGAR archive links carry it); otherwise the longest digit
// run of length >= 10 anywhere in the URL is used. Returns "" when the URL
// carries no such run.
func AccessionFromURL(url string) string {
	if m := accessionPathRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	runs := digitRunRe.FindAllString(url, -1)
	best := ""
	for _, r := range runs {
		if len(r) > len(best) {
			best = r
		}
	}
	return best
}

// ParseDate tries the known upstream date layouts in order. Returns nil when
// none match, mirroring the row-tolerant contract of the normalizers.
func ParseDate(text string) *time.Time {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// CleanWhitespace collapses runs of whitespace to single spaces and trims.
func CleanWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
