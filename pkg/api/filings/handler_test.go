package filings

import (
	"testing"
)

func TestParseForms(t *testing.T) {
	wanted, key := parseForms("")
	if !wanted["10-K"] || !wanted["10-Q"] || !wanted["8-K"] {
		t.Errorf("defaults missing: %v", wanted)
	}
	if key != "10-K,10-Q,8-K" {
		t.Errorf("key = %q", key)
	}

	// Canonical key is order- and case-insensitive.
	_, k1 := parseForms("8-k, 10-K")
	_, k2 := parseForms("10-K,8-K,8-K")
	if k1 != k2 {
		t.Errorf("keys differ: %q vs %q", k1, k2)
	}
}

func TestParseIntDefault(t *testing.T) {
	if parseIntDefault("", 50) != 50 {
		t.Error("empty should default")
	}
	if parseIntDefault("abc", 50) != 50 {
		t.Error("junk should default")
	}
	if parseIntDefault("-3", 50) != 50 {
		t.Error("non-positive should default")
	}
	if parseIntDefault("25", 50) != 25 {
		t.Error("valid value ignored")
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" AAPL, ,msft,")
	if len(got) != 2 || got[0] != "AAPL" || got[1] != "msft" {
		t.Errorf("got %v", got)
	}
	if splitCSV("") != nil {
		t.Error("empty input should yield nil")
	}
}
