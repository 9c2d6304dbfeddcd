package utils

import (
	"testing"
)

type tickerRow struct {
	CIK    int    `json:"cik_str"`
	Ticker string `json:"ticker"`
}

func TestDecodeLenientJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"strict", `{"0":{"cik_str":320193,"ticker":"AAPL"}}`, true},
		{"trailing comma", `{"0":{"cik_str":320193,"ticker":"AAPL"},}`, true},
		{"truncated", `{"0":{"cik_str":320193,"ticker":"AAPL"`, true},
		{"hjson style", "{\n  \"0\": {cik_str: 320193, ticker: AAPL}\n}", true},
		{"hopeless", `<html>rate limited</html>`, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out map[string]tickerRow
			err := DecodeLenientJSON([]byte(tc.input), &out)
			if tc.ok {
				if err != nil {
					t.Fatalf("expected recovery, got %v", err)
				}
				if out["0"].Ticker != "AAPL" {
					t.Errorf("decoded ticker = %q, want AAPL", out["0"].Ticker)
				}
			} else if err == nil {
				t.Errorf("expected failure, got %+v", out)
			}
		})
	}
}
