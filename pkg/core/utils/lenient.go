// Package utils holds small shared helpers. The lenient JSON decoder exists
// because upstream reference documents are occasionally served truncated or
// with sloppy syntax; dropping the whole ticker map over a trailing comma
// would take the per-ticker endpoints down with it.
package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// DecodeLenientJSON unmarshals data into v, trying progressively more
// forgiving strategies:
//  1. standard JSON
//  2. mechanical repair (unclosed objects, trailing commas, quote style)
//  3. Hjson (most lenient: comments, unquoted keys)
//
// Only when all three fail does an error come back.
func DecodeLenientJSON(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err == nil {
		return nil
	}

	if repaired, err := jsonrepair.RepairJSON(string(data)); err == nil {
		if err := json.Unmarshal([]byte(repaired), v); err == nil {
			return nil
		}
	}

	if err := hjson.Unmarshal(data, v); err == nil {
		return nil
	}

	return fmt.Errorf("lenient decode failed: input is not recoverable JSON")
}
