package common

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ParseJSON extracts the outermost JSON object from an LLM response and
// unmarshals it into T. Markdown fences or prose around the object are
// ignored.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	start := strings.IndexByte(response, '{')
	end := strings.LastIndexByte(response, '}')
	if start == -1 {
		return zero, fmt.Errorf("no JSON object found in response (missing '{')")
	}
	if end < start {
		return zero, fmt.Errorf("no JSON object found in response (missing '}')")
	}

	raw := response[start : end+1]
	if !gjson.Valid(raw) {
		return zero, fmt.Errorf("invalid JSON object in response: %s", raw)
	}

	var result T
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, raw)
	}

	return result, nil
}
