// Package normalize turns free-form model output into structured payloads.
//
// Generative backends are asked to answer with a single JSON object but
// routinely wrap it in prose or code fences. Extraction takes the greedy
// first-{ to last-} span and parses it strictly; anything else degrades to a
// call-site fallback payload tagged parse_error=true with the raw text kept.
package normalize

import (
	"encoding/json"
	"errors"
	"strings"
)

// Result is the tagged outcome of extraction: either the parsed object or the
// fallback payload with ParseError set.
type Result struct {
	Data       map[string]any
	ParseError bool
	Raw        string
}

// Extract locates the first {...} span in raw and parses it strictly. The
// parsed mapping is returned as-is; fields are not validated against any
// schema, missing keys are simply absent downstream.
func Extract(raw string) (map[string]any, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return nil, errors.New("no JSON object found in response")
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExtractOr applies the extract-or-fallback rule. On parse failure the
// fallback payload is copied, tagged parse_error=true, and the raw text is
// preserved on the result.
func ExtractOr(raw string, fallback map[string]any) Result {
	if data, err := Extract(raw); err == nil {
		return Result{Data: data, Raw: raw}
	}
	data := make(map[string]any, len(fallback)+1)
	for k, v := range fallback {
		data[k] = v
	}
	data["parse_error"] = true
	return Result{Data: data, ParseError: true, Raw: raw}
}
