package model

import (
	"encoding/json"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// DecodeStringList parses a stored list-of-identifiers field. The catalog has
// accumulated three encodings over time: a JSON array of strings, a single
// JSON string, and comma/semicolon-delimited plain text. Any input that fits
// none of them yields an empty list plus an error for the caller to log; the
// surrounding batch operation must not abort because one record is malformed.
func DecodeStringList(raw string) ([]string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
		return compactStrings(list), nil
	}

	var single string
	if err := json.Unmarshal([]byte(trimmed), &single); err == nil {
		return compactStrings([]string{single}), nil
	}

	// A JSON-ish payload that failed to parse is malformed, not legacy text
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		return nil, goerr.New("malformed JSON list field", goerr.V("raw", raw))
	}

	// Legacy delimited text: "a, b; c"
	split := strings.FieldsFunc(trimmed, func(r rune) bool {
		return r == ',' || r == ';'
	})
	return compactStrings(split), nil
}

// EncodeStringList serializes a list for storage as a JSON array
func EncodeStringList(list []string) (string, error) {
	data, err := json.Marshal(list)
	if err != nil {
		return "", goerr.Wrap(err, "failed to encode string list")
	}
	return string(data), nil
}

func compactStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if v := strings.TrimSpace(s); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
