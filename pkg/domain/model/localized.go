package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// DefaultLocale is used when a caller asks for a locale with no translation
const DefaultLocale = "en"

// LocalizedText holds per-locale display strings, stored in the catalog as a
// JSON object keyed by locale ("en"/"es"/"fr"). Legacy records sometimes hold
// a bare string instead of an object; that is tolerated and treated as the
// default-locale value.
type LocalizedText map[string]string

// DecodeLocalizedText parses a stored localized-name field. A JSON object
// yields the full map, a bare JSON string or unquoted legacy text yields a
// default-locale entry. The zero value of raw yields an empty map. The error
// is informational: the returned map is always usable.
func DecodeLocalizedText(raw string) (LocalizedText, error) {
	if raw == "" {
		return LocalizedText{}, nil
	}

	var obj map[string]string
	if err := json.Unmarshal([]byte(raw), &obj); err == nil {
		return LocalizedText(obj), nil
	}

	var single string
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		return LocalizedText{DefaultLocale: single}, nil
	}

	// Legacy records hold the plain display name without JSON quoting
	return LocalizedText{DefaultLocale: raw}, goerr.New("localized text is not valid JSON, using raw value",
		goerr.V("raw", raw))
}

// Get returns the text for the locale, falling back to the default locale and
// then to any available translation. Missing translations degrade to "".
func (t LocalizedText) Get(locale string) string {
	if v, ok := t[locale]; ok && v != "" {
		return v
	}
	if v, ok := t[DefaultLocale]; ok && v != "" {
		return v
	}
	for _, v := range t {
		if v != "" {
			return v
		}
	}
	return ""
}

// Encode serializes the map for storage
func (t LocalizedText) Encode() (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", goerr.Wrap(err, "failed to encode localized text")
	}
	return string(data), nil
}
