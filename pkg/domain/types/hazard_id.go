package types

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// HazardID is the canonical snake_case identifier of a hazard (or risk).
// All identifier normalization lives here; no other package may compare
// hazard names by ad-hoc string matching.
type HazardID string

var hazardIDPattern = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)

// Validate checks if the HazardID is a well-formed canonical identifier
func (h HazardID) Validate() error {
	if h == "" {
		return goerr.New("hazard ID cannot be empty")
	}
	if !hazardIDPattern.MatchString(string(h)) {
		return goerr.New("hazard ID must be lowercase snake_case", goerr.V("id", h))
	}
	return nil
}

// String returns the string representation of HazardID
func (h HazardID) String() string {
	return string(h)
}

// hazardAliases maps historical spellings to their canonical identifier.
// Keys are in derived (snake_case) form; lookup happens after derivation so
// that e.g. "pandemicImpact" and "pandemic_impact" resolve identically.
// Alias targets must never themselves be alias keys.
var hazardAliases = map[string]HazardID{
	"pandemic_impact":             "pandemic",
	"epidemic":                    "pandemic",
	"hurricane_storm":             "hurricane",
	"tropical_storm":              "hurricane",
	"power_failure":               "power_outage",
	"blackout":                    "power_outage",
	"flooding":                    "flood",
	"flash_flood":                 "flood",
	"earthquake_seismic":          "earthquake",
	"cyberattack":                 "cyber_attack",
	"cybersecurity_incident":      "cyber_attack",
	"wildfire_bushfire":           "wildfire",
	"supplier_disruption":         "supplier_failure",
	"supply_disruption":           "supply_chain_disruption",
	"civil_unrest_riot":           "civil_unrest",
	"economic_downturn_recession": "economic_downturn",
	"it_outage":                   "technology_failure",
	"data_breach_incident":        "data_breach",
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9_]`)

// CanonicalHazardID normalizes any spelling of a hazard or risk name to the
// single canonical snake_case identifier. It is total and idempotent: unknown
// input falls through to the derivation rule, and an already-canonical
// identifier maps to itself. Empty input yields an empty HazardID.
func CanonicalHazardID(s string) HazardID {
	derived := deriveSnakeCase(s)
	if canonical, ok := hazardAliases[derived]; ok {
		return canonical
	}
	return HazardID(derived)
}

// deriveSnakeCase inserts underscores at camelCase boundaries, lowercases,
// replaces whitespace and hyphens with underscores, strips everything else,
// and collapses repeated underscores.
func deriveSnakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)

	runes := []rune(s)
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && (runes[i-1] < 'A' || runes[i-1] > 'Z') && runes[i-1] != '_' && runes[i-1] != ' ' && runes[i-1] != '-' {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}

	out := strings.ToLower(b.String())
	out = strings.NewReplacer(" ", "_", "\t", "_", "-", "_").Replace(out)
	out = nonAlphanumeric.ReplaceAllString(out, "")

	for strings.Contains(out, "__") {
		out = strings.ReplaceAll(out, "__", "_")
	}
	return strings.Trim(out, "_")
}
