package types_test

import (
	"testing"

	"github.com/resilience-works/continuity/pkg/domain/types"
)

func TestCanonicalHazardID(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  types.HazardID
	}{
		{"already canonical", "power_outage", "power_outage"},
		{"camelCase", "powerOutage", "power_outage"},
		{"PascalCase", "PowerOutage", "power_outage"},
		{"free text", "Power Outage", "power_outage"},
		{"hyphenated", "power-outage", "power_outage"},
		{"mixed separators", "Power - Outage", "power_outage"},
		{"punctuation stripped", "power outage!", "power_outage"},
		{"repeated underscores collapsed", "power__outage", "power_outage"},
		{"leading and trailing trimmed", "_power_outage_", "power_outage"},
		{"alias legacy name", "pandemic_impact", "pandemic"},
		{"alias camelCase", "pandemicImpact", "pandemic"},
		{"alias epidemic", "epidemic", "pandemic"},
		{"alias blackout", "blackout", "power_outage"},
		{"alias hurricane storm", "hurricaneStorm", "hurricane"},
		{"unknown falls through", "health_emergency", "health_emergency"},
		{"unknown camelCase falls through", "zombieOutbreak", "zombie_outbreak"},
		{"empty input", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := types.CanonicalHazardID(tc.input)
			if got != tc.want {
				t.Errorf("CanonicalHazardID(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestCanonicalHazardIDIdempotent(t *testing.T) {
	inputs := []string{
		"power_outage", "powerOutage", "Pandemic Impact", "hurricaneStorm",
		"cyber-attack", "", "totally unknown hazard name", "FLOOD", "epidemic",
		"supply_chain_disruption", "  spaced  out  ", "123numeric",
	}

	for _, in := range inputs {
		once := types.CanonicalHazardID(in)
		twice := types.CanonicalHazardID(once.String())
		if once != twice {
			t.Errorf("not idempotent for %q: first=%q second=%q", in, once, twice)
		}
	}
}

func TestHazardIDValidate(t *testing.T) {
	valid := []types.HazardID{"flood", "power_outage", "cat5_hurricane"}
	for _, id := range valid {
		if err := id.Validate(); err != nil {
			t.Errorf("expected %q to be valid: %v", id, err)
		}
	}

	invalid := []types.HazardID{"", "Power_Outage", "power-outage", "power outage", "_flood"}
	for _, id := range invalid {
		if err := id.Validate(); err == nil {
			t.Errorf("expected %q to be invalid", id)
		}
	}
}
