package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// SelectionTier is the administrator-assigned priority bucket controlling
// which strategies are auto-selected for a plan.
type SelectionTier string

const (
	TierEssential   SelectionTier = "essential"
	TierRecommended SelectionTier = "recommended"
	TierOptional    SelectionTier = "optional"
	TierSituational SelectionTier = "situational"
)

// Validate checks if the SelectionTier is a known value
func (t SelectionTier) Validate() error {
	switch t {
	case TierEssential, TierRecommended, TierOptional, TierSituational:
		return nil
	}
	return goerr.New("invalid selection tier", goerr.V("tier", t))
}

// String returns the string representation of SelectionTier
func (t SelectionTier) String() string {
	return string(t)
}

// AutoSelected reports whether strategies in this tier are pre-selected
// for a plan (essential and recommended tiers).
func (t SelectionTier) AutoSelected() bool {
	return t == TierEssential || t == TierRecommended
}

// Rank returns the sort position of the tier, essential first. Unknown
// tiers sort last so they are never silently dropped from ordered output.
func (t SelectionTier) Rank() int {
	switch t {
	case TierEssential:
		return 0
	case TierRecommended:
		return 1
	case TierOptional:
		return 2
	case TierSituational:
		return 3
	default:
		return 4
	}
}
