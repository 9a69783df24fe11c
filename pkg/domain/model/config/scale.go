package config

import (
	"github.com/resilience-works/continuity/pkg/domain/types"
)

// Scale holds the engine's risk level scale configuration. The catalog uses
// a bounded numeric scale; adjusted levels are clamped to [Min, Max] and
// hazards missing from the catalog start at DefaultBase.
type Scale struct {
	Min         types.RiskLevel
	Max         types.RiskLevel
	DefaultBase types.RiskLevel
}

// DefaultScale returns the standard 1-10 scale with a floor of 2 for
// hazards the catalog does not know yet.
func DefaultScale() *Scale {
	return &Scale{
		Min:         types.MinRiskLevel,
		Max:         types.MaxRiskLevel,
		DefaultBase: 2.0,
	}
}

// Clamp pins a level to the configured bounds
func (s *Scale) Clamp(level types.RiskLevel) types.RiskLevel {
	if level < s.Min {
		return s.Min
	}
	if level > s.Max {
		return s.Max
	}
	return level
}
