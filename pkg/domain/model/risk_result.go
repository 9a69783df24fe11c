package model

import (
	"github.com/resilience-works/continuity/pkg/domain/types"
)

// RiskResult is the per-hazard outcome of a risk calculation. It is derived
// per request and never persisted or cached: it depends on caller-specific
// characteristics.
type RiskResult struct {
	HazardID      types.HazardID  `json:"hazard_id"`
	BaseLevel     types.RiskLevel `json:"base_level"`
	AdjustedLevel types.RiskLevel `json:"adjusted_level"`
	// Reasoning records which multipliers fired, in application order
	Reasoning []string `json:"reasoning"`
	// KnownHazard is false when the input id was not found in the catalog
	// and the configured floor was used as the base level
	KnownHazard bool `json:"known_hazard"`
}

// Recommendation partitions matched strategies by selection tier. The two
// sets are disjoint and together contain every matched strategy.
type Recommendation struct {
	AutoSelected []*Strategy `json:"auto_selected"`
	Optional     []*Strategy `json:"optional"`
}
