package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/resilience-works/continuity/pkg/domain/types"
)

// StrategyType distinguishes hazard-specific strategies from generic ones
type StrategyType string

const (
	StrategyRiskSpecific StrategyType = "risk_specific"
	StrategyGeneric      StrategyType = "generic"
)

// Strategy is a mitigation strategy from the administrator-owned catalog.
// Hazard associations are stored in three generations of fields: PrimaryRisk
// (single id), SecondaryRisks (JSON list, duplicates tolerated), and the
// legacy ApplicableRisks list consulted only when the first two are empty.
type Strategy struct {
	ID       types.StrategyID
	Name     LocalizedText
	SMETitle LocalizedText
	// PrimaryRisk is the single canonical hazard this strategy primarily
	// addresses; empty for generic strategies
	PrimaryRisk types.HazardID
	// SecondaryRisks is the stored JSON-encoded list of additional hazard ids
	SecondaryRisks string
	// ApplicableRisks is the legacy stored list, superseded by primary/secondary
	ApplicableRisks string
	Tier            types.SelectionTier
	Type            StrategyType
	// CostLevel and EffortLevel are 1 (low) to 5 (high)
	CostLevel   int
	EffortLevel int
	Steps       []ActionStep
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ActionStep is one ordered step of a strategy's playbook
type ActionStep struct {
	ID          string
	Phase       types.StepPhase
	Description LocalizedText
	SortOrder   int
	IsActive    bool
}

// Validate checks strategy integrity before seeding
func (s *Strategy) Validate() error {
	if err := s.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid strategy ID")
	}
	if err := s.Tier.Validate(); err != nil {
		return goerr.Wrap(err, "invalid selection tier", goerr.V("id", s.ID))
	}
	if s.Type != StrategyRiskSpecific && s.Type != StrategyGeneric {
		return goerr.New("invalid strategy type", goerr.V("id", s.ID), goerr.V("type", s.Type))
	}
	if s.CostLevel < 1 || s.CostLevel > 5 {
		return goerr.New("cost level must be between 1 and 5",
			goerr.V("id", s.ID), goerr.V("cost_level", s.CostLevel))
	}
	if s.EffortLevel < 1 || s.EffortLevel > 5 {
		return goerr.New("effort level must be between 1 and 5",
			goerr.V("id", s.ID), goerr.V("effort_level", s.EffortLevel))
	}
	for i := range s.Steps {
		if err := s.Steps[i].Phase.Validate(); err != nil {
			return goerr.Wrap(err, "invalid action step phase",
				goerr.V("id", s.ID), goerr.V("step_index", i))
		}
	}
	return nil
}

// SecondaryRiskIDs decodes and canonicalizes the secondary risk list,
// dropping duplicates. A malformed field yields an empty list plus an error
// for the caller to log; matching must not abort on one bad record.
func (s *Strategy) SecondaryRiskIDs() ([]types.HazardID, error) {
	raw, err := DecodeStringList(s.SecondaryRisks)
	if err != nil {
		return nil, goerr.Wrap(err, "malformed secondary risks", goerr.V("strategy_id", s.ID))
	}
	return canonicalizeUnique(raw), nil
}

// ApplicableRiskIDs decodes the legacy applicable risks list
func (s *Strategy) ApplicableRiskIDs() ([]types.HazardID, error) {
	raw, err := DecodeStringList(s.ApplicableRisks)
	if err != nil {
		return nil, goerr.Wrap(err, "malformed applicable risks", goerr.V("strategy_id", s.ID))
	}
	return canonicalizeUnique(raw), nil
}

// ActiveSteps returns the active steps sorted by phase (before, during,
// after) then SortOrder. Soft-deleted steps never surface.
func (s *Strategy) ActiveSteps() []ActionStep {
	steps := make([]ActionStep, 0, len(s.Steps))
	for _, st := range s.Steps {
		if st.IsActive {
			steps = append(steps, st)
		}
	}
	sortSteps(steps)
	return steps
}

func sortSteps(steps []ActionStep) {
	phaseRank := map[types.StepPhase]int{
		types.PhaseBefore: 0,
		types.PhaseDuring: 1,
		types.PhaseAfter:  2,
	}
	for i := 1; i < len(steps); i++ {
		for j := i; j > 0; j-- {
			a, b := steps[j-1], steps[j]
			if phaseRank[a.Phase] < phaseRank[b.Phase] ||
				(phaseRank[a.Phase] == phaseRank[b.Phase] && a.SortOrder <= b.SortOrder) {
				break
			}
			steps[j-1], steps[j] = b, a
		}
	}
}

// canonicalizeUnique maps raw spellings to canonical ids, preserving first
// occurrence order. Stored lists are never assumed duplicate-free.
func canonicalizeUnique(raw []string) []types.HazardID {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[types.HazardID]struct{}, len(raw))
	out := make([]types.HazardID, 0, len(raw))
	for _, r := range raw {
		id := types.CanonicalHazardID(r)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
