package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/resilience-works/continuity/pkg/domain/model"
	"github.com/resilience-works/continuity/pkg/domain/types"
)

func TestStrategySecondaryRiskIDs(t *testing.T) {
	t.Run("JSON array with duplicates and aliases", func(t *testing.T) {
		s := &model.Strategy{
			ID:             "generator_backup",
			SecondaryRisks: `["power_outage","blackout","powerOutage","flood"]`,
		}
		ids, err := s.SecondaryRiskIDs()
		gt.NoError(t, err)
		// blackout and powerOutage both canonicalize to power_outage
		gt.Array(t, ids).Equal([]types.HazardID{"power_outage", "flood"})
	})

	t.Run("single JSON string", func(t *testing.T) {
		s := &model.Strategy{ID: "generator_backup", SecondaryRisks: `"power_outage"`}
		ids, err := s.SecondaryRiskIDs()
		gt.NoError(t, err)
		gt.Array(t, ids).Equal([]types.HazardID{"power_outage"})
	})

	t.Run("malformed field degrades to empty", func(t *testing.T) {
		s := &model.Strategy{ID: "generator_backup", SecondaryRisks: `["power_outage"`}
		ids, err := s.SecondaryRiskIDs()
		gt.Error(t, err)
		gt.Array(t, ids).Length(0)
	})

	t.Run("empty field", func(t *testing.T) {
		s := &model.Strategy{ID: "generator_backup"}
		ids, err := s.SecondaryRiskIDs()
		gt.NoError(t, err)
		gt.Array(t, ids).Length(0)
	})
}

func TestStrategyActiveSteps(t *testing.T) {
	s := &model.Strategy{
		ID: "flood_defense",
		Steps: []model.ActionStep{
			{ID: "c", Phase: types.PhaseAfter, SortOrder: 1, IsActive: true},
			{ID: "a", Phase: types.PhaseBefore, SortOrder: 2, IsActive: true},
			{ID: "x", Phase: types.PhaseBefore, SortOrder: 1, IsActive: false},
			{ID: "b", Phase: types.PhaseBefore, SortOrder: 1, IsActive: true},
			{ID: "d", Phase: types.PhaseDuring, SortOrder: 1, IsActive: true},
		},
	}

	steps := s.ActiveSteps()
	gt.Array(t, steps).Length(4)
	gt.Value(t, steps[0].ID).Equal("b")
	gt.Value(t, steps[1].ID).Equal("a")
	gt.Value(t, steps[2].ID).Equal("d")
	gt.Value(t, steps[3].ID).Equal("c")
}

func TestStrategyValidate(t *testing.T) {
	valid := &model.Strategy{
		ID:          "supply_chain_protection_comprehensive",
		Tier:        types.TierEssential,
		Type:        model.StrategyRiskSpecific,
		CostLevel:   3,
		EffortLevel: 2,
	}
	gt.NoError(t, valid.Validate())

	t.Run("bad tier", func(t *testing.T) {
		s := *valid
		s.Tier = "mandatory"
		gt.Error(t, s.Validate())
	})

	t.Run("bad cost level", func(t *testing.T) {
		s := *valid
		s.CostLevel = 0
		gt.Error(t, s.Validate())
	})

	t.Run("bad step phase", func(t *testing.T) {
		s := *valid
		s.Steps = []model.ActionStep{{ID: "s1", Phase: "sometime", IsActive: true}}
		gt.Error(t, s.Validate())
	})
}
