package matcher_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/resilience-works/continuity/pkg/domain/model"
	"github.com/resilience-works/continuity/pkg/domain/types"
	"github.com/resilience-works/continuity/pkg/service/matcher"
)

func active(id types.StrategyID, tier types.SelectionTier) *model.Strategy {
	return &model.Strategy{ID: id, Tier: tier, IsActive: true}
}

func TestMatchPrimaryRisk(t *testing.T) {
	ctx := context.Background()
	s := active("generator_backup", types.TierEssential)
	s.PrimaryRisk = "power_outage"

	got := matcher.Match(ctx, []types.HazardID{"power_outage"}, []*model.Strategy{s}, matcher.OrderByID)
	gt.Array(t, got).Length(1)

	got = matcher.Match(ctx, []types.HazardID{"flood"}, []*model.Strategy{s}, matcher.OrderByID)
	gt.Array(t, got).Length(0)
}

func TestMatchPrimaryRiskLegacySpelling(t *testing.T) {
	ctx := context.Background()
	// stored primary risk uses a historical spelling
	s := active("generator_backup", types.TierEssential)
	s.PrimaryRisk = "powerOutage"

	got := matcher.Match(ctx, []types.HazardID{"power_outage"}, []*model.Strategy{s}, matcher.OrderByID)
	gt.Array(t, got).Length(1)
}

func TestMatchSecondaryRisks(t *testing.T) {
	ctx := context.Background()

	t.Run("JSON array", func(t *testing.T) {
		s := active("flood_defense", types.TierRecommended)
		s.PrimaryRisk = "flood"
		s.SecondaryRisks = `["hurricane","storm_surge"]`

		got := matcher.Match(ctx, []types.HazardID{"hurricane"}, []*model.Strategy{s}, matcher.OrderByID)
		gt.Array(t, got).Length(1)
	})

	t.Run("bare JSON string", func(t *testing.T) {
		s := active("flood_defense", types.TierRecommended)
		s.SecondaryRisks = `"hurricane"`

		got := matcher.Match(ctx, []types.HazardID{"hurricane"}, []*model.Strategy{s}, matcher.OrderByID)
		gt.Array(t, got).Length(1)
	})

	t.Run("unparsable text treated as no secondary risks", func(t *testing.T) {
		s := active("flood_defense", types.TierRecommended)
		s.PrimaryRisk = "flood"
		s.SecondaryRisks = `[oops`

		got := matcher.Match(ctx, []types.HazardID{"hurricane"}, []*model.Strategy{s}, matcher.OrderByID)
		gt.Array(t, got).Length(0)

		// primary still matches despite the malformed secondary field
		got = matcher.Match(ctx, []types.HazardID{"flood"}, []*model.Strategy{s}, matcher.OrderByID)
		gt.Array(t, got).Length(1)
	})
}

func TestMatchLegacyApplicableRisksFallback(t *testing.T) {
	ctx := context.Background()

	s := active("supply_chain_protection_comprehensive", types.TierEssential)
	s.ApplicableRisks = `["supply_chain_disruption","supplier_failure","transportation_delay","geopolitical_event","pandemic","pandemic_impact","port_closure","fuel_shortage"]`

	t.Run("matches listed hazard", func(t *testing.T) {
		got := matcher.Match(ctx, []types.HazardID{"pandemic"}, []*model.Strategy{s}, matcher.OrderByID)
		gt.Array(t, got).Length(1)
	})

	t.Run("does not match unlisted hazard", func(t *testing.T) {
		got := matcher.Match(ctx, []types.HazardID{"health_emergency"}, []*model.Strategy{s}, matcher.OrderByID)
		gt.Array(t, got).Length(0)
	})

	t.Run("fallback ignored when secondary risks populated", func(t *testing.T) {
		withSecondary := active("supply_chain_protection_comprehensive", types.TierEssential)
		withSecondary.SecondaryRisks = `["cyber_attack"]`
		withSecondary.ApplicableRisks = `["pandemic"]`

		got := matcher.Match(ctx, []types.HazardID{"pandemic"}, []*model.Strategy{withSecondary}, matcher.OrderByID)
		gt.Array(t, got).Length(0)
	})
}

func TestMatchDeduplicatesAcrossHazards(t *testing.T) {
	ctx := context.Background()

	s := active("flood_defense", types.TierEssential)
	s.PrimaryRisk = "flood"
	s.SecondaryRisks = `["hurricane"]`

	// strategy matches both input hazards but must appear once
	got := matcher.Match(ctx, []types.HazardID{"flood", "hurricane"}, []*model.Strategy{s}, matcher.OrderByID)
	gt.Array(t, got).Length(1)
}

func TestMatchSkipsInactiveStrategies(t *testing.T) {
	ctx := context.Background()

	s := active("flood_defense", types.TierEssential)
	s.PrimaryRisk = "flood"
	s.IsActive = false

	got := matcher.Match(ctx, []types.HazardID{"flood"}, []*model.Strategy{s}, matcher.OrderByID)
	gt.Array(t, got).Length(0)
}

func TestMatchOrdering(t *testing.T) {
	ctx := context.Background()

	a := active("alpha", types.TierOptional)
	a.PrimaryRisk = "flood"
	b := active("beta", types.TierEssential)
	b.PrimaryRisk = "flood"
	c := active("charlie", types.TierRecommended)
	c.PrimaryRisk = "flood"

	input := []*model.Strategy{c, a, b}

	t.Run("by ID", func(t *testing.T) {
		got := matcher.Match(ctx, []types.HazardID{"flood"}, input, matcher.OrderByID)
		gt.Array(t, got).Length(3)
		gt.Value(t, got[0].ID).Equal(types.StrategyID("alpha"))
		gt.Value(t, got[1].ID).Equal(types.StrategyID("beta"))
		gt.Value(t, got[2].ID).Equal(types.StrategyID("charlie"))
	})

	t.Run("by tier", func(t *testing.T) {
		got := matcher.Match(ctx, []types.HazardID{"flood"}, input, matcher.OrderByTier)
		gt.Array(t, got).Length(3)
		gt.Value(t, got[0].ID).Equal(types.StrategyID("beta"))
		gt.Value(t, got[1].ID).Equal(types.StrategyID("charlie"))
		gt.Value(t, got[2].ID).Equal(types.StrategyID("alpha"))
	})
}

func TestPartition(t *testing.T) {
	strategies := []*model.Strategy{
		active("a", types.TierEssential),
		active("b", types.TierRecommended),
		active("c", types.TierOptional),
		active("d", types.TierSituational),
		active("e", types.SelectionTier("unexpected")),
	}

	rec := matcher.Partition(strategies)

	gt.Array(t, rec.AutoSelected).Length(2)
	gt.Array(t, rec.Optional).Length(3)

	// partition is total and disjoint: nothing dropped, nothing duplicated
	seen := map[types.StrategyID]int{}
	for _, s := range rec.AutoSelected {
		seen[s.ID]++
	}
	for _, s := range rec.Optional {
		seen[s.ID]++
	}
	gt.Value(t, len(seen)).Equal(len(strategies))
	for id, n := range seen {
		if n != 1 {
			t.Errorf("strategy %s appears %d times in partition", id, n)
		}
	}
}

func TestPartitionEmpty(t *testing.T) {
	rec := matcher.Partition(nil)
	gt.Array(t, rec.AutoSelected).Length(0)
	gt.Array(t, rec.Optional).Length(0)
}
