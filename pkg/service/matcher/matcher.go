package matcher

import (
	"context"
	"sort"

	"github.com/resilience-works/continuity/pkg/domain/model"
	"github.com/resilience-works/continuity/pkg/domain/types"
	"github.com/resilience-works/continuity/pkg/utils/logging"
)

// Order selects the ordering of matched strategies
type Order int

const (
	// OrderByID sorts by ascending strategy ID (the default, stable order)
	OrderByID Order = iota
	// OrderByTier sorts essential first, then recommended, optional,
	// situational, with ID breaking ties
	OrderByTier
)

// Match selects the active strategies whose risk associations intersect the
// given canonical hazard set. A strategy matches when its primary risk equals
// any input hazard or any input hazard appears in its secondary risk list;
// strategies with neither field populated fall back to the legacy applicable
// risks list. Malformed risk lists are logged and treated as empty, never
// aborting the whole match. Each strategy appears at most once regardless of
// how many input hazards it matched.
func Match(ctx context.Context, hazards []types.HazardID, strategies []*model.Strategy, order Order) []*model.Strategy {
	hazardSet := make(map[types.HazardID]struct{}, len(hazards))
	for _, h := range hazards {
		if h != "" {
			hazardSet[h] = struct{}{}
		}
	}

	matched := make([]*model.Strategy, 0, len(strategies))
	seen := make(map[types.StrategyID]struct{}, len(strategies))

	for _, s := range strategies {
		if !s.IsActive {
			continue
		}
		if _, dup := seen[s.ID]; dup {
			continue
		}
		if matches(ctx, s, hazardSet) {
			seen[s.ID] = struct{}{}
			matched = append(matched, s)
		}
	}

	sortStrategies(matched, order)
	return matched
}

func matches(ctx context.Context, s *model.Strategy, hazards map[types.HazardID]struct{}) bool {
	primary := types.CanonicalHazardID(s.PrimaryRisk.String())
	if primary != "" {
		if _, ok := hazards[primary]; ok {
			return true
		}
	}

	secondary, err := s.SecondaryRiskIDs()
	if err != nil {
		logging.From(ctx).Warn("treating malformed secondary risks as empty",
			"strategy_id", s.ID, "error", err.Error())
	}
	for _, id := range secondary {
		if _, ok := hazards[id]; ok {
			return true
		}
	}

	// Legacy fallback applies only when neither modern field is populated
	if primary == "" && len(secondary) == 0 {
		legacy, err := s.ApplicableRiskIDs()
		if err != nil {
			logging.From(ctx).Warn("treating malformed applicable risks as empty",
				"strategy_id", s.ID, "error", err.Error())
		}
		for _, id := range legacy {
			if _, ok := hazards[id]; ok {
				return true
			}
		}
	}

	return false
}

func sortStrategies(strategies []*model.Strategy, order Order) {
	switch order {
	case OrderByTier:
		sort.SliceStable(strategies, func(i, j int) bool {
			if strategies[i].Tier.Rank() != strategies[j].Tier.Rank() {
				return strategies[i].Tier.Rank() < strategies[j].Tier.Rank()
			}
			return strategies[i].ID < strategies[j].ID
		})
	default:
		sort.SliceStable(strategies, func(i, j int) bool {
			return strategies[i].ID < strategies[j].ID
		})
	}
}

// Partition splits matched strategies into the auto-selected set (essential
// and recommended tiers) and everything else. The partition is total and
// disjoint: every input strategy lands in exactly one output set, including
// ones with unknown tier values, which go to Optional rather than vanishing.
func Partition(strategies []*model.Strategy) *model.Recommendation {
	rec := &model.Recommendation{
		AutoSelected: make([]*model.Strategy, 0, len(strategies)),
		Optional:     make([]*model.Strategy, 0, len(strategies)),
	}
	for _, s := range strategies {
		if s.Tier.AutoSelected() {
			rec.AutoSelected = append(rec.AutoSelected, s)
		} else {
			rec.Optional = append(rec.Optional, s)
		}
	}
	return rec
}
