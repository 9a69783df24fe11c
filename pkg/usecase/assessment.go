package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/resilience-works/continuity/pkg/domain/model"
	"github.com/resilience-works/continuity/pkg/domain/model/config"
	"github.com/resilience-works/continuity/pkg/domain/types"
	"github.com/resilience-works/continuity/pkg/service/catalog"
	"github.com/resilience-works/continuity/pkg/service/matcher"
	"github.com/resilience-works/continuity/pkg/service/multiplier"
	"github.com/resilience-works/continuity/pkg/utils/logging"
)

// AssessmentUseCase runs the risk calculation and strategy recommendation
// pipeline. Store reads go through the catalog cache; the computation stages
// themselves are pure.
type AssessmentUseCase struct {
	catalog *catalog.Service
	engine  *multiplier.Engine
	scale   *config.Scale
}

func NewAssessmentUseCase(cat *catalog.Service, engine *multiplier.Engine, scale *config.Scale) *AssessmentUseCase {
	if scale == nil {
		scale = config.DefaultScale()
	}
	return &AssessmentUseCase{
		catalog: cat,
		engine:  engine,
		scale:   scale,
	}
}

// ComputeRisks calculates the adjusted risk level for each distinct hazard.
// Input ids are canonicalized and deduplicated first; the result list keeps
// the first-occurrence order of distinct canonical ids and contains at most
// one entry per canonical hazard. Hazards missing from the catalog still
// produce a result, starting from the configured floor.
func (uc *AssessmentUseCase) ComputeRisks(ctx context.Context, hazardIDs []string, businessTypeID, locationID string) ([]model.RiskResult, error) {
	distinct := dedupeCanonical(hazardIDs)
	if len(distinct) == 0 {
		return []model.RiskResult{}, nil
	}

	hazards, err := uc.catalog.Hazards(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to compute risks")
	}
	rules, err := uc.catalog.Rules(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to compute risks")
	}
	characteristics, err := uc.loadCharacteristics(ctx, businessTypeID, locationID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to compute risks")
	}

	byID := make(map[types.HazardID]*model.Hazard, len(hazards))
	for _, h := range hazards {
		if h.IsActive {
			byID[h.ID] = h
		}
	}

	results := make([]model.RiskResult, 0, len(distinct))
	for _, id := range distinct {
		base := uc.scale.DefaultBase
		known := false
		if h, ok := byID[id]; ok {
			base = h.BaseLevel
			known = true
		} else {
			logging.From(ctx).Warn("hazard not in catalog, using default base level",
				"hazard_id", id, "default_base", base)
		}

		adjusted := uc.engine.Apply(ctx, id, base, characteristics, rules)
		results = append(results, model.RiskResult{
			HazardID:      id,
			BaseLevel:     uc.scale.Clamp(base),
			AdjustedLevel: adjusted.Level,
			Reasoning:     adjusted.Rationale,
			KnownHazard:   known,
		})
	}

	return results, nil
}

// RecommendStrategies matches the catalog against the computed risk results
// and partitions the matches into auto-selected and optional sets.
func (uc *AssessmentUseCase) RecommendStrategies(ctx context.Context, results []model.RiskResult) (*model.Recommendation, error) {
	strategies, err := uc.catalog.Strategies(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to recommend strategies")
	}

	hazards := make([]types.HazardID, 0, len(results))
	for _, r := range results {
		hazards = append(hazards, r.HazardID)
	}

	matched := matcher.Match(ctx, hazards, strategies, matcher.OrderByTier)
	return matcher.Partition(matched), nil
}

// loadCharacteristics merges the business-type profile with the location
// profile; location values win on conflict. Missing profiles degrade to an
// empty characteristic set rather than failing the assessment.
func (uc *AssessmentUseCase) loadCharacteristics(ctx context.Context, businessTypeID, locationID string) (types.Characteristics, error) {
	merged := types.Characteristics{}

	business, err := uc.catalog.Profile(ctx, businessTypeID)
	if err != nil {
		return nil, err
	}
	if business != nil {
		merged = merged.Merge(business.Characteristics)
	} else if businessTypeID != "" {
		logging.From(ctx).Warn("business type profile not found", "business_type_id", businessTypeID)
	}

	location, err := uc.catalog.Profile(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if location != nil {
		merged = merged.Merge(location.Characteristics)
	} else if locationID != "" {
		logging.From(ctx).Warn("location profile not found", "location_id", locationID)
	}

	return merged, nil
}

// dedupeCanonical maps inputs to canonical ids and drops duplicates while
// preserving first-occurrence order. Callers may pass the same hazard under
// different spellings or literally twice.
func dedupeCanonical(hazardIDs []string) []types.HazardID {
	seen := make(map[types.HazardID]struct{}, len(hazardIDs))
	out := make([]types.HazardID, 0, len(hazardIDs))
	for _, raw := range hazardIDs {
		id := types.CanonicalHazardID(raw)
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
