package multiplier_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/resilience-works/continuity/pkg/domain/model"
	"github.com/resilience-works/continuity/pkg/domain/model/config"
	"github.com/resilience-works/continuity/pkg/domain/types"
	"github.com/resilience-works/continuity/pkg/service/multiplier"
)

func ptr(v float64) *float64 { return &v }

func thresholdRule(id, name string, characteristic types.CharacteristicType, threshold, factor float64, priority int) *model.MultiplierRule {
	return &model.MultiplierRule{
		ID:                 id,
		Name:               name,
		CharacteristicType: characteristic,
		ConditionType:      types.ConditionThreshold,
		Threshold:          ptr(threshold),
		Factor:             factor,
		ApplicableHazards:  `["hurricane"]`,
		Priority:           priority,
		IsActive:           true,
	}
}

func TestApplyFiresMatchingRules(t *testing.T) {
	engine := multiplier.New(nil)
	ctx := context.Background()

	rules := []*model.MultiplierRule{
		thresholdRule("r1", "Tourism dependency", "tourism_share", 0.3, 1.5, 10),
		thresholdRule("r2", "Coastal exposure", "coastal_exposure", 0.5, 2.0, 20),
	}
	chars := types.Characteristics{"tourism_share": 0.4, "coastal_exposure": 0.2}

	res := engine.Apply(ctx, "hurricane", 4.0, chars, rules)

	// only tourism fires: 4.0 * 1.5 = 6.0
	gt.Value(t, res.Level).Equal(types.RiskLevel(6.0))
	gt.Array(t, res.Rationale).Length(1)
	gt.String(t, res.Rationale[0]).Contains("Tourism dependency")
}

func TestApplyClampsAtScaleMax(t *testing.T) {
	engine := multiplier.New(nil)
	ctx := context.Background()

	rules := []*model.MultiplierRule{
		thresholdRule("r1", "A", "a", 0, 3.0, 1),
		thresholdRule("r2", "B", "b", 0, 3.0, 2),
	}
	chars := types.Characteristics{"a": 1, "b": 1}

	res := engine.Apply(ctx, "hurricane", 8.0, chars, rules)
	gt.Value(t, res.Level).Equal(types.MaxRiskLevel)
	// both rules still fire and appear in the trace
	gt.Array(t, res.Rationale).Length(2)
}

func TestApplyDeduplicatesByCharacteristicType(t *testing.T) {
	engine := multiplier.New(nil)
	ctx := context.Background()

	// Two active rules on the same characteristic: only the lowest priority
	// value may fire, never both.
	rules := []*model.MultiplierRule{
		thresholdRule("r1", "Tourism v2", "tourism_share", 0.1, 1.2, 5),
		thresholdRule("r2", "Tourism v1", "tourism_share", 0.1, 3.0, 50),
	}
	chars := types.Characteristics{"tourism_share": 0.9}

	res := engine.Apply(ctx, "hurricane", 4.0, chars, rules)
	gt.Value(t, res.Level).Equal(types.RiskLevel(4.8))
	gt.Array(t, res.Rationale).Length(1)
	gt.String(t, res.Rationale[0]).Contains("Tourism v2")
}

func TestApplySkipsInactiveRules(t *testing.T) {
	engine := multiplier.New(nil)
	ctx := context.Background()

	inactive := thresholdRule("r1", "Tourism", "tourism_share", 0.1, 2.0, 1)
	inactive.IsActive = false

	res := engine.Apply(ctx, "hurricane", 4.0, types.Characteristics{"tourism_share": 0.9}, []*model.MultiplierRule{inactive})
	gt.Value(t, res.Level).Equal(types.RiskLevel(4.0))
	gt.Array(t, res.Rationale).Length(0)
}

func TestApplyIgnoresRulesForOtherHazards(t *testing.T) {
	engine := multiplier.New(nil)
	ctx := context.Background()

	rule := thresholdRule("r1", "Tourism", "tourism_share", 0.1, 2.0, 1)
	rule.ApplicableHazards = `["flood"]`

	res := engine.Apply(ctx, "hurricane", 4.0, types.Characteristics{"tourism_share": 0.9}, []*model.MultiplierRule{rule})
	gt.Value(t, res.Level).Equal(types.RiskLevel(4.0))
}

func TestApplyMalformedHazardListDoesNotAbort(t *testing.T) {
	engine := multiplier.New(nil)
	ctx := context.Background()

	broken := thresholdRule("r1", "Broken", "a", 0, 5.0, 1)
	broken.ApplicableHazards = `[not json`
	good := thresholdRule("r2", "Good", "b", 0, 1.5, 2)

	res := engine.Apply(ctx, "hurricane", 4.0, types.Characteristics{"a": 1, "b": 1},
		[]*model.MultiplierRule{broken, good})
	gt.Value(t, res.Level).Equal(types.RiskLevel(6.0))
	gt.Array(t, res.Rationale).Length(1)
}

func TestApplyPriorityOrderInTrace(t *testing.T) {
	engine := multiplier.New(nil)
	ctx := context.Background()

	rules := []*model.MultiplierRule{
		thresholdRule("r2", "Second", "b", 0, 1.2, 20),
		thresholdRule("r1", "First", "a", 0, 1.2, 10),
	}
	res := engine.Apply(ctx, "hurricane", 2.0, types.Characteristics{"a": 1, "b": 1}, rules)

	gt.Array(t, res.Rationale).Length(2)
	gt.String(t, res.Rationale[0]).Contains("First")
	gt.String(t, res.Rationale[1]).Contains("Second")
}

func TestApplyBaseBelowScaleIsRaisedToMin(t *testing.T) {
	engine := multiplier.New(config.DefaultScale())
	ctx := context.Background()

	res := engine.Apply(ctx, "hurricane", 0.0, nil, nil)
	gt.Value(t, res.Level).Equal(types.MinRiskLevel)
}
