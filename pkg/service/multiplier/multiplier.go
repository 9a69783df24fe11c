package multiplier

import (
	"context"
	"fmt"
	"sort"

	"github.com/resilience-works/continuity/pkg/domain/model"
	"github.com/resilience-works/continuity/pkg/domain/model/config"
	"github.com/resilience-works/continuity/pkg/domain/types"
	"github.com/resilience-works/continuity/pkg/utils/logging"
)

// Engine applies the ordered set of conditional multiplier rules to a base
// risk level. It is pure computation: rules and characteristics come from
// the caller, nothing is loaded here.
type Engine struct {
	scale *config.Scale
}

func New(scale *config.Scale) *Engine {
	if scale == nil {
		scale = config.DefaultScale()
	}
	return &Engine{scale: scale}
}

// Result is the adjusted level plus the trace of which rules fired
type Result struct {
	Level     types.RiskLevel
	Rationale []string
}

// Apply computes the adjusted level for one hazard. Rules are filtered to
// active rules targeting the hazard, deduplicated so that at most one rule
// per characteristic type can fire (lowest Priority wins; duplicate rules
// per characteristic are a recurring data issue and must never double-count
// the same business attribute), sorted by ascending priority, and applied
// sequentially with the running level clamped to the scale after every step.
func (e *Engine) Apply(ctx context.Context, hazardID types.HazardID, base types.RiskLevel, characteristics types.Characteristics, rules []*model.MultiplierRule) Result {
	applicable := e.selectRules(ctx, hazardID, rules)

	level := e.scale.Clamp(base)
	rationale := make([]string, 0, len(applicable))

	for _, rule := range applicable {
		value, present := characteristics[rule.CharacteristicType]
		if !rule.Fires(value, present) {
			continue
		}

		level = e.scale.Clamp(types.RiskLevel(float64(level) * rule.Factor))
		rationale = append(rationale, fmt.Sprintf("%s: %s=%.2f, factor %.2f applied",
			rule.Name, rule.CharacteristicType, value, rule.Factor))
	}

	return Result{Level: level, Rationale: rationale}
}

// selectRules returns the active rules targeting hazardID, at most one per
// characteristic type, ordered by ascending priority (name breaks ties for a
// stable order).
func (e *Engine) selectRules(ctx context.Context, hazardID types.HazardID, rules []*model.MultiplierRule) []*model.MultiplierRule {
	byCharacteristic := make(map[types.CharacteristicType]*model.MultiplierRule)
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}

		ok, err := rule.AppliesTo(hazardID)
		if err != nil {
			logging.From(ctx).Warn("skipping rule with malformed hazard list",
				"rule_id", rule.ID, "rule_name", rule.Name, "error", err.Error())
			continue
		}
		if !ok {
			continue
		}

		current, exists := byCharacteristic[rule.CharacteristicType]
		if !exists || rule.Priority < current.Priority {
			byCharacteristic[rule.CharacteristicType] = rule
		}
	}

	selected := make([]*model.MultiplierRule, 0, len(byCharacteristic))
	for _, rule := range byCharacteristic {
		selected = append(selected, rule)
	}
	sort.Slice(selected, func(i, j int) bool {
		if selected[i].Priority != selected[j].Priority {
			return selected[i].Priority < selected[j].Priority
		}
		return selected[i].Name < selected[j].Name
	})
	return selected
}
