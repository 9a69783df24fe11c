package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/resilience-works/continuity/pkg/domain/types"
)

// MultiplierRule is a conditional adjustment that scales a hazard's base risk
// level based on a business or location characteristic. Rules are stored by
// administrators; the engine only reads them.
type MultiplierRule struct {
	ID                 string
	Name               string
	CharacteristicType types.CharacteristicType
	ConditionType      types.ConditionType
	Threshold          *float64
	Min                *float64
	Max                *float64
	Factor             float64
	// ApplicableHazards is the stored JSON-encoded list of canonical hazard ids
	ApplicableHazards string
	// Priority orders application; lower applies first
	Priority  int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks rule integrity before seeding
func (r *MultiplierRule) Validate() error {
	if r.Name == "" {
		return goerr.New("rule name is required", goerr.V("id", r.ID))
	}
	if err := r.CharacteristicType.Validate(); err != nil {
		return goerr.Wrap(err, "invalid characteristic type", goerr.V("id", r.ID))
	}
	if err := r.ConditionType.Validate(); err != nil {
		return goerr.Wrap(err, "invalid condition type", goerr.V("id", r.ID))
	}
	if r.Factor <= 0 {
		return goerr.New("multiplier factor must be positive",
			goerr.V("id", r.ID), goerr.V("factor", r.Factor))
	}
	switch r.ConditionType {
	case types.ConditionThreshold:
		if r.Threshold == nil {
			return goerr.New("threshold condition requires a threshold value", goerr.V("id", r.ID))
		}
	case types.ConditionRange:
		if r.Min == nil || r.Max == nil {
			return goerr.New("range condition requires min and max values", goerr.V("id", r.ID))
		}
		if *r.Min > *r.Max {
			return goerr.New("range min exceeds max",
				goerr.V("id", r.ID), goerr.V("min", *r.Min), goerr.V("max", *r.Max))
		}
	}
	return nil
}

// AppliesTo reports whether the rule targets the given canonical hazard.
// A malformed hazard list is treated as applying to nothing; the error is
// returned so the caller can log it.
func (r *MultiplierRule) AppliesTo(hazardID types.HazardID) (bool, error) {
	ids, err := DecodeStringList(r.ApplicableHazards)
	if err != nil {
		return false, goerr.Wrap(err, "malformed applicable hazards",
			goerr.V("rule_id", r.ID), goerr.V("rule_name", r.Name))
	}
	for _, raw := range ids {
		if types.CanonicalHazardID(raw) == hazardID {
			return true, nil
		}
	}
	return false, nil
}

// Fires evaluates the rule's condition against the supplied characteristic
// value. A characteristic absent from the profile never fires.
func (r *MultiplierRule) Fires(value float64, present bool) bool {
	if !present {
		return false
	}
	switch r.ConditionType {
	case types.ConditionThreshold:
		return r.Threshold != nil && value >= *r.Threshold
	case types.ConditionRange:
		return r.Min != nil && r.Max != nil && value >= *r.Min && value <= *r.Max
	case types.ConditionBoolean:
		return value != 0
	default:
		return false
	}
}
