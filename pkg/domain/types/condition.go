package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// ConditionType identifies how a multiplier rule tests the supplied
// business/location characteristic value.
type ConditionType string

const (
	// ConditionThreshold fires when value >= threshold
	ConditionThreshold ConditionType = "threshold"
	// ConditionRange fires when min <= value <= max
	ConditionRange ConditionType = "range"
	// ConditionBoolean fires when the value is truthy (non-zero)
	ConditionBoolean ConditionType = "boolean"
)

// Validate checks if the ConditionType is a known value
func (c ConditionType) Validate() error {
	switch c {
	case ConditionThreshold, ConditionRange, ConditionBoolean:
		return nil
	}
	return goerr.New("invalid condition type", goerr.V("condition_type", c))
}

// String returns the string representation of ConditionType
func (c ConditionType) String() string {
	return string(c)
}
