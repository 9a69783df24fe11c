package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// CharacteristicType is the key of a business/location attribute a multiplier
// rule reacts to, e.g. "tourism_share" or "perishable_goods". Boolean
// characteristics are represented as 0/1 values.
type CharacteristicType string

// Validate checks if the CharacteristicType is a well-formed key
func (c CharacteristicType) Validate() error {
	if c == "" {
		return goerr.New("characteristic type cannot be empty")
	}
	if !hazardIDPattern.MatchString(string(c)) {
		return goerr.New("characteristic type must be lowercase snake_case", goerr.V("characteristic_type", c))
	}
	return nil
}

// String returns the string representation of CharacteristicType
func (c CharacteristicType) String() string {
	return string(c)
}

// Characteristics maps characteristic types to numeric values describing a
// business or location. Boolean attributes use 0 (false) / non-zero (true).
type Characteristics map[CharacteristicType]float64

// Merge overlays other on top of c, returning a new map. Values in other win
// on conflict (location characteristics override business-type defaults).
func (c Characteristics) Merge(other Characteristics) Characteristics {
	merged := make(Characteristics, len(c)+len(other))
	for k, v := range c {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}
