package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// StrategyID represents a unique identifier for a mitigation strategy
type StrategyID string

// Validate checks if the StrategyID is valid
func (s StrategyID) Validate() error {
	if s == "" {
		return goerr.New("strategy ID cannot be empty")
	}
	if !hazardIDPattern.MatchString(string(s)) {
		return goerr.New("strategy ID must be lowercase snake_case", goerr.V("id", s))
	}
	return nil
}

// String returns the string representation of StrategyID
func (s StrategyID) String() string {
	return string(s)
}
