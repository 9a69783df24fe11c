package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// StepPhase places an action step relative to the incident timeline
type StepPhase string

const (
	PhaseBefore StepPhase = "before"
	PhaseDuring StepPhase = "during"
	PhaseAfter  StepPhase = "after"
)

// Validate checks if the StepPhase is a known value
func (p StepPhase) Validate() error {
	switch p {
	case PhaseBefore, PhaseDuring, PhaseAfter:
		return nil
	}
	return goerr.New("invalid step phase", goerr.V("phase", p))
}

// String returns the string representation of StepPhase
func (p StepPhase) String() string {
	return string(p)
}
