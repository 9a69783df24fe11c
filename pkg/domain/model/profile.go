package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/resilience-works/continuity/pkg/domain/types"
)

// ProfileKind distinguishes business-type profiles from location profiles
type ProfileKind string

const (
	ProfileBusinessType ProfileKind = "business_type"
	ProfileLocation     ProfileKind = "location"
)

// BusinessProfile carries the characteristics of a business type or a
// location that multiplier rules react to. Boolean attributes use 0/1.
type BusinessProfile struct {
	ID              string
	Kind            ProfileKind
	Name            string
	Characteristics types.Characteristics
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks profile integrity before seeding
func (p *BusinessProfile) Validate() error {
	if p.ID == "" {
		return goerr.New("profile ID is required")
	}
	if p.Kind != ProfileBusinessType && p.Kind != ProfileLocation {
		return goerr.New("invalid profile kind", goerr.V("id", p.ID), goerr.V("kind", p.Kind))
	}
	for k := range p.Characteristics {
		if err := k.Validate(); err != nil {
			return goerr.Wrap(err, "invalid characteristic key", goerr.V("id", p.ID))
		}
	}
	return nil
}
