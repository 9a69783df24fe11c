package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/resilience-works/continuity/pkg/domain/types"
)

// Hazard is one entry of the hazard catalog. The catalog is administrator
// seeded and read-only to the engine.
type Hazard struct {
	ID        types.HazardID
	Name      LocalizedText
	Category  types.HazardCategory
	BaseLevel types.RiskLevel
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks catalog entry integrity before seeding
func (h *Hazard) Validate() error {
	if err := h.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid hazard ID")
	}
	if err := h.Category.Validate(); err != nil {
		return goerr.Wrap(err, "invalid hazard category", goerr.V("id", h.ID))
	}
	if !h.BaseLevel.Valid() {
		return goerr.New("hazard base level outside scale",
			goerr.V("id", h.ID), goerr.V("base_level", h.BaseLevel))
	}
	return nil
}
