package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// HazardCategory classifies a hazard catalog entry
type HazardCategory string

const (
	CategoryNatural       HazardCategory = "natural"
	CategoryTechnological HazardCategory = "technological"
	CategoryEconomic      HazardCategory = "economic"
	CategorySocial        HazardCategory = "social"
)

// Validate checks if the HazardCategory is a known value
func (c HazardCategory) Validate() error {
	switch c {
	case CategoryNatural, CategoryTechnological, CategoryEconomic, CategorySocial:
		return nil
	}
	return goerr.New("invalid hazard category", goerr.V("category", c))
}

// String returns the string representation of HazardCategory
func (c HazardCategory) String() string {
	return string(c)
}
