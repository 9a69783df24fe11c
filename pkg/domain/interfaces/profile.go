package interfaces

import (
	"context"

	"github.com/resilience-works/continuity/pkg/domain/model"
)

type ProfileRepository interface {
	// Put creates or replaces a business/location profile
	Put(ctx context.Context, profile *model.BusinessProfile) error

	// Get retrieves a profile by ID
	Get(ctx context.Context, id string) (*model.BusinessProfile, error)

	// List retrieves all profiles
	List(ctx context.Context) ([]*model.BusinessProfile, error)

	// Delete removes a profile by ID
	Delete(ctx context.Context, id string) error
}
