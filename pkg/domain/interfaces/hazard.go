package interfaces

import (
	"context"

	"github.com/resilience-works/continuity/pkg/domain/model"
	"github.com/resilience-works/continuity/pkg/domain/types"
)

type HazardRepository interface {
	// Put creates or replaces a hazard catalog entry
	Put(ctx context.Context, hazard *model.Hazard) error

	// Get retrieves a hazard by canonical ID
	Get(ctx context.Context, id types.HazardID) (*model.Hazard, error)

	// List retrieves all hazard catalog entries
	List(ctx context.Context) ([]*model.Hazard, error)

	// Delete removes a hazard by canonical ID
	Delete(ctx context.Context, id types.HazardID) error
}
