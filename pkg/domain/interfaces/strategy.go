package interfaces

import (
	"context"

	"github.com/resilience-works/continuity/pkg/domain/model"
	"github.com/resilience-works/continuity/pkg/domain/types"
)

type StrategyRepository interface {
	// Put creates or replaces a strategy including its action steps
	Put(ctx context.Context, strategy *model.Strategy) error

	// Get retrieves a strategy by ID
	Get(ctx context.Context, id types.StrategyID) (*model.Strategy, error)

	// List retrieves all strategies with their action steps
	List(ctx context.Context) ([]*model.Strategy, error)

	// Delete removes a strategy by ID
	Delete(ctx context.Context, id types.StrategyID) error
}
