package interfaces

import (
	"context"

	"github.com/resilience-works/continuity/pkg/domain/model"
)

type RuleRepository interface {
	// Put creates or replaces a multiplier rule. An empty rule ID is
	// assigned by the repository.
	Put(ctx context.Context, rule *model.MultiplierRule) (*model.MultiplierRule, error)

	// Get retrieves a rule by ID
	Get(ctx context.Context, id string) (*model.MultiplierRule, error)

	// List retrieves all multiplier rules, active or not
	List(ctx context.Context) ([]*model.MultiplierRule, error)

	// Delete removes a rule by ID
	Delete(ctx context.Context, id string) error
}
