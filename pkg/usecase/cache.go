package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/resilience-works/continuity/pkg/service/catalog"
	"github.com/resilience-works/continuity/pkg/utils/logging"
)

// CacheUseCase exposes cache invalidation and forced refresh to the layers
// that observe administrative writes.
type CacheUseCase struct {
	catalog *catalog.Service
}

func NewCacheUseCase(cat *catalog.Service) *CacheUseCase {
	return &CacheUseCase{catalog: cat}
}

// Invalidate evicts the named scope (or everything when scope is empty) and
// returns the number of evicted entries. The next read repopulates from the
// store, so an administrative write becomes visible immediately.
func (uc *CacheUseCase) Invalidate(ctx context.Context, scope string) (int, error) {
	n, err := uc.catalog.Invalidate(scope)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to invalidate cache")
	}
	logging.From(ctx).Info("cache invalidated", "scope", scope, "evicted", n)
	return n, nil
}

// Refresh evicts the named scope and eagerly reloads it from the store,
// returning the number of records reloaded.
func (uc *CacheUseCase) Refresh(ctx context.Context, scope string) (int, error) {
	n, err := uc.catalog.Refresh(ctx, scope)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to refresh cache")
	}
	logging.From(ctx).Info("cache refreshed", "scope", scope, "reloaded", n)
	return n, nil
}

// Warm preloads every scope. Used at startup; failures are logged by the
// caller and do not prevent serving (the cache is read-through).
func (uc *CacheUseCase) Warm(ctx context.Context) error {
	_, err := uc.catalog.Refresh(ctx, "")
	return err
}
