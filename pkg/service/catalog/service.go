package catalog

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/resilience-works/continuity/pkg/domain/interfaces"
	"github.com/resilience-works/continuity/pkg/domain/model"
	"github.com/resilience-works/continuity/pkg/service/cache"
	"golang.org/x/sync/errgroup"
)

// Cache scopes. Scope names double as key prefixes so that invalidating one
// scope never evicts another's entries.
const (
	ScopeHazards    = "hazards"
	ScopeRules      = "rules"
	ScopeStrategies = "strategies"
	ScopeProfiles   = "profiles"
)

const (
	keyHazards    = "hazards:all"
	keyRules      = "rules:all"
	keyStrategies = "strategies:all"
	keyProfiles   = "profiles:all"
)

// ErrUnknownScope is returned for a refresh/invalidate scope the service
// does not manage
var ErrUnknownScope = goerr.New("unknown cache scope")

// Service is the read-through cached loader for the relatively static
// catalog, rule, strategy, and profile lists that feed the pure computation
// stages. Per-request risk results are never cached here. Returned slices
// are shared snapshots; callers must not mutate them.
type Service struct {
	repo  interfaces.Repository
	cache *cache.Cache
}

func New(repo interfaces.Repository, c *cache.Cache) *Service {
	return &Service{
		repo:  repo,
		cache: c,
	}
}

// Hazards returns the hazard catalog, loading through the cache
func (s *Service) Hazards(ctx context.Context) ([]*model.Hazard, error) {
	if v, ok := s.cache.Get(keyHazards); ok {
		return v.([]*model.Hazard), nil
	}
	list, err := s.repo.Hazard().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load hazard catalog")
	}
	s.cache.Set(keyHazards, list)
	return list, nil
}

// Rules returns all multiplier rules, loading through the cache
func (s *Service) Rules(ctx context.Context) ([]*model.MultiplierRule, error) {
	if v, ok := s.cache.Get(keyRules); ok {
		return v.([]*model.MultiplierRule), nil
	}
	list, err := s.repo.Rule().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load multiplier rules")
	}
	s.cache.Set(keyRules, list)
	return list, nil
}

// Strategies returns the strategy catalog, loading through the cache
func (s *Service) Strategies(ctx context.Context) ([]*model.Strategy, error) {
	if v, ok := s.cache.Get(keyStrategies); ok {
		return v.([]*model.Strategy), nil
	}
	list, err := s.repo.Strategy().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load strategy catalog")
	}
	s.cache.Set(keyStrategies, list)
	return list, nil
}

// Profiles returns all business/location profiles, loading through the cache
func (s *Service) Profiles(ctx context.Context) ([]*model.BusinessProfile, error) {
	if v, ok := s.cache.Get(keyProfiles); ok {
		return v.([]*model.BusinessProfile), nil
	}
	list, err := s.repo.Profile().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load business profiles")
	}
	s.cache.Set(keyProfiles, list)
	return list, nil
}

// Profile returns one profile by ID, or nil when the store has no record for
// it. The catalog may lag behind caller input; a missing profile is not an
// error.
func (s *Service) Profile(ctx context.Context, id string) (*model.BusinessProfile, error) {
	if id == "" {
		return nil, nil
	}

	key := ScopeProfiles + ":id:" + id
	if v, ok := s.cache.Get(key); ok {
		return v.(*model.BusinessProfile), nil
	}

	profile, err := s.repo.Profile().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			s.cache.Set(key, (*model.BusinessProfile)(nil))
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to load business profile", goerr.V("id", id))
	}

	s.cache.Set(key, profile)
	return profile, nil
}

// Invalidate evicts the named scope, or everything when scope is empty, and
// returns the number of evicted entries.
func (s *Service) Invalidate(scope string) (int, error) {
	if scope == "" {
		return s.cache.Invalidate(""), nil
	}
	switch scope {
	case ScopeHazards, ScopeRules, ScopeStrategies, ScopeProfiles:
		return s.cache.Invalidate(scope), nil
	default:
		return 0, goerr.Wrap(ErrUnknownScope, "cannot invalidate", goerr.V("scope", scope))
	}
}

// Refresh evicts the named scope (or all scopes when empty) and eagerly
// reloads from the store, returning the number of records reloaded.
func (s *Service) Refresh(ctx context.Context, scope string) (int, error) {
	if _, err := s.Invalidate(scope); err != nil {
		return 0, err
	}

	switch scope {
	case ScopeHazards:
		list, err := s.Hazards(ctx)
		return len(list), err
	case ScopeRules:
		list, err := s.Rules(ctx)
		return len(list), err
	case ScopeStrategies:
		list, err := s.Strategies(ctx)
		return len(list), err
	case ScopeProfiles:
		list, err := s.Profiles(ctx)
		return len(list), err
	}

	// Full refresh reloads every scope concurrently
	var counts [4]int
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		list, err := s.Hazards(egCtx)
		counts[0] = len(list)
		return err
	})
	eg.Go(func() error {
		list, err := s.Rules(egCtx)
		counts[1] = len(list)
		return err
	})
	eg.Go(func() error {
		list, err := s.Strategies(egCtx)
		counts[2] = len(list)
		return err
	})
	eg.Go(func() error {
		list, err := s.Profiles(egCtx)
		counts[3] = len(list)
		return err
	})
	if err := eg.Wait(); err != nil {
		return 0, goerr.Wrap(err, "failed to refresh catalog cache")
	}

	return counts[0] + counts[1] + counts[2] + counts[3], nil
}
