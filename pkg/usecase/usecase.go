package usecase

import (
	"github.com/resilience-works/continuity/pkg/domain/interfaces"
	"github.com/resilience-works/continuity/pkg/domain/model/config"
	"github.com/resilience-works/continuity/pkg/service/cache"
	"github.com/resilience-works/continuity/pkg/service/catalog"
	"github.com/resilience-works/continuity/pkg/service/multiplier"
)

// UseCases bundles the engine's public operations
type UseCases struct {
	repo       interfaces.Repository
	scale      *config.Scale
	Assessment *AssessmentUseCase
	Cache      *CacheUseCase
	Catalog    *catalog.Service
}

type Option func(*UseCases)

// WithScale overrides the default risk level scale
func WithScale(scale *config.Scale) Option {
	return func(uc *UseCases) {
		uc.scale = scale
	}
}

func New(repo interfaces.Repository, c *cache.Cache, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:  repo,
		scale: config.DefaultScale(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	cat := catalog.New(repo, c)
	engine := multiplier.New(uc.scale)

	uc.Assessment = NewAssessmentUseCase(cat, engine, uc.scale)
	uc.Cache = NewCacheUseCase(cat)
	uc.Catalog = cat

	return uc
}
