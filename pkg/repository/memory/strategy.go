package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/resilience-works/continuity/pkg/domain/model"
	"github.com/resilience-works/continuity/pkg/domain/types"
)

type strategyRepository struct {
	mu         sync.RWMutex
	strategies map[types.StrategyID]*model.Strategy
}

func newStrategyRepository() *strategyRepository {
	return &strategyRepository{
		strategies: make(map[types.StrategyID]*model.Strategy),
	}
}

func (r *strategyRepository) Put(ctx context.Context, strategy *model.Strategy) error {
	if err := strategy.ID.Validate(); err != nil {
		return goerr.Wrap(err, "cannot store strategy")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := copyStrategy(strategy)
	if existing, ok := r.strategies[strategy.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	r.strategies[stored.ID] = stored
	return nil
}

func (r *strategyRepository) Get(ctx context.Context, id types.StrategyID) (*model.Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	strategy, ok := r.strategies[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "strategy not found", goerr.V("id", id))
	}
	return copyStrategy(strategy), nil
}

func (r *strategyRepository) List(ctx context.Context) ([]*model.Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	strategies := make([]*model.Strategy, 0, len(r.strategies))
	for _, s := range r.strategies {
		strategies = append(strategies, copyStrategy(s))
	}
	sort.Slice(strategies, func(i, j int) bool {
		return strategies[i].ID < strategies[j].ID
	})
	return strategies, nil
}

func (r *strategyRepository) Delete(ctx context.Context, id types.StrategyID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.strategies[id]; !ok {
		return goerr.Wrap(ErrNotFound, "strategy not found", goerr.V("id", id))
	}
	delete(r.strategies, id)
	return nil
}

func copyStrategy(s *model.Strategy) *model.Strategy {
	c := *s
	c.Name = make(model.LocalizedText, len(s.Name))
	for k, v := range s.Name {
		c.Name[k] = v
	}
	c.SMETitle = make(model.LocalizedText, len(s.SMETitle))
	for k, v := range s.SMETitle {
		c.SMETitle[k] = v
	}
	c.Steps = make([]model.ActionStep, len(s.Steps))
	for i, st := range s.Steps {
		stc := st
		stc.Description = make(model.LocalizedText, len(st.Description))
		for k, v := range st.Description {
			stc.Description[k] = v
		}
		c.Steps[i] = stc
	}
	return &c
}
