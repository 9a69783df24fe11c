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

type hazardRepository struct {
	mu      sync.RWMutex
	hazards map[types.HazardID]*model.Hazard
}

func newHazardRepository() *hazardRepository {
	return &hazardRepository{
		hazards: make(map[types.HazardID]*model.Hazard),
	}
}

func (r *hazardRepository) Put(ctx context.Context, hazard *model.Hazard) error {
	if err := hazard.ID.Validate(); err != nil {
		return goerr.Wrap(err, "cannot store hazard")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := copyHazard(hazard)
	if existing, ok := r.hazards[hazard.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	r.hazards[stored.ID] = stored
	return nil
}

func (r *hazardRepository) Get(ctx context.Context, id types.HazardID) (*model.Hazard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hazard, ok := r.hazards[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "hazard not found", goerr.V("id", id))
	}
	return copyHazard(hazard), nil
}

func (r *hazardRepository) List(ctx context.Context) ([]*model.Hazard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hazards := make([]*model.Hazard, 0, len(r.hazards))
	for _, h := range r.hazards {
		hazards = append(hazards, copyHazard(h))
	}
	sort.Slice(hazards, func(i, j int) bool {
		return hazards[i].ID < hazards[j].ID
	})
	return hazards, nil
}

func (r *hazardRepository) Delete(ctx context.Context, id types.HazardID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.hazards[id]; !ok {
		return goerr.Wrap(ErrNotFound, "hazard not found", goerr.V("id", id))
	}
	delete(r.hazards, id)
	return nil
}

// copyHazard returns a deep copy so callers never share mutable state with
// the store
func copyHazard(h *model.Hazard) *model.Hazard {
	c := *h
	c.Name = make(model.LocalizedText, len(h.Name))
	for k, v := range h.Name {
		c.Name[k] = v
	}
	return &c
}
