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

type profileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*model.BusinessProfile
}

func newProfileRepository() *profileRepository {
	return &profileRepository{
		profiles: make(map[string]*model.BusinessProfile),
	}
}

func (r *profileRepository) Put(ctx context.Context, profile *model.BusinessProfile) error {
	if profile.ID == "" {
		return goerr.New("profile ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := copyProfile(profile)
	if existing, ok := r.profiles[profile.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	r.profiles[stored.ID] = stored
	return nil
}

func (r *profileRepository) Get(ctx context.Context, id string) (*model.BusinessProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("id", id))
	}
	return copyProfile(profile), nil
}

func (r *profileRepository) List(ctx context.Context) ([]*model.BusinessProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]*model.BusinessProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		profiles = append(profiles, copyProfile(p))
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].ID < profiles[j].ID
	})
	return profiles, nil
}

func (r *profileRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[id]; !ok {
		return goerr.Wrap(ErrNotFound, "profile not found", goerr.V("id", id))
	}
	delete(r.profiles, id)
	return nil
}

func copyProfile(p *model.BusinessProfile) *model.BusinessProfile {
	c := *p
	c.Characteristics = make(types.Characteristics, len(p.Characteristics))
	for k, v := range p.Characteristics {
		c.Characteristics[k] = v
	}
	return &c
}
