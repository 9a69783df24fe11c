package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/resilience-works/continuity/pkg/domain/model"
)

type ruleRepository struct {
	mu    sync.RWMutex
	rules map[string]*model.MultiplierRule
}

func newRuleRepository() *ruleRepository {
	return &ruleRepository{
		rules: make(map[string]*model.MultiplierRule),
	}
}

func (r *ruleRepository) Put(ctx context.Context, rule *model.MultiplierRule) (*model.MultiplierRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := copyRule(rule)
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if existing, ok := r.rules[stored.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	r.rules[stored.ID] = stored
	return copyRule(stored), nil
}

func (r *ruleRepository) Get(ctx context.Context, id string) (*model.MultiplierRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "rule not found", goerr.V("id", id))
	}
	return copyRule(rule), nil
}

func (r *ruleRepository) List(ctx context.Context) ([]*model.MultiplierRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]*model.MultiplierRule, 0, len(r.rules))
	for _, rule := range r.rules {
		rules = append(rules, copyRule(rule))
	}
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority < rules[j].Priority
		}
		return rules[i].ID < rules[j].ID
	})
	return rules, nil
}

func (r *ruleRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rules[id]; !ok {
		return goerr.Wrap(ErrNotFound, "rule not found", goerr.V("id", id))
	}
	delete(r.rules, id)
	return nil
}

func copyRule(rule *model.MultiplierRule) *model.MultiplierRule {
	c := *rule
	c.Threshold = copyFloat(rule.Threshold)
	c.Min = copyFloat(rule.Min)
	c.Max = copyFloat(rule.Max)
	return &c
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
