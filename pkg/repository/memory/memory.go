package memory

import (
	"github.com/resilience-works/continuity/pkg/domain/interfaces"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = interfaces.ErrNotFound

// Memory is the in-memory repository backend, used for development and tests
type Memory struct {
	hazard   *hazardRepository
	rule     *ruleRepository
	strategy *strategyRepository
	profile  *profileRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		hazard:   newHazardRepository(),
		rule:     newRuleRepository(),
		strategy: newStrategyRepository(),
		profile:  newProfileRepository(),
	}
}

func (m *Memory) Hazard() interfaces.HazardRepository {
	return m.hazard
}

func (m *Memory) Rule() interfaces.RuleRepository {
	return m.rule
}

func (m *Memory) Strategy() interfaces.StrategyRepository {
	return m.strategy
}

func (m *Memory) Profile() interfaces.ProfileRepository {
	return m.profile
}

func (m *Memory) Close() error {
	return nil
}
