package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/resilience-works/continuity/pkg/domain/model"
	"github.com/resilience-works/continuity/pkg/domain/types"
)

// Seed is catalog seed data loaded from a TOML file: hazards, multiplier
// rules, strategies and business profiles to load into a backend.
type Seed struct {
	Hazards    []SeedHazard   `toml:"hazard"`
	Rules      []SeedRule     `toml:"rule"`
	Strategies []SeedStrategy `toml:"strategy"`
	Profiles   []SeedProfile  `toml:"profile"`
}

type SeedHazard struct {
	ID        string            `toml:"id"`
	Name      map[string]string `toml:"name"`
	Category  string            `toml:"category"`
	BaseLevel float64           `toml:"base_level"`
	Active    bool              `toml:"active"`
}

type SeedRule struct {
	ID                 string            `toml:"id"`
	Name               string            `toml:"name"`
	CharacteristicType string            `toml:"characteristic_type"`
	Condition          string            `toml:"condition"`
	Threshold          *float64          `toml:"threshold"`
	Min                *float64          `toml:"min"`
	Max                *float64          `toml:"max"`
	Factor             float64           `toml:"factor"`
	ApplicableHazards  string            `toml:"applicable_hazards"`
	Priority           int               `toml:"priority"`
	Active             bool              `toml:"active"`
}

type SeedStrategy struct {
	ID              string            `toml:"id"`
	Name            map[string]string `toml:"name"`
	SMETitle        map[string]string `toml:"sme_title"`
	PrimaryRisk     string            `toml:"primary_risk"`
	SecondaryRisks  string            `toml:"secondary_risks"`
	ApplicableRisks string            `toml:"applicable_risks"`
	Tier            string            `toml:"tier"`
	Type            string            `toml:"type"`
	CostLevel       int               `toml:"cost_level"`
	EffortLevel     int               `toml:"effort_level"`
	Steps           []SeedStep        `toml:"step"`
	Active          bool              `toml:"active"`
}

type SeedStep struct {
	ID          string            `toml:"id"`
	Phase       string            `toml:"phase"`
	Description map[string]string `toml:"description"`
	SortOrder   int               `toml:"sort_order"`
	Active      bool              `toml:"active"`
}

type SeedProfile struct {
	ID              string             `toml:"id"`
	Kind            string             `toml:"kind"`
	Name            string             `toml:"name"`
	Characteristics map[string]float64 `toml:"characteristics"`
}

// LoadSeed reads and parses a seed file
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "cannot load seed file", goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read seed file", goerr.V("path", path))
	}

	var seed Seed
	if err := toml.Unmarshal(data, &seed); err != nil {
		return nil, goerr.Wrap(err, "failed to parse seed file", goerr.V("path", path))
	}

	if err := seed.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid seed file", goerr.V("path", path))
	}

	return &seed, nil
}

// Validate converts every record to its domain model and rejects duplicate
// IDs within each section.
func (s *Seed) Validate() error {
	seenHazards := map[string]struct{}{}
	for i, h := range s.Hazards {
		if _, ok := seenHazards[h.ID]; ok {
			return goerr.Wrap(ErrDuplicateID, "duplicate hazard", goerr.V("id", h.ID), goerr.V("index", i))
		}
		seenHazards[h.ID] = struct{}{}
		if err := h.Model().Validate(); err != nil {
			return goerr.Wrap(err, "invalid hazard", goerr.V("index", i))
		}
	}

	seenRules := map[string]struct{}{}
	for i, r := range s.Rules {
		if r.ID != "" {
			if _, ok := seenRules[r.ID]; ok {
				return goerr.Wrap(ErrDuplicateID, "duplicate rule", goerr.V("id", r.ID), goerr.V("index", i))
			}
			seenRules[r.ID] = struct{}{}
		}
		if err := r.Model().Validate(); err != nil {
			return goerr.Wrap(err, "invalid rule", goerr.V("index", i))
		}
	}

	seenStrategies := map[string]struct{}{}
	for i, st := range s.Strategies {
		if _, ok := seenStrategies[st.ID]; ok {
			return goerr.Wrap(ErrDuplicateID, "duplicate strategy", goerr.V("id", st.ID), goerr.V("index", i))
		}
		seenStrategies[st.ID] = struct{}{}
		if err := st.Model().Validate(); err != nil {
			return goerr.Wrap(err, "invalid strategy", goerr.V("index", i))
		}
	}

	seenProfiles := map[string]struct{}{}
	for i, p := range s.Profiles {
		if _, ok := seenProfiles[p.ID]; ok {
			return goerr.Wrap(ErrDuplicateID, "duplicate profile", goerr.V("id", p.ID), goerr.V("index", i))
		}
		seenProfiles[p.ID] = struct{}{}
		if err := p.Model().Validate(); err != nil {
			return goerr.Wrap(err, "invalid profile", goerr.V("index", i))
		}
	}

	return nil
}

func (h SeedHazard) Model() *model.Hazard {
	return &model.Hazard{
		ID:        types.CanonicalHazardID(h.ID),
		Name:      model.LocalizedText(h.Name),
		Category:  types.HazardCategory(h.Category),
		BaseLevel: types.RiskLevel(h.BaseLevel),
		IsActive:  h.Active,
	}
}

func (r SeedRule) Model() *model.MultiplierRule {
	return &model.MultiplierRule{
		ID:                 r.ID,
		Name:               r.Name,
		CharacteristicType: types.CharacteristicType(r.CharacteristicType),
		ConditionType:      types.ConditionType(r.Condition),
		Threshold:          r.Threshold,
		Min:                r.Min,
		Max:                r.Max,
		Factor:             r.Factor,
		ApplicableHazards:  r.ApplicableHazards,
		Priority:           r.Priority,
		IsActive:           r.Active,
	}
}

func (s SeedStrategy) Model() *model.Strategy {
	steps := make([]model.ActionStep, len(s.Steps))
	for i, st := range s.Steps {
		steps[i] = model.ActionStep{
			ID:          st.ID,
			Phase:       types.StepPhase(st.Phase),
			Description: model.LocalizedText(st.Description),
			SortOrder:   st.SortOrder,
			IsActive:    st.Active,
		}
	}
	return &model.Strategy{
		ID:              types.StrategyID(s.ID),
		Name:            model.LocalizedText(s.Name),
		SMETitle:        model.LocalizedText(s.SMETitle),
		PrimaryRisk:     types.CanonicalHazardID(s.PrimaryRisk),
		SecondaryRisks:  s.SecondaryRisks,
		ApplicableRisks: s.ApplicableRisks,
		Tier:            types.SelectionTier(s.Tier),
		Type:            model.StrategyType(s.Type),
		CostLevel:       s.CostLevel,
		EffortLevel:     s.EffortLevel,
		Steps:           steps,
		IsActive:        s.Active,
	}
}

func (p SeedProfile) Model() *model.BusinessProfile {
	characteristics := make(types.Characteristics, len(p.Characteristics))
	for k, v := range p.Characteristics {
		characteristics[types.CharacteristicType(k)] = v
	}
	return &model.BusinessProfile{
		ID:              p.ID,
		Kind:            model.ProfileKind(p.Kind),
		Name:            p.Name,
		Characteristics: characteristics,
	}
}
