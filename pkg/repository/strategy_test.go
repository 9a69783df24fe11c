package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/resilience-works/continuity/pkg/domain/interfaces"
	"github.com/resilience-works/continuity/pkg/domain/model"
	"github.com/resilience-works/continuity/pkg/domain/types"
)

func runStrategyRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put and Get round-trips a strategy with steps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		strategy := &model.Strategy{
			ID:             "backup_power_generator",
			Name:           model.LocalizedText{"en": "Backup power generator"},
			SMETitle:       model.LocalizedText{"en": "Install a backup generator"},
			PrimaryRisk:    "power_outage",
			SecondaryRisks: `["hurricane","winter_storm"]`,
			Tier:           types.TierEssential,
			Type:           model.StrategyRiskSpecific,
			CostLevel:      4,
			EffortLevel:    3,
			Steps: []model.ActionStep{
				{ID: "s1", Phase: types.PhaseBefore, Description: model.LocalizedText{"en": "Size the generator"}, SortOrder: 1, IsActive: true},
				{ID: "s2", Phase: types.PhaseDuring, Description: model.LocalizedText{"en": "Switch to generator power"}, SortOrder: 1, IsActive: true},
			},
			IsActive: true,
		}
		gt.NoError(t, repo.Strategy().Put(ctx, strategy)).Required()

		got, err := repo.Strategy().Get(ctx, "backup_power_generator")
		gt.NoError(t, err).Required()
		gt.Value(t, got.PrimaryRisk).Equal(types.HazardID("power_outage"))
		gt.Value(t, got.Tier).Equal(types.TierEssential)
		gt.Value(t, got.Type).Equal(model.StrategyRiskSpecific)
		gt.Value(t, got.CostLevel).Equal(4)
		gt.Array(t, got.Steps).Length(2)
		gt.Value(t, got.Steps[1].Phase).Equal(types.PhaseDuring)
		gt.Value(t, got.Steps[1].Description["en"]).Equal("Switch to generator power")
	})

	t.Run("Put rejects empty ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.Strategy().Put(ctx, &model.Strategy{
			Tier: types.TierOptional,
			Type: model.StrategyGeneric,
		})
		gt.Value(t, err).NotNil()
	})

	t.Run("Get returns ErrNotFound for missing strategy", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Strategy().Get(ctx, "no_such_strategy")
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("Put preserves legacy applicable risks field", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		strategy := &model.Strategy{
			ID:              "supply_chain_protection",
			ApplicableRisks: `["pandemic","economic_downturn"]`,
			Tier:            types.TierRecommended,
			Type:            model.StrategyGeneric,
			CostLevel:       2,
			EffortLevel:     2,
			IsActive:        true,
		}
		gt.NoError(t, repo.Strategy().Put(ctx, strategy)).Required()

		got, err := repo.Strategy().Get(ctx, "supply_chain_protection")
		gt.NoError(t, err).Required()
		gt.Value(t, got.PrimaryRisk).Equal(types.HazardID(""))
		gt.Value(t, got.ApplicableRisks).Equal(`["pandemic","economic_downturn"]`)
	})

	t.Run("Delete removes strategy", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Strategy().Put(ctx, &model.Strategy{
			ID:       "to_be_deleted",
			Tier:     types.TierOptional,
			Type:     model.StrategyGeneric,
			IsActive: true,
		})).Required()

		gt.NoError(t, repo.Strategy().Delete(ctx, "to_be_deleted")).Required()

		_, err := repo.Strategy().Get(ctx, "to_be_deleted")
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func TestStrategyRepository_Memory(t *testing.T) {
	runStrategyRepositoryTest(t, newMemoryRepo)
}

func TestStrategyRepository_Firestore(t *testing.T) {
	runStrategyRepositoryTest(t, newFirestoreRepo)
}

func TestStrategyRepository_Postgres(t *testing.T) {
	runStrategyRepositoryTest(t, newPostgresRepo)
}
