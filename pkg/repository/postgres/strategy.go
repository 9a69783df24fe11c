package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
	"github.com/resilience-works/continuity/pkg/domain/model"
	"github.com/resilience-works/continuity/pkg/domain/types"
)

type strategyRepository struct {
	pool *pgxpool.Pool
}

type strategyStepRecord struct {
	ID          string            `json:"id"`
	Phase       string            `json:"phase"`
	Description map[string]string `json:"description"`
	SortOrder   int               `json:"sort_order"`
	IsActive    bool              `json:"is_active"`
}

func (r *strategyRepository) Put(ctx context.Context, strategy *model.Strategy) error {
	if err := strategy.ID.Validate(); err != nil {
		return goerr.Wrap(err, "cannot store strategy")
	}

	name, err := json.Marshal(strategy.Name)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal strategy name", goerr.V("id", strategy.ID))
	}
	smeTitle, err := json.Marshal(strategy.SMETitle)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal strategy title", goerr.V("id", strategy.ID))
	}

	stepRecords := make([]strategyStepRecord, len(strategy.Steps))
	for i, st := range strategy.Steps {
		stepRecords[i] = strategyStepRecord{
			ID:          st.ID,
			Phase:       st.Phase.String(),
			Description: st.Description,
			SortOrder:   st.SortOrder,
			IsActive:    st.IsActive,
		}
	}
	steps, err := json.Marshal(stepRecords)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal strategy steps", goerr.V("id", strategy.ID))
	}

	now := time.Now().UTC()
	_, err = r.pool.Exec(ctx, `
        INSERT INTO strategies
            (id, name, sme_title, primary_risk, secondary_risks, applicable_risks,
             tier, type, cost_level, effort_level, steps, is_active, created_at, updated_at)
        VALUES
            ($1, $2::jsonb, $3::jsonb, $4, $5, $6, $7, $8, $9, $10, $11::jsonb, $12, $13, $13)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            sme_title = EXCLUDED.sme_title,
            primary_risk = EXCLUDED.primary_risk,
            secondary_risks = EXCLUDED.secondary_risks,
            applicable_risks = EXCLUDED.applicable_risks,
            tier = EXCLUDED.tier,
            type = EXCLUDED.type,
            cost_level = EXCLUDED.cost_level,
            effort_level = EXCLUDED.effort_level,
            steps = EXCLUDED.steps,
            is_active = EXCLUDED.is_active,
            updated_at = EXCLUDED.updated_at
    `, strategy.ID.String(), string(name), string(smeTitle), strategy.PrimaryRisk.String(),
		strategy.SecondaryRisks, strategy.ApplicableRisks, strategy.Tier.String(),
		string(strategy.Type), strategy.CostLevel, strategy.EffortLevel, string(steps),
		strategy.IsActive, now)
	if err != nil {
		return goerr.Wrap(err, "failed to store strategy", goerr.V("id", strategy.ID))
	}
	return nil
}

func (r *strategyRepository) Get(ctx context.Context, id types.StrategyID) (*model.Strategy, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT id, name, sme_title, primary_risk, secondary_risks, applicable_risks,
               tier, type, cost_level, effort_level, steps, is_active, created_at, updated_at
        FROM strategies
        WHERE id = $1
    `, id.String())

	strategy, err := scanStrategy(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, goerr.Wrap(ErrNotFound, "strategy not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get strategy", goerr.V("id", id))
	}
	return strategy, nil
}

func (r *strategyRepository) List(ctx context.Context) ([]*model.Strategy, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, name, sme_title, primary_risk, secondary_risks, applicable_risks,
               tier, type, cost_level, effort_level, steps, is_active, created_at, updated_at
        FROM strategies
        ORDER BY id
    `)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list strategies")
	}
	defer rows.Close()

	var strategies []*model.Strategy
	for rows.Next() {
		strategy, err := scanStrategy(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan strategy")
		}
		strategies = append(strategies, strategy)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate strategies")
	}
	return strategies, nil
}

func (r *strategyRepository) Delete(ctx context.Context, id types.StrategyID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM strategies WHERE id = $1`, id.String())
	if err != nil {
		return goerr.Wrap(err, "failed to delete strategy", goerr.V("id", id))
	}
	if cmd.RowsAffected() == 0 {
		return goerr.Wrap(ErrNotFound, "strategy not found", goerr.V("id", id))
	}
	return nil
}

func scanStrategy(row pgx.Row) (*model.Strategy, error) {
	var strategy model.Strategy
	var id, primaryRisk, tier, strategyType string
	var nameRaw, titleRaw, stepsRaw []byte

	if err := row.Scan(&id, &nameRaw, &titleRaw, &primaryRisk, &strategy.SecondaryRisks,
		&strategy.ApplicableRisks, &tier, &strategyType, &strategy.CostLevel,
		&strategy.EffortLevel, &stepsRaw, &strategy.IsActive, &strategy.CreatedAt,
		&strategy.UpdatedAt); err != nil {
		return nil, err
	}

	strategy.ID = types.StrategyID(id)
	strategy.PrimaryRisk = types.HazardID(primaryRisk)
	strategy.Tier = types.SelectionTier(tier)
	strategy.Type = model.StrategyType(strategyType)

	if err := json.Unmarshal(nameRaw, &strategy.Name); err != nil {
		return nil, goerr.Wrap(err, "failed to decode strategy name", goerr.V("id", id))
	}
	if err := json.Unmarshal(titleRaw, &strategy.SMETitle); err != nil {
		return nil, goerr.Wrap(err, "failed to decode strategy title", goerr.V("id", id))
	}

	var stepRecords []strategyStepRecord
	if err := json.Unmarshal(stepsRaw, &stepRecords); err != nil {
		return nil, goerr.Wrap(err, "failed to decode strategy steps", goerr.V("id", id))
	}
	strategy.Steps = make([]model.ActionStep, len(stepRecords))
	for i, st := range stepRecords {
		strategy.Steps[i] = model.ActionStep{
			ID:          st.ID,
			Phase:       types.StepPhase(st.Phase),
			Description: model.LocalizedText(st.Description),
			SortOrder:   st.SortOrder,
			IsActive:    st.IsActive,
		}
	}

	return &strategy, nil
}
