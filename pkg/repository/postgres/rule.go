package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
	"github.com/resilience-works/continuity/pkg/domain/model"
	"github.com/resilience-works/continuity/pkg/domain/types"
)

type ruleRepository struct {
	pool *pgxpool.Pool
}

func (r *ruleRepository) Put(ctx context.Context, rule *model.MultiplierRule) (*model.MultiplierRule, error) {
	stored := *rule
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx, `
        INSERT INTO multiplier_rules
            (id, name, characteristic_type, condition_type, threshold, min_value, max_value,
             factor, applicable_hazards, priority, is_active, created_at, updated_at)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            characteristic_type = EXCLUDED.characteristic_type,
            condition_type = EXCLUDED.condition_type,
            threshold = EXCLUDED.threshold,
            min_value = EXCLUDED.min_value,
            max_value = EXCLUDED.max_value,
            factor = EXCLUDED.factor,
            applicable_hazards = EXCLUDED.applicable_hazards,
            priority = EXCLUDED.priority,
            is_active = EXCLUDED.is_active,
            updated_at = EXCLUDED.updated_at
    `, stored.ID, stored.Name, stored.CharacteristicType.String(), stored.ConditionType.String(),
		stored.Threshold, stored.Min, stored.Max, stored.Factor, stored.ApplicableHazards,
		stored.Priority, stored.IsActive, now)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store rule", goerr.V("id", stored.ID))
	}

	return r.Get(ctx, stored.ID)
}

func (r *ruleRepository) Get(ctx context.Context, id string) (*model.MultiplierRule, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT id, name, characteristic_type, condition_type, threshold, min_value, max_value,
               factor, applicable_hazards, priority, is_active, created_at, updated_at
        FROM multiplier_rules
        WHERE id = $1
    `, id)

	rule, err := scanRule(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, goerr.Wrap(ErrNotFound, "rule not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get rule", goerr.V("id", id))
	}
	return rule, nil
}

func (r *ruleRepository) List(ctx context.Context) ([]*model.MultiplierRule, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, name, characteristic_type, condition_type, threshold, min_value, max_value,
               factor, applicable_hazards, priority, is_active, created_at, updated_at
        FROM multiplier_rules
        ORDER BY priority, id
    `)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list rules")
	}
	defer rows.Close()

	var rules []*model.MultiplierRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan rule")
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate rules")
	}
	return rules, nil
}

func (r *ruleRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM multiplier_rules WHERE id = $1`, id)
	if err != nil {
		return goerr.Wrap(err, "failed to delete rule", goerr.V("id", id))
	}
	if cmd.RowsAffected() == 0 {
		return goerr.Wrap(ErrNotFound, "rule not found", goerr.V("id", id))
	}
	return nil
}

func scanRule(row pgx.Row) (*model.MultiplierRule, error) {
	var rule model.MultiplierRule
	var characteristicType, conditionType string

	if err := row.Scan(&rule.ID, &rule.Name, &characteristicType, &conditionType,
		&rule.Threshold, &rule.Min, &rule.Max, &rule.Factor, &rule.ApplicableHazards,
		&rule.Priority, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
		return nil, err
	}

	rule.CharacteristicType = types.CharacteristicType(characteristicType)
	rule.ConditionType = types.ConditionType(conditionType)
	return &rule, nil
}
