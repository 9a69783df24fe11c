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

type hazardRepository struct {
	pool *pgxpool.Pool
}

func (r *hazardRepository) Put(ctx context.Context, hazard *model.Hazard) error {
	if err := hazard.ID.Validate(); err != nil {
		return goerr.Wrap(err, "cannot store hazard")
	}

	name, err := json.Marshal(hazard.Name)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal hazard name", goerr.V("id", hazard.ID))
	}

	now := time.Now().UTC()
	_, err = r.pool.Exec(ctx, `
        INSERT INTO hazards (id, name, category, base_level, is_active, created_at, updated_at)
        VALUES ($1, $2::jsonb, $3, $4, $5, $6, $6)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            category = EXCLUDED.category,
            base_level = EXCLUDED.base_level,
            is_active = EXCLUDED.is_active,
            updated_at = EXCLUDED.updated_at
    `, hazard.ID.String(), string(name), hazard.Category.String(), float64(hazard.BaseLevel), hazard.IsActive, now)
	if err != nil {
		return goerr.Wrap(err, "failed to store hazard", goerr.V("id", hazard.ID))
	}
	return nil
}

func (r *hazardRepository) Get(ctx context.Context, id types.HazardID) (*model.Hazard, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT id, name, category, base_level, is_active, created_at, updated_at
        FROM hazards
        WHERE id = $1
    `, id.String())

	hazard, err := scanHazard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, goerr.Wrap(ErrNotFound, "hazard not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get hazard", goerr.V("id", id))
	}
	return hazard, nil
}

func (r *hazardRepository) List(ctx context.Context) ([]*model.Hazard, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, name, category, base_level, is_active, created_at, updated_at
        FROM hazards
        ORDER BY id
    `)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list hazards")
	}
	defer rows.Close()

	var hazards []*model.Hazard
	for rows.Next() {
		hazard, err := scanHazard(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan hazard")
		}
		hazards = append(hazards, hazard)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate hazards")
	}
	return hazards, nil
}

func (r *hazardRepository) Delete(ctx context.Context, id types.HazardID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM hazards WHERE id = $1`, id.String())
	if err != nil {
		return goerr.Wrap(err, "failed to delete hazard", goerr.V("id", id))
	}
	if cmd.RowsAffected() == 0 {
		return goerr.Wrap(ErrNotFound, "hazard not found", goerr.V("id", id))
	}
	return nil
}

func scanHazard(row pgx.Row) (*model.Hazard, error) {
	var hazard model.Hazard
	var id, category string
	var nameRaw []byte
	var baseLevel float64

	if err := row.Scan(&id, &nameRaw, &category, &baseLevel, &hazard.IsActive, &hazard.CreatedAt, &hazard.UpdatedAt); err != nil {
		return nil, err
	}

	hazard.ID = types.HazardID(id)
	hazard.Category = types.HazardCategory(category)
	hazard.BaseLevel = types.RiskLevel(baseLevel)
	if err := json.Unmarshal(nameRaw, &hazard.Name); err != nil {
		return nil, goerr.Wrap(err, "failed to decode hazard name", goerr.V("id", id))
	}
	return &hazard, nil
}
