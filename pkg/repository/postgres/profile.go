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

type profileRepository struct {
	pool *pgxpool.Pool
}

func (r *profileRepository) Put(ctx context.Context, profile *model.BusinessProfile) error {
	if profile.ID == "" {
		return goerr.New("profile ID is required")
	}

	characteristics, err := json.Marshal(profile.Characteristics)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal profile characteristics", goerr.V("id", profile.ID))
	}

	now := time.Now().UTC()
	_, err = r.pool.Exec(ctx, `
        INSERT INTO business_profiles (id, kind, name, characteristics, created_at, updated_at)
        VALUES ($1, $2, $3, $4::jsonb, $5, $5)
        ON CONFLICT (id) DO UPDATE SET
            kind = EXCLUDED.kind,
            name = EXCLUDED.name,
            characteristics = EXCLUDED.characteristics,
            updated_at = EXCLUDED.updated_at
    `, profile.ID, string(profile.Kind), profile.Name, string(characteristics), now)
	if err != nil {
		return goerr.Wrap(err, "failed to store profile", goerr.V("id", profile.ID))
	}
	return nil
}

func (r *profileRepository) Get(ctx context.Context, id string) (*model.BusinessProfile, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT id, kind, name, characteristics, created_at, updated_at
        FROM business_profiles
        WHERE id = $1
    `, id)

	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get profile", goerr.V("id", id))
	}
	return profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]*model.BusinessProfile, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, kind, name, characteristics, created_at, updated_at
        FROM business_profiles
        ORDER BY id
    `)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list profiles")
	}
	defer rows.Close()

	var profiles []*model.BusinessProfile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan profile")
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate profiles")
	}
	return profiles, nil
}

func (r *profileRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM business_profiles WHERE id = $1`, id)
	if err != nil {
		return goerr.Wrap(err, "failed to delete profile", goerr.V("id", id))
	}
	if cmd.RowsAffected() == 0 {
		return goerr.Wrap(ErrNotFound, "profile not found", goerr.V("id", id))
	}
	return nil
}

func scanProfile(row pgx.Row) (*model.BusinessProfile, error) {
	var profile model.BusinessProfile
	var kind string
	var characteristicsRaw []byte

	if err := row.Scan(&profile.ID, &kind, &profile.Name, &characteristicsRaw,
		&profile.CreatedAt, &profile.UpdatedAt); err != nil {
		return nil, err
	}

	profile.Kind = model.ProfileKind(kind)
	raw := map[string]float64{}
	if err := json.Unmarshal(characteristicsRaw, &raw); err != nil {
		return nil, goerr.Wrap(err, "failed to decode profile characteristics", goerr.V("id", profile.ID))
	}
	profile.Characteristics = make(types.Characteristics, len(raw))
	for k, v := range raw {
		profile.Characteristics[types.CharacteristicType(k)] = v
	}

	return &profile, nil
}
