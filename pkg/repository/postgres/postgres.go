package postgres

import (
	"context"
	"embed"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
	"github.com/resilience-works/continuity/pkg/domain/interfaces"
)

//go:embed sql/*.sql
var migrationFS embed.FS

// ErrNotFound is returned when a record does not exist
var ErrNotFound = interfaces.ErrNotFound

// Postgres is the PostgreSQL-backed repository
type Postgres struct {
	pool     *pgxpool.Pool
	hazard   *hazardRepository
	rule     *ruleRepository
	strategy *strategyRepository
	profile  *profileRepository
}

var _ interfaces.Repository = &Postgres{}

// New connects to the database, verifies the connection and applies
// embedded schema migrations in lexical order.
func New(ctx context.Context, databaseURL string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse database config")
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to connect database")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, goerr.Wrap(err, "failed to ping database")
	}

	if err := migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &Postgres{
		pool:     pool,
		hazard:   &hazardRepository{pool: pool},
		rule:     &ruleRepository{pool: pool},
		strategy: &strategyRepository{pool: pool},
		profile:  &profileRepository{pool: pool},
	}, nil
}

func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	entries, err := migrationFS.ReadDir("sql")
	if err != nil {
		return goerr.Wrap(err, "failed to read migrations")
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		body, err := migrationFS.ReadFile("sql/" + name)
		if err != nil {
			return goerr.Wrap(err, "failed to read migration", goerr.V("name", name))
		}
		if _, err := pool.Exec(ctx, string(body)); err != nil {
			return goerr.Wrap(err, "failed to apply migration", goerr.V("name", name))
		}
	}

	return nil
}

func (p *Postgres) Hazard() interfaces.HazardRepository {
	return p.hazard
}

func (p *Postgres) Rule() interfaces.RuleRepository {
	return p.rule
}

func (p *Postgres) Strategy() interfaces.StrategyRepository {
	return p.strategy
}

func (p *Postgres) Profile() interfaces.ProfileRepository {
	return p.profile
}

func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}
