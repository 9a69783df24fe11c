package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/resilience-works/continuity/pkg/domain/interfaces"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = interfaces.ErrNotFound

// Firestore is the Firestore-backed repository
type Firestore struct {
	client   *firestore.Client
	hazard   *hazardRepository
	rule     *ruleRepository
	strategy *strategyRepository
	profile  *profileRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections, used to isolate test runs
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.hazard.collectionPrefix = prefix
		f.rule.collectionPrefix = prefix
		f.strategy.collectionPrefix = prefix
		f.profile.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project_id", projectID), goerr.V("database_id", databaseID))
	}

	f := &Firestore{
		client:   client,
		hazard:   newHazardRepository(client),
		rule:     newRuleRepository(client),
		strategy: newStrategyRepository(client),
		profile:  newProfileRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Hazard() interfaces.HazardRepository {
	return f.hazard
}

func (f *Firestore) Rule() interfaces.RuleRepository {
	return f.rule
}

func (f *Firestore) Strategy() interfaces.StrategyRepository {
	return f.strategy
}

func (f *Firestore) Profile() interfaces.ProfileRepository {
	return f.profile
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func collection(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}
