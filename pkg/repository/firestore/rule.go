package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/resilience-works/continuity/pkg/domain/model"
	"github.com/resilience-works/continuity/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ruleDocument struct {
	ID                 string    `firestore:"id"`
	Name               string    `firestore:"name"`
	CharacteristicType string    `firestore:"characteristic_type"`
	ConditionType      string    `firestore:"condition_type"`
	Threshold          *float64  `firestore:"threshold"`
	Min                *float64  `firestore:"min"`
	Max                *float64  `firestore:"max"`
	Factor             float64   `firestore:"factor"`
	ApplicableHazards  string    `firestore:"applicable_hazards"`
	Priority           int       `firestore:"priority"`
	IsActive           bool      `firestore:"is_active"`
	CreatedAt          time.Time `firestore:"created_at"`
	UpdatedAt          time.Time `firestore:"updated_at"`
}

type ruleRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newRuleRepository(client *firestore.Client) *ruleRepository {
	return &ruleRepository{client: client}
}

func (r *ruleRepository) col() string {
	return collection(r.collectionPrefix, "multiplier_rules")
}

func (r *ruleRepository) Put(ctx context.Context, rule *model.MultiplierRule) (*model.MultiplierRule, error) {
	id := rule.ID
	if id == "" {
		id = uuid.NewString()
	}

	now := time.Now().UTC()
	createdAt := now
	docRef := r.client.Collection(r.col()).Doc(id)
	if snap, err := docRef.Get(ctx); err == nil {
		var existing ruleDocument
		if err := snap.DataTo(&existing); err == nil {
			createdAt = existing.CreatedAt
		}
	}

	doc := &ruleDocument{
		ID:                 id,
		Name:               rule.Name,
		CharacteristicType: rule.CharacteristicType.String(),
		ConditionType:      rule.ConditionType.String(),
		Threshold:          rule.Threshold,
		Min:                rule.Min,
		Max:                rule.Max,
		Factor:             rule.Factor,
		ApplicableHazards:  rule.ApplicableHazards,
		Priority:           rule.Priority,
		IsActive:           rule.IsActive,
		CreatedAt:          createdAt,
		UpdatedAt:          now,
	}
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to store rule", goerr.V("id", id))
	}
	return doc.toModel(), nil
}

func (r *ruleRepository) Get(ctx context.Context, id string) (*model.MultiplierRule, error) {
	snap, err := r.client.Collection(r.col()).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "rule not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get rule", goerr.V("id", id))
	}

	var doc ruleDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode rule", goerr.V("id", id))
	}
	return doc.toModel(), nil
}

func (r *ruleRepository) List(ctx context.Context) ([]*model.MultiplierRule, error) {
	iter := r.client.Collection(r.col()).OrderBy("priority", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var rules []*model.MultiplierRule
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list rules")
		}

		var doc ruleDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode rule", goerr.V("doc", snap.Ref.ID))
		}
		rules = append(rules, doc.toModel())
	}
	return rules, nil
}

func (r *ruleRepository) Delete(ctx context.Context, id string) error {
	docRef := r.client.Collection(r.col()).Doc(id)
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "rule not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get rule", goerr.V("id", id))
	}
	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete rule", goerr.V("id", id))
	}
	return nil
}

func (d *ruleDocument) toModel() *model.MultiplierRule {
	return &model.MultiplierRule{
		ID:                 d.ID,
		Name:               d.Name,
		CharacteristicType: types.CharacteristicType(d.CharacteristicType),
		ConditionType:      types.ConditionType(d.ConditionType),
		Threshold:          d.Threshold,
		Min:                d.Min,
		Max:                d.Max,
		Factor:             d.Factor,
		ApplicableHazards:  d.ApplicableHazards,
		Priority:           d.Priority,
		IsActive:           d.IsActive,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}
