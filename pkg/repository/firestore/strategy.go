package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/resilience-works/continuity/pkg/domain/model"
	"github.com/resilience-works/continuity/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type strategyDocument struct {
	ID              string               `firestore:"id"`
	Name            map[string]string    `firestore:"name"`
	SMETitle        map[string]string    `firestore:"sme_title"`
	PrimaryRisk     string               `firestore:"primary_risk"`
	SecondaryRisks  string               `firestore:"secondary_risks"`
	ApplicableRisks string               `firestore:"applicable_risks"`
	Tier            string               `firestore:"tier"`
	Type            string               `firestore:"type"`
	CostLevel       int                  `firestore:"cost_level"`
	EffortLevel     int                  `firestore:"effort_level"`
	Steps           []actionStepDocument `firestore:"steps"`
	IsActive        bool                 `firestore:"is_active"`
	CreatedAt       time.Time            `firestore:"created_at"`
	UpdatedAt       time.Time            `firestore:"updated_at"`
}

type actionStepDocument struct {
	ID          string            `firestore:"id"`
	Phase       string            `firestore:"phase"`
	Description map[string]string `firestore:"description"`
	SortOrder   int               `firestore:"sort_order"`
	IsActive    bool              `firestore:"is_active"`
}

type strategyRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newStrategyRepository(client *firestore.Client) *strategyRepository {
	return &strategyRepository{client: client}
}

func (r *strategyRepository) col() string {
	return collection(r.collectionPrefix, "strategies")
}

func (r *strategyRepository) Put(ctx context.Context, strategy *model.Strategy) error {
	if err := strategy.ID.Validate(); err != nil {
		return goerr.Wrap(err, "cannot store strategy")
	}

	now := time.Now().UTC()
	createdAt := now
	docRef := r.client.Collection(r.col()).Doc(strategy.ID.String())
	if snap, err := docRef.Get(ctx); err == nil {
		var existing strategyDocument
		if err := snap.DataTo(&existing); err == nil {
			createdAt = existing.CreatedAt
		}
	}

	steps := make([]actionStepDocument, len(strategy.Steps))
	for i, st := range strategy.Steps {
		steps[i] = actionStepDocument{
			ID:          st.ID,
			Phase:       st.Phase.String(),
			Description: st.Description,
			SortOrder:   st.SortOrder,
			IsActive:    st.IsActive,
		}
	}

	doc := &strategyDocument{
		ID:              strategy.ID.String(),
		Name:            strategy.Name,
		SMETitle:        strategy.SMETitle,
		PrimaryRisk:     strategy.PrimaryRisk.String(),
		SecondaryRisks:  strategy.SecondaryRisks,
		ApplicableRisks: strategy.ApplicableRisks,
		Tier:            strategy.Tier.String(),
		Type:            string(strategy.Type),
		CostLevel:       strategy.CostLevel,
		EffortLevel:     strategy.EffortLevel,
		Steps:           steps,
		IsActive:        strategy.IsActive,
		CreatedAt:       createdAt,
		UpdatedAt:       now,
	}
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to store strategy", goerr.V("id", strategy.ID))
	}
	return nil
}

func (r *strategyRepository) Get(ctx context.Context, id types.StrategyID) (*model.Strategy, error) {
	snap, err := r.client.Collection(r.col()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "strategy not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get strategy", goerr.V("id", id))
	}

	var doc strategyDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode strategy", goerr.V("id", id))
	}
	return doc.toModel(), nil
}

func (r *strategyRepository) List(ctx context.Context) ([]*model.Strategy, error) {
	iter := r.client.Collection(r.col()).OrderBy("id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var strategies []*model.Strategy
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list strategies")
		}

		var doc strategyDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode strategy", goerr.V("doc", snap.Ref.ID))
		}
		strategies = append(strategies, doc.toModel())
	}
	return strategies, nil
}

func (r *strategyRepository) Delete(ctx context.Context, id types.StrategyID) error {
	docRef := r.client.Collection(r.col()).Doc(id.String())
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "strategy not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get strategy", goerr.V("id", id))
	}
	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete strategy", goerr.V("id", id))
	}
	return nil
}

func (d *strategyDocument) toModel() *model.Strategy {
	steps := make([]model.ActionStep, len(d.Steps))
	for i, st := range d.Steps {
		steps[i] = model.ActionStep{
			ID:          st.ID,
			Phase:       types.StepPhase(st.Phase),
			Description: model.LocalizedText(st.Description),
			SortOrder:   st.SortOrder,
			IsActive:    st.IsActive,
		}
	}

	return &model.Strategy{
		ID:              types.StrategyID(d.ID),
		Name:            model.LocalizedText(d.Name),
		SMETitle:        model.LocalizedText(d.SMETitle),
		PrimaryRisk:     types.HazardID(d.PrimaryRisk),
		SecondaryRisks:  d.SecondaryRisks,
		ApplicableRisks: d.ApplicableRisks,
		Tier:            types.SelectionTier(d.Tier),
		Type:            model.StrategyType(d.Type),
		CostLevel:       d.CostLevel,
		EffortLevel:     d.EffortLevel,
		Steps:           steps,
		IsActive:        d.IsActive,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
