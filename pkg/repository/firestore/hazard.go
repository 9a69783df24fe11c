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

type hazardDocument struct {
	ID        string            `firestore:"id"`
	Name      map[string]string `firestore:"name"`
	Category  string            `firestore:"category"`
	BaseLevel float64           `firestore:"base_level"`
	IsActive  bool              `firestore:"is_active"`
	CreatedAt time.Time         `firestore:"created_at"`
	UpdatedAt time.Time         `firestore:"updated_at"`
}

type hazardRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newHazardRepository(client *firestore.Client) *hazardRepository {
	return &hazardRepository{client: client}
}

func (r *hazardRepository) col() string {
	return collection(r.collectionPrefix, "hazards")
}

func (r *hazardRepository) Put(ctx context.Context, hazard *model.Hazard) error {
	if err := hazard.ID.Validate(); err != nil {
		return goerr.Wrap(err, "cannot store hazard")
	}

	now := time.Now().UTC()
	createdAt := now
	docRef := r.client.Collection(r.col()).Doc(hazard.ID.String())
	if snap, err := docRef.Get(ctx); err == nil {
		var existing hazardDocument
		if err := snap.DataTo(&existing); err == nil {
			createdAt = existing.CreatedAt
		}
	}

	doc := &hazardDocument{
		ID:        hazard.ID.String(),
		Name:      hazard.Name,
		Category:  hazard.Category.String(),
		BaseLevel: float64(hazard.BaseLevel),
		IsActive:  hazard.IsActive,
		CreatedAt: createdAt,
		UpdatedAt: now,
	}
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to store hazard", goerr.V("id", hazard.ID))
	}
	return nil
}

func (r *hazardRepository) Get(ctx context.Context, id types.HazardID) (*model.Hazard, error) {
	snap, err := r.client.Collection(r.col()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "hazard not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get hazard", goerr.V("id", id))
	}

	var doc hazardDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode hazard", goerr.V("id", id))
	}
	return doc.toModel(), nil
}

func (r *hazardRepository) List(ctx context.Context) ([]*model.Hazard, error) {
	iter := r.client.Collection(r.col()).OrderBy("id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var hazards []*model.Hazard
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list hazards")
		}

		var doc hazardDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode hazard", goerr.V("doc", snap.Ref.ID))
		}
		hazards = append(hazards, doc.toModel())
	}
	return hazards, nil
}

func (r *hazardRepository) Delete(ctx context.Context, id types.HazardID) error {
	docRef := r.client.Collection(r.col()).Doc(id.String())
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "hazard not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get hazard", goerr.V("id", id))
	}
	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete hazard", goerr.V("id", id))
	}
	return nil
}

func (d *hazardDocument) toModel() *model.Hazard {
	return &model.Hazard{
		ID:        types.HazardID(d.ID),
		Name:      model.LocalizedText(d.Name),
		Category:  types.HazardCategory(d.Category),
		BaseLevel: types.RiskLevel(d.BaseLevel),
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
