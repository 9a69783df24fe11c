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

type profileDocument struct {
	ID              string             `firestore:"id"`
	Kind            string             `firestore:"kind"`
	Name            string             `firestore:"name"`
	Characteristics map[string]float64 `firestore:"characteristics"`
	CreatedAt       time.Time          `firestore:"created_at"`
	UpdatedAt       time.Time          `firestore:"updated_at"`
}

type profileRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newProfileRepository(client *firestore.Client) *profileRepository {
	return &profileRepository{client: client}
}

func (r *profileRepository) col() string {
	return collection(r.collectionPrefix, "business_profiles")
}

func (r *profileRepository) Put(ctx context.Context, profile *model.BusinessProfile) error {
	if profile.ID == "" {
		return goerr.New("profile ID is required")
	}

	now := time.Now().UTC()
	createdAt := now
	docRef := r.client.Collection(r.col()).Doc(profile.ID)
	if snap, err := docRef.Get(ctx); err == nil {
		var existing profileDocument
		if err := snap.DataTo(&existing); err == nil {
			createdAt = existing.CreatedAt
		}
	}

	characteristics := make(map[string]float64, len(profile.Characteristics))
	for k, v := range profile.Characteristics {
		characteristics[k.String()] = v
	}

	doc := &profileDocument{
		ID:              profile.ID,
		Kind:            string(profile.Kind),
		Name:            profile.Name,
		Characteristics: characteristics,
		CreatedAt:       createdAt,
		UpdatedAt:       now,
	}
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to store profile", goerr.V("id", profile.ID))
	}
	return nil
}

func (r *profileRepository) Get(ctx context.Context, id string) (*model.BusinessProfile, error) {
	snap, err := r.client.Collection(r.col()).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get profile", goerr.V("id", id))
	}

	var doc profileDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode profile", goerr.V("id", id))
	}
	return doc.toModel(), nil
}

func (r *profileRepository) List(ctx context.Context) ([]*model.BusinessProfile, error) {
	iter := r.client.Collection(r.col()).OrderBy("id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var profiles []*model.BusinessProfile
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list profiles")
		}

		var doc profileDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode profile", goerr.V("doc", snap.Ref.ID))
		}
		profiles = append(profiles, doc.toModel())
	}
	return profiles, nil
}

func (r *profileRepository) Delete(ctx context.Context, id string) error {
	docRef := r.client.Collection(r.col()).Doc(id)
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "profile not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get profile", goerr.V("id", id))
	}
	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete profile", goerr.V("id", id))
	}
	return nil
}

func (d *profileDocument) toModel() *model.BusinessProfile {
	characteristics := make(types.Characteristics, len(d.Characteristics))
	for k, v := range d.Characteristics {
		characteristics[types.CharacteristicType(k)] = v
	}

	return &model.BusinessProfile{
		ID:              d.ID,
		Kind:            model.ProfileKind(d.Kind),
		Name:            d.Name,
		Characteristics: characteristics,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
