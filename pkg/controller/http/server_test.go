package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/resilience-works/continuity/pkg/controller/http"
	"github.com/resilience-works/continuity/pkg/domain/interfaces"
	"github.com/resilience-works/continuity/pkg/domain/model"
	"github.com/resilience-works/continuity/pkg/domain/types"
	"github.com/resilience-works/continuity/pkg/repository/memory"
	"github.com/resilience-works/continuity/pkg/service/cache"
	"github.com/resilience-works/continuity/pkg/usecase"
)

func newTestServer(t *testing.T) (*httpctrl.Server, interfaces.Repository) {
	t.Helper()
	repo := memory.New()
	ctx := context.Background()

	gt.NoError(t, repo.Hazard().Put(ctx, &model.Hazard{
		ID:        "power_outage",
		Name:      model.LocalizedText{"en": "Power outage"},
		Category:  types.CategoryTechnological,
		BaseLevel: 4,
		IsActive:  true,
	})).Required()
	gt.NoError(t, repo.Strategy().Put(ctx, &model.Strategy{
		ID:          "backup_power_generator",
		PrimaryRisk: "power_outage",
		Tier:        types.TierEssential,
		Type:        model.StrategyRiskSpecific,
		IsActive:    true,
	})).Required()

	uc := usecase.New(repo, cache.New())
	return httpctrl.New(uc), repo
}

func TestComputeRisksEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	body := bytes.NewBufferString(`{"hazard_ids":["power_outage","blackout","tsunami"],"business_type_id":"","location_id":""}`)
	req := httptest.NewRequest(http.MethodPost, "/api/assessments/risks", body)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var resp struct {
		AssessmentID string             `json:"assessment_id"`
		Results      []model.RiskResult `json:"results"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()

	gt.Value(t, resp.AssessmentID).NotEqual("")
	// blackout canonicalizes to power_outage, so two distinct hazards remain
	gt.Array(t, resp.Results).Length(2)
	gt.Value(t, resp.Results[0].HazardID).Equal(types.HazardID("power_outage"))
	gt.Bool(t, resp.Results[0].KnownHazard).True()
	gt.Value(t, resp.Results[1].HazardID).Equal(types.HazardID("tsunami"))
	gt.Bool(t, resp.Results[1].KnownHazard).False()
}

func TestComputeRisksEndpointRejectsBadJSON(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/assessments/risks", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestRecommendationsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	body := bytes.NewBufferString(`{"results":[{"hazard_id":"power_outage","base_level":4,"adjusted_level":4,"known_hazard":true}]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/assessments/recommendations", body)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var resp struct {
		AutoSelected []*model.Strategy `json:"auto_selected"`
		Optional     []*model.Strategy `json:"optional"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
	gt.Array(t, resp.AutoSelected).Length(1)
	gt.Value(t, resp.AutoSelected[0].ID).Equal(types.StrategyID("backup_power_generator"))
	gt.Array(t, resp.Optional).Length(0)
}

func TestCatalogEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/hazards", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.Value(t, rec.Header().Get("Content-Type")).Equal("application/json")

	var hazardResp struct {
		Hazards []*model.Hazard `json:"hazards"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hazardResp)).Required()
	gt.Array(t, hazardResp.Hazards).Length(1)

	req = httptest.NewRequest(http.MethodGet, "/api/strategies", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(http.StatusOK)
}

func TestCacheAdminEndpoints(t *testing.T) {
	srv, repo := newTestServer(t)
	ctx := context.Background()

	// Populate cache, then write behind it
	req := httptest.NewRequest(http.MethodGet, "/api/hazards", nil)
	srv.ServeHTTP(httptest.NewRecorder(), req)

	gt.NoError(t, repo.Hazard().Put(ctx, &model.Hazard{
		ID:        "wildfire",
		Category:  types.CategoryNatural,
		BaseLevel: 5,
		IsActive:  true,
	})).Required()

	req = httptest.NewRequest(http.MethodPost, "/api/admin/cache/refresh?scope=hazards", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var refreshResp struct {
		Scope    string `json:"scope"`
		Reloaded int    `json:"reloaded"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &refreshResp)).Required()
	gt.Value(t, refreshResp.Reloaded).Equal(2)

	req = httptest.NewRequest(http.MethodPost, "/api/admin/cache/invalidate?scope=hazards", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	req = httptest.NewRequest(http.MethodPost, "/api/admin/cache/refresh?scope=bogus", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
}
