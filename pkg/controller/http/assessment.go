package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/resilience-works/continuity/pkg/domain/model"
	"github.com/resilience-works/continuity/pkg/utils/errutil"
	"github.com/resilience-works/continuity/pkg/utils/safe"
)

type assessmentRequest struct {
	HazardIDs      []string `json:"hazard_ids"`
	BusinessTypeID string   `json:"business_type_id"`
	LocationID     string   `json:"location_id"`
}

type riskResponse struct {
	AssessmentID string             `json:"assessment_id"`
	Results      []model.RiskResult `json:"results"`
}

func (s *Server) handleComputeRisks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req assessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid assessment request"), http.StatusBadRequest)
		return
	}

	results, err := s.uc.Assessment.ComputeRisks(ctx, req.HazardIDs, req.BusinessTypeID, req.LocationID)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, riskResponse{
		AssessmentID: uuid.NewString(),
		Results:      results,
	})
}

type recommendationRequest struct {
	Results []model.RiskResult `json:"results"`
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid recommendation request"), http.StatusBadRequest)
		return
	}

	rec, err := s.uc.Assessment.RecommendStrategies(ctx, req.Results)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, rec)
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	safe.Write(r.Context(), w, data)
}
