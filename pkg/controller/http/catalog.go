package http

import (
	"net/http"

	"github.com/resilience-works/continuity/pkg/utils/errutil"
)

func (s *Server) handleListHazards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	hazards, err := s.uc.Catalog.Hazards(ctx)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, map[string]any{"hazards": hazards})
}

func (s *Server) handleListStrategies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	strategies, err := s.uc.Catalog.Strategies(ctx)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, map[string]any{"strategies": strategies})
}
