package http

import (
	"errors"
	"net/http"

	"github.com/resilience-works/continuity/pkg/service/catalog"
	"github.com/resilience-works/continuity/pkg/utils/errutil"
)

func (s *Server) handleCacheRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope := r.URL.Query().Get("scope")

	n, err := s.uc.Cache.Refresh(ctx, scope)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, statusForCacheError(err))
		return
	}
	writeJSON(w, r, map[string]any{"scope": scope, "reloaded": n})
}

func (s *Server) handleCacheInvalidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope := r.URL.Query().Get("scope")

	n, err := s.uc.Cache.Invalidate(ctx, scope)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, statusForCacheError(err))
		return
	}
	writeJSON(w, r, map[string]any{"scope": scope, "evicted": n})
}

func statusForCacheError(err error) int {
	if errors.Is(err, catalog.ErrUnknownScope) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
