package httpapi

import (
	"net/http"
	"time"

	"github.com/radieske/sports-picks-cms/internal/maintenance"
	"github.com/radieske/sports-picks-cms/internal/picks-api/dto"
	"github.com/radieske/sports-picks-cms/internal/shared/httpx"
	"github.com/radieske/sports-picks-cms/pkg/contracts/events"
)

func (s *Server) cleanup(w http.ResponseWriter, r *http.Request) {
	if s.maint == nil {
		httpx.WriteError(w, http.StatusNotImplemented, "maintenance is not configured")
		return
	}
	res, err := s.maint.Cleanup(r.Context())
	if err != nil {
		s.fail(w, "cleanup", err)
		return
	}
	if res.DeletedEvents > 0 || res.DeletedPicks > 0 {
		s.notify(r, events.EntityEvent, events.ActionCleanup, "")
	}
	httpx.WriteJSON(w, http.StatusOK, dto.CleanupResponse{
		Success:          true,
		Message:          res.Message(),
		DeletedEvents:    res.DeletedEvents,
		DeletedPicks:     res.DeletedPicks,
		DeletedPickSites: res.DeletedPickSites,
		CutoffDate:       res.Cutoff.UTC().Format(time.RFC3339),
	})
}

func (s *Server) staleEvents(w http.ResponseWriter, r *http.Request) {
	if s.maint == nil {
		httpx.WriteError(w, http.StatusNotImplemented, "maintenance is not configured")
		return
	}
	ids, err := s.maint.StaleEvents(r.Context())
	if err != nil {
		s.fail(w, "stale events", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.StaleEventsResponse{
		Success:     true,
		Message:     maintenance.StaleMessage(ids),
		Count:       len(ids),
		OldEventIDs: ids,
	})
}
