package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/radieske/sports-picks-cms/internal/picks-api/dto"
	"github.com/radieske/sports-picks-cms/internal/picks-api/repo"
	"github.com/radieske/sports-picks-cms/internal/shared/httpx"
	"github.com/radieske/sports-picks-cms/pkg/contracts/events"
)

const pickIDRequired = "Pick ID is required"

func (s *Server) listPicks(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := paging(w, r, 50)
	if !ok {
		return
	}
	q := r.URL.Query()
	out, total, err := s.store.ListPicks(r.Context(), repo.PickFilter{
		SiteID:    q.Get("site_id"),
		EventID:   q.Get("event_id"),
		SportID:   q.Get("sport_id"),
		AnalystID: q.Get("analyst_id"),
		Status:    q.Get("status"),
		Language:  language(r),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		s.fail(w, "list picks", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.Page[dto.Pick]{Data: out, Count: total, Limit: limit, Offset: offset})
}

func (s *Server) createPick(w http.ResponseWriter, r *http.Request) {
	in, ok := decode[dto.PickInput](w, r)
	if !ok || !required(w,
		field{"event_id", in.EventID},
		field{"analyst_id", in.AnalystID},
		field{"bookmaker_id", in.BookmakerID},
	) {
		return
	}
	out, err := s.store.CreatePick(r.Context(), in)
	if err != nil {
		s.fail(w, "create pick", err)
		return
	}
	s.notify(r, events.EntityPick, events.ActionCreated, out.ID, pickSites(out, out.SiteIDs)...)
	httpx.WriteJSON(w, http.StatusCreated, dto.Single[dto.Pick]{Data: out})
}

func (s *Server) updatePick(w http.ResponseWriter, r *http.Request) {
	in, ok := decode[dto.PickInput](w, r)
	if !ok {
		return
	}
	s.doUpdatePick(w, r, chi.URLParam(r, "id"), in)
}

// updatePickLegacy aceita PUT /v1/picks com o id no corpo
func (s *Server) updatePickLegacy(w http.ResponseWriter, r *http.Request) {
	in, ok := decode[dto.PickInput](w, r)
	if !ok {
		return
	}
	if in.ID == nil || *in.ID == "" {
		httpx.WriteError(w, http.StatusBadRequest, pickIDRequired)
		return
	}
	s.doUpdatePick(w, r, *in.ID, in)
}

func (s *Server) doUpdatePick(w http.ResponseWriter, r *http.Request, id string, in dto.PickInput) {
	out, affected, err := s.store.UpdatePick(r.Context(), id, in)
	if err != nil {
		s.fail(w, "update pick", err)
		return
	}
	s.notify(r, events.EntityPick, events.ActionUpdated, out.ID, pickSites(out, affected)...)
	httpx.WriteJSON(w, http.StatusOK, dto.Single[dto.Pick]{Data: out})
}

func (s *Server) deletePick(w http.ResponseWriter, r *http.Request) {
	s.doDeletePick(w, r, chi.URLParam(r, "id"))
}

// deletePickLegacy aceita DELETE /v1/picks?id=
func (s *Server) deletePickLegacy(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.WriteError(w, http.StatusBadRequest, pickIDRequired)
		return
	}
	s.doDeletePick(w, r, id)
}

func (s *Server) doDeletePick(w http.ResponseWriter, r *http.Request, id string) {
	siteIDs, err := s.store.DeletePick(r.Context(), id)
	if err != nil {
		s.fail(w, "delete pick", err)
		return
	}
	s.notify(r, events.EntityPick, events.ActionDeleted, id, siteIDs...)
	httpx.WriteJSON(w, http.StatusOK, dto.Success{Success: true})
}

func (s *Server) setPickSites(w http.ResponseWriter, r *http.Request) {
	in, ok := decode[dto.PickSitesInput](w, r)
	if !ok {
		return
	}
	if in.SiteIDs == nil {
		in.SiteIDs = []string{}
	}
	id := chi.URLParam(r, "id")
	affected, err := s.store.SetPickSites(r.Context(), id, in.SiteIDs)
	if err != nil {
		s.fail(w, "set pick sites", err)
		return
	}
	s.notify(r, events.EntityPick, events.ActionUpdated, id, affected...)
	httpx.WriteJSON(w, http.StatusOK, dto.Single[dto.PickSitesInput]{Data: in})
}

// pickSites junta o site_id direto do pick com as atribuições
func pickSites(p dto.Pick, assigned []string) []string {
	out := append([]string{}, assigned...)
	if p.SiteID != nil && *p.SiteID != "" {
		for _, id := range out {
			if id == *p.SiteID {
				return out
			}
		}
		out = append(out, *p.SiteID)
	}
	return out
}
