package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/radieske/sports-picks-cms/internal/picks-api/dto"
	"github.com/radieske/sports-picks-cms/internal/picks-api/repo"
	"github.com/radieske/sports-picks-cms/internal/shared/httpx"
	"github.com/radieske/sports-picks-cms/pkg/contracts/events"
)

// listSites devolve só os sites ativos, opcionalmente filtrados por categoria
func (s *Server) listSites(w http.ResponseWriter, r *http.Request) {
	out, err := s.store.ListSites(r.Context(), true)
	if err != nil {
		s.fail(w, "list sites", err)
		return
	}
	out = repo.FilterByCategory(out, r.URL.Query().Get("category"))
	httpx.WriteJSON(w, http.StatusOK, dto.List[dto.Site]{Data: out, Count: len(out)})
}

func (s *Server) listAllSites(w http.ResponseWriter, r *http.Request) {
	out, err := s.store.ListSites(r.Context(), false)
	if err != nil {
		s.fail(w, "list sites", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.List[dto.Site]{Data: out, Count: len(out)})
}

func (s *Server) resolveSite(w http.ResponseWriter, r *http.Request) {
	site, err := s.store.ResolveSite(r.Context(), r.URL.Query().Get("domain"))
	if err != nil {
		s.fail(w, "resolve site", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.Single[dto.Site]{Data: site})
}

func (s *Server) createSite(w http.ResponseWriter, r *http.Request) {
	in, ok := decode[dto.SiteInput](w, r)
	if !ok || !required(w, field{"name", in.Name}, field{"slug", in.Slug}) {
		return
	}
	out, err := s.store.CreateSite(r.Context(), in)
	if err != nil {
		s.fail(w, "create site", err)
		return
	}
	s.notify(r, events.EntitySite, events.ActionCreated, out.ID, out.ID)
	httpx.WriteJSON(w, http.StatusCreated, dto.Single[dto.Site]{Data: out})
}

func (s *Server) updateSite(w http.ResponseWriter, r *http.Request) {
	in, ok := decode[dto.SiteInput](w, r)
	if !ok {
		return
	}
	out, err := s.store.UpdateSite(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		s.fail(w, "update site", err)
		return
	}
	s.notify(r, events.EntitySite, events.ActionUpdated, out.ID, out.ID)
	httpx.WriteJSON(w, http.StatusOK, dto.Single[dto.Site]{Data: out})
}

func (s *Server) deleteSite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteSite(r.Context(), id); err != nil {
		s.fail(w, "delete site", err)
		return
	}
	s.notify(r, events.EntitySite, events.ActionDeleted, id, id)
	httpx.WriteJSON(w, http.StatusOK, dto.Success{Success: true})
}
