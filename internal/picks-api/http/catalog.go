package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/radieske/sports-picks-cms/internal/picks-api/dto"
	"github.com/radieske/sports-picks-cms/internal/picks-api/repo"
	"github.com/radieske/sports-picks-cms/internal/shared/httpx"
	"github.com/radieske/sports-picks-cms/pkg/contracts/events"
)

func (s *Server) notify(r *http.Request, entity, action, id string, siteIDs ...string) {
	if s.notif != nil {
		s.notif.Notify(r.Context(), entity, action, id, siteIDs...)
	}
}

// --- sports ---

func (s *Server) listSports(w http.ResponseWriter, r *http.Request) {
	out, err := s.store.ListSports(r.Context(), language(r))
	if err != nil {
		s.fail(w, "list sports", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.List[dto.Sport]{Data: out, Count: len(out)})
}

func (s *Server) createSport(w http.ResponseWriter, r *http.Request) {
	in, ok := decode[dto.SportInput](w, r)
	if !ok || !required(w, field{"name", in.Name}) {
		return
	}
	out, err := s.store.CreateSport(r.Context(), in)
	if err != nil {
		s.fail(w, "create sport", err)
		return
	}
	s.notify(r, events.EntitySport, events.ActionCreated, out.ID)
	httpx.WriteJSON(w, http.StatusCreated, dto.Single[dto.Sport]{Data: out})
}

func (s *Server) updateSport(w http.ResponseWriter, r *http.Request) {
	in, ok := decode[dto.SportInput](w, r)
	if !ok {
		return
	}
	out, err := s.store.UpdateSport(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		s.fail(w, "update sport", err)
		return
	}
	s.notify(r, events.EntitySport, events.ActionUpdated, out.ID)
	httpx.WriteJSON(w, http.StatusOK, dto.Single[dto.Sport]{Data: out})
}

func (s *Server) deleteSport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteSport(r.Context(), id); err != nil {
		s.fail(w, "delete sport", err)
		return
	}
	s.notify(r, events.EntitySport, events.ActionDeleted, id)
	httpx.WriteJSON(w, http.StatusOK, dto.Success{Success: true})
}

// --- leagues ---

func (s *Server) listLeagues(w http.ResponseWriter, r *http.Request) {
	out, err := s.store.ListLeagues(r.Context(), r.URL.Query().Get("sport_id"), language(r))
	if err != nil {
		s.fail(w, "list leagues", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.List[dto.League]{Data: out, Count: len(out)})
}

func (s *Server) createLeague(w http.ResponseWriter, r *http.Request) {
	in, ok := decode[dto.LeagueInput](w, r)
	if !ok || !required(w, field{"name", in.Name}, field{"sport_id", in.SportID}) {
		return
	}
	out, err := s.store.CreateLeague(r.Context(), in)
	if err != nil {
		s.fail(w, "create league", err)
		return
	}
	s.notify(r, events.EntityLeague, events.ActionCreated, out.ID)
	httpx.WriteJSON(w, http.StatusCreated, dto.Single[dto.League]{Data: out})
}

func (s *Server) updateLeague(w http.ResponseWriter, r *http.Request) {
	in, ok := decode[dto.LeagueInput](w, r)
	if !ok {
		return
	}
	out, err := s.store.UpdateLeague(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		s.fail(w, "update league", err)
		return
	}
	s.notify(r, events.EntityLeague, events.ActionUpdated, out.ID)
	httpx.WriteJSON(w, http.StatusOK, dto.Single[dto.League]{Data: out})
}

func (s *Server) deleteLeague(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteLeague(r.Context(), id); err != nil {
		s.fail(w, "delete league", err)
		return
	}
	s.notify(r, events.EntityLeague, events.ActionDeleted, id)
	httpx.WriteJSON(w, http.StatusOK, dto.Success{Success: true})
}

// --- teams ---

func (s *Server) listTeams(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := paging(w, r, 100)
	if !ok {
		return
	}
	q := r.URL.Query()
	out, total, err := s.store.ListTeams(r.Context(), repo.TeamFilter{
		LeagueID: q.Get("league_id"),
		SportID:  q.Get("sport_id"),
		Language: language(r),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		s.fail(w, "list teams", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.Page[dto.Team]{Data: out, Count: total, Limit: limit, Offset: offset})
}

func (s *Server) createTeam(w http.ResponseWriter, r *http.Request) {
	in, ok := decode[dto.TeamInput](w, r)
	if !ok || !required(w, field{"name", in.Name}, field{"league_id", in.LeagueID}) {
		return
	}
	out, err := s.store.CreateTeam(r.Context(), in)
	if err != nil {
		s.fail(w, "create team", err)
		return
	}
	s.notify(r, events.EntityTeam, events.ActionCreated, out.ID)
	httpx.WriteJSON(w, http.StatusCreated, dto.Single[dto.Team]{Data: out})
}

func (s *Server) updateTeam(w http.ResponseWriter, r *http.Request) {
	in, ok := decode[dto.TeamInput](w, r)
	if !ok {
		return
	}
	out, err := s.store.UpdateTeam(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		s.fail(w, "update team", err)
		return
	}
	s.notify(r, events.EntityTeam, events.ActionUpdated, out.ID)
	httpx.WriteJSON(w, http.StatusOK, dto.Single[dto.Team]{Data: out})
}

func (s *Server) deleteTeam(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteTeam(r.Context(), id); err != nil {
		s.fail(w, "delete team", err)
		return
	}
	s.notify(r, events.EntityTeam, events.ActionDeleted, id)
	httpx.WriteJSON(w, http.StatusOK, dto.Success{Success: true})
}

// --- market types ---

func (s *Server) listMarketTypes(w http.ResponseWriter, r *http.Request) {
	out, err := s.store.ListMarketTypes(r.Context(), r.URL.Query().Get("sport_id"), language(r))
	if err != nil {
		s.fail(w, "list market types", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.List[dto.MarketType]{Data: out, Count: len(out)})
}

func (s *Server) createMarketType(w http.ResponseWriter, r *http.Request) {
	in, ok := decode[dto.MarketTypeInput](w, r)
	if !ok || !required(w, field{"name", in.Name}) {
		return
	}
	out, err := s.store.CreateMarketType(r.Context(), in)
	if err != nil {
		s.fail(w, "create market type", err)
		return
	}
	s.notify(r, events.EntityMarketType, events.ActionCreated, out.ID)
	httpx.WriteJSON(w, http.StatusCreated, dto.Single[dto.MarketType]{Data: out})
}

func (s *Server) deleteMarketType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteMarketType(r.Context(), id); err != nil {
		s.fail(w, "delete market type", err)
		return
	}
	s.notify(r, events.EntityMarketType, events.ActionDeleted, id)
	httpx.WriteJSON(w, http.StatusOK, dto.Success{Success: true})
}
