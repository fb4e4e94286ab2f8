package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/radieske/sports-picks-cms/internal/picks-api/dto"
	"github.com/radieske/sports-picks-cms/internal/picks-api/repo"
	"github.com/radieske/sports-picks-cms/internal/shared/httpx"
	"github.com/radieske/sports-picks-cms/pkg/contracts/events"
)

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := paging(w, r, 50)
	if !ok {
		return
	}
	q := r.URL.Query()
	f := repo.EventFilter{
		SiteID:   q.Get("site_id"),
		SportID:  q.Get("sport_id"),
		LeagueID: q.Get("league_id"),
		Upcoming: q.Get("upcoming") == "true",
		Now:      s.now(),
		Language: language(r),
		Limit:    limit,
		Offset:   offset,
	}
	for _, p := range []struct {
		name string
		dst  **time.Time
	}{{"from_date", &f.From}, {"to_date", &f.To}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		t, err := dto.ParseFlexTime(v)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "Invalid "+p.name)
			return
		}
		*p.dst = &t
	}

	out, total, err := s.store.ListEvents(r.Context(), f)
	if err != nil {
		s.fail(w, "list events", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.Page[dto.Event]{Data: out, Count: total, Limit: limit, Offset: offset})
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	in, ok := decode[dto.EventInput](w, r)
	if !ok {
		return
	}
	var when *string
	if in.EventDatetime != nil && !in.EventDatetime.IsZero() {
		v := in.EventDatetime.Format(time.RFC3339)
		when = &v
	}
	if !required(w,
		field{"sport_id", in.SportID},
		field{"league_id", in.LeagueID},
		field{"home_team_id", in.HomeTeamID},
		field{"away_team_id", in.AwayTeamID},
		field{"event_datetime", when},
	) {
		return
	}
	out, err := s.store.CreateEvent(r.Context(), in)
	if err != nil {
		s.fail(w, "create event", err)
		return
	}
	s.notify(r, events.EntityEvent, events.ActionCreated, out.ID, siteOf(out.SiteID)...)
	httpx.WriteJSON(w, http.StatusCreated, dto.Single[dto.Event]{Data: out})
}

func (s *Server) updateEvent(w http.ResponseWriter, r *http.Request) {
	in, ok := decode[dto.EventInput](w, r)
	if !ok {
		return
	}
	out, err := s.store.UpdateEvent(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		s.fail(w, "update event", err)
		return
	}
	s.notify(r, events.EntityEvent, events.ActionUpdated, out.ID, siteOf(out.SiteID)...)
	httpx.WriteJSON(w, http.StatusOK, dto.Single[dto.Event]{Data: out})
}

func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteEvent(r.Context(), id); err != nil {
		s.fail(w, "delete event", err)
		return
	}
	s.notify(r, events.EntityEvent, events.ActionDeleted, id)
	httpx.WriteJSON(w, http.StatusOK, dto.Success{Success: true})
}

func siteOf(id *string) []string {
	if id == nil || *id == "" {
		return nil
	}
	return []string{*id}
}
