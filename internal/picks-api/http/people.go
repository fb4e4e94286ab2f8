package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/radieske/sports-picks-cms/internal/picks-api/auth"
	"github.com/radieske/sports-picks-cms/internal/picks-api/dto"
	"github.com/radieske/sports-picks-cms/internal/shared/httpx"
	"github.com/radieske/sports-picks-cms/pkg/contracts/events"
)

// --- bookmakers ---

// listPublicBookmakers usa a view sem parâmetros de afiliado
func (s *Server) listPublicBookmakers(w http.ResponseWriter, r *http.Request) {
	out, err := s.store.ListPublicBookmakers(r.Context())
	if err != nil {
		s.fail(w, "list bookmakers", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.List[dto.BookmakerPublic]{Data: out, Count: len(out)})
}

func (s *Server) listBookmakers(w http.ResponseWriter, r *http.Request) {
	out, err := s.store.ListBookmakers(r.Context())
	if err != nil {
		s.fail(w, "list bookmakers", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.List[dto.Bookmaker]{Data: out, Count: len(out)})
}

func (s *Server) createBookmaker(w http.ResponseWriter, r *http.Request) {
	in, ok := decode[dto.BookmakerInput](w, r)
	if !ok || !required(w, field{"name", in.Name}) {
		return
	}
	out, err := s.store.CreateBookmaker(r.Context(), in)
	if err != nil {
		s.fail(w, "create bookmaker", err)
		return
	}
	s.notify(r, events.EntityBookmaker, events.ActionCreated, out.ID)
	httpx.WriteJSON(w, http.StatusCreated, dto.Single[dto.Bookmaker]{Data: out})
}

func (s *Server) updateBookmaker(w http.ResponseWriter, r *http.Request) {
	in, ok := decode[dto.BookmakerInput](w, r)
	if !ok {
		return
	}
	out, err := s.store.UpdateBookmaker(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		s.fail(w, "update bookmaker", err)
		return
	}
	s.notify(r, events.EntityBookmaker, events.ActionUpdated, out.ID)
	httpx.WriteJSON(w, http.StatusOK, dto.Single[dto.Bookmaker]{Data: out})
}

func (s *Server) deleteBookmaker(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteBookmaker(r.Context(), id); err != nil {
		s.fail(w, "delete bookmaker", err)
		return
	}
	s.notify(r, events.EntityBookmaker, events.ActionDeleted, id)
	httpx.WriteJSON(w, http.StatusOK, dto.Success{Success: true})
}

// --- analysts ---

func (s *Server) listAnalysts(w http.ResponseWriter, r *http.Request) {
	out, err := s.store.ListAnalysts(r.Context())
	if err != nil {
		s.fail(w, "list analysts", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.List[dto.Analyst]{Data: out, Count: len(out)})
}

// createAnalyst usa o usuário autenticado quando user_id não vem no corpo
func (s *Server) createAnalyst(w http.ResponseWriter, r *http.Request) {
	in, ok := decode[dto.AnalystInput](w, r)
	if !ok || !required(w, field{"display_name", in.DisplayName}) {
		return
	}
	if in.UserID == nil {
		if p, ok := auth.FromContext(r.Context()); ok {
			in.UserID = &p.UserID
		}
	}
	out, err := s.store.CreateAnalyst(r.Context(), in)
	if err != nil {
		s.fail(w, "create analyst", err)
		return
	}
	s.notify(r, events.EntityAnalyst, events.ActionCreated, out.ID)
	httpx.WriteJSON(w, http.StatusCreated, dto.Single[dto.Analyst]{Data: out})
}

func (s *Server) updateAnalyst(w http.ResponseWriter, r *http.Request) {
	in, ok := decode[dto.AnalystInput](w, r)
	if !ok {
		return
	}
	out, err := s.store.UpdateAnalyst(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		s.fail(w, "update analyst", err)
		return
	}
	s.notify(r, events.EntityAnalyst, events.ActionUpdated, out.ID)
	httpx.WriteJSON(w, http.StatusOK, dto.Single[dto.Analyst]{Data: out})
}

func (s *Server) deleteAnalyst(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteAnalyst(r.Context(), id); err != nil {
		s.fail(w, "delete analyst", err)
		return
	}
	s.notify(r, events.EntityAnalyst, events.ActionDeleted, id)
	httpx.WriteJSON(w, http.StatusOK, dto.Success{Success: true})
}
