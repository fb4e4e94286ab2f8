package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/radieske/sports-picks-cms/internal/picks-api/dto"
	"github.com/radieske/sports-picks-cms/internal/picks-api/embedcode"
	"github.com/radieske/sports-picks-cms/internal/shared/httpx"
)

func (s *Server) writeEmbedCode(w http.ResponseWriter, r *http.Request, build func(base, id string) (string, string, error)) {
	code, u, err := build(s.embed, chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.EmbedCode{Code: code, URL: u})
}

func (s *Server) siteEmbedCode(w http.ResponseWriter, r *http.Request) {
	s.writeEmbedCode(w, r, embedcode.Site)
}

func (s *Server) pickEmbedCode(w http.ResponseWriter, r *http.Request) {
	s.writeEmbedCode(w, r, embedcode.Pick)
}
