package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/radieske/sports-picks-cms/internal/picks-api/analysis"
	"github.com/radieske/sports-picks-cms/internal/picks-api/auth"
	"github.com/radieske/sports-picks-cms/internal/picks-api/dto"
	"github.com/radieske/sports-picks-cms/internal/shared/httpx"
)

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[dto.AnalysisRequest](w, r)
	if !ok {
		return
	}
	raw := req.Prompt
	if (len(raw) == 0 || string(raw) == "null") && req.HomeTeam != "" {
		raw, _ = json.Marshal(analysis.BuildPrompt(req.HomeTeam, req.AwayTeam, req.Market, req.Selection))
	}

	p, _ := auth.FromContext(r.Context())
	prompt, err := analysis.ValidatePrompt(raw)
	if err != nil {
		var inv *analysis.InvalidPromptError
		if errors.As(err, &inv) && inv.Injection {
			s.log.Warn("prompt injection attempt", zap.String("user_id", p.UserID))
		}
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if s.gen == nil {
		httpx.WriteError(w, http.StatusInternalServerError, analysis.ErrNotConfigured.Error())
		return
	}
	text, err := s.gen.Generate(r.Context(), prompt)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, dto.AnalysisResponse{Analysis: text})
	case errors.Is(err, analysis.ErrRateLimited):
		httpx.WriteError(w, http.StatusTooManyRequests, analysis.ErrRateLimited.Error())
	case errors.Is(err, analysis.ErrPaymentRequired):
		httpx.WriteError(w, http.StatusPaymentRequired, analysis.ErrPaymentRequired.Error())
	case errors.Is(err, analysis.ErrUpstream):
		s.log.Error("analysis upstream error", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, analysis.ErrUpstream.Error())
	default:
		s.log.Error("analysis failed", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
