package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radieske/sports-picks-cms/internal/embed-service/dto"
	"github.com/radieske/sports-picks-cms/internal/embed-service/render"
	"github.com/radieske/sports-picks-cms/internal/embed-service/repo"
	"github.com/radieske/sports-picks-cms/internal/shared/httpx"
	"github.com/radieske/sports-picks-cms/internal/shared/metrics"
)

type ReadRepo interface {
	GetSite(ctx context.Context, id string) (dto.Site, error)
	ListSitePicks(ctx context.Context, siteID string) ([]dto.Pick, error)
	GetPick(ctx context.Context, id string) (dto.Pick, error)
}

// FragmentCache é opcional; nil desliga o cache
type FragmentCache interface {
	GetSite(ctx context.Context, siteID string) (string, bool, error)
	SetSite(ctx context.Context, siteID, html string) error
	GetPick(ctx context.Context, pickID string) (string, bool, error)
	SetPick(ctx context.Context, pickID, html string) error
}

const cacheControl = "public, max-age=60"

// API serve os fragmentos HTML dos widgets
type API struct {
	log      *zap.Logger
	repo     ReadRepo
	cache    FragmentCache
	renderer *render.Renderer
	metrics  *metrics.HTTPMetrics
}

func NewAPI(log *zap.Logger, rr ReadRepo, c FragmentCache, rd *render.Renderer, m *metrics.HTTPMetrics) *API {
	return &API{log: log, repo: rr, cache: c, renderer: rd, metrics: m}
}

func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	if a.metrics != nil {
		r.Use(a.metrics.Middleware)
	}
	r.Get("/embed/site", a.site)
	r.Get("/embed/pick", a.pick)
	return httpx.WithCORS(r)
}

func writeHTML(w http.ResponseWriter, status int, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status == http.StatusOK {
		w.Header().Set("Cache-Control", cacheControl)
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(html))
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

// validID evita ir ao banco com ids que o Postgres rejeitaria como uuid
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (a *API) site(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeText(w, http.StatusBadRequest, "Missing site id")
		return
	}
	if !validID(id) {
		writeText(w, http.StatusNotFound, "Site not found")
		return
	}
	ctx := r.Context()

	if a.cache != nil {
		html, ok, err := a.cache.GetSite(ctx, id)
		if err != nil {
			a.log.Warn("embed cache read failed", zap.String("site_id", id), zap.Error(err))
		} else if ok {
			writeHTML(w, http.StatusOK, html)
			return
		}
	}

	site, err := a.repo.GetSite(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		writeText(w, http.StatusNotFound, "Site not found")
		return
	}
	if err != nil {
		a.log.Error("load site", zap.String("site_id", id), zap.Error(err))
		writeHTML(w, http.StatusInternalServerError, render.ErrorFragment)
		return
	}

	picks, err := a.repo.ListSitePicks(ctx, id)
	if err != nil {
		a.log.Error("load site picks", zap.String("site_id", id), zap.Error(err))
		writeHTML(w, http.StatusInternalServerError, render.ErrorFragment)
		return
	}

	html, err := a.renderer.Site(site, picks)
	if err != nil {
		a.log.Error("render site", zap.String("site_id", id), zap.Error(err))
		writeHTML(w, http.StatusInternalServerError, render.ErrorFragment)
		return
	}

	if a.cache != nil {
		if err := a.cache.SetSite(ctx, id, html); err != nil {
			a.log.Warn("embed cache write failed", zap.String("site_id", id), zap.Error(err))
		}
	}
	writeHTML(w, http.StatusOK, html)
}

func (a *API) pick(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeText(w, http.StatusBadRequest, "Missing pick id")
		return
	}
	if !validID(id) {
		writeText(w, http.StatusNotFound, "Pick not found")
		return
	}
	ctx := r.Context()

	if a.cache != nil {
		html, ok, err := a.cache.GetPick(ctx, id)
		if err != nil {
			a.log.Warn("embed cache read failed", zap.String("pick_id", id), zap.Error(err))
		} else if ok {
			writeHTML(w, http.StatusOK, html)
			return
		}
	}

	p, err := a.repo.GetPick(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		writeText(w, http.StatusNotFound, "Pick not found")
		return
	}
	if err != nil {
		a.log.Error("load pick", zap.String("pick_id", id), zap.Error(err))
		writeText(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	html, err := a.renderer.Pick(p)
	if err != nil {
		a.log.Error("render pick", zap.String("pick_id", id), zap.Error(err))
		writeText(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if a.cache != nil {
		if err := a.cache.SetPick(ctx, id, html); err != nil {
			a.log.Warn("embed cache write failed", zap.String("pick_id", id), zap.Error(err))
		}
	}
	writeHTML(w, http.StatusOK, html)
}
