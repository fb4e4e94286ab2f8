package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/radieske/sports-picks-cms/internal/maintenance"
	"github.com/radieske/sports-picks-cms/internal/picks-api/analysis"
	"github.com/radieske/sports-picks-cms/internal/picks-api/auth"
	"github.com/radieske/sports-picks-cms/internal/picks-api/dto"
	"github.com/radieske/sports-picks-cms/internal/picks-api/repo"
	"github.com/radieske/sports-picks-cms/internal/shared/httpx"
	"github.com/radieske/sports-picks-cms/internal/shared/metrics"
)

type SportStore interface {
	ListSports(ctx context.Context, language string) ([]dto.Sport, error)
	CreateSport(ctx context.Context, in dto.SportInput) (dto.Sport, error)
	UpdateSport(ctx context.Context, id string, in dto.SportInput) (dto.Sport, error)
	DeleteSport(ctx context.Context, id string) error
}

type LeagueStore interface {
	ListLeagues(ctx context.Context, sportID, language string) ([]dto.League, error)
	CreateLeague(ctx context.Context, in dto.LeagueInput) (dto.League, error)
	UpdateLeague(ctx context.Context, id string, in dto.LeagueInput) (dto.League, error)
	DeleteLeague(ctx context.Context, id string) error
}

type TeamStore interface {
	ListTeams(ctx context.Context, f repo.TeamFilter) ([]dto.Team, int, error)
	CreateTeam(ctx context.Context, in dto.TeamInput) (dto.Team, error)
	UpdateTeam(ctx context.Context, id string, in dto.TeamInput) (dto.Team, error)
	DeleteTeam(ctx context.Context, id string) error
}

type MarketTypeStore interface {
	ListMarketTypes(ctx context.Context, sportID, language string) ([]dto.MarketType, error)
	CreateMarketType(ctx context.Context, in dto.MarketTypeInput) (dto.MarketType, error)
	DeleteMarketType(ctx context.Context, id string) error
}

type BookmakerStore interface {
	ListPublicBookmakers(ctx context.Context) ([]dto.BookmakerPublic, error)
	ListBookmakers(ctx context.Context) ([]dto.Bookmaker, error)
	CreateBookmaker(ctx context.Context, in dto.BookmakerInput) (dto.Bookmaker, error)
	UpdateBookmaker(ctx context.Context, id string, in dto.BookmakerInput) (dto.Bookmaker, error)
	DeleteBookmaker(ctx context.Context, id string) error
}

type AnalystStore interface {
	ListAnalysts(ctx context.Context) ([]dto.Analyst, error)
	CreateAnalyst(ctx context.Context, in dto.AnalystInput) (dto.Analyst, error)
	UpdateAnalyst(ctx context.Context, id string, in dto.AnalystInput) (dto.Analyst, error)
	DeleteAnalyst(ctx context.Context, id string) error
}

type SiteStore interface {
	ListSites(ctx context.Context, activeOnly bool) ([]dto.Site, error)
	ResolveSite(ctx context.Context, domain string) (dto.Site, error)
	CreateSite(ctx context.Context, in dto.SiteInput) (dto.Site, error)
	UpdateSite(ctx context.Context, id string, in dto.SiteInput) (dto.Site, error)
	DeleteSite(ctx context.Context, id string) error
}

type EventStore interface {
	ListEvents(ctx context.Context, f repo.EventFilter) ([]dto.Event, int, error)
	CreateEvent(ctx context.Context, in dto.EventInput) (dto.Event, error)
	UpdateEvent(ctx context.Context, id string, in dto.EventInput) (dto.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

type PickStore interface {
	ListPicks(ctx context.Context, f repo.PickFilter) ([]dto.Pick, int, error)
	CreatePick(ctx context.Context, in dto.PickInput) (dto.Pick, error)
	UpdatePick(ctx context.Context, id string, in dto.PickInput) (dto.Pick, []string, error)
	DeletePick(ctx context.Context, id string) ([]string, error)
	SetPickSites(ctx context.Context, pickID string, siteIDs []string) ([]string, error)
}

// Store é tudo que a API precisa do banco; *repo.Postgres implementa
type Store interface {
	SportStore
	LeagueStore
	TeamStore
	MarketTypeStore
	BookmakerStore
	AnalystStore
	SiteStore
	EventStore
	PickStore
}

type Maintenance interface {
	Cleanup(ctx context.Context) (maintenance.Result, error)
	StaleEvents(ctx context.Context) ([]string, error)
}

type Notifier interface {
	Notify(ctx context.Context, entity, action, id string, siteIDs ...string)
}

// Deps agrupa as dependências opcionais do servidor
type Deps struct {
	Store       Store
	Auth        *auth.Authenticator
	Notifier    Notifier
	Generator   analysis.Generator // nil: /v1/analysis responde 500
	Maintenance Maintenance
	WS          http.HandlerFunc
	Metrics     *metrics.HTTPMetrics
	// EmbedBaseURL é a base pública do embed-service usada nos snippets
	EmbedBaseURL string
}

type Server struct {
	log   *zap.Logger
	store Store
	auth  *auth.Authenticator
	notif Notifier
	gen   analysis.Generator
	maint Maintenance
	ws    http.HandlerFunc
	mtr   *metrics.HTTPMetrics
	embed string
	now   func() time.Time
}

func NewServer(log *zap.Logger, d Deps) *Server {
	return &Server{
		log:   log,
		store: d.Store,
		auth:  d.Auth,
		notif: d.Notifier,
		gen:   d.Generator,
		maint: d.Maintenance,
		ws:    d.WS,
		mtr:   d.Metrics,
		embed: d.EmbedBaseURL,
		now:   time.Now,
	}
}

// Router monta as rotas: leituras públicas, escritas só para admin
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if s.mtr != nil {
		r.Use(s.mtr.Middleware)
	}
	if s.auth != nil {
		r.Use(s.auth.Middleware(s.log))
	}

	admin := auth.RequireRole(auth.RoleAdmin)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/sports", s.listSports)
		r.With(admin).Post("/sports", s.createSport)
		r.With(admin).Put("/sports/{id}", s.updateSport)
		r.With(admin).Delete("/sports/{id}", s.deleteSport)

		r.Get("/leagues", s.listLeagues)
		r.With(admin).Post("/leagues", s.createLeague)
		r.With(admin).Put("/leagues/{id}", s.updateLeague)
		r.With(admin).Delete("/leagues/{id}", s.deleteLeague)

		r.Get("/teams", s.listTeams)
		r.With(admin).Post("/teams", s.createTeam)
		r.With(admin).Put("/teams/{id}", s.updateTeam)
		r.With(admin).Delete("/teams/{id}", s.deleteTeam)

		r.Get("/market-types", s.listMarketTypes)
		r.With(admin).Post("/market-types", s.createMarketType)
		r.With(admin).Delete("/market-types/{id}", s.deleteMarketType)

		r.Get("/bookmakers", s.listPublicBookmakers)
		r.With(admin).Post("/bookmakers", s.createBookmaker)
		r.With(admin).Put("/bookmakers/{id}", s.updateBookmaker)
		r.With(admin).Delete("/bookmakers/{id}", s.deleteBookmaker)

		r.Get("/analysts", s.listAnalysts)
		r.With(admin).Post("/analysts", s.createAnalyst)
		r.With(admin).Put("/analysts/{id}", s.updateAnalyst)
		r.With(admin).Delete("/analysts/{id}", s.deleteAnalyst)

		r.Get("/sites", s.listSites)
		r.Get("/sites/resolve", s.resolveSite)
		r.Get("/sites/{id}/embed-code", s.siteEmbedCode)
		r.With(admin).Post("/sites", s.createSite)
		r.With(admin).Put("/sites/{id}", s.updateSite)
		r.With(admin).Delete("/sites/{id}", s.deleteSite)

		r.Get("/events", s.listEvents)
		r.With(admin).Post("/events", s.createEvent)
		r.With(admin).Put("/events/{id}", s.updateEvent)
		r.With(admin).Delete("/events/{id}", s.deleteEvent)

		r.Get("/picks", s.listPicks)
		r.Get("/picks/{id}/embed-code", s.pickEmbedCode)
		r.With(admin).Post("/picks", s.createPick)
		r.With(admin).Put("/picks", s.updatePickLegacy)    // id no corpo
		r.With(admin).Delete("/picks", s.deletePickLegacy) // ?id=
		r.With(admin).Put("/picks/{id}", s.updatePick)
		r.With(admin).Delete("/picks/{id}", s.deletePick)
		r.With(admin).Put("/picks/{id}/sites", s.setPickSites)

		r.With(auth.RequireRole(auth.RoleAdmin, auth.RoleAnalyst)).Post("/analysis", s.analyze)

		r.Route("/admin", func(r chi.Router) {
			r.Use(admin)
			r.Get("/sites", s.listAllSites)
			r.Get("/bookmakers", s.listBookmakers)
			r.Post("/cleanup", s.cleanup)
			r.Get("/stale-events", s.staleEvents)
		})

		if s.ws != nil {
			r.Get("/ws", s.ws)
		}
	})

	return httpx.WithCORS(r)
}
