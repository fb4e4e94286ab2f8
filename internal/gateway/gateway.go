// Package gateway é o proxy reverso único na frente do picks-api e do embed-service.
package gateway

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/radieske/sports-picks-cms/internal/shared/httpx"
	"github.com/radieske/sports-picks-cms/internal/shared/metrics"
)

func proxy(log *zap.Logger, name, to string) (*httputil.ReverseProxy, error) {
	u, err := url.Parse(to)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid %s url %q", name, to)
	}
	rp := httputil.NewSingleHostReverseProxy(u)
	// CORS é responsabilidade do gateway; cabeçalhos repetidos do upstream quebram o navegador
	rp.ModifyResponse = func(resp *http.Response) error {
		for k := range resp.Header {
			if strings.HasPrefix(k, "Access-Control-") {
				resp.Header.Del(k)
			}
		}
		return nil
	}
	rp.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Warn("upstream unavailable", zap.String("upstream", name), zap.String("path", r.URL.Path), zap.Error(err))
		httpx.WriteError(w, http.StatusBadGateway, name+" unavailable")
	}
	return rp, nil
}

// New monta as rotas: /api/* vai pro picks-api sem o prefixo, /embed/* vai inteiro pro embed-service
func New(log *zap.Logger, picksAPIURL, embedURL string, m *metrics.HTTPMetrics) (http.Handler, error) {
	api, err := proxy(log, "picks-api", picksAPIURL)
	if err != nil {
		return nil, err
	}
	embed, err := proxy(log, "embed-service", embedURL)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	if m != nil {
		r.Use(m.Middleware)
	}
	r.Handle("/api/*", http.StripPrefix("/api", api))
	r.Handle("/embed/*", embed)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return httpx.WithCORS(r), nil
}
