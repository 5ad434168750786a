package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/erazemk/shutils/internal/metrics"
	"github.com/erazemk/shutils/internal/report"
	"github.com/erazemk/shutils/internal/species"
	"github.com/erazemk/shutils/internal/tracker"
)

// Config holds the router settings.
type Config struct {
	JWTSecret  string
	TokenTTL   time.Duration
	LoginRate  rate.Limit
	LoginBurst int
	// Species resolves names; nil means an empty registry.
	Species *species.Registry
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(t *tracker.Tracker, cfg Config) http.Handler {
	reg := cfg.Species
	if reg == nil {
		reg = species.Empty()
	}
	if cfg.LoginRate <= 0 {
		cfg.LoginRate = rate.Every(5 * time.Second)
	}
	if cfg.LoginBurst < 1 {
		cfg.LoginBurst = 5
	}
	s := t.Store()

	authHandler := &AuthHandler{Store: s, JWTSecret: cfg.JWTSecret, TokenTTL: cfg.TokenTTL}
	huntsHandler := &HuntsHandler{Tracker: t, Species: reg}
	shiniesHandler := &ShiniesHandler{Tracker: t, Species: reg}
	countersHandler := &CountersHandler{Tracker: t, Species: reg}
	statsHandler := &StatsHandler{Reporter: report.New(s.DB(), reg.Name)}
	backupHandler := &BackupHandler{Tracker: t, Species: reg}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(LoggingMiddleware)
	r.Use(Recovery)

	r.Get("/healthz", Health(s))
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.With(RateLimit(NewIPRateLimiter(cfg.LoginRate, cfg.LoginBurst))).
			Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(cfg.JWTSecret, s))

			r.Post("/auth/logout", authHandler.Logout)
			r.Put("/auth/password", authHandler.ChangePassword)

			r.Route("/hunts", func(r chi.Router) {
				r.Get("/", huntsHandler.List)
				r.Post("/", huntsHandler.Create)
				r.Get("/{id}", huntsHandler.Get)
				r.Put("/{id}", huntsHandler.Update)
				r.Delete("/{id}", huntsHandler.Delete)
				r.Post("/{id}/phase", huntsHandler.NewPhase)
			})

			r.Route("/shinies", func(r chi.Router) {
				r.Get("/", shiniesHandler.List)
				r.Post("/", shiniesHandler.Create)
				r.Get("/{id}", shiniesHandler.Get)
				r.Put("/{id}", shiniesHandler.Update)
				r.Delete("/{id}", shiniesHandler.Delete)
				r.Put("/{id}/image", shiniesHandler.UploadImage)
				r.Get("/{id}/image", shiniesHandler.GetImage)
			})

			r.Route("/counters", func(r chi.Router) {
				r.Get("/", countersHandler.List)
				r.Put("/{n}", countersHandler.Edit)
				r.Post("/{n}/increment", countersHandler.Increment)
				r.Post("/{n}/decrement", countersHandler.Decrement)
				r.Post("/{n}/shiny", countersHandler.Shiny)
			})

			r.Get("/stats", statsHandler.Get)
			r.Get("/stats/chart.png", statsHandler.Chart)

			r.Get("/export", backupHandler.Export)
			r.Post("/import", backupHandler.Import)
		})
	})

	return r
}
