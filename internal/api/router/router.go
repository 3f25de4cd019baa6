// Package router assembles the HTTP surface: the Telegram webhook,
// health probes, metrics, and the JWT-protected admin API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ahrie-ai/platform/internal/http/handlers"
	httpmiddleware "github.com/ahrie-ai/platform/internal/http/middleware"
	"github.com/ahrie-ai/platform/pkg/logging"
)

// Webhook rate limit: Telegram retries aggressively when we are slow,
// so allow a burst but keep the sustained rate modest per IP.
const (
	webhookRatePerSecond = 10
	webhookBurst         = 30
)

// Config holds router configuration.
type Config struct {
	Logger *logging.Logger

	TelegramWebhook *handlers.TelegramHandler
	Health          *handlers.HealthHandler

	// Admin API (requires AdminAuthSecret)
	AdminAuthSecret string
	Knowledge       *handlers.KnowledgeHandler
	Catalog         *handlers.CatalogHandler
	WebhookAdmin    *handlers.WebhookAdminHandler
	Jobs            *handlers.JobsHandler

	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints (webhook, health checks, metrics)
	r.Group(func(public chi.Router) {
		if cfg.Health != nil {
			public.Get("/health", cfg.Health.Liveness)
			public.Get("/health/ready", cfg.Health.Readiness)
		}
		if cfg.TelegramWebhook != nil {
			public.With(httpmiddleware.RateLimit(webhookRatePerSecond, webhookBurst)).
				Post("/webhooks/telegram", cfg.TelegramWebhook.Handle)
		}
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Admin routes (protected by JWT)
	if cfg.AdminAuthSecret != "" {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))

			if cfg.Knowledge != nil {
				admin.Route("/knowledge/{topic}", func(kr chi.Router) {
					kr.Get("/", cfg.Knowledge.GetTopic)
					kr.Put("/", cfg.Knowledge.PutTopic)
					kr.Post("/", cfg.Knowledge.AppendTopic)
				})
			}
			if cfg.Catalog != nil {
				admin.Route("/catalog", func(cr chi.Router) {
					cr.Get("/clinics", cfg.Catalog.ListClinics)
					cr.Post("/clinics", cfg.Catalog.UpsertClinic)
					cr.Get("/procedures", cfg.Catalog.ListProcedures)
					cr.Post("/procedures", cfg.Catalog.UpsertProcedure)
					cr.Post("/clinic-procedures", cfg.Catalog.LinkClinicProcedure)
					cr.Get("/halal-places", cfg.Catalog.ListHalalPlaces)
					cr.Post("/halal-places", cfg.Catalog.UpsertHalalPlace)
				})
			}
			if cfg.WebhookAdmin != nil {
				admin.Get("/telegram/webhook", cfg.WebhookAdmin.Info)
				admin.Post("/telegram/webhook", cfg.WebhookAdmin.Register)
				admin.Delete("/telegram/webhook", cfg.WebhookAdmin.Unregister)
			}
			if cfg.Jobs != nil {
				admin.Get("/jobs/{jobID}", cfg.Jobs.GetJob)
			}
		})
	}

	return r
}
