package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/NarenDawar/ai-governance-hub/internal/infrastructure/http/handlers"
	"github.com/NarenDawar/ai-governance-hub/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler          *handlers.AuthHandler
	HealthHandler        *handlers.HealthHandler
	UsersHandler         *handlers.UsersHandler
	OrganizationsHandler *handlers.OrganizationsHandler
	AssetsHandler        *handlers.AssetsHandler
	AssessmentsHandler   *handlers.AssessmentsHandler
	TemplatesHandler     *handlers.TemplatesHandler
	VendorsHandler       *handlers.VendorsHandler
	NotificationsHandler *handlers.NotificationsHandler
	DashboardHandler     *handlers.DashboardHandler
	Auth                 *middleware.AuthValidator
	OAuthBegin           http.HandlerFunc // GET /api/auth/{provider}
	OAuthCallback        http.HandlerFunc // GET /api/auth/{provider}/callback
	Log                  zerolog.Logger
	CORS                 func(http.Handler) http.Handler
	Secure               func(http.Handler) http.Handler
	IPRateLimit          func(http.Handler) http.Handler
	OrgRateLimit         func(http.Handler) http.Handler
	Metrics              bool // expose /metrics
}

// NewRouter assembles the API surface. Everything under /api past the auth
// routes requires a valid access token; tenant routes additionally require
// organization membership, and a few mutations require the ADMIN role.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			if cfg.IPRateLimit != nil {
				r.Use(cfg.IPRateLimit)
			}
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
			r.Post("/refresh", cfg.AuthHandler.Refresh)
			if cfg.OAuthBegin != nil {
				r.Get("/{provider}", cfg.OAuthBegin)
			}
			if cfg.OAuthCallback != nil {
				r.Get("/{provider}/callback", cfg.OAuthCallback)
			}
		})

		// Authenticated routes. Organization membership is not yet required
		// here so that onboarding (create or join an organization) works.
		r.Group(func(r chi.Router) {
			r.Use(cfg.Auth.Handler)

			r.Get("/users/me", cfg.UsersHandler.Me)
			r.Get("/notifications", cfg.NotificationsHandler.ListUnread)
			r.Patch("/notifications", cfg.NotificationsHandler.MarkAllRead)

			r.Route("/organizations", func(r chi.Router) {
				r.Post("/", cfg.OrganizationsHandler.Create)
				r.Post("/join", cfg.OrganizationsHandler.Join)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireOrganization)
					r.Get("/me", cfg.OrganizationsHandler.Me)
					r.Post("/leave", cfg.OrganizationsHandler.Leave)
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireAdmin)
						r.Get("/users", cfg.OrganizationsHandler.ListUsers)
						r.Patch("/users", cfg.OrganizationsHandler.UpdateUserRole)
					})
				})
			})

			// Tenant routes.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireOrganization)
				if cfg.OrgRateLimit != nil {
					r.Use(cfg.OrgRateLimit)
				}

				r.Route("/assets", func(r chi.Router) {
					r.Get("/", cfg.AssetsHandler.List)
					r.Post("/", cfg.AssetsHandler.Create)
					r.Post("/sync", cfg.AssetsHandler.Sync)
					r.Route("/{assetID}", func(r chi.Router) {
						r.Get("/", cfg.AssetsHandler.Get)
						r.Patch("/", cfg.AssetsHandler.Update)
						r.Delete("/", cfg.AssetsHandler.Delete)
						r.Get("/auditlog", cfg.AssetsHandler.AuditLog)
						r.Get("/assessments", cfg.AssetsHandler.ListAssessments)
						r.Post("/assessments", cfg.AssetsHandler.CreateAssessment)
					})
				})

				r.Route("/assessments", func(r chi.Router) {
					r.Get("/{assessmentID}", cfg.AssessmentsHandler.Get)
					r.Patch("/{assessmentID}", cfg.AssessmentsHandler.Update)
				})

				r.Route("/assessment-templates", func(r chi.Router) {
					r.Get("/", cfg.TemplatesHandler.List)
					r.Get("/{templateID}", cfg.TemplatesHandler.Get)
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireAdmin)
						r.Post("/", cfg.TemplatesHandler.Create)
						r.Put("/{templateID}", cfg.TemplatesHandler.Update)
						r.Delete("/{templateID}", cfg.TemplatesHandler.Delete)
					})
				})

				r.Route("/vendors", func(r chi.Router) {
					r.Get("/", cfg.VendorsHandler.List)
					r.Post("/", cfg.VendorsHandler.Create)
					r.Get("/{vendorID}", cfg.VendorsHandler.Get)
					r.Patch("/{vendorID}", cfg.VendorsHandler.Update)
					r.Delete("/{vendorID}", cfg.VendorsHandler.Delete)
				})

				r.Get("/dashboard/stats", cfg.DashboardHandler.Stats)
			})
		})
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
