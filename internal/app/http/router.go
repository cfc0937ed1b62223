package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"coalo/go_backend/internal/app/config"
	"coalo/go_backend/internal/app/http/handlers"
	"coalo/go_backend/internal/app/http/middleware"
	"coalo/go_backend/internal/app/observability"
)

func NewRouter(cfg config.Config, h *handlers.Handlers, metrics *observability.Metrics, log logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Internal-Token"},
		ExposedHeaders: []string{"Content-Disposition", "X-Quote-Number"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/pricing", h.ListPricing)
		r.Get("/pricing/{tier}", h.GetPricing)
		r.Post("/pricing/estimate", h.Estimate)

		r.Post("/quotes", h.CreateQuote)
		r.Post("/quotes/preview", h.PreviewQuote)

		r.Post("/contact", h.SubmitContact)

		r.Group(func(r chi.Router) {
			r.Use(middleware.InternalAuth(cfg.InternalToken))

			r.Get("/admin/sequence", h.CurrentSequence)
		})
	})

	return r
}
