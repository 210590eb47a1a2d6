package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/feastcal/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET  /health
//	GET  /metrics
//	GET  /api/v1/languages
//	GET  /api/v1/years/{year}
//	GET  /api/v1/years/{year}/easter
//	GET  /api/v1/years/{year}/holidays
//	GET  /api/v1/years/{year}/months/{month}
//	GET  /api/v1/saints/today
//	GET  /api/v1/saints/{month}/{day}
//	GET  /api/v1/archive/years/{year}
//	GET  /api/v1/archive/feasts/{key}
//	GET  /api/v1/archive/days/{month}/{day}
//	POST /api/v1/admin/archive/{year}    (admin key)
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RequestIDMiddleware(),
		RecoveryMiddleware(logger),
		LoggingMiddleware(logger),
		MetricsMiddleware(handlers.metrics),
		CORSMiddleware(),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	r.Get("/health", handlers.HealthCheck)
	if handlers.metrics != nil {
		r.Handle("/metrics", handlers.metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(LanguageMiddleware(handlers.svc.Negotiate))

		r.Get("/languages", handlers.GetLanguages)

		r.Route("/years/{year}", func(r chi.Router) {
			r.Get("/", handlers.GetYear)
			r.Get("/easter", handlers.GetEaster)
			r.Get("/holidays", handlers.GetHolidays)
			r.Get("/months/{month}", handlers.GetMonth)
		})

		r.Get("/saints/today", handlers.GetSaintToday)
		r.Get("/saints/{month}/{day}", handlers.GetSaint)

		r.Route("/archive", func(r chi.Router) {
			r.Get("/years/{year}", handlers.GetArchivedYear)
			r.Get("/feasts/{key}", handlers.GetFeastHistory)
			r.Get("/days/{month}/{day}", handlers.GetArchivedDay)
		})

		r.Group(func(r chi.Router) {
			r.Use(AdminOnlyMiddleware(cfg, logger))
			r.Post("/admin/archive/{year}", handlers.ArchiveYear)
		})
	})

	return r
}
