package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/lunar-calendar/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET    /health
//	GET    /api/v1/lunar/today
//	GET    /api/v1/lunar/date/{date}
//	GET    /api/v1/lunar/solar?year=&month=&day=&hour=&minute=&second=
//	GET    /api/v1/lunar/add?date=&value=&unit=
//	GET    /api/v1/lunar/format?date=&layout=
//	GET    /api/v1/lunar/months/{year}
//	GET    /api/v1/anniversaries
//	POST   /api/v1/anniversaries                  (API key)
//	GET    /api/v1/anniversaries/upcoming?from=&days=
//	GET    /api/v1/anniversaries/{id}
//	DELETE /api/v1/anniversaries/{id}             (API key)
//	GET    /api/v1/anniversaries/{id}/occurrences?from=&count=
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(ChainMiddleware(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(),
	))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	authWrap := AuthMiddleware(cfg, logger)

	// ==========================================================================
	// Public routes
	// ==========================================================================
	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1/lunar", func(r chi.Router) {
		r.Get("/today", handlers.GetToday)
		r.Get("/date/{date}", handlers.GetDate)
		r.Get("/solar", handlers.GetFromLunar)
		r.Get("/add", handlers.GetAdd)
		r.Get("/format", handlers.GetFormat)
		r.Get("/months/{year}", handlers.GetYearMonths)
	})

	// ==========================================================================
	// Anniversaries (writes require the API key)
	// ==========================================================================
	r.Route("/api/v1/anniversaries", func(r chi.Router) {
		r.Get("/", handlers.ListAnniversaries)
		r.Get("/upcoming", handlers.GetUpcoming)
		r.Get("/{id}", handlers.GetAnniversary)
		r.Get("/{id}/occurrences", handlers.GetOccurrences)

		r.Group(func(r chi.Router) {
			r.Use(authWrap)
			r.Post("/", handlers.CreateAnniversary)
			r.Delete("/{id}", handlers.DeleteAnniversary)
		})
	})

	return r
}
