package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bfstore/lojinha/internal/auth"
	"github.com/bfstore/lojinha/internal/http/credit"
	"github.com/bfstore/lojinha/internal/http/employee"
	"github.com/bfstore/lojinha/internal/http/events"
	"github.com/bfstore/lojinha/internal/http/kiosk"
	"github.com/bfstore/lojinha/internal/http/purchase"
	"github.com/bfstore/lojinha/internal/http/report"
)

func New(
	verifier *auth.Verifier,
	corsOrigin string,
	employeesV1 *employee.Handler,
	purchasesV1 *purchase.Handler,
	kioskV1 *kiosk.Handler,
	creditsV1 *credit.Handler,
	reportsV1 *report.Handler,
	eventsV1 *events.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Handle("/metrics", promhttp.Handler())

	// The kiosk terminal authenticates per purchase with a PIN, not a
	// bearer token.
	router.Route("/kiosk", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		kioskV1.Routes(r)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(verifier.Middleware)

		r.Route("/employees", employeesV1.Routes)

		r.Route("/purchases", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			purchasesV1.Routes(r)
		})

		r.Route("/credits", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			creditsV1.Routes(r)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			reportsV1.Routes(r)
		})

		r.Route("/events", eventsV1.Routes)
	})

	return router
}
