package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/marqueehq/marquee/internal/auth"
	"github.com/marqueehq/marquee/internal/http/contract"
	"github.com/marqueehq/marquee/internal/http/counterparty"
	"github.com/marqueehq/marquee/internal/http/event"
	"github.com/marqueehq/marquee/internal/http/importcsv"
	"github.com/marqueehq/marquee/internal/http/payment"
)

func New(
	tokens *auth.Tokens,
	counterpartiesV1 *counterparty.Handler,
	eventsV1 *event.Handler,
	contractsV1 *contract.Handler,
	paymentsV1 *payment.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(tokens.Middleware)

		r.Route("/counterparties", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			counterpartiesV1.Routes(r)
		})

		r.Route("/events", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			eventsV1.Routes(r)
		})

		r.Route("/contracts", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			contractsV1.Routes(r)
		})

		r.Route("/payments", func(r chi.Router) {
			paymentsV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)
	})

	return router
}
