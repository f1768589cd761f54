package router

import (
	"net/http"

	_ "hotelos/docs" // registers the swagger spec
	"hotelos/internal/handlers/auth"
	"hotelos/internal/handlers/availability"
	"hotelos/internal/handlers/booking"
	"hotelos/internal/handlers/checkout"
	"hotelos/internal/handlers/guest"
	"hotelos/internal/handlers/health"
	"hotelos/internal/handlers/invoice"
	"hotelos/internal/handlers/ledger"
	"hotelos/internal/handlers/room"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Auth         auth.Handler
	Availability availability.Handler
	Room         room.Handler
	Guest        guest.Handler
	Booking      booking.Handler
	Ledger       ledger.Handler
	Checkout     checkout.Handler
	Invoice      invoice.Handler
	Health       health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

// SetupRoutes mounts the API under /v1 behind guards. Which routes skip the
// guards is decided by the permissions file.
func (r *Router) SetupRoutes(router chi.Router, guards ...func(http.Handler) http.Handler) {
	r.DomainHandlers.Health.Router(router)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(guards...)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Guest.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup, r.DomainHandlers.Ledger.BookingRoutes)
		r.DomainHandlers.Checkout.Router(routerGroup)
		r.DomainHandlers.Invoice.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
