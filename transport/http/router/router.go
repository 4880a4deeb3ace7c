package router

import (
	"bunkhouse/internal/handlers/auth"
	"bunkhouse/internal/handlers/booking"
	"bunkhouse/internal/handlers/document"
	"bunkhouse/internal/handlers/housekeeping"
	"bunkhouse/internal/handlers/room"
	"bunkhouse/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	User         user.Handler
	Room         room.Handler
	Booking      booking.Handler
	Housekeeping housekeeping.Handler
	Document     document.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Housekeeping.Router(routerGroup)
		r.DomainHandlers.Document.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
