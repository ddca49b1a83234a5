package router

import (
	"innkeeper/internal/handlers/auth"
	"innkeeper/internal/handlers/booking"
	"innkeeper/internal/handlers/hotel"
	"innkeeper/internal/handlers/media"
	"innkeeper/internal/handlers/oplog"
	"innkeeper/internal/handlers/ops"
	"innkeeper/internal/handlers/payment"
	"innkeeper/internal/handlers/room"
	"innkeeper/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Hotel   hotel.Handler
	Room    room.Handler
	Booking booking.Handler
	User    user.Handler
	Payment payment.Handler
	Oplog   oplog.Handler
	Media   media.Handler
	Ops     ops.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Hotel.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Oplog.Router(routerGroup)
		r.DomainHandlers.Media.Router(routerGroup)
		r.DomainHandlers.Ops.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
