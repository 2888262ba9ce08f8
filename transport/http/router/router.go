package router

import (
	"haunters/internal/handlers/booking"
	"haunters/internal/handlers/dispute"
	"haunters/internal/handlers/earnings"
	"haunters/internal/handlers/notification"
	"haunters/internal/handlers/viewing"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Viewing      viewing.Handler
	Booking      booking.Handler
	Dispute      dispute.Handler
	Earnings     earnings.Handler
	Notification notification.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Viewing.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Dispute.Router(routerGroup)
		r.DomainHandlers.Earnings.Router(routerGroup)
		r.DomainHandlers.Notification.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
