package handler

import (
	"stayease/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

// Router mounts every agent endpoint. Routes other than session,
// registration and property browsing answer 401 until someone signs in.
type Router struct {
	Sessions   *SessionHandler
	Properties *PropertyHandler
	Bookings   *BookingHandler
	Listings   *ListingHandler
	Inquiries  *InquiryHandler
	Auth       middleware.Authenticator
}

func (rt *Router) RegisterRoutes(router *httprouter.Router) {
	protect := middleware.RequireSession(rt.Auth)

	rt.Sessions.RegisterRoutes(router)
	rt.Properties.RegisterRoutes(router, protect)
	rt.Bookings.RegisterRoutes(router, protect)
	rt.Listings.RegisterRoutes(router, protect)
	rt.Inquiries.RegisterRoutes(router, protect)
}
