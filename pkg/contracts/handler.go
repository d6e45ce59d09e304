package contracts

import "github.com/julienschmidt/httprouter"

// Handler mounts a group of routes on the router it is given.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}

// RoutesFunc lets a plain function act as a Handler.
type RoutesFunc func(*httprouter.Router)

func (f RoutesFunc) RegisterRoutes(router *httprouter.Router) {
	f(router)
}
