package middleware

import (
	"net/http"

	apperrors "stayease/pkg/errors"
	httputil "stayease/pkg/http"

	"github.com/julienschmidt/httprouter"
)

// Authenticator reports whether a user is signed in.
type Authenticator interface {
	Authenticated() bool
}

// RequireSession answers 401 before the handler runs when nobody is signed in.
func RequireSession(auth Authenticator) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			if !auth.Authenticated() {
				_ = httputil.WriteError(w, apperrors.Unauthorized("sign in required"))
				return
			}
			next(w, r, ps)
		}
	}
}
