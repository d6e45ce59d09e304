package handler

import (
	"encoding/json"
	"net/http"

	"stayease/internal/bookings/service"
	apperrors "stayease/pkg/errors"
	httputil "stayease/pkg/http"
	"stayease/pkg/logger"
	"stayease/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type SessionHandler struct {
	service service.SessionService
	log     *logger.Logger
}

func NewSessionHandler(service service.SessionService, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		log:     log,
	}
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, "Login", apperrors.InvalidInput("Invalid request body"))
		return
	}

	view, err := h.service.Login(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, "Login", err)
		return
	}

	if err := httputil.WriteMessage(w, http.StatusOK, "Login successful", view); err != nil {
		h.log.Error("failed to write message response", "handler", "Login", "operation", "WriteMessage", "error", err)
	}
}

// Register creates an account with the given role and answers 201. It does
// not sign the new user in.
func (h *SessionHandler) Register(role model.Role) httprouter.Handle {
	message := "Registration successful"
	if role == model.RoleOwner {
		message = "Owner registration successful"
	}
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req model.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, h.log, "Register", apperrors.InvalidInput("Invalid request body"))
			return
		}

		user, err := h.service.Register(r.Context(), &req, role)
		if err != nil {
			writeError(w, h.log, "Register", err)
			return
		}

		if err := httputil.WriteCreated(w, message, user); err != nil {
			h.log.Error("failed to write created response", "handler", "Register", "operation", "WriteCreated", "error", err)
		}
	}
}

// Current answers from the local session; ?refresh=true re-reads the profile
// upstream first.
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	current := h.service.Current
	if r.URL.Query().Get("refresh") == "true" {
		current = h.service.Refresh
	}

	view, err := current(r.Context())
	if err != nil {
		writeError(w, h.log, "Current", err)
		return
	}

	writeSuccess(w, h.log, "Current", view)
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.service.Logout(r.Context()); err != nil {
		writeError(w, h.log, "Logout", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *SessionHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/session", h.Login)
	router.GET("/api/v1/session", h.Current)
	router.DELETE("/api/v1/session", h.Logout)
	router.POST("/api/v1/register", h.Register(model.RoleUser))
	router.POST("/api/v1/register/owner", h.Register(model.RoleOwner))
}
