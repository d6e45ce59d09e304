package handler

import (
	"encoding/json"
	"net/http"

	"stayease/internal/bookings/lifecycle"
	"stayease/internal/bookings/service"
	apperrors "stayease/pkg/errors"
	httputil "stayease/pkg/http"
	"stayease/pkg/logger"
	"stayease/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service         service.BookingService
	defaultPageSize int
	maxPageSize     int
	log             *logger.Logger
}

func NewBookingHandler(service service.BookingService, defaultPageSize, maxPageSize int, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service:         service,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
		log:             log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	booking, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, "Booking request submitted", booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseID(ps, "id")
	if err != nil {
		writeError(w, h.log, "GetByID", err)
		return
	}

	booking, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.log, "GetByID", err)
		return
	}

	writeSuccess(w, h.log, "GetByID", booking)
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, size, err := httputil.ExtractPage(r, h.defaultPageSize, h.maxPageSize)
	if err != nil {
		writeError(w, h.log, "ListMine", err)
		return
	}

	bookings, err := h.service.ListMine(r.Context(), page, size)
	if err != nil {
		writeError(w, h.log, "ListMine", err)
		return
	}

	writeSuccess(w, h.log, "ListMine", bookings)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseID(ps, "id")
	if err != nil {
		writeError(w, h.log, "Cancel", err)
		return
	}

	if err := h.service.Cancel(r.Context(), id); err != nil {
		writeError(w, h.log, "Cancel", err)
		return
	}

	if err := httputil.WriteMessage(w, http.StatusOK, "Booking cancelled successfully", nil); err != nil {
		h.log.Error("failed to write message response", "handler", "Cancel", "operation", "WriteMessage", "error", err)
	}
}

// ListOwner serves the owner's booking list, optionally narrowed by ?status=.
func (h *BookingHandler) ListOwner(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, size, err := httputil.ExtractPage(r, h.defaultPageSize, h.maxPageSize)
	if err != nil {
		writeError(w, h.log, "ListOwner", err)
		return
	}

	filter := model.BookingFilter{Page: page, Size: size}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := lifecycle.ParseBookingStatus(raw)
		if err != nil {
			writeError(w, h.log, "ListOwner", apperrors.InvalidInput(err.Error()))
			return
		}
		filter.Status = status
	}

	bookings, err := h.service.ListOwner(r.Context(), filter)
	if err != nil {
		writeError(w, h.log, "ListOwner", err)
		return
	}

	writeSuccess(w, h.log, "ListOwner", bookings)
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseID(ps, "id")
	if err != nil {
		writeError(w, h.log, "UpdateStatus", err)
		return
	}

	raw := r.URL.Query().Get("status")
	if raw == "" {
		writeError(w, h.log, "UpdateStatus", apperrors.InvalidInput("'status' query parameter is required"))
		return
	}
	status, err := lifecycle.ParseBookingStatus(raw)
	if err != nil {
		writeError(w, h.log, "UpdateStatus", apperrors.InvalidInput(err.Error()))
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), id, status)
	if err != nil {
		writeError(w, h.log, "UpdateStatus", err)
		return
	}

	if err := httputil.WriteMessage(w, http.StatusOK, "Booking status updated", booking); err != nil {
		h.log.Error("failed to write message response", "handler", "UpdateStatus", "operation", "WriteMessage", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router, protect func(httprouter.Handle) httprouter.Handle) {
	router.POST("/api/v1/bookings", protect(h.Create))
	router.GET("/api/v1/bookings", protect(h.ListMine))
	router.GET("/api/v1/bookings/id/:id", protect(h.GetByID))
	router.POST("/api/v1/bookings/id/:id/cancel", protect(h.Cancel))
	router.GET("/api/v1/owner/bookings", protect(h.ListOwner))
	router.PATCH("/api/v1/owner/bookings/id/:id/status", protect(h.UpdateStatus))
}

// writeError answers with the error envelope. Anything that is not an
// AppError is logged and surfaces as a 500.
func writeError(w http.ResponseWriter, log *logger.Logger, handler string, err error) {
	if !apperrors.IsAppError(err) {
		log.Error("unclassified error", "handler", handler, "error", err)
	}
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func writeSuccess(w http.ResponseWriter, log *logger.Logger, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}
