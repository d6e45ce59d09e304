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

type InquiryHandler struct {
	service service.InquiryService
	log     *logger.Logger
}

func NewInquiryHandler(service service.InquiryService, log *logger.Logger) *InquiryHandler {
	return &InquiryHandler{
		service: service,
		log:     log,
	}
}

// Send answers 201 when the inquiry was delivered and 200 with
// available=false when the backend has no inquiry endpoint.
func (h *InquiryHandler) Send(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.InquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, "Send", apperrors.InvalidInput("Invalid request body"))
		return
	}

	result, err := h.service.Send(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, "Send", err)
		return
	}

	status := http.StatusCreated
	if !result.Available {
		status = http.StatusOK
	}
	if err := httputil.WriteMessage(w, status, result.Message, result); err != nil {
		h.log.Error("failed to write message response", "handler", "Send", "operation", "WriteMessage", "error", err)
	}
}

func (h *InquiryHandler) RegisterRoutes(router *httprouter.Router, protect func(httprouter.Handle) httprouter.Handle) {
	router.POST("/api/v1/inquiries", protect(h.Send))
}
