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

// ListingHandler serves the owner's property and room management.
type ListingHandler struct {
	service service.ListingService
	log     *logger.Logger
}

func NewListingHandler(service service.ListingService, log *logger.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		log:     log,
	}
}

func (h *ListingHandler) CreateProperty(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.PropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, "CreateProperty", apperrors.InvalidInput("Invalid request body"))
		return
	}

	property, err := h.service.CreateProperty(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, "CreateProperty", err)
		return
	}

	if err := httputil.WriteCreated(w, "Property created successfully", property); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateProperty", "operation", "WriteCreated", "error", err)
	}
}

func (h *ListingHandler) UpdateProperty(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseID(ps, "id")
	if err != nil {
		writeError(w, h.log, "UpdateProperty", err)
		return
	}
	var req model.PropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, "UpdateProperty", apperrors.InvalidInput("Invalid request body"))
		return
	}

	property, err := h.service.UpdateProperty(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, "UpdateProperty", err)
		return
	}

	h.writeMessage(w, "UpdateProperty", "Property updated successfully", property)
}

func (h *ListingHandler) DeleteProperty(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseID(ps, "id")
	if err != nil {
		writeError(w, h.log, "DeleteProperty", err)
		return
	}

	if err := h.service.DeleteProperty(r.Context(), id); err != nil {
		writeError(w, h.log, "DeleteProperty", err)
		return
	}

	h.writeMessage(w, "DeleteProperty", "Property deleted successfully", nil)
}

func (h *ListingHandler) SetPropertyActive(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, active, err := idAndActive(r, ps)
	if err != nil {
		writeError(w, h.log, "SetPropertyActive", err)
		return
	}

	if err := h.service.SetPropertyActive(r.Context(), id, active); err != nil {
		writeError(w, h.log, "SetPropertyActive", err)
		return
	}

	message := "Property deactivated"
	if active {
		message = "Property activated"
	}
	h.writeMessage(w, "SetPropertyActive", message, nil)
}

func (h *ListingHandler) Rooms(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	propertyID, err := httputil.ParseID(ps, "id")
	if err != nil {
		writeError(w, h.log, "Rooms", err)
		return
	}

	rooms, err := h.service.Rooms(r.Context(), propertyID)
	if err != nil {
		writeError(w, h.log, "Rooms", err)
		return
	}

	writeSuccess(w, h.log, "Rooms", rooms)
}

func (h *ListingHandler) CreateRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	propertyID, err := httputil.ParseID(ps, "id")
	if err != nil {
		writeError(w, h.log, "CreateRoom", err)
		return
	}
	var req model.RoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, "CreateRoom", apperrors.InvalidInput("Invalid request body"))
		return
	}

	room, err := h.service.CreateRoom(r.Context(), propertyID, &req)
	if err != nil {
		writeError(w, h.log, "CreateRoom", err)
		return
	}

	if err := httputil.WriteCreated(w, "Room created successfully", room); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateRoom", "operation", "WriteCreated", "error", err)
	}
}

func (h *ListingHandler) UpdateRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseID(ps, "id")
	if err != nil {
		writeError(w, h.log, "UpdateRoom", err)
		return
	}
	var req model.RoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, "UpdateRoom", apperrors.InvalidInput("Invalid request body"))
		return
	}

	room, err := h.service.UpdateRoom(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.log, "UpdateRoom", err)
		return
	}

	h.writeMessage(w, "UpdateRoom", "Room updated successfully", room)
}

func (h *ListingHandler) DeleteRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ParseID(ps, "id")
	if err != nil {
		writeError(w, h.log, "DeleteRoom", err)
		return
	}

	if err := h.service.DeleteRoom(r.Context(), id); err != nil {
		writeError(w, h.log, "DeleteRoom", err)
		return
	}

	h.writeMessage(w, "DeleteRoom", "Room deleted successfully", nil)
}

func (h *ListingHandler) SetRoomActive(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, active, err := idAndActive(r, ps)
	if err != nil {
		writeError(w, h.log, "SetRoomActive", err)
		return
	}

	if err := h.service.SetRoomActive(r.Context(), id, active); err != nil {
		writeError(w, h.log, "SetRoomActive", err)
		return
	}

	message := "Room deactivated"
	if active {
		message = "Room activated"
	}
	h.writeMessage(w, "SetRoomActive", message, nil)
}

func (h *ListingHandler) writeMessage(w http.ResponseWriter, handler, message string, data any) {
	if err := httputil.WriteMessage(w, http.StatusOK, message, data); err != nil {
		h.log.Error("failed to write message response", "handler", handler, "operation", "WriteMessage", "error", err)
	}
}

func idAndActive(r *http.Request, ps httprouter.Params) (int64, bool, error) {
	id, err := httputil.ParseID(ps, "id")
	if err != nil {
		return 0, false, err
	}
	active, err := httputil.QueryBool(r, "isActive")
	if err != nil {
		return 0, false, err
	}
	return id, active, nil
}

func (h *ListingHandler) RegisterRoutes(router *httprouter.Router, protect func(httprouter.Handle) httprouter.Handle) {
	router.POST("/api/v1/owner/properties", protect(h.CreateProperty))
	router.PUT("/api/v1/owner/properties/id/:id", protect(h.UpdateProperty))
	router.DELETE("/api/v1/owner/properties/id/:id", protect(h.DeleteProperty))
	router.PATCH("/api/v1/owner/properties/id/:id/status", protect(h.SetPropertyActive))
	router.GET("/api/v1/owner/properties/id/:id/rooms", protect(h.Rooms))
	router.POST("/api/v1/owner/properties/id/:id/rooms", protect(h.CreateRoom))
	router.PUT("/api/v1/owner/rooms/id/:id", protect(h.UpdateRoom))
	router.DELETE("/api/v1/owner/rooms/id/:id", protect(h.DeleteRoom))
	router.PATCH("/api/v1/owner/rooms/id/:id/status", protect(h.SetRoomActive))
}
