package handler

import (
	"net/http"
	"strings"

	"stayease/internal/bookings/service"
	httputil "stayease/pkg/http"
	"stayease/pkg/logger"
	"stayease/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type PropertyHandler struct {
	service         service.PropertyService
	defaultPageSize int
	maxPageSize     int
	log             *logger.Logger
}

func NewPropertyHandler(service service.PropertyService, defaultPageSize, maxPageSize int, log *logger.Logger) *PropertyHandler {
	return &PropertyHandler{
		service:         service,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
		log:             log,
	}
}

// BookingForm serves the property, its rooms and, with ?roomId=, the open
// beds of that room.
func (h *PropertyHandler) BookingForm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	propertyID, err := httputil.ParseID(ps, "id")
	if err != nil {
		writeError(w, h.log, "BookingForm", err)
		return
	}
	roomID, err := httputil.QueryInt64(r, "roomId")
	if err != nil {
		writeError(w, h.log, "BookingForm", err)
		return
	}

	form, err := h.service.BookingForm(r.Context(), propertyID, roomID)
	if err != nil {
		writeError(w, h.log, "BookingForm", err)
		return
	}

	writeSuccess(w, h.log, "BookingForm", form)
}

func (h *PropertyHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	search, err := h.parseSearch(r)
	if err != nil {
		writeError(w, h.log, "Search", err)
		return
	}

	properties, err := h.service.Search(r.Context(), search)
	if err != nil {
		writeError(w, h.log, "Search", err)
		return
	}

	writeSuccess(w, h.log, "Search", properties)
}

func (h *PropertyHandler) parseSearch(r *http.Request) (model.PropertySearch, error) {
	query := r.URL.Query()
	search := model.PropertySearch{
		City:             query.Get("city"),
		PropertyType:     model.PropertyType(strings.ToUpper(strings.TrimSpace(query.Get("propertyType")))),
		GenderPreference: model.GenderPreference(strings.ToUpper(strings.TrimSpace(query.Get("genderPreference")))),
	}

	var err error
	if search.MinRent, err = httputil.QueryFloat(r, "minRent"); err != nil {
		return search, err
	}
	if search.MaxRent, err = httputil.QueryFloat(r, "maxRent"); err != nil {
		return search, err
	}
	beds, err := httputil.QueryInt64(r, "availableBeds")
	if err != nil {
		return search, err
	}
	search.AvailableBeds = int(beds)

	if search.Page, search.Size, err = httputil.ExtractPage(r, h.defaultPageSize, h.maxPageSize); err != nil {
		return search, err
	}
	return search, nil
}

func (h *PropertyHandler) OwnerProperties(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, size, err := httputil.ExtractPage(r, h.defaultPageSize, h.maxPageSize)
	if err != nil {
		writeError(w, h.log, "OwnerProperties", err)
		return
	}

	properties, err := h.service.OwnerProperties(r.Context(), page, size)
	if err != nil {
		writeError(w, h.log, "OwnerProperties", err)
		return
	}

	writeSuccess(w, h.log, "OwnerProperties", properties)
}

func (h *PropertyHandler) Dashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		writeError(w, h.log, "Dashboard", err)
		return
	}

	writeSuccess(w, h.log, "Dashboard", dashboard)
}

func (h *PropertyHandler) Featured(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	properties, err := h.service.Featured(r.Context())
	if err != nil {
		writeError(w, h.log, "Featured", err)
		return
	}

	writeSuccess(w, h.log, "Featured", properties)
}

func (h *PropertyHandler) Cities(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cities, err := h.service.Cities(r.Context())
	if err != nil {
		writeError(w, h.log, "Cities", err)
		return
	}

	writeSuccess(w, h.log, "Cities", cities)
}

func (h *PropertyHandler) Amenities(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	amenities, err := h.service.Amenities(r.Context())
	if err != nil {
		writeError(w, h.log, "Amenities", err)
		return
	}

	writeSuccess(w, h.log, "Amenities", amenities)
}

func (h *PropertyHandler) RegisterRoutes(router *httprouter.Router, protect func(httprouter.Handle) httprouter.Handle) {
	router.GET("/api/v1/properties/search", h.Search)
	router.GET("/api/v1/properties/featured", h.Featured)
	router.GET("/api/v1/properties/cities", h.Cities)
	router.GET("/api/v1/amenities", h.Amenities)
	router.GET("/api/v1/properties/id/:id/booking-form", h.BookingForm)
	router.GET("/api/v1/owner/properties", protect(h.OwnerProperties))
	router.GET("/api/v1/owner/dashboard", protect(h.Dashboard))
}
