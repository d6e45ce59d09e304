// Package upstreamtest runs an in-memory StayEase API for tests. It enforces
// the server's booking rules so callers can exercise rejections as well as
// the happy path.
package upstreamtest

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"stayease/pkg/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

const (
	Password    = "secret"
	SeekerEmail = "seeker@stayease.test"
	OwnerEmail  = "owner@stayease.test"

	SeekerID int64 = 1
	OwnerID  int64 = 7
)

var signingKey = []byte("upstreamtest-signing-key")

type Call struct {
	Method    string
	Path      string
	RequestID string
}

type Server struct {
	*httptest.Server

	mu            sync.Mutex
	users         map[string]*model.User
	passwords     map[string]string
	tokens        map[string]int64
	properties    map[int64]*model.Property
	owners        map[int64]int64
	rooms         map[int64][]*model.Room
	bookings      []*model.Booking
	amenities     []model.Amenity
	nextBookingID int64
	nextUserID    int64
	nextID        int64
	calls         []Call

	inquiriesEnabled bool
	inquiries        []model.InquiryRequest
	intercept        func(w http.ResponseWriter, r *http.Request) bool
}

// New starts a seeded server that is closed when the test ends.
func New(t testing.TB) *Server {
	s := &Server{
		users:         make(map[string]*model.User),
		passwords:     make(map[string]string),
		tokens:        make(map[string]int64),
		properties:    make(map[int64]*model.Property),
		owners:        make(map[int64]int64),
		rooms:         make(map[int64][]*model.Room),
		nextBookingID: 200,
		nextUserID:    50,
		nextID:        500,
	}
	s.seed()

	router := httprouter.New()
	router.POST("/auth/login", s.login)
	router.POST("/auth/register", s.register(model.RoleUser))
	router.POST("/auth/register/owner", s.register(model.RoleOwner))
	router.GET("/auth/me", s.auth(s.me))
	router.POST("/bookings", s.auth(s.createBooking))
	router.GET("/bookings", s.auth(s.myBookings))
	router.GET("/bookings/:id", s.auth(s.getBooking))
	router.POST("/bookings/:id/cancel", s.auth(s.cancelBooking))
	router.GET("/owner/bookings", s.auth(s.owner(s.ownerBookings)))
	router.PATCH("/owner/bookings/:id/status", s.auth(s.owner(s.updateStatus)))
	router.GET("/owner/properties", s.auth(s.owner(s.ownerProperties)))
	router.POST("/owner/properties", s.auth(s.owner(s.createProperty)))
	router.PUT("/owner/properties/:id", s.auth(s.owner(s.updateProperty)))
	router.DELETE("/owner/properties/:id", s.auth(s.owner(s.deleteProperty)))
	router.PATCH("/owner/properties/:id/status", s.auth(s.owner(s.propertyStatus)))
	router.GET("/owner/properties/:id/rooms", s.auth(s.owner(s.ownerRooms)))
	router.POST("/owner/properties/:id/rooms", s.auth(s.owner(s.createRoom)))
	router.PUT("/owner/rooms/:id", s.auth(s.owner(s.updateRoom)))
	router.DELETE("/owner/rooms/:id", s.auth(s.owner(s.deleteRoom)))
	router.PATCH("/owner/rooms/:id/status", s.auth(s.owner(s.roomStatus)))
	router.GET("/amenities", s.listAmenities)
	router.GET("/properties/:id", s.propertyOrSearch)
	router.GET("/properties/:id/rooms", s.propertyRooms(false))
	router.GET("/properties/:id/rooms/available", s.propertyRooms(true))
	router.POST("/inquiries", s.auth(s.createInquiry))
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "No endpoint "+r.Method+" "+r.URL.Path)
	})

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls = append(s.calls, Call{Method: r.Method, Path: r.URL.Path, RequestID: r.Header.Get("X-Request-ID")})
		intercept := s.intercept
		s.mu.Unlock()

		if intercept != nil && intercept(w, r) {
			return
		}
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) seed() {
	s.users[SeekerEmail] = &model.User{ID: SeekerID, Email: SeekerEmail, FirstName: "Asha", LastName: "Rao", Phone: "9876543210", Role: model.RoleUser, IsVerified: true}
	s.users[OwnerEmail] = &model.User{ID: OwnerID, Email: OwnerEmail, FirstName: "Ravi", LastName: "Kumar", Phone: "9123400000", Role: model.RoleOwner, IsVerified: true}

	s.amenities = []model.Amenity{
		{ID: 1, Name: "WiFi", Icon: "wifi", Category: "BASIC"},
		{ID: 2, Name: "Meals", Icon: "utensils", Category: "FOOD"},
		{ID: 3, Name: "Laundry", Icon: "shirt", Category: "SERVICE"},
	}

	deposit := 5000.0
	s.properties[10] = &model.Property{
		ID: 10, Name: "Sunrise PG", PropertyType: model.PropertyPG, GenderPreference: model.GenderCoed,
		AddressLine1: "12 FC Road", City: "Pune", State: "Maharashtra", Pincode: "411004",
		MinRent: 8000, MaxRent: 9000, SecurityDeposit: &deposit, TotalRooms: 2, IsFeatured: true,
		Owner: model.PropertyOwner{ID: OwnerID, Name: "Ravi Kumar"},
	}
	s.properties[11] = &model.Property{
		ID: 11, Name: "Lakeview Hostel", PropertyType: model.PropertyHostel, GenderPreference: model.GenderFemale,
		AddressLine1: "4 Lake Road", City: "Pune", State: "Maharashtra", Pincode: "411001",
		MinRent: 6000, MaxRent: 6000, TotalRooms: 1,
		Owner: model.PropertyOwner{ID: OwnerID, Name: "Ravi Kumar"},
	}
	s.owners[10] = OwnerID
	s.owners[11] = OwnerID

	s.rooms[10] = []*model.Room{
		{ID: 5, PropertyID: 10, RoomNumber: "101", RoomType: model.RoomDormitory, RentPerBed: 8000, TotalBeds: 4, Beds: []model.Bed{
			{ID: 1, BedNumber: "A", Status: model.BedAvailable},
			{ID: 2, BedNumber: "B", Status: model.BedOccupied},
			{ID: 3, BedNumber: "C", Status: model.BedAvailable},
			{ID: 7, BedNumber: "D", Status: model.BedAvailable},
		}},
		{ID: 6, PropertyID: 10, RoomNumber: "102", RoomType: model.RoomSingle, RentPerBed: 9000, TotalBeds: 1, Beds: []model.Bed{
			{ID: 4, BedNumber: "A", Status: model.BedReserved},
		}},
	}
	s.rooms[11] = []*model.Room{
		{ID: 8, PropertyID: 11, RoomNumber: "G1", RoomType: model.RoomDouble, RentPerBed: 6000, TotalBeds: 2, Beds: []model.Bed{
			{ID: 9, BedNumber: "A", Status: model.BedMaintenance},
			{ID: 10, BedNumber: "B", Status: model.BedAvailable},
		}},
	}

	seeker := s.users[SeekerEmail]
	s.bookings = []*model.Booking{
		s.newBooking(100, seeker, 10, 6, 4, "2025-03-01", model.BookingPending),
		s.newBooking(101, seeker, 10, 5, 2, "2025-01-01", model.BookingCheckedIn),
		s.newBooking(102, seeker, 11, 8, 10, "2024-06-01", model.BookingCheckedOut),
	}

	for id := range s.properties {
		s.recount(id)
	}
}

func (s *Server) newBooking(id int64, user *model.User, propertyID, roomID, bedID int64, checkIn string, status model.BookingStatus) *model.Booking {
	property := s.properties[propertyID]
	room := s.room(propertyID, roomID)
	bed := bedOf(room, bedID)
	return &model.Booking{
		ID:               id,
		BookingReference: fmt.Sprintf("BK%s%d", time.Now().Format("20060102150405"), rand.IntN(10000)),
		UserID:           user.ID,
		UserName:         user.FullName(),
		PropertyID:       propertyID,
		PropertyName:     property.Name,
		RoomID:           roomID,
		RoomNumber:       room.RoomNumber,
		BedID:            bedID,
		BedNumber:        bed.BedNumber,
		CheckInDate:      checkIn,
		MonthlyRent:      room.RentPerBed,
		SecurityDeposit:  property.SecurityDeposit,
		Status:           status,
		CreatedAt:        time.Now().UTC().Format("2006-01-02T15:04:05"),
	}
}

// Intercept installs a hook that may answer a request itself by returning
// true. A nil hook restores normal routing.
func (s *Server) Intercept(fn func(w http.ResponseWriter, r *http.Request) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intercept = fn
}

// EnableInquiries makes POST /inquiries exist. It is off by default, like the
// real backend.
func (s *Server) EnableInquiries() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inquiriesEnabled = true
}

func (s *Server) Inquiries() []model.InquiryRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.InquiryRequest(nil), s.inquiries...)
}

// Token mints an access token for one of the seeded users.
func (s *Server) Token(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mint(s.users[email], time.Now().Add(time.Hour))
}

func (s *Server) mint(user *model.User, exp time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.Email,
		"id":   user.ID,
		"role": string(user.Role),
		"iat":  time.Now().Unix(),
		"exp":  exp.Unix(),
	})
	signed, err := token.SignedString(signingKey)
	if err != nil {
		panic(err)
	}
	s.tokens[signed] = user.ID
	return signed
}

// RevokeAll makes every issued token unknown, as after a server restart.
func (s *Server) RevokeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]int64)
}

func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallCount counts requests with the method whose path starts with prefix.
func (s *Server) CallCount(method, prefix string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Method == method && strings.HasPrefix(c.Path, prefix) {
			n++
		}
	}
	return n
}

func (s *Server) Booking(id int64) (model.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b := s.booking(id); b != nil {
		return *b, true
	}
	return model.Booking{}, false
}

// SetBookingStatus changes a booking behind the client's back.
func (s *Server) SetBookingStatus(id int64, status model.BookingStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b := s.booking(id); b != nil {
		b.Status = status
	}
}

func (s *Server) Bed(propertyID, roomID, bedID int64) model.Bed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *bedOf(s.room(propertyID, roomID), bedID)
}

// SetBedStatus changes a bed behind the client's back, for example to
// simulate another seeker taking it.
func (s *Server) SetBedStatus(propertyID, roomID, bedID int64, status model.BedStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bedOf(s.room(propertyID, roomID), bedID).Status = status
	s.recount(propertyID)
}

func (s *Server) room(propertyID, roomID int64) *model.Room {
	for _, r := range s.rooms[propertyID] {
		if r.ID == roomID {
			return r
		}
	}
	return nil
}

func (s *Server) roomByID(roomID int64) *model.Room {
	for _, rooms := range s.rooms {
		for _, r := range rooms {
			if r.ID == roomID {
				return r
			}
		}
	}
	return nil
}

func bedOf(room *model.Room, bedID int64) *model.Bed {
	if room == nil {
		return nil
	}
	for i := range room.Beds {
		if room.Beds[i].ID == bedID {
			return &room.Beds[i]
		}
	}
	return nil
}

func (s *Server) booking(id int64) *model.Booking {
	for _, b := range s.bookings {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (s *Server) recount(propertyID int64) {
	property := s.properties[propertyID]
	property.TotalRooms = len(s.rooms[propertyID])
	property.TotalBeds, property.AvailableBeds = 0, 0
	for _, room := range s.rooms[propertyID] {
		room.AvailableBeds = 0
		for _, bed := range room.Beds {
			if bed.Status == model.BedAvailable {
				room.AvailableBeds++
			}
		}
		property.TotalBeds += len(room.Beds)
		property.AvailableBeds += room.AvailableBeds
	}
}

type userHandler func(w http.ResponseWriter, r *http.Request, ps httprouter.Params, user *model.User)

func (s *Server) auth(next userHandler) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		s.mu.Lock()
		userID, ok := s.tokens[token]
		var user *model.User
		for _, u := range s.users {
			if u.ID == userID {
				user = u
			}
		}
		s.mu.Unlock()

		if !ok || user == nil {
			writeError(w, http.StatusUnauthorized, "Full authentication is required to access this resource")
			return
		}
		next(w, r, ps, user)
	}
}

func (s *Server) owner(next userHandler) userHandler {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params, user *model.User) {
		if user.Role != model.RoleOwner && user.Role != model.RoleAdmin {
			writeError(w, http.StatusForbidden, "Access Denied")
			return
		}
		next(w, r, ps, user)
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed JSON request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(req.Email)
	user, ok := s.users[email]
	expected, custom := s.passwords[email]
	if !custom {
		expected = Password
	}
	if !ok || req.Password != expected {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	writeData(w, http.StatusOK, "Login successful", model.JwtResponse{
		AccessToken: s.mint(user, time.Now().Add(time.Hour)),
		TokenType:   "Bearer",
		ExpiresIn:   3600000,
		User:        *user,
	})
}

func (s *Server) me(w http.ResponseWriter, _ *http.Request, _ httprouter.Params, user *model.User) {
	writeData(w, http.StatusOK, "", user)
}

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params, user *model.User) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed JSON request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	property, ok := s.properties[req.PropertyID]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Property not found with id : '%d'", req.PropertyID))
		return
	}
	room := s.roomByID(req.RoomID)
	if room == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Room not found with id : '%d'", req.RoomID))
		return
	}
	if room.PropertyID != property.ID {
		writeError(w, http.StatusBadRequest, "Room does not belong to the specified property")
		return
	}
	bed := bedOf(room, req.BedID)
	if bed == nil {
		writeError(w, http.StatusBadRequest, "Bed does not belong to the specified room")
		return
	}
	if bed.Status != model.BedAvailable {
		writeError(w, http.StatusBadRequest, "Bed is not available for booking")
		return
	}
	for _, b := range s.bookings {
		if b.BedID == bed.ID && (b.Status == model.BookingPending || b.Status == model.BookingConfirmed || b.Status == model.BookingCheckedIn) {
			writeError(w, http.StatusBadRequest, "Bed already has an active booking")
			return
		}
	}

	s.nextBookingID++
	booking := s.newBooking(s.nextBookingID, user, property.ID, room.ID, bed.ID, req.CheckInDate, model.BookingPending)
	booking.CheckOutDate = req.CheckOutDate
	booking.Notes = req.Notes
	s.bookings = append(s.bookings, booking)

	bed.Status = model.BedReserved
	s.recount(property.ID)

	writeData(w, http.StatusCreated, "Booking created successfully", booking)
}

func (s *Server) myBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params, user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var mine []model.Booking
	for i := len(s.bookings) - 1; i >= 0; i-- {
		if s.bookings[i].UserID == user.ID {
			mine = append(mine, *s.bookings[i])
		}
	}
	writeData(w, http.StatusOK, "", paginate(mine, r))
}

func (s *Server) getBooking(w http.ResponseWriter, _ *http.Request, ps httprouter.Params, user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.booking(parseID(ps.ByName("id")))
	if b == nil {
		writeError(w, http.StatusNotFound, "Booking not found")
		return
	}
	if b.UserID != user.ID && s.owners[b.PropertyID] != user.ID {
		writeError(w, http.StatusBadRequest, "You don't have permission to view this booking")
		return
	}
	writeData(w, http.StatusOK, "", b)
}

func (s *Server) cancelBooking(w http.ResponseWriter, _ *http.Request, ps httprouter.Params, user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.booking(parseID(ps.ByName("id")))
	if b == nil {
		writeError(w, http.StatusNotFound, "Booking not found")
		return
	}
	if b.UserID != user.ID && s.owners[b.PropertyID] != user.ID {
		writeError(w, http.StatusBadRequest, "You don't have permission to cancel this booking")
		return
	}
	if b.Status != model.BookingPending && b.Status != model.BookingConfirmed {
		writeError(w, http.StatusBadRequest, "Cannot cancel booking with status: "+string(b.Status))
		return
	}

	bedOf(s.room(b.PropertyID, b.RoomID), b.BedID).Status = model.BedAvailable
	s.recount(b.PropertyID)
	b.Status = model.BookingCancelled

	writeData[any](w, http.StatusOK, "Booking cancelled successfully", nil)
}

var serverTransitions = map[model.BookingStatus][]model.BookingStatus{
	model.BookingPending:   {model.BookingConfirmed, model.BookingCancelled},
	model.BookingConfirmed: {model.BookingCheckedIn, model.BookingCancelled},
	model.BookingCheckedIn: {model.BookingCheckedOut},
}

func (s *Server) updateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params, user *model.User) {
	next := model.BookingStatus(r.URL.Query().Get("status"))

	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.booking(parseID(ps.ByName("id")))
	if b == nil {
		writeError(w, http.StatusNotFound, "Booking not found")
		return
	}
	if s.owners[b.PropertyID] != user.ID {
		writeError(w, http.StatusBadRequest, "You don't have permission to update this booking")
		return
	}

	allowed, known := serverTransitions[b.Status]
	legal := false
	for _, to := range allowed {
		legal = legal || to == next
	}
	if !known {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Cannot change status of %s booking", b.Status))
		return
	}
	if !legal {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid status transition from %s to %s", b.Status, next))
		return
	}

	bed := bedOf(s.room(b.PropertyID, b.RoomID), b.BedID)
	switch next {
	case model.BookingConfirmed:
		bed.Status = model.BedReserved
	case model.BookingCheckedIn:
		bed.Status = model.BedOccupied
	case model.BookingCheckedOut, model.BookingCancelled:
		bed.Status = model.BedAvailable
	}
	s.recount(b.PropertyID)
	b.Status = next

	writeData(w, http.StatusOK, "Booking status updated", b)
}

func (s *Server) ownerBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params, user *model.User) {
	status := model.BookingStatus(r.URL.Query().Get("status"))

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Booking
	for i := len(s.bookings) - 1; i >= 0; i-- {
		b := s.bookings[i]
		if s.owners[b.PropertyID] != user.ID {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		out = append(out, *b)
	}
	writeData(w, http.StatusOK, "", paginate(out, r))
}

func (s *Server) ownerProperties(w http.ResponseWriter, r *http.Request, _ httprouter.Params, user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Property
	for _, id := range s.sortedPropertyIDs() {
		if s.owners[id] == user.ID {
			out = append(out, *s.properties[id])
		}
	}
	writeData(w, http.StatusOK, "", paginate(out, r))
}

// propertyOrSearch exists because httprouter cannot register a static
// segment next to a wildcard.
func (s *Server) propertyOrSearch(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	switch ps.ByName("id") {
	case "search":
		s.search(w, r)
		return
	case "featured":
		s.featured(w)
		return
	case "cities":
		s.cities(w)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	property, ok := s.properties[parseID(ps.ByName("id"))]
	if !ok {
		writeError(w, http.StatusNotFound, "Property not found")
		return
	}
	writeData(w, http.StatusOK, "", property)
}

func (s *Server) propertyRooms(onlyAvailable bool) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		s.mu.Lock()
		defer s.mu.Unlock()

		id := parseID(ps.ByName("id"))
		if _, ok := s.properties[id]; !ok {
			writeError(w, http.StatusNotFound, "Property not found")
			return
		}
		rooms := []model.Room{}
		for _, room := range s.rooms[id] {
			if onlyAvailable && room.AvailableBeds == 0 {
				continue
			}
			copied := *room
			copied.Beds = append([]model.Bed(nil), room.Beds...)
			rooms = append(rooms, copied)
		}
		writeData(w, http.StatusOK, "", rooms)
	}
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	minRent, _ := strconv.ParseFloat(q.Get("minRent"), 64)
	maxRent, _ := strconv.ParseFloat(q.Get("maxRent"), 64)
	beds, _ := strconv.Atoi(q.Get("availableBeds"))

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Property
	for _, id := range s.sortedPropertyIDs() {
		p := s.properties[id]
		switch {
		case !isActive(p.IsActive):
		case q.Get("city") != "" && !strings.EqualFold(q.Get("city"), p.City):
		case q.Get("propertyType") != "" && q.Get("propertyType") != string(p.PropertyType):
		case q.Get("genderPreference") != "" && q.Get("genderPreference") != string(p.GenderPreference):
		case minRent > 0 && p.MaxRent < minRent:
		case maxRent > 0 && p.MinRent > maxRent:
		case beds > 0 && p.AvailableBeds < beds:
		default:
			out = append(out, *p)
		}
	}
	writeData(w, http.StatusOK, "", paginate(out, r))
}

func (s *Server) createInquiry(w http.ResponseWriter, r *http.Request, _ httprouter.Params, _ *model.User) {
	s.mu.Lock()
	enabled := s.inquiriesEnabled
	s.mu.Unlock()
	if !enabled {
		writeError(w, http.StatusNotFound, "No endpoint POST /inquiries")
		return
	}

	var req model.InquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed JSON request")
		return
	}
	s.mu.Lock()
	s.inquiries = append(s.inquiries, req)
	s.mu.Unlock()
	writeData[any](w, http.StatusCreated, "Inquiry sent", nil)
}

func (s *Server) sortedPropertyIDs() []int64 {
	ids := make([]int64, 0, len(s.properties))
	for id := range s.properties {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	return ids
}

func paginate[T any](items []T, r *http.Request) model.Page[T] {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil || size <= 0 {
		size = 10
	}
	total := len(items)
	totalPages := (total + size - 1) / size
	start := min(page*size, total)
	end := min(start+size, total)

	content := append([]T{}, items[start:end]...)
	return model.Page[T]{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: int64(total),
		TotalPages:    totalPages,
		First:         page == 0,
		Last:          page >= totalPages-1,
	}
}

func parseID(s string) int64 {
	id, _ := strconv.ParseInt(s, 10, 64)
	return id
}

func writeData[T any](w http.ResponseWriter, status int, message string, data T) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":   true,
		"message":   message,
		"data":      data,
		"timestamp": time.Now().UTC().Format("2006-01-02T15:04:05"),
	})
}

// WriteError answers in the server's error envelope. Intercept hooks use it.
func WriteError(w http.ResponseWriter, status int, message string) {
	writeError(w, status, message)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":   false,
		"message":   message,
		"timestamp": time.Now().UTC().Format("2006-01-02T15:04:05"),
	})
}

// Property, room and account endpoints.

func isActive(flag *bool) bool {
	return flag == nil || *flag
}

func boolPtr(b bool) *bool { return &b }

// User looks up an account by email, including ones registered through the API.
func (s *Server) User(email string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[strings.ToLower(email)]; ok {
		return *u, true
	}
	return model.User{}, false
}

func (s *Server) Property(id int64) (model.Property, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.properties[id]; ok {
		return *p, true
	}
	return model.Property{}, false
}

func (s *Server) Room(roomID int64) (model.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r := s.roomByID(roomID); r != nil {
		copied := *r
		copied.Beds = append([]model.Bed(nil), r.Beds...)
		return copied, true
	}
	return model.Room{}, false
}

func (s *Server) register(role model.Role) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req model.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Malformed JSON request")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		email := strings.ToLower(req.Email)
		if _, ok := s.users[email]; ok {
			writeError(w, http.StatusConflict, "Email already registered")
			return
		}
		for _, u := range s.users {
			if u.Phone == req.Phone {
				writeError(w, http.StatusConflict, "Phone number already registered")
				return
			}
		}
		if req.Password != req.ConfirmPassword {
			writeError(w, http.StatusBadRequest, "Passwords do not match")
			return
		}

		s.nextUserID++
		user := &model.User{
			ID:        s.nextUserID,
			Email:     email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
			Role:      role,
			CreatedAt: time.Now().UTC().Format("2006-01-02T15:04:05"),
		}
		s.users[email] = user
		s.passwords[email] = req.Password

		message := "Registration successful"
		if role == model.RoleOwner {
			message = "Owner registration successful"
		}
		writeData(w, http.StatusCreated, message, user)
	}
}

func (s *Server) listAmenities(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, http.StatusOK, "", append([]model.Amenity{}, s.amenities...))
}

func (s *Server) featured(w http.ResponseWriter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Property{}
	for _, id := range s.sortedPropertyIDs() {
		if p := s.properties[id]; p.IsFeatured && isActive(p.IsActive) {
			out = append(out, *p)
		}
	}
	writeData(w, http.StatusOK, "", out)
}

func (s *Server) cities(w http.ResponseWriter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []string{}
	for _, p := range s.properties {
		if isActive(p.IsActive) && !slices.Contains(out, p.City) {
			out = append(out, p.City)
		}
	}
	slices.Sort(out)
	writeData(w, http.StatusOK, "", out)
}

// ownedProperty answers 404 or 400 itself and returns nil when the caller
// may not touch the property.
func (s *Server) ownedProperty(w http.ResponseWriter, id int64, user *model.User, verb string) *model.Property {
	property, ok := s.properties[id]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Property not found with id : '%d'", id))
		return nil
	}
	if s.owners[id] != user.ID {
		writeError(w, http.StatusBadRequest, "You don't have permission to "+verb)
		return nil
	}
	return property
}

func (s *Server) ownedRoom(w http.ResponseWriter, id int64, user *model.User, verb string) *model.Room {
	room := s.roomByID(id)
	if room == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Room not found with id : '%d'", id))
		return nil
	}
	if s.owners[room.PropertyID] != user.ID {
		writeError(w, http.StatusBadRequest, "You don't have permission to "+verb)
		return nil
	}
	return room
}

func applyProperty(p *model.Property, req model.PropertyRequest) {
	p.Name = req.Name
	p.Description = req.Description
	p.PropertyType = req.PropertyType
	p.GenderPreference = req.GenderPreference
	p.AddressLine1 = req.AddressLine1
	p.AddressLine2 = req.AddressLine2
	p.City = req.City
	p.State = req.State
	p.Pincode = req.Pincode
	p.MinRent = req.MinRent
	p.MaxRent = req.MaxRent
	p.SecurityDeposit = req.SecurityDeposit
	p.NoticePeriodDays = req.NoticePeriodDays
	p.Images = req.ImageURLs
}

func (s *Server) createProperty(w http.ResponseWriter, r *http.Request, _ httprouter.Params, user *model.User) {
	var req model.PropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed JSON request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	property := &model.Property{
		ID:       s.nextID,
		IsActive: boolPtr(true),
		Owner:    model.PropertyOwner{ID: user.ID, Name: user.FullName()},
	}
	applyProperty(property, req)
	s.properties[property.ID] = property
	s.owners[property.ID] = user.ID
	s.recount(property.ID)

	writeData(w, http.StatusCreated, "Property created successfully", property)
}

func (s *Server) updateProperty(w http.ResponseWriter, r *http.Request, ps httprouter.Params, user *model.User) {
	var req model.PropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed JSON request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	property := s.ownedProperty(w, parseID(ps.ByName("id")), user, "update this property")
	if property == nil {
		return
	}
	applyProperty(property, req)
	writeData(w, http.StatusOK, "Property updated successfully", property)
}

// deleteProperty only deactivates, like the real backend.
func (s *Server) deleteProperty(w http.ResponseWriter, _ *http.Request, ps httprouter.Params, user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	property := s.ownedProperty(w, parseID(ps.ByName("id")), user, "delete this property")
	if property == nil {
		return
	}
	property.IsActive = boolPtr(false)
	writeData[any](w, http.StatusOK, "Property deleted successfully", nil)
}

func (s *Server) propertyStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params, user *model.User) {
	active, err := strconv.ParseBool(r.URL.Query().Get("isActive"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Required request parameter 'isActive' is not present")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	property := s.ownedProperty(w, parseID(ps.ByName("id")), user, "update this property")
	if property == nil {
		return
	}
	property.IsActive = boolPtr(active)

	message := "Property deactivated"
	if active {
		message = "Property activated"
	}
	writeData[any](w, http.StatusOK, message, nil)
}

func (s *Server) ownerRooms(w http.ResponseWriter, r *http.Request, ps httprouter.Params, _ *model.User) {
	s.propertyRooms(false)(w, r, ps)
}

func (s *Server) createRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params, user *model.User) {
	var req model.RoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed JSON request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	property := s.ownedProperty(w, parseID(ps.ByName("id")), user, "add rooms to this property")
	if property == nil {
		return
	}
	for _, room := range s.rooms[property.ID] {
		if room.RoomNumber == req.RoomNumber {
			writeError(w, http.StatusConflict, "Room number already exists in this property")
			return
		}
	}

	s.nextID++
	room := &model.Room{ID: s.nextID, PropertyID: property.ID, IsActive: boolPtr(true)}
	applyRoom(room, req)
	s.addBeds(room, req.TotalBeds)
	s.rooms[property.ID] = append(s.rooms[property.ID], room)
	s.recount(property.ID)

	writeData(w, http.StatusCreated, "Room created successfully", room)
}

func applyRoom(room *model.Room, req model.RoomRequest) {
	room.RoomNumber = req.RoomNumber
	room.RoomType = req.RoomType
	room.FloorNumber = req.FloorNumber
	room.RentPerBed = req.RentPerBed
	room.HasAttachedBathroom = req.HasAttachedBathroom
	room.HasAC = req.HasAC
	room.HasBalcony = req.HasBalcony
	room.RoomSizeSqft = req.RoomSizeSqft
	room.Description = req.Description
}

// addBeds grows the room to total beds. Beds are never removed.
func (s *Server) addBeds(room *model.Room, total int) {
	for i := len(room.Beds) + 1; i <= total; i++ {
		s.nextID++
		room.Beds = append(room.Beds, model.Bed{ID: s.nextID, BedNumber: "B" + strconv.Itoa(i), Status: model.BedAvailable})
	}
	room.TotalBeds = len(room.Beds)
}

func (s *Server) updateRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params, user *model.User) {
	var req model.RoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed JSON request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	room := s.ownedRoom(w, parseID(ps.ByName("id")), user, "update this room")
	if room == nil {
		return
	}
	if room.RoomNumber != req.RoomNumber {
		for _, other := range s.rooms[room.PropertyID] {
			if other.RoomNumber == req.RoomNumber {
				writeError(w, http.StatusConflict, "Room number already exists in this property")
				return
			}
		}
	}
	applyRoom(room, req)
	s.addBeds(room, req.TotalBeds)
	s.recount(room.PropertyID)

	writeData(w, http.StatusOK, "Room updated successfully", room)
}

func (s *Server) deleteRoom(w http.ResponseWriter, _ *http.Request, ps httprouter.Params, user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := s.ownedRoom(w, parseID(ps.ByName("id")), user, "delete this room")
	if room == nil {
		return
	}
	for _, bed := range room.Beds {
		if bed.Status == model.BedOccupied {
			writeError(w, http.StatusBadRequest, "Cannot delete room with occupied beds")
			return
		}
	}

	propertyID := room.PropertyID
	s.rooms[propertyID] = slices.DeleteFunc(s.rooms[propertyID], func(other *model.Room) bool {
		return other.ID == room.ID
	})
	s.recount(propertyID)
	writeData[any](w, http.StatusOK, "Room deleted successfully", nil)
}

func (s *Server) roomStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params, user *model.User) {
	active, err := strconv.ParseBool(r.URL.Query().Get("isActive"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Required request parameter 'isActive' is not present")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	room := s.ownedRoom(w, parseID(ps.ByName("id")), user, "update this room")
	if room == nil {
		return
	}
	room.IsActive = boolPtr(active)
	s.recount(room.PropertyID)

	message := "Room deactivated"
	if active {
		message = "Room activated"
	}
	writeData[any](w, http.StatusOK, message, nil)
}
