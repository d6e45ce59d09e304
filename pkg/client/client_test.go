package client

import (
	"context"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"stayease/internal/upstreamtest"
	apperrors "stayease/pkg/errors"
	"stayease/pkg/middleware"
	"stayease/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

type recordingNotifier struct {
	mu       sync.Mutex
	statuses []int
}

func (n *recordingNotifier) NotifyUnauthorized(status int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statuses = append(n.statuses, status)
}

func newTestClient(t *testing.T, email string) (*Client, *upstreamtest.Server, *recordingNotifier) {
	t.Helper()
	srv := upstreamtest.New(t)
	notifier := &recordingNotifier{}
	var token staticToken
	if email != "" {
		token = staticToken(srv.Token(email))
	}
	c := NewClient(srv.URL, 5*time.Second, WithTokenSource(token), WithUnauthorizedNotifier(notifier))
	return c, srv, notifier
}

func TestBookingClient_Create(t *testing.T) {
	c, srv, _ := newTestClient(t, upstreamtest.SeekerEmail)

	booking, err := c.Bookings.Create(context.Background(), &model.BookingRequest{
		PropertyID:  10,
		RoomID:      5,
		BedID:       3,
		CheckInDate: "2025-03-01",
	})
	require.NoError(t, err)

	assert.Equal(t, model.BookingPending, booking.Status)
	assert.Equal(t, 8000.0, booking.MonthlyRent)
	assert.Regexp(t, `^BK\d{14}\d{1,4}$`, booking.BookingReference)
	assert.Nil(t, booking.CheckOutDate)
	assert.Equal(t, model.BedReserved, srv.Bed(10, 5, 3).Status)
}

func TestBookingClient_CreateRejected(t *testing.T) {
	c, _, _ := newTestClient(t, upstreamtest.SeekerEmail)

	tests := []struct {
		name    string
		req     model.BookingRequest
		code    string
		message string
	}{
		{"occupied bed", model.BookingRequest{PropertyID: 10, RoomID: 5, BedID: 2, CheckInDate: "2025-03-01"}, apperrors.CodeConflict, "Bed is not available for booking"},
		{"room of another property", model.BookingRequest{PropertyID: 11, RoomID: 5, BedID: 1, CheckInDate: "2025-03-01"}, apperrors.CodeConflict, "Room does not belong to the specified property"},
		{"bed of another room", model.BookingRequest{PropertyID: 10, RoomID: 5, BedID: 4, CheckInDate: "2025-03-01"}, apperrors.CodeConflict, "Bed does not belong to the specified room"},
		{"missing property", model.BookingRequest{PropertyID: 99, RoomID: 5, BedID: 1, CheckInDate: "2025-03-01"}, apperrors.CodeNotFound, "Property not found with id : '99'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Bookings.Create(context.Background(), &tt.req)
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, tt.code), "got %v", err)
			assert.Equal(t, tt.message, apperrors.Message(err))
		})
	}
}

func TestBookingClient_CreateSendsExplicitNullCheckOut(t *testing.T) {
	c, srv, _ := newTestClient(t, upstreamtest.SeekerEmail)

	bodies := make(chan string, 1)
	srv.Intercept(func(w http.ResponseWriter, r *http.Request) bool {
		if r.Method == http.MethodPost && r.URL.Path == "/bookings" {
			raw, _ := io.ReadAll(r.Body)
			bodies <- string(raw)
			upstreamtest.WriteError(w, http.StatusInternalServerError, "")
			return true
		}
		return false
	})

	_, err := c.Bookings.Create(context.Background(), &model.BookingRequest{PropertyID: 10, RoomID: 5, BedID: 1, CheckInDate: "2025-03-01"})
	require.Error(t, err)
	assert.Contains(t, <-bodies, `"checkOutDate":null`)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeTransport))
	assert.Equal(t, "Request failed with status code 500", apperrors.Message(err))
}

func TestBookingClient_Lists(t *testing.T) {
	seeker, _, _ := newTestClient(t, upstreamtest.SeekerEmail)

	mine, err := seeker.Bookings.ListMine(context.Background(), 0, 10)
	require.NoError(t, err)
	require.Len(t, mine.Content, 3)
	assert.Equal(t, int64(102), mine.Content[0].ID, "newest first")
	assert.True(t, mine.First)
	assert.True(t, mine.Last)

	owner, _, _ := newTestClient(t, upstreamtest.OwnerEmail)
	pending, err := owner.Bookings.ListOwner(context.Background(), model.BookingFilter{Status: model.BookingPending, Size: 10})
	require.NoError(t, err)
	require.Len(t, pending.Content, 1)
	assert.Equal(t, int64(100), pending.Content[0].ID)
}

func TestBookingClient_OwnerListForbiddenForSeeker(t *testing.T) {
	c, _, notifier := newTestClient(t, upstreamtest.SeekerEmail)

	_, err := c.Bookings.ListOwner(context.Background(), model.BookingFilter{Size: 10})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
	assert.Equal(t, []int{http.StatusForbidden}, notifier.statuses)
}

func TestBookingClient_UpdateStatus(t *testing.T) {
	c, srv, _ := newTestClient(t, upstreamtest.OwnerEmail)

	booking, err := c.Bookings.UpdateStatus(context.Background(), 100, model.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.BookingConfirmed, booking.Status)

	_, err = c.Bookings.UpdateStatus(context.Background(), 100, model.BookingPending)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
	assert.Equal(t, "Invalid status transition from CONFIRMED to PENDING", apperrors.Message(err))

	stored, ok := srv.Booking(100)
	require.True(t, ok)
	assert.Equal(t, model.BookingConfirmed, stored.Status)
}

func TestBookingClient_Cancel(t *testing.T) {
	c, srv, _ := newTestClient(t, upstreamtest.SeekerEmail)

	require.NoError(t, c.Bookings.Cancel(context.Background(), 100))
	assert.Equal(t, model.BedAvailable, srv.Bed(10, 6, 4).Status)

	err := c.Bookings.Cancel(context.Background(), 102)
	require.Error(t, err)
	assert.Equal(t, "Cannot cancel booking with status: CHECKED_OUT", apperrors.Message(err))
}

func TestBookingClient_Get(t *testing.T) {
	c, _, _ := newTestClient(t, upstreamtest.SeekerEmail)

	booking, err := c.Bookings.Get(context.Background(), 101)
	require.NoError(t, err)
	assert.Equal(t, model.BookingCheckedIn, booking.Status)

	_, err = c.Bookings.Get(context.Background(), 999)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestPropertyClient(t *testing.T) {
	c, _, _ := newTestClient(t, "")
	ctx := context.Background()

	property, err := c.Properties.Get(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "Sunrise PG", property.Name)
	assert.Equal(t, 3, property.AvailableBeds)

	rooms, err := c.Properties.Rooms(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Len(t, rooms[0].Beds, 4)

	available, err := c.Properties.AvailableRooms(ctx, 10)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, int64(5), available[0].ID)

	page, err := c.Properties.Search(ctx, model.PropertySearch{City: "pune", PropertyType: model.PropertyHostel, Size: 10})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, int64(11), page.Content[0].ID)
}

func TestPropertyClient_OwnerProperties(t *testing.T) {
	c, _, _ := newTestClient(t, upstreamtest.OwnerEmail)

	page, err := c.Properties.OwnerProperties(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalElements)
}

func TestPropertyClient_Lookups(t *testing.T) {
	c, _, _ := newTestClient(t, "")
	ctx := context.Background()

	featured, err := c.Properties.Featured(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.True(t, featured[0].IsFeatured)

	cities, err := c.Properties.Cities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pune"}, cities)

	amenities, err := c.Properties.Amenities(ctx)
	require.NoError(t, err)
	require.Len(t, amenities, 3)
	assert.Equal(t, "WiFi", amenities[0].Name)
}

func TestPropertyClient_OwnerWrites(t *testing.T) {
	c, srv, _ := newTestClient(t, upstreamtest.OwnerEmail)
	ctx := context.Background()
	req := &model.PropertyRequest{
		Name: "Green Nest", PropertyType: model.PropertyFlat, GenderPreference: model.GenderMale,
		AddressLine1: "9 MG Road", City: "Bengaluru", State: "Karnataka", Pincode: "560001",
		MinRent: 7000, MaxRent: 9000,
	}

	created, err := c.Properties.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, upstreamtest.OwnerID, created.Owner.ID)

	req.Name = "Green Nest Annex"
	updated, err := c.Properties.Update(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Green Nest Annex", updated.Name)

	require.NoError(t, c.Properties.SetActive(ctx, created.ID, false))
	property, _ := srv.Property(created.ID)
	assert.False(t, *property.IsActive)

	require.NoError(t, c.Properties.SetActive(ctx, created.ID, true))
	require.NoError(t, c.Properties.Delete(ctx, created.ID))
	property, _ = srv.Property(created.ID)
	assert.False(t, *property.IsActive)

	_, err = c.Properties.Update(ctx, 404, req)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestPropertyClient_OwnerWritesForbiddenForSeeker(t *testing.T) {
	c, _, notifier := newTestClient(t, upstreamtest.SeekerEmail)

	err := c.Properties.Delete(context.Background(), 10)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
	assert.Equal(t, []int{http.StatusForbidden}, notifier.statuses)
}

func TestRoomClient(t *testing.T) {
	c, srv, _ := newTestClient(t, upstreamtest.OwnerEmail)
	ctx := context.Background()

	room, err := c.Rooms.Create(ctx, 11, &model.RoomRequest{RoomNumber: "G2", RoomType: model.RoomTriple, TotalBeds: 3, RentPerBed: 5500})
	require.NoError(t, err)
	assert.Equal(t, int64(11), room.PropertyID)
	require.Len(t, room.Beds, 3)
	assert.Equal(t, "B3", room.Beds[2].BedNumber)
	assert.Equal(t, 3, room.AvailableBeds)

	rooms, err := c.Rooms.List(ctx, 11)
	require.NoError(t, err)
	assert.Len(t, rooms, 2)

	updated, err := c.Rooms.Update(ctx, room.ID, &model.RoomRequest{RoomNumber: "G1", RoomType: model.RoomTriple, TotalBeds: 3, RentPerBed: 5500})
	require.Error(t, err)
	assert.Nil(t, updated)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))

	require.NoError(t, c.Rooms.SetActive(ctx, room.ID, false))
	require.NoError(t, c.Rooms.Delete(ctx, room.ID))
	_, ok := srv.Room(room.ID)
	assert.False(t, ok)

	property, _ := srv.Property(11)
	assert.Equal(t, 1, property.TotalRooms)
}

func TestAuthClient_Register(t *testing.T) {
	c, srv, _ := newTestClient(t, "")
	req := &model.RegisterRequest{
		Email: "kiran@example.com", Password: "hunter22", ConfirmPassword: "hunter22",
		FirstName: "Kiran", LastName: "Das", Phone: "9000000001",
	}

	user, err := c.Auth.Register(context.Background(), req, model.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, user.Role)
	assert.Equal(t, 1, srv.CallCount(http.MethodPost, "/auth/register/owner"))

	_, err = c.Auth.Register(context.Background(), req, model.RoleUser)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
	assert.Equal(t, "Email already registered", apperrors.Message(err))
}

func TestAuthClient(t *testing.T) {
	c, _, _ := newTestClient(t, "")

	jwt, err := c.Auth.Login(context.Background(), &model.LoginRequest{Email: upstreamtest.OwnerEmail, Password: upstreamtest.Password})
	require.NoError(t, err)
	assert.NotEmpty(t, jwt.AccessToken)
	assert.Equal(t, model.RoleOwner, jwt.User.Role)

	_, err = c.Auth.Login(context.Background(), &model.LoginRequest{Email: upstreamtest.OwnerEmail, Password: "wrong"})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
	assert.Equal(t, "Invalid email or password", apperrors.Message(err))
}

func TestAuthClient_MeWithoutToken(t *testing.T) {
	c, _, notifier := newTestClient(t, "")

	_, err := c.Auth.Me(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
	assert.Equal(t, []int{http.StatusUnauthorized}, notifier.statuses)
}

func TestInquiryClient(t *testing.T) {
	c, srv, _ := newTestClient(t, upstreamtest.SeekerEmail)
	req := &model.InquiryRequest{PropertyID: 10, Name: "Asha", Email: "asha@example.com", Phone: "9876543210"}

	err := c.Inquiries.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeFeatureUnavailable))
	assert.Equal(t, InquiryUnavailableMessage, apperrors.Message(err))

	srv.EnableInquiries()
	require.NoError(t, c.Inquiries.Create(context.Background(), req))
	assert.Len(t, srv.Inquiries(), 1)
}

func TestHttpClient_PropagatesRequestID(t *testing.T) {
	c, srv, _ := newTestClient(t, "")
	ctx := middleware.WithRequestID(context.Background(), "req-123")

	_, err := c.Properties.Get(ctx, 10)
	require.NoError(t, err)

	calls := srv.Calls()
	require.NotEmpty(t, calls)
	assert.Equal(t, "req-123", calls[len(calls)-1].RequestID)
}

func TestHttpClient_TransportError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", time.Second)

	_, err := c.Properties.Get(context.Background(), 10)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeTransport))
	assert.NotEmpty(t, apperrors.Message(err))
}

func TestHttpClient_UnsuccessfulEnvelope(t *testing.T) {
	c, srv, _ := newTestClient(t, "")
	srv.Intercept(func(w http.ResponseWriter, r *http.Request) bool {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"message":"Upstream degraded"}`))
		return true
	})

	_, err := c.Properties.Get(context.Background(), 10)
	require.Error(t, err)
	assert.Equal(t, "Upstream degraded", apperrors.Message(err))
}
