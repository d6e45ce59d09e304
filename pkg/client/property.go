package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	apperrors "stayease/pkg/errors"
	"stayease/pkg/model"
)

type PropertyClient struct {
	httpClient *HttpClient
}

func NewPropertyClient(httpClient *HttpClient) *PropertyClient {
	return &PropertyClient{
		httpClient: httpClient,
	}
}

func (c *PropertyClient) Get(ctx context.Context, id int64) (*model.Property, error) {
	return getJSON[model.Property](ctx, c.httpClient, "/properties/"+strconv.FormatInt(id, 10))
}

// Rooms returns every room of the property with its beds embedded.
func (c *PropertyClient) Rooms(ctx context.Context, propertyID int64) ([]model.Room, error) {
	return c.rooms(ctx, "/properties/"+strconv.FormatInt(propertyID, 10)+"/rooms")
}

// AvailableRooms returns only rooms the server counts as having open beds.
func (c *PropertyClient) AvailableRooms(ctx context.Context, propertyID int64) ([]model.Room, error) {
	return c.rooms(ctx, "/properties/"+strconv.FormatInt(propertyID, 10)+"/rooms/available")
}

func (c *PropertyClient) rooms(ctx context.Context, path string) ([]model.Room, error) {
	rooms, err := getJSON[[]model.Room](ctx, c.httpClient, path)
	if err != nil {
		return nil, err
	}
	return *rooms, nil
}

func (c *PropertyClient) OwnerProperties(ctx context.Context, page, size int) (*model.Page[model.Property], error) {
	return getJSON[model.Page[model.Property]](ctx, c.httpClient, "/owner/properties?"+pageQuery(page, size).Encode())
}

func (c *PropertyClient) Search(ctx context.Context, search model.PropertySearch) (*model.Page[model.Property], error) {
	q := pageQuery(search.Page, search.Size)
	if search.City != "" {
		q.Set("city", search.City)
	}
	if search.PropertyType != "" {
		q.Set("propertyType", string(search.PropertyType))
	}
	if search.GenderPreference != "" {
		q.Set("genderPreference", string(search.GenderPreference))
	}
	if search.MinRent > 0 {
		q.Set("minRent", strconv.FormatFloat(search.MinRent, 'f', -1, 64))
	}
	if search.MaxRent > 0 {
		q.Set("maxRent", strconv.FormatFloat(search.MaxRent, 'f', -1, 64))
	}
	if search.AvailableBeds > 0 {
		q.Set("availableBeds", strconv.Itoa(search.AvailableBeds))
	}
	return getJSON[model.Page[model.Property]](ctx, c.httpClient, "/properties/search?"+q.Encode())
}

func (c *PropertyClient) Featured(ctx context.Context) ([]model.Property, error) {
	properties, err := getJSON[[]model.Property](ctx, c.httpClient, "/properties/featured")
	if err != nil {
		return nil, err
	}
	return *properties, nil
}

func (c *PropertyClient) Cities(ctx context.Context) ([]string, error) {
	cities, err := getJSON[[]string](ctx, c.httpClient, "/properties/cities")
	if err != nil {
		return nil, err
	}
	return *cities, nil
}

func (c *PropertyClient) Amenities(ctx context.Context) ([]model.Amenity, error) {
	amenities, err := getJSON[[]model.Amenity](ctx, c.httpClient, "/amenities")
	if err != nil {
		return nil, err
	}
	return *amenities, nil
}

func (c *PropertyClient) Create(ctx context.Context, req *model.PropertyRequest) (*model.Property, error) {
	property, err := call[model.Property](ctx, c.httpClient, http.MethodPost, "/owner/properties", req, true)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, apperrors.Transport("upstream did not return the created property", nil)
	}
	return property, nil
}

func (c *PropertyClient) Update(ctx context.Context, id int64, req *model.PropertyRequest) (*model.Property, error) {
	property, err := call[model.Property](ctx, c.httpClient, http.MethodPut, ownerPropertyPath(id), req, true)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, apperrors.Transport("upstream did not return the updated property", nil)
	}
	return property, nil
}

func (c *PropertyClient) Delete(ctx context.Context, id int64) error {
	_, err := call[struct{}](ctx, c.httpClient, http.MethodDelete, ownerPropertyPath(id), nil, true)
	return err
}

func (c *PropertyClient) SetActive(ctx context.Context, id int64, active bool) error {
	_, err := call[struct{}](ctx, c.httpClient, http.MethodPatch, ownerPropertyPath(id)+"/status?"+activeQuery(active), nil, true)
	return err
}

func ownerPropertyPath(id int64) string {
	return "/owner/properties/" + strconv.FormatInt(id, 10)
}

func activeQuery(active bool) string {
	q := url.Values{}
	q.Set("isActive", strconv.FormatBool(active))
	return q.Encode()
}
