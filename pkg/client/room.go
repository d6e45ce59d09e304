package client

import (
	"context"
	"net/http"
	"strconv"

	apperrors "stayease/pkg/errors"
	"stayease/pkg/model"
)

// RoomClient manages the rooms of an owner's properties.
type RoomClient struct {
	httpClient *HttpClient
}

func NewRoomClient(httpClient *HttpClient) *RoomClient {
	return &RoomClient{
		httpClient: httpClient,
	}
}

// List returns every room of the property, inactive ones included.
func (c *RoomClient) List(ctx context.Context, propertyID int64) ([]model.Room, error) {
	rooms, err := getJSON[[]model.Room](ctx, c.httpClient, ownerPropertyPath(propertyID)+"/rooms")
	if err != nil {
		return nil, err
	}
	return *rooms, nil
}

func (c *RoomClient) Create(ctx context.Context, propertyID int64, req *model.RoomRequest) (*model.Room, error) {
	room, err := call[model.Room](ctx, c.httpClient, http.MethodPost, ownerPropertyPath(propertyID)+"/rooms", req, true)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, apperrors.Transport("upstream did not return the created room", nil)
	}
	return room, nil
}

func (c *RoomClient) Update(ctx context.Context, roomID int64, req *model.RoomRequest) (*model.Room, error) {
	room, err := call[model.Room](ctx, c.httpClient, http.MethodPut, ownerRoomPath(roomID), req, true)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, apperrors.Transport("upstream did not return the updated room", nil)
	}
	return room, nil
}

func (c *RoomClient) Delete(ctx context.Context, roomID int64) error {
	_, err := call[struct{}](ctx, c.httpClient, http.MethodDelete, ownerRoomPath(roomID), nil, true)
	return err
}

func (c *RoomClient) SetActive(ctx context.Context, roomID int64, active bool) error {
	_, err := call[struct{}](ctx, c.httpClient, http.MethodPatch, ownerRoomPath(roomID)+"/status?"+activeQuery(active), nil, true)
	return err
}

func ownerRoomPath(id int64) string {
	return "/owner/rooms/" + strconv.FormatInt(id, 10)
}
