package validator

import (
	"strings"

	"stayease/pkg/logger"
	"stayease/pkg/model"
	"stayease/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

// ListingValidator checks owner writes to properties and rooms.
type ListingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewListingValidator(log *logger.Logger) *ListingValidator {
	return &ListingValidator{
		validate: newValidate(log),
		logger:   log,
	}
}

func (v *ListingValidator) NormalizeProperty(req *model.PropertyRequest) {
	req.Name = sanitizer.TrimAndNormalize(req.Name)
	req.Description = sanitizer.NormalizeNotes(req.Description)
	req.PropertyType = model.PropertyType(strings.ToUpper(strings.TrimSpace(string(req.PropertyType))))
	req.GenderPreference = model.GenderPreference(strings.ToUpper(strings.TrimSpace(string(req.GenderPreference))))
	req.AddressLine1 = sanitizer.TrimAndNormalize(req.AddressLine1)
	req.AddressLine2 = sanitizer.TrimAndNormalize(req.AddressLine2)
	req.City = sanitizer.NormalizeCity(req.City)
	req.State = sanitizer.TrimAndNormalize(req.State)
	req.Pincode = strings.ReplaceAll(strings.TrimSpace(req.Pincode), " ", "")
	for i, u := range req.ImageURLs {
		req.ImageURLs[i] = strings.TrimSpace(u)
	}
}

func (v *ListingValidator) ValidateProperty(req *model.PropertyRequest) error {
	v.NormalizeProperty(req)
	return structErrors(v.validate, req)
}

func (v *ListingValidator) NormalizeRoom(req *model.RoomRequest) {
	req.RoomNumber = sanitizer.TrimAndNormalize(req.RoomNumber)
	req.RoomType = model.RoomType(strings.ToUpper(strings.TrimSpace(string(req.RoomType))))
	req.Description = sanitizer.NormalizeNotes(req.Description)
}

func (v *ListingValidator) ValidateRoom(req *model.RoomRequest) error {
	v.NormalizeRoom(req)
	return structErrors(v.validate, req)
}
