package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"stayease/internal/bookings/availability"
	"stayease/pkg/logger"
	"stayease/pkg/model"
	"stayease/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the ISO calendar date format used on the wire.
const DateLayout = "2006-01-02"

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Details maps each field to its first message.
func (v ValidationErrors) Details() map[string]any {
	details := make(map[string]any, len(v))
	for _, err := range v {
		if _, ok := details[err.Field]; !ok {
			details[err.Field] = err.Message
		}
	}
	return details
}

func (v ValidationErrors) Has(field string) bool {
	for _, err := range v {
		if err.Field == field {
			return true
		}
	}
	return false
}

type Option func(*BookingValidator)

// WithStrictCheckInDate rejects check-in dates before today.
func WithStrictCheckInDate(strict bool) Option {
	return func(v *BookingValidator) {
		v.strictCheckIn = strict
	}
}

func WithClock(now func() time.Time) Option {
	return func(v *BookingValidator) {
		v.now = now
	}
}

type BookingValidator struct {
	validate      *validator.Validate
	logger        *logger.Logger
	strictCheckIn bool
	now           func() time.Time
}

func NewBookingValidator(log *logger.Logger, opts ...Option) *BookingValidator {
	v := &BookingValidator{
		validate: newValidate(log),
		logger:   log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}

	log.Info("Booking validator initialized successfully", "strict_check_in_date", v.strictCheckIn)
	return v
}

func newValidate(log *logger.Logger) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire name so errors line up with form fields.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("isodate", validateISODate); err != nil {
		log.Fatal("Failed to register 'isodate' validator",
			"error", err,
		)
	}
	return v
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil
}

// Normalize cleans req in place. A blank check-out date becomes null.
func (v *BookingValidator) Normalize(req *model.BookingRequest) {
	req.CheckInDate = strings.TrimSpace(req.CheckInDate)
	req.CheckOutDate = sanitizer.OptionalString(req.CheckOutDate)
	req.Notes = sanitizer.NormalizeNotes(req.Notes)
}

// Validate checks the request on its own, without the property context.
func (v *BookingValidator) Validate(req *model.BookingRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	var errs ValidationErrors
	checkIn, _ := time.Parse(DateLayout, req.CheckInDate)

	if req.CheckOutDate != nil {
		checkOut, _ := time.Parse(DateLayout, *req.CheckOutDate)
		if checkOut.Before(checkIn) {
			errs = append(errs, ValidationError{
				Field:   "checkOutDate",
				Message: "checkOutDate cannot be before checkInDate",
			})
		}
	}

	if v.strictCheckIn && checkIn.Before(v.today()) {
		errs = append(errs, ValidationError{
			Field:   "checkInDate",
			Message: "checkInDate cannot be in the past",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateForProperty checks req against the property being viewed and its
// rooms: the room must belong to the property and the bed must be open.
func (v *BookingValidator) ValidateForProperty(req *model.BookingRequest, property *model.Property, rooms []model.Room) error {
	if err := v.Validate(req); err != nil {
		return err
	}

	var errs ValidationErrors

	if property != nil && req.PropertyID != property.ID {
		errs = append(errs, ValidationError{
			Field:   "propertyId",
			Message: fmt.Sprintf("propertyId must be %d", property.ID),
		})
	}

	room := availability.FindRoom(rooms, req.RoomID)
	if room == nil || (room.PropertyID != 0 && room.PropertyID != req.PropertyID) {
		errs = append(errs, ValidationError{
			Field:   "roomId",
			Message: "roomId must be a room of the selected property",
		})
	} else if !availability.IsOpen(room, req.BedID) {
		errs = append(errs, ValidationError{
			Field:   "bedId",
			Message: "bedId must be an available bed in the selected room",
		})
	}

	if len(errs) > 0 {
		v.logger.Debug("Booking request rejected against property",
			"property_id", req.PropertyID,
			"room_id", req.RoomID,
			"bed_id", req.BedID,
			"errors", errs.Error(),
		)
		return errs
	}
	return nil
}

func (v *BookingValidator) ValidateLogin(req *model.LoginRequest) error {
	return structErrors(v.validate, req)
}

func (v *BookingValidator) today() time.Time {
	y, m, d := v.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func structErrors(validate *validator.Validate, s any) error {
	if err := validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

// fieldName turns a Go field name from a cross-field tag into its wire name.
func fieldName(goName string) string {
	if goName == "" {
		return goName
	}
	return strings.ToLower(goName[:1]) + goName[1:]
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "len":
			message = fmt.Sprintf("%s must be exactly %s characters", err.Field(), err.Param())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
		case "gte":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "eqfield":
			message = fmt.Sprintf("%s must match %s", err.Field(), fieldName(err.Param()))
		case "gtefield":
			message = fmt.Sprintf("%s cannot be less than %s", err.Field(), fieldName(err.Param()))
		case "url":
			message = fmt.Sprintf("%s must be a valid URL", err.Field())
		case "latitude", "longitude":
			message = fmt.Sprintf("%s must be a valid %s", err.Field(), err.Tag())
		case "isodate":
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", err.Field())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "numeric":
			message = fmt.Sprintf("%s must contain digits only", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
