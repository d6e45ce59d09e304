package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound           = "NOT_FOUND"
	CodeValidation         = "VALIDATION_ERROR"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeConflict           = "CONFLICT"
	CodeTransport          = "TRANSPORT_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeSubmitDisabled     = "SUBMIT_DISABLED"
	CodeFeatureUnavailable = "FEATURE_UNAVAILABLE"
	CodeInFlight           = "REQUEST_IN_FLIGHT"
)

// FallbackMessage is shown when neither the server nor the transport said anything useful.
const FallbackMessage = "Something went wrong"

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func (e *AppError) ToJSON() []byte {
	data, _ := json.Marshal(ErrorResponse{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
	return data
}

type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// Conflict is a mutation the server refused because state moved on since the
// last read: the bed was taken or another actor already changed the status.
func Conflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func Transport(message string, err error) *AppError {
	return Wrap(err, CodeTransport, message, http.StatusBadGateway)
}

func Internal(message string, err error) *AppError {
	return Wrap(err, CodeInternal, message, http.StatusInternalServerError)
}

func SubmitDisabled(message string) *AppError {
	return &AppError{
		Code:       CodeSubmitDisabled,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

func FeatureUnavailable(message string) *AppError {
	return &AppError{
		Code:       CodeFeatureUnavailable,
		Message:    message,
		HTTPStatus: http.StatusNotImplemented,
	}
}

func InFlight(action string) *AppError {
	return &AppError{
		Code:       CodeInFlight,
		Message:    fmt.Sprintf("%s is already in progress", action),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// FromUpstream classifies a non-2xx upstream answer. serverMessage is the
// envelope message, possibly empty. mutation selects conflict semantics for
// 4xx rejections of writes.
func FromUpstream(status int, serverMessage string, mutation bool) *AppError {
	message := serverMessage
	if message == "" {
		message = fmt.Sprintf("Request failed with status code %d", status)
	}

	var appErr *AppError
	switch {
	case status == http.StatusUnauthorized:
		appErr = Unauthorized(message)
	case status == http.StatusForbidden:
		appErr = Forbidden(message)
	case status == http.StatusNotFound:
		appErr = New(CodeNotFound, message, http.StatusNotFound)
	case mutation && (status == http.StatusBadRequest || status == http.StatusConflict || status == http.StatusUnprocessableEntity):
		appErr = Conflict(message)
	case status >= 400 && status < 500:
		appErr = InvalidInput(message)
	default:
		appErr = Transport(message, nil)
	}
	return appErr.WithDetails(map[string]any{"upstream_status": status})
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}

func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// Message picks the best text to show a user for err: the server's message,
// then the transport's, then FallbackMessage.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Message != "" {
			return appErr.Message
		}
		if appErr.Err != nil && appErr.Err.Error() != "" {
			return appErr.Err.Error()
		}
		return FallbackMessage
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackMessage
}
