package http

import (
	"encoding/json"
	"net/http"
	"time"

	apperrors "stayease/pkg/errors"
)

// TimestampLayout matches the timestamps the StayEase API puts in its envelope.
const TimestampLayout = "2006-01-02T15:04:05"

// Response is the envelope of every agent answer. Code and Details are only
// set on failures.
type Response struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message,omitempty"`
	Data      any            `json:"data,omitempty"`
	Code      string         `json:"code,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp string         `json:"timestamp"`
}

func now() string {
	return time.Now().UTC().Format(TimestampLayout)
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError renders err with the status its AppError carries. Errors that
// are not AppErrors become a 500 without leaking their text.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)

	message := apperrors.Message(appErr)
	if appErr.Code == apperrors.CodeInternal {
		message = "Internal server error"
	}

	statusCode := appErr.StatusCode()
	if statusCode == 0 {
		statusCode = http.StatusInternalServerError
	}

	return WriteJSON(w, statusCode, Response{
		Success:   false,
		Message:   message,
		Code:      appErr.Code,
		Details:   appErr.Details,
		Timestamp: now(),
	})
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteMessage(w, http.StatusOK, "", data)
}

func WriteCreated(w http.ResponseWriter, message string, data any) error {
	return WriteMessage(w, http.StatusCreated, message, data)
}

func WriteMessage(w http.ResponseWriter, statusCode int, message string, data any) error {
	return WriteJSON(w, statusCode, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: now(),
	})
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
