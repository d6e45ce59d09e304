package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			appErr:   Conflict("Bed is not available for booking"),
			expected: "CONFLICT: Bed is not available for booking",
		},
		{
			name:     "with underlying error",
			appErr:   Transport("connection refused", errors.New("dial tcp 127.0.0.1:8080")),
			expected: "TRANSPORT_ERROR: connection refused (caused by: dial tcp 127.0.0.1:8080)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Wrap(originalErr, CodeInternal, "wrapped", http.StatusInternalServerError)

	if errors.Unwrap(appErr) != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
}

func TestFromUpstream(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		message    string
		mutation   bool
		wantCode   string
		wantStatus int
		wantMsg    string
	}{
		{"unauthorized", 401, "", false, CodeUnauthorized, http.StatusUnauthorized, "Request failed with status code 401"},
		{"forbidden", 403, "Access denied", true, CodeForbidden, http.StatusForbidden, "Access denied"},
		{"rejected transition", 400, "Invalid status transition from CONFIRMED to PENDING", true, CodeConflict, http.StatusConflict, "Invalid status transition from CONFIRMED to PENDING"},
		{"bad read", 400, "bad page", false, CodeInvalidInput, http.StatusBadRequest, "bad page"},
		{"not found", 404, "Booking not found", true, CodeNotFound, http.StatusNotFound, "Booking not found"},
		{"server error", 500, "", true, CodeTransport, http.StatusBadGateway, "Request failed with status code 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromUpstream(tt.status, tt.message, tt.mutation)
			if got.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", got.Code, tt.wantCode)
			}
			if got.HTTPStatus != tt.wantStatus {
				t.Errorf("status = %d, want %d", got.HTTPStatus, tt.wantStatus)
			}
			if got.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", got.Message, tt.wantMsg)
			}
			if got.Details["upstream_status"] != tt.status {
				t.Errorf("expected upstream_status detail %d, got %v", tt.status, got.Details["upstream_status"])
			}
		})
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"server message wins", Conflict("Bed already has an active booking"), "Bed already has an active booking"},
		{"transport message when server silent", &AppError{Code: CodeTransport, Err: errors.New("connection reset by peer")}, "connection reset by peer"},
		{"fallback", &AppError{Code: CodeTransport}, FallbackMessage},
		{"wrapped app error", fmt.Errorf("cancel: %w", Conflict("Cannot cancel booking with status: CHECKED_OUT")), "Cannot cancel booking with status: CHECKED_OUT"},
		{"plain error", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsAppErrorAndHasCode(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Unauthorized("sign in"))

	if !IsAppError(wrapped) {
		t.Errorf("IsAppError() should see through wrapping")
	}
	if IsAppError(errors.New("regular error")) {
		t.Errorf("IsAppError() should return false for regular error")
	}
	if !HasCode(wrapped, CodeUnauthorized) {
		t.Errorf("HasCode() should match wrapped code")
	}
	if HasCode(wrapped, CodeConflict) {
		t.Errorf("HasCode() should not match a different code")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("Booking")
	if AsAppError(appErr) != appErr {
		t.Errorf("AsAppError() should return same AppError")
	}

	regularErr := errors.New("regular error")
	result := AsAppError(regularErr)
	if result.Code != CodeInternal {
		t.Errorf("AsAppError() should wrap regular error as internal error")
	}
	if result.Err != regularErr {
		t.Errorf("AsAppError() should wrap the original error")
	}
}

func TestAppError_ToJSON(t *testing.T) {
	err := Validation("Invalid booking request", map[string]any{"checkInDate": "checkInDate is required"})
	jsonStr := string(err.ToJSON())

	if !strings.Contains(jsonStr, CodeValidation) {
		t.Errorf("ToJSON() should contain error code")
	}
	if !strings.Contains(jsonStr, "checkInDate is required") {
		t.Errorf("ToJSON() should contain details")
	}
}

func TestConstructorsStatus(t *testing.T) {
	tests := []struct {
		err  *AppError
		code string
		want int
	}{
		{SubmitDisabled("no open beds"), CodeSubmitDisabled, http.StatusUnprocessableEntity},
		{FeatureUnavailable("inquiries"), CodeFeatureUnavailable, http.StatusNotImplemented},
		{InFlight("Cancel booking"), CodeInFlight, http.StatusTooManyRequests},
		{Forbidden("owner only"), CodeForbidden, http.StatusForbidden},
	}
	for _, tt := range tests {
		if tt.err.Code != tt.code || tt.err.StatusCode() != tt.want {
			t.Errorf("%s: got code=%s status=%d", tt.code, tt.err.Code, tt.err.StatusCode())
		}
	}
}
