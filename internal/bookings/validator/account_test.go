package validator

import (
	"testing"

	"stayease/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRegistration(t *testing.T) {
	v := newTestValidator()

	valid := func() *model.RegisterRequest {
		return &model.RegisterRequest{
			Email:           " Meera@Example.com ",
			Password:        "secret1",
			ConfirmPassword: "secret1",
			FirstName:       "  Meera ",
			LastName:        "Iyer",
			Phone:           "+91 91234 56789",
		}
	}

	t.Run("normalizes and accepts", func(t *testing.T) {
		req := valid()
		require.NoError(t, v.ValidateRegistration(req))
		assert.Equal(t, "meera@example.com", req.Email)
		assert.Equal(t, "Meera", req.FirstName)
		assert.Equal(t, "9123456789", req.Phone)
	})

	tests := []struct {
		name    string
		mutate  func(*model.RegisterRequest)
		field   string
		message string
	}{
		{"passwords differ", func(r *model.RegisterRequest) { r.ConfirmPassword = "secret2" }, "confirmPassword", "confirmPassword must match password"},
		{"short password", func(r *model.RegisterRequest) { r.Password, r.ConfirmPassword = "abc", "abc" }, "password", "password must be at least 6 characters"},
		{"short first name", func(r *model.RegisterRequest) { r.FirstName = "M" }, "firstName", ""},
		{"missing last name", func(r *model.RegisterRequest) { r.LastName = " " }, "lastName", "lastName is required"},
		{"bad email", func(r *model.RegisterRequest) { r.Email = "meera" }, "email", ""},
		{"short phone", func(r *model.RegisterRequest) { r.Phone = "98765" }, "phone", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)

			var errs ValidationErrors
			require.ErrorAs(t, v.ValidateRegistration(req), &errs)
			assert.True(t, errs.Has(tt.field), "expected error on %s, got %v", tt.field, errs)
			if tt.message != "" {
				assert.Equal(t, tt.message, errs.Details()[tt.field])
			}
		})
	}
}
