package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "stayease/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryFloat(t *testing.T) {
	tests := []struct {
		query   string
		want    float64
		wantErr bool
	}{
		{"", 0, false},
		{"rent=7000.5", 7000.5, false},
		{"rent=-1", -1, false},
		{"rent=cheap", 0, true},
		{"rent=NaN", 0, true},
		{"rent=nan", 0, true},
		{"rent=Inf", 0, true},
		{"rent=-Infinity", 0, true},
		{"rent=1e400", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := QueryFloat(httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil), "rent")
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryBool(t *testing.T) {
	got, err := QueryBool(httptest.NewRequest(http.MethodPatch, "/?isActive=false", nil), "isActive")
	require.NoError(t, err)
	assert.False(t, got)

	got, err = QueryBool(httptest.NewRequest(http.MethodPatch, "/?isActive=true", nil), "isActive")
	require.NoError(t, err)
	assert.True(t, got)

	_, err = QueryBool(httptest.NewRequest(http.MethodPatch, "/", nil), "isActive")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput), "the parameter is required")
}
