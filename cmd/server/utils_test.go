package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		resource string
		id       string
		action   string
		wantErr  bool
	}{
		{"resource only", "/api/v1/contracts", "contracts", "", "", false},
		{"resource and id", "/api/v1/contracts/42", "contracts", "42", "", false},
		{"resource id action", "/api/v1/contracts/42/export", "contracts", "42", "export", false},
		{"trailing slash", "/api/v1/templates/", "templates", "", "", false},
		{"empty", "/api/v1/", "", "", "", true},
		{"too deep", "/api/v1/contracts/42/export/extra", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resource, id, action, err := parsePath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.resource, resource)
			assert.Equal(t, tt.id, id)
			assert.Equal(t, tt.action, action)
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "0", "-1", "1.5"} {
		_, err := parseID(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestWithRequestID(t *testing.T) {
	handler := withRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
}
