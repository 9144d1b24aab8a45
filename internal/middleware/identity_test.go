// File: internal/middleware/identity_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelink/carelink-server/internal/auth"
)

func identityProbe(t *testing.T, secret []byte) (http.Handler, *string) {
	t.Helper()
	var captured string
	handler := NewIdentityMiddleware(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserID(r)
		require.True(t, ok)
		captured = id
		w.WriteHeader(http.StatusOK)
	}))
	return handler, &captured
}

func TestIdentityMiddlewareRejectsMissingHeader(t *testing.T) {
	handler := NewIdentityMiddleware([]byte("secret"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without identity")
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard-data", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")
}

func TestIdentityMiddlewarePassesRawID(t *testing.T) {
	handler, captured := identityProbe(t, []byte("secret"))

	req := httptest.NewRequest(http.MethodGet, "/dashboard-data", nil)
	req.Header.Set("Authorization", "patient-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "patient-42", *captured)
}

func TestIdentityMiddlewareFallsBackToAuthorizationId(t *testing.T) {
	handler, captured := identityProbe(t, []byte("secret"))

	req := httptest.NewRequest(http.MethodGet, "/list-patients", nil)
	req.Header.Set("Authorization-Id", "doctor-7")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "doctor-7", *captured)
}

func TestIdentityMiddlewareExtractsJWTSubject(t *testing.T) {
	secret := []byte("secret")
	token, err := auth.GenerateToken("acc-99", secret)
	require.NoError(t, err)

	handler, captured := identityProbe(t, secret)

	req := httptest.NewRequest(http.MethodGet, "/dashboard-data", nil)
	req.Header.Set("Authorization", token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "acc-99", *captured)
}
