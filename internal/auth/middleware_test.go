package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalAuth_ValidCookie(t *testing.T) {
	tokens, err := NewTokenService("test-secret-0123456789abcdef", time.Hour)
	require.NoError(t, err)

	token, err := tokens.Generate("user-123")
	require.NoError(t, err)

	var gotID string
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = UserIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})

	OptionalAuth(tokens)(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, gotOK)
	assert.Equal(t, "user-123", gotID)
}

func TestOptionalAuth_NoCookie(t *testing.T) {
	tokens, err := NewTokenService("test-secret-0123456789abcdef", time.Hour)
	require.NoError(t, err)

	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, gotOK = UserIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	OptionalAuth(tokens)(next).ServeHTTP(rec, req)

	// Anonymous requests pass through, just without an identity.
	assert.False(t, gotOK)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalAuth_GarbageCookie(t *testing.T) {
	tokens, err := NewTokenService("test-secret-0123456789abcdef", time.Hour)
	require.NoError(t, err)

	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, gotOK = UserIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "not-a-jwt"})

	rec := httptest.NewRecorder()
	OptionalAuth(tokens)(next).ServeHTTP(rec, req)

	assert.False(t, gotOK)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalAuth_TokenSignedWithDifferentSecret(t *testing.T) {
	tokens, err := NewTokenService("test-secret-0123456789abcdef", time.Hour)
	require.NoError(t, err)
	other, err := NewTokenService("another-secret-0123456789abcdef", time.Hour)
	require.NoError(t, err)

	forged, err := other.Generate("user-123")
	require.NoError(t, err)

	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, gotOK = UserIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: forged})

	OptionalAuth(tokens)(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.False(t, gotOK)
}
