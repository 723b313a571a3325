package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlash_SetThenPop(t *testing.T) {
	// Set the flash on one response, as a handler would before redirecting.
	setRec := httptest.NewRecorder()
	setFlash(setRec, "Successfully logged in.")

	cookies := setRec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, flashCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	// The raw value must not contain the plaintext (it's base64-encoded).
	assert.NotContains(t, cookies[0].Value, "Successfully")

	// Pop it on the next request, as Render does.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	popRec := httptest.NewRecorder()

	assert.Equal(t, "Successfully logged in.", popFlash(popRec, req))

	// Popping must expire the cookie so the message shows exactly once.
	popped := popRec.Result().Cookies()
	require.Len(t, popped, 1)
	assert.Equal(t, flashCookie, popped[0].Name)
	assert.Negative(t, popped[0].MaxAge)
}

func TestFlash_NoCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	assert.Empty(t, popFlash(rec, req))
	// No cookie to expire, so nothing should be set either.
	assert.Empty(t, rec.Result().Cookies())
}

func TestFlash_UndecodableValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: flashCookie, Value: "%%%not-base64%%%"})
	rec := httptest.NewRecorder()

	assert.Empty(t, popFlash(rec, req))

	// A garbage cookie still gets expired.
	popped := rec.Result().Cookies()
	require.Len(t, popped, 1)
	assert.Negative(t, popped[0].MaxAge)
}
