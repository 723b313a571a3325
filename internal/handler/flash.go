package handler

import (
	"encoding/base64"
	"net/http"
)

// Flash messages: a transient notice set just before a redirect and shown
// exactly once on the next rendered page ("Successfully logged in.", etc.).
//
// The message rides in a short-lived HttpOnly cookie. popFlash reads it and
// immediately expires it, which is what makes it one-time-read. The value
// is base64-encoded because cookie values can't contain spaces or commas.
const flashCookie = "flash"

// setFlash queues message to be shown on the next rendered page.
func setFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.URLEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the pending flash message (or "") and clears it.
func popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}

	// Expire the cookie regardless of whether the value decodes.
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(decoded)
}
