package auth

import (
	"context"
	"net/http"
)

// contextKey is an unexported type used for context keys in this package.
// Using a package-private type means only this package can read or write
// the userID value — no collisions with string keys from other packages.
type contextKey string

const userIDKey contextKey = "userID"

// OptionalAuth extracts the authenticated user's ID from the session cookie
// if a valid one is present, and stores it in the request context. It never
// blocks a request — anonymous visitors can browse everything; handlers
// that need an identity check for one via UserIDFromContext.
//
// The identity travels with the request context instead of living in
// shared mutable state, so concurrent requests can never see each
// other's session.
func OptionalAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(SessionCookie); err == nil {
				if userID, err := tokens.Validate(cookie.Value); err == nil && userID != "" {
					ctx := context.WithValue(r.Context(), userIDKey, userID)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext retrieves the authenticated user's ID from the request
// context. Returns ("", false) for anonymous requests.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// WithUserID returns a context carrying the given user ID. Exposed for
// tests that exercise handlers without running the middleware.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
