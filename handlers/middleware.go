package handlers

import (
	"context"
	"net/http"

	"reelist/services/auth"
)

type contextKey string

const userIDKey contextKey = "userID"

// Auth verifies the x-auth-token header and stashes the caller's user ID in
// the request context.
func Auth(issuer auth.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("x-auth-token")
			if token == "" {
				writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}

			userID, err := issuer.Verify(token)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "Token is not valid")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user ID placed by Auth, if any.
func UserID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(userIDKey).(string)
	return id, ok && id != ""
}
