package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"

	"globetrotter/core"
	"globetrotter/handlers/auth"
)

type contextKey string

const (
	ClaimsContextKey = contextKey("claims")
	UserIDContextKey = contextKey("userID")
)

// Identify resolves the caller. A valid bearer token makes its subject the
// user id; a request without Authorization header is anonymous. A header
// that is present but unusable is rejected with 401.
func Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			ctx := context.WithValue(r.Context(), UserIDContextKey, core.AnonymousUserID)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, map[string]string{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := auth.ParseJWT(parts[1])
		if err != nil {
			logrus.WithError(err).Debug("Rejected bearer token")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, map[string]string{"error": "Invalid token"})
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		ctx = context.WithValue(ctx, UserIDContextKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the caller resolved by Identify, or the anonymous id when
// the request did not pass through it.
func UserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDContextKey).(string); ok && id != "" {
		return id
	}
	return core.AnonymousUserID
}
