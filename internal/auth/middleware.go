package auth

import (
	"context"
	"net/http"

	"github.com/taskhive/taskhive-api/pkg/respond"
)

type contextKey struct{}

var userIDKey contextKey

// Middleware rejects requests without a valid bearer credential and stores
// the verified user id in the request context. Fails closed.
func Middleware(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r.Header.Get("Authorization"))
			if !ok {
				respond.Error(w, r, http.StatusUnauthorized, "missing bearer token")
				return
			}

			uid, err := verifier.Verify(r.Context(), token)
			if err != nil {
				respond.Error(w, r, http.StatusUnauthorized, "invalid bearer token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), uid)))
		})
	}
}

func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, userIDKey, uid)
}

// UserID returns the authenticated caller's id, or "" when the request never
// passed the middleware.
func UserID(ctx context.Context) string {
	if uid, ok := ctx.Value(userIDKey).(string); ok {
		return uid
	}
	return ""
}
