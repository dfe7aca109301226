// Package middleware carries the request authentication shared by every
// protected route.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/duartefn/moneybook/internal/auth"
)

type contextKey struct{}

// User returns the authenticated user's email, or "" on public routes.
func User(ctx context.Context) string {
	email, _ := ctx.Value(contextKey{}).(string)
	return email
}

// WithUser is used by handler tests to simulate an authenticated request.
func WithUser(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, contextKey{}, email)
}

// Authenticate verifies the Bearer token and stores the subject email in
// the request context.
func Authenticate(manager *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, auth.ErrMissingToken.Error(), http.StatusUnauthorized)
				return
			}

			email, err := manager.Verify(token)
			if err != nil {
				http.Error(w, auth.ErrInvalidToken.Error(), http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), email)))
		})
	}
}
