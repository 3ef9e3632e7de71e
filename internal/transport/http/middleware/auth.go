package middleware

import (
	"context"
	"net/http"
	"strings"

	"empman/internal/domain/admin"
	"empman/internal/transport/http/api"
)

type ctxKey int

const ctxKeyAdmin ctxKey = iota

// Auth parses a Bearer token into the request context when one is present.
// Requests without a valid token pass through unauthenticated; route-level
// RequireAdmin decides what actually needs a login.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := admin.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyAdmin, AdminContext{
				AdminID: claims.AdminID,
				Name:    claims.Name,
				Email:   claims.Email,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type AdminContext struct {
	AdminID int
	Name    string
	Email   string
}

func GetAdmin(ctx context.Context) (AdminContext, bool) {
	a, ok := ctx.Value(ctxKeyAdmin).(AdminContext)
	return a, ok
}

// RequireAdmin rejects requests that did not present a valid administrator
// token.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetAdmin(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}
