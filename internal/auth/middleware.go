package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const (
	accountIDKey contextKey = "accountID"
	roleKey      contextKey = "role"
)

// Middleware validates the bearer token and puts the account ID and role into the
// request context. Requests without a valid token are rejected with 401.
func Middleware(tokenGenerator *TokenGenerator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				respondUnauthorized(w, "authentication required")
				return
			}

			// Validate token and extract account ID and role
			accountID, role, err := tokenGenerator.ValidateToken(token)
			if err != nil {
				respondUnauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), accountIDKey, accountID)
			ctx = context.WithValue(ctx, roleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RoleMiddleware validates the bearer token and additionally requires the
// account's role to match requiredRole. Authenticated accounts with a different
// role are rejected with 403.
func RoleMiddleware(tokenGenerator *TokenGenerator, requiredRole int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				respondUnauthorized(w, "authentication required")
				return
			}

			accountID, role, err := tokenGenerator.ValidateToken(token)
			if err != nil {
				respondUnauthorized(w, "invalid or expired token")
				return
			}

			if role != requiredRole {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"success":false,"message":"insufficient permissions"}`))
				return
			}

			ctx := context.WithValue(r.Context(), accountIDKey, accountID)
			ctx = context.WithValue(ctx, roleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAccountID retrieves the authenticated account ID from context
func GetAccountID(ctx context.Context) (int, bool) {
	accountID, ok := ctx.Value(accountIDKey).(int)
	return accountID, ok
}

// GetRole retrieves the authenticated account role from context
func GetRole(ctx context.Context) (int, bool) {
	role, ok := ctx.Value(roleKey).(int)
	return role, ok
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header
func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"success":false,"message":"` + message + `"}`))
}
