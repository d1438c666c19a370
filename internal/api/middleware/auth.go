package middleware

import (
	"context"
	"net/http"

	"github.com/eventorbit/server/internal/api/respond"
	"github.com/eventorbit/server/internal/auth"
)

const claimsKey contextKey = "auth_claims"

// RequireToken rejects requests that do not carry a valid bearer token and
// stores the verified claims in the request context for handlers.
func RequireToken(tokens *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := auth.TokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				respond.Error(w, r, http.StatusUnauthorized, "Authorization token required", err)
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				respond.Error(w, r, http.StatusUnauthorized, "Invalid or expired token", err)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the verified token claims stored by RequireToken.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}
