package http

import (
	"context"
	"net/http"

	"github.com/tair/pantry/internal/pantry/delivery/gateway"
	"github.com/tair/pantry/pkg/auth"
	"github.com/tair/pantry/pkg/logger"
)

type contextKey string

const claimsKey contextKey = "jwt_claims"

// ClaimsMiddleware verifies a bearer token when one is sent and exposes its claims
// the way the API Gateway JWT authorizer does. It never rejects a request: a
// missing or invalid token simply leaves the caller without identity.
func ClaimsMiddleware(verifier *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := auth.BearerToken(r.Header.Get("Authorization"))
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				logger.Warn(r.Context()).Err(err).Msg("Invalid bearer token")
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, gateway.Claims(claims))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the verified claims stored by ClaimsMiddleware
func ClaimsFromContext(ctx context.Context) gateway.Claims {
	claims, _ := ctx.Value(claimsKey).(gateway.Claims)
	return claims
}
