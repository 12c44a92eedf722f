package http

import (
	"context"
	"net/http"
	"strings"

	"totalpark-backend/internal/logger"
	"totalpark-backend/internal/security"
)

type contextKey string

const userIDKey contextKey = "user-id"

// UserIDFrom returns the authenticated payer id injected by AuthMiddleware.
func UserIDFrom(ctx context.Context) (int32, bool) {
	id, ok := ctx.Value(userIDKey).(int32)
	return id, ok
}

// AuthMiddleware validates the bearer token and injects the payer id into
// the request context. Any existing identity header from the client is
// ignored; the token is the only source of identity.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authorization token is not provided"})
				return
			}

			token := header
			if len(token) > 7 && strings.EqualFold(token[0:7], "Bearer ") {
				token = token[7:]
			}

			claims, err := tokens.ValidateToken(token)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoggingMiddleware records one line per request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		logger.Debug("Handled request", "method", r.Method, "path", r.URL.Path)
	})
}
