package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"galaxy-server/internal/auth"
	"galaxy-server/internal/shared/cookies"
	"galaxy-server/internal/shared/errors"
	"galaxy-server/internal/shared/response"
)

type contextKey string

const ExplorerContextKey contextKey = "explorer"

// TokenValidator verifies a session token
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

func JWTMiddleware(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := slog.With(
				"middleware", "jwt",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			token, ok := cookies.AuthToken(r)
			if !ok {
				response.Error(w, r, logger, errors.Unauthorized("authentication required"))
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				response.Error(w, r, logger, errors.Unauthorized("invalid token"))
				return
			}

			logger.Debug("JWT authentication successful", "explorer_id", claims.ExplorerID)

			next.ServeHTTP(w, r.WithContext(WithExplorer(r.Context(), claims)))
		})
	}
}

func WithExplorer(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, ExplorerContextKey, claims)
}

func GetExplorerFromContext(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(ExplorerContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
