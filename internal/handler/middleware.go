package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/adpulse/adpulse-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type contextKey string

const brandIDKey contextKey = "brandID"

// JWTAuthMiddleware validates Bearer tokens and injects the brand id
// into the request context.
func JWTAuthMiddleware(authSvc *service.AuthService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("auth: missing token",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeError(w, http.StatusUnauthorized, "missing authentication token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("auth: invalid token format",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeError(w, http.StatusUnauthorized, "invalid token format")
				return
			}

			claims, err := authSvc.ValidateAccessToken(parts[1])
			if err != nil {
				logger.Warn("auth: invalid or expired token",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
					zap.Error(err),
				)
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), brandIDKey, claims.Sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BrandIDFromContext extracts the authenticated brand id from context.
func BrandIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(brandIDKey).(string)
	return v
}

// authorizedBrandID checks that the {brandId} path parameter matches the
// authenticated brand. Returns the brand id, or "" after writing a 403.
func authorizedBrandID(w http.ResponseWriter, r *http.Request) string {
	pathID := chi.URLParam(r, "brandId")
	authID := BrandIDFromContext(r.Context())
	if pathID == "" || pathID != authID {
		writeError(w, http.StatusForbidden, "forbidden: brand mismatch")
		return ""
	}
	return pathID
}
