package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"atomcms/application/ports"
	"atomcms/pkg/auth"
	"atomcms/pkg/common"
	pkgerrors "atomcms/pkg/errors"
)

// APIKeyHeader carries the tenant credential on content routes.
const APIKeyHeader = "X-API-Key"

// AuthenticateAPIKey authenticates content requests with an API key.
// The resolved tenant is attached to the request context; every
// downstream lookup is scoped to that client.
func AuthenticateAPIKey(store ports.APIKeyStore, logger *zap.Logger) func(next http.Handler) http.Handler {
	ipLimiter := auth.NewIPRateLimiter(300)
	clientLimiter := auth.NewClientRateLimiter(600)
	errorHandler := pkgerrors.NewErrorHandler(logger, false)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, _ := ipLimiter.Allow(r.Context(), getClientIP(r))
			if !allowed {
				errorHandler.Handle(w, r, pkgerrors.NewRateLimitError(300, "1m"))
				return
			}

			rawKey := r.Header.Get(APIKeyHeader)
			if rawKey == "" {
				// Original consumers pass the credential as a query
				// parameter instead of a header.
				rawKey = r.URL.Query().Get("apikey")
			}
			if rawKey == "" {
				errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("missing api key"))
				return
			}

			record, err := store.Resolve(r.Context(), rawKey)
			if err != nil {
				if pkgerrors.IsNotFound(err) {
					errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("invalid api key"))
				} else {
					errorHandler.Handle(w, r, err)
				}
				return
			}

			allowed, _ = clientLimiter.Allow(r.Context(), record.ClientID)
			if !allowed {
				errorHandler.Handle(w, r, pkgerrors.NewRateLimitError(600, "1m"))
				return
			}

			ctx := common.WithClientID(r.Context(), record.ClientID)
			ctx = common.WithAPIKeyID(ctx, record.KeyID)
			if record.UserID != "" {
				ctx = common.WithUserID(ctx, record.UserID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthenticateAdmin authenticates management requests with a bearer
// token. The token carries the client the caller administers.
func AuthenticateAdmin(validator *auth.JWTValidator, logger *zap.Logger) func(next http.Handler) http.Handler {
	ipLimiter := auth.NewIPRateLimiter(100)
	errorHandler := pkgerrors.NewErrorHandler(logger, false)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, _ := ipLimiter.Allow(r.Context(), getClientIP(r))
			if !allowed {
				errorHandler.Handle(w, r, pkgerrors.NewRateLimitError(100, "1m"))
				return
			}

			token := extractBearerToken(r)
			if token == "" {
				errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("missing bearer token"))
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.Warn("token rejected",
					zap.Error(err),
					zap.String("path", r.URL.Path),
				)
				switch err {
				case auth.ErrExpiredToken:
					errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("token has expired"))
				default:
					errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("invalid token"))
				}
				return
			}
			if claims.ClientID == "" {
				errorHandler.Handle(w, r, pkgerrors.NewForbiddenError("token grants no client"))
				return
			}

			userCtx := &auth.UserContext{
				UserID:   claims.UserID,
				ClientID: claims.ClientID,
				Roles:    claims.Roles,
			}

			ctx := auth.SetUserInContext(r.Context(), userCtx)
			ctx = common.WithClientID(ctx, claims.ClientID)
			ctx = common.WithUserID(ctx, claims.UserID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken extracts the bearer token from the Authorization header
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return authHeader
}

// getClientIP extracts the client IP address
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
