package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	apperrors "github.com/tradeops/tradesearch/pkg/errors"
)

type contextKey string

const keyContextKey contextKey = "api_key"

// Middleware validates the request's API key and applies its rate limit.
// Keys may arrive as Authorization: Bearer, X-API-Key, or the api_key query
// parameter. Health and liveness endpoints are exempt.
func Middleware(validator *Validator, limiter *Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/health") {
				next.ServeHTTP(w, r)
				return
			}

			raw := extractKey(r)
			if raw == "" {
				writeError(w, http.StatusUnauthorized, "missing api key")
				return
			}
			key, err := validator.Validate(r.Context(), raw)
			if err != nil {
				switch {
				case errors.Is(err, apperrors.ErrUnauthorized):
					writeError(w, http.StatusUnauthorized, "invalid api key")
				case errors.Is(err, ErrExpiredKey):
					writeError(w, http.StatusUnauthorized, "expired api key")
				default:
					writeError(w, http.StatusInternalServerError, "authentication error")
				}
				return
			}
			if limiter != nil && key.RateLimit > 0 && !limiter.Allow(key.ID, key.RateLimit) {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			ctx := context.WithValue(r.Context(), keyContextKey, key)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// KeyFromContext returns the validated key, or nil outside the middleware.
func KeyFromContext(ctx context.Context) *Key {
	key, _ := ctx.Value(keyContextKey).(*Key)
	return key
}

// extractKey reads the API key in priority order: Authorization bearer token,
// X-API-Key header, api_key query parameter.
func extractKey(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}
	return r.URL.Query().Get("api_key")
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
