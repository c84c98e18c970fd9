package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"github.com/personalab/chat-backend/internal/entity"
	"go.uber.org/zap"
)

type contextKey string

const (
	userContextKey  contextKey = "auth_user"
	tokenContextKey contextKey = "auth_token"
)

type IdentityConnector interface {
	GetUser(ctx context.Context, accessToken string) (*entity.IdentityUser, error)
}

// Auth resolves the bearer token to a user via the identity service and
// stores the user in the request context. Resolved users are cached per
// token so repeated requests within the TTL skip the upstream call.
func Auth(identity IdentityConnector, userCache *cache.Cache) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				respondUnauthorized(w, "missing bearer token")
				return
			}

			ctx := r.Context()

			user, ok := cachedUser(userCache, token)
			if !ok {
				resolved, err := identity.GetUser(ctx, token)
				if err != nil {
					ctxzap.Warn(ctx, "token rejected by identity service", zap.Error(err))
					respondUnauthorized(w, "invalid or expired token")
					return
				}
				user = resolved
				userCache.SetDefault(token, *resolved)
			}

			ctx = context.WithValue(ctx, userContextKey, user)
			ctx = context.WithValue(ctx, tokenContextKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUser returns a context carrying an authenticated user, the same
// way Auth stores it.
func WithUser(ctx context.Context, user *entity.IdentityUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the authenticated user set by Auth.
func UserFromContext(ctx context.Context) (*entity.IdentityUser, bool) {
	user, ok := ctx.Value(userContextKey).(*entity.IdentityUser)
	return user, ok
}

// TokenFromContext returns the bearer token set by Auth.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	return token, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}

func cachedUser(userCache *cache.Cache, token string) (*entity.IdentityUser, bool) {
	cached, ok := userCache.Get(token)
	if !ok {
		return nil, false
	}

	user, ok := cached.(entity.IdentityUser)
	if !ok {
		return nil, false
	}

	return &user, true
}

func respondUnauthorized(w http.ResponseWriter, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(entity.ErrorResponse{
		Error:   http.StatusText(http.StatusUnauthorized),
		Details: details,
	})
}
