package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pandamarket/backend/pkg/auth"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	nicknameKey contextKey = "nickname"
)

// AuthMiddleware rejects requests that do not carry a valid bearer token
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromRequest(r)
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"error":"authentication required"}`))
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// OptionalAuthMiddleware attaches user claims when a valid token is present
// and lets the request through anonymously otherwise
func OptionalAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := claimsFromRequest(r); ok {
			r = r.WithContext(withClaims(r.Context(), claims))
		}
		next.ServeHTTP(w, r)
	})
}

func claimsFromRequest(r *http.Request) (*auth.Claims, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, false
	}
	claims, err := auth.ValidateToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, false
	}
	return claims, true
}

func withClaims(ctx context.Context, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, userIDKey, claims.UserID)
	return context.WithValue(ctx, nicknameKey, claims.Nickname)
}

// UserIDFromContext returns the authenticated user id, or 0 for anonymous requests
func UserIDFromContext(ctx context.Context) uint {
	if id, ok := ctx.Value(userIDKey).(uint); ok {
		return id
	}
	return 0
}

// NicknameFromContext returns the authenticated user's nickname, if any
func NicknameFromContext(ctx context.Context) string {
	if nickname, ok := ctx.Value(nicknameKey).(string); ok {
		return nickname
	}
	return ""
}
