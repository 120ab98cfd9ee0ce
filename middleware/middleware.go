package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/nurhusenm/Devtracker/logging"
	"github.com/nurhusenm/Devtracker/utils"
)

type contextKey string

const (
	ContextUserID contextKey = "userId"
	ContextRole   contextKey = "role"
)

// JWTAuthMiddleware validates the bearer token and attaches the resolved
// identity to the request context. Requests without a valid token never reach
// the handler.
func JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logging.Logger.Warnf("Missing Authorization header for %s %s", r.Method, r.URL.Path)
			writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateToken(tokenStr)
		if err != nil {
			logging.Logger.Warnf("Invalid token for %s %s: %v", r.Method, r.URL.Path, err)
			writeMessage(w, http.StatusUnauthorized, "Token is not valid")
			return
		}

		ctx := context.WithValue(r.Context(), ContextUserID, claims.UserID)
		ctx = context.WithValue(ctx, ContextRole, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the identity the auth middleware resolved.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ContextUserID).(string)
	return id, ok
}

func writeMessage(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
