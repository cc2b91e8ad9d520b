package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"meditrack/internal/data/storage"
	"meditrack/pkg/utils"
)

// AuthSession memvalidasi session token UUID. Token dibaca dari session
// cookie dulu (browser), fallback ke Authorization header (API client).
func AuthSession(store storage.Storage, cookieName string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r, cookieName)
			if token == "" {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			session, err := store.ValidSession(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if session == nil {
				logger.Warn("Invalid or expired session")
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			// Role tidak di-load di sini — handler yang butuh role query
			// sendiri lewat service
			ctx := utils.SetUserContext(r.Context(), session.UserID, "")
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}

	return ""
}
