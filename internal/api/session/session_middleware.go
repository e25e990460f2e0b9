package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/arrivederci/menu-api/internal/api"
)

type contextKey string

const UserIDKey contextKey = "userID"
const UsernameKey contextKey = "username"

// RequireAuth guards mutating endpoints. A request without a valid session
// cookie referencing an existing user never reaches the wrapped handler.
func RequireAuth(service Service, cookies CookieConfig, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			l := logger.With(slog.String("middleware", "RequireAuth"), slog.String("path", r.URL.Path))

			cookie, err := r.Cookie(CookieName)
			if err != nil {
				l.WarnContext(ctx, "Unauthorized access attempt")
				api.ErrorResponse(w, r, http.StatusUnauthorized, "No autorizado")
				return
			}

			user, err := service.Validate(ctx, cookie.Value)
			if err != nil {
				switch {
				case errors.Is(err, ErrUnauthenticated):
					l.WarnContext(ctx, "Invalid or expired session token")
					api.ErrorResponse(w, r, http.StatusUnauthorized, "No autorizado")
				case errors.Is(err, ErrNotFound):
					// Stale cookie for a deleted user: clear it.
					l.WarnContext(ctx, "Session references missing user")
					clearCookie(w, cookies)
					api.ErrorResponse(w, r, http.StatusUnauthorized, "Sesión inválida")
				default:
					l.ErrorContext(ctx, "Session validation failed", slog.Any("error", err))
					api.ErrorResponse(w, r, http.StatusInternalServerError, "Error interno del servidor")
				}
				return
			}

			ctx = context.WithValue(ctx, UserIDKey, user.ID)
			ctx = context.WithValue(ctx, UsernameKey, user.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext returns the authenticated user id set by RequireAuth.
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(UserIDKey).(int)
	return id, ok
}

func clearCookie(w http.ResponseWriter, cookies CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
