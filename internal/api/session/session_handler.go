package session

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/arrivederci/menu-api/app/observability"
	"github.com/arrivederci/menu-api/internal/api"
)

// CookieConfig controls the attributes of the session cookie. Secure is only
// set in production so local development over plain HTTP keeps working.
type CookieConfig struct {
	Secure bool
}

type Handler struct {
	logger  *slog.Logger
	service Service
	cookies CookieConfig
}

func NewHandler(service Service, cookies CookieConfig, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
		cookies: cookies,
	}
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SessionHandler").Start(r.Context(), "Login")
	defer span.End()

	l := h.logger.With(slog.String("method", "Login"))

	var req LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid login payload", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, "Datos de login incompletos")
		return
	}
	if req.Username == "" || req.Password == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Datos de login incompletos")
		return
	}

	token, err := h.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		observability.Metrics().RecordLoginAttempt(ctx, false)
		if errors.Is(err, ErrUnauthenticated) {
			l.WarnContext(ctx, "Failed login attempt", slog.String("username", req.Username))
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Usuario o contraseña incorrectos")
			return
		}
		l.ErrorContext(ctx, "Login failed", slog.Any("error", err))
		span.SetStatus(codes.Error, "login failed")
		observability.Metrics().RecordDbError(ctx, "login")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	observability.Metrics().RecordLoginAttempt(ctx, true)
	h.setSessionCookie(w, token)
	l.InfoContext(ctx, "Login successful", slog.String("username", req.Username))
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"mensaje": "Login exitoso"})
}

// Logout handles POST /api/auth/logout. Clearing the cookie always succeeds,
// even when no session existed.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SessionHandler").Start(r.Context(), "Logout")
	defer span.End()

	h.ClearSessionCookie(w)
	h.logger.InfoContext(ctx, "Logout")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"mensaje": "Logout exitoso"})
}

// Check handles GET /api/auth/check. It has no side effects and does not
// touch the database.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	authenticated := false
	if cookie, err := r.Cookie(CookieName); err == nil {
		authenticated = h.service.TokenValid(cookie.Value)
	}
	api.WriteJSONResponse(w, r, http.StatusOK, CheckResponse{Autenticado: authenticated})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.service.Lifetime() / time.Second),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie. Also used by the auth
// middleware when a token references a user that no longer exists.
func (h *Handler) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
