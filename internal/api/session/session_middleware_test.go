package session

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func protectedHandler(t *testing.T, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		id, ok := GetUserIDFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, 1, id)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth(t *testing.T) {
	t.Run("ValidSession", func(t *testing.T) {
		mockService := new(MockSessionService)
		mockService.On("Validate", mock.Anything, "good-token").
			Return(&User{ID: 1, Username: "admin"}, nil).Once()

		called := false
		middleware := RequireAuth(mockService, CookieConfig{}, slog.Default())

		req := httptest.NewRequest(http.MethodPost, "/api/productos", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "good-token"})
		w := httptest.NewRecorder()
		middleware(protectedHandler(t, &called)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, called)
		mockService.AssertExpectations(t)
	})

	t.Run("NoCookie", func(t *testing.T) {
		mockService := new(MockSessionService)

		called := false
		middleware := RequireAuth(mockService, CookieConfig{}, slog.Default())

		w := httptest.NewRecorder()
		middleware(protectedHandler(t, &called)).
			ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/productos", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, called)

		var response map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "No autorizado", response["error"])
		mockService.AssertNotCalled(t, "Validate")
	})

	t.Run("InvalidToken", func(t *testing.T) {
		mockService := new(MockSessionService)
		mockService.On("Validate", mock.Anything, "bad-token").
			Return(nil, ErrUnauthenticated).Once()

		called := false
		middleware := RequireAuth(mockService, CookieConfig{}, slog.Default())

		req := httptest.NewRequest(http.MethodPost, "/api/productos", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "bad-token"})
		w := httptest.NewRecorder()
		middleware(protectedHandler(t, &called)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, called)

		var response map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "No autorizado", response["error"])
	})

	t.Run("DeletedUserClearsCookie", func(t *testing.T) {
		mockService := new(MockSessionService)
		mockService.On("Validate", mock.Anything, "stale-token").
			Return(nil, ErrNotFound).Once()

		called := false
		middleware := RequireAuth(mockService, CookieConfig{}, slog.Default())

		req := httptest.NewRequest(http.MethodDelete, "/api/productos/1", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "stale-token"})
		w := httptest.NewRecorder()
		middleware(protectedHandler(t, &called)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, called)

		var response map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Sesión inválida", response["error"])

		cookie := findSessionCookie(t, w)
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
		assert.Less(t, cookie.MaxAge, 0)
	})

	t.Run("ValidationError", func(t *testing.T) {
		mockService := new(MockSessionService)
		mockService.On("Validate", mock.Anything, "any-token").
			Return(nil, assert.AnError).Once()

		called := false
		middleware := RequireAuth(mockService, CookieConfig{}, slog.Default())

		req := httptest.NewRequest(http.MethodPost, "/api/productos", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "any-token"})
		w := httptest.NewRecorder()
		middleware(protectedHandler(t, &called)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.False(t, called)
	})
}
