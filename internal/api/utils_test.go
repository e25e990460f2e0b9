package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	WriteJSONResponse(w, r, http.StatusCreated, map[string]string{"mensaje": "ok"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["mensaje"])
}

func TestWriteJSONResponse_NoContent(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/", nil)

	WriteJSONResponse(w, r, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	ErrorResponse(w, r, http.StatusNotFound, "Producto no encontrado")

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Producto no encontrado", body["error"])
}

func TestDecodeJSONBody(t *testing.T) {
	type payload struct {
		Nombre string  `json:"nombre"`
		Precio float64 `json:"precio"`
	}

	decode := func(body string) error {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
		var dst payload
		return DecodeJSONBody(httptest.NewRecorder(), req, &dst)
	}

	t.Run("Valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"nombre": "Espresso", "precio": 2.5}`))
		var dst payload
		require.NoError(t, DecodeJSONBody(httptest.NewRecorder(), req, &dst))
		assert.Equal(t, "Espresso", dst.Nombre)
		assert.Equal(t, 2.5, dst.Precio)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.EqualError(t, decode(""), "body must not be empty")
	})

	t.Run("Malformed", func(t *testing.T) {
		assert.ErrorContains(t, decode(`{"nombre":`), "badly-formed JSON")
	})

	t.Run("UnknownField", func(t *testing.T) {
		assert.EqualError(t, decode(`{"sorpresa": true}`), `body contains unknown key "sorpresa"`)
	})

	t.Run("WrongType", func(t *testing.T) {
		assert.ErrorContains(t, decode(`{"precio": "cara"}`), `incorrect JSON type for field "precio"`)
	})

	t.Run("TrailingData", func(t *testing.T) {
		assert.EqualError(t, decode(`{"nombre": "a"}{"nombre": "b"}`), "body must only contain a single JSON value")
	})
}
