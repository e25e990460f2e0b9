package category

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/arrivederci/menu-api/app/observability"
	"github.com/arrivederci/menu-api/internal/api"
)

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// ListCategorias handles GET /api/categorias.
func (h *Handler) ListCategorias(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CategoryHandler").Start(r.Context(), "ListCategorias")
	defer span.End()

	l := h.logger.With(slog.String("method", "ListCategorias"))

	categorias, err := h.service.ListCategorias(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list categories", slog.Any("error", err))
		span.SetStatus(codes.Error, "list failed")
		observability.Metrics().RecordDbError(ctx, "list_categorias")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, categorias)
}

// CreateCategoria handles POST /api/categorias. The payload is validated
// inline: nombre is required and the slug defaults to the normalized name.
func (h *Handler) CreateCategoria(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CategoryHandler").Start(r.Context(), "CreateCategoria")
	defer span.End()

	l := h.logger.With(slog.String("method", "CreateCategoria"))

	var req CreateCategoriaRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Nombre) == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "El nombre de la categoría es obligatorio")
		return
	}

	categoria, err := h.service.CreateCategoria(ctx, strings.TrimSpace(req.Nombre), req.Valor)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			api.ErrorResponse(w, r, http.StatusBadRequest, "La categoría ya existe")
			return
		}
		l.ErrorContext(ctx, "Failed to create category", slog.Any("error", err))
		span.SetStatus(codes.Error, "create failed")
		observability.Metrics().RecordDbError(ctx, "create_categoria")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	l.InfoContext(ctx, "Category created", slog.String("valor", categoria.Valor))
	api.WriteJSONResponse(w, r, http.StatusCreated, map[string]interface{}{
		"mensaje":   "Categoría creada exitosamente",
		"categoria": categoria,
	})
}

// DeleteCategoria handles DELETE /api/categorias/{id}. Deletion is refused
// while any product references the category's slug.
func (h *Handler) DeleteCategoria(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CategoryHandler").Start(r.Context(), "DeleteCategoria")
	defer span.End()

	l := h.logger.With(slog.String("method", "DeleteCategoria"))

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusNotFound, "Categoría no encontrada")
		return
	}

	err = h.service.DeleteCategoria(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "Categoría no encontrada")
		case errors.Is(err, ErrReferenced):
			api.ErrorResponse(w, r, http.StatusBadRequest, "No se puede eliminar una categoría con productos")
		default:
			l.ErrorContext(ctx, "Failed to delete category", slog.Any("error", err))
			span.SetStatus(codes.Error, "delete failed")
			observability.Metrics().RecordDbError(ctx, "delete_categoria")
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Error interno del servidor")
		}
		return
	}

	l.InfoContext(ctx, "Category deleted", slog.Int("id", id))
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"mensaje": "Categoría eliminada exitosamente"})
}
