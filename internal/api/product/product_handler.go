package product

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

// ListProductos handles GET /api/productos.
func (h *Handler) ListProductos(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ProductHandler").Start(r.Context(), "ListProductos")
	defer span.End()

	l := h.logger.With(slog.String("method", "ListProductos"))

	productos, err := h.service.ListProductos(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list products", slog.Any("error", err))
		span.SetStatus(codes.Error, "list failed")
		observability.Metrics().RecordDbError(ctx, "list_productos")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, productos)
}

// CreateProducto handles POST /api/productos.
func (h *Handler) CreateProducto(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ProductHandler").Start(r.Context(), "CreateProducto")
	defer span.End()

	l := h.logger.With(slog.String("method", "CreateProducto"))

	var payload ProductoPayload
	if err := api.DecodeJSONBody(w, r, &payload); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	producto, err := h.service.CreateProducto(ctx, &payload)
	if err != nil {
		h.writeError(w, r, l, span, "create_producto", err)
		return
	}

	l.InfoContext(ctx, "Product created", slog.Int("id", producto.ID), slog.String("categoria", producto.Categoria))
	api.WriteJSONResponse(w, r, http.StatusCreated, map[string]interface{}{
		"mensaje":  "Producto creado exitosamente",
		"producto": producto,
	})
}

// UpdateProducto handles PUT /api/productos/{id}. Only supplied fields are
// applied; the merged record is re-validated before the write.
func (h *Handler) UpdateProducto(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ProductHandler").Start(r.Context(), "UpdateProducto")
	defer span.End()

	l := h.logger.With(slog.String("method", "UpdateProducto"))

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusNotFound, "Producto no encontrado")
		return
	}

	var payload ProductoPayload
	if err := api.DecodeJSONBody(w, r, &payload); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	producto, err := h.service.UpdateProducto(ctx, id, &payload)
	if err != nil {
		h.writeError(w, r, l, span, "update_producto", err)
		return
	}

	l.InfoContext(ctx, "Product updated", slog.Int("id", producto.ID))
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"mensaje":  "Producto actualizado exitosamente",
		"producto": producto,
	})
}

// DeleteProducto handles DELETE /api/productos/{id}. Product deletion is
// unconditional.
func (h *Handler) DeleteProducto(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ProductHandler").Start(r.Context(), "DeleteProducto")
	defer span.End()

	l := h.logger.With(slog.String("method", "DeleteProducto"))

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusNotFound, "Producto no encontrado")
		return
	}

	if err := h.service.DeleteProducto(ctx, id); err != nil {
		h.writeError(w, r, l, span, "delete_producto", err)
		return
	}

	l.InfoContext(ctx, "Product deleted", slog.Int("id", id))
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"mensaje": "Producto eliminado exitosamente"})
}

// writeError maps service errors to the wire taxonomy: validation 400,
// unknown id 404, everything else a logged generic 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, l *slog.Logger, span interface{ SetStatus(codes.Code, string) }, operation string, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, ErrValidation):
		api.ErrorResponse(w, r, http.StatusBadRequest, validationReason(err))
	case errors.Is(err, ErrNotFound):
		api.ErrorResponse(w, r, http.StatusNotFound, "Producto no encontrado")
	default:
		l.ErrorContext(ctx, "Product operation failed", slog.String("operation", operation), slog.Any("error", err))
		span.SetStatus(codes.Error, operation+" failed")
		observability.Metrics().RecordDbError(ctx, operation)
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Error interno del servidor")
	}
}

func validationReason(err error) string {
	return strings.TrimPrefix(err.Error(), ErrValidation.Error()+": ")
}
