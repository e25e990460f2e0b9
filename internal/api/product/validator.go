package product

import (
	"context"
	"strings"
)

// CategoryChecker resolves a category slug to its existence. Satisfied by the
// category service.
type CategoryChecker interface {
	CategoriaExists(ctx context.Context, valor string) (bool, error)
}

// ValidatePayload checks a create payload field by field. It returns the
// human-readable reason of the first failing check, or "" when the payload is
// valid. The error return is reserved for lookup failures (surfaced as 500s),
// never for invalid input.
func ValidatePayload(ctx context.Context, p *ProductoPayload, categories CategoryChecker) (string, error) {
	if p == nil || p.IsEmpty() {
		return "Datos del producto vacíos", nil
	}
	if p.Nombre == nil || strings.TrimSpace(*p.Nombre) == "" {
		return "El campo nombre es obligatorio", nil
	}
	if p.Descripcion == nil || strings.TrimSpace(*p.Descripcion) == "" {
		return "El campo descripcion es obligatorio", nil
	}
	if p.Precio == nil {
		return "El campo precio es obligatorio", nil
	}
	if p.Categoria == nil || strings.TrimSpace(*p.Categoria) == "" {
		return "El campo categoria es obligatorio", nil
	}
	return validateValues(ctx, *p.Precio, *p.Categoria, categories)
}

// validateValues holds the checks shared between creates and merged updates:
// a strictly positive price and a resolvable category slug.
func validateValues(ctx context.Context, precio float64, categoria string, categories CategoryChecker) (string, error) {
	if precio <= 0 {
		return "El precio debe ser mayor que 0", nil
	}
	exists, err := categories.CategoriaExists(ctx, categoria)
	if err != nil {
		return "", err
	}
	if !exists {
		return "La categoría especificada no existe", nil
	}
	return "", nil
}

// ValidateRecord re-validates a fully merged product record. Partial updates
// run the merged state through this, so an update can never leave an invalid
// row behind.
func ValidateRecord(ctx context.Context, rec *Producto, categories CategoryChecker) (string, error) {
	if strings.TrimSpace(rec.Nombre) == "" {
		return "El campo nombre es obligatorio", nil
	}
	if strings.TrimSpace(rec.Descripcion) == "" {
		return "El campo descripcion es obligatorio", nil
	}
	return validateValues(ctx, rec.Precio, rec.Categoria, categories)
}
