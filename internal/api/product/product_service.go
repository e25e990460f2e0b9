package product

import (
	"context"
	"fmt"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	ListProductos(ctx context.Context) ([]Producto, error)
	CreateProducto(ctx context.Context, payload *ProductoPayload) (*Producto, error)
	UpdateProducto(ctx context.Context, id int, payload *ProductoPayload) (*Producto, error)
	DeleteProducto(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo       Repository
	categories CategoryChecker
}

func NewService(repo Repository, categories CategoryChecker) *ServiceImpl {
	return &ServiceImpl{
		repo:       repo,
		categories: categories,
	}
}

func (s *ServiceImpl) ListProductos(ctx context.Context) ([]Producto, error) {
	return s.repo.ListProductos(ctx)
}

// CreateProducto validates the payload and persists the new product.
// Disponible defaults to true when not supplied.
func (s *ServiceImpl) CreateProducto(ctx context.Context, payload *ProductoPayload) (*Producto, error) {
	reason, err := ValidatePayload(ctx, payload, s.categories)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		return nil, fmt.Errorf("%w: %s", ErrValidation, reason)
	}

	producto := &Producto{
		Nombre:      *payload.Nombre,
		Descripcion: *payload.Descripcion,
		Precio:      *payload.Precio,
		Categoria:   *payload.Categoria,
		Disponible:  true,
		ImagenURL:   payload.ImagenURL,
	}
	if payload.Disponible != nil {
		producto.Disponible = *payload.Disponible
	}

	return s.repo.CreateProducto(ctx, producto)
}

// UpdateProducto applies only the supplied fields onto the stored record and
// re-validates the merged result as a whole before writing it back.
func (s *ServiceImpl) UpdateProducto(ctx context.Context, id int, payload *ProductoPayload) (*Producto, error) {
	if payload == nil || payload.IsEmpty() {
		return nil, fmt.Errorf("%w: %s", ErrValidation, "Datos del producto vacíos")
	}

	existing, err := s.repo.GetProducto(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *existing
	if payload.Nombre != nil {
		merged.Nombre = *payload.Nombre
	}
	if payload.Descripcion != nil {
		merged.Descripcion = *payload.Descripcion
	}
	if payload.Precio != nil {
		merged.Precio = *payload.Precio
	}
	if payload.Categoria != nil {
		merged.Categoria = *payload.Categoria
	}
	if payload.Disponible != nil {
		merged.Disponible = *payload.Disponible
	}
	if payload.ImagenURL != nil {
		merged.ImagenURL = payload.ImagenURL
	}

	reason, err := ValidateRecord(ctx, &merged, s.categories)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		return nil, fmt.Errorf("%w: %s", ErrValidation, reason)
	}

	return s.repo.UpdateProducto(ctx, &merged)
}

func (s *ServiceImpl) DeleteProducto(ctx context.Context, id int) error {
	return s.repo.DeleteProducto(ctx, id)
}
