package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of the Repository interface.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) ListProductos(ctx context.Context) ([]Producto, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Producto), args.Error(1)
}

func (m *MockProductRepository) GetProducto(ctx context.Context, id int) (*Producto, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Producto), args.Error(1)
}

func (m *MockProductRepository) CreateProducto(ctx context.Context, producto *Producto) (*Producto, error) {
	args := m.Called(ctx, producto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Producto), args.Error(1)
}

func (m *MockProductRepository) UpdateProducto(ctx context.Context, producto *Producto) (*Producto, error) {
	args := m.Called(ctx, producto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Producto), args.Error(1)
}

func (m *MockProductRepository) DeleteProducto(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService(known ...string) (*ServiceImpl, *MockProductRepository) {
	checker := &fakeCategoryChecker{known: map[string]bool{}}
	for _, valor := range known {
		checker.known[valor] = true
	}
	mockRepo := new(MockProductRepository)
	return NewService(mockRepo, checker), mockRepo
}

func TestCreateProducto(t *testing.T) {
	t.Run("DisponibleDefaultsTrue", func(t *testing.T) {
		service, mockRepo := newTestService("cafes")
		mockRepo.On("CreateProducto", mock.Anything, mock.MatchedBy(func(p *Producto) bool {
			return p.Disponible
		})).Return(&Producto{ID: 1, Nombre: "Espresso", Disponible: true}, nil).Once()

		producto, err := service.CreateProducto(context.Background(), validPayload())
		require.NoError(t, err)
		assert.True(t, producto.Disponible)
		mockRepo.AssertExpectations(t)
	})

	t.Run("DisponibleExplicitFalse", func(t *testing.T) {
		service, mockRepo := newTestService("cafes")
		mockRepo.On("CreateProducto", mock.Anything, mock.MatchedBy(func(p *Producto) bool {
			return !p.Disponible
		})).Return(&Producto{ID: 1, Nombre: "Espresso"}, nil).Once()

		payload := validPayload()
		payload.Disponible = boolPtr(false)

		_, err := service.CreateProducto(context.Background(), payload)
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("InvalidPriceSkipsRepo", func(t *testing.T) {
		service, mockRepo := newTestService("cafes")

		payload := validPayload()
		payload.Precio = floatPtr(0)

		_, err := service.CreateProducto(context.Background(), payload)
		assert.ErrorIs(t, err, ErrValidation)
		assert.ErrorContains(t, err, "El precio debe ser mayor que 0")
		mockRepo.AssertNotCalled(t, "CreateProducto")
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		service, mockRepo := newTestService()

		_, err := service.CreateProducto(context.Background(), validPayload())
		assert.ErrorIs(t, err, ErrValidation)
		assert.ErrorContains(t, err, "La categoría especificada no existe")
		mockRepo.AssertNotCalled(t, "CreateProducto")
	})
}

func TestUpdateProducto(t *testing.T) {
	stored := func() *Producto {
		return &Producto{
			ID:          4,
			Nombre:      "Espresso",
			Descripcion: "Café espresso simple",
			Precio:      2.5,
			Categoria:   "cafes",
			Disponible:  true,
		}
	}

	t.Run("PartialMergeKeepsUntouchedFields", func(t *testing.T) {
		service, mockRepo := newTestService("cafes")
		mockRepo.On("GetProducto", mock.Anything, 4).Return(stored(), nil).Once()
		mockRepo.On("UpdateProducto", mock.Anything, mock.MatchedBy(func(p *Producto) bool {
			return p.Precio == 3.0 && p.Nombre == "Espresso" && p.Categoria == "cafes" && p.Disponible
		})).Return(&Producto{ID: 4, Precio: 3.0}, nil).Once()

		_, err := service.UpdateProducto(context.Background(), 4, &ProductoPayload{Precio: floatPtr(3.0)})
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("EmptyPayload", func(t *testing.T) {
		service, mockRepo := newTestService("cafes")

		_, err := service.UpdateProducto(context.Background(), 4, &ProductoPayload{})
		assert.ErrorIs(t, err, ErrValidation)
		assert.ErrorContains(t, err, "Datos del producto vacíos")
		mockRepo.AssertNotCalled(t, "GetProducto")
	})

	t.Run("NotFound", func(t *testing.T) {
		service, mockRepo := newTestService("cafes")
		mockRepo.On("GetProducto", mock.Anything, 77).Return(nil, ErrNotFound).Once()

		_, err := service.UpdateProducto(context.Background(), 77, &ProductoPayload{Precio: floatPtr(3.0)})
		assert.ErrorIs(t, err, ErrNotFound)
		mockRepo.AssertNotCalled(t, "UpdateProducto")
	})

	t.Run("MergedRecordInvalid", func(t *testing.T) {
		service, mockRepo := newTestService("cafes")
		mockRepo.On("GetProducto", mock.Anything, 4).Return(stored(), nil).Once()

		_, err := service.UpdateProducto(context.Background(), 4, &ProductoPayload{Precio: floatPtr(-1)})
		assert.ErrorIs(t, err, ErrValidation)
		assert.ErrorContains(t, err, "El precio debe ser mayor que 0")
		mockRepo.AssertNotCalled(t, "UpdateProducto")
	})

	t.Run("CategoryChangeToUnknown", func(t *testing.T) {
		service, mockRepo := newTestService("cafes")
		mockRepo.On("GetProducto", mock.Anything, 4).Return(stored(), nil).Once()

		_, err := service.UpdateProducto(context.Background(), 4, &ProductoPayload{Categoria: strPtr("inexistente")})
		assert.ErrorIs(t, err, ErrValidation)
		assert.ErrorContains(t, err, "La categoría especificada no existe")
		mockRepo.AssertNotCalled(t, "UpdateProducto")
	})
}

func TestDeleteProducto(t *testing.T) {
	service, mockRepo := newTestService()
	mockRepo.On("DeleteProducto", mock.Anything, 9).Return(ErrNotFound).Once()

	err := service.DeleteProducto(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
	mockRepo.AssertExpectations(t)
}
