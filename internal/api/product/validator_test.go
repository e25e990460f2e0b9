package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCategoryChecker struct {
	known map[string]bool
	err   error
}

func (f *fakeCategoryChecker) CategoriaExists(_ context.Context, valor string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.known[valor], nil
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func validPayload() *ProductoPayload {
	return &ProductoPayload{
		Nombre:      strPtr("Espresso"),
		Descripcion: strPtr("Café espresso simple"),
		Precio:      floatPtr(2.5),
		Categoria:   strPtr("cafes"),
	}
}

func TestValidatePayload(t *testing.T) {
	checker := &fakeCategoryChecker{known: map[string]bool{"cafes": true}}

	tests := []struct {
		name    string
		mutate  func(p *ProductoPayload)
		payload *ProductoPayload
		want    string
	}{
		{name: "Valid", payload: validPayload(), want: ""},
		{name: "Nil", payload: nil, want: "Datos del producto vacíos"},
		{name: "Empty", payload: &ProductoPayload{}, want: "Datos del producto vacíos"},
		{
			name:   "MissingNombre",
			mutate: func(p *ProductoPayload) { p.Nombre = nil },
			want:   "El campo nombre es obligatorio",
		},
		{
			name:   "BlankNombre",
			mutate: func(p *ProductoPayload) { p.Nombre = strPtr("   ") },
			want:   "El campo nombre es obligatorio",
		},
		{
			name:   "MissingDescripcion",
			mutate: func(p *ProductoPayload) { p.Descripcion = nil },
			want:   "El campo descripcion es obligatorio",
		},
		{
			name:   "MissingPrecio",
			mutate: func(p *ProductoPayload) { p.Precio = nil },
			want:   "El campo precio es obligatorio",
		},
		{
			name:   "MissingCategoria",
			mutate: func(p *ProductoPayload) { p.Categoria = nil },
			want:   "El campo categoria es obligatorio",
		},
		{
			name:   "ZeroPrecio",
			mutate: func(p *ProductoPayload) { p.Precio = floatPtr(0) },
			want:   "El precio debe ser mayor que 0",
		},
		{
			name:   "NegativePrecio",
			mutate: func(p *ProductoPayload) { p.Precio = floatPtr(-1.5) },
			want:   "El precio debe ser mayor que 0",
		},
		{
			name:   "UnknownCategoria",
			mutate: func(p *ProductoPayload) { p.Categoria = strPtr("inexistente") },
			want:   "La categoría especificada no existe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := tt.payload
			if tt.mutate != nil {
				payload = validPayload()
				tt.mutate(payload)
			}
			reason, err := ValidatePayload(context.Background(), payload, checker)
			require.NoError(t, err)
			assert.Equal(t, tt.want, reason)
		})
	}
}

// A missing nombre must win over an invalid price: checks run in field order.
func TestValidatePayload_FirstFailureWins(t *testing.T) {
	checker := &fakeCategoryChecker{known: map[string]bool{"cafes": true}}

	payload := validPayload()
	payload.Nombre = nil
	payload.Precio = floatPtr(-10)

	reason, err := ValidatePayload(context.Background(), payload, checker)
	require.NoError(t, err)
	assert.Equal(t, "El campo nombre es obligatorio", reason)
}

func TestValidatePayload_CheckerError(t *testing.T) {
	checker := &fakeCategoryChecker{err: assert.AnError}

	reason, err := ValidatePayload(context.Background(), validPayload(), checker)
	assert.Error(t, err)
	assert.Empty(t, reason)
}

func TestValidateRecord(t *testing.T) {
	checker := &fakeCategoryChecker{known: map[string]bool{"postres": true}}

	t.Run("Valid", func(t *testing.T) {
		rec := &Producto{Nombre: "Tiramisú", Descripcion: "Postre italiano", Precio: 5.5, Categoria: "postres"}
		reason, err := ValidateRecord(context.Background(), rec, checker)
		require.NoError(t, err)
		assert.Empty(t, reason)
	})

	t.Run("BlankNombre", func(t *testing.T) {
		rec := &Producto{Nombre: " ", Descripcion: "Postre italiano", Precio: 5.5, Categoria: "postres"}
		reason, err := ValidateRecord(context.Background(), rec, checker)
		require.NoError(t, err)
		assert.Equal(t, "El campo nombre es obligatorio", reason)
	})

	t.Run("DanglingCategoria", func(t *testing.T) {
		rec := &Producto{Nombre: "Tiramisú", Descripcion: "Postre italiano", Precio: 5.5, Categoria: "borrada"}
		reason, err := ValidateRecord(context.Background(), rec, checker)
		require.NoError(t, err)
		assert.Equal(t, "La categoría especificada no existe", reason)
	})
}
