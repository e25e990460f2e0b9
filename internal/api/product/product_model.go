package product

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("requested item not found")

// ErrValidation wraps a human-readable validation reason; the handler maps
// it to a 400 with that reason as the message.
var ErrValidation = errors.New("invalid product payload")

// Producto mirrors a row of the producto table. Categoria holds the slug of
// the referenced categoria row.
type Producto struct {
	ID                 int       `json:"id"`
	Nombre             string    `json:"nombre"`
	Descripcion        string    `json:"descripcion"`
	Precio             float64   `json:"precio"`
	Categoria          string    `json:"categoria"`
	Disponible         bool      `json:"disponible"`
	ImagenURL          *string   `json:"imagen_url"`
	FechaCreacion      time.Time `json:"fecha_creacion"`
	FechaActualizacion time.Time `json:"fecha_actualizacion"`
}

// ProductoPayload represents a create or partial-update request body.
// Pointer fields distinguish "absent" from the zero value, so updates only
// touch the fields the client actually sent.
type ProductoPayload struct {
	Nombre      *string  `json:"nombre,omitempty"`
	Descripcion *string  `json:"descripcion,omitempty"`
	Precio      *float64 `json:"precio,omitempty"`
	Categoria   *string  `json:"categoria,omitempty"`
	Disponible  *bool    `json:"disponible,omitempty"`
	ImagenURL   *string  `json:"imagen_url,omitempty"`
}

// IsEmpty reports whether the payload carries no fields at all.
func (p *ProductoPayload) IsEmpty() bool {
	return p.Nombre == nil && p.Descripcion == nil && p.Precio == nil &&
		p.Categoria == nil && p.Disponible == nil && p.ImagenURL == nil
}
