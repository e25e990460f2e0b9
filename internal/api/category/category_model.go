package category

import "errors"

var ErrNotFound = errors.New("requested item not found")
var ErrConflict = errors.New("item already exists or conflict")

// ErrReferenced is returned when a category still has products pointing at
// its slug and therefore cannot be deleted.
var ErrReferenced = errors.New("category is referenced by products")

// Categoria mirrors a row of the categoria table. Valor is the normalized
// slug products reference as their foreign key.
type Categoria struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
	Valor  string `json:"valor"`
}

// CreateCategoriaRequest represents the create-category request body. Valor
// is optional; it defaults to the normalized form of Nombre.
type CreateCategoriaRequest struct {
	Nombre string `json:"nombre"`
	Valor  string `json:"valor,omitempty"`
}
