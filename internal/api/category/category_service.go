package category

import "context"

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	ListCategorias(ctx context.Context) ([]Categoria, error)
	CreateCategoria(ctx context.Context, nombre, valor string) (*Categoria, error)
	DeleteCategoria(ctx context.Context, id int) error
	CategoriaExists(ctx context.Context, valor string) (bool, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) ListCategorias(ctx context.Context) ([]Categoria, error) {
	return s.repo.ListCategorias(ctx)
}

// CreateCategoria normalizes the slug (derived from the name when not
// supplied) before hitting the repository.
func (s *ServiceImpl) CreateCategoria(ctx context.Context, nombre, valor string) (*Categoria, error) {
	if valor == "" {
		valor = nombre
	}
	return s.repo.CreateCategoria(ctx, nombre, Slugify(valor))
}

func (s *ServiceImpl) DeleteCategoria(ctx context.Context, id int) error {
	return s.repo.DeleteCategoria(ctx, id)
}

func (s *ServiceImpl) CategoriaExists(ctx context.Context, valor string) (bool, error) {
	return s.repo.CategoriaExists(ctx, valor)
}
