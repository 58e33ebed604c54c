package repository

import (
	"context"

	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
)

// CatalogRepository define el puerto de consulta del catálogo de tarjetas
// (categorías y tipos). El CRUD completo del catálogo vive en otro servicio;
// aquí solo se necesita lo que los movimientos y resúmenes consultan.
type CatalogRepository interface {
	CreateCategory(ctx context.Context, c *entity.CardCategory) error
	CreateType(ctx context.Context, t *entity.CardType) error
	GetCategory(ctx context.Context, id string) (*entity.CardCategory, error)
	GetType(ctx context.Context, id string) (*entity.CardType, error)
	ListCategories(ctx context.Context) ([]*entity.CardCategory, error)
	ListTypes(ctx context.Context, categoryID string) ([]*entity.CardType, error)
}
