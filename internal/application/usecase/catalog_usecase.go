package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cardstock-pro/internal/domain"
	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
	"github.com/tu-usuario/cardstock-pro/internal/domain/repository"
)

// CatalogUseCase alta y consulta del catálogo de categorías y tipos de tarjeta.
type CatalogUseCase struct {
	repo repository.CatalogRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

// CreateCategory registra una categoría (ej. GOLD).
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, name string) (*entity.CardCategory, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.CardCategory{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateType registra un tipo dentro de una categoría (ej. JaBan).
func (uc *CatalogUseCase) CreateType(ctx context.Context, categoryID, name string, price decimal.Decimal, quota, validityDays int) (*entity.CardType, error) {
	if categoryID == "" || name == "" || quota <= 0 || validityDays <= 0 || price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	cat, err := uc.repo.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	t := &entity.CardType{
		ID:           uuid.New().String(),
		CategoryID:   categoryID,
		Name:         name,
		Price:        price,
		QuotaTicket:  quota,
		ValidityDays: validityDays,
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.CreateType(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ListCategories devuelve todas las categorías.
func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]*entity.CardCategory, error) {
	return uc.repo.ListCategories(ctx)
}

// ListTypes devuelve los tipos, opcionalmente filtrados por categoría.
func (uc *CatalogUseCase) ListTypes(ctx context.Context, categoryID string) ([]*entity.CardType, error) {
	return uc.repo.ListTypes(ctx, categoryID)
}
