package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/cardstock-pro/internal/domain"
	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
	"github.com/tu-usuario/cardstock-pro/internal/domain/repository"
)

// StationUseCase CRUD mínimo de estaciones (lo que el motor necesita para operar).
type StationUseCase struct {
	repo repository.StationRepository
}

// NewStationUseCase construye el caso de uso.
func NewStationUseCase(repo repository.StationRepository) *StationUseCase {
	return &StationUseCase{repo: repo}
}

// Create registra una estación nueva.
func (uc *StationUseCase) Create(ctx context.Context, name string, minStock int) (*entity.Station, error) {
	if name == "" || minStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	s := &entity.Station{
		ID:                uuid.New().String(),
		Name:              name,
		MinStockThreshold: minStock,
		CreatedAt:         time.Now(),
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// List devuelve todas las estaciones.
func (uc *StationUseCase) List(ctx context.Context) ([]*entity.Station, error) {
	return uc.repo.List(ctx)
}

// GetByID devuelve una estación o ErrNotFound.
func (uc *StationUseCase) GetByID(ctx context.Context, id string) (*entity.Station, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}
