package repository

import (
	"context"

	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
)

// StationRepository define el puerto de persistencia de estaciones.
type StationRepository interface {
	Create(ctx context.Context, station *entity.Station) error
	GetByID(ctx context.Context, id string) (*entity.Station, error)
	List(ctx context.Context) ([]*entity.Station, error)
}
