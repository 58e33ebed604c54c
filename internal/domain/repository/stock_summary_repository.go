package repository

import (
	"context"

	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
)

// SummaryFilter filtros de lectura del agregado.
type SummaryFilter struct {
	CategoryID string
	TypeID     string
	StationID  string // vacío = todas; "office" no aplica aquí (usar fila con station nil)
}

// StockSummaryRepository define el puerto del agregado de inventario
// desnormalizado. ApplyDelta debe ser un upsert atómico insert-or-increment
// para que dos operaciones que estrenan el mismo bucket no se pisen.
type StockSummaryRepository interface {
	ApplyDelta(ctx context.Context, delta entity.SummaryDelta) error
	GetBucket(ctx context.Context, categoryID, typeID string, stationID *string) (*entity.StockSummary, error)
	// ListBuckets todas las filas que pasen el filtro, incluida la de bodega.
	ListBuckets(ctx context.Context, f SummaryFilter) ([]*entity.StockSummary, error)
	// ListStationBuckets solo filas con estación (stationId != null).
	ListStationBuckets(ctx context.Context, f SummaryFilter) ([]*entity.StockSummary, error)
}
