package repository

import (
	"context"

	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
)

// StockBatchRepository define el puerto de persistencia de lotes de despacho.
type StockBatchRepository interface {
	Create(ctx context.Context, batch *entity.StockBatch) error
	GetByID(ctx context.Context, id string) (*entity.StockBatch, error)
	// GetForUpdate bloquea la fila del lote (SELECT FOR UPDATE) para
	// serializar recepciones concurrentes del mismo lote.
	GetForUpdate(ctx context.Context, id string) (*entity.StockBatch, error)
	MarkReceived(ctx context.Context, id string) error
}
