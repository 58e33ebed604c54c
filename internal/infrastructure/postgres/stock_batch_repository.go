package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
	"github.com/tu-usuario/cardstock-pro/internal/domain/repository"
)

var _ repository.StockBatchRepository = (*StockBatchRepo)(nil)

// StockBatchRepo implementación del puerto de lotes de despacho sobre PostgreSQL.
// Los seriales del lote se guardan como jsonb.
type StockBatchRepo struct {
	q Querier
}

// NewStockBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockBatchRepository(q Querier) *StockBatchRepo {
	return &StockBatchRepo{q: q}
}

// Create persiste un lote nuevo.
func (r *StockBatchRepo) Create(ctx context.Context, batch *entity.StockBatch) error {
	query := `
		INSERT INTO stock_batches (id, category_id, type_id, station_id, serials, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		batch.ID, batch.CategoryID, batch.TypeID, batch.StationID,
		batch.Serials, batch.Status, batch.CreatedBy, batch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock batch: %w", err)
	}
	return nil
}

const batchColumns = `id, category_id, type_id, station_id, serials, status, created_by, created_at, received_at`

func scanBatch(row pgx.Row) (*entity.StockBatch, error) {
	var b entity.StockBatch
	err := row.Scan(
		&b.ID, &b.CategoryID, &b.TypeID, &b.StationID,
		&b.Serials, &b.Status, &b.CreatedBy, &b.CreatedAt, &b.ReceivedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByID devuelve el lote, o nil si no existe.
func (r *StockBatchRepo) GetByID(ctx context.Context, id string) (*entity.StockBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM stock_batches WHERE id = $1`
	b, err := scanBatch(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock batch: %w", err)
	}
	return b, nil
}

// GetForUpdate bloquea la fila del lote (SELECT FOR UPDATE) para serializar
// recepciones concurrentes del mismo lote.
func (r *StockBatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM stock_batches WHERE id = $1 FOR UPDATE`
	b, err := scanBatch(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock batch for update: %w", err)
	}
	return b, nil
}

// MarkReceived marca el lote como recibido.
func (r *StockBatchRepo) MarkReceived(ctx context.Context, id string) error {
	query := `UPDATE stock_batches SET status = $1, received_at = now() WHERE id = $2`
	_, err := r.q.Exec(ctx, query, entity.BatchReceived, id)
	if err != nil {
		return fmt.Errorf("mark batch received: %w", err)
	}
	return nil
}
