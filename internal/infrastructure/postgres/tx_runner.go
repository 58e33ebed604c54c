package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/cardstock-pro/internal/application/stock"
	"github.com/tu-usuario/cardstock-pro/internal/domain/repository"
)

// Ensure TxRunner implements stock.TxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Es la única
// vía de escritura para Card Store + agregado: o commitea el movimiento
// completo o no queda nada.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	cardRepo repository.CardRepository,
	summaryRepo repository.StockSummaryRepository,
	batchRepo repository.StockBatchRepository,
	inboxRepo repository.InboxRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cardRepo := NewCardRepository(tx)
	summaryRepo := NewStockSummaryRepository(tx)
	batchRepo := NewStockBatchRepository(tx)
	inboxRepo := NewInboxRepository(tx)

	if err := fn(cardRepo, summaryRepo, batchRepo, inboxRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
